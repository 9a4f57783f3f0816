package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nikogura/content-qa/pkg/config"
	"github.com/nikogura/content-qa/pkg/document"
	"github.com/nikogura/content-qa/pkg/quality"
	"github.com/nikogura/content-qa/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// inputOptions are the article and keyword flags shared by check and fix.
type inputOptions struct {
	keyword      string
	semantic     []string
	semanticFile string
	linksFile    string
	selector     string
	format       string
}

// articleInput is everything the checker needs for one article.
type articleInput struct {
	source           string
	raw              string
	keyword          string
	semanticKeywords []string
	candidates       []quality.LinkCandidate
	selector         string
	format           renderer.Format
}

func (o *inputOptions) bind(c *cobra.Command) {
	c.Flags().StringVarP(&o.keyword, "keyword", "k", "", "Primary keyword")
	c.Flags().StringSliceVarP(&o.semantic, "semantic", "s", nil, "Semantic keywords (repeatable or comma separated)")
	c.Flags().StringVar(&o.semanticFile, "semantic-file", "", "File of semantic keywords (YAML/JSON list or one per line)")
	c.Flags().StringVar(&o.linksFile, "links-file", "", "YAML/JSON list of {title, slug} pages for internal link suggestions")
	c.Flags().StringVar(&o.selector, "selector", "", "CSS selector of the article body within a full page (overrides content_selector)")
	c.Flags().StringVarP(&o.format, "format", "f", "", "Output format: text, markdown or json (overrides format)")
}

// load fetches the article and resolves keyword lists and output format against the config.
func (o *inputOptions) load(ctx context.Context, cfg config.Config, logger *slog.Logger, source string) (in articleInput, err error) {
	in = articleInput{
		source:   source,
		keyword:  o.keyword,
		selector: cfg.ContentSelector,
	}
	if o.selector != "" {
		in.selector = o.selector
	}

	formatName := cfg.Format
	if o.format != "" {
		formatName = o.format
	}
	in.format, err = renderer.ParseFormat(formatName)
	if err != nil {
		return in, err
	}

	in.semanticKeywords = document.SplitKeywords(strings.Join(o.semantic, ","))
	if o.semanticFile != "" {
		var fromFile []string
		fromFile, err = document.LoadKeywords(o.semanticFile)
		if err != nil {
			return in, err
		}
		in.semanticKeywords = document.MergeKeywords(in.semanticKeywords, fromFile)
	}

	if o.linksFile != "" {
		in.candidates, err = document.LoadLinkCandidates(o.linksFile)
		if err != nil {
			return in, err
		}
	}

	fetcher := document.NewFetcher(document.Options{
		Timeout: cfg.FetchTimeout(),
		Logger:  logger,
	})

	logger.Debug("loading article", "source", source)

	in.raw, err = fetcher.Fetch(ctx, source)
	if err != nil {
		err = errors.Wrap(err, "failed to load article")
		return in, err
	}

	logger.Debug("article loaded",
		"bytes", len(in.raw),
		"semantic_keywords", len(in.semanticKeywords),
		"link_candidates", len(in.candidates),
	)

	return in, err
}

// body returns the part of doc the checker evaluates.
func (in articleInput) body(doc string) (fragment string, err error) {
	fragment, err = document.ExtractFragment(doc, in.selector)
	if err != nil {
		err = errors.Wrapf(err, "failed to extract article body from %s", in.source)
		return fragment, err
	}
	return fragment, err
}
