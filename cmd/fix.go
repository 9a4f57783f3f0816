package cmd

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/nikogura/content-qa/pkg/config"
	"github.com/nikogura/content-qa/pkg/document"
	"github.com/nikogura/content-qa/pkg/fixer"
	"github.com/nikogura/content-qa/pkg/quality"
	"github.com/nikogura/content-qa/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var fixOpts inputOptions

//nolint:gochecknoglobals // Cobra boilerplate
var (
	fixOutput  string
	fixInPlace bool
	fixRecheck bool
)

//nolint:gochecknoglobals // Cobra boilerplate
var fixCmd = &cobra.Command{
	Use:   "fix <file|url|->",
	Short: "Repair duplicated sections and banned phrases in an article",
	Long: `Removes every key takeaways box, FAQ section and conclusion section after the first,
then replaces banned phrases in text content with plainer wording.

Repairs are idempotent: fixing an already fixed article changes nothing. Count-based
failures such as word count or link count need new content and are not repaired.

Without --output or --in-place the repaired article is written to standard output and
the fix log to standard error.

Examples:
  # Repair a draft into a new file and confirm it now passes
  content-qa fix draft.html -o fixed.html --recheck -k "trail running shoes" -s grip,cushioning

  # Repair in place
  content-qa fix draft.html --in-place`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(fixCmd)
	fixOpts.bind(fixCmd)
	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "Write the repaired article to this file")
	fixCmd.Flags().BoolVarP(&fixInPlace, "in-place", "i", false, "Overwrite the input file with the repaired article")
	fixCmd.Flags().BoolVar(&fixRecheck, "recheck", false, "Run the quality checks against the repaired article")
	fixCmd.MarkFlagsMutuallyExclusive("output", "in-place")
}

func runFix(cmd *cobra.Command, args []string) (err error) {
	source := args[0]

	if fixInPlace && (document.IsURL(source) || source == "-") {
		err = errors.New("--in-place needs a local file")
		return err
	}

	cmd.SilenceUsage = true
	ctx := context.Background()
	logger := newLogger()

	var cfg config.Config
	cfg, err = loadConfig(logger)
	if err != nil {
		return err
	}

	var in articleInput
	in, err = fixOpts.load(ctx, cfg, logger, source)
	if err != nil {
		return err
	}

	target := fixOutput
	if fixInPlace {
		target = source
	}

	err = fixArticle(cmd.OutOrStdout(), cmd.ErrOrStderr(), logger, cfg, in, target, fixRecheck)
	return err
}

// fixArticle repairs the article and writes the result to target, or to out when target is empty. The fix log
// and any re-check report go to out when the article is written to a file and to diag otherwise.
func fixArticle(out, diag io.Writer, logger *slog.Logger, cfg config.Config, in articleInput, target string, recheck bool) (err error) {
	p := cfg.Policy(time.Now())

	result := fixer.NewFixer(p).Repair(in.raw)

	for _, change := range result.Changes {
		logger.Debug("applied fix", "action", change.Action, "description", change.Description)
	}

	reportOut := out
	if target == "" {
		reportOut = diag
		_, err = io.WriteString(out, result.Repaired)
		if err != nil {
			err = errors.Wrap(err, "failed to write repaired article")
			return err
		}
	} else {
		if result.Changed() || target != in.source {
			err = renderer.WriteDocument(result.Repaired, target)
			if err != nil {
				return err
			}
		}
		logger.Debug("wrote repaired article", "path", target, "changes", len(result.Changes))
	}

	var recheckReport *quality.Report
	if recheck {
		var report quality.Report
		report, err = evaluateArticle(logger, p, in, result.Repaired)
		if err != nil {
			return err
		}
		recheckReport = &report
	}

	err = renderer.RenderFix(reportOut, in.format, result.Changes, recheckReport)
	return err
}
