package cmd

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/nikogura/content-qa/pkg/config"
	"github.com/nikogura/content-qa/pkg/policy"
	"github.com/nikogura/content-qa/pkg/quality"
	"github.com/nikogura/content-qa/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var checkOpts inputOptions

//nolint:gochecknoglobals // Cobra boilerplate
var checkStrict bool

//nolint:gochecknoglobals // Cobra boilerplate
var checkCmd = &cobra.Command{
	Use:   "check <file|url|->",
	Short: "Run the quality checks against an article",
	Long: `Runs all sixteen quality checks against an HTML article and prints a report
grouped by category, followed by recommendations.

An article passes when no critical check fails and at least 75% of the checks pass.

Examples:
  # Check a local draft
  content-qa check draft.html -k "trail running shoes" -s grip,cushioning,durability

  # Check a published page, evaluating only the article body
  content-qa check https://example.com/guides/trail-shoes --selector article -k "trail running shoes"

  # Fail the build when the article does not pass
  content-qa check draft.html -k "trail running shoes" --semantic-file keywords.txt --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(checkCmd)
	checkOpts.bind(checkCmd)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit non-zero when the article does not pass")
}

func runCheck(cmd *cobra.Command, args []string) (err error) {
	cmd.SilenceUsage = true
	ctx := context.Background()
	logger := newLogger()

	var cfg config.Config
	cfg, err = loadConfig(logger)
	if err != nil {
		return err
	}

	var in articleInput
	in, err = checkOpts.load(ctx, cfg, logger, args[0])
	if err != nil {
		return err
	}

	var report quality.Report
	report, err = checkArticle(cmd.OutOrStdout(), logger, cfg.Policy(time.Now()), in, in.raw)
	if err != nil {
		return err
	}

	if checkStrict && !report.Passed {
		err = errors.Errorf("article failed quality validation with score %d%%", report.Score)
		return err
	}

	return err
}

// checkArticle evaluates doc and renders the report to w.
func checkArticle(w io.Writer, logger *slog.Logger, p policy.Policy, in articleInput, doc string) (report quality.Report, err error) {
	report, err = evaluateArticle(logger, p, in, doc)
	if err != nil {
		return report, err
	}

	err = renderer.Render(w, in.format, report)
	if err != nil {
		return report, err
	}

	return report, err
}

// evaluateArticle runs the checker over the article body within doc.
func evaluateArticle(logger *slog.Logger, p policy.Policy, in articleInput, doc string) (report quality.Report, err error) {
	var body string
	body, err = in.body(doc)
	if err != nil {
		return report, err
	}

	checker := quality.NewChecker(p)
	report = checker.Evaluate(body, in.keyword, in.semanticKeywords, in.candidates)

	logger.Debug("article evaluated",
		"source", in.source,
		"score", report.Score,
		"passed", report.Passed,
		"critical_failures", len(report.Failures(quality.PriorityCritical)),
	)

	return report, err
}
