package renderer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nikogura/content-qa/pkg/fixer"
	"github.com/nikogura/content-qa/pkg/quality"
	"github.com/pkg/errors"
)

// RenderMarkdown writes the report as GitHub-flavored markdown, one table per category.
func RenderMarkdown(w io.Writer, report quality.Report) (err error) {
	md := markdown.NewMarkdown(w)

	writeMarkdownHeader(md, report)
	writeMarkdownAlert(md, report)
	writeMarkdownChecks(md, report)
	writeMarkdownRecommendations(md, report)
	writeMarkdownLinks(md, report)

	err = md.Build()
	if err != nil {
		err = errors.Wrap(err, "failed to write markdown report")
		return err
	}

	return err
}

func writeMarkdownHeader(md *markdown.Markdown, report quality.Report) {
	md.H1("Content Quality Report")
	md.PlainText("")

	status := "❌ Needs revision"
	if report.Passed {
		status = "✅ Approved for publishing"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Score", strconv.Itoa(report.Score) + "%"},
			{"Checks Passed", fmt.Sprintf("%d/%d", report.PassedCount(), len(report.Checks))},
			{"Status", status},
		},
	})
	md.PlainText("")
}

func writeMarkdownAlert(md *markdown.Markdown, report quality.Report) {
	critical := len(report.Failures(quality.PriorityCritical))

	switch {
	case critical > 0:
		md.Cautionf("%d critical check(s) failed. The content cannot be published as is.", critical)
	case !report.Passed:
		md.Warningf("Score %d%% is below the %d%% pass threshold.", report.Score, quality.PassThreshold)
	case report.Score < quality.ExcellentThreshold:
		md.Note("Content meets the minimum standards.")
	default:
		md.Tip("Content exceeds the quality standards.")
	}
	md.PlainText("")
}

func writeMarkdownChecks(md *markdown.Markdown, report quality.Report) {
	for _, group := range report.ByCategory() {
		md.H2(categoryLabel(group.Category))
		md.PlainText("")

		rows := make([][]string, 0, len(group.Checks))
		for _, c := range group.Checks {
			rows = append(rows, []string{
				passIcon(c.Passed),
				c.Name,
				c.Observed,
				c.Expected,
				priorityIcons[c.Priority] + " " + titleCase(string(c.Priority)),
			})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Status", "Check", "Value", "Expected", "Priority"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

func writeMarkdownRecommendations(md *markdown.Markdown, report quality.Report) {
	if len(report.Recommendations) == 0 {
		return
	}

	md.H2("Recommendations")
	md.PlainText("")

	lines := make([]string, 0, len(report.Recommendations))
	for _, rec := range report.Recommendations {
		lines = append(lines, recommendationLine(rec))
	}
	md.BulletList(lines...)
	md.PlainText("")
}

func writeMarkdownLinks(md *markdown.Markdown, report quality.Report) {
	if len(report.LinkSuggestions) == 0 {
		return
	}

	md.H2("Suggested Internal Links")
	md.PlainText("")

	rows := make([][]string, 0, len(report.LinkSuggestions))
	for _, s := range report.LinkSuggestions {
		rows = append(rows, []string{s.AnchorText, "`" + s.TargetSlug + "`", s.Context})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Anchor Text", "Target", "Context"},
		Rows:   rows,
	})
	md.PlainText("")
}

func renderChangesMarkdown(w io.Writer, changes []fixer.FixRecord) (err error) {
	md := markdown.NewMarkdown(w)

	md.H2("Applied Fixes")
	md.PlainText("")

	if len(changes) == 0 {
		md.PlainText("No fixes applied.")
	} else {
		lines := make([]string, 0, len(changes))
		for _, c := range changes {
			lines = append(lines, c.Description)
		}
		md.BulletList(lines...)
	}
	md.PlainText("")

	err = md.Build()
	if err != nil {
		err = errors.Wrap(err, "failed to write markdown fix log")
		return err
	}

	return err
}
