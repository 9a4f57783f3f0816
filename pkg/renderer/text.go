package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/nikogura/content-qa/pkg/fixer"
	"github.com/nikogura/content-qa/pkg/quality"
	"github.com/pkg/errors"
)

const ruleWidth = 60

// RenderText writes the report as a plain-text listing grouped by category.
func RenderText(w io.Writer, report quality.Report) (err error) {
	var b strings.Builder

	heavy := strings.Repeat("═", ruleWidth)
	light := strings.Repeat("─", ruleWidth)

	b.WriteString(heavy + "\n")
	b.WriteString("CONTENT QUALITY REPORT\n")
	b.WriteString(heavy + "\n\n")
	b.WriteString(report.Summary + "\n\n")
	fmt.Fprintf(&b, "SCORE: %d%% (%d/%d checks passed)\n", report.Score, report.PassedCount(), len(report.Checks))

	status := "❌ NEEDS REVISION"
	if report.Passed {
		status = "✅ APPROVED FOR PUBLISHING"
	}
	b.WriteString("STATUS: " + status + "\n")

	for _, group := range report.ByCategory() {
		b.WriteString("\n" + categoryLabel(group.Category) + "\n")
		b.WriteString(light + "\n")

		for _, c := range group.Checks {
			fmt.Fprintf(&b, "%s %s %s\n", passIcon(c.Passed), priorityIcons[c.Priority], c.Name)
			fmt.Fprintf(&b, "   Value: %s | Expected: %s\n", c.Observed, c.Expected)
			if !c.Passed {
				b.WriteString("   ⚠️ ACTION REQUIRED\n")
			}
			b.WriteString("\n")
		}
	}

	if len(report.Recommendations) > 0 {
		b.WriteString(heavy + "\n")
		b.WriteString("RECOMMENDATIONS\n")
		b.WriteString(heavy + "\n")
		for _, rec := range report.Recommendations {
			b.WriteString(recommendationLine(rec) + "\n")
		}
	}

	if len(report.LinkSuggestions) > 0 {
		b.WriteString("\n" + heavy + "\n")
		b.WriteString("SUGGESTED INTERNAL LINKS\n")
		b.WriteString(heavy + "\n")
		for _, s := range report.LinkSuggestions {
			fmt.Fprintf(&b, "🔗 %q → %s (%s)\n", s.AnchorText, s.TargetSlug, s.Context)
		}
	}

	_, err = io.WriteString(w, b.String())
	if err != nil {
		err = errors.Wrap(err, "failed to write text report")
		return err
	}

	return err
}

// recommendationLine prefixes a recommendation with the marker for its kind.
func recommendationLine(rec quality.Recommendation) (line string) {
	switch rec.Kind {
	case quality.RecommendCritical:
		line = "🚨 CRITICAL: " + rec.Message
	case quality.RecommendHigh:
		line = "⚠️ HIGH: " + rec.Message
	case quality.RecommendScore:
		line = "📊 " + rec.Message
	case quality.RecommendGood:
		line = "✅ " + rec.Message
	case quality.RecommendTip:
		line = "💡 " + rec.Message
	case quality.RecommendExcellent:
		line = "🏆 " + rec.Message
	default:
		line = rec.Message
	}
	return line
}

func renderChangesText(w io.Writer, changes []fixer.FixRecord) (err error) {
	var b strings.Builder

	if len(changes) == 0 {
		b.WriteString("No fixes applied.\n")
	} else {
		fmt.Fprintf(&b, "Applied %d fix(es):\n", len(changes))
		for _, c := range changes {
			b.WriteString("  ✓ " + c.Description + "\n")
		}
	}

	_, err = io.WriteString(w, b.String())
	if err != nil {
		err = errors.Wrap(err, "failed to write fix log")
		return err
	}

	return err
}
