// Package renderer turns quality reports and fix logs into text, markdown or JSON, and writes repaired documents.
package renderer

import (
	"io"
	"strings"

	"github.com/nikogura/content-qa/pkg/fixer"
	"github.com/nikogura/content-qa/pkg/quality"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format selects an output layout.
type Format string

// Output formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat resolves a format name. An empty name selects text.
func ParseFormat(name string) (format Format, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		format = FormatText
	case "markdown", "md":
		format = FormatMarkdown
	case "json":
		format = FormatJSON
	default:
		err = errors.Errorf("unknown output format %q (expected text, markdown or json)", name)
	}
	return format, err
}

// Render writes the report in the given format.
func Render(w io.Writer, format Format, report quality.Report) (err error) {
	switch format {
	case FormatText:
		err = RenderText(w, report)
	case FormatMarkdown:
		err = RenderMarkdown(w, report)
	case FormatJSON:
		err = RenderJSON(w, report)
	default:
		err = errors.Errorf("unsupported output format %q", format)
	}
	return err
}

// RenderChanges writes a fix log in the given format.
func RenderChanges(w io.Writer, format Format, changes []fixer.FixRecord) (err error) {
	switch format {
	case FormatText:
		err = renderChangesText(w, changes)
	case FormatMarkdown:
		err = renderChangesMarkdown(w, changes)
	case FormatJSON:
		err = renderChangesJSON(w, changes)
	default:
		err = errors.Errorf("unsupported output format %q", format)
	}
	return err
}

// RenderFix writes a fix log followed by the re-check report, when there is one. In JSON both land in a single
// object.
func RenderFix(w io.Writer, format Format, changes []fixer.FixRecord, report *quality.Report) (err error) {
	if format == FormatJSON {
		err = renderFixJSON(w, changes, report)
		return err
	}

	err = RenderChanges(w, format, changes)
	if err != nil || report == nil {
		return err
	}

	err = Render(w, format, *report)
	return err
}

//nolint:gochecknoglobals // Display labels for the known categories
var categoryLabels = map[quality.Category]string{
	quality.CategoryStructure:   "📐 Structure",
	quality.CategorySEO:         "🎯 SEO",
	quality.CategoryReadability: "📖 Readability",
	quality.CategoryContent:     "✍️ Content",
	quality.CategoryLinks:       "🔗 Links",
}

//nolint:gochecknoglobals // Display icons per priority
var priorityIcons = map[quality.Priority]string{
	quality.PriorityCritical: "🚨",
	quality.PriorityHigh:     "⚠️",
	quality.PriorityMedium:   "📌",
	quality.PriorityLow:      "ℹ️",
}

// categoryLabel returns the display label for a category, title-casing unknown ones.
func categoryLabel(category quality.Category) (label string) {
	label, ok := categoryLabels[category]
	if ok {
		return label
	}
	label = titleCase(string(category))
	return label
}

func titleCase(s string) (out string) {
	out = cases.Title(language.English).String(s)
	return out
}

func passIcon(passed bool) (icon string) {
	icon = "✗"
	if passed {
		icon = "✓"
	}
	return icon
}
