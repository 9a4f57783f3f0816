package renderer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nikogura/content-qa/pkg/fixer"
	"github.com/nikogura/content-qa/pkg/policy"
	"github.com/nikogura/content-qa/pkg/quality"
	"github.com/nikogura/content-qa/pkg/quality/qualitytest"
)

func failingReport(t *testing.T) (report quality.Report) {
	t.Helper()
	a := qualitytest.Passing(2026)
	a.KeyTakeawaysBoxes = 2
	a.SwapWord = "leverage"

	checker := quality.NewChecker(policy.Default(2026))
	report = checker.Evaluate(a.HTML(), a.Keyword, qualitytest.SemanticKeywords(), []quality.LinkCandidate{
		{Title: "Durability Over Time", Slug: "guides/durability-over-time"},
	})
	return report
}

func passingReport(t *testing.T) (report quality.Report) {
	t.Helper()
	a := qualitytest.Passing(2026)
	checker := quality.NewChecker(policy.Default(2026))
	report = checker.Evaluate(a.HTML(), a.Keyword, qualitytest.SemanticKeywords(), nil)
	return report
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input     string
		expected  Format
		wantError bool
	}{
		{input: "", expected: FormatText},
		{input: "TEXT", expected: FormatText},
		{input: "md", expected: FormatMarkdown},
		{input: "markdown", expected: FormatMarkdown},
		{input: " json ", expected: FormatJSON},
		{input: "pdf", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	report := failingReport(t)

	var buf bytes.Buffer
	err := Render(&buf, FormatText, report)
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	out := buf.String()

	expected := []string{
		"CONTENT QUALITY REPORT",
		report.Summary,
		"SCORE: 81% (13/16 checks passed)",
		"STATUS: ❌ NEEDS REVISION",
		"📐 Structure",
		"🎯 SEO",
		"✗ 🚨 Key Takeaways Box",
		"   Value: 2 | Expected: Exactly 1",
		"   ⚠️ ACTION REQUIRED",
		"✓ ⚠️ Word Count",
		"RECOMMENDATIONS",
		"🚨 CRITICAL: AI Detection Phrases: 1 (leverage) (expected: 0 AI phrases)",
		"SUGGESTED INTERNAL LINKS",
		"/guides/durability-over-time",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}

	if strings.Index(out, "✍️ Content") > strings.Index(out, "🎯 SEO") {
		t.Error("Expected categories in order of first appearance")
	}
}

func TestRenderTextPassing(t *testing.T) {
	var buf bytes.Buffer
	err := RenderText(&buf, passingReport(t))
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "STATUS: ✅ APPROVED FOR PUBLISHING") {
		t.Error("Expected approved status")
	}
	if !strings.Contains(out, "🏆 Content exceeds quality standards!") {
		t.Error("Expected commendation")
	}
	if n := strings.Count(out, "ACTION REQUIRED"); n != 1 {
		t.Errorf("Expected one action marker for keyword density, got %d", n)
	}
}

func TestRenderMarkdown(t *testing.T) {
	report := failingReport(t)

	var buf bytes.Buffer
	err := Render(&buf, FormatMarkdown, report)
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	out := buf.String()

	expected := []string{
		"# Content Quality Report",
		"## 📐 Structure",
		"## Recommendations",
		"## Suggested Internal Links",
		"[!CAUTION]",
		"Key Takeaways Box",
		"Exactly 1",
		"Critical",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestRenderMarkdownPassing(t *testing.T) {
	var buf bytes.Buffer
	err := RenderMarkdown(&buf, passingReport(t))
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	if !strings.Contains(buf.String(), "[!TIP]") {
		t.Error("Expected a tip alert for an excellent report")
	}
	if strings.Contains(buf.String(), "## Suggested Internal Links") {
		t.Error("Expected no link section without suggestions")
	}
}

func TestRenderJSON(t *testing.T) {
	report := failingReport(t)

	var buf bytes.Buffer
	err := Render(&buf, FormatJSON, report)
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	var decoded quality.Report
	err = json.Unmarshal(buf.Bytes(), &decoded)
	if err != nil {
		t.Fatalf("Failed to decode JSON report: %v", err)
	}

	if decoded.Score != report.Score || decoded.Passed != report.Passed {
		t.Errorf("Expected score %d passed %v, got %d %v", report.Score, report.Passed, decoded.Score, decoded.Passed)
	}
	if len(decoded.Checks) != 16 {
		t.Errorf("Expected 16 checks, got %d", len(decoded.Checks))
	}
	if len(decoded.LinkSuggestions) != 1 {
		t.Errorf("Expected 1 link suggestion, got %d", len(decoded.LinkSuggestions))
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Format("pdf"), quality.Report{}); err == nil {
		t.Error("Expected error for unknown format, got nil")
	}
	if err := RenderChanges(&buf, Format("pdf"), nil); err == nil {
		t.Error("Expected error for unknown format, got nil")
	}
}

func TestRenderChanges(t *testing.T) {
	changes := []fixer.FixRecord{
		{Action: fixer.ActionRemoveDuplicate, Description: "Removed duplicate Key Takeaways box"},
		{Action: fixer.ActionReplacePhrase, Description: `Replaced AI phrase "leverage" with "use"`},
	}

	tests := []struct {
		name     string
		format   Format
		changes  []fixer.FixRecord
		expected []string
	}{
		{
			name:     "text",
			format:   FormatText,
			changes:  changes,
			expected: []string{"Applied 2 fix(es):", "  ✓ Removed duplicate Key Takeaways box"},
		},
		{
			name:     "text empty",
			format:   FormatText,
			expected: []string{"No fixes applied."},
		},
		{
			name:     "markdown",
			format:   FormatMarkdown,
			changes:  changes,
			expected: []string{"## Applied Fixes", "Removed duplicate Key Takeaways box"},
		},
		{
			name:     "json",
			format:   FormatJSON,
			changes:  changes,
			expected: []string{`"action": "remove_duplicate"`, `Replaced AI phrase \"leverage\" with \"use\"`},
		},
		{
			name:     "json empty",
			format:   FormatJSON,
			expected: []string{`"changes": []`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := RenderChanges(&buf, tt.format, tt.changes)
			if err != nil {
				t.Fatalf("Failed to render changes: %v", err)
			}
			for _, want := range tt.expected {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestRenderFixJSONSingleDocument(t *testing.T) {
	report := passingReport(t)
	changes := []fixer.FixRecord{
		{Action: fixer.ActionReplacePhrase, Description: `Replaced AI phrase "robust" with "strong"`},
	}

	var buf bytes.Buffer
	err := RenderFix(&buf, FormatJSON, changes, &report)
	if err != nil {
		t.Fatalf("Failed to render fix: %v", err)
	}

	decoder := json.NewDecoder(&buf)
	var decoded struct {
		Changes []fixer.FixRecord `json:"changes"`
		Report  *quality.Report   `json:"report"`
	}
	err = decoder.Decode(&decoded)
	if err != nil {
		t.Fatalf("Failed to decode fix output: %v", err)
	}
	if decoder.More() {
		t.Error("Expected a single JSON document")
	}

	if len(decoded.Changes) != 1 || decoded.Changes[0].Action != fixer.ActionReplacePhrase {
		t.Errorf("Unexpected changes %+v", decoded.Changes)
	}
	if decoded.Report == nil || decoded.Report.Score != report.Score {
		t.Errorf("Expected embedded report with score %d, got %+v", report.Score, decoded.Report)
	}
}

func TestRenderFixWithoutReport(t *testing.T) {
	var buf bytes.Buffer
	err := RenderFix(&buf, FormatJSON, nil, nil)
	if err != nil {
		t.Fatalf("Failed to render fix: %v", err)
	}
	if strings.Contains(buf.String(), `"report"`) {
		t.Errorf("Expected no report key, got %s", buf.String())
	}

	buf.Reset()
	report := passingReport(t)
	err = RenderFix(&buf, FormatText, nil, &report)
	if err != nil {
		t.Fatalf("Failed to render fix: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "No fixes applied.") > strings.Index(out, "CONTENT QUALITY REPORT") {
		t.Error("Expected the fix log before the report")
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := categoryLabel(quality.CategorySEO); got != "🎯 SEO" {
		t.Errorf("Expected '🎯 SEO', got %q", got)
	}
	if got := categoryLabel(quality.Category("media")); got != "Media" {
		t.Errorf("Expected 'Media', got %q", got)
	}
}
