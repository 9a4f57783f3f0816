package quality

import (
	"testing"

	"github.com/nikogura/content-qa/pkg/policy"
	"github.com/nikogura/content-qa/pkg/quality/qualitytest"
)

func TestSuggestInternalLinks(t *testing.T) {
	doc := `<p>Our pick of the best trail running shoes covers grip. See <a href="/guides/waterproof-boots?ref=1">boots</a>.</p>`

	candidates := []LinkCandidate{
		{Title: "The Best Trail Running Shoes", Slug: "/guides/best-trail-shoes/"},
		{Title: "Waterproof Boots", Slug: "guides/waterproof-boots"},
		{Title: "Ultra Marathon Training", Slug: "ultra"},
		{Title: "", Slug: "empty-title"},
		{Title: "Best Trail Running Shoes Again", Slug: "guides/best-trail-shoes"},
	}

	tests := []struct {
		name  string
		limit int
		want  []LinkSuggestion
	}{
		{
			name:  "one match",
			limit: 5,
			want: []LinkSuggestion{
				{AnchorText: "Best Trail Running Shoes", TargetSlug: "/guides/best-trail-shoes", Context: "Body reference to related guide"},
			},
		},
		{
			name:  "no room",
			limit: 0,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestInternalLinks(doc, candidates, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d suggestions, got %d: %+v", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected %+v, got %+v", tt.want[i], got[i])
				}
			}
		})
	}
}

func TestSuggestInternalLinksLimit(t *testing.T) {
	doc := "<p>Both the grip guide basics and the cushioning guide basics matter.</p>"
	candidates := []LinkCandidate{
		{Title: "Grip Guide Basics", Slug: "grip"},
		{Title: "Cushioning Guide Basics", Slug: "cushioning"},
	}

	got := SuggestInternalLinks(doc, candidates, 1)
	if len(got) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(got))
	}
	if got[0].TargetSlug != "/grip" {
		t.Errorf("Expected /grip, got %s", got[0].TargetSlug)
	}
}

func TestAnchorText(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "The Best Trail Running Shoes of 2026", want: "Best Trail Running Shoes"},
		{title: "How to Pick Boots: A Guide", want: "Pick Boots Guide"},
		{title: "a an of", want: ""},
	}

	for _, tt := range tests {
		if got := anchorText(tt.title); got != tt.want {
			t.Errorf("anchorText(%q): expected %q, got %q", tt.title, tt.want, got)
		}
	}
}

func TestEvaluateSuggestsLinks(t *testing.T) {
	a := qualitytest.Passing(testYear)
	checker := NewChecker(policy.Default(testYear))

	candidates := []LinkCandidate{
		{Title: "Durability Over Time", Slug: "guides/durability-over-time"},
		{Title: "Related guide", Slug: "guides/related-guide-3"},
	}

	report := checker.Evaluate(a.HTML(), a.Keyword, qualitytest.SemanticKeywords(), candidates)

	if len(report.LinkSuggestions) != 1 {
		t.Fatalf("Expected 1 link suggestion, got %+v", report.LinkSuggestions)
	}
	if report.LinkSuggestions[0].TargetSlug != "/guides/durability-over-time" {
		t.Errorf("Unexpected target %s", report.LinkSuggestions[0].TargetSlug)
	}
}
