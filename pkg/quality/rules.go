package quality

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Check names.
const (
	CheckWordCount        = "Word Count"
	CheckPrimaryKeyword   = "Primary Keyword Usage"
	CheckKeywordDensity   = "Keyword Density"
	CheckKeyTakeaways     = "Key Takeaways Box"
	CheckFAQ              = "FAQ Section"
	CheckConclusion       = "Conclusion Section"
	CheckH2Headings       = "H2 Headings"
	CheckDataTables       = "Data Tables"
	CheckInternalLinks    = "Internal Links"
	CheckFreshness        = "Freshness Signals"
	CheckSemanticCoverage = "Semantic Keyword Coverage"
	CheckAIPhrases        = "AI Detection Phrases"
	CheckSentenceLength   = "Average Sentence Length"
	CheckParagraphLength  = "Paragraph Length"
	CheckReferences       = "References Section"
	CheckListUsage        = "List Usage"
)

// Thresholds applied by the rule table.
const (
	MinWords              = 2500
	MaxWords              = 3500
	MinKeywordUses        = 5
	MaxKeywordUses        = 12
	MinKeywordDensity     = 0.5
	MaxKeywordDensity     = 2.5
	MinH2                 = 4
	MaxH2                 = 10
	MinTables             = 1
	MinLinks              = 8
	MaxLinks              = 20
	MinYearMentions       = 2
	MinSemanticCoverage   = 70.0
	MinSentenceWords      = 12.0
	MaxSentenceWords      = 20.0
	MinParagraphSentences = 2.0
	MaxParagraphSentences = 5.0
	MinListItems          = 10

	// PassThreshold is the minimum score a report needs to pass.
	PassThreshold = 75
	// ExcellentThreshold is the score above which a passing report is commended.
	ExcellentThreshold = 90
)

// Rule is one row of the fixed check table.
type Rule struct {
	Name     string
	Category Category
	Priority Priority
	Expected string
	Measure  func(s *Sample) (measured float64, observed string)
	Pass     func(measured float64) bool
}

//nolint:gochecknoglobals // Markers counted in raw HTML
var (
	h2Re       = regexp.MustCompile(`(?i)<h2\b[^>]*>`)
	tableRe    = regexp.MustCompile(`(?i)<table\b[^>]*>`)
	linkRe     = regexp.MustCompile(`(?i)LINK_CANDIDATE|<a\s[^>]*\bhref\b`)
	listItemRe = regexp.MustCompile(`(?i)<li\b[^>]*>`)

	referenceMarkers = []string{"references-section", "References & Sources", "References &amp; Sources"}
)

//nolint:gochecknoglobals // Scoring configuration constants
var rules = []Rule{
	{
		Name:     CheckWordCount,
		Category: CategoryContent,
		Priority: PriorityHigh,
		Expected: fmt.Sprintf("%d-%d words", MinWords, MaxWords),
		Measure:  func(s *Sample) (float64, string) { return count(s.Words) },
		Pass:     between(MinWords, MaxWords),
	},
	{
		Name:     CheckPrimaryKeyword,
		Category: CategorySEO,
		Priority: PriorityCritical,
		Expected: fmt.Sprintf("%d-%d occurrences", MinKeywordUses, MaxKeywordUses),
		Measure:  func(s *Sample) (float64, string) { return count(s.KeywordHits) },
		Pass:     between(MinKeywordUses, MaxKeywordUses),
	},
	{
		Name:     CheckKeywordDensity,
		Category: CategorySEO,
		Priority: PriorityMedium,
		Expected: fmt.Sprintf("%.1f%%-%.1f%%", MinKeywordDensity, MaxKeywordDensity),
		Measure:  measureKeywordDensity,
		Pass:     between(MinKeywordDensity, MaxKeywordDensity),
	},
	{
		Name:     CheckKeyTakeaways,
		Category: CategoryStructure,
		Priority: PriorityCritical,
		Expected: "Exactly 1",
		Measure:  func(s *Sample) (float64, string) { return count(s.KeyTakeaways) },
		Pass:     exactly(1),
	},
	{
		Name:     CheckFAQ,
		Category: CategoryStructure,
		Priority: PriorityHigh,
		Expected: "Exactly 1",
		Measure:  func(s *Sample) (float64, string) { return count(s.FAQs) },
		Pass:     exactly(1),
	},
	{
		Name:     CheckConclusion,
		Category: CategoryStructure,
		Priority: PriorityHigh,
		Expected: "Exactly 1",
		Measure:  func(s *Sample) (float64, string) { return count(s.Conclusions) },
		Pass:     exactly(1),
	},
	{
		Name:     CheckH2Headings,
		Category: CategoryStructure,
		Priority: PriorityMedium,
		Expected: fmt.Sprintf("%d-%d headings", MinH2, MaxH2),
		Measure:  func(s *Sample) (float64, string) { return count(s.matches(h2Re)) },
		Pass:     between(MinH2, MaxH2),
	},
	{
		Name:     CheckDataTables,
		Category: CategoryContent,
		Priority: PriorityMedium,
		Expected: fmt.Sprintf("At least %d", MinTables),
		Measure:  func(s *Sample) (float64, string) { return count(s.matches(tableRe)) },
		Pass:     atLeast(MinTables),
	},
	{
		Name:     CheckInternalLinks,
		Category: CategoryLinks,
		Priority: PriorityHigh,
		Expected: fmt.Sprintf("%d-%d links", MinLinks, MaxLinks),
		Measure:  func(s *Sample) (float64, string) { return count(s.Links) },
		Pass:     between(MinLinks, MaxLinks),
	},
	{
		Name:     CheckFreshness,
		Category: CategorySEO,
		Priority: PriorityMedium,
		Expected: fmt.Sprintf("At least %d mentions", MinYearMentions),
		Measure:  func(s *Sample) (float64, string) { return count(s.YearMentions) },
		Pass:     atLeast(MinYearMentions),
	},
	{
		Name:     CheckSemanticCoverage,
		Category: CategorySEO,
		Priority: PriorityHigh,
		Expected: fmt.Sprintf("At least %.0f%%", MinSemanticCoverage),
		Measure:  measureSemanticCoverage,
		Pass:     atLeast(MinSemanticCoverage),
	},
	{
		Name:     CheckAIPhrases,
		Category: CategoryReadability,
		Priority: PriorityCritical,
		Expected: "0 AI phrases",
		Measure:  measureBannedPhrases,
		Pass:     exactly(0),
	},
	{
		Name:     CheckSentenceLength,
		Category: CategoryReadability,
		Priority: PriorityMedium,
		Expected: fmt.Sprintf("%.0f-%.0f words", MinSentenceWords, MaxSentenceWords),
		Measure:  func(s *Sample) (float64, string) { return ratio(s.Words, s.Sentences) },
		Pass:     between(MinSentenceWords, MaxSentenceWords),
	},
	{
		Name:     CheckParagraphLength,
		Category: CategoryReadability,
		Priority: PriorityLow,
		Expected: fmt.Sprintf("%.0f-%.0f sentences per paragraph", MinParagraphSentences, MaxParagraphSentences),
		Measure:  func(s *Sample) (float64, string) { return ratio(s.Sentences, s.Paragraphs) },
		Pass:     between(MinParagraphSentences, MaxParagraphSentences),
	},
	{
		Name:     CheckReferences,
		Category: CategoryContent,
		Priority: PriorityHigh,
		Expected: "Present",
		Measure:  measureReferences,
		Pass:     exactly(1),
	},
	{
		Name:     CheckListUsage,
		Category: CategoryStructure,
		Priority: PriorityLow,
		Expected: fmt.Sprintf("At least %d items", MinListItems),
		Measure:  func(s *Sample) (float64, string) { return count(s.matches(listItemRe)) },
		Pass:     atLeast(MinListItems),
	},
}

// Rules returns a copy of the fixed check table, in evaluation order.
func Rules() (table []Rule) {
	table = make([]Rule, len(rules))
	copy(table, rules)
	return table
}

func measureKeywordDensity(s *Sample) (measured float64, observed string) {
	if s.Words > 0 {
		measured = float64(s.KeywordHits) / float64(s.Words) * 100
	}
	observed = fmt.Sprintf("%.2f%%", measured)
	return measured, observed
}

func measureSemanticCoverage(s *Sample) (measured float64, observed string) {
	total := len(s.SemanticKeywords)
	found := s.SemanticFound
	measured = 100
	if total > 0 {
		measured = float64(found) / float64(total) * 100
	}
	observed = fmt.Sprintf("%.0f%% (%d/%d)", measured, found, total)
	return measured, observed
}

func measureBannedPhrases(s *Sample) (measured float64, observed string) {
	total := 0
	var found []string
	for _, hit := range s.BannedHits {
		total += hit.Count
		found = append(found, hit.Phrase)
	}
	measured = float64(total)
	observed = strconv.Itoa(total)
	if len(found) > 0 {
		observed += " (" + strings.Join(found, ", ") + ")"
	}
	return measured, observed
}

func measureReferences(s *Sample) (measured float64, observed string) {
	observed = "Missing"
	for _, marker := range referenceMarkers {
		if strings.Contains(s.HTML, marker) {
			measured = 1
			observed = "Present"
			break
		}
	}
	return measured, observed
}

func count(n int) (measured float64, observed string) {
	measured = float64(n)
	observed = strconv.Itoa(n)
	return measured, observed
}

// ratio divides with a denominator of at least one.
func ratio(num, den int) (measured float64, observed string) {
	if den < 1 {
		den = 1
	}
	measured = float64(num) / float64(den)
	observed = fmt.Sprintf("%.1f", measured)
	return measured, observed
}

func between(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v >= lo && v <= hi }
}

func atLeast(lo float64) func(float64) bool {
	return func(v float64) bool { return v >= lo }
}

func exactly(n float64) func(float64) bool {
	return func(v float64) bool { return v == n }
}
