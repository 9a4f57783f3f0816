package quality

// Priority ranks how much a failing check matters.
type Priority string

// Check priorities. A critical failure alone keeps a report from passing.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Category groups checks for reporting.
type Category string

// Check categories.
const (
	CategoryStructure   Category = "structure"
	CategorySEO         Category = "seo"
	CategoryReadability Category = "readability"
	CategoryContent     Category = "content"
	CategoryLinks       Category = "links"
)

// CheckResult is the outcome of a single rule against a single document.
type CheckResult struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Measured float64  `json:"measured"`
	Observed string   `json:"observed"`
	Expected string   `json:"expected"`
	Priority Priority `json:"priority"`
	Category Category `json:"category"`
}

// RecommendationKind classifies a recommendation line.
type RecommendationKind string

// Recommendation kinds, in the order they are emitted.
const (
	RecommendCritical  RecommendationKind = "critical"
	RecommendHigh      RecommendationKind = "high"
	RecommendScore     RecommendationKind = "score"
	RecommendGood      RecommendationKind = "good"
	RecommendTip       RecommendationKind = "tip"
	RecommendExcellent RecommendationKind = "excellent"
)

// Recommendation is an action item derived from the check results.
type Recommendation struct {
	Kind    RecommendationKind `json:"kind"`
	Check   string             `json:"check,omitempty"`
	Message string             `json:"message"`
}

// LinkCandidate is an existing page on the site that the article could link to.
type LinkCandidate struct {
	Title string `json:"title" yaml:"title"`
	Slug  string `json:"slug" yaml:"slug"`
}

// LinkSuggestion proposes an internal link whose anchor text already appears in the article.
type LinkSuggestion struct {
	AnchorText string `json:"anchor_text"`
	TargetSlug string `json:"target_slug"`
	Context    string `json:"context"`
}

// Report aggregates every check result for one document.
type Report struct {
	Passed          bool             `json:"passed"`
	Score           int              `json:"score"`
	Summary         string           `json:"summary"`
	Checks          []CheckResult    `json:"checks"`
	Recommendations []Recommendation `json:"recommendations"`
	LinkSuggestions []LinkSuggestion `json:"link_suggestions,omitempty"`
}

// CategoryGroup is the set of checks belonging to one category.
type CategoryGroup struct {
	Category Category
	Checks   []CheckResult
}

// PassedCount returns the number of passing checks.
func (r Report) PassedCount() (count int) {
	for _, c := range r.Checks {
		if c.Passed {
			count++
		}
	}
	return count
}

// Failures returns the failing checks of the given priority, in check order.
func (r Report) Failures(priority Priority) (failures []CheckResult) {
	for _, c := range r.Checks {
		if !c.Passed && c.Priority == priority {
			failures = append(failures, c)
		}
	}
	return failures
}

// Check returns the result for the named check.
func (r Report) Check(name string) (result CheckResult, ok bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			result = c
			ok = true
			return result, ok
		}
	}
	return result, ok
}

// ByCategory groups the checks by category, keeping categories in order of first appearance.
func (r Report) ByCategory() (groups []CategoryGroup) {
	index := make(map[Category]int)
	for _, c := range r.Checks {
		i, ok := index[c.Category]
		if !ok {
			i = len(groups)
			index[c.Category] = i
			groups = append(groups, CategoryGroup{Category: c.Category})
		}
		groups[i].Checks = append(groups[i].Checks, c)
	}
	return groups
}
