package quality

import (
	"fmt"
	"math"
	"regexp"

	"github.com/nikogura/content-qa/pkg/policy"
)

// Checker evaluates documents against the fixed rule table.
// A Checker holds no mutable state and may be shared between goroutines.
type Checker struct {
	year   int
	banned []bannedMatcher
}

type bannedMatcher struct {
	phrase string
	re     *regexp.Regexp
}

// NewChecker creates a checker for the given policy.
func NewChecker(p policy.Policy) (checker *Checker) {
	checker = &Checker{
		year:   p.CurrentYear,
		banned: make([]bannedMatcher, 0, len(p.BannedPhrases)),
	}

	for _, bp := range p.BannedPhrases {
		checker.banned = append(checker.banned, bannedMatcher{phrase: bp.Phrase, re: bp.Pattern()})
	}

	return checker
}

// Evaluate runs every rule against the document and scores the result.
// Malformed or empty input is scored, never rejected.
func (c *Checker) Evaluate(doc, primaryKeyword string, semanticKeywords []string, candidates []LinkCandidate) (report Report) {
	sample := c.newSample(doc, primaryKeyword, semanticKeywords)

	report.Checks = make([]CheckResult, 0, len(rules))
	for _, rule := range rules {
		measured, observed := rule.Measure(sample)
		report.Checks = append(report.Checks, CheckResult{
			Name:     rule.Name,
			Passed:   rule.Pass(measured),
			Measured: measured,
			Observed: observed,
			Expected: rule.Expected,
			Priority: rule.Priority,
			Category: rule.Category,
		})
	}

	passed := report.PassedCount()
	report.Score = Score(passed, len(report.Checks))
	report.Passed = len(report.Failures(PriorityCritical)) == 0 && report.Score >= PassThreshold
	report.Recommendations = recommend(report)
	report.Summary = summarize(report.Passed, report.Score, passed, len(report.Checks))
	report.LinkSuggestions = SuggestInternalLinks(doc, candidates, MaxLinks-sample.Links)

	return report
}

// Score is the rounded percentage of passing checks.
func Score(passed, total int) (score int) {
	if total <= 0 {
		return score
	}
	score = int(math.Round(100 * float64(passed) / float64(total)))
	return score
}

func summarize(ok bool, score, passed, total int) (summary string) {
	verdict := "FAILED"
	if ok {
		verdict = "PASSED"
	}
	summary = fmt.Sprintf("Content %s quality validation (%d%% - %d/%d checks)", verdict, score, passed, total)
	return summary
}
