package quality

import (
	"fmt"
)

// recommend derives the recommendation list from the check results alone.
func recommend(report Report) (recs []Recommendation) {
	recs = []Recommendation{}

	if !report.Passed {
		for _, f := range report.Failures(PriorityCritical) {
			recs = append(recs, failureRecommendation(RecommendCritical, f))
		}

		for _, f := range report.Failures(PriorityHigh) {
			recs = append(recs, failureRecommendation(RecommendHigh, f))
		}

		if report.Score < PassThreshold {
			recs = append(recs, Recommendation{
				Kind:    RecommendScore,
				Message: fmt.Sprintf("Improve overall content quality to reach %d%%+", PassThreshold),
			})
		}

		return recs
	}

	if report.Score < ExcellentThreshold {
		recs = append(recs,
			Recommendation{Kind: RecommendGood, Message: "Content meets minimum standards"},
			Recommendation{Kind: RecommendTip, Message: fmt.Sprintf("Aim for %d%%+ score for exceptional quality", ExcellentThreshold)},
		)
		return recs
	}

	recs = append(recs, Recommendation{Kind: RecommendExcellent, Message: "Content exceeds quality standards!"})
	return recs
}

func failureRecommendation(kind RecommendationKind, c CheckResult) (rec Recommendation) {
	rec = Recommendation{
		Kind:    kind,
		Check:   c.Name,
		Message: fmt.Sprintf("%s: %s (expected: %s)", c.Name, c.Observed, c.Expected),
	}
	return rec
}
