package quality

import (
	"sort"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/pkg/utils"
)

// Summarize reduces a rule's result history to its dashboard statistics.
// Results belonging to other rules are ignored, so callers can pass the full
// result log unfiltered.
func Summarize(rule model.QualityRule, results []model.QualityResult) model.RuleStats {
	var stats model.RuleStats
	var sum float64

	for i := range results {
		res := results[i]
		if res.RuleID != rule.ID {
			continue
		}
		sum += res.QualityScore
		stats.TotalChecks++
		// latest timestamp wins, ties broken by insertion order (latest wins)
		if stats.LastCheck == nil || !res.Timestamp.Before(stats.LastCheck.Timestamp) {
			stats.LastCheck = &res
		}
	}

	if stats.TotalChecks > 0 {
		stats.AvgScore = utils.Round2(sum / float64(stats.TotalChecks))
	}
	return stats
}

// Trend returns the most recent window results across all rules in timestamp
// order, oldest first, for charting. Pure read-side view, no side effects.
func Trend(results []model.QualityResult, window int) []model.QualityResult {
	ordered := make([]model.QualityResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	if window > 0 && len(ordered) > window {
		ordered = ordered[len(ordered)-window:]
	}
	return ordered
}

// AverageScore is the arithmetic mean over a result set, 0 when empty.
// Feeds the dashboard's headline quality number.
func AverageScore(results []model.QualityResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, res := range results {
		sum += res.QualityScore
	}
	return utils.Round2(sum / float64(len(results)))
}
