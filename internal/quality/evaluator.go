package quality

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/pkg/utils"
)

// DefaultFreshnessWindow bounds how old a record's timestamp may be before a
// timeliness rule fails it. Deployment parameter, not user-configurable.
const DefaultFreshnessWindow = 7 * 24 * time.Hour

// Evaluator applies quality rules to record batches
type Evaluator struct {
	// FreshnessWindow is the timeliness boundary; zero means the default
	FreshnessWindow time.Duration
	// TimestampField names the record attribute timeliness rules read
	TimestampField string
	// Now is overridable in tests
	Now func() time.Time
}

// NewEvaluator returns an evaluator with the deployment defaults
func NewEvaluator(freshness time.Duration) *Evaluator {
	return &Evaluator{
		FreshnessWindow: freshness,
		TimestampField:  "timestamp",
		Now:             time.Now,
	}
}

// Evaluate applies one rule to a batch and returns the scored result.
// Records that cannot be evaluated count as failures for the rule, never as
// errors. An empty batch scores 0 so a run with no output does not report a
// perfect score; whether such a result is recorded at all is the caller's
// policy.
func (e *Evaluator) Evaluate(rule model.QualityRule, records []model.ProcessedRecord, runID string) model.QualityResult {
	total := len(records)
	failed := 0
	for _, rec := range records {
		if !e.pass(rule, rec) {
			failed++
		}
	}

	score := 0.0
	if total > 0 {
		score = float64(total-failed) / float64(total) * 100
	}
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	return model.QualityResult{
		ID:             uuid.New().String(),
		PipelineRunID:  runID,
		RuleID:         rule.ID,
		RuleName:       rule.Name,
		Passed:         total > 0 && failed == 0,
		RecordsChecked: total,
		RecordsFailed:  failed,
		QualityScore:   utils.Round2(score),
		Timestamp:      e.now(),
	}
}

func (e *Evaluator) pass(rule model.QualityRule, rec model.ProcessedRecord) bool {
	switch rule.RuleType {
	case model.RuleCompleteness:
		return !utils.IsEmpty(rec[rule.Field])

	case model.RuleAccuracy:
		val, ok := utils.Numeric(rec[rule.Field])
		if !ok {
			return false
		}
		if rule.Condition.Min != nil && val < *rule.Condition.Min {
			return false
		}
		if rule.Condition.Max != nil && val > *rule.Condition.Max {
			return false
		}
		return true

	case model.RuleConsistency:
		if rule.Condition.Pattern == "" {
			return true
		}
		val, ok := rec[rule.Field]
		if !ok || val == nil {
			return false
		}
		return strings.HasPrefix(fmt.Sprintf("%v", val), rule.Condition.Pattern)

	case model.RuleTimeliness:
		ts, ok := utils.ParseTime(rec[e.TimestampField])
		if !ok {
			return false
		}
		return e.now().Sub(ts) <= e.freshness()

	default:
		// unknown rule type, count the record as failed rather than erroring
		return false
	}
}

func (e *Evaluator) freshness() time.Duration {
	if e.FreshnessWindow <= 0 {
		return DefaultFreshnessWindow
	}
	return e.FreshnessWindow
}

func (e *Evaluator) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
