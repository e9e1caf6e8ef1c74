package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-pipeline-dashboard/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func testEvaluator() *Evaluator {
	ev := NewEvaluator(24 * time.Hour)
	ev.Now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	return ev
}

func TestEvaluateAccuracyRange(t *testing.T) {
	rule := model.QualityRule{
		ID: "r1", Name: "pH range", RuleType: model.RuleAccuracy, Field: "ph_level",
		Condition: model.RuleCondition{Min: floatPtr(6), Max: floatPtr(8)},
	}
	records := []model.ProcessedRecord{
		{"ph_level": 7.0},
		{"ph_level": 9.0},
		{"ph_level": nil},
	}

	res := testEvaluator().Evaluate(rule, records, "run-1")

	assert.Equal(t, 3, res.RecordsChecked)
	assert.Equal(t, 2, res.RecordsFailed)
	assert.Equal(t, 33.33, res.QualityScore)
	assert.False(t, res.Passed)
	assert.Equal(t, "r1", res.RuleID)
	assert.Equal(t, "run-1", res.PipelineRunID)
}

func TestEvaluateAccuracyBoundsAreInclusive(t *testing.T) {
	rule := model.QualityRule{
		ID: "r1", RuleType: model.RuleAccuracy, Field: "temperature",
		Condition: model.RuleCondition{Min: floatPtr(2), Max: floatPtr(8)},
	}
	records := []model.ProcessedRecord{
		{"temperature": 2.0},
		{"temperature": 8.0},
	}

	res := testEvaluator().Evaluate(rule, records, "run-1")

	assert.Equal(t, 100.0, res.QualityScore)
	assert.True(t, res.Passed)
}

func TestEvaluateCompleteness(t *testing.T) {
	rule := model.QualityRule{ID: "r2", RuleType: model.RuleCompleteness, Field: "quality_score"}
	records := []model.ProcessedRecord{
		{"quality_score": 92.5},
		{"quality_score": nil},
		{"quality_score": ""},
		{"other_field": 1.0},
	}

	res := testEvaluator().Evaluate(rule, records, "run-1")

	assert.Equal(t, 3, res.RecordsFailed)
	assert.Equal(t, 25.0, res.QualityScore)
}

func TestEvaluateConsistencyPrefix(t *testing.T) {
	rule := model.QualityRule{
		ID: "r3", RuleType: model.RuleConsistency, Field: "batch_id",
		Condition: model.RuleCondition{Pattern: "BATCH_"},
	}
	records := []model.ProcessedRecord{
		{"batch_id": "BATCH_1234"},
		{"batch_id": "LOT_5678"},
		{},
	}

	res := testEvaluator().Evaluate(rule, records, "run-1")

	assert.Equal(t, 2, res.RecordsFailed)
	assert.Equal(t, 33.33, res.QualityScore)
}

func TestEvaluateTimeliness(t *testing.T) {
	ev := testEvaluator()
	now := ev.Now()
	rule := model.QualityRule{ID: "r4", RuleType: model.RuleTimeliness, Field: "timestamp"}
	records := []model.ProcessedRecord{
		{"timestamp": now.Add(-time.Hour).Format(time.RFC3339)},
		{"timestamp": now.Add(-48 * time.Hour).Format(time.RFC3339)}, // stale
		{"timestamp": "not a timestamp"},
		{},
	}

	res := ev.Evaluate(rule, records, "run-1")

	assert.Equal(t, 3, res.RecordsFailed)
	assert.Equal(t, 25.0, res.QualityScore)
}

func TestEvaluateEmptyBatchScoresZero(t *testing.T) {
	rule := model.QualityRule{ID: "r5", RuleType: model.RuleCompleteness, Field: "quality_score"}

	res := testEvaluator().Evaluate(rule, nil, "run-1")

	assert.Equal(t, 0, res.RecordsChecked)
	assert.Equal(t, 0.0, res.QualityScore)
	assert.False(t, res.Passed)
}

func TestEvaluateUnknownRuleTypeFailsRecords(t *testing.T) {
	rule := model.QualityRule{ID: "r6", RuleType: "uniqueness", Field: "record_id"}
	records := []model.ProcessedRecord{{"record_id": "REC_000001"}}

	res := testEvaluator().Evaluate(rule, records, "run-1")

	assert.Equal(t, 1, res.RecordsFailed)
	assert.Equal(t, 0.0, res.QualityScore)
}

func TestEvaluateScoreAlwaysInRange(t *testing.T) {
	rules := []model.QualityRule{
		{ID: "a", RuleType: model.RuleCompleteness, Field: "x"},
		{ID: "b", RuleType: model.RuleAccuracy, Field: "x", Condition: model.RuleCondition{Min: floatPtr(0)}},
		{ID: "c", RuleType: "bogus", Field: "x"},
	}
	batches := [][]model.ProcessedRecord{
		nil,
		{{"x": 1.0}},
		{{"x": nil}, {"x": "str"}, {"x": -5.0}},
	}

	ev := testEvaluator()
	for _, rule := range rules {
		for _, batch := range batches {
			res := ev.Evaluate(rule, batch, "run-1")
			assert.GreaterOrEqual(t, res.QualityScore, 0.0)
			assert.LessOrEqual(t, res.QualityScore, 100.0)
		}
	}
}
