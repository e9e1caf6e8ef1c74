package store

import (
	"time"

	"github.com/google/uuid"

	"go-pipeline-dashboard/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

// SeedSampleData wipes sources, pipelines, and rules and reinstalls the
// demo fixtures: three plants, two pipelines, three quality rules.
// Returns the inserted counts (sources, pipelines, rules).
func SeedSampleData() (int, int, int, error) {
	if err := DeleteAllDataSources(); err != nil {
		return 0, 0, 0, err
	}
	if err := DeleteAllPipelines(); err != nil {
		return 0, 0, 0, err
	}
	if err := DeleteAllQualityRules(); err != nil {
		return 0, 0, 0, err
	}

	now := time.Now().UTC()

	sources := []model.DataSource{
		{ID: uuid.New().String(), Name: "Atlanta Plant", Type: "manufacturing_plant", Location: "Atlanta, GA",
			Status: "active", Config: map[string]interface{}{"plant_code": "ATL001"}, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Chicago Plant", Type: "manufacturing_plant", Location: "Chicago, IL",
			Status: "active", Config: map[string]interface{}{"plant_code": "CHI001"}, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Los Angeles Plant", Type: "manufacturing_plant", Location: "Los Angeles, CA",
			Status: "active", Config: map[string]interface{}{"plant_code": "LA001"}, CreatedAt: now},
	}
	for _, src := range sources {
		if err := SaveDataSource(src); err != nil {
			return 0, 0, 0, err
		}
	}

	pipelines := []model.Pipeline{
		{
			ID:          uuid.New().String(),
			Name:        "Production Data ETL",
			Description: "Extract, transform, and load production data from manufacturing plants",
			SourceID:    sources[0].ID,
			Transformations: []model.Transformation{
				{Type: "remove_nulls"},
				{Type: "filter", Condition: &model.FilterCondition{Field: "quality_score", Operator: ">", Value: 80.0}},
			},
			Schedule:  "0 */6 * * *",
			Status:    model.PipelineActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          uuid.New().String(),
			Name:        "Quality Metrics Aggregation",
			Description: "Aggregate quality metrics by plant and product",
			SourceID:    sources[1].ID,
			Transformations: []model.Transformation{
				{Type: "aggregate", GroupBy: []string{"plant_id", "product"}, Field: "production_volume", Function: "sum"},
			},
			Schedule:  "0 0 * * *",
			Status:    model.PipelineActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, p := range pipelines {
		if err := SavePipeline(p); err != nil {
			return 0, 0, 0, err
		}
	}

	rules := []model.QualityRule{
		{
			ID:          uuid.New().String(),
			Name:        "Quality Score Completeness",
			Description: "Ensure all records have a quality score",
			RuleType:    model.RuleCompleteness,
			Field:       "quality_score",
			Severity:    "critical",
			Active:      true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			Name:        "Temperature Range Check",
			Description: "Temperature must be between 2°C and 8°C",
			RuleType:    model.RuleAccuracy,
			Field:       "temperature",
			Condition:   model.RuleCondition{Min: floatPtr(2), Max: floatPtr(8)},
			Severity:    "high",
			Active:      true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			Name:        "Batch ID Format",
			Description: "Batch ID must start with BATCH_",
			RuleType:    model.RuleConsistency,
			Field:       "batch_id",
			Condition:   model.RuleCondition{Pattern: "BATCH_"},
			Severity:    "medium",
			Active:      true,
			CreatedAt:   now,
		},
	}
	for _, rule := range rules {
		if err := SaveQualityRule(rule); err != nil {
			return 0, 0, 0, err
		}
	}

	return len(sources), len(pipelines), len(rules), nil
}
