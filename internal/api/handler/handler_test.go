package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pipeline-dashboard/internal/api"
	"go-pipeline-dashboard/internal/api/handler"
	"go-pipeline-dashboard/internal/lifecycle"
	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/internal/pipeline"
	"go-pipeline-dashboard/internal/quality"
	"go-pipeline-dashboard/internal/store"
	"go-pipeline-dashboard/pkg/router"
)

// newTestServer wires a fresh SQLite file, a real engine, and the full route
// table. The scheduler stays nil so nothing fires in the background.
func newTestServer(t *testing.T) *router.Router {
	t.Helper()

	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "dashboard.db")))
	t.Cleanup(func() { store.Close() })

	engine := pipeline.NewEngine(lifecycle.NewManager(), quality.NewEvaluator(0), true)
	handler.Init(engine, nil)

	r := router.New()
	api.RegisterRoutes(r)
	return r
}

func do(t *testing.T, r *router.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func seed(t *testing.T, r *router.Router) {
	t.Helper()
	rec := do(t, r, http.MethodPost, "/api/initialize-sample-data", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func seededPipeline(t *testing.T, r *router.Router, name string) model.Pipeline {
	t.Helper()

	rec := do(t, r, http.MethodGet, "/api/pipelines", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var pipelines []model.Pipeline
	decode(t, rec, &pipelines)
	for _, p := range pipelines {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("pipeline %q not found", name)
	return model.Pipeline{}
}

func TestRootMessage(t *testing.T) {
	r := newTestServer(t)

	rec := do(t, r, http.MethodGet, "/api/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]interface{}
	decode(t, rec, &payload)
	assert.Equal(t, "Data Pipeline Engineering Platform API", payload["message"])
}

func TestInitializeSampleData(t *testing.T) {
	r := newTestServer(t)

	rec := do(t, r, http.MethodPost, "/api/initialize-sample-data", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]interface{}
	decode(t, rec, &payload)
	assert.Equal(t, float64(3), payload["sources"])
	assert.Equal(t, float64(2), payload["pipelines"])
	assert.Equal(t, float64(3), payload["rules"])

	// reseeding replaces the fixtures instead of stacking them
	seed(t, r)
	rec = do(t, r, http.MethodGet, "/api/data-sources", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sources []model.DataSource
	decode(t, rec, &sources)
	assert.Len(t, sources, 3)
}

func TestPipelineCRUD(t *testing.T) {
	r := newTestServer(t)

	rec := do(t, r, http.MethodPost, "/api/data-sources", model.DataSourceCreate{
		Name: "Test Plant", Type: "manufacturing_plant", Location: "Austin, TX",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var src model.DataSource
	decode(t, rec, &src)
	assert.Equal(t, "active", src.Status)

	rec = do(t, r, http.MethodPost, "/api/pipelines", model.PipelineCreate{
		Name:     "Cleanup",
		SourceID: src.ID,
		Transformations: []model.Transformation{
			{Type: "remove_nulls"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created model.Pipeline
	decode(t, rec, &created)
	assert.Equal(t, model.PipelineDraft, created.Status)
	assert.NotEmpty(t, created.ID)

	rec = do(t, r, http.MethodGet, "/api/pipelines/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	name := "Cleanup v2"
	status := model.PipelineActive
	rec = do(t, r, http.MethodPut, "/api/pipelines/"+created.ID, model.PipelineUpdate{
		Name: &name, Status: &status,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.Pipeline
	decode(t, rec, &updated)
	assert.Equal(t, "Cleanup v2", updated.Name)
	assert.Equal(t, model.PipelineActive, updated.Status)

	rec = do(t, r, http.MethodDelete, "/api/pipelines/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/pipelines/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePipelineRejectsBadPayload(t *testing.T) {
	r := newTestServer(t)

	rec := do(t, r, http.MethodPost, "/api/pipelines", map[string]interface{}{
		"description": "missing name and source",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad := "archived"
	rec = do(t, r, http.MethodPut, "/api/pipelines/whatever", model.PipelineUpdate{Status: &bad})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExecuteDraftPipelineRejected(t *testing.T) {
	r := newTestServer(t)

	rec := do(t, r, http.MethodPost, "/api/data-sources", model.DataSourceCreate{
		Name: "Plant", Type: "manufacturing_plant",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var src model.DataSource
	decode(t, rec, &src)

	rec = do(t, r, http.MethodPost, "/api/pipelines", model.PipelineCreate{
		Name: "Drafted", SourceID: src.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var p model.Pipeline
	decode(t, rec, &p)

	rec = do(t, r, http.MethodPost, "/api/pipelines/"+p.ID+"/execute", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExecuteUnknownPipeline(t *testing.T) {
	r := newTestServer(t)

	rec := do(t, r, http.MethodPost, "/api/pipelines/no-such-id/execute", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExecuteSeededPipeline(t *testing.T) {
	r := newTestServer(t)
	seed(t, r)
	p := seededPipeline(t, r, "Production Data ETL")

	rec := do(t, r, http.MethodPost, "/api/pipelines/"+p.ID+"/execute", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var run model.Run
	decode(t, rec, &run)
	assert.Equal(t, model.RunSuccess, run.Status)
	assert.Equal(t, p.ID, run.PipelineID)
	assert.Greater(t, run.RecordsProcessed, 0)
	assert.NotNil(t, run.EndTime)
	require.NotNil(t, run.Metrics)
	assert.Equal(t, 3, run.Metrics.RulesEvaluated)
	require.NotNil(t, run.Metrics.OverallQualityScore)
	assert.Greater(t, *run.Metrics.OverallQualityScore, 0.0)
	assert.NotEmpty(t, run.Logs)
	assert.Equal(t, "Starting data ingestion...", run.Logs[0].Message)

	// the run and its quality results are queryable afterwards
	rec = do(t, r, http.MethodGet, "/api/pipeline-runs/"+run.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched model.Run
	decode(t, rec, &fetched)
	assert.Equal(t, run.ID, fetched.ID)
	assert.Equal(t, model.RunSuccess, fetched.Status)

	rec = do(t, r, http.MethodGet, "/api/quality-results", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []model.QualityResult
	decode(t, rec, &results)
	assert.Len(t, results, 3)
	for _, res := range results {
		assert.Equal(t, run.ID, res.PipelineRunID)
	}
}

func TestListRuns(t *testing.T) {
	r := newTestServer(t)
	seed(t, r)

	rec := do(t, r, http.MethodGet, "/api/pipeline-runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []model.Run
	decode(t, rec, &runs)
	assert.Empty(t, runs)

	p := seededPipeline(t, r, "Production Data ETL")
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/pipelines/"+p.ID+"/execute", nil).Code)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/pipelines/"+p.ID+"/execute", nil).Code)

	rec = do(t, r, http.MethodGet, "/api/pipeline-runs?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &runs)
	assert.Len(t, runs, 1)

	rec = do(t, r, http.MethodGet, "/api/pipeline-runs/no-such-run", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQualityRuleLifecycle(t *testing.T) {
	r := newTestServer(t)

	// accuracy without bounds is rejected
	rec := do(t, r, http.MethodPost, "/api/quality-rules", model.QualityRuleCreate{
		Name: "Bad Range", RuleType: model.RuleAccuracy, Field: "temperature", Severity: "high",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	min, max := 0.0, 100.0
	rec = do(t, r, http.MethodPost, "/api/quality-rules", model.QualityRuleCreate{
		Name:      "Score Range",
		RuleType:  model.RuleAccuracy,
		Field:     "quality_score",
		Condition: model.RuleCondition{Min: &min, Max: &max},
		Severity:  "high",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var rule model.QualityRule
	decode(t, rec, &rule)
	assert.True(t, rule.Active)

	active := false
	rec = do(t, r, http.MethodPut, "/api/quality-rules/"+rule.ID, model.QualityRuleUpdate{Active: &active})
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled model.QualityRule
	decode(t, rec, &toggled)
	assert.False(t, toggled.Active)

	rec = do(t, r, http.MethodGet, "/api/quality-rules", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rules []model.QualityRule
	decode(t, rec, &rules)
	require.Len(t, rules, 1)
	assert.False(t, rules[0].Active)

	rec = do(t, r, http.MethodPut, "/api/quality-rules/no-such-rule", model.QualityRuleUpdate{Active: &active})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRuleStats(t *testing.T) {
	r := newTestServer(t)
	seed(t, r)
	p := seededPipeline(t, r, "Production Data ETL")
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/pipelines/"+p.ID+"/execute", nil).Code)

	rec := do(t, r, http.MethodGet, "/api/quality-rules", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rules []model.QualityRule
	decode(t, rec, &rules)
	require.NotEmpty(t, rules)

	rec = do(t, r, http.MethodGet, "/api/quality-rules/"+rules[0].ID+"/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats model.RuleStats
	decode(t, rec, &stats)
	assert.Equal(t, 1, stats.TotalChecks)
	require.NotNil(t, stats.LastCheck)
	assert.Equal(t, rules[0].ID, stats.LastCheck.RuleID)

	rec = do(t, r, http.MethodGet, "/api/quality-rules/no-such-rule/stats", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyticsFlow(t *testing.T) {
	r := newTestServer(t)
	seed(t, r)
	p := seededPipeline(t, r, "Production Data ETL")
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/pipelines/"+p.ID+"/execute", nil).Code)

	rec := do(t, r, http.MethodPost, "/api/analytics/translate", handler.TranslateRequest{
		Text: "total production volume GROUP BY plant_id",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var req model.QueryRequest
	decode(t, rec, &req)
	assert.Equal(t, model.QueryGroupBy, req.Type)
	assert.Equal(t, "plant_id", req.GroupField)
	assert.Equal(t, model.AggSum, req.AggFunc)

	rec = do(t, r, http.MethodPost, "/api/analytics/query", req)
	require.Equal(t, http.StatusOK, rec.Code)
	var result model.QueryResult
	decode(t, rec, &result)
	assert.Greater(t, result.RowCount, 0)
	assert.LessOrEqual(t, result.RowCount, 5)
	for _, row := range result.Rows {
		assert.Contains(t, row, "plant_id")
		assert.Contains(t, row, "production_volume")
	}
}

func TestDashboardStats(t *testing.T) {
	r := newTestServer(t)
	seed(t, r)
	p := seededPipeline(t, r, "Production Data ETL")
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/pipelines/"+p.ID+"/execute", nil).Code)

	rec := do(t, r, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats model.DashboardStats
	decode(t, rec, &stats)
	assert.Equal(t, 2, stats.TotalPipelines)
	assert.Equal(t, 2, stats.ActivePipelines)
	assert.Equal(t, 3, stats.TotalSources)
	require.Len(t, stats.RecentRuns, 1)
	assert.Equal(t, 1, stats.RunStats.Success)
	assert.Equal(t, 0, stats.RunStats.Failed)
	assert.Greater(t, stats.AvgQualityScore, 0.0)
	assert.Len(t, stats.QualityTrend, 3)
}

func TestUnknownRoute(t *testing.T) {
	r := newTestServer(t)

	rec := do(t, r, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
