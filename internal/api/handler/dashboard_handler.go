package handler

import (
	"net/http"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/internal/quality"
	"go-pipeline-dashboard/internal/store"
)

// DashboardStats composes the overview page: pipeline counts, the last 10
// run outcomes, the average quality score over the last 50 results, and a
// 20-point quality trend (oldest first, for charting)
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.DashboardStats
// @Router /dashboard/stats [get]
func DashboardStats(w http.ResponseWriter, r *http.Request) {
	totalPipelines, err := store.CountPipelines("")
	if err != nil {
		writeError(w, err)
		return
	}
	activePipelines, err := store.CountPipelines(model.PipelineActive)
	if err != nil {
		writeError(w, err)
		return
	}
	totalSources, err := store.CountDataSources()
	if err != nil {
		writeError(w, err)
		return
	}

	recentRuns, err := store.ListRuns(10)
	if err != nil {
		writeError(w, err)
		return
	}
	var runStats model.RunStats
	for _, run := range recentRuns {
		switch run.Status {
		case model.RunSuccess:
			runStats.Success++
		case model.RunFailed:
			runStats.Failed++
		case model.RunRunning, model.RunPending:
			runStats.Running++
		}
	}

	results, err := store.ListQualityResults(50)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DashboardStats{
		TotalPipelines:  totalPipelines,
		ActivePipelines: activePipelines,
		TotalSources:    totalSources,
		RecentRuns:      recentRuns,
		RunStats:        runStats,
		AvgQualityScore: quality.AverageScore(results),
		QualityTrend:    quality.Trend(results, 20),
	})
}

// InitializeSampleData reseeds the demo fixtures
// @Summary Initialize sample data
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /initialize-sample-data [post]
func InitializeSampleData(w http.ResponseWriter, r *http.Request) {
	sources, pipelines, rules, err := store.SeedSampleData()
	if err != nil {
		writeError(w, err)
		return
	}

	if sched != nil {
		if seeded, err := store.ListPipelines(); err == nil {
			for _, p := range seeded {
				sched.Refresh(p)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Sample data initialized successfully",
		"sources":   sources,
		"pipelines": pipelines,
		"rules":     rules,
	})
}
