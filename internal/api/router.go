package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"go-pipeline-dashboard/internal/api/handler"
	"go-pipeline-dashboard/pkg/router"
)

// RegisterRoutes wires every dashboard endpoint. More specific routes are
// registered first so the wildcard matcher picks them before the generic
// `/api/pipelines/*` route.
func RegisterRoutes(r *router.Router) {
	r.GET("/api/", handler.Root)

	// data sources
	r.POST("/api/data-sources", handler.CreateDataSource)
	r.GET("/api/data-sources", handler.ListDataSources)

	// pipelines
	r.POST("/api/pipelines", handler.CreatePipeline)
	r.GET("/api/pipelines", handler.ListPipelines)
	r.POST("/api/pipelines/*/execute", handler.ExecutePipeline)
	r.GET("/api/pipelines/*", handler.GetPipeline)
	r.PUT("/api/pipelines/*", handler.UpdatePipeline)
	r.DELETE("/api/pipelines/*", handler.DeletePipeline)

	// runs
	r.GET("/api/pipeline-runs", handler.ListRuns)
	r.GET("/api/pipeline-runs/*", handler.GetRun)

	// quality
	r.POST("/api/quality-rules", handler.CreateQualityRule)
	r.GET("/api/quality-rules", handler.ListQualityRules)
	r.GET("/api/quality-rules/*/stats", handler.GetRuleStats)
	r.PUT("/api/quality-rules/*", handler.UpdateQualityRule)
	r.GET("/api/quality-results", handler.ListQualityResults)

	// analytics
	r.POST("/api/analytics/translate", handler.TranslateQuery)
	r.POST("/api/analytics/query", handler.ExecuteQuery)

	// dashboard
	r.GET("/api/dashboard/stats", handler.DashboardStats)
	r.POST("/api/initialize-sample-data", handler.InitializeSampleData)

	// API docs
	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
