package main

import (
	"log"
	"net/http"

	"go-pipeline-dashboard/internal/api"
	"go-pipeline-dashboard/internal/api/handler"
	"go-pipeline-dashboard/internal/config"
	"go-pipeline-dashboard/internal/lifecycle"
	"go-pipeline-dashboard/internal/pipeline"
	"go-pipeline-dashboard/internal/quality"
	"go-pipeline-dashboard/internal/scheduler"
	"go-pipeline-dashboard/internal/store"

	_ "go-pipeline-dashboard/docs"

	"go-pipeline-dashboard/pkg/router"
)

// @title Pipeline Dashboard API
// @version 1.0
// @description Monitoring backend for ETL pipelines: runs, data quality, and analytics.
// @BasePath /api
func main() {
	cfg := config.Load()

	if err := store.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer store.Close()

	if cfg.SeedOnStart {
		if count, err := store.CountPipelines(""); err == nil && count == 0 {
			if _, _, _, err := store.SeedSampleData(); err != nil {
				log.Printf("⚠️ Seeding sample data failed: %v", err)
			}
		}
	}

	engine := pipeline.NewEngine(
		lifecycle.NewManager(),
		quality.NewEvaluator(cfg.FreshnessWindow),
		cfg.QualityEmptyBatchZero,
	)

	sched := scheduler.New(engine)
	if err := sched.Start(); err != nil {
		log.Printf("⚠️ Scheduler did not start: %v", err)
	}
	defer sched.Stop()

	handler.Init(engine, sched)

	r := router.New()
	api.RegisterRoutes(r)

	log.Printf("🚀 Server started on http://localhost%s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, api.CORS(cfg.CORSOrigins)(r)))
}
