package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-pipeline-dashboard/internal/config"
	"go-pipeline-dashboard/internal/lifecycle"
	"go-pipeline-dashboard/internal/pipeline"
	"go-pipeline-dashboard/internal/quality"
	"go-pipeline-dashboard/internal/store"
)

// simulate executes one pipeline against the local database and prints the
// run summary. Useful for trying out transformation steps without the API.
func main() {
	pipelineID := flag.String("pipeline", "", "pipeline id to execute (default: first pipeline in the database)")
	seed := flag.Bool("seed", false, "install the sample fixtures before executing")
	flag.Parse()

	cfg := config.Load()
	if err := store.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer store.Close()

	if *seed {
		sources, pipelines, rules, err := store.SeedSampleData()
		if err != nil {
			log.Fatalf("seeding sample data: %v", err)
		}
		fmt.Printf("Seeded %d sources, %d pipelines, %d rules\n", sources, pipelines, rules)
	}

	id := *pipelineID
	if id == "" {
		pipelines, err := store.ListPipelines()
		if err != nil || len(pipelines) == 0 {
			log.Fatal("no pipelines in the database, run with -seed first")
		}
		id = pipelines[0].ID
	}

	engine := pipeline.NewEngine(
		lifecycle.NewManager(),
		quality.NewEvaluator(cfg.FreshnessWindow),
		cfg.QualityEmptyBatchZero,
	)

	run, err := engine.Execute(id)
	if err != nil {
		log.Fatalf("execution failed to start: %v", err)
	}

	fmt.Printf("\nRun %s (%s)\n", run.ID, run.Status)
	fmt.Printf("  pipeline: %s\n", run.PipelineName)
	fmt.Printf("  records:  %d processed, %d dropped\n", run.RecordsProcessed, run.RecordsFailed)
	if run.Metrics != nil && run.Metrics.OverallQualityScore != nil {
		fmt.Printf("  quality:  %.2f%% over %d rule(s)\n", *run.Metrics.OverallQualityScore, run.Metrics.RulesEvaluated)
	}
	if run.ErrorMessage != "" {
		fmt.Printf("  error:    %s\n", run.ErrorMessage)
	}
	for _, entry := range run.Logs {
		fmt.Printf("  [%s] %s %s\n", entry.Timestamp.Format("15:04:05"), entry.Level, entry.Message)
	}

	if run.Status != "success" {
		os.Exit(1)
	}
}
