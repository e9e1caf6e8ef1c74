package pipeline

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-pipeline-dashboard/internal/lifecycle"
	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/internal/quality"
	"go-pipeline-dashboard/internal/store"
	"go-pipeline-dashboard/pkg/utils"
)

// ruleWorkers bounds concurrent rule evaluation within one run. Rules are
// independent of each other, so they may run in parallel.
const ruleWorkers = 3

// Engine executes a pipeline end to end: ingest, transform, quality-check,
// sample, complete. Step failures terminate the run as failed rather than
// propagating, so callers always get a structured run back.
type Engine struct {
	Lifecycle *lifecycle.Manager
	Evaluator *quality.Evaluator
	// RecordEmptyBatches controls whether a zero-record evaluation is
	// persisted as a 0% result or dropped from the result log
	RecordEmptyBatches bool
	// BatchSize is how many records one run ingests
	BatchSize int
	// SampleSize is how many transformed records are stored for analytics
	SampleSize int
}

// NewEngine builds an engine with the dashboard defaults
func NewEngine(lm *lifecycle.Manager, ev *quality.Evaluator, recordEmptyBatches bool) *Engine {
	return &Engine{
		Lifecycle:          lm,
		Evaluator:          ev,
		RecordEmptyBatches: recordEmptyBatches,
		BatchSize:          100,
		SampleSize:         50,
	}
}

// Execute runs the pipeline identified by pipelineID and returns its run.
// The returned error is reserved for requests that never produced a run:
// unknown pipeline, draft pipeline, or a pipeline already running.
func (e *Engine) Execute(pipelineID string) (model.Run, error) {
	p, err := store.GetPipeline(pipelineID)
	if err != nil {
		return model.Run{}, err
	}

	run, err := e.Lifecycle.Start(&p)
	if err != nil {
		return model.Run{}, err
	}
	log.Printf("🚀 Starting run %s for pipeline %q", run.ID, p.Name)

	e.Lifecycle.AppendLog(run, model.LevelInfo, "Starting data ingestion...")
	raw := GeneratePlantData(e.BatchSize)
	e.Lifecycle.AppendLog(run, model.LevelInfo, fmt.Sprintf("Ingested %d records", len(raw)))

	e.Lifecycle.AppendLog(run, model.LevelInfo, "Applying transformations...")
	transformed, err := Apply(raw, run.Transformations)
	if err != nil {
		return e.fail(run, fmt.Sprintf("transformation failed: %v", err))
	}
	e.Lifecycle.AppendLog(run, model.LevelInfo, fmt.Sprintf("Transformed to %d records", len(transformed)))

	e.Lifecycle.AppendLog(run, model.LevelInfo, "Running data quality checks...")
	rules, err := store.ListQualityRules(true)
	if err != nil {
		return e.fail(run, fmt.Sprintf("loading quality rules failed: %v", err))
	}

	results := e.evaluateRules(rules, transformed, run.ID)
	var metrics *model.RunMetrics
	if len(results) > 0 {
		var sum float64
		for _, res := range results {
			if e.RecordEmptyBatches || res.RecordsChecked > 0 {
				if err := store.SaveQualityResult(res); err != nil {
					return e.fail(run, fmt.Sprintf("saving quality result failed: %v", err))
				}
			}
			sum += res.QualityScore
		}
		overall := utils.Round2(sum / float64(len(results)))
		metrics = &model.RunMetrics{OverallQualityScore: &overall, RulesEvaluated: len(results)}
		e.Lifecycle.AppendLog(run, model.LevelInfo, fmt.Sprintf("Quality score: %.2f%%", overall))
	}

	sample := transformed
	if len(sample) > e.SampleSize {
		sample = sample[:e.SampleSize]
	}
	batch := model.ProcessedBatch{
		ID:            uuid.New().String(),
		PipelineRunID: run.ID,
		Data:          sample,
		Metadata: map[string]interface{}{
			"total_records": len(transformed),
		},
		Timestamp: time.Now().UTC(),
	}
	if err := store.SaveProcessedBatch(batch); err != nil {
		return e.fail(run, fmt.Sprintf("saving processed data failed: %v", err))
	}

	run.RecordsProcessed = len(transformed)
	run.RecordsFailed = len(raw) - len(transformed)
	e.Lifecycle.AppendLog(run, model.LevelSuccess, "Pipeline completed successfully")
	if err := e.Lifecycle.Complete(run, model.RunSuccess, "", metrics); err != nil {
		return model.Run{}, err
	}

	if err := store.SaveRun(*run); err != nil {
		return model.Run{}, err
	}
	log.Printf("🏁 Run %s for pipeline %q completed in %v", run.ID, p.Name, run.EndTime.Sub(run.StartTime))
	return *run, nil
}

// fail terminates the run as failed with the given message and persists it.
// The failure is reported inside the run, not as a transport error.
func (e *Engine) fail(run *model.Run, message string) (model.Run, error) {
	e.Lifecycle.AppendLog(run, model.LevelError, "Pipeline failed: "+message)
	if err := e.Lifecycle.Complete(run, model.RunFailed, message, nil); err != nil {
		return model.Run{}, err
	}
	if err := store.SaveRun(*run); err != nil {
		return model.Run{}, err
	}
	log.Printf("❌ Run %s failed: %s", run.ID, message)
	return *run, nil
}

// evaluateRules scores every rule against the batch with a small worker
// pool, preserving rule order in the result slice
func (e *Engine) evaluateRules(rules []model.QualityRule, records []model.ProcessedRecord, runID string) []model.QualityResult {
	if len(rules) == 0 {
		return nil
	}

	results := make([]model.QualityResult, len(rules))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := ruleWorkers
	if len(rules) < workers {
		workers = len(rules)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.Evaluator.Evaluate(rules[i], records, runID)
			}
		}()
	}
	for i := range rules {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
