package scheduler

import (
	"errors"
	"log"

	"github.com/robfig/cron/v3"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/internal/pipeline"
	"go-pipeline-dashboard/internal/store"
)

// Scheduler fires active pipelines on their cron schedules. A tick that
// finds the pipeline already running is skipped; the lifecycle manager's
// conflict check is the single authority on double execution.
type Scheduler struct {
	engine  *pipeline.Engine
	cron    *cron.Cron
	entries map[string]cron.EntryID // pipeline ID -> cron entry
}

// New creates a scheduler bound to the execution engine
func New(engine *pipeline.Engine) *Scheduler {
	return &Scheduler{
		engine:  engine,
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
	}
}

// Start schedules every active pipeline that carries a cron expression and
// starts the ticker
func (s *Scheduler) Start() error {
	pipelines, err := store.ListPipelines()
	if err != nil {
		return err
	}

	for _, p := range pipelines {
		if p.Status == model.PipelineActive && p.Schedule != "" {
			if err := s.Schedule(p); err != nil {
				log.Printf("⚠️ Could not schedule pipeline %q: %v", p.Name, err)
			}
		}
	}

	s.cron.Start()
	log.Printf("⏰ Scheduler started with %d pipeline(s)", len(s.entries))
	return nil
}

// Stop halts the ticker; running jobs finish on their own
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Schedule registers or replaces the cron entry for one pipeline
func (s *Scheduler) Schedule(p model.Pipeline) error {
	schedule, err := cron.ParseStandard(p.Schedule)
	if err != nil {
		return model.Validationf("invalid cron expression %q: %v", p.Schedule, err)
	}

	s.Unschedule(p.ID)

	pipelineID := p.ID
	entryID := s.cron.Schedule(schedule, cron.FuncJob(func() {
		s.fire(pipelineID)
	}))
	s.entries[p.ID] = entryID
	log.Printf("⏰ Scheduled pipeline %q (%s)", p.Name, p.Schedule)
	return nil
}

// Unschedule drops the cron entry for a pipeline if one exists
func (s *Scheduler) Unschedule(pipelineID string) {
	if entryID, ok := s.entries[pipelineID]; ok {
		s.cron.Remove(entryID)
		delete(s.entries, pipelineID)
	}
}

// Refresh re-evaluates one pipeline's schedule after an edit: active
// pipelines with a schedule stay registered, everything else is dropped
func (s *Scheduler) Refresh(p model.Pipeline) {
	if p.Status == model.PipelineActive && p.Schedule != "" {
		if err := s.Schedule(p); err != nil {
			log.Printf("⚠️ Could not reschedule pipeline %q: %v", p.Name, err)
		}
		return
	}
	s.Unschedule(p.ID)
}

func (s *Scheduler) fire(pipelineID string) {
	run, err := s.engine.Execute(pipelineID)
	if err != nil {
		var conflict *model.ConflictError
		if errors.As(err, &conflict) {
			log.Printf("⏰ Skipping scheduled execution of %s: previous run still in progress", pipelineID)
			return
		}
		log.Printf("❌ Scheduled execution of %s failed to start: %v", pipelineID, err)
		return
	}
	log.Printf("⏰ Scheduled run %s finished with status %s", run.ID, run.Status)
}
