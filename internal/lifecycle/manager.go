package lifecycle

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-pipeline-dashboard/internal/model"
)

// Manager owns the run state machine: pending → running → {success, failed}.
// It enforces at most one running run per pipeline and rejects any mutation
// of a run that has reached a terminal state.
type Manager struct {
	mu      sync.Mutex
	running map[string]string // pipeline ID -> active run ID
	now     func() time.Time
}

// NewManager returns an empty lifecycle manager
func NewManager() *Manager {
	return &Manager{
		running: make(map[string]string),
		now:     time.Now,
	}
}

// Start creates a run for the pipeline and claims its execution slot.
// Draft pipelines cannot run; a pipeline that already has a running run
// yields a ConflictError instead of queueing silently.
func (m *Manager) Start(p *model.Pipeline) (*model.Run, error) {
	if p.Status == model.PipelineDraft {
		return nil, &model.InvalidStateError{
			Msg: fmt.Sprintf("pipeline %q is a draft and cannot be executed", p.Name),
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if runID, busy := m.running[p.ID]; busy {
		return nil, &model.ConflictError{
			Msg: fmt.Sprintf("pipeline %q already has run %s in progress", p.Name, runID),
		}
	}

	// snapshot the transformations so the run's history survives later edits
	steps := make([]model.Transformation, len(p.Transformations))
	copy(steps, p.Transformations)

	run := &model.Run{
		ID:              uuid.New().String(),
		PipelineID:      p.ID,
		PipelineName:    p.Name,
		Status:          model.RunRunning,
		StartTime:       m.now(),
		Transformations: steps,
		Logs:            []model.LogEntry{},
	}
	m.running[p.ID] = run.ID
	return run, nil
}

// AppendLog appends one entry to the run's log, allowed only while the run
// is still running
func (m *Manager) AppendLog(run *model.Run, level, message string) error {
	if run.Status != model.RunRunning {
		return &model.InvalidStateError{
			Msg: fmt.Sprintf("cannot append log to run in state %q", run.Status),
		}
	}
	run.Logs = append(run.Logs, model.LogEntry{
		Timestamp: m.now(),
		Level:     level,
		Message:   message,
	})
	return nil
}

// Complete transitions the run to a terminal state and releases the
// pipeline's execution slot. A failed outcome requires an error message; a
// success outcome over evaluated rules requires the overall quality score.
func (m *Manager) Complete(run *model.Run, outcome, errorMessage string, metrics *model.RunMetrics) error {
	if run.Status != model.RunRunning {
		return &model.InvalidStateError{
			Msg: fmt.Sprintf("run %s is already %s", run.ID, run.Status),
		}
	}

	switch outcome {
	case model.RunFailed:
		if errorMessage == "" {
			return model.Validationf("a failed run requires an error message")
		}
	case model.RunSuccess:
		if errorMessage != "" {
			return model.Validationf("a successful run cannot carry an error message")
		}
		if metrics != nil && metrics.RulesEvaluated > 0 && metrics.OverallQualityScore == nil {
			return model.Validationf("overall quality score is required when rules were evaluated")
		}
	default:
		return model.Validationf("unknown run outcome %q", outcome)
	}

	end := m.now()
	run.Status = outcome
	run.EndTime = &end
	run.ErrorMessage = errorMessage
	run.Metrics = metrics

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running[run.PipelineID] == run.ID {
		delete(m.running, run.PipelineID)
	}
	return nil
}

// IsRunning reports whether the pipeline currently holds a running run
func (m *Manager) IsRunning(pipelineID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, busy := m.running[pipelineID]
	return busy
}
