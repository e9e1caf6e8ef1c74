package model

import "time"

// ProcessedRecord is a schema-agnostic flat mapping for one unit of pipeline output
type ProcessedRecord map[string]interface{}

// Pipeline statuses
const (
	PipelineDraft  = "draft"
	PipelineActive = "active"
	PipelinePaused = "paused"
)

// Run statuses
const (
	RunPending = "pending"
	RunRunning = "running"
	RunSuccess = "success"
	RunFailed  = "failed"
)

// Log levels
const (
	LevelInfo    = "INFO"
	LevelSuccess = "SUCCESS"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// Rule types
const (
	RuleCompleteness = "completeness"
	RuleAccuracy     = "accuracy"
	RuleConsistency  = "consistency"
	RuleTimeliness   = "timeliness"
)

// DataSource represents an upstream system feeding pipelines
type DataSource struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Type      string                 `json:"type"` // manufacturing_plant, quality_sensor, inventory_system
	Location  string                 `json:"location"`
	Status    string                 `json:"status"` // active, inactive
	Config    map[string]interface{} `json:"config"`
	CreatedAt time.Time              `json:"created_at"`
}

// DataSourceCreate is the payload for POST /api/data-sources
type DataSourceCreate struct {
	Name     string                 `json:"name" validate:"required"`
	Type     string                 `json:"type" validate:"required"`
	Location string                 `json:"location"`
	Config   map[string]interface{} `json:"config"`
}

// FilterCondition selects records by comparing one field against a value
type FilterCondition struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"` // ">", "<", "==", "!="
	Value    interface{} `json:"value"`
}

// Transformation is a single typed step within a pipeline. Which parameters
// apply depends on Type; unused fields stay empty.
type Transformation struct {
	Type      string           `json:"type"` // filter, aggregate, remove_nulls, deduplicate
	Condition *FilterCondition `json:"condition,omitempty"`
	GroupBy   []string         `json:"group_by,omitempty"`
	Field     string           `json:"field,omitempty"`
	Function  string           `json:"function,omitempty"` // sum, avg, count
	KeyFields []string         `json:"key_fields,omitempty"`
}

// Pipeline is a named, ordered sequence of transformation steps over one source
type Pipeline struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	SourceID        string           `json:"source_id"`
	Transformations []Transformation `json:"transformations"`
	Schedule        string           `json:"schedule,omitempty"` // cron expression
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// PipelineCreate is the payload for POST /api/pipelines
type PipelineCreate struct {
	Name            string           `json:"name" validate:"required"`
	Description     string           `json:"description"`
	SourceID        string           `json:"source_id" validate:"required"`
	Transformations []Transformation `json:"transformations"`
	Schedule        string           `json:"schedule"`
}

// PipelineUpdate is the payload for PUT /api/pipelines/{id}. Nil fields are
// left unchanged.
type PipelineUpdate struct {
	Name            *string           `json:"name,omitempty"`
	Description     *string           `json:"description,omitempty"`
	Transformations *[]Transformation `json:"transformations,omitempty"`
	Schedule        *string           `json:"schedule,omitempty"`
	Status          *string           `json:"status,omitempty" validate:"omitempty,oneof=draft active paused"`
}

// LogEntry is one line of a run's execution log, append-only in emission order
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// RunMetrics holds metrics attached to a completed run
type RunMetrics struct {
	OverallQualityScore *float64 `json:"overall_quality_score,omitempty"`
	RulesEvaluated      int      `json:"rules_evaluated,omitempty"`
}

// Run is one execution attempt of a pipeline. Once status reaches success or
// failed the run is immutable; Transformations is a snapshot of the steps the
// run actually executed, not a live reference.
type Run struct {
	ID               string           `json:"id"`
	PipelineID       string           `json:"pipeline_id"`
	PipelineName     string           `json:"pipeline_name"`
	Status           string           `json:"status"`
	StartTime        time.Time        `json:"start_time"`
	EndTime          *time.Time       `json:"end_time,omitempty"`
	RecordsProcessed int              `json:"records_processed"`
	RecordsFailed    int              `json:"records_failed"`
	Transformations  []Transformation `json:"transformations,omitempty"`
	Logs             []LogEntry       `json:"logs"`
	Metrics          *RunMetrics      `json:"metrics,omitempty"`
	ErrorMessage     string           `json:"error_message,omitempty"`
}

// RuleCondition is the type-specific parameter block of a quality rule.
// accuracy uses Min/Max, consistency uses Pattern, the other types carry no
// parameters.
type RuleCondition struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

// QualityRule is a named, typed validation check against one record field
type QualityRule struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	RuleType    string        `json:"rule_type"`
	Field       string        `json:"field"`
	Condition   RuleCondition `json:"condition"`
	Severity    string        `json:"severity"` // critical, high, medium, low
	Active      bool          `json:"active"`
	CreatedAt   time.Time     `json:"created_at"`
}

// QualityRuleCreate is the payload for POST /api/quality-rules
type QualityRuleCreate struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	RuleType    string        `json:"rule_type" validate:"required,oneof=completeness accuracy consistency timeliness"`
	Field       string        `json:"field" validate:"required"`
	Condition   RuleCondition `json:"condition"`
	Severity    string        `json:"severity" validate:"required,oneof=critical high medium low"`
}

// QualityRuleUpdate is the payload for PUT /api/quality-rules/{id}
type QualityRuleUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Severity    *string `json:"severity,omitempty" validate:"omitempty,oneof=critical high medium low"`
	Active      *bool   `json:"active,omitempty"`
}

// QualityResult is the outcome of evaluating one rule against a batch.
// Append-only and read-only once written.
type QualityResult struct {
	ID             string    `json:"id"`
	PipelineRunID  string    `json:"pipeline_run_id"`
	RuleID         string    `json:"rule_id"`
	RuleName       string    `json:"rule_name"`
	Passed         bool      `json:"passed"`
	RecordsChecked int       `json:"records_checked"`
	RecordsFailed  int       `json:"records_failed"`
	QualityScore   float64   `json:"quality_score"` // percentage in [0,100]
	Timestamp      time.Time `json:"timestamp"`
}

// RuleStats summarizes the result history of one rule
type RuleStats struct {
	AvgScore    float64        `json:"avg_score"`
	LastCheck   *QualityResult `json:"last_check,omitempty"`
	TotalChecks int            `json:"total_checks"`
}

// ProcessedBatch is the stored sample of a run's output, read by the
// analytics query executor
type ProcessedBatch struct {
	ID            string                 `json:"id"`
	PipelineRunID string                 `json:"pipeline_run_id"`
	Data          []ProcessedRecord      `json:"data"`
	Metadata      map[string]interface{} `json:"metadata"`
	Timestamp     time.Time              `json:"timestamp"`
}

// RunStats counts outcomes across recent runs
type RunStats struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Running int `json:"running"`
}

// DashboardStats is the composite payload for GET /api/dashboard/stats
type DashboardStats struct {
	TotalPipelines  int             `json:"total_pipelines"`
	ActivePipelines int             `json:"active_pipelines"`
	TotalSources    int             `json:"total_sources"`
	RecentRuns      []Run           `json:"recent_runs"`
	RunStats        RunStats        `json:"run_stats"`
	AvgQualityScore float64         `json:"avg_quality_score"`
	QualityTrend    []QualityResult `json:"quality_trend"`
}
