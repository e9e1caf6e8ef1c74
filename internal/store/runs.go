package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-pipeline-dashboard/internal/model"
)

// SaveRun persists a run after it reached a terminal state. Runs are written
// once; the lifecycle manager guarantees no further mutation afterwards.
func SaveRun(run model.Run) error {
	logsJSON, err := json.Marshal(run.Logs)
	if err != nil {
		return err
	}
	stepsJSON, err := json.Marshal(run.Transformations)
	if err != nil {
		return err
	}
	var metricsJSON sql.NullString
	if run.Metrics != nil {
		raw, err := json.Marshal(run.Metrics)
		if err != nil {
			return err
		}
		metricsJSON = sql.NullString{String: string(raw), Valid: true}
	}
	var endTime sql.NullTime
	if run.EndTime != nil {
		endTime = sql.NullTime{Time: *run.EndTime, Valid: true}
	}

	_, err = db.Exec(
		`INSERT INTO pipeline_runs (id, pipeline_id, pipeline_name, status, start_time, end_time,
			records_processed, records_failed, transformations, logs, metrics, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.PipelineID, run.PipelineName, run.Status, run.StartTime, endTime,
		run.RecordsProcessed, run.RecordsFailed, string(stepsJSON), string(logsJSON), metricsJSON, run.ErrorMessage,
	)
	return err
}

const runColumns = `id, pipeline_id, pipeline_name, status, start_time, end_time,
	records_processed, records_failed, transformations, logs, metrics, error_message`

func scanRun(scan func(dest ...interface{}) error) (model.Run, error) {
	var run model.Run
	var startTime time.Time
	var endTime sql.NullTime
	var stepsJSON, logsJSON string
	var metricsJSON sql.NullString
	err := scan(&run.ID, &run.PipelineID, &run.PipelineName, &run.Status, &startTime, &endTime,
		&run.RecordsProcessed, &run.RecordsFailed, &stepsJSON, &logsJSON, &metricsJSON, &run.ErrorMessage)
	if err != nil {
		return run, err
	}
	run.StartTime = startTime
	if endTime.Valid {
		t := endTime.Time
		run.EndTime = &t
	}
	if err := json.Unmarshal([]byte(stepsJSON), &run.Transformations); err != nil {
		run.Transformations = nil
	}
	if err := json.Unmarshal([]byte(logsJSON), &run.Logs); err != nil {
		run.Logs = []model.LogEntry{}
	}
	if metricsJSON.Valid {
		var m model.RunMetrics
		if err := json.Unmarshal([]byte(metricsJSON.String), &m); err == nil {
			run.Metrics = &m
		}
	}
	return run, nil
}

// GetRun fetches one run by id
func GetRun(id string) (model.Run, error) {
	row := db.QueryRow(`SELECT `+runColumns+` FROM pipeline_runs WHERE id = ?`, id)
	run, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return run, &model.NotFoundError{Entity: "pipeline run", ID: id}
	}
	return run, err
}

// ListRuns returns up to limit runs, newest first by start time
func ListRuns(limit int) ([]model.Run, error) {
	rows, err := db.Query(`SELECT `+runColumns+` FROM pipeline_runs ORDER BY start_time DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []model.Run{}
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
