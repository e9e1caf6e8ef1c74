package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-pipeline-dashboard/internal/model"
)

// SavePipeline stores a new pipeline
func SavePipeline(p model.Pipeline) error {
	stepsJSON, err := json.Marshal(p.Transformations)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO pipelines (id, name, description, source_id, transformations, schedule, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.SourceID, string(stepsJSON), p.Schedule, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// UpdatePipeline rewrites the mutable fields of a pipeline
func UpdatePipeline(p model.Pipeline) error {
	stepsJSON, err := json.Marshal(p.Transformations)
	if err != nil {
		return err
	}
	res, err := db.Exec(
		`UPDATE pipelines SET name = ?, description = ?, transformations = ?, schedule = ?, status = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Description, string(stepsJSON), p.Schedule, p.Status, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &model.NotFoundError{Entity: "pipeline", ID: p.ID}
	}
	return nil
}

func scanPipeline(scan func(dest ...interface{}) error) (model.Pipeline, error) {
	var p model.Pipeline
	var stepsJSON string
	var schedule sql.NullString
	var createdAt, updatedAt time.Time
	err := scan(&p.ID, &p.Name, &p.Description, &p.SourceID, &stepsJSON, &schedule, &p.Status, &createdAt, &updatedAt)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(stepsJSON), &p.Transformations); err != nil {
		p.Transformations = []model.Transformation{}
	}
	p.Schedule = schedule.String
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return p, nil
}

const pipelineColumns = `id, name, description, source_id, transformations, schedule, status, created_at, updated_at`

// GetPipeline fetches one pipeline by id
func GetPipeline(id string) (model.Pipeline, error) {
	row := db.QueryRow(`SELECT `+pipelineColumns+` FROM pipelines WHERE id = ?`, id)
	p, err := scanPipeline(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return p, &model.NotFoundError{Entity: "pipeline", ID: id}
	}
	return p, err
}

// ListPipelines returns all pipelines, newest first
func ListPipelines() ([]model.Pipeline, error) {
	rows, err := db.Query(`SELECT ` + pipelineColumns + ` FROM pipelines ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pipelines := []model.Pipeline{}
	for rows.Next() {
		p, err := scanPipeline(rows.Scan)
		if err != nil {
			return nil, err
		}
		pipelines = append(pipelines, p)
	}
	return pipelines, rows.Err()
}

// DeletePipeline removes a pipeline by id
func DeletePipeline(id string) error {
	res, err := db.Exec(`DELETE FROM pipelines WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &model.NotFoundError{Entity: "pipeline", ID: id}
	}
	return nil
}

// CountPipelines counts pipelines, optionally filtered by status. An empty
// status counts everything.
func CountPipelines(status string) (int, error) {
	var count int
	var err error
	if status == "" {
		err = db.QueryRow(`SELECT COUNT(*) FROM pipelines`).Scan(&count)
	} else {
		err = db.QueryRow(`SELECT COUNT(*) FROM pipelines WHERE status = ?`, status).Scan(&count)
	}
	return count, err
}

// DeleteAllPipelines clears the pipelines table, used when reseeding
func DeleteAllPipelines() error {
	_, err := db.Exec(`DELETE FROM pipelines`)
	return err
}
