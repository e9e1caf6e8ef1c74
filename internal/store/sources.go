package store

import (
	"encoding/json"
	"time"

	"go-pipeline-dashboard/internal/model"
)

// SaveDataSource stores a new data source
func SaveDataSource(src model.DataSource) error {
	configJSON, err := json.Marshal(src.Config)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO data_sources (id, name, type, location, status, config, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		src.ID, src.Name, src.Type, src.Location, src.Status, string(configJSON), src.CreatedAt,
	)
	return err
}

// ListDataSources returns all data sources, newest first
func ListDataSources() ([]model.DataSource, error) {
	rows, err := db.Query(`SELECT id, name, type, location, status, config, created_at FROM data_sources ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sources := []model.DataSource{}
	for rows.Next() {
		var src model.DataSource
		var configJSON string
		var createdAt time.Time
		if err := rows.Scan(&src.ID, &src.Name, &src.Type, &src.Location, &src.Status, &configJSON, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(configJSON), &src.Config); err != nil {
			src.Config = map[string]interface{}{}
		}
		src.CreatedAt = createdAt
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// CountDataSources returns the total number of data sources
func CountDataSources() (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM data_sources`).Scan(&count)
	return count, err
}

// DeleteAllDataSources clears the data_sources table, used when reseeding
func DeleteAllDataSources() error {
	_, err := db.Exec(`DELETE FROM data_sources`)
	return err
}
