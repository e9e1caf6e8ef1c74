package store

import (
	"encoding/json"

	"go-pipeline-dashboard/internal/model"
)

// SaveProcessedBatch stores the sampled output of one run for the analytics
// surface
func SaveProcessedBatch(batch model.ProcessedBatch) error {
	dataJSON, err := json.Marshal(batch.Data)
	if err != nil {
		return err
	}
	metaJSON, err := json.Marshal(batch.Metadata)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO processed_batches (id, pipeline_run_id, data, metadata, timestamp) VALUES (?, ?, ?, ?, ?)`,
		batch.ID, batch.PipelineRunID, string(dataJSON), string(metaJSON), batch.Timestamp,
	)
	return err
}

// RecentRecords flattens the data of the most recent batches (newest batch
// first, records in stored order within a batch) into one slice for the
// query executor
func RecentRecords(batchLimit int) ([]model.ProcessedRecord, error) {
	rows, err := db.Query(`SELECT data FROM processed_batches ORDER BY timestamp DESC LIMIT ?`, batchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.ProcessedRecord{}
	for rows.Next() {
		var dataJSON string
		if err := rows.Scan(&dataJSON); err != nil {
			return nil, err
		}
		var batch []model.ProcessedRecord
		if err := json.Unmarshal([]byte(dataJSON), &batch); err != nil {
			continue
		}
		records = append(records, batch...)
	}
	return records, rows.Err()
}
