package store

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the SQLite database and creates the schema. Nested documents
// (transformations, logs, metrics, batch data) live in JSON TEXT columns.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS data_sources (
			id TEXT PRIMARY KEY,
			name TEXT,
			type TEXT,
			location TEXT,
			status TEXT,
			config TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS pipelines (
			id TEXT PRIMARY KEY,
			name TEXT,
			description TEXT,
			source_id TEXT,
			transformations TEXT,
			schedule TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS pipeline_runs (
			id TEXT PRIMARY KEY,
			pipeline_id TEXT,
			pipeline_name TEXT,
			status TEXT,
			start_time DATETIME,
			end_time DATETIME,
			records_processed INTEGER,
			records_failed INTEGER,
			transformations TEXT,
			logs TEXT,
			metrics TEXT,
			error_message TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS quality_rules (
			id TEXT PRIMARY KEY,
			name TEXT,
			description TEXT,
			rule_type TEXT,
			field TEXT,
			condition TEXT,
			severity TEXT,
			active INTEGER,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS quality_results (
			id TEXT PRIMARY KEY,
			pipeline_run_id TEXT,
			rule_id TEXT,
			rule_name TEXT,
			passed INTEGER,
			records_checked INTEGER,
			records_failed INTEGER,
			quality_score REAL,
			timestamp DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS processed_batches (
			id TEXT PRIMARY KEY,
			pipeline_run_id TEXT,
			data TEXT,
			metadata TEXT,
			timestamp DATETIME
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database handle
func Close() error {
	if db == nil {
		return nil
	}
	return db.Close()
}
