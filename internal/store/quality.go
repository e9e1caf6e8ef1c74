package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-pipeline-dashboard/internal/model"
)

// SaveQualityRule stores a new quality rule
func SaveQualityRule(rule model.QualityRule) error {
	condJSON, err := json.Marshal(rule.Condition)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO quality_rules (id, name, description, rule_type, field, condition, severity, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.Name, rule.Description, rule.RuleType, rule.Field, string(condJSON), rule.Severity, rule.Active, rule.CreatedAt,
	)
	return err
}

// UpdateQualityRule rewrites the mutable fields of a rule. The condition is
// immutable after creation and is deliberately not updated here.
func UpdateQualityRule(rule model.QualityRule) error {
	res, err := db.Exec(
		`UPDATE quality_rules SET name = ?, description = ?, severity = ?, active = ? WHERE id = ?`,
		rule.Name, rule.Description, rule.Severity, rule.Active, rule.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &model.NotFoundError{Entity: "quality rule", ID: rule.ID}
	}
	return nil
}

const ruleColumns = `id, name, description, rule_type, field, condition, severity, active, created_at`

func scanRule(scan func(dest ...interface{}) error) (model.QualityRule, error) {
	var rule model.QualityRule
	var condJSON string
	var createdAt time.Time
	err := scan(&rule.ID, &rule.Name, &rule.Description, &rule.RuleType, &rule.Field, &condJSON, &rule.Severity, &rule.Active, &createdAt)
	if err != nil {
		return rule, err
	}
	if err := json.Unmarshal([]byte(condJSON), &rule.Condition); err != nil {
		rule.Condition = model.RuleCondition{}
	}
	rule.CreatedAt = createdAt
	return rule, nil
}

// GetQualityRule fetches one rule by id
func GetQualityRule(id string) (model.QualityRule, error) {
	row := db.QueryRow(`SELECT `+ruleColumns+` FROM quality_rules WHERE id = ?`, id)
	rule, err := scanRule(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return rule, &model.NotFoundError{Entity: "quality rule", ID: id}
	}
	return rule, err
}

// ListQualityRules returns all rules; activeOnly restricts to rules eligible
// for automatic evaluation
func ListQualityRules(activeOnly bool) ([]model.QualityRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM quality_rules ORDER BY created_at DESC`
	if activeOnly {
		query = `SELECT ` + ruleColumns + ` FROM quality_rules WHERE active = 1 ORDER BY created_at DESC`
	}
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []model.QualityRule{}
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// DeleteAllQualityRules clears the quality_rules table, used when reseeding
func DeleteAllQualityRules() error {
	_, err := db.Exec(`DELETE FROM quality_rules`)
	return err
}

// SaveQualityResult appends one evaluation outcome to the result log
func SaveQualityResult(res model.QualityResult) error {
	_, err := db.Exec(
		`INSERT INTO quality_results (id, pipeline_run_id, rule_id, rule_name, passed, records_checked, records_failed, quality_score, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.PipelineRunID, res.RuleID, res.RuleName, res.Passed, res.RecordsChecked, res.RecordsFailed, res.QualityScore, res.Timestamp,
	)
	return err
}

// ListQualityResults returns up to limit results, newest first
func ListQualityResults(limit int) ([]model.QualityResult, error) {
	rows, err := db.Query(
		`SELECT id, pipeline_run_id, rule_id, rule_name, passed, records_checked, records_failed, quality_score, timestamp
		 FROM quality_results ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.QualityResult{}
	for rows.Next() {
		var res model.QualityResult
		var ts time.Time
		if err := rows.Scan(&res.ID, &res.PipelineRunID, &res.RuleID, &res.RuleName, &res.Passed,
			&res.RecordsChecked, &res.RecordsFailed, &res.QualityScore, &ts); err != nil {
			return nil, err
		}
		res.Timestamp = ts
		results = append(results, res)
	}
	return results, rows.Err()
}
