package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/internal/quality"
	"go-pipeline-dashboard/internal/store"
)

// validateCondition checks the rule condition shape against its rule type.
// accuracy needs a min/max range, consistency a pattern, the other types
// carry no parameters.
func validateCondition(ruleType string, cond model.RuleCondition) error {
	switch ruleType {
	case model.RuleAccuracy:
		if cond.Min == nil && cond.Max == nil {
			return model.Validationf("accuracy rules require a min or max bound")
		}
		if cond.Min != nil && cond.Max != nil && *cond.Min > *cond.Max {
			return model.Validationf("accuracy rule min must not exceed max")
		}
	case model.RuleConsistency:
		if cond.Pattern == "" {
			return model.Validationf("consistency rules require a pattern")
		}
	}
	return nil
}

// CreateQualityRule creates a rule, active by default
// @Summary Create a quality rule
// @Tags quality
// @Accept json
// @Produce json
// @Param rule body model.QualityRuleCreate true "Quality rule"
// @Success 200 {object} model.QualityRule
// @Failure 400 {object} map[string]interface{} "Invalid payload"
// @Router /quality-rules [post]
func CreateQualityRule(w http.ResponseWriter, r *http.Request) {
	var payload model.QualityRuleCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, model.Validationf("invalid JSON payload"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, model.Validationf("invalid rule: %v", err))
		return
	}
	if err := validateCondition(payload.RuleType, payload.Condition); err != nil {
		writeError(w, err)
		return
	}

	rule := model.QualityRule{
		ID:          uuid.New().String(),
		Name:        payload.Name,
		Description: payload.Description,
		RuleType:    payload.RuleType,
		Field:       payload.Field,
		Condition:   payload.Condition,
		Severity:    payload.Severity,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := store.SaveQualityRule(rule); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// ListQualityRules returns all rules
// @Summary List quality rules
// @Tags quality
// @Produce json
// @Success 200 {array} model.QualityRule
// @Router /quality-rules [get]
func ListQualityRules(w http.ResponseWriter, r *http.Request) {
	rules, err := store.ListQualityRules(false)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

// UpdateQualityRule toggles activation or edits metadata. The condition is
// immutable after creation.
// @Summary Update a quality rule
// @Tags quality
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param updates body model.QualityRuleUpdate true "Fields to update"
// @Success 200 {object} model.QualityRule
// @Failure 404 {object} map[string]interface{} "Rule not found"
// @Router /quality-rules/{id} [put]
func UpdateQualityRule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/api/quality-rules/", "")
	if !ok {
		writeError(w, model.Validationf("rule id is required"))
		return
	}

	var updates model.QualityRuleUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, model.Validationf("invalid JSON payload"))
		return
	}
	if err := validate.Struct(updates); err != nil {
		writeError(w, model.Validationf("invalid update: %v", err))
		return
	}

	rule, err := store.GetQualityRule(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if updates.Name != nil {
		rule.Name = *updates.Name
	}
	if updates.Description != nil {
		rule.Description = *updates.Description
	}
	if updates.Severity != nil {
		rule.Severity = *updates.Severity
	}
	if updates.Active != nil {
		rule.Active = *updates.Active
	}

	if err := store.UpdateQualityRule(rule); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// ListQualityResults returns recent results, newest first
// @Summary List quality results
// @Tags quality
// @Produce json
// @Param limit query int false "Maximum results to return" default(100)
// @Success 200 {array} model.QualityResult
// @Router /quality-results [get]
func ListQualityResults(w http.ResponseWriter, r *http.Request) {
	results, err := store.ListQualityResults(queryLimit(r, 100))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// GetRuleStats summarizes one rule's result history
// @Summary Get rule statistics
// @Tags quality
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} model.RuleStats
// @Failure 404 {object} map[string]interface{} "Rule not found"
// @Router /quality-rules/{id}/stats [get]
func GetRuleStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/api/quality-rules/", "/stats")
	if !ok {
		writeError(w, model.Validationf("rule id is required"))
		return
	}

	rule, err := store.GetQualityRule(id)
	if err != nil {
		writeError(w, err)
		return
	}

	results, err := store.ListQualityResults(1000)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quality.Summarize(rule, results))
}
