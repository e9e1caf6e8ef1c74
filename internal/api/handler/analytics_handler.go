package handler

import (
	"encoding/json"
	"net/http"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/internal/query"
	"go-pipeline-dashboard/internal/store"
)

// recentBatchLimit is how many processed batches feed an analytics query
const recentBatchLimit = 10

// TranslateRequest is the payload for POST /api/analytics/translate
type TranslateRequest struct {
	Text string `json:"text"`
}

// TranslateQuery maps free-form query text to a structured request
// @Summary Translate query text
// @Tags analytics
// @Accept json
// @Produce json
// @Param query body TranslateRequest true "Free-form query text"
// @Success 200 {object} model.QueryRequest
// @Router /analytics/translate [post]
func TranslateQuery(w http.ResponseWriter, r *http.Request) {
	var payload TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, model.Validationf("invalid JSON payload"))
		return
	}
	writeJSON(w, http.StatusOK, query.Translate(payload.Text))
}

// ExecuteQuery runs a structured query over recent processed records
// @Summary Execute an analytics query
// @Tags analytics
// @Accept json
// @Produce json
// @Param query body model.QueryRequest true "Structured query"
// @Success 200 {object} model.QueryResult
// @Router /analytics/query [post]
func ExecuteQuery(w http.ResponseWriter, r *http.Request) {
	var req model.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.Validationf("invalid JSON payload"))
		return
	}

	records, err := store.RecentRecords(recentBatchLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.Execute(req, records))
}
