package handler

import (
	"net/http"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/internal/store"
)

// ListRuns returns recent runs, newest first. A run started moments ago may
// not yet be visible; the dashboard polls rather than subscribing.
// @Summary List pipeline runs
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum runs to return" default(50)
// @Success 200 {array} model.Run
// @Router /pipeline-runs [get]
func ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns(queryLimit(r, 50))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun returns one run by id
// @Summary Get a pipeline run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} model.Run
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /pipeline-runs/{id} [get]
func GetRun(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/api/pipeline-runs/", "")
	if !ok {
		writeError(w, model.Validationf("run id is required"))
		return
	}

	run, err := store.GetRun(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
