package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/internal/store"
)

// CreatePipeline creates a new pipeline in draft status
// @Summary Create a pipeline
// @Description Create a new pipeline with its transformation steps
// @Tags pipelines
// @Accept json
// @Produce json
// @Param pipeline body model.PipelineCreate true "Pipeline definition"
// @Success 200 {object} model.Pipeline
// @Failure 400 {object} map[string]interface{} "Invalid payload"
// @Router /pipelines [post]
func CreatePipeline(w http.ResponseWriter, r *http.Request) {
	var payload model.PipelineCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, model.Validationf("invalid JSON payload"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, model.Validationf("invalid pipeline: %v", err))
		return
	}

	now := time.Now().UTC()
	p := model.Pipeline{
		ID:              uuid.New().String(),
		Name:            payload.Name,
		Description:     payload.Description,
		SourceID:        payload.SourceID,
		Transformations: payload.Transformations,
		Schedule:        payload.Schedule,
		Status:          model.PipelineDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.Transformations == nil {
		p.Transformations = []model.Transformation{}
	}

	if err := store.SavePipeline(p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListPipelines returns all pipelines
// @Summary List pipelines
// @Tags pipelines
// @Produce json
// @Success 200 {array} model.Pipeline
// @Router /pipelines [get]
func ListPipelines(w http.ResponseWriter, r *http.Request) {
	pipelines, err := store.ListPipelines()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pipelines)
}

// GetPipeline returns one pipeline by id
// @Summary Get a pipeline
// @Tags pipelines
// @Produce json
// @Param id path string true "Pipeline ID"
// @Success 200 {object} model.Pipeline
// @Failure 404 {object} map[string]interface{} "Pipeline not found"
// @Router /pipelines/{id} [get]
func GetPipeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/api/pipelines/", "")
	if !ok {
		writeError(w, model.Validationf("pipeline id is required"))
		return
	}

	p, err := store.GetPipeline(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdatePipeline applies a partial update and refreshes the schedule
// @Summary Update a pipeline
// @Tags pipelines
// @Accept json
// @Produce json
// @Param id path string true "Pipeline ID"
// @Param updates body model.PipelineUpdate true "Fields to update"
// @Success 200 {object} model.Pipeline
// @Failure 404 {object} map[string]interface{} "Pipeline not found"
// @Router /pipelines/{id} [put]
func UpdatePipeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/api/pipelines/", "")
	if !ok {
		writeError(w, model.Validationf("pipeline id is required"))
		return
	}

	var updates model.PipelineUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, model.Validationf("invalid JSON payload"))
		return
	}
	if err := validate.Struct(updates); err != nil {
		writeError(w, model.Validationf("invalid update: %v", err))
		return
	}

	p, err := store.GetPipeline(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if updates.Name != nil {
		p.Name = *updates.Name
	}
	if updates.Description != nil {
		p.Description = *updates.Description
	}
	if updates.Transformations != nil {
		p.Transformations = *updates.Transformations
	}
	if updates.Schedule != nil {
		p.Schedule = *updates.Schedule
	}
	if updates.Status != nil {
		p.Status = *updates.Status
	}
	p.UpdatedAt = time.Now().UTC()

	if err := store.UpdatePipeline(p); err != nil {
		writeError(w, err)
		return
	}
	if sched != nil {
		sched.Refresh(p)
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePipeline removes a pipeline
// @Summary Delete a pipeline
// @Tags pipelines
// @Produce json
// @Param id path string true "Pipeline ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Pipeline not found"
// @Router /pipelines/{id} [delete]
func DeletePipeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/api/pipelines/", "")
	if !ok {
		writeError(w, model.Validationf("pipeline id is required"))
		return
	}

	if err := store.DeletePipeline(id); err != nil {
		writeError(w, err)
		return
	}
	if sched != nil {
		sched.Unschedule(id)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Pipeline deleted successfully"})
}

// ExecutePipeline runs a pipeline and returns its run. Step failures come
// back inside the run as a failed status; only requests that never produced
// a run (unknown, draft, already running) yield an error status.
// @Summary Execute a pipeline
// @Tags pipelines
// @Produce json
// @Param id path string true "Pipeline ID"
// @Success 200 {object} model.Run
// @Failure 400 {object} map[string]interface{} "Draft pipeline"
// @Failure 404 {object} map[string]interface{} "Pipeline not found"
// @Failure 409 {object} map[string]interface{} "Pipeline already running"
// @Router /pipelines/{id}/execute [post]
func ExecutePipeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/api/pipelines/", "/execute")
	if !ok {
		writeError(w, model.Validationf("pipeline id is required"))
		return
	}

	run, err := engine.Execute(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
