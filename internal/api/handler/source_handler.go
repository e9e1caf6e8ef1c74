package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/internal/store"
)

// Root is the API index
// @Summary API root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Data Pipeline Engineering Platform API",
	})
}

// CreateDataSource registers a data source
// @Summary Create a data source
// @Tags data-sources
// @Accept json
// @Produce json
// @Param source body model.DataSourceCreate true "Data source"
// @Success 200 {object} model.DataSource
// @Failure 400 {object} map[string]interface{} "Invalid payload"
// @Router /data-sources [post]
func CreateDataSource(w http.ResponseWriter, r *http.Request) {
	var payload model.DataSourceCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, model.Validationf("invalid JSON payload"))
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, model.Validationf("invalid data source: %v", err))
		return
	}

	src := model.DataSource{
		ID:        uuid.New().String(),
		Name:      payload.Name,
		Type:      payload.Type,
		Location:  payload.Location,
		Status:    "active",
		Config:    payload.Config,
		CreatedAt: time.Now().UTC(),
	}
	if src.Config == nil {
		src.Config = map[string]interface{}{}
	}

	if err := store.SaveDataSource(src); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, src)
}

// ListDataSources returns all data sources
// @Summary List data sources
// @Tags data-sources
// @Produce json
// @Success 200 {array} model.DataSource
// @Router /data-sources [get]
func ListDataSources(w http.ResponseWriter, r *http.Request) {
	sources, err := store.ListDataSources()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sources)
}
