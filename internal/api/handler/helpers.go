package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-pipeline-dashboard/internal/model"
	"go-pipeline-dashboard/internal/pipeline"
	"go-pipeline-dashboard/internal/scheduler"
)

var (
	validate = validator.New()
	engine   *pipeline.Engine
	sched    *scheduler.Scheduler
)

// Init hands the handlers their collaborators. The scheduler may be nil
// (tests, CLI) in which case schedule refreshes are skipped.
func Init(e *pipeline.Engine, s *scheduler.Scheduler) {
	engine = e
	sched = s
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses: validation and
// invalid state are 400, conflicts 409, unknown ids 404, the rest 500
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validation *model.ValidationError
	var invalidState *model.InvalidStateError
	var conflict *model.ConflictError
	var notFound *model.NotFoundError
	switch {
	case errors.As(err, &validation), errors.As(err, &invalidState):
		status = http.StatusBadRequest
	case errors.As(err, &conflict):
		status = http.StatusConflict
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	}

	writeJSON(w, status, map[string]interface{}{"detail": err.Error()})
}

// pathID extracts the id segment between a known prefix and suffix, the way
// the wildcard routes are laid out
func pathID(r *http.Request, prefix, suffix string) (string, bool) {
	path := r.URL.Path
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	id := path[len(prefix) : len(path)-len(suffix)]
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// queryLimit reads the limit parameter, falling back to a default
func queryLimit(r *http.Request, fallback int) int {
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			return limit
		}
	}
	return fallback
}
