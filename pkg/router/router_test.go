package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, r *Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func named(name string) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	}
}

func TestExactRoute(t *testing.T) {
	r := New()
	r.GET("/api/pipelines", named("list"))
	r.POST("/api/pipelines", named("create"))

	rec := serve(t, r, http.MethodGet, "/api/pipelines")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "list", rec.Body.String())

	rec = serve(t, r, http.MethodPost, "/api/pipelines")
	assert.Equal(t, "create", rec.Body.String())
}

func TestWildcardSegment(t *testing.T) {
	r := New()
	r.GET("/api/pipelines/*", named("get"))
	r.POST("/api/pipelines/*/execute", named("execute"))

	rec := serve(t, r, http.MethodGet, "/api/pipelines/abc-123")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "get", rec.Body.String())

	rec = serve(t, r, http.MethodPost, "/api/pipelines/abc-123/execute")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "execute", rec.Body.String())
}

func TestRegistrationOrderWins(t *testing.T) {
	r := New()
	r.GET("/api/rules/*/stats", named("stats"))
	r.GET("/api/rules/*", named("get"))

	rec := serve(t, r, http.MethodGet, "/api/rules/r1/stats")
	assert.Equal(t, "stats", rec.Body.String())

	rec = serve(t, r, http.MethodGet, "/api/rules/r1")
	assert.Equal(t, "get", rec.Body.String())
}

func TestTrailingWildcardMatchesRest(t *testing.T) {
	r := New()
	r.GET("/swagger/*", named("docs"))

	rec := serve(t, r, http.MethodGet, "/swagger/index.html")
	assert.Equal(t, "docs", rec.Body.String())

	rec = serve(t, r, http.MethodGet, "/swagger/doc/spec.json")
	assert.Equal(t, "docs", rec.Body.String())
}

func TestNotFound(t *testing.T) {
	r := New()
	r.GET("/api/pipelines", named("list"))

	rec := serve(t, r, http.MethodGet, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	r := New()
	r.GET("/api/pipelines/*", named("get"))

	rec := serve(t, r, http.MethodDelete, "/api/pipelines/abc")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
