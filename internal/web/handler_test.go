package web

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPageRouter(t *testing.T, tpl *Templates, staticDir string, verbose bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	NewPageHandler(tpl, staticDir, verbose).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestIndexRendersTemplate(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.html", `<video id="camera"></video>`)
	router := newPageRouter(t, NewTemplates(dir), "", false)

	rr := serve(router, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), `<video id="camera"></video>`)
}

func TestIndexIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.html", "<p>ready</p>")
	router := newPageRouter(t, NewTemplates(dir), "", false)

	first := serve(router, http.MethodGet, "/")
	for i := 0; i < 5; i++ {
		rr := serve(router, http.MethodGet, "/?round="+string(rune('a'+i)))
		assert.Equal(t, first.Code, rr.Code)
		assert.Equal(t, first.Body.String(), rr.Body.String())
	}
}

func TestIndexHead(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.html", "<p>ready</p>")
	router := newPageRouter(t, NewTemplates(dir), "", false)

	rr := serve(router, http.MethodHead, "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, "12", rr.Header().Get("Content-Length"))
}

func TestIndexMethodNotAllowed(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.html", "ok")
	router := newPageRouter(t, NewTemplates(dir), "", false)

	rr := serve(router, http.MethodPost, "/")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestIndexOptions(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.html", "ok")
	router := newPageRouter(t, NewTemplates(dir), "", false)

	rr := serve(router, http.MethodOptions, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "GET, HEAD, OPTIONS", rr.Header().Get("Allow"))
	assert.Empty(t, rr.Body.String())
}

func TestUnknownPathNotFound(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.html", "ok")
	router := newPageRouter(t, NewTemplates(dir), "", false)

	rr := serve(router, http.MethodGet, "/nonexistent")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestIndexMissingTemplate(t *testing.T) {
	tpl := NewTemplates(filepath.Join(t.TempDir(), "missing"))

	t.Run("generic body", func(t *testing.T) {
		rr := serve(newPageRouter(t, tpl, "", false), http.MethodGet, "/")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Internal Server Error", rr.Body.String())
	})

	t.Run("verbose body", func(t *testing.T) {
		rr := serve(newPageRouter(t, tpl, "", true), http.MethodGet, "/")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), ErrTemplatesUnavailable.Error())
	})
}

func TestIndexRenderFailureDoesNotLeakPartialBody(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.html", `partial {{ template "nope" }}`)
	tpl := NewTemplates(dir)
	router := newPageRouter(t, tpl, "", false)

	rr := serve(router, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "partial")

	// a failed request leaves the server usable once the template is fixed
	writeTemplate(t, dir, "index.html", "fixed")
	require.NoError(t, tpl.Reload())

	rr = serve(router, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fixed", rr.Body.String())
}

func TestStaticAssets(t *testing.T) {
	tplDir := t.TempDir()
	writeTemplate(t, tplDir, "index.html", "ok")
	staticDir := t.TempDir()
	writeTemplate(t, staticDir, "app.js", "const CHOICES = [];")
	router := newPageRouter(t, NewTemplates(tplDir), staticDir, false)

	rr := serve(router, http.MethodGet, "/static/app.js")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "const CHOICES = [];", rr.Body.String())

	rr = serve(router, http.MethodGet, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
