package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPAHandler(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "index.html"),
		[]byte("<!DOCTYPE html><html><body>Console</body></html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "app.js"),
		[]byte("console.log('boot');"), 0644))

	handler := NewSPAHandler(tmpDir)

	t.Run("serves index.html for root path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Console")
	})

	t.Run("serves static files", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/app.js", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "boot")
	})

	t.Run("falls back to index.html for client-side routes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/leads/l1", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Console")
	})

	t.Run("never swallows api paths", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/leads", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSPAHandlerNoIndexFile(t *testing.T) {
	handler := NewSPAHandler(t.TempDir())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
