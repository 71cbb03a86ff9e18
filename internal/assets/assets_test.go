package assets

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/config"
)

func TestNewNone(t *testing.T) {
	h, err := New(config.AssetsConfig{})
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestDirServesFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.js"), []byte("console.log(1)"), 0o644))

	h, err := New(config.AssetsConfig{Dir: root})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProxyForwardsVerbatim(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Upstream", r.Method+" "+r.URL.RequestURI())
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write(body)
	}))
	defer upstream.Close()

	h, err := New(config.AssetsConfig{Upstream: upstream.URL})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/index.html?v=2", strings.NewReader("payload"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "POST /index.html?v=2", rec.Header().Get("X-Upstream"))
	assert.Equal(t, "payload", rec.Body.String())
}

func TestProxyRejectsBadURL(t *testing.T) {
	_, err := Proxy("localhost:3000")
	assert.Error(t, err)
}
