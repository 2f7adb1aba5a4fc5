package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/submitty/dockerdash/cmd/api/config"
	"github.com/submitty/dockerdash/lib/snapshot"
)

// newTestService creates an ApiService reading its snapshot from a temporary config directory
func newTestService(t *testing.T) (*ApiService, string) {
	cfg := &config.Config{
		ConfigDir:      t.TempDir(),
		DockerDataFile: "docker_data.json",
		ContainersFile: "autograding_containers.json",
		WorkersFile:    "autograding_workers.json",
	}

	source := snapshot.NewFileSource(cfg.ConfigDir, cfg.DockerDataFile, cfg.ContainersFile, cfg.WorkersFile)
	return New(cfg, source, nil, nil), cfg.ConfigDir
}

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func serve(svc *ApiService, method, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	svc.Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	svc, _ := newTestService(t)

	rec := serve(svc, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}
