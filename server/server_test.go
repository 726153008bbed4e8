package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeops/genkabot/internal/profile"
	"github.com/coffeops/genkabot/store"
	"github.com/coffeops/genkabot/store/db/sqlite"
)

func newTestingServer(t *testing.T) *Server {
	t.Helper()

	instanceProfile := &profile.Profile{
		Mode:    "dev",
		Driver:  "sqlite",
		DSN:     filepath.Join(t.TempDir(), "reports_test.db"),
		Version: "test",
	}
	driver, err := sqlite.NewDB(instanceProfile)
	require.NoError(t, err)

	storeInstance := store.New(driver, instanceProfile)
	t.Cleanup(func() { _ = storeInstance.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(instanceProfile, storeInstance, nil, logger)
}

func TestHealthz(t *testing.T) {
	srv := newTestingServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)
}

func TestReadyz(t *testing.T) {
	srv := newTestingServer(t)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}

func TestReadyzUnavailableAfterClose(t *testing.T) {
	srv := newTestingServer(t)
	require.NoError(t, srv.store.Close())

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
