package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", BackendMemory)
	t.Setenv("SERVER_ADDRESS", ":4555")
	t.Setenv("SEED_DEMO_DATA", "true")

	app, cleanup, err := InitializeApp(context.Background())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, ":4555", app.server.Addr)
	assert.NotNil(t, app.seeder)
	assert.NotNil(t, app.bus)

	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestInitializeAppRejectsBadConfig(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "redis")

	_, _, err := InitializeApp(context.Background())
	assert.Error(t, err)
}

func TestInitializeWebApp(t *testing.T) {
	t.Setenv("WEB_ADDRESS", ":3555")
	t.Setenv("API_URL", "http://127.0.0.1:1")

	app, cleanup, err := InitializeWebApp()
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, ":3555", app.server.Addr)
	assert.Nil(t, app.bus)

	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
