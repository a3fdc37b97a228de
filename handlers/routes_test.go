package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dessert-api/db"
)

func TestRouterAuthGuardsWrites(t *testing.T) {
	store, err := db.Open(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)

	images := &fakeUploader{url: waffleURL}
	desserts := NewDessertHandler(store, images, 1<<20)
	desserts.TempDir = t.TempDir()
	router := NewRouter(desserts, RouterOptions{AuthSecret: "s3cret"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, dessertRequest(t, http.MethodPost, "/create-dessert", waffleFields(), true))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, images.uploads)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/dessert/"+missingID, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Reads stay open.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "baker"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	req := dessertRequest(t, http.MethodPost, "/create-dessert", waffleFields(), true)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	env.handler = NewRouter(env.desserts, RouterOptions{Registry: prometheus.NewRegistry()})

	env.do(httptest.NewRequest(http.MethodGet, "/healthy", nil))

	rec := env.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dessert_api_http_requests_total{method="GET",route="/healthy",status="200"} 1`)
}

func TestRouterCORSPreflight(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/create-dessert", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := env.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterSwagger(t *testing.T) {
	env := setupTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "/create-dessert"))
}
