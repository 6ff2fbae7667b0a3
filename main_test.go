package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorapp/internal/config"
)

// fakeBackend serves the remote vendor API endpoints used by the app.
func fakeBackend(t *testing.T, authorized *atomic.Value) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vendors/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":  "opaque-token",
			"vendor": map[string]any{"_id": "vendor-1", "name": "Owner"},
		})
	})
	mux.HandleFunc("/api/order/vendor/vendor-1", func(w http.ResponseWriter, r *http.Request) {
		authorized.Store(r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"orders": []map[string]any{{
					"orderId":       "o-1",
					"createdAt":     time.Now().UTC().Format(time.RFC3339),
					"paymentStatus": "Unpaid",
					"vendors": map[string]any{
						"orderStatus": "Pending",
						"vendor":      map[string]any{"_id": "vendor-1"},
						"products":    []any{},
					},
				}},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, baseURL string) config.Config {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("API_BASE_URL", baseURL)
	v.Set("SESSION_DRIVER", "sqlite")
	v.Set("DATABASE_DSN", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	v.Set("PUSH_ENABLED", false)
	v.Set("APP_PORT", ":0")
	return config.FromViper(v)
}

func request(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealthAndMetrics(t *testing.T) {
	var authorized atomic.Value
	backend := fakeBackend(t, &authorized)

	app, err := NewApp(testConfig(t, backend.URL+"/api"), nil)
	require.NoError(t, err)
	defer app.Close()

	resp, body := request(t, app.fiber, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "\"status\":\"healthy\"")

	resp, body = request(t, app.fiber, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestLoginAndListOrdersAgainstBackend(t *testing.T) {
	var authorized atomic.Value
	backend := fakeBackend(t, &authorized)

	app, err := NewApp(testConfig(t, backend.URL+"/api"), nil)
	require.NoError(t, err)
	defer app.Close()

	resp, body := request(t, app.fiber, http.MethodGet, "/api/v1/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, string(body))

	resp, body = request(t, app.fiber, http.MethodPost, "/api/v1/login", map[string]string{
		"email": "v@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "Invalid credentials")

	resp, body = request(t, app.fiber, http.MethodPost, "/api/v1/login", map[string]string{
		"email": "v@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = request(t, app.fiber, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "Order #o-1")
	assert.Equal(t, "Bearer opaque-token", authorized.Load())

	// The session is persisted for the next start.
	assert.Equal(t, "vendor-1", app.store.VendorID(context.Background()))
}

func TestRunStopsOnCancel(t *testing.T) {
	var authorized atomic.Value
	backend := fakeBackend(t, &authorized)

	app, err := NewApp(testConfig(t, backend.URL+"/api"), nil)
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}
