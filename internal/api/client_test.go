package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorapp/internal/api"
)

type staticToken string

func (s staticToken) Token(context.Context) string { return string(s) }

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := api.NewClient(api.Config{BaseURL: srv.URL}, staticToken("abc"), nil)
	var out struct {
		OK bool `json:"ok"`
	}
	err := client.Get(context.Background(), "/ping", nil, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_UnauthenticatedWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := api.NewClient(api.Config{BaseURL: srv.URL + "/"}, staticToken(""), nil)
	require.NoError(t, client.Get(context.Background(), "/ping", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestClient_EncodesQueryAndBody(t *testing.T) {
	var gotQuery url.Values
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&gotBody)
		}
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := api.NewClient(api.Config{BaseURL: srv.URL}, nil, nil)
	query := url.Values{"startDate": {"2024-01-01T00:00:00.000Z"}}
	err := client.Do(context.Background(), http.MethodPut, "/x", query, map[string]string{"newStatus": "Shipped"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", gotQuery.Get("startDate"))
	assert.Equal(t, "Shipped", gotBody["newStatus"])
}

func TestClient_HTTPErrorCarriesServerMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusUnauthorized, `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"error field", http.StatusBadRequest, `{"error":"Order not found for vendor"}`, "Order not found for vendor"},
		{"no body", http.StatusInternalServerError, ``, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := api.NewClient(api.Config{BaseURL: srv.URL}, nil, nil)
			err := client.Post(context.Background(), "/vendors/login", map[string]string{}, nil)
			require.Error(t, err)

			var httpErr *api.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
			assert.Equal(t, tt.status, api.StatusOf(err))
			assert.Equal(t, tt.message, api.MessageOf(err))
		})
	}
}

func TestClient_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := api.NewClient(api.Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil, nil)
	err := client.Get(context.Background(), "/slow", nil, nil)
	require.Error(t, err)

	var netErr *api.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, 0, api.StatusOf(err))
	assert.Equal(t, "Could not reach the server", api.MessageOf(err))
}
