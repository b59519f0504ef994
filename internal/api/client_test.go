package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkspot/parkspot/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewClient(t *testing.T) {
	client := NewClient("https://example.supabase.co/", "anon-key")

	assert.Equal(t, "https://example.supabase.co", client.baseURL)
	assert.NotNil(t, client.httpClient)
}

func TestNewClientFromCredentials(t *testing.T) {
	creds := models.Credentials{
		ProjectURL:  "https://example.supabase.co",
		AnonKey:     "anon-key",
		AccessToken: "user-token",
	}

	client := NewClientFromCredentials(creds)

	assert.Equal(t, "user-token", client.bearerToken())
}

func TestClient_RequestSetsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "anon-key")
	_, err := client.get(context.Background(), "/test")

	require.NoError(t, err)
}

func TestClient_BearerPrefersAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClientFromCredentials(models.Credentials{
		ProjectURL:  server.URL,
		AnonKey:     "anon-key",
		AccessToken: "user-token",
	})
	_, err := client.get(context.Background(), "/test")

	require.NoError(t, err)
}

func TestClient_HandlesErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   string
		wantErr    error
	}{
		{
			name:       "401 unauthorized",
			statusCode: http.StatusUnauthorized,
			response:   `{"message": "invalid token"}`,
			wantErr:    ErrUnauthorized,
		},
		{
			name:       "404 not found",
			statusCode: http.StatusNotFound,
			response:   `{"message": "resource not found"}`,
			wantErr:    ErrNotFound,
		},
		{
			name:       "409 duplicate",
			statusCode: http.StatusConflict,
			response:   `{"message": "The resource already exists"}`,
			wantErr:    ErrConflict,
		},
		{
			name:       "429 rate limited",
			statusCode: http.StatusTooManyRequests,
			response:   `{"message": "rate limit exceeded"}`,
			wantErr:    ErrRateLimited,
		},
		{
			name:       "400 bad request",
			statusCode: http.StatusBadRequest,
			response:   `{"message": "invalid request"}`,
			wantErr:    ErrBadRequest,
		},
		{
			name:       "500 server error",
			statusCode: http.StatusInternalServerError,
			response:   `{"message": "internal error"}`,
			wantErr:    ErrServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client := NewClient(server.URL, "anon-key")
			_, err := client.get(context.Background(), "/test")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var backendErr *BackendError
			require.ErrorAs(t, err, &backendErr)
			assert.Equal(t, tt.statusCode, backendErr.StatusCode)
		})
	}
}

func TestClient_ErrorMessageFallsBackToMsgField(t *testing.T) {
	// The auth and storage endpoints use "msg"/"error" instead of "message".
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"msg": "token malformed"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "anon-key")
	_, err := client.get(context.Background(), "/test")

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "token malformed", backendErr.Message)
}
