package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poker-platform/tournament-sync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/", WithHeader("X-Client", "watch"))
	require.NoError(t, err)
	return c
}

func TestClient_ListTournaments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tournaments", r.URL.Path)
		assert.Equal(t, "watch", r.Header.Get("X-Client"))
		w.Write([]byte(`[{"id":"t-1","name":"Nightly","status":"REGISTERING","registeredCount":3,"maxPlayers":9}]`))
	})

	list, err := c.ListTournaments(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusRegistering, list[0].Status)
	assert.Equal(t, 3, list[0].RegisteredCount)
}

func TestClient_GetTournament(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tournaments/t-1", r.URL.Path)
		w.Write([]byte(`{
			"id": "t-1",
			"status": "RUNNING",
			"currentLevel": 2,
			"levelEndTime": "2026-01-01T20:10:00Z",
			"registeredPlayers": [{"id": "p-1", "name": "Alice", "chips": 1500, "tableId": "table-1"}],
			"remainingPlayers": 1,
			"totalPlayers": 1
		}`))
	})

	tournament, err := c.GetTournament(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRunning, tournament.Status)
	require.NotNil(t, tournament.LevelEndTime)
	assert.Equal(t, 10, tournament.LevelEndTime.Minute())
	require.Len(t, tournament.RegisteredPlayers, 1)
	assert.Equal(t, "table-1", tournament.RegisteredPlayers[0].TableID)
}

func TestClient_Register(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tournaments/t-1/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Alice", body["playerName"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p-9","name":"Alice","chips":1500}`))
	})

	p, err := c.Register(context.Background(), "t-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "p-9", p.ID)
	assert.Equal(t, 1500, p.Chips)
}

func TestClient_Unregister(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tournaments/t-1/unregister", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p-9", body["playerId"])
		w.Write([]byte(`{"success":true}`))
	})

	require.NoError(t, c.Unregister(context.Background(), "t-1", "p-9"))
}

func TestClient_ErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"tournament not found"}`))
	})

	_, err := c.GetTournament(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "tournament not found", apiErr.UserMessage())
	assert.True(t, IsNotFound(err))
}

func TestClient_ErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListTournaments(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Empty(t, apiErr.UserMessage())
	assert.Contains(t, err.Error(), "502")
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListTournaments(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, ErrEmptyBaseURL)
}

func TestNewClient_TimeoutOptions(t *testing.T) {
	shared := &http.Client{}

	tests := []struct {
		name string
		opts []Option
		want time.Duration
	}{
		{"default", nil, DefaultTimeout},
		{"timeout only", []Option{WithTimeout(time.Second)}, time.Second},
		{"timeout then client", []Option{WithTimeout(time.Second), WithHTTPClient(shared)}, time.Second},
		{"client then timeout", []Option{WithHTTPClient(shared), WithTimeout(time.Second)}, time.Second},
		{"client keeps its own timeout", []Option{WithHTTPClient(&http.Client{Timeout: 2 * time.Second})}, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient("http://localhost", tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.client.Timeout)
		})
	}

	assert.Zero(t, shared.Timeout, "caller's client must not be modified")
}
