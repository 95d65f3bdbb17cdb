package tournament

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"poker-platform/tournament-sync/internal/models"
	"poker-platform/tournament-sync/internal/simulator"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *simulator.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := simulator.OpenDB(simulator.DBConfig{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	service := simulator.NewService(db, simulator.WithClock(clockwork.NewFakeClock()), simulator.WithSeed(7))
	return NewRouter(service, Limiters{}), service
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	router, _ := setupRouter(t)
	w := do(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTournamentLifecycle(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/tournaments", map[string]any{
		"name":                 "Evening Turbo",
		"buyIn":                10,
		"maxPlayers":           4,
		"structurePreset":      "turbo",
		"prizeStructurePreset": "heads_up",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Tournament](t, w)
	assert.Equal(t, models.StatusRegistering, created.Status)
	base := "/api/tournaments/" + created.ID

	w = do(t, router, http.MethodPost, base+"/register", map[string]string{"playerName": "alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	alice := decode[models.TournamentPlayer](t, w)
	assert.Equal(t, "alice", alice.Name)
	assert.Equal(t, 1500, alice.Chips)

	w = do(t, router, http.MethodPost, base+"/register", map[string]string{"playerName": "alice"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"a player with this name is already registered"}`, w.Body.String())

	w = do(t, router, http.MethodPost, base+"/bots", map[string]int{"count": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, decode[[]models.TournamentPlayer](t, w), 2)

	w = do(t, router, http.MethodGet, "/api/tournaments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.TournamentListItem](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].RegisteredCount)
	assert.Equal(t, 30, list[0].PrizePool)

	w = do(t, router, http.MethodPost, base+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	started := decode[models.Tournament](t, w)
	assert.Equal(t, models.StatusRunning, started.Status)
	assert.Equal(t, 1, started.CurrentLevel)

	w = do(t, router, http.MethodPost, base+"/unregister", map[string]string{"playerId": alice.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, http.MethodPost, base+"/eliminate", map[string]string{"playerId": alice.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	after := decode[models.Tournament](t, w)
	assert.Equal(t, 2, after.RemainingPlayers)
	assert.Equal(t, models.StatusFinalTable, after.Status)

	w = do(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[models.Tournament](t, w)
	assert.Equal(t, after.RemainingPlayers, snap.RemainingPlayers)
}

func TestErrors(t *testing.T) {
	router, service := setupRouter(t)
	tourney, err := service.CreateTournament(simulator.CreateRequest{Name: "Errors"})
	require.NoError(t, err)
	base := "/api/tournaments/" + tourney.ID

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown tournament", http.MethodGet, "/api/tournaments/missing", nil, http.StatusNotFound},
		{"register unknown tournament", http.MethodPost, "/api/tournaments/missing/register", map[string]string{"playerName": "x"}, http.StatusNotFound},
		{"register without a name", http.MethodPost, base + "/register", map[string]string{}, http.StatusBadRequest},
		{"unregister stranger", http.MethodPost, base + "/unregister", map[string]string{"playerId": "nobody"}, http.StatusNotFound},
		{"start without players", http.MethodPost, base + "/start", nil, http.StatusConflict},
		{"eliminate before start", http.MethodPost, base + "/eliminate", map[string]string{"playerId": "nobody"}, http.StatusConflict},
		{"zero bots", http.MethodPost, base + "/bots", map[string]int{"count": 0}, http.StatusBadRequest},
		{"unknown preset", http.MethodPost, "/api/tournaments", map[string]string{"name": "x", "structurePreset": "glacial"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			body := decode[map[string]any](t, w)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestStatusFor_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
