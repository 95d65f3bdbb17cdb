// Package status serves the watcher's view of the tournament it follows.
package status

import (
	"errors"
	"net/http"

	"poker-platform/tournament-sync/internal/countdown"
	"poker-platform/tournament-sync/internal/middleware"
	"poker-platform/tournament-sync/internal/remote"
	"poker-platform/tournament-sync/internal/server/tournament"
	"poker-platform/tournament-sync/internal/store"
	"poker-platform/tournament-sync/internal/viewmodel"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type registerRequest struct {
	PlayerName string `json:"playerName" binding:"required"`
}

// Watcher is what the status endpoints read from and command.
type Watcher struct {
	Store        *store.Store
	Timer        *countdown.Timer
	TournamentID string
}

// NewRouter builds the watcher API. limiter may be nil.
func NewRouter(w Watcher, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(tournament.CORSConfig()))
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	r.GET("/healthz", func(c *gin.Context) { HandleHealth(c, w) })
	r.GET("/view", func(c *gin.Context) { HandleView(c, w) })
	r.GET("/tournaments", func(c *gin.Context) { HandleTournaments(c, w) })
	r.POST("/register", func(c *gin.Context) { HandleRegister(c, w) })
	r.POST("/unregister", func(c *gin.Context) { HandleUnregister(c, w) })
	return r
}

// HandleHealth reports the connection status. It answers 503 until the
// first poll succeeds.
func HandleHealth(c *gin.Context, w Watcher) {
	conn := w.Store.Snapshot().ConnectionStatus
	code := http.StatusOK
	if conn != store.ConnectionConnected {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": conn, "tournamentId": w.TournamentID})
}

// HandleView returns the composed view of the followed tournament
func HandleView(c *gin.Context, w Watcher) {
	var reading countdown.Reading
	if w.Timer != nil {
		reading = w.Timer.Reading()
	}
	c.JSON(http.StatusOK, viewmodel.Build(w.Store, reading))
}

// HandleTournaments refreshes and returns the open and running tournaments
func HandleTournaments(c *gin.Context, w Watcher) {
	if err := w.Store.LoadTournaments(c.Request.Context()); err != nil {
		respondCommandError(c, w, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"open":    w.Store.OpenTournaments(),
		"running": w.Store.RunningTournaments(),
	})
}

func HandleRegister(c *gin.Context, w Watcher) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	err := w.Store.RegisterForTournament(c.Request.Context(), store.RegisterParams{
		TournamentID: w.TournamentID,
		PlayerName:   req.PlayerName,
	})
	me := w.Store.Snapshot().MyPlayer
	if errors.Is(err, store.ErrReloadAfterRegister) && me != nil {
		// The seat is taken; polling picks up the snapshot later.
		log.Warn().Err(err).Str("tournament_id", w.TournamentID).Msg("registered, reload deferred to polling")
		c.JSON(http.StatusCreated, me)
		return
	}
	if err != nil {
		respondCommandError(c, w, err)
		return
	}
	c.JSON(http.StatusCreated, me)
}

func HandleUnregister(c *gin.Context, w Watcher) {
	if err := w.Store.UnregisterFromTournament(c.Request.Context(), w.TournamentID); err != nil {
		respondCommandError(c, w, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully unregistered"})
}

// respondCommandError answers with the message the store settled on for the
// failure.
func respondCommandError(c *gin.Context, w Watcher, err error) {
	if errors.Is(err, store.ErrEmptyTournamentID) || errors.Is(err, store.ErrEmptyPlayerName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg := w.Store.Snapshot().Error
	if msg == "" {
		msg = err.Error()
	}
	code := http.StatusBadGateway
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		code = apiErr.StatusCode
	}
	c.JSON(code, gin.H{"error": msg})
}
