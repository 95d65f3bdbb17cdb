// Package tournament serves the simulator's tournament API over HTTP.
package tournament

import (
	"errors"
	"net/http"

	"poker-platform/tournament-sync/internal/simulator"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type registerRequest struct {
	PlayerName string `json:"playerName" binding:"required"`
}

type unregisterRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
}

type eliminateRequest struct {
	PlayerID     string `json:"playerId" binding:"required"`
	EliminatorID string `json:"eliminatorId"`
}

type botsRequest struct {
	Count int `json:"count" binding:"required,min=1"`
}

// HandleListTournaments lists all tournaments, newest first
func HandleListTournaments(c *gin.Context, service *simulator.Service) {
	tournaments, err := service.ListTournaments()
	if err != nil {
		respondError(c, err, "Failed to fetch tournaments")
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

// HandleGetTournament returns the full snapshot of one tournament
func HandleGetTournament(c *gin.Context, service *simulator.Service) {
	tourney, err := service.Snapshot(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch tournament")
		return
	}
	c.JSON(http.StatusOK, tourney)
}

// HandleCreateTournament creates a tournament from named presets
func HandleCreateTournament(c *gin.Context, service *simulator.Service) {
	var req simulator.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	tourney, err := service.CreateTournament(req)
	if err != nil {
		respondError(c, err, "Failed to create tournament")
		return
	}
	c.JSON(http.StatusCreated, tourney)
}

// HandleRegisterTournament registers a player by name and returns the new player
func HandleRegisterTournament(c *gin.Context, service *simulator.Service) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	player, err := service.RegisterPlayer(c.Param("id"), req.PlayerName)
	if err != nil {
		respondError(c, err, "Failed to register")
		return
	}
	c.JSON(http.StatusCreated, player)
}

func HandleUnregisterTournament(c *gin.Context, service *simulator.Service) {
	var req unregisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := service.UnregisterPlayer(c.Param("id"), req.PlayerID); err != nil {
		respondError(c, err, "Failed to unregister")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully unregistered"})
}

func HandleStartTournament(c *gin.Context, service *simulator.Service) {
	tourney, err := service.StartTournament(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to start tournament")
		return
	}
	c.JSON(http.StatusOK, tourney)
}

// HandleEliminatePlayer busts a player out, optionally crediting an eliminator
func HandleEliminatePlayer(c *gin.Context, service *simulator.Service) {
	var req eliminateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	tourney, err := service.EliminatePlayer(c.Param("id"), req.PlayerID, req.EliminatorID)
	if err != nil {
		respondError(c, err, "Failed to eliminate player")
		return
	}
	c.JSON(http.StatusOK, tourney)
}

func HandleAddBots(c *gin.Context, service *simulator.Service) {
	var req botsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	bots, err := service.AddBots(c.Param("id"), req.Count)
	if err != nil {
		respondError(c, err, "Failed to add bots")
		return
	}
	c.JSON(http.StatusCreated, bots)
}

// respondError maps service errors onto status codes. Unknown errors are
// logged and hidden behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, simulator.ErrTournamentNotFound),
		errors.Is(err, simulator.ErrPlayerNotFound),
		errors.Is(err, simulator.ErrNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, simulator.ErrTournamentNotRegistering),
		errors.Is(err, simulator.ErrTournamentFull),
		errors.Is(err, simulator.ErrAlreadyRegistered),
		errors.Is(err, simulator.ErrCannotUnregister),
		errors.Is(err, simulator.ErrTournamentAlreadyStarted),
		errors.Is(err, simulator.ErrTournamentNotInPlay),
		errors.Is(err, simulator.ErrPlayerAlreadyEliminated),
		errors.Is(err, simulator.ErrNotEnoughPlayers),
		errors.Is(err, simulator.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, simulator.ErrInvalidTournamentName),
		errors.Is(err, simulator.ErrInvalidBuyIn),
		errors.Is(err, simulator.ErrInvalidStartingChips),
		errors.Is(err, simulator.ErrInvalidMaxPlayers),
		errors.Is(err, simulator.ErrInvalidMinPlayers),
		errors.Is(err, simulator.ErrMinPlayersGreaterThanMax),
		errors.Is(err, simulator.ErrInvalidPlayersPerTable),
		errors.Is(err, simulator.ErrInvalidBreakSchedule),
		errors.Is(err, simulator.ErrStructureNotFound),
		errors.Is(err, simulator.ErrPrizeStructureNotFound),
		errors.Is(err, simulator.ErrInvalidStructure),
		errors.Is(err, simulator.ErrInvalidPrizeStructure),
		errors.Is(err, simulator.ErrEmptyPlayerName),
		errors.Is(err, simulator.ErrPlayerNameTooLong),
		errors.Is(err, simulator.ErrInvalidBotCount):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
