package tournament

import (
	"net/http"
	"time"

	"poker-platform/tournament-sync/internal/middleware"
	"poker-platform/tournament-sync/internal/simulator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Limiters rate limits reads and commands separately. Either may be nil.
type Limiters struct {
	Read    *middleware.RateLimiter
	Command *middleware.RateLimiter
}

// NewRouter builds the simulator API.
func NewRouter(service *simulator.Service, limiters Limiters) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(CORSConfig()))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/tournaments")
	if limiters.Read != nil {
		api.Use(limiters.Read.Middleware())
	}
	api.GET("", func(c *gin.Context) { HandleListTournaments(c, service) })
	api.GET("/:id", func(c *gin.Context) { HandleGetTournament(c, service) })

	commands := api.Group("")
	if limiters.Command != nil {
		commands.Use(limiters.Command.Middleware())
	}
	{
		commands.POST("", func(c *gin.Context) { HandleCreateTournament(c, service) })
		commands.POST("/:id/register", func(c *gin.Context) { HandleRegisterTournament(c, service) })
		commands.POST("/:id/unregister", func(c *gin.Context) { HandleUnregisterTournament(c, service) })
		commands.POST("/:id/start", func(c *gin.Context) { HandleStartTournament(c, service) })
		commands.POST("/:id/eliminate", func(c *gin.Context) { HandleEliminatePlayer(c, service) })
		commands.POST("/:id/bots", func(c *gin.Context) { HandleAddBots(c, service) })
	}

	return r
}

// CORSConfig allows any origin, matching a development tool's needs.
func CORSConfig() cors.Config {
	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400 * time.Second,
	}
}
