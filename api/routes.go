package api

import (
	"github.com/gin-gonic/gin"

	"github.com/negobench/negobench/api/handlers"
)

// SetupRoutes initializes all API endpoints.
func SetupRoutes(router *gin.Engine, h *handlers.Handlers) {
	api := router.Group("/api")
	{
		api.POST("/tournaments", h.StartTournament)
		api.POST("/tournaments/stop", h.StopTournament)
		api.GET("/runs", h.ListRuns)
		api.GET("/runs/:id", h.GetRun)
	}
	router.GET("/ws", handlers.HandleWebSocket)
}
