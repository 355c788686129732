package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prepnity/prepstudio-backend/internal/handlers"
)

// RegisterJourneyRoutes mounts the anonymous-facing journey catalog
func RegisterJourneyRoutes(r *gin.RouterGroup) {
	journeys := r.Group("/journeys")
	{
		journeys.GET("", handlers.ListPublicJourneys)
		journeys.GET("/:slug", handlers.GetPublicJourney)
	}
}
