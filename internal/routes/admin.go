package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prepnity/prepstudio-backend/internal/handlers"
	"github.com/prepnity/prepstudio-backend/internal/middleware"
)

// RegisterAdminRoutes mounts the visibility moderation surface
func RegisterAdminRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		visibility := admin.Group("/visibility")
		{
			visibility.GET("/overview", handlers.AdminGetVisibilityOverview)
			visibility.GET("/journeys/:slug", handlers.AdminGetJourneyVisibilityDetails)
			visibility.GET("/audit", handlers.AdminQueryVisibilityAudit)

			visibility.PUT("", middleware.AdminRateLimit(), handlers.AdminUpdateVisibility)
			visibility.DELETE("/:entityType/:entityId", middleware.AdminRateLimit(), handlers.AdminRemoveVisibility)
		}
	}
}
