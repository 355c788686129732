package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepnity/prepstudio-backend/internal/services"
)

// ListPublicJourneys returns journey cards for the anonymous catalog page
func ListPublicJourneys(c *gin.Context) {
	journeys, err := services.GetPublicJourneys()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journeys"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"journeys": journeys})
}

// GetPublicJourney returns the public subtree of one journey. Not-public and
// nonexistent journeys are both 404 so hidden content leaks nothing.
func GetPublicJourney(c *gin.Context) {
	slug := c.Param("slug")

	journey, err := services.GetPublicJourneyBySlug(slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journey"})
		return
	}
	if journey == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journey not found"})
		return
	}

	c.JSON(http.StatusOK, journey)
}
