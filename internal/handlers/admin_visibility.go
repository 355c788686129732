package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prepnity/prepstudio-backend/internal/models"
	"github.com/prepnity/prepstudio-backend/internal/repository"
	"github.com/prepnity/prepstudio-backend/internal/services"
	apperrors "github.com/prepnity/prepstudio-backend/pkg/errors"
)

func getAdminID(c *gin.Context) string {
	val, exists := c.Get("userId")
	if !exists {
		return ""
	}
	return val.(string)
}

func respondServiceError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// AdminUpdateVisibility changes the direct publication flag for one entity
func AdminUpdateVisibility(c *gin.Context) {
	adminID := getAdminID(c)

	var req struct {
		EntityType        models.EntityType `json:"entityType" binding:"required"`
		EntityID          string            `json:"entityId" binding:"required"`
		IsPublic          *bool             `json:"isPublic" binding:"required"`
		ParentJourneySlug *string           `json:"parentJourneySlug"`
		ParentMilestoneID *string           `json:"parentMilestoneId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, err := services.UpdateVisibility(adminID, req.EntityType, req.EntityID, *req.IsPublic, req.ParentJourneySlug, req.ParentMilestoneID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

// AdminRemoveVisibility deletes a direct setting, leaving the entity default-private
func AdminRemoveVisibility(c *gin.Context) {
	adminID := getAdminID(c)
	entityType := models.EntityType(c.Param("entityType"))
	entityID := c.Param("entityId")

	existed, err := services.RemoveVisibility(adminID, entityType, entityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "No visibility setting for entity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visibility setting removed"})
}

// AdminGetVisibilityOverview returns the per-journey publication rollup
func AdminGetVisibilityOverview(c *gin.Context) {
	overview, err := services.GetVisibilityOverview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build visibility overview"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"journeys": overview})
}

// AdminGetJourneyVisibilityDetails returns the full visibility matrix for one journey
func AdminGetJourneyVisibilityDetails(c *gin.Context) {
	slug := c.Param("slug")

	details, err := services.GetJourneyVisibilityDetails(slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load journey visibility"})
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journey not found"})
		return
	}

	c.JSON(http.StatusOK, details)
}

// AdminQueryVisibilityAudit pages through visibility change logs
func AdminQueryVisibilityAudit(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := repository.AuditQuery{
		AdminID:    c.Query("adminId"),
		EntityType: c.Query("entityType"),
		EntityID:   c.Query("entityId"),
		Page:       page,
		Limit:      limit,
	}

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp, expected RFC3339"})
			return
		}
		query.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp, expected RFC3339"})
			return
		}
		query.To = &t
	}

	entries, total, err := services.QueryVisibilityChangeLogs(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query audit log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"pagination": gin.H{
			"page":       query.Page,
			"limit":      query.Limit,
			"total":      total,
			"totalPages": (total + int64(query.Limit) - 1) / int64(query.Limit),
		},
	})
}
