package services

import (
	"testing"

	"github.com/prepnity/prepstudio-backend/internal/database"
	"github.com/prepnity/prepstudio-backend/internal/models"
	"github.com/prepnity/prepstudio-backend/internal/repository"
	"github.com/prepnity/prepstudio-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) {
	logger.Init("test")
	database.Redis = nil

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Journey{},
		&models.VisibilitySetting{},
		&models.AdminAuditLog{},
	)

	database.DB.Exec("DELETE FROM visibility_settings")
	database.DB.Exec("DELETE FROM admin_audit_logs")
	database.DB.Exec("DELETE FROM journeys")
	database.DB.Exec("DELETE FROM users")
}

func strPtr(s string) *string {
	return &s
}

// seedJourney inserts a catalog journey with two milestone nodes, two
// objectives on the first node, and one edge between the nodes
func seedJourney(t *testing.T, slug string) {
	t.Helper()
	journey := models.Journey{
		Slug:       slug,
		Title:      "Test Journey " + slug,
		Category:   "Frontend",
		Difficulty: "EASY",
		Nodes: []models.JourneyNode{
			{ID: "m1", Title: "Milestone One", LearningObjectives: []string{"obj a", "obj b"}},
			{ID: "m2", Title: "Milestone Two", LearningObjectives: []string{"obj c"}},
		},
		Edges: []models.JourneyEdge{
			{ID: "e1", Source: "m1", Target: "m2"},
		},
	}
	if err := database.DB.Create(&journey).Error; err != nil {
		t.Fatalf("Failed to seed journey: %v", err)
	}
}

func setDirect(t *testing.T, entityType models.EntityType, entityID string, isPublic bool, parentJourneySlug, parentMilestoneID *string) {
	t.Helper()
	_, err := repository.SetVisibility(&models.VisibilitySetting{
		EntityType:        entityType,
		EntityID:          entityID,
		IsPublic:          isPublic,
		ParentJourneySlug: parentJourneySlug,
		ParentMilestoneID: parentMilestoneID,
		UpdatedBy:         "seed",
	})
	if err != nil {
		t.Fatalf("Failed to seed visibility setting: %v", err)
	}
}
