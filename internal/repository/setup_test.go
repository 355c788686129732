package repository

import (
	"testing"

	"github.com/prepnity/prepstudio-backend/internal/database"
	"github.com/prepnity/prepstudio-backend/internal/models"
	"github.com/prepnity/prepstudio-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) {
	logger.Init("test")

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

	// Shared-cache memory DB persists across tests in this package
	database.DB.Exec("DELETE FROM visibility_settings")
	database.DB.Exec("DELETE FROM admin_audit_logs")
	database.DB.Exec("DELETE FROM journeys")
	database.DB.Exec("DELETE FROM users")
}

func strPtr(s string) *string {
	return &s
}
