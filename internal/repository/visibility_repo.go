package repository

import (
	"errors"

	"github.com/prepnity/prepstudio-backend/internal/database"
	"github.com/prepnity/prepstudio-backend/internal/models"
	"github.com/prepnity/prepstudio-backend/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns overwritten on upsert. ID and created_at survive the first write.
var visibilityUpdateColumns = []string{
	"is_public", "parent_journey_slug", "parent_milestone_id", "updated_by", "updated_at",
}

// GetVisibility returns the direct setting for one entity, or nil if none is stored
func GetVisibility(entityType models.EntityType, entityID string) (*models.VisibilitySetting, error) {
	var setting models.VisibilitySetting
	err := database.DB.First(&setting, "entity_type = ? AND entity_id = ?", entityType, entityID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// GetVisibilityBatch returns the stored settings for the given ids keyed by
// entity id. Missing ids are simply absent from the map. An empty input skips
// the database round-trip entirely.
func GetVisibilityBatch(entityType models.EntityType, entityIDs []string) (map[string]models.VisibilitySetting, error) {
	result := make(map[string]models.VisibilitySetting, len(entityIDs))
	if len(entityIDs) == 0 {
		return result, nil
	}

	var settings []models.VisibilitySetting
	if err := database.DB.
		Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Find(&settings).Error; err != nil {
		return nil, err
	}

	for _, s := range settings {
		result[s.EntityID] = s
	}
	return result, nil
}

// SetVisibility upserts the setting keyed on (entity_type, entity_id) and
// returns the post-write record. A fresh id and created_at are assigned only
// when no row existed; otherwise everything but id/created_at is overwritten
// and updated_at refreshed.
func SetVisibility(setting *models.VisibilitySetting) (*models.VisibilitySetting, error) {
	if setting.ID == "" {
		setting.ID = utils.GenerateID()
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_type"}, {Name: "entity_id"}},
		DoUpdates: clause.AssignmentColumns(visibilityUpdateColumns),
	}).Create(setting).Error
	if err != nil {
		return nil, err
	}

	// Re-read so callers see the stored id/created_at when the upsert hit an
	// existing row rather than the speculative ones set above.
	return GetVisibility(setting.EntityType, setting.EntityID)
}

// SetVisibilityBatch applies upsert semantics to each element as one bulk
// statement. Cross-record atomicity is not guaranteed to callers: re-verify
// with GetVisibilityBatch if strict consistency matters.
func SetVisibilityBatch(settings []models.VisibilitySetting) ([]models.VisibilitySetting, error) {
	if len(settings) == 0 {
		return nil, nil
	}

	for i := range settings {
		if settings[i].ID == "" {
			settings[i].ID = utils.GenerateID()
		}
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_type"}, {Name: "entity_id"}},
		DoUpdates: clause.AssignmentColumns(visibilityUpdateColumns),
	}).Create(&settings).Error
	if err != nil {
		return nil, err
	}

	// Group re-reads by type so mixed batches come back with stored ids
	idsByType := make(map[models.EntityType][]string)
	for _, s := range settings {
		idsByType[s.EntityType] = append(idsByType[s.EntityType], s.EntityID)
	}

	stored := make(map[models.EntityType]map[string]models.VisibilitySetting, len(idsByType))
	for entityType, ids := range idsByType {
		batch, err := GetVisibilityBatch(entityType, ids)
		if err != nil {
			return nil, err
		}
		stored[entityType] = batch
	}

	results := make([]models.VisibilitySetting, 0, len(settings))
	for _, s := range settings {
		if row, ok := stored[s.EntityType][s.EntityID]; ok {
			results = append(results, row)
		}
	}
	return results, nil
}

// FindPublicIDs returns all entity ids of the given type directly marked
// public. Hierarchy is not resolved here; combine with the resolver for
// effective visibility.
func FindPublicIDs(entityType models.EntityType) ([]string, error) {
	var ids []string
	err := database.DB.Model(&models.VisibilitySetting{}).
		Where("entity_type = ? AND is_public = ?", entityType, true).
		Pluck("entity_id", &ids).Error
	return ids, err
}

// FindByParent lists settings scoped under one parent. Milestones are keyed
// by parent journey slug, objectives by parent milestone id.
func FindByParent(entityType models.EntityType, parentID string) ([]models.VisibilitySetting, error) {
	var settings []models.VisibilitySetting

	query := database.DB.Where("entity_type = ?", entityType)
	switch entityType {
	case models.EntityMilestone:
		query = query.Where("parent_journey_slug = ?", parentID)
	case models.EntityObjective:
		query = query.Where("parent_milestone_id = ?", parentID)
	default:
		// Journeys have no parent
		return nil, nil
	}

	err := query.Find(&settings).Error
	return settings, err
}

// CountPublicUnderJourney counts directly-public settings of one type scoped
// under a journey (used by the admin overview rollup)
func CountPublicUnderJourney(entityType models.EntityType, journeySlug string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.VisibilitySetting{}).
		Where("entity_type = ? AND parent_journey_slug = ? AND is_public = ?", entityType, journeySlug, true).
		Count(&count).Error
	return count, err
}

// RemoveVisibility deletes the setting and reports whether it existed
func RemoveVisibility(entityType models.EntityType, entityID string) (bool, error) {
	result := database.DB.
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&models.VisibilitySetting{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// VisibilityExists checks for a stored setting without loading it
func VisibilityExists(entityType models.EntityType, entityID string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.VisibilitySetting{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Count(&count).Error
	return count > 0, err
}
