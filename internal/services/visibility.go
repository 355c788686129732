package services

import (
	"encoding/json"
	"time"

	"github.com/prepnity/prepstudio-backend/internal/models"
	"github.com/prepnity/prepstudio-backend/internal/repository"
	apperrors "github.com/prepnity/prepstudio-backend/pkg/errors"
	"github.com/prepnity/prepstudio-backend/pkg/logger"
	"github.com/prepnity/prepstudio-backend/pkg/utils"
)

// ResolveCache memoizes effective-visibility lookups for one request. Create
// a fresh cache per request (or per call) — it is not safe to share across
// goroutines and is deliberately not a process-wide singleton.
type ResolveCache map[string]bool

func NewResolveCache() ResolveCache {
	return make(ResolveCache)
}

func resolveKey(entityType models.EntityType, entityID string) string {
	return string(entityType) + ":" + entityID
}

// IsEffectivelyPublic resolves an entity's publication state against its
// ancestor chain. An entity is effectively public only if its own flag and
// every ancestor's flag up to the journey are true: ancestor privacy always
// wins. Missing records and orphaned parent references resolve to false.
func IsEffectivelyPublic(entityType models.EntityType, entityID string, cache ResolveCache) (bool, error) {
	if cache != nil {
		if cached, ok := cache[resolveKey(entityType, entityID)]; ok {
			return cached, nil
		}
	}

	result, err := resolveEffective(entityType, entityID, cache)
	if err != nil {
		return false, err
	}
	if cache != nil {
		cache[resolveKey(entityType, entityID)] = result
	}
	return result, nil
}

func resolveEffective(entityType models.EntityType, entityID string, cache ResolveCache) (bool, error) {
	setting, err := repository.GetVisibility(entityType, entityID)
	if err != nil {
		return false, err
	}
	// Default-private: no record, or directly private, ends resolution here
	if setting == nil || !setting.IsPublic {
		return false, nil
	}

	switch entityType {
	case models.EntityJourney:
		// Root of the hierarchy: the direct setting is authoritative
		return true, nil

	case models.EntityMilestone:
		if setting.ParentJourneySlug == nil || *setting.ParentJourneySlug == "" {
			return false, nil // orphan guard
		}
		return IsEffectivelyPublic(models.EntityJourney, *setting.ParentJourneySlug, cache)

	case models.EntityObjective:
		if setting.ParentJourneySlug == nil || *setting.ParentJourneySlug == "" ||
			setting.ParentMilestoneID == nil || *setting.ParentMilestoneID == "" {
			return false, nil // orphan guard
		}
		return IsEffectivelyPublic(models.EntityMilestone, *setting.ParentMilestoneID, cache)
	}

	return false, nil
}

// UpdateVisibility validates parent lineage against the journey catalog,
// records the audit entry, and upserts the direct setting. Returns
// ErrParentNotFound before any write when the named parent chain does not
// exist. Audit failures are swallowed (logged) so an audit outage cannot
// block visibility changes; store failures propagate.
func UpdateVisibility(adminID string, entityType models.EntityType, entityID string, isPublic bool, parentJourneySlug, parentMilestoneID *string) (*models.VisibilitySetting, error) {
	if !entityType.Valid() {
		return nil, apperrors.ErrInvalidEntityType
	}

	switch entityType {
	case models.EntityJourney:
		// No parent to validate; lineage fields are not stored for journeys
		parentJourneySlug = nil
		parentMilestoneID = nil

	case models.EntityMilestone:
		if parentJourneySlug == nil || *parentJourneySlug == "" || *parentJourneySlug == entityID {
			return nil, apperrors.ErrParentNotFound
		}
		exists, err := repository.JourneyExists(*parentJourneySlug)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrParentNotFound
		}
		parentMilestoneID = nil

	case models.EntityObjective:
		if parentJourneySlug == nil || *parentJourneySlug == "" ||
			parentMilestoneID == nil || *parentMilestoneID == "" ||
			*parentMilestoneID == entityID {
			return nil, apperrors.ErrParentNotFound
		}
		journey, err := repository.FindJourneyBySlug(*parentJourneySlug)
		if err != nil {
			return nil, err
		}
		if journey == nil || !journey.HasNode(*parentMilestoneID) {
			return nil, apperrors.ErrParentNotFound
		}
	}

	// Capture the previous value (nil on first-time publication decisions)
	current, err := repository.GetVisibility(entityType, entityID)
	if err != nil {
		return nil, err
	}
	var oldValue *bool
	if current != nil {
		v := current.IsPublic
		oldValue = &v
	}

	recordVisibilityChange(adminID, entityType, entityID, oldValue, isPublic, parentJourneySlug, parentMilestoneID)

	stored, err := repository.SetVisibility(&models.VisibilitySetting{
		EntityType:        entityType,
		EntityID:          entityID,
		IsPublic:          isPublic,
		ParentJourneySlug: parentJourneySlug,
		ParentMilestoneID: parentMilestoneID,
		UpdatedBy:         adminID,
	})
	if err != nil {
		return nil, err
	}

	invalidatePublicCache(entityType, entityID, parentJourneySlug)
	return stored, nil
}

// RemoveVisibility deletes the direct setting, leaving the entity
// default-private. The removal is audited with newValue=false.
func RemoveVisibility(adminID string, entityType models.EntityType, entityID string) (bool, error) {
	if !entityType.Valid() {
		return false, apperrors.ErrInvalidEntityType
	}

	current, err := repository.GetVisibility(entityType, entityID)
	if err != nil {
		return false, err
	}

	existed, err := repository.RemoveVisibility(entityType, entityID)
	if err != nil {
		return false, err
	}

	if existed && current != nil {
		v := current.IsPublic
		recordVisibilityChange(adminID, entityType, entityID, &v, false, current.ParentJourneySlug, current.ParentMilestoneID)
		invalidatePublicCache(entityType, entityID, current.ParentJourneySlug)
	}
	return existed, nil
}

// recordVisibilityChange is fire-and-forget: a failed audit write is logged
// and never surfaced, trading audit completeness for availability of the
// visibility feature itself.
func recordVisibilityChange(adminID string, entityType models.EntityType, entityID string, oldValue *bool, newValue bool, parentJourneySlug, parentMilestoneID *string) {
	details, err := json.Marshal(models.VisibilityChangeDetails{
		EntityType:        entityType,
		EntityID:          entityID,
		OldValue:          oldValue,
		NewValue:          newValue,
		ParentJourneySlug: parentJourneySlug,
		ParentMilestoneID: parentMilestoneID,
	})
	if err != nil {
		logger.Error().Err(err).Str("entityId", entityID).Msg("Failed to marshal visibility audit details")
		return
	}

	entry := &models.AdminAuditLog{
		ID:         utils.GenerateID(),
		AdminID:    adminID,
		Action:     models.ActionVisibilityChange,
		EntityType: string(entityType),
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now(),
	}
	if err := repository.RecordAuditEntry(entry); err != nil {
		logger.Error().Err(err).
			Str("adminId", adminID).
			Str("entityType", string(entityType)).
			Str("entityId", entityID).
			Msg("Failed to record visibility audit entry")
	}
}

// QueryVisibilityChangeLogs pages through visibility audit entries for the
// admin review surface
func QueryVisibilityChangeLogs(q repository.AuditQuery) ([]models.AdminAuditLog, int64, error) {
	q.Action = models.ActionVisibilityChange
	return repository.QueryAuditEntries(q)
}
