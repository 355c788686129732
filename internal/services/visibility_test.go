package services

import (
	"encoding/json"
	"testing"

	"github.com/prepnity/prepstudio-backend/internal/database"
	"github.com/prepnity/prepstudio-backend/internal/models"
	"github.com/prepnity/prepstudio-backend/internal/repository"
	apperrors "github.com/prepnity/prepstudio-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsEffectivelyPublic_AncestorChain(t *testing.T) {
	SetupTestDB(t)

	// Journey public; m1 public, m2 private
	setDirect(t, models.EntityJourney, "js-basics", true, nil, nil)
	setDirect(t, models.EntityMilestone, "m1", true, strPtr("js-basics"), nil)
	setDirect(t, models.EntityMilestone, "m2", false, strPtr("js-basics"), nil)

	cache := NewResolveCache()

	public, err := IsEffectivelyPublic(models.EntityMilestone, "m1", cache)
	assert.NoError(t, err)
	assert.True(t, public)

	public, err = IsEffectivelyPublic(models.EntityMilestone, "m2", cache)
	assert.NoError(t, err)
	assert.False(t, public)

	// Public objective under public chain
	setDirect(t, models.EntityObjective, "m1-objective-0", true, strPtr("js-basics"), strPtr("m1"))
	public, err = IsEffectivelyPublic(models.EntityObjective, "m1-objective-0", cache)
	assert.NoError(t, err)
	assert.True(t, public)

	// Same flag under the private milestone resolves false
	setDirect(t, models.EntityObjective, "m2-objective-0", true, strPtr("js-basics"), strPtr("m2"))
	public, err = IsEffectivelyPublic(models.EntityObjective, "m2-objective-0", cache)
	assert.NoError(t, err)
	assert.False(t, public)
}

func TestIsEffectivelyPublic_PrivateJourneyForcesChainPrivate(t *testing.T) {
	SetupTestDB(t)

	setDirect(t, models.EntityJourney, "hidden", false, nil, nil)
	setDirect(t, models.EntityMilestone, "m1", true, strPtr("hidden"), nil)
	setDirect(t, models.EntityObjective, "m1-objective-0", true, strPtr("hidden"), strPtr("m1"))

	public, err := IsEffectivelyPublic(models.EntityMilestone, "m1", NewResolveCache())
	assert.NoError(t, err)
	assert.False(t, public)

	public, err = IsEffectivelyPublic(models.EntityObjective, "m1-objective-0", NewResolveCache())
	assert.NoError(t, err)
	assert.False(t, public)
}

func TestIsEffectivelyPublic_DefaultPrivate(t *testing.T) {
	SetupTestDB(t)

	// No record at all
	public, err := IsEffectivelyPublic(models.EntityJourney, "never-stored", NewResolveCache())
	assert.NoError(t, err)
	assert.False(t, public)

	// Orphan guard: public flag with missing parent refs still resolves false
	setDirect(t, models.EntityMilestone, "orphan-ms", true, nil, nil)
	public, err = IsEffectivelyPublic(models.EntityMilestone, "orphan-ms", NewResolveCache())
	assert.NoError(t, err)
	assert.False(t, public)

	setDirect(t, models.EntityObjective, "orphan-obj", true, strPtr("js-basics"), nil)
	public, err = IsEffectivelyPublic(models.EntityObjective, "orphan-obj", NewResolveCache())
	assert.NoError(t, err)
	assert.False(t, public)
}

func TestIsEffectivelyPublic_MemoizesPerCache(t *testing.T) {
	SetupTestDB(t)

	setDirect(t, models.EntityJourney, "j1", true, nil, nil)

	cache := NewResolveCache()
	_, err := IsEffectivelyPublic(models.EntityJourney, "j1", cache)
	assert.NoError(t, err)
	assert.Equal(t, map[string]bool{"journey:j1": true}, map[string]bool(cache))

	// Stale cache wins within a request scope: flip the stored flag and the
	// memoized answer is still returned
	setDirect(t, models.EntityJourney, "j1", false, nil, nil)
	public, err := IsEffectivelyPublic(models.EntityJourney, "j1", cache)
	assert.NoError(t, err)
	assert.True(t, public)

	public, err = IsEffectivelyPublic(models.EntityJourney, "j1", NewResolveCache())
	assert.NoError(t, err)
	assert.False(t, public)
}

func TestUpdateVisibility_JourneyNeedsNoParent(t *testing.T) {
	SetupTestDB(t)

	setting, err := UpdateVisibility("admin1", models.EntityJourney, "brand-new", true, nil, nil)
	assert.NoError(t, err)
	if assert.NotNil(t, setting) {
		assert.True(t, setting.IsPublic)
		assert.Nil(t, setting.ParentJourneySlug)
		assert.Equal(t, "admin1", setting.UpdatedBy)
	}
}

func TestUpdateVisibility_ParentValidation(t *testing.T) {
	SetupTestDB(t)
	seedJourney(t, "js-basics")

	// Valid milestone under an existing journey
	setting, err := UpdateVisibility("admin1", models.EntityMilestone, "m1", true, strPtr("js-basics"), nil)
	assert.NoError(t, err)
	assert.NotNil(t, setting)

	// Unknown journey rejected before any write
	_, err = UpdateVisibility("admin1", models.EntityMilestone, "m9", true, strPtr("nonexistent-journey"), nil)
	assert.Equal(t, apperrors.ErrParentNotFound, err)

	exists, _ := repository.VisibilityExists(models.EntityMilestone, "m9")
	assert.False(t, exists)

	var auditCount int64
	database.DB.Model(&models.AdminAuditLog{}).Where("entity_id = ?", "m9").Count(&auditCount)
	assert.Equal(t, int64(0), auditCount)

	// Missing parent reference entirely
	_, err = UpdateVisibility("admin1", models.EntityMilestone, "m9", true, nil, nil)
	assert.Equal(t, apperrors.ErrParentNotFound, err)

	// Objective: milestone id must appear among the journey's nodes
	setting, err = UpdateVisibility("admin1", models.EntityObjective, "m1-objective-0", true, strPtr("js-basics"), strPtr("m1"))
	assert.NoError(t, err)
	assert.NotNil(t, setting)

	_, err = UpdateVisibility("admin1", models.EntityObjective, "m9-objective-0", true, strPtr("js-basics"), strPtr("m9"))
	assert.Equal(t, apperrors.ErrParentNotFound, err)

	_, err = UpdateVisibility("admin1", models.EntityObjective, "m1-objective-1", true, strPtr("js-basics"), nil)
	assert.Equal(t, apperrors.ErrParentNotFound, err)
}

func TestUpdateVisibility_RejectsUnknownEntityType(t *testing.T) {
	SetupTestDB(t)

	_, err := UpdateVisibility("admin1", models.EntityType("lesson"), "x", true, nil, nil)
	assert.Equal(t, apperrors.ErrInvalidEntityType, err)
}

func TestUpdateVisibility_AuditTrail(t *testing.T) {
	SetupTestDB(t)
	seedJourney(t, "js-basics")

	// First write: oldValue is null
	_, err := UpdateVisibility("admin1", models.EntityMilestone, "m1", true, strPtr("js-basics"), nil)
	assert.NoError(t, err)

	// Second write: oldValue captured
	_, err = UpdateVisibility("admin2", models.EntityMilestone, "m1", false, strPtr("js-basics"), nil)
	assert.NoError(t, err)

	entries, total, err := QueryVisibilityChangeLogs(repository.AuditQuery{EntityID: "m1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Newest first
	var latest models.VisibilityChangeDetails
	assert.NoError(t, json.Unmarshal(entries[0].Details, &latest))
	assert.Equal(t, "admin2", entries[0].AdminID)
	assert.Equal(t, models.ActionVisibilityChange, entries[0].Action)
	if assert.NotNil(t, latest.OldValue) {
		assert.True(t, *latest.OldValue)
	}
	assert.False(t, latest.NewValue)
	assert.Equal(t, "js-basics", *latest.ParentJourneySlug)

	var first models.VisibilityChangeDetails
	assert.NoError(t, json.Unmarshal(entries[1].Details, &first))
	assert.Nil(t, first.OldValue)
	assert.True(t, first.NewValue)
}

func TestRemoveVisibility_Audited(t *testing.T) {
	SetupTestDB(t)
	seedJourney(t, "js-basics")

	_, err := UpdateVisibility("admin1", models.EntityMilestone, "m1", true, strPtr("js-basics"), nil)
	assert.NoError(t, err)

	existed, err := RemoveVisibility("admin1", models.EntityMilestone, "m1")
	assert.NoError(t, err)
	assert.True(t, existed)

	exists, _ := repository.VisibilityExists(models.EntityMilestone, "m1")
	assert.False(t, exists)

	entries, total, err := QueryVisibilityChangeLogs(repository.AuditQuery{EntityID: "m1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	var removal models.VisibilityChangeDetails
	assert.NoError(t, json.Unmarshal(entries[0].Details, &removal))
	if assert.NotNil(t, removal.OldValue) {
		assert.True(t, *removal.OldValue)
	}
	assert.False(t, removal.NewValue)

	// Removing a setting that never existed is not audited
	existed, err = RemoveVisibility("admin1", models.EntityMilestone, "ghost")
	assert.NoError(t, err)
	assert.False(t, existed)
}
