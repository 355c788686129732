package repository

import (
	"testing"
	"time"

	"github.com/prepnity/prepstudio-backend/internal/database"
	"github.com/prepnity/prepstudio-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSetVisibility_RoundTrip(t *testing.T) {
	SetupTestDB(t)

	stored, err := SetVisibility(&models.VisibilitySetting{
		EntityType:        models.EntityMilestone,
		EntityID:          "m1",
		IsPublic:          true,
		ParentJourneySlug: strPtr("js-basics"),
		UpdatedBy:         "admin1",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	got, err := GetVisibility(models.EntityMilestone, "m1")
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, stored.ID, got.ID)
		assert.Equal(t, models.EntityMilestone, got.EntityType)
		assert.Equal(t, "m1", got.EntityID)
		assert.True(t, got.IsPublic)
		assert.Equal(t, "js-basics", *got.ParentJourneySlug)
		assert.Nil(t, got.ParentMilestoneID)
		assert.Equal(t, "admin1", got.UpdatedBy)
	}
}

func TestSetVisibility_UpsertKeepsIdentity(t *testing.T) {
	SetupTestDB(t)

	first, err := SetVisibility(&models.VisibilitySetting{
		EntityType: models.EntityJourney,
		EntityID:   "js-basics",
		IsPublic:   false,
		UpdatedBy:  "admin1",
	})
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := SetVisibility(&models.VisibilitySetting{
		EntityType: models.EntityJourney,
		EntityID:   "js-basics",
		IsPublic:   true,
		UpdatedBy:  "admin2",
	})
	assert.NoError(t, err)

	// Same row: id and createdAt survive, mutable fields overwritten
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
	assert.True(t, second.IsPublic)
	assert.Equal(t, "admin2", second.UpdatedBy)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt) || second.UpdatedAt.Equal(first.UpdatedAt))

	var count int64
	database.DB.Model(&models.VisibilitySetting{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetVisibilityBatch(t *testing.T) {
	SetupTestDB(t)

	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityMilestone, EntityID: "m1", IsPublic: true, ParentJourneySlug: strPtr("j1"), UpdatedBy: "a"})
	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityMilestone, EntityID: "m2", IsPublic: false, ParentJourneySlug: strPtr("j1"), UpdatedBy: "a"})

	// Missing ids are simply absent, no error
	batch, err := GetVisibilityBatch(models.EntityMilestone, []string{"m1", "m2", "m3"})
	assert.NoError(t, err)
	assert.Len(t, batch, 2)
	assert.True(t, batch["m1"].IsPublic)
	assert.False(t, batch["m2"].IsPublic)
	_, found := batch["m3"]
	assert.False(t, found)

	// Empty input returns an empty map without a store round-trip
	empty, err := GetVisibilityBatch(models.EntityMilestone, nil)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSetVisibilityBatch(t *testing.T) {
	SetupTestDB(t)

	// Pre-existing row to exercise the conflict path
	existing, err := SetVisibility(&models.VisibilitySetting{
		EntityType: models.EntityJourney, EntityID: "j1", IsPublic: false, UpdatedBy: "a",
	})
	assert.NoError(t, err)

	results, err := SetVisibilityBatch([]models.VisibilitySetting{
		{EntityType: models.EntityJourney, EntityID: "j1", IsPublic: true, UpdatedBy: "b"},
		{EntityType: models.EntityMilestone, EntityID: "m1", IsPublic: true, ParentJourneySlug: strPtr("j1"), UpdatedBy: "b"},
	})
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	byID := make(map[string]models.VisibilitySetting)
	for _, r := range results {
		byID[string(r.EntityType)+":"+r.EntityID] = r
	}
	assert.Equal(t, existing.ID, byID["journey:j1"].ID)
	assert.True(t, byID["journey:j1"].IsPublic)
	assert.Equal(t, "b", byID["journey:j1"].UpdatedBy)
	assert.NotEmpty(t, byID["milestone:m1"].ID)
}

func TestFindPublicIDs(t *testing.T) {
	SetupTestDB(t)

	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityJourney, EntityID: "j1", IsPublic: true, UpdatedBy: "a"})
	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityJourney, EntityID: "j2", IsPublic: false, UpdatedBy: "a"})
	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityMilestone, EntityID: "m1", IsPublic: true, ParentJourneySlug: strPtr("j1"), UpdatedBy: "a"})

	ids, err := FindPublicIDs(models.EntityJourney)
	assert.NoError(t, err)
	assert.Equal(t, []string{"j1"}, ids)
}

func TestFindByParent_KeyAsymmetry(t *testing.T) {
	SetupTestDB(t)

	// Milestones are scoped by journey slug, objectives by milestone node id
	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityMilestone, EntityID: "m1", IsPublic: true, ParentJourneySlug: strPtr("j1"), UpdatedBy: "a"})
	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityMilestone, EntityID: "m2", IsPublic: true, ParentJourneySlug: strPtr("j2"), UpdatedBy: "a"})
	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityObjective, EntityID: "m1-objective-0", IsPublic: true, ParentJourneySlug: strPtr("j1"), ParentMilestoneID: strPtr("m1"), UpdatedBy: "a"})

	milestones, err := FindByParent(models.EntityMilestone, "j1")
	assert.NoError(t, err)
	assert.Len(t, milestones, 1)
	assert.Equal(t, "m1", milestones[0].EntityID)

	objectives, err := FindByParent(models.EntityObjective, "m1")
	assert.NoError(t, err)
	assert.Len(t, objectives, 1)
	assert.Equal(t, "m1-objective-0", objectives[0].EntityID)

	// Journeys have no parent scope
	none, err := FindByParent(models.EntityJourney, "j1")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestRemoveAndExists(t *testing.T) {
	SetupTestDB(t)

	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityJourney, EntityID: "j1", IsPublic: true, UpdatedBy: "a"})

	exists, err := VisibilityExists(models.EntityJourney, "j1")
	assert.NoError(t, err)
	assert.True(t, exists)

	removed, err := RemoveVisibility(models.EntityJourney, "j1")
	assert.NoError(t, err)
	assert.True(t, removed)

	exists, err = VisibilityExists(models.EntityJourney, "j1")
	assert.NoError(t, err)
	assert.False(t, exists)

	removed, err = RemoveVisibility(models.EntityJourney, "j1")
	assert.NoError(t, err)
	assert.False(t, removed)
}

func TestCountPublicUnderJourney(t *testing.T) {
	SetupTestDB(t)

	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityMilestone, EntityID: "m1", IsPublic: true, ParentJourneySlug: strPtr("j1"), UpdatedBy: "a"})
	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityMilestone, EntityID: "m2", IsPublic: false, ParentJourneySlug: strPtr("j1"), UpdatedBy: "a"})
	SetVisibility(&models.VisibilitySetting{EntityType: models.EntityObjective, EntityID: "m1-objective-0", IsPublic: true, ParentJourneySlug: strPtr("j1"), ParentMilestoneID: strPtr("m1"), UpdatedBy: "a"})

	milestones, err := CountPublicUnderJourney(models.EntityMilestone, "j1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), milestones)

	objectives, err := CountPublicUnderJourney(models.EntityObjective, "j1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), objectives)
}
