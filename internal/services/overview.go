package services

import (
	"time"

	"github.com/prepnity/prepstudio-backend/internal/models"
	"github.com/prepnity/prepstudio-backend/internal/repository"
)

// JourneyVisibilityOverview is the per-journey rollup shown on the admin
// moderation list
type JourneyVisibilityOverview struct {
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	IsPublic         bool       `json:"isPublic"`
	HasSetting       bool       `json:"hasSetting"`
	MilestoneCount   int        `json:"milestoneCount"`
	PublicMilestones int64      `json:"publicMilestones"`
	PublicObjectives int64      `json:"publicObjectives"`
	UpdatedBy        string     `json:"updatedBy,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// ObjectiveVisibility pairs one learning objective with its direct and
// effective publication state
type ObjectiveVisibility struct {
	ID                string `json:"id"`
	Index             int    `json:"index"`
	Text              string `json:"text"`
	IsPublic          bool   `json:"isPublic"`
	HasSetting        bool   `json:"hasSetting"`
	EffectivelyPublic bool   `json:"effectivelyPublic"`
}

type MilestoneVisibility struct {
	ID                string                `json:"id"`
	Title             string                `json:"title"`
	IsPublic          bool                  `json:"isPublic"`
	HasSetting        bool                  `json:"hasSetting"`
	EffectivelyPublic bool                  `json:"effectivelyPublic"`
	Objectives        []ObjectiveVisibility `json:"objectives"`
}

type JourneyVisibilityDetails struct {
	Slug       string                `json:"slug"`
	Title      string                `json:"title"`
	IsPublic   bool                  `json:"isPublic"`
	HasSetting bool                  `json:"hasSetting"`
	Milestones []MilestoneVisibility `json:"milestones"`
}

// GetVisibilityOverview builds the rollup for every journey in the catalog
func GetVisibilityOverview() ([]JourneyVisibilityOverview, error) {
	journeys, err := repository.ListJourneys()
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(journeys))
	for _, j := range journeys {
		slugs = append(slugs, j.Slug)
	}
	settings, err := repository.GetVisibilityBatch(models.EntityJourney, slugs)
	if err != nil {
		return nil, err
	}

	overview := make([]JourneyVisibilityOverview, 0, len(journeys))
	for _, j := range journeys {
		row := JourneyVisibilityOverview{
			Slug:           j.Slug,
			Title:          j.Title,
			MilestoneCount: len(j.Nodes),
		}
		if setting, ok := settings[j.Slug]; ok {
			row.HasSetting = true
			row.IsPublic = setting.IsPublic
			row.UpdatedBy = setting.UpdatedBy
			updatedAt := setting.UpdatedAt
			row.UpdatedAt = &updatedAt
		}

		row.PublicMilestones, err = repository.CountPublicUnderJourney(models.EntityMilestone, j.Slug)
		if err != nil {
			return nil, err
		}
		row.PublicObjectives, err = repository.CountPublicUnderJourney(models.EntityObjective, j.Slug)
		if err != nil {
			return nil, err
		}

		overview = append(overview, row)
	}
	return overview, nil
}

// GetJourneyVisibilityDetails returns the full direct+effective visibility
// matrix for one journey, or nil if the journey does not exist. Effective
// state is computed from the in-hand tree so the whole matrix costs one
// settings read per tier instead of a resolver walk per entity.
func GetJourneyVisibilityDetails(slug string) (*JourneyVisibilityDetails, error) {
	journey, err := repository.FindJourneyBySlug(slug)
	if err != nil {
		return nil, err
	}
	if journey == nil {
		return nil, nil
	}

	details := &JourneyVisibilityDetails{
		Slug:  journey.Slug,
		Title: journey.Title,
	}

	journeySetting, err := repository.GetVisibility(models.EntityJourney, slug)
	if err != nil {
		return nil, err
	}
	if journeySetting != nil {
		details.HasSetting = true
		details.IsPublic = journeySetting.IsPublic
	}
	journeyPublic := journeySetting != nil && journeySetting.IsPublic

	nodeIDs := make([]string, 0, len(journey.Nodes))
	for _, n := range journey.Nodes {
		nodeIDs = append(nodeIDs, n.ID)
	}
	milestoneSettings, err := repository.GetVisibilityBatch(models.EntityMilestone, nodeIDs)
	if err != nil {
		return nil, err
	}

	details.Milestones = make([]MilestoneVisibility, 0, len(journey.Nodes))
	for _, node := range journey.Nodes {
		ms := MilestoneVisibility{
			ID:    node.ID,
			Title: node.Title,
		}
		if setting, ok := milestoneSettings[node.ID]; ok {
			ms.HasSetting = true
			ms.IsPublic = setting.IsPublic
		}
		milestonePublic := journeyPublic && ms.IsPublic
		ms.EffectivelyPublic = milestonePublic

		objectiveIDs := make([]string, 0, len(node.LearningObjectives))
		for i := range node.LearningObjectives {
			objectiveIDs = append(objectiveIDs, models.SyntheticObjectiveID(node.ID, i))
		}
		objectiveSettings, err := repository.GetVisibilityBatch(models.EntityObjective, objectiveIDs)
		if err != nil {
			return nil, err
		}

		ms.Objectives = make([]ObjectiveVisibility, 0, len(node.LearningObjectives))
		for i, text := range node.LearningObjectives {
			obj := ObjectiveVisibility{
				ID:    models.SyntheticObjectiveID(node.ID, i),
				Index: i,
				Text:  text,
			}
			if setting, ok := objectiveSettings[obj.ID]; ok {
				obj.HasSetting = true
				obj.IsPublic = setting.IsPublic
			}
			obj.EffectivelyPublic = milestonePublic && obj.IsPublic
			ms.Objectives = append(ms.Objectives, obj)
		}

		details.Milestones = append(details.Milestones, ms)
	}

	return details, nil
}
