package services

import (
	"sort"
	"time"

	"github.com/prepnity/prepstudio-backend/internal/config"
	"github.com/prepnity/prepstudio-backend/internal/database"
	"github.com/prepnity/prepstudio-backend/internal/models"
	"github.com/prepnity/prepstudio-backend/internal/repository"
	"github.com/prepnity/prepstudio-backend/pkg/logger"
)

const (
	publicJourneyListKey = "public:journeys"
	publicJourneyKeyBase = "public:journey:"
)

// PublicJourneySummary is the card shown on the anonymous journey list.
// Internal and administrative fields never appear here.
type PublicJourneySummary struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Difficulty     string `json:"difficulty"`
	EstimatedHours int    `json:"estimatedHours"`
	MilestoneCount int    `json:"milestoneCount"`
}

type PublicNode struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	LearningObjectives []string `json:"learningObjectives"`
}

// PublicJourney is the projection of one journey down to its effectively
// public subtree
type PublicJourney struct {
	Slug           string               `json:"slug"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Category       string               `json:"category"`
	Difficulty     string               `json:"difficulty"`
	EstimatedHours int                  `json:"estimatedHours"`
	Nodes          []PublicNode         `json:"nodes"`
	Edges          []models.JourneyEdge `json:"edges"`
}

func publicCacheTTL() time.Duration {
	seconds := 300
	if config.AppConfig != nil && config.AppConfig.PublicCacheSeconds > 0 {
		seconds = config.AppConfig.PublicCacheSeconds
	}
	return time.Duration(seconds) * time.Second
}

// GetPublicJourneys lists journeys directly marked public. The journey tier
// has no ancestors, so direct public-ness equals effective public-ness.
func GetPublicJourneys() ([]PublicJourneySummary, error) {
	var cached []PublicJourneySummary
	if hit, err := database.CacheGet(publicJourneyListKey, &cached); err == nil && hit {
		return cached, nil
	}

	slugs, err := repository.FindPublicIDs(models.EntityJourney)
	if err != nil {
		return nil, err
	}

	journeys, err := repository.FindJourneysBySlugs(slugs)
	if err != nil {
		return nil, err
	}

	summaries := make([]PublicJourneySummary, 0, len(journeys))
	for _, j := range journeys {
		summaries = append(summaries, PublicJourneySummary{
			Slug:           j.Slug,
			Title:          j.Title,
			Description:    j.Description,
			Category:       j.Category,
			Difficulty:     j.Difficulty,
			EstimatedHours: j.EstimatedHours,
			MilestoneCount: len(j.Nodes),
		})
	}
	sort.Slice(summaries, func(i, k int) bool { return summaries[i].Title < summaries[k].Title })

	if err := database.CacheSet(publicJourneyListKey, summaries, publicCacheTTL()); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache public journey list")
	}
	return summaries, nil
}

// GetPublicJourneyBySlug projects one journey down to its public subtree.
// Returns nil when the journey is not effectively public — indistinguishable
// from "never existed", so hidden content leaks nothing. The resolver gate
// runs before any content load for the same reason.
func GetPublicJourneyBySlug(slug string) (*PublicJourney, error) {
	var cached PublicJourney
	if hit, err := database.CacheGet(publicJourneyKeyBase+slug, &cached); err == nil && hit {
		return &cached, nil
	}

	public, err := IsEffectivelyPublic(models.EntityJourney, slug, NewResolveCache())
	if err != nil {
		return nil, err
	}
	if !public {
		return nil, nil
	}

	journey, err := repository.FindJourneyBySlug(slug)
	if err != nil {
		return nil, err
	}
	if journey == nil {
		return nil, nil
	}

	// The journey-level gate already passed, so surviving milestones only need
	// their own direct flag, not a second full resolver walk
	milestoneSettings, err := repository.FindByParent(models.EntityMilestone, slug)
	if err != nil {
		return nil, err
	}
	publicMilestones := make(map[string]bool, len(milestoneSettings))
	for _, s := range milestoneSettings {
		if s.IsPublic {
			publicMilestones[s.EntityID] = true
		}
	}

	projection := &PublicJourney{
		Slug:           journey.Slug,
		Title:          journey.Title,
		Description:    journey.Description,
		Category:       journey.Category,
		Difficulty:     journey.Difficulty,
		EstimatedHours: journey.EstimatedHours,
		Nodes:          []PublicNode{},
		Edges:          []models.JourneyEdge{},
	}

	surviving := make(map[string]bool, len(journey.Nodes))
	for _, node := range journey.Nodes {
		if !publicMilestones[node.ID] {
			continue
		}
		surviving[node.ID] = true

		objectiveSettings, err := repository.FindByParent(models.EntityObjective, node.ID)
		if err != nil {
			return nil, err
		}
		publicObjectives := make(map[string]bool, len(objectiveSettings))
		for _, s := range objectiveSettings {
			if s.IsPublic {
				publicObjectives[s.EntityID] = true
			}
		}

		objectives := []string{}
		for i, text := range node.LearningObjectives {
			if publicObjectives[models.SyntheticObjectiveID(node.ID, i)] {
				objectives = append(objectives, text)
			}
		}

		projection.Nodes = append(projection.Nodes, PublicNode{
			ID:                 node.ID,
			Title:              node.Title,
			LearningObjectives: objectives,
		})
	}

	// Drop edges touching filtered-out nodes so the returned graph has no
	// dangling references
	for _, edge := range journey.Edges {
		if surviving[edge.Source] && surviving[edge.Target] {
			projection.Edges = append(projection.Edges, edge)
		}
	}

	if err := database.CacheSet(publicJourneyKeyBase+slug, projection, publicCacheTTL()); err != nil {
		logger.Warn().Err(err).Str("slug", slug).Msg("Failed to cache public journey")
	}
	return projection, nil
}

// invalidatePublicCache drops cached public projections affected by a
// visibility mutation
func invalidatePublicCache(entityType models.EntityType, entityID string, parentJourneySlug *string) {
	slug := entityID
	if entityType != models.EntityJourney {
		if parentJourneySlug == nil || *parentJourneySlug == "" {
			return
		}
		slug = *parentJourneySlug
	}

	if err := database.CacheInvalidate(publicJourneyKeyBase + slug); err != nil {
		logger.Warn().Err(err).Str("slug", slug).Msg("Failed to invalidate public journey cache")
	}
	if err := database.CacheInvalidate(publicJourneyListKey); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate public journey list cache")
	}
}
