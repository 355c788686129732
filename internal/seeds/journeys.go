package seeds

import (
	"github.com/prepnity/prepstudio-backend/internal/database"
	"github.com/prepnity/prepstudio-backend/internal/models"
	"github.com/prepnity/prepstudio-backend/pkg/logger"
	"github.com/prepnity/prepstudio-backend/pkg/utils"
)

// SeedJourneys inserts sample catalog content for local development.
// Slugs are derived from titles; existing slugs are left untouched.
func SeedJourneys() {
	journeys := []models.Journey{
		{
			Title:          "JavaScript Basics",
			Description:    "Core language concepts every frontend interview expects",
			Category:       "Frontend",
			Difficulty:     "EASY",
			EstimatedHours: 12,
			Nodes: []models.JourneyNode{
				{
					ID:    "m1",
					Title: "Values and Types",
					LearningObjectives: []string{
						"Explain primitive vs reference types",
						"Use type coercion rules in comparisons",
					},
				},
				{
					ID:    "m2",
					Title: "Closures and Scope",
					LearningObjectives: []string{
						"Trace lexical scope chains",
						"Apply closures to module patterns",
					},
				},
			},
			Edges: []models.JourneyEdge{
				{ID: "e1", Source: "m1", Target: "m2"},
			},
		},
		{
			Title:          "System Design Fundamentals",
			Description:    "Scalability building blocks for senior-level interviews",
			Category:       "System Design",
			Difficulty:     "HARD",
			EstimatedHours: 30,
			Nodes: []models.JourneyNode{
				{
					ID:    "sd1",
					Title: "Load Balancing",
					LearningObjectives: []string{
						"Compare L4 and L7 load balancing",
					},
				},
				{
					ID:    "sd2",
					Title: "Caching Strategies",
					LearningObjectives: []string{
						"Choose between write-through and write-back caches",
						"Reason about cache invalidation trade-offs",
					},
				},
			},
			Edges: []models.JourneyEdge{
				{ID: "e1", Source: "sd1", Target: "sd2"},
			},
		},
	}

	seeded := 0
	for _, journey := range journeys {
		journey.Slug = utils.GenerateSlug(journey.Title)

		var count int64
		database.DB.Model(&models.Journey{}).Where("slug = ?", journey.Slug).Count(&count)
		if count > 0 {
			continue
		}
		if err := database.DB.Create(&journey).Error; err != nil {
			logger.Error().Err(err).Str("slug", journey.Slug).Msg("Failed to seed journey")
			continue
		}
		seeded++
	}

	if seeded > 0 {
		logger.Info().Int("count", seeded).Msg("Seeded sample journeys")
	}
}
