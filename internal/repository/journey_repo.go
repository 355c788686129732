package repository

import (
	"errors"

	"github.com/prepnity/prepstudio-backend/internal/database"
	"github.com/prepnity/prepstudio-backend/internal/models"
	"gorm.io/gorm"
)

// The journey catalog is owned by the content management pathway; this
// service only reads it.

// FindJourneyBySlug returns the journey document, or nil if no such journey exists
func FindJourneyBySlug(slug string) (*models.Journey, error) {
	var journey models.Journey
	err := database.DB.First(&journey, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &journey, nil
}

// JourneyExists checks slug existence without loading the node documents
func JourneyExists(slug string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Journey{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// ListJourneys returns the full catalog ordered by title (admin overview)
func ListJourneys() ([]models.Journey, error) {
	var journeys []models.Journey
	err := database.DB.Order("title asc").Find(&journeys).Error
	return journeys, err
}

// FindJourneysBySlugs loads the given journeys keyed by slug
func FindJourneysBySlugs(slugs []string) (map[string]models.Journey, error) {
	result := make(map[string]models.Journey, len(slugs))
	if len(slugs) == 0 {
		return result, nil
	}

	var journeys []models.Journey
	if err := database.DB.Where("slug IN ?", slugs).Find(&journeys).Error; err != nil {
		return nil, err
	}
	for _, j := range journeys {
		result[j.Slug] = j
	}
	return result, nil
}
