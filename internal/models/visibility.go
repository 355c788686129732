package models

import (
	"fmt"
	"time"
)

// EntityType is the closed three-tier content hierarchy: journeys contain
// milestone nodes, milestone nodes contain learning objectives.
type EntityType string

const (
	EntityJourney   EntityType = "journey"
	EntityMilestone EntityType = "milestone"
	EntityObjective EntityType = "objective"
)

// Valid reports whether t is one of the three known tiers
func (t EntityType) Valid() bool {
	switch t {
	case EntityJourney, EntityMilestone, EntityObjective:
		return true
	}
	return false
}

// SyntheticObjectiveID derives the visibility key for a learning objective
// from its node and list position. Identity is positional, not
// content-addressed: reordering a node's objective list remaps settings to
// different objectives. Kept for compatibility with existing stored keys.
func SyntheticObjectiveID(nodeID string, index int) string {
	return fmt.Sprintf("%s-objective-%d", nodeID, index)
}

// VisibilitySetting stores the direct publication flag for one entity.
// Exactly one row exists per (entity_type, entity_id); all writes go through
// the visibility service. IsPublic here is the entity's own flag only —
// effective visibility additionally requires every ancestor to be public.
type VisibilitySetting struct {
	ID         string     `gorm:"primaryKey;type:text" json:"id"`
	EntityType EntityType `gorm:"type:text;uniqueIndex:idx_visibility_entity" json:"entityType"`
	EntityID   string     `gorm:"uniqueIndex:idx_visibility_entity" json:"entityId"`
	IsPublic   bool       `json:"isPublic"`

	// Parent lineage. Milestones are scoped under journeys by slug, objectives
	// under milestones by node id; the asymmetry mirrors how the catalog
	// addresses each tier.
	ParentJourneySlug *string `gorm:"index" json:"parentJourneySlug"`
	ParentMilestoneID *string `gorm:"index" json:"parentMilestoneId"`

	UpdatedBy string    `json:"updatedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (VisibilitySetting) TableName() string {
	return "visibility_settings"
}
