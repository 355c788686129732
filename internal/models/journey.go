package models

import (
	"time"

	"gorm.io/gorm"
)

// JourneyNode is one milestone in a journey's graph
type JourneyNode struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	LearningObjectives []string `json:"learningObjectives"`
}

// JourneyEdge connects two milestone nodes
type JourneyEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Journey is the content catalog read model. It is owned by the content
// management pathway; this service only reads it to validate parent lineage
// and to project public subtrees.
type Journey struct {
	Slug      string         `gorm:"primaryKey;type:text" json:"slug"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deletedAt" json:"-"`

	Title          string `json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	Category       string `json:"category"` // Frontend, Backend, System Design, etc.
	Difficulty     string `gorm:"default:'MEDIUM'" json:"difficulty"`
	EstimatedHours int    `gorm:"default:0" json:"estimatedHours"`

	Nodes []JourneyNode `gorm:"serializer:json;type:jsonb" json:"nodes"`
	Edges []JourneyEdge `gorm:"serializer:json;type:jsonb" json:"edges"`

	CreatorID string `gorm:"column:creatorId" json:"creatorId"`
}

func (Journey) TableName() string {
	return "journeys"
}

// HasNode reports whether the given milestone id appears among the journey's nodes
func (j *Journey) HasNode(nodeID string) bool {
	for _, n := range j.Nodes {
		if n.ID == nodeID {
			return true
		}
	}
	return false
}
