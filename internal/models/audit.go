package models

import (
	"time"

	"gorm.io/datatypes"
)

type ActionType string

const (
	// ActionVisibilityChange tags every publication state mutation. The audit
	// log schema is shared with other admin actions; visibility changes always
	// use this tag.
	ActionVisibilityChange ActionType = "visibility_change"
)

// VisibilityChangeDetails is the JSON payload stored on visibility audit rows.
// OldValue is nil when no prior setting existed.
type VisibilityChangeDetails struct {
	EntityType        EntityType `json:"entityType"`
	EntityID          string     `json:"entityId"`
	OldValue          *bool      `json:"oldValue"`
	NewValue          bool       `json:"newValue"`
	ParentJourneySlug *string    `json:"parentJourneySlug,omitempty"`
	ParentMilestoneID *string    `json:"parentMilestoneId,omitempty"`
}

// AdminAuditLog is append-only: rows are created once per admin action and
// never updated or deleted by application code. A background sweeper purges
// rows past the retention window.
type AdminAuditLog struct {
	ID         string         `gorm:"primaryKey;type:text" json:"id"`
	AdminID    string         `gorm:"index" json:"adminId"`
	Action     ActionType     `gorm:"type:text;index" json:"action"`
	EntityType string         `gorm:"index" json:"entityType"`
	EntityID   string         `gorm:"index" json:"entityId"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
}

func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
