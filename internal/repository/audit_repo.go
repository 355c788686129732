package repository

import (
	"time"

	"github.com/prepnity/prepstudio-backend/internal/database"
	"github.com/prepnity/prepstudio-backend/internal/models"
)

// AuditQuery filters the audit log for administrative review. Zero values
// mean "no filter". Pagination is clamped in QueryAuditEntries.
type AuditQuery struct {
	AdminID    string
	Action     models.ActionType
	EntityType string
	EntityID   string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

// RecordAuditEntry appends one audit row. Rows are never updated or deleted
// here; retention is handled by the background sweeper.
func RecordAuditEntry(entry *models.AdminAuditLog) error {
	return database.DB.Create(entry).Error
}

// QueryAuditEntries returns a page of audit rows, newest first, plus the total
// count for the applied filters
func QueryAuditEntries(q AuditQuery) ([]models.AdminAuditLog, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	offset := (q.Page - 1) * q.Limit

	query := database.DB.Model(&models.AdminAuditLog{})
	if q.AdminID != "" {
		query = query.Where("admin_id = ?", q.AdminID)
	}
	if q.Action != "" {
		query = query.Where("action = ?", q.Action)
	}
	if q.EntityType != "" {
		query = query.Where("entity_type = ?", q.EntityType)
	}
	if q.EntityID != "" {
		query = query.Where("entity_id = ?", q.EntityID)
	}
	if q.From != nil {
		query = query.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("created_at <= ?", *q.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.AdminAuditLog
	err := query.Order("created_at desc").Offset(offset).Limit(q.Limit).Find(&entries).Error
	return entries, total, err
}

// PurgeAuditEntriesBefore deletes rows older than the cutoff and returns the
// number removed. Used only by the retention sweeper.
func PurgeAuditEntriesBefore(cutoff time.Time) (int64, error) {
	result := database.DB.
		Where("created_at < ?", cutoff).
		Delete(&models.AdminAuditLog{})
	return result.RowsAffected, result.Error
}
