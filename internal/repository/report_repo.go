package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sparkdate/spark-backend/internal/db"
)

// ReportRepository provides data access for abuse reports.
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new repository bound to the given DB connection.
func NewReportRepository(database *gorm.DB) *ReportRepository {
	return &ReportRepository{db: database}
}

// Create stores one report.
func (r *ReportRepository) Create(ctx context.Context, reporterID, targetID uint64, reason string) error {
	report := db.Report{
		ReporterID: reporterID,
		TargetID:   targetID,
		Reason:     reason,
	}
	return r.db.WithContext(ctx).Create(&report).Error
}
