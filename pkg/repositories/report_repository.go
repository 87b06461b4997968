package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/madetect-tw/madetect-engine/pkg/database"
	"github.com/madetect-tw/madetect-engine/pkg/models"
)

// ReportRepository defines the interface for problem-report data access.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	Count(ctx context.Context) (int64, error)
}

type reportRepository struct {
	db *database.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *database.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = time.Now()

	query := `
		INSERT INTO reports (id, user_id, user_name, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, report.ID, report.UserID, report.UserName, report.Body, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM reports`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return count, nil
}
