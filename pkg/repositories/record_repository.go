package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/madetect-tw/madetect-engine/pkg/database"
	"github.com/madetect-tw/madetect-engine/pkg/models"
)

// RecordRepository defines the interface for project-record data access.
// Records are append-only; the only delete path is the project cascade.
type RecordRepository interface {
	Create(ctx context.Context, record *models.ProjectRecord) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectRecord, error)
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

type recordRepository struct {
	db *database.DB
}

// NewRecordRepository creates a new record repository.
func NewRecordRepository(db *database.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *models.ProjectRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()

	query := `
		INSERT INTO project_records (id, project_id, input_ad, result_law, result_advice, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		record.ID, record.ProjectID, record.InputAd, record.ResultLaw, record.ResultAdvice, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (r *recordRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectRecord, error) {
	query := `
		SELECT id, project_id, input_ad, result_law, result_advice, created_at
		FROM project_records
		WHERE project_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*models.ProjectRecord
	for rows.Next() {
		var rec models.ProjectRecord
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.InputAd, &rec.ResultLaw, &rec.ResultAdvice, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func (r *recordRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM project_records WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}
