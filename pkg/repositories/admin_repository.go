package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/madetect-tw/madetect-engine/pkg/apperrors"
	"github.com/madetect-tw/madetect-engine/pkg/database"
	"github.com/madetect-tw/madetect-engine/pkg/models"
)

// AdminRepository defines the interface for administrator data access.
// Admins are provisioned out of band; there is no create path here.
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type adminRepository struct {
	db *database.DB
}

// NewAdminRepository creates a new admin repository.
func NewAdminRepository(db *database.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`

	var admin models.Admin
	err := r.db.QueryRow(ctx, query, email).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &admin, nil
}
