package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/madetect-tw/madetect-engine/pkg/apperrors"
	"github.com/madetect-tw/madetect-engine/pkg/models"
	"github.com/madetect-tw/madetect-engine/pkg/repositories"
)

// Stats is the site-wide aggregate exposed on the admin dashboard.
type Stats struct {
	UserCount   int64 `json:"user_count"`
	ReportCount int64 `json:"report_count"`
}

// AdminService handles administrator login and dashboard statistics.
type AdminService interface {
	Authenticate(ctx context.Context, email, password string) (*models.Admin, error)
	Stats(ctx context.Context) (*Stats, error)
}

type adminService struct {
	admins  repositories.AdminRepository
	users   repositories.UserRepository
	reports repositories.ReportRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(admins repositories.AdminRepository, users repositories.UserRepository, reports repositories.ReportRepository) AdminService {
	return &adminService{
		admins:  admins,
		users:   users,
		reports: reports,
	}
}

func (s *adminService) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return admin, nil
}

func (s *adminService) Stats(ctx context.Context) (*Stats, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	reportCount, err := s.reports.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{UserCount: userCount, ReportCount: reportCount}, nil
}
