package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/models"
	"github.com/madetect-tw/madetect-engine/pkg/repositories"
)

// ReportService handles user-submitted problem reports.
type ReportService interface {
	Create(ctx context.Context, userID uuid.UUID, userName, body string) (*models.Report, error)
}

type reportService struct {
	reports repositories.ReportRepository
	users   repositories.UserRepository
	logger  *zap.Logger
}

// NewReportService creates a new report service.
func NewReportService(reports repositories.ReportRepository, users repositories.UserRepository, logger *zap.Logger) ReportService {
	return &reportService{
		reports: reports,
		users:   users,
		logger:  logger,
	}
}

// Create stores the report and links it to the submitting user. The link is
// best effort: a failure there leaves the report intact and is only logged.
func (s *reportService) Create(ctx context.Context, userID uuid.UUID, userName, body string) (*models.Report, error) {
	report := &models.Report{
		UserID:   userID,
		UserName: userName,
		Body:     body,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	if err := s.users.AttachReport(ctx, userID, report.ID); err != nil {
		s.logger.Warn("report saved but user link failed",
			zap.String("report_id", report.ID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
	return report, nil
}
