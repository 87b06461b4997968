package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/apperrors"
	"github.com/madetect-tw/madetect-engine/pkg/models"
	"github.com/madetect-tw/madetect-engine/pkg/repositories"
)

// ProjectService manages projects and their detection records. Every
// operation on an existing project verifies the caller owns it.
type ProjectService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*models.Project, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*models.Project, error)
	Get(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error)
	Rename(ctx context.Context, ownerID, projectID uuid.UUID, name string) (*models.Project, error)
	Delete(ctx context.Context, ownerID, projectID uuid.UUID) error
	AddRecord(ctx context.Context, ownerID, projectID uuid.UUID, inputAd, resultLaw, resultAdvice string) (*models.ProjectRecord, error)
	ListRecords(ctx context.Context, ownerID, projectID uuid.UUID) ([]*models.ProjectRecord, error)
}

type projectService struct {
	projects repositories.ProjectRepository
	records  repositories.RecordRepository
	logger   *zap.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(projects repositories.ProjectRepository, records repositories.RecordRepository, logger *zap.Logger) ProjectService {
	return &projectService{
		projects: projects,
		records:  records,
		logger:   logger,
	}
}

func (s *projectService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*models.Project, error) {
	project := &models.Project{
		OwnerID: ownerID,
		Name:    name,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, ownerID uuid.UUID) ([]*models.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

func (s *projectService) Get(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	return s.ownedProject(ctx, ownerID, projectID)
}

func (s *projectService) Rename(ctx context.Context, ownerID, projectID uuid.UUID, name string) (*models.Project, error) {
	if _, err := s.ownedProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	if err := s.projects.UpdateName(ctx, projectID, name); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, projectID)
}

// Delete removes a project and then its records. The two steps are not
// transactional: a failure after the first step leaves orphaned records
// behind, matching the original document-store behavior.
func (s *projectService) Delete(ctx context.Context, ownerID, projectID uuid.UUID) error {
	if _, err := s.ownedProject(ctx, ownerID, projectID); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}

	if err := s.records.DeleteByProject(ctx, projectID); err != nil {
		s.logger.Warn("project deleted but record cleanup failed, records orphaned",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return fmt.Errorf("delete project records: %w", err)
	}
	return nil
}

func (s *projectService) AddRecord(ctx context.Context, ownerID, projectID uuid.UUID, inputAd, resultLaw, resultAdvice string) (*models.ProjectRecord, error) {
	if _, err := s.ownedProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	record := &models.ProjectRecord{
		ProjectID:    projectID,
		InputAd:      inputAd,
		ResultLaw:    resultLaw,
		ResultAdvice: resultAdvice,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *projectService) ListRecords(ctx context.Context, ownerID, projectID uuid.UUID) ([]*models.ProjectRecord, error) {
	if _, err := s.ownedProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	return s.records.ListByProject(ctx, projectID)
}

// ownedProject fetches a project and enforces the ownership check.
func (s *projectService) ownedProject(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return project, nil
}
