package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/madetect-tw/madetect-engine/pkg/apperrors"
	"github.com/madetect-tw/madetect-engine/pkg/models"
)

// In-memory repository fakes. Not safe for concurrent use; tests here are
// single-goroutine.

type fakeUserRepo struct {
	users   map[uuid.UUID]*models.User
	reports map[uuid.UUID][]uuid.UUID

	attachErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[uuid.UUID]*models.User),
		reports: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrConflict
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) GetByNameAndEmail(_ context.Context, name, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Name == name && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	for _, u := range f.users {
		if u.Email == email {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeUserRepo) AttachReport(_ context.Context, userID, reportID uuid.UUID) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.reports[userID] = append(f.reports[userID], reportID)
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[uuid.UUID]*models.Project)}
}

func (f *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	cp := *project
	f.projects[project.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.Project, error) {
	var out []*models.Project
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProjectRepo) UpdateName(_ context.Context, id uuid.UUID, name string) error {
	p, ok := f.projects[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.projects[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.projects, id)
	return nil
}

type fakeRecordRepo struct {
	records map[uuid.UUID][]*models.ProjectRecord

	deleteErr error
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[uuid.UUID][]*models.ProjectRecord)}
}

func (f *fakeRecordRepo) Create(_ context.Context, record *models.ProjectRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()
	cp := *record
	f.records[record.ProjectID] = append(f.records[record.ProjectID], &cp)
	return nil
}

func (f *fakeRecordRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*models.ProjectRecord, error) {
	out := make([]*models.ProjectRecord, 0, len(f.records[projectID]))
	for _, r := range f.records[projectID] {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRecordRepo) DeleteByProject(_ context.Context, projectID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.records, projectID)
	return nil
}

type fakeReportRepo struct {
	reports []*models.Report

	createErr error
}

func (f *fakeReportRepo) Create(_ context.Context, report *models.Report) error {
	if f.createErr != nil {
		return f.createErr
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = time.Now()
	cp := *report
	f.reports = append(f.reports, &cp)
	return nil
}

func (f *fakeReportRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.reports)), nil
}

type fakeAdminRepo struct {
	admins map[string]*models.Admin
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	a, ok := f.admins[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *a
	return &cp, nil
}
