package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/audit"
	"github.com/madetect-tw/madetect-engine/pkg/auth"
	"github.com/madetect-tw/madetect-engine/pkg/models"
	"github.com/madetect-tw/madetect-engine/pkg/services"
)

// mockUserService is a configurable mock for all handler tests.
type mockUserService struct {
	user   *models.User
	exists bool
	err    error
}

func (m *mockUserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: uuid.New(), Name: name, Email: email}, nil
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: uuid.New(), Name: "Test User", Email: email}, nil
}

func (m *mockUserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.exists, m.err
}

func (m *mockUserService) VerifyIdentity(ctx context.Context, name, email string) (bool, error) {
	return m.exists, m.err
}

func (m *mockUserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	return m.err
}

// mockAdminService is a configurable mock for admin endpoints.
type mockAdminService struct {
	admin *models.Admin
	stats *services.Stats
	err   error
}

func (m *mockAdminService) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.admin != nil {
		return m.admin, nil
	}
	return &models.Admin{ID: uuid.New(), Email: email}, nil
}

func (m *mockAdminService) Stats(ctx context.Context) (*services.Stats, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stats != nil {
		return m.stats, nil
	}
	return &services.Stats{}, nil
}

// mockProjectService is a configurable mock for project endpoints.
type mockProjectService struct {
	project *models.Project
	record  *models.ProjectRecord
	err     error

	addRecordCalls int
}

func (m *mockProjectService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.project != nil {
		return m.project, nil
	}
	return &models.Project{ID: uuid.New(), OwnerID: ownerID, Name: name}, nil
}

func (m *mockProjectService) List(ctx context.Context, ownerID uuid.UUID) ([]*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.project != nil {
		return []*models.Project{m.project}, nil
	}
	return nil, nil
}

func (m *mockProjectService) Get(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.project != nil {
		return m.project, nil
	}
	return &models.Project{ID: projectID, OwnerID: ownerID, Name: "Test Project"}, nil
}

func (m *mockProjectService) Rename(ctx context.Context, ownerID, projectID uuid.UUID, name string) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Project{ID: projectID, OwnerID: ownerID, Name: name}, nil
}

func (m *mockProjectService) Delete(ctx context.Context, ownerID, projectID uuid.UUID) error {
	return m.err
}

func (m *mockProjectService) AddRecord(ctx context.Context, ownerID, projectID uuid.UUID, inputAd, resultLaw, resultAdvice string) (*models.ProjectRecord, error) {
	m.addRecordCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.record != nil {
		return m.record, nil
	}
	return &models.ProjectRecord{
		ID:           uuid.New(),
		ProjectID:    projectID,
		InputAd:      inputAd,
		ResultLaw:    resultLaw,
		ResultAdvice: resultAdvice,
	}, nil
}

func (m *mockProjectService) ListRecords(ctx context.Context, ownerID, projectID uuid.UUID) ([]*models.ProjectRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.record != nil {
		return []*models.ProjectRecord{m.record}, nil
	}
	return nil, nil
}

// mockAnalysisService is a configurable mock for the detect endpoint.
type mockAnalysisService struct {
	result *services.AnalysisResult
	err    error
}

func (m *mockAnalysisService) Analyze(ctx context.Context, adText string) (*services.AnalysisResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &services.AnalysisResult{ResultLaw: "ok", ResultAdvice: "advice"}, nil
}

// mockReportService is a configurable mock for the reports endpoint.
type mockReportService struct {
	report *models.Report
	err    error
}

func (m *mockReportService) Create(ctx context.Context, userID uuid.UUID, userName, body string) (*models.Report, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &models.Report{ID: uuid.New(), UserID: userID, UserName: userName, Body: body}, nil
}

// testToken issues a signed token for request-level tests.
func testToken(t *testing.T, tokens *auth.Service, userID uuid.UUID, name, role string) string {
	t.Helper()
	token, err := tokens.Issue(userID, name, role)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}

// doJSON runs a request with a JSON body through the mux and returns the
// recorder.
func doJSON(mux *http.ServeMux, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func newTestAuth() (*auth.Service, *auth.Middleware) {
	tokens := auth.NewService("test-secret")
	return tokens, auth.NewMiddleware(tokens, audit.NewSecurityAuditor(zap.NewNop()), zap.NewNop())
}
