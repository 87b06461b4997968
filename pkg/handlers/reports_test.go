package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/auth"
)

func newReportsMux(t *testing.T, svc *mockReportService) (*http.ServeMux, string) {
	t.Helper()
	tokens, middleware := newTestAuth()
	handler := NewReportsHandler(svc, zap.NewNop())
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, middleware)
	token := testToken(t, tokens, uuid.New(), "wang", auth.RoleUser)
	return mux, token
}

func TestReports_RequiresAuth(t *testing.T) {
	mux, _ := newReportsMux(t, &mockReportService{})

	rec := doJSON(mux, http.MethodPost, "/api/reports", "", `{"body":"broken"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestReports_Create(t *testing.T) {
	mux, token := newReportsMux(t, &mockReportService{})

	rec := doJSON(mux, http.MethodPost, "/api/reports", token, `{"body":"結果頁面一直轉圈"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["report_id"] == "" {
		t.Error("expected report_id in response")
	}
}

func TestReports_MissingBody(t *testing.T) {
	mux, token := newReportsMux(t, &mockReportService{})

	rec := doJSON(mux, http.MethodPost, "/api/reports", token, `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestReports_ServiceFailure(t *testing.T) {
	mux, token := newReportsMux(t, &mockReportService{err: errors.New("insert failed")})

	rec := doJSON(mux, http.MethodPost, "/api/reports", token, `{"body":"b"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}
