package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/apperrors"
	"github.com/madetect-tw/madetect-engine/pkg/auth"
	"github.com/madetect-tw/madetect-engine/pkg/models"
	"github.com/madetect-tw/madetect-engine/pkg/services"
)

// ProjectResponse is the standard response for project endpoints.
type ProjectResponse struct {
	PID       string `json:"pid"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// RecordResponse is the standard response for detection record endpoints.
type RecordResponse struct {
	ID           string `json:"id"`
	InputAd      string `json:"input_ad"`
	ResultLaw    string `json:"result_law"`
	ResultAdvice string `json:"result_advice"`
	CreatedAt    string `json:"created_at"`
}

// ProjectsHandler handles project and record HTTP requests.
type ProjectsHandler struct {
	projectService services.ProjectService
	logger         *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(projectService services.ProjectService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// RegisterRoutes registers the projects handler's routes on the given mux.
// All routes require authentication; ownership is enforced in the service.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/projects", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/projects", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/projects/{pid}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("PUT /api/projects/{pid}", authMiddleware.RequireAuth(h.Rename))
	mux.HandleFunc("DELETE /api/projects/{pid}", authMiddleware.RequireAuth(h.Delete))
	mux.HandleFunc("GET /api/projects/{pid}/records", authMiddleware.RequireAuth(h.ListRecords))
	mux.HandleFunc("POST /api/projects/{pid}/records", authMiddleware.RequireAuth(h.AddRecord))
}

// ProjectRequest is the request body for creating or renaming a project.
type ProjectRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/projects
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req ProjectRequest
	if err := DecodeJSON(r, &req); err != nil || req.Name == "" {
		h.badRequest(w, "name is required")
		return
	}

	project, err := h.projectService.Create(r.Context(), ownerID, req.Name)
	if err != nil {
		h.logger.Error("Failed to create project", zap.Error(err))
		h.internalError(w, "Failed to create project")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, buildProjectResponse(project)); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/projects
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	projects, err := h.projectService.List(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("Failed to list projects", zap.Error(err))
		h.internalError(w, "Failed to list projects")
		return
	}

	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, buildProjectResponse(p))
	}
	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{"projects": out}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/projects/{pid}
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}

	project, err := h.projectService.Get(r.Context(), ownerID, projectID)
	if err != nil {
		h.projectError(w, projectID, err, "Failed to get project")
		return
	}

	if err := WriteJSON(w, http.StatusOK, buildProjectResponse(project)); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Rename handles PUT /api/projects/{pid}
func (h *ProjectsHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}

	var req ProjectRequest
	if err := DecodeJSON(r, &req); err != nil || req.Name == "" {
		h.badRequest(w, "name is required")
		return
	}

	project, err := h.projectService.Rename(r.Context(), ownerID, projectID, req.Name)
	if err != nil {
		h.projectError(w, projectID, err, "Failed to rename project")
		return
	}

	if err := WriteJSON(w, http.StatusOK, buildProjectResponse(project)); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/projects/{pid}
// Deletes a project and its detection records.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}

	if err := h.projectService.Delete(r.Context(), ownerID, projectID); err != nil {
		h.projectError(w, projectID, err, "Failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddRecordRequest is the request body for storing a detection record.
type AddRecordRequest struct {
	InputAd      string `json:"input_ad"`
	ResultLaw    string `json:"result_law"`
	ResultAdvice string `json:"result_advice"`
}

// AddRecord handles POST /api/projects/{pid}/records
func (h *ProjectsHandler) AddRecord(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}

	var req AddRecordRequest
	if err := DecodeJSON(r, &req); err != nil || req.InputAd == "" {
		h.badRequest(w, "input_ad is required")
		return
	}

	record, err := h.projectService.AddRecord(r.Context(), ownerID, projectID, req.InputAd, req.ResultLaw, req.ResultAdvice)
	if err != nil {
		h.projectError(w, projectID, err, "Failed to save record")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, buildRecordResponse(record)); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListRecords handles GET /api/projects/{pid}/records
func (h *ProjectsHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}

	records, err := h.projectService.ListRecords(r.Context(), ownerID, projectID)
	if err != nil {
		h.projectError(w, projectID, err, "Failed to list records")
		return
	}

	out := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, buildRecordResponse(rec))
	}
	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{"records": out}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// callerID extracts the authenticated user id from the request context.
func (h *ProjectsHandler) callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := auth.GetClaims(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}

	userID, err := claims.UserID()
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Invalid token subject"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return userID, true
}

func (h *ProjectsHandler) pathProjectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	projectID, err := uuid.Parse(r.PathValue("pid"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_project_id", "Invalid project ID format"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return projectID, true
}

// projectError maps service errors onto HTTP statuses.
func (h *ProjectsHandler) projectError(w http.ResponseWriter, projectID uuid.UUID, err error, logMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Project not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	case errors.Is(err, apperrors.ErrForbidden):
		if err := ErrorResponse(w, http.StatusForbidden, "forbidden", "Project belongs to another user"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	default:
		h.logger.Error(logMsg,
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		h.internalError(w, logMsg)
	}
}

func (h *ProjectsHandler) badRequest(w http.ResponseWriter, message string) {
	if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

func (h *ProjectsHandler) internalError(w http.ResponseWriter, message string) {
	if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

func buildProjectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		PID:       project.ID.String(),
		Name:      project.Name,
		CreatedAt: project.CreatedAt.Format(time.RFC3339),
		UpdatedAt: project.UpdatedAt.Format(time.RFC3339),
	}
}

func buildRecordResponse(record *models.ProjectRecord) RecordResponse {
	return RecordResponse{
		ID:           record.ID.String(),
		InputAd:      record.InputAd,
		ResultLaw:    record.ResultLaw,
		ResultAdvice: record.ResultAdvice,
		CreatedAt:    record.CreatedAt.Format(time.RFC3339),
	}
}
