package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/auth"
	"github.com/madetect-tw/madetect-engine/pkg/services"
)

// ReportsHandler handles user-submitted problem reports.
type ReportsHandler struct {
	reportService services.ReportService
	logger        *zap.Logger
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(reportService services.ReportService, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// RegisterRoutes registers the reports handler's routes on the given mux.
func (h *ReportsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/reports", authMiddleware.RequireAuth(h.Create))
}

// ReportRequest is the request body for a problem report.
type ReportRequest struct {
	Body string `json:"body"`
}

// Create handles POST /api/reports
func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.GetClaims(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Invalid token subject"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req ReportRequest
	if err := DecodeJSON(r, &req); err != nil || req.Body == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "body is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	report, err := h.reportService.Create(r.Context(), userID, claims.UserName, req.Body)
	if err != nil {
		h.logger.Error("Failed to create report", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to submit report"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, map[string]string{
		"status":    "success",
		"report_id": report.ID.String(),
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
