package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/auth"
	"github.com/madetect-tw/madetect-engine/pkg/retry"
	"github.com/madetect-tw/madetect-engine/pkg/services"
)

// DetectRequest is the request body for an ad analysis.
// ProjectID is optional; when set, the result is stored as a record under
// that project.
type DetectRequest struct {
	InputAd   string `json:"input_ad"`
	ProjectID string `json:"project_id,omitempty"`
}

// DetectResponse carries both pipeline outputs.
type DetectResponse struct {
	ResultLaw     string `json:"result_law"`
	ResultLawHTML string `json:"result_law_html"`
	ResultAdvice  string `json:"result_advice"`
	RecordID      string `json:"record_id,omitempty"`
}

// DetectHandler runs the analysis pipeline for submitted ad copy.
type DetectHandler struct {
	analysisService services.AnalysisService
	projectService  services.ProjectService
	logger          *zap.Logger
}

// NewDetectHandler creates a new detect handler.
func NewDetectHandler(analysisService services.AnalysisService, projectService services.ProjectService, logger *zap.Logger) *DetectHandler {
	return &DetectHandler{
		analysisService: analysisService,
		projectService:  projectService,
		logger:          logger,
	}
}

// RegisterRoutes registers the detect handler's routes on the given mux.
func (h *DetectHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/detect", authMiddleware.RequireAuth(h.Detect))
}

// Detect handles POST /api/detect
// The two generation calls run sequentially and block the request; under
// quota pressure a single analysis can take tens of seconds.
func (h *DetectHandler) Detect(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.GetClaims(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req DetectRequest
	if err := DecodeJSON(r, &req); err != nil || req.InputAd == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "input_ad is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var projectID uuid.UUID
	if req.ProjectID != "" {
		var err error
		if projectID, err = uuid.Parse(req.ProjectID); err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_project_id", "Invalid project ID format"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
	}

	result, err := h.analysisService.Analyze(r.Context(), req.InputAd)
	if err != nil {
		h.analysisError(w, err)
		return
	}

	response := DetectResponse{
		ResultLaw:     result.ResultLaw,
		ResultLawHTML: result.ResultLawHTML,
		ResultAdvice:  result.ResultAdvice,
	}

	if projectID != uuid.Nil {
		userID, err := claims.UserID()
		if err != nil {
			if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Invalid token subject"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}

		record, err := h.projectService.AddRecord(r.Context(), userID, projectID, req.InputAd, result.ResultLaw, result.ResultAdvice)
		if err != nil {
			// The analysis already succeeded; report the save failure
			// without discarding the result.
			h.logger.Error("Failed to save detection record",
				zap.String("project_id", projectID.String()),
				zap.Error(err))
		} else {
			response.RecordID = record.ID.String()
		}
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// analysisError maps generation failures onto HTTP statuses: quota
// exhaustion becomes 429 with a Retry-After header, anything else 502.
func (h *DetectHandler) analysisError(w http.ResponseWriter, err error) {
	var quotaErr *retry.QuotaExhaustedError
	if errors.As(err, &quotaErr) {
		h.logger.Warn("Generation quota exhausted",
			zap.Int("attempts", quotaErr.Attempts),
			zap.Duration("retry_after", quotaErr.RetryAfter))
		w.Header().Set("Retry-After", fmt.Sprintf("%.0f", quotaErr.RetryAfter.Seconds()))
		if err := ErrorResponse(w, http.StatusTooManyRequests, "quota_exhausted",
			fmt.Sprintf("Generation quota exhausted, retry after %s (see %s)", quotaErr.RetryAfter, retry.RateLimitDocsURL)); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	h.logger.Error("Analysis failed", zap.Error(err))
	if err := ErrorResponse(w, http.StatusBadGateway, "generation_failed", "Analysis service is unavailable"); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
