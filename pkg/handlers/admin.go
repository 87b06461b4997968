package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/auth"
	"github.com/madetect-tw/madetect-engine/pkg/services"
)

// AdminHandler exposes the admin dashboard statistics.
type AdminHandler struct {
	adminService services.AdminService
	logger       *zap.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService services.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// RegisterRoutes registers the admin handler's routes on the given mux.
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/admin/stats", authMiddleware.RequireAdmin(h.Stats))
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		h.logger.Error("Failed to load admin stats", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to load stats"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, stats); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
