package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/apperrors"
	"github.com/madetect-tw/madetect-engine/pkg/audit"
	"github.com/madetect-tw/madetect-engine/pkg/auth"
	"github.com/madetect-tw/madetect-engine/pkg/services"
)

// AuthHandler handles registration, login and the password-reset flow for
// both users and administrators.
type AuthHandler struct {
	userService  services.UserService
	adminService services.AdminService
	tokens       *auth.Service
	auditor      *audit.SecurityAuditor
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(userService services.UserService, adminService services.AdminService, tokens *auth.Service, auditor *audit.SecurityAuditor, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		adminService: adminService,
		tokens:       tokens,
		auditor:      auditor,
		logger:       logger,
	}
}

// RegisterRoutes registers the auth handler's routes on the given mux.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("POST /api/auth/check-email", h.CheckEmail)
	mux.HandleFunc("POST /api/auth/forgot", h.Forgot)
	mux.HandleFunc("POST /api/auth/reset", h.Reset)
	mux.HandleFunc("GET /api/auth/verify", authMiddleware.RequireAuth(h.Verify))
	mux.HandleFunc("POST /api/auth/admin/login", h.AdminLogin)
}

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		h.badRequest(w, "name, email and password are required")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			if err := ErrorResponse(w, http.StatusConflict, "email_taken", "Email is already registered"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to register user", zap.Error(err))
		h.internalError(w, "Failed to register")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, map[string]string{
		"status":  "success",
		"user_id": user.ID.String(),
		"name":    user.Name,
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// LoginRequest is the request body for user and admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token. The token is also set as an
// HttpOnly cookie for browser clients.
type LoginResponse struct {
	Status   string `json:"status"`
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	UserType string `json:"user_type"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			h.auditor.LogLoginFailure(req.Email, r.RemoteAddr)
			if err := ErrorResponse(w, http.StatusUnauthorized, "invalid_credentials", "Email or password is incorrect"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to authenticate user", zap.Error(err))
		h.internalError(w, "Failed to log in")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Name, auth.RoleUser)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		h.internalError(w, "Failed to log in")
		return
	}

	auth.SetAuthCookie(w, token)
	if err := WriteJSON(w, http.StatusOK, LoginResponse{
		Status:   "success",
		Token:    token,
		UserID:   user.ID.String(),
		UserName: user.Name,
		UserType: auth.RoleUser,
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Logout handles POST /api/auth/logout
// Tokens are stateless; logout only clears the browser cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearAuthCookie(w)
	if err := WriteJSON(w, http.StatusOK, map[string]string{"status": "success"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CheckEmailRequest is the request body for the email availability check.
type CheckEmailRequest struct {
	Email string `json:"email"`
}

// CheckEmail handles POST /api/auth/check-email
func (h *AuthHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req CheckEmailRequest
	if err := DecodeJSON(r, &req); err != nil || req.Email == "" {
		h.badRequest(w, "email is required")
		return
	}

	exists, err := h.userService.EmailExists(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("Failed to check email", zap.Error(err))
		h.internalError(w, "Failed to check email")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ForgotRequest is the identity check preceding a password reset.
type ForgotRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Forgot handles POST /api/auth/forgot
// Verifies the name/email pair before the client may call Reset.
func (h *AuthHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	var req ForgotRequest
	if err := DecodeJSON(r, &req); err != nil || req.Name == "" || req.Email == "" {
		h.badRequest(w, "name and email are required")
		return
	}

	ok, err := h.userService.VerifyIdentity(r.Context(), req.Name, req.Email)
	if err != nil {
		h.logger.Error("Failed to verify identity", zap.Error(err))
		h.internalError(w, "Failed to verify identity")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]bool{"verified": ok}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ResetRequest is the request body for a password reset.
type ResetRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// Reset handles POST /api/auth/reset
func (h *AuthHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := DecodeJSON(r, &req); err != nil || req.Email == "" || req.NewPassword == "" {
		h.badRequest(w, "email and new_password are required")
		return
	}

	if err := h.userService.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "No account with that email"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to reset password", zap.Error(err))
		h.internalError(w, "Failed to reset password")
		return
	}

	h.auditor.LogPasswordReset(req.Email, r.RemoteAddr)
	if err := WriteJSON(w, http.StatusOK, map[string]string{"status": "success"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Verify handles GET /api/auth/verify
// Echoes the authenticated identity back to the client.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.GetClaims(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{
		"user_id":   claims.Subject,
		"user_name": claims.UserName,
		"user_type": claims.UserType,
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// AdminLogin handles POST /api/auth/admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}

	admin, err := h.adminService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			h.auditor.LogAdminLogin(req.Email, r.RemoteAddr, false)
			if err := ErrorResponse(w, http.StatusUnauthorized, "invalid_credentials", "Email or password is incorrect"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to authenticate admin", zap.Error(err))
		h.internalError(w, "Failed to log in")
		return
	}

	token, err := h.tokens.Issue(admin.ID, admin.Email, auth.RoleAdmin)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		h.internalError(w, "Failed to log in")
		return
	}

	h.auditor.LogAdminLogin(req.Email, r.RemoteAddr, true)
	auth.SetAuthCookie(w, token)
	if err := WriteJSON(w, http.StatusOK, LoginResponse{
		Status:   "success",
		Token:    token,
		UserID:   admin.ID.String(),
		UserName: admin.Email,
		UserType: auth.RoleAdmin,
	}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *AuthHandler) badRequest(w http.ResponseWriter, message string) {
	if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

func (h *AuthHandler) internalError(w http.ResponseWriter, message string) {
	if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
