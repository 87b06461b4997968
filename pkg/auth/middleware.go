package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/audit"
)

// Middleware provides HTTP authentication middleware.
// It is thin and delegates token verification to Service.
type Middleware struct {
	service *Service
	auditor *audit.SecurityAuditor
	logger  *zap.Logger
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(service *Service, auditor *audit.SecurityAuditor, logger *zap.Logger) *Middleware {
	return &Middleware{
		service: service,
		auditor: auditor,
		logger:  logger,
	}
}

// RequireAuth validates the token and puts its claims in the request
// context for downstream handlers.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := m.service.TokenFromRequest(r)
		if token == "" {
			m.unauthorized(w, "Missing authentication token")
			return
		}

		claims, err := m.service.Verify(token)
		if err != nil {
			m.unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin validates the token and additionally requires the admin
// role.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok || !claims.IsAdmin() {
			if ok {
				m.auditor.LogPrivilegeEscalation(claims.Subject, r.RemoteAddr)
			}
			m.forbidden(w, "Administrator authorization required")
			return
		}
		next(w, r)
	})
}

// unauthorized returns a 401 response with JSON error body.
func (m *Middleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	})
}

// forbidden returns a 403 response with JSON error body.
func (m *Middleware) forbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "forbidden",
		"message": message,
	})
}
