// Package audit provides security audit logging for SIEM consumption.
// It logs security-relevant events in structured JSON format for easy parsing
// and integration with security information and event management systems.
package audit

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SecurityEventType categorizes security-relevant events for filtering and alerting.
type SecurityEventType string

const (
	// EventLoginFailure is logged when a login attempt fails.
	EventLoginFailure SecurityEventType = "login_failure"
	// EventAdminLogin is logged on every administrator login, successful or not.
	EventAdminLogin SecurityEventType = "admin_login"
	// EventPasswordReset is logged when an account password is changed.
	EventPasswordReset SecurityEventType = "password_reset"
	// EventPrivilegeEscalation is logged when a non-admin token reaches an
	// admin endpoint.
	EventPrivilegeEscalation SecurityEventType = "privilege_escalation_attempt"
)

// SecurityEvent represents an auditable security event with all relevant context
// for SIEM ingestion and analysis.
type SecurityEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType SecurityEventType `json:"event_type"`
	Email     string            `json:"email,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
	Success   bool              `json:"success"`
	Severity  string            `json:"severity"` // info, warning, critical
}

// SecurityAuditor logs security events for SIEM consumption.
// Events are logged in structured JSON format with appropriate severity levels.
type SecurityAuditor struct {
	logger *zap.Logger
}

// NewSecurityAuditor creates a new security auditor with a dedicated logger
// namespace ("security_audit") for easy filtering in SIEM systems.
func NewSecurityAuditor(logger *zap.Logger) *SecurityAuditor {
	return &SecurityAuditor{logger: logger.Named("security_audit")}
}

// LogLoginFailure records a failed user login. Logged at WARN: isolated
// failures are routine, bursts from one address are not.
func (a *SecurityAuditor) LogLoginFailure(email, clientIP string) {
	a.log(zap.WarnLevel, SecurityEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventLoginFailure,
		Email:     email,
		ClientIP:  clientIP,
		Success:   false,
		Severity:  "warning",
	})
}

// LogAdminLogin records an administrator login attempt. Failures are logged
// at ERROR with critical severity for immediate alerting.
func (a *SecurityAuditor) LogAdminLogin(email, clientIP string, success bool) {
	event := SecurityEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventAdminLogin,
		Email:     email,
		ClientIP:  clientIP,
		Success:   success,
		Severity:  "info",
	}
	level := zapcore.InfoLevel
	if !success {
		event.Severity = "critical"
		level = zapcore.ErrorLevel
	}
	a.log(level, event)
}

// LogPasswordReset records a completed password reset.
func (a *SecurityAuditor) LogPasswordReset(email, clientIP string) {
	a.log(zap.InfoLevel, SecurityEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventPasswordReset,
		Email:     email,
		ClientIP:  clientIP,
		Success:   true,
		Severity:  "info",
	})
}

// LogPrivilegeEscalation records a non-admin token used against an admin
// endpoint. Always critical.
func (a *SecurityAuditor) LogPrivilegeEscalation(subject, clientIP string) {
	a.log(zap.ErrorLevel, SecurityEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventPrivilegeEscalation,
		Email:     subject,
		ClientIP:  clientIP,
		Success:   false,
		Severity:  "critical",
	})
}

func (a *SecurityAuditor) log(level zapcore.Level, event SecurityEvent) {
	fields := []zap.Field{
		zap.Time("timestamp", event.Timestamp),
		zap.String("event_type", string(event.EventType)),
		zap.String("email", event.Email),
		zap.String("client_ip", event.ClientIP),
		zap.Bool("success", event.Success),
		zap.String("severity", event.Severity),
	}

	switch level {
	case zapcore.ErrorLevel:
		a.logger.Error("security event", fields...)
	case zapcore.WarnLevel:
		a.logger.Warn("security event", fields...)
	default:
		a.logger.Info("security event", fields...)
	}
}
