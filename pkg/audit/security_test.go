package audit

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSecurityAuditor_LogLoginFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	auditor := NewSecurityAuditor(zap.New(core))

	auditor.LogLoginFailure("wang@example.com", "203.0.113.7:1234")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	fields := entry.ContextMap()
	if fields["event_type"] != string(EventLoginFailure) {
		t.Errorf("expected event_type %s, got %v", EventLoginFailure, fields["event_type"])
	}
	if fields["email"] != "wang@example.com" {
		t.Errorf("expected email in event, got %v", fields["email"])
	}
	if fields["success"] != false {
		t.Errorf("expected success=false, got %v", fields["success"])
	}
}

func TestSecurityAuditor_AdminLoginFailureIsCritical(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	auditor := NewSecurityAuditor(zap.New(core))

	auditor.LogAdminLogin("admin@example.com", "203.0.113.7:1234", false)

	entry := logs.All()[0]
	if entry.Level != zap.ErrorLevel {
		t.Errorf("expected ERROR level, got %s", entry.Level)
	}
	if entry.ContextMap()["severity"] != "critical" {
		t.Errorf("expected critical severity, got %v", entry.ContextMap()["severity"])
	}
}

func TestSecurityAuditor_AdminLoginSuccessIsInfo(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	auditor := NewSecurityAuditor(zap.New(core))

	auditor.LogAdminLogin("admin@example.com", "203.0.113.7:1234", true)

	entry := logs.All()[0]
	if entry.Level != zap.InfoLevel {
		t.Errorf("expected INFO level, got %s", entry.Level)
	}
	if entry.ContextMap()["success"] != true {
		t.Errorf("expected success=true, got %v", entry.ContextMap()["success"])
	}
}

func TestSecurityAuditor_UsesNamedLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	auditor := NewSecurityAuditor(zap.New(core))

	auditor.LogPasswordReset("wang@example.com", "203.0.113.7:1234")

	entry := logs.All()[0]
	if entry.LoggerName != "security_audit" {
		t.Errorf("expected logger name 'security_audit', got '%s'", entry.LoggerName)
	}
}
