package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrorType classifies a generation failure.
type ErrorType string

const (
	// ErrorTypeQuota marks rate/usage-limit failures. These are the only
	// retryable failures.
	ErrorTypeQuota ErrorType = "quota"
	// ErrorTypeAPI marks every other generation failure.
	ErrorTypeAPI ErrorType = "api"
)

// quotaMarkers are substrings that identify a quota failure in provider
// error text. Matching is case-insensitive.
var quotaMarkers = []string{
	"exceeded your current quota",
	"quota",
	"429",
	"配額",
}

// retryHintPattern extracts the provider's suggested wait from error text,
// e.g. "Please retry in 39.5s".
var retryHintPattern = regexp.MustCompile(`(?i)retry in\s*([0-9]+(?:\.[0-9]+)?)\s*s`)

// Error is a structured, classified generation error.
type Error struct {
	Type       ErrorType
	Message    string
	Retryable  bool
	RetryAfter time.Duration // Provider wait hint; zero when absent
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface so the retry
// package can check retryability without importing llm.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewError creates a new structured generation error.
func NewError(errType ErrorType, message string, retryable bool, cause error) *Error {
	return &Error{
		Type:      errType,
		Message:   message,
		Retryable: retryable,
		Cause:     cause,
	}
}

// ClassifyError categorizes a provider error. Quota failures (any quota
// marker in the error text) are retryable and carry the provider's wait
// hint when one is present. Everything else is fatal and must not be
// retried.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)
	for _, marker := range quotaMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return &Error{
				Type:       ErrorTypeQuota,
				Message:    "generation quota exceeded",
				Retryable:  true,
				RetryAfter: extractRetryHint(errStr),
				Cause:      err,
			}
		}
	}

	return NewError(ErrorTypeAPI, "generation failed", false, err)
}

// IsQuotaError reports whether err classifies as a quota failure.
func IsQuotaError(err error) bool {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type == ErrorTypeQuota
	}
	return false
}

// extractRetryHint scans error text for a "retry in N s" suggestion.
// Returns zero when no hint is present.
func extractRetryHint(errStr string) time.Duration {
	m := retryHintPattern.FindStringSubmatch(errStr)
	if m == nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}
