// Package errors provides application-level error types shared by every layer.
// An AppError carries the HTTP status it renders as.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal_error"
	ErrorTypeBadRequest   ErrorType = "bad_request"

	ErrorTypeConfiguration      ErrorType = "configuration_error"
	ErrorTypeInsufficientPlan   ErrorType = "insufficient_plan"
	ErrorTypeInsufficientTokens ErrorType = "insufficient_tokens"
	ErrorTypeUpstream           ErrorType = "upstream_error"
	ErrorTypeRateLimited        ErrorType = "rate_limited"
	ErrorTypeBillingUnavailable ErrorType = "billing_unavailable"
)

// AppError represents an application error with additional context.
// Meta holds structured fields a client can act on, e.g. the token balance.
type AppError struct {
	Type      ErrorType      `json:"type"`
	Message   string         `json:"message"`
	Code      int            `json:"code"`
	Details   string         `json:"details,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	Retryable bool           `json:"retryable,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// WithMeta returns the error with key set in Meta.
func (e *AppError) WithMeta(key string, value any) *AppError {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{Type: t, Message: message, Code: code, Details: detail}
}

func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// NewConfigurationError signals a catalog/policy mismatch. It renders as a
// client error so a bad feature id never looks like an outage.
func NewConfigurationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConfiguration, http.StatusBadRequest, message, details)
}

func NewInsufficientPlanError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInsufficientPlan, http.StatusForbidden, message, details)
}

func NewInsufficientTokensError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInsufficientTokens, http.StatusPaymentRequired, message, details)
}

func NewUpstreamError(message string, details ...string) *AppError {
	e := newAppError(ErrorTypeUpstream, http.StatusServiceUnavailable, message, details)
	e.Retryable = true
	return e
}

func NewRateLimitedError(message string, details ...string) *AppError {
	e := newAppError(ErrorTypeRateLimited, http.StatusTooManyRequests, message, details)
	e.Retryable = true
	return e
}

func NewBillingUnavailableError(message string, details ...string) *AppError {
	e := newAppError(ErrorTypeBillingUnavailable, http.StatusServiceUnavailable, message, details)
	e.Retryable = true
	return e
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the first AppError in err's chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsNotFoundError(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

func IsConflictError(err error) bool {
	return IsType(err, ErrorTypeConflict)
}

func IsValidationError(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsDuplicateError reports whether err is a unique-key violation from
// MySQL, PostgreSQL or SQLite.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "Duplicate entry") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "UNIQUE constraint failed")
}
