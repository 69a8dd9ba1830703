// Package errors provides standardized error handling for the gate
// recommendation service.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeFlightNotFound       ErrorCode = "FLIGHT_NOT_FOUND"
	ErrCodeGateNotFound         ErrorCode = "GATE_NOT_FOUND"
	ErrCodeFlightValidation     ErrorCode = "FLIGHT_VALIDATION_FAILED"
	ErrCodeDuplicateFlight      ErrorCode = "DUPLICATE_FLIGHT"
	ErrCodeWeightsInvalid       ErrorCode = "WEIGHTS_INVALID"
	ErrCodeConfigNotFound       ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeUploadParseFailed    ErrorCode = "UPLOAD_PARSE_FAILED"
	ErrCodeUploadUnsupported    ErrorCode = "UPLOAD_UNSUPPORTED_FORMAT"
	ErrCodeAssignmentInvalid    ErrorCode = "ASSIGNMENT_INVALID"
	ErrCodeRecommendationFailed ErrorCode = "RECOMMENDATION_FAILED"
	ErrCodePersistFailed        ErrorCode = "RECOMMENDATION_PERSIST_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeExternalFetchFailed ErrorCode = "EXTERNAL_FETCH_FAILED"
	ErrCodeSearchQueryFailed   ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeNotificationFailed  ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is makes StandardError comparable by code with errors.Is.
func (e *StandardError) Is(target error) bool {
	var other *StandardError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// ==========================
// 2. Error Constructors
// ==========================

// NewFlightNotFoundError creates a non-retryable lookup error.
func NewFlightNotFoundError(flightID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeFlightNotFound,
		Message:   "Flight not found",
		Details:   fmt.Sprintf("flightId: %d", flightID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGateNotFoundError creates a non-retryable lookup error.
func NewGateNotFoundError(gateID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeGateNotFound,
		Message:   "Gate not found",
		Details:   fmt.Sprintf("gateId: %d", gateID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFlightValidationError creates a non-retryable validation error.
func NewFlightValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFlightValidation,
		Message:   "Flight data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWeightsInvalidError creates a non-retryable weight validation error.
// The previous weight set stays in effect when this is returned.
func NewWeightsInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWeightsInvalid,
		Message:   "Optimization weights must be non-negative and sum to 1.0",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateFlightError creates a non-retryable duplicate error.
func NewDuplicateFlightError(flightNumber, scheduledDate string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateFlight,
		Message:   "Flight already exists for this date",
		Details:   fmt.Sprintf("flightNumber: %s, scheduledDate: %s", flightNumber, scheduledDate),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigNotFoundError creates a non-retryable config lookup error.
func NewConfigNotFoundError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigNotFound,
		Message:   "Configuration key not found",
		Details:   fmt.Sprintf("configKey: %s", key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssignmentInvalidError creates a non-retryable assignment error.
func NewAssignmentInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssignmentInvalid,
		Message:   "Gate assignment request is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUploadParseError creates a non-retryable upload parsing error.
func NewUploadParseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUploadParseFailed,
		Message:   "Failed to parse uploaded flight data",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUploadUnsupportedError creates a non-retryable file format error.
func NewUploadUnsupportedError(filename string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUploadUnsupported,
		Message:   "Unsupported file format, upload a CSV file",
		Details:   fmt.Sprintf("filename: %s", filename),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistFailedError wraps a failed recommendation write. The whole
// generation call fails with this error; no partial batch is kept.
func NewPersistFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistFailed,
		Message:   "Failed to persist recommendations",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalFetchFailedError creates a retryable upstream fetch error.
func NewExternalFetchFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalFetchFailed,
		Message:   "External flight data fetch failed",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search index error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Recommendation history search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationFailedError creates a retryable notification error.
func NewNotificationFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationFailed,
		Message:   "Failed to send gate assignment notification",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
