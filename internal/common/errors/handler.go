// internal/common/errors/handler.go
package errors

import (
	"errors"
	"net/http"
	"time"
)

// httpStatus maps error codes to HTTP response statuses. Codes not
// listed here are treated as internal server errors.
var httpStatus = map[ErrorCode]int{
	ErrCodeFlightNotFound:       http.StatusNotFound,
	ErrCodeGateNotFound:         http.StatusNotFound,
	ErrCodeConfigNotFound:       http.StatusNotFound,
	ErrCodeFlightValidation:     http.StatusBadRequest,
	ErrCodeDuplicateFlight:      http.StatusConflict,
	ErrCodeWeightsInvalid:       http.StatusBadRequest,
	ErrCodeUploadParseFailed:    http.StatusBadRequest,
	ErrCodeUploadUnsupported:    http.StatusBadRequest,
	ErrCodeAssignmentInvalid:    http.StatusBadRequest,
	ErrCodeExternalFetchFailed:  http.StatusBadGateway,
	ErrCodeSearchQueryFailed:    http.StatusBadGateway,
	ErrCodeQueryTimeout:         http.StatusGatewayTimeout,
	ErrCodeRecommendationFailed: http.StatusInternalServerError,
	ErrCodePersistFailed:        http.StatusInternalServerError,
}

// HTTPStatus returns the response status for an application error.
func HTTPStatus(err error) int {
	if status, ok := httpStatus[Normalize(err).Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Normalize ensures we always have a StandardError to report.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
