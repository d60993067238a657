// Package errors provides standardized error handling for the lead relay.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfigurationInvalid  ErrorCode = "CONFIGURATION_INVALID"
	ErrCodeUpstreamFetchFailed   ErrorCode = "UPSTREAM_FETCH_FAILED"
	ErrCodeTransformInputInvalid ErrorCode = "TRANSFORM_INPUT_INVALID"
	ErrCodeDeliveryFailed        ErrorCode = "DELIVERY_FAILED"
	ErrCodeRequestShapeInvalid   ErrorCode = "REQUEST_SHAPE_INVALID"
	ErrCodeArtifactWriteFailed   ErrorCode = "ARTIFACT_WRITE_FAILED"
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

// NewConfigurationInvalidError is fatal at startup; the process must not serve.
func NewConfigurationInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationInvalid,
		Message:   "Required configuration is missing or invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamFetchFailedError is recovered by the caller with an empty result set.
func NewUpstreamFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamFetchFailed,
		Message:   "Fetching contacts from the CRM API failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransformInputInvalidError marks a record that could not be mapped.
func NewTransformInputInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransformInputInvalid,
		Message:   "Lead record cannot be mapped to ADF",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDeliveryFailedError is logged; the request still reports overall success.
func NewDeliveryFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDeliveryFailed,
		Message:   "Email delivery failed",
		Details:   fmt.Sprintf("provider: %s, error: %s", provider, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestShapeInvalidError is surfaced to the HTTP caller as 400.
func NewRequestShapeInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestShapeInvalid,
		Message:   "Request payload is not a valid lead record",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewArtifactWriteFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArtifactWriteFailed,
		Message:   "Writing the ADF document failed",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
