package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unified error code across the library.
type ErrorCode string

const (
	ErrClassificationFailure ErrorCode = "CLASSIFICATION_FAILURE"
	ErrAgentTimeout          ErrorCode = "AGENT_TIMEOUT"
	ErrAgentError            ErrorCode = "AGENT_ERROR"
	ErrNoAgents              ErrorCode = "NO_AGENTS"
	ErrReworkLoopExceeded    ErrorCode = "REWORK_LOOP_EXCEEDED"
	ErrMalformedVerdict      ErrorCode = "MALFORMED_VERDICT"
	ErrReviewStalled         ErrorCode = "REVIEW_STALLED"
	ErrSessionAbort          ErrorCode = "SESSION_ABORT"
	ErrInvalidTransition     ErrorCode = "INVALID_TRANSITION"
	ErrInternalError         ErrorCode = "INTERNAL_ERROR"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	AgentID   AgentID   `json:"agent_id,omitempty"`
	Cause     error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// WithAgent attaches the agent the error originated from.
func (e *Error) WithAgent(id AgentID) *Error {
	e.AgentID = id
	return e
}

// GetErrorCode extracts the error code from an error, unwrapping as needed.
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}
