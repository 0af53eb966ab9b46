package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(ErrAgentTimeout, "agent did not respond").WithAgent("ec2_specialist")
	assert.Equal(t, "[AGENT_TIMEOUT] agent did not respond", err.Error())

	wrapped := NewError(ErrAgentError, "invoke failed").WithCause(errors.New("boom"))
	assert.Equal(t, "[AGENT_ERROR] invoke failed: boom", wrapped.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewError(ErrSessionAbort, "aborted").WithCause(cause)
	assert.ErrorIs(t, err, cause)
}

func TestGetErrorCodeUnwraps(t *testing.T) {
	inner := NewError(ErrReviewStalled, "no verdict")
	outer := fmt.Errorf("review: %w", inner)

	assert.Equal(t, ErrReviewStalled, GetErrorCode(outer))
	assert.True(t, IsCode(outer, ErrReviewStalled))
	assert.False(t, IsCode(outer, ErrAgentTimeout))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
}

func TestRetryableFlag(t *testing.T) {
	err := NewError(ErrAgentTimeout, "slow agent").WithRetryable(true)
	assert.True(t, err.Retryable)
}
