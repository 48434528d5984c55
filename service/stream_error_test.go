package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStreamError(t *testing.T) {
	inner := errors.New("underlying")
	e := NewStreamError(ErrBadParameter, "invalid input", inner)
	require.NotNil(t, e)
	assert.Equal(t, ErrBadParameter, e.Code)
	assert.Equal(t, "invalid input", e.Message)
	assert.Same(t, inner, e.Inner)
	assert.Equal(t, "bad_parameter invalid input: underlying", e.Error())
	assert.ErrorIs(t, e, inner)
}

func TestStreamErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *StreamError
		code string
		is   func(error) bool
	}{
		{"internal", NewInternalServerError("db failed", nil), ErrInternalServerError, IsInternalServerError},
		{"not_found", NewEntityNotFoundError("gone", nil), ErrEntityNotFound, IsEntityNotFoundError},
		{"bad_parameter", NewBadParameterError("invalid body", nil), ErrBadParameter, IsBadParameterError},
		{"unreachable", NewUnreachableError("timeout", nil), ErrNodeUnreachable, IsUnreachableError},
		{"protocol", NewProtocolError("no result element", nil), ErrProtocol, IsProtocolError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.True(t, tt.is(tt.err))
			assert.True(t, tt.is(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestCameraErrors(t *testing.T) {
	nf := NewCameraNotFoundError("Camera 'X' not found")
	assert.True(t, IsStreamError(nf, ErrCameraNotFound))
	assert.Equal(t, "camera_not_found Camera 'X' not found", nf.Error())

	un := NewCameraUnavailableError("no free node")
	assert.Equal(t, ErrCameraUnavailable, ToStreamErrorCode(un))
}

func TestNewUnreachableError_KeepsClassifiedInner(t *testing.T) {
	inner := NewProtocolError("bad xml", nil)
	e := NewUnreachableError("refresh failed", fmt.Errorf("call: %w", inner))
	assert.Same(t, inner, e)
	assert.True(t, IsProtocolError(e))
}

func TestToStreamError_WithStreamError(t *testing.T) {
	e := NewBadParameterError("bad", nil)
	got := ToStreamError(e)
	require.NotNil(t, got)
	assert.Same(t, e, got)
}

func TestToStreamError_WithOrdinaryError(t *testing.T) {
	e := errors.New("plain")
	assert.Nil(t, ToStreamError(e))
	assert.Empty(t, ToStreamErrorCode(e))
	assert.False(t, IsUnreachableError(e))
}
