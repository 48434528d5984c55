package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that a requested record is absent in storage.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrCameraNotFound means that no active render node can render the camera.
	ErrCameraNotFound = "camera_not_found"
	// ErrCameraUnavailable means that the camera exists but every capable render node is busy.
	ErrCameraUnavailable = "camera_unavailable"
	// ErrNodeUnreachable means that a remote call to a render node failed (network, timeout, HTTP status).
	ErrNodeUnreachable = "node_unreachable"
	// ErrProtocol means that a render node replied with something that could not be parsed.
	ErrProtocol = "protocol_error"
)

// StreamError represents an error within the context of the video stream manager.
type StreamError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewStreamError creates a new StreamError.
func NewStreamError(code string, message string, inner error) *StreamError {
	return &StreamError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *StreamError {
	return newOrInner(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *StreamError {
	return newOrInner(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *StreamError {
	return newOrInner(ErrBadParameter, message, inner)
}

func NewCameraNotFoundError(message string) *StreamError {
	return NewStreamError(ErrCameraNotFound, message, nil)
}

func NewCameraUnavailableError(message string) *StreamError {
	return NewStreamError(ErrCameraUnavailable, message, nil)
}

func NewUnreachableError(message string, inner error) *StreamError {
	return newOrInner(ErrNodeUnreachable, message, inner)
}

func NewProtocolError(message string, inner error) *StreamError {
	return newOrInner(ErrProtocol, message, inner)
}

// newOrInner keeps an already classified inner error instead of re-wrapping it.
func newOrInner(code, message string, inner error) *StreamError {
	if se := ToStreamError(inner); se != nil {
		return se
	}
	return NewStreamError(code, message, inner)
}

func (e StreamError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e StreamError) Unwrap() error {
	return e.Inner
}

// ToStreamError returns a pointer to a stream manager error, or nil if it is not one.
func ToStreamError(err error) *StreamError {
	var e *StreamError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToStreamErrorCode returns the code of the error, if available.
func ToStreamErrorCode(err error) string {
	if se := ToStreamError(err); se != nil {
		return se.Code
	}
	return ""
}

func IsStreamError(err error, code string) bool {
	if se := ToStreamError(err); se != nil {
		return se.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsStreamError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsStreamError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsStreamError(err, ErrBadParameter)
}

func IsUnreachableError(err error) bool {
	return IsStreamError(err, ErrNodeUnreachable)
}

func IsProtocolError(err error) bool {
	return IsStreamError(err, ErrProtocol)
}
