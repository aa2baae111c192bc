package view_sync

import (
	"fmt"
	"maps"
	"strings"
)

// ErrorCode classifies a SyncError.
type ErrorCode string

const (
	CodeCameraNotSupported   ErrorCode = "CAMERA_NOT_SUPPORTED"
	CodeWidgetInvalid        ErrorCode = "WIDGET_INVALID"
	CodeAnimationFailed      ErrorCode = "ANIMATION_FAILED"
	CodeInitializationFailed ErrorCode = "INITIALIZATION_FAILED"
)

// Sentinels for errors.Is. A SyncError matches a sentinel when the codes are equal.
var (
	ErrCameraNotSupported   = &SyncError{Code: CodeCameraNotSupported}
	ErrWidgetInvalid        = &SyncError{Code: CodeWidgetInvalid}
	ErrAnimationFailed      = &SyncError{Code: CodeAnimationFailed}
	ErrInitializationFailed = &SyncError{Code: CodeInitializationFailed}
)

// SyncError is the error type returned by the Synchronizer and recorded in State.LastError.
// It is never mutated after creation.
type SyncError struct {
	Code    ErrorCode
	Message string
	// Context carries structured detail such as the requested axis.
	Context map[string]any
	Cause   error
}

func newSyncError(code ErrorCode, message string, context map[string]any) *SyncError {
	return &SyncError{Code: code, Message: message, Context: context}
}

func (e *SyncError) withCause(cause error) *SyncError {
	e.Cause = cause
	return e
}

// clone returns a copy whose Context can be modified without touching e.
func (e *SyncError) clone() *SyncError {
	c := *e
	c.Context = maps.Clone(e.Context)
	return &c
}

func (e *SyncError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *SyncError) Unwrap() error {
	return e.Cause
}

// Is matches any *SyncError carrying the same code.
func (e *SyncError) Is(target error) bool {
	t, ok := target.(*SyncError)
	return ok && t.Code == e.Code
}
