package internal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies a per-image failure for the manifest and diagnostics.
type ErrorCategory string

const (
	ErrorCategoryMetadata ErrorCategory = "metadata_error" // capture date missing or unreadable
	ErrorCategoryIO       ErrorCategory = "io_error"       // filesystem, permissions, disk space
	ErrorCategoryVerify   ErrorCategory = "verify_error"   // copy landed but bytes differ
	ErrorCategoryUnknown  ErrorCategory = "unknown_error"
)

// ProcessError is a categorized per-image failure. These never abort a run.
type ProcessError struct {
	Path     string
	Category ErrorCategory
	Err      error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.Path, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// CategorizeError wraps err with the category it most likely belongs to.
func CategorizeError(path string, err error) *ProcessError {
	if err == nil {
		return nil
	}

	pe := &ProcessError{Path: path, Err: err, Category: ErrorCategoryUnknown}
	s := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, ErrNoCaptureDate):
		pe.Category = ErrorCategoryMetadata
	case errors.Is(err, ErrContentMismatch):
		pe.Category = ErrorCategoryVerify
	case strings.Contains(s, "no space left"),
		strings.Contains(s, "permission denied"),
		strings.Contains(s, "read-only file system"),
		strings.Contains(s, "input/output error"),
		strings.Contains(s, "no such file"):
		pe.Category = ErrorCategoryIO
	}
	return pe
}
