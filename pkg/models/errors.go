package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched by every ValidationError
var ErrInvalidArgument = errors.New("invalid argument")

// ErrScanTimeout is returned when a scan exceeds its wall-clock budget
var ErrScanTimeout = errors.New("scan exceeded time budget")

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap lets errors.Is(err, ErrInvalidArgument) match
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// FilesystemError is a fatal error about a root directory
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem error on %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// FileError is a recoverable error about a single file
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ActionError aggregates the per-file failures of an applied action
type ActionError struct {
	Action   ReconciliationAction
	Failures []*FileError
}

func (e *ActionError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("%s: %d file(s) failed: %s", e.Action, len(e.Failures), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As
func (e *ActionError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
