// Package errors provides error handling for cmdstub.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// Usage:
//
//	// Create new error
//	err := errors.New("unexpected return section")
//
//	// Wrap with context
//	if err := parse(page); err != nil {
//	    return errors.Wrapf(err, "command %s", name)
//	}
//
//	// Add hints for operators
//	return errors.WithHint(err, "inspect the page with 'cmdstub inspect'")
//
//	// Check errors
//	if errors.Is(err, errors.ErrMalformedPage) {
//	    // skip the command
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint       = crdb.WithHint
	WithHintf      = crdb.WithHintf
	WithDetail     = crdb.WithDetail
	WithDetailf    = crdb.WithDetailf
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Error inspection
var (
	Is         = crdb.Is
	IsAny      = crdb.IsAny
	As         = crdb.As
	Unwrap     = crdb.Unwrap
	UnwrapOnce = crdb.UnwrapOnce
	UnwrapAll  = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors shared across cmdstub.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates the requested page, command or file does not exist
	ErrNotFound = New("not found")

	// ErrMalformedPage indicates a documentation page deviates from the expected markup.
	// This signals upstream format drift and is never silently repaired.
	ErrMalformedPage = New("malformed documentation page")

	// ErrInvalidTable indicates an override table failed validation at load time
	ErrInvalidTable = New("invalid override table")

	// ErrHostUnavailable indicates the live API host could not be started or queried
	ErrHostUnavailable = New("host unavailable")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsMalformedPageError checks if an error is or wraps ErrMalformedPage
func IsMalformedPageError(err error) bool {
	return err != nil && Is(err, ErrMalformedPage)
}

// NewMalformedPageError creates a malformed-page error with a formatted message
func NewMalformedPageError(format string, args ...interface{}) error {
	return Wrap(ErrMalformedPage, Newf(format, args...).Error())
}

// NewInvalidTableError creates an invalid-table error with a formatted message
func NewInvalidTableError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidTable, Newf(format, args...).Error())
}
