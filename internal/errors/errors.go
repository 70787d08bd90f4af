// Package errors provides error handling for view-generator.
//
// This package re-exports github.com/cockroachdb/errors so every package
// gets stack traces, wrapping and hints from one import, and it defines the
// sentinels the generator distinguishes with errors.Is.
//
// Usage:
//
//	if err := load(); err != nil {
//	    return errors.Wrap(err, "loading schema")
//	}
//
//	if errors.Is(err, errors.ErrPathCollision) {
//	    // two views claimed the same output path
//	}
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
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf    = crdb.AssertionFailedf
	HasAssertionFailure = crdb.HasAssertionFailure
)

// Sentinels for the failure modes of a generation run.
// Wrap them to add context; errors.Is still matches.
var (
	// ErrUnresolvableSymbol indicates a required type could not be found
	// in the type graph. Fatal for the run.
	ErrUnresolvableSymbol = New("symbol not found")

	// ErrUnsupportedFieldShape indicates a type that no view kind can
	// represent. Fields degrade to the unsupported view; roots are fatal.
	ErrUnsupportedFieldShape = New("unsupported type shape")

	// ErrUnsupportedRoot indicates a root type failed classification.
	ErrUnsupportedRoot = New("unsupported root type")

	// ErrMalformedSource indicates an auxiliary source file could not be parsed.
	ErrMalformedSource = New("malformed source")

	// ErrPathCollision indicates two views resolved to the same output path.
	ErrPathCollision = New("path collision")
)

// IsFatal reports whether err aborts a generation run.
// Unsupported field shapes and malformed auxiliary sources are recoverable.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	if Is(err, ErrMalformedSource) {
		return false
	}

	return !Is(err, ErrUnsupportedFieldShape) || Is(err, ErrUnsupportedRoot)
}
