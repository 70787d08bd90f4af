package diagnostic

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"view-generator/internal/common"
	"view-generator/internal/errors"
)

// Diagnostic codes.
const (
	CodeUnsupportedField = "unsupported_field"
	CodeUnresolvedSymbol = "unresolved_symbol"
	CodeMalformedSource  = "malformed_source"
	CodeSkippedRoot      = "skipped_root"
	CodeFatal            = "fatal"
)

// Diagnostics holds all diagnostic information from one run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type names the declared type this relates to (if any).
	Type string
	// Field names the field within Type (if any).
	Field string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, field string) {
	d.Errors = append(d.Errors, newDiagnostic(SeverityError, code, message, typeName, field))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, field string) {
	d.Warnings = append(d.Warnings, newDiagnostic(SeverityWarning, code, message, typeName, field))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, field string) {
	d.Infos = append(d.Infos, newDiagnostic(SeverityInfo, code, message, typeName, field))
}

func newDiagnostic(sev Severity, code, message, typeName, field string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Field:    field,
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the number of diagnostics of every severity.
func (d Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first, each group in insertion order.
func (d Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Log writes every diagnostic to log at a level matching its severity.
func (d *Diagnostics) Log(log *zap.SugaredLogger) {
	for _, diag := range d.All() {
		kv := []any{"code", diag.Code}
		if diag.Type != "" {
			kv = append(kv, "type", diag.Type)
		}

		if diag.Field != "" {
			kv = append(kv, "field", diag.Field)
		}

		switch diag.Severity {
		case SeverityError:
			log.Errorw(diag.Message, kv...)
		case SeverityWarning:
			log.Warnw(diag.Message, kv...)
		default:
			log.Infow(diag.Message, kv...)
		}
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
