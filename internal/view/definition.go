package view

import "view-generator/internal/typegraph"

// Definition is a resolved way of viewing a declared type.
type Definition interface {
	// IsDirectAccess reports whether an aggregate exposes a field of this
	// view as a plain value instead of as the view itself.
	IsDirectAccess() bool
	// ViewType returns the Go syntax of the view type for declared type t.
	ViewType(t *typegraph.Type) string
}

// Direct is implemented by definitions whose views have Value and
// SetValue methods.
type Direct interface {
	Definition
	// ValueType returns the Go syntax of the type Value returns.
	ValueType(t *typegraph.Type) string
}

// Generated is a definition that emits its own declaration.
type Generated interface {
	Definition
	// SourceType returns the declared type the view was generated for;
	// the open definition when the type is generic.
	SourceType() *typegraph.Type
	// Path returns the nesting location of the view.
	Path() TypePath
	// Ident returns the Go identifier of the view type.
	Ident() string

	Open(w *Writer) error
	Content(w *Writer) error
	Close(w *Writer) error
}

// resolver is implemented by memoized definitions with deferred work.
type resolver interface {
	resolve() error
}

// matcher is a stateless builtin rule.
type matcher interface {
	Definition
	match(t *typegraph.Type, u Usage) bool
}
