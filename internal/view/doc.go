// Package view resolves declared types into view definitions and renders
// their Go source.
//
// The Catalog is the single entry point: GetView(type, usage) returns the
// definition for a declared type in a given position, consulting builtin
// match rules first and a memo table second. Definitions for custom
// aggregates and enums are "generated": after every root is discovered the
// catalog resolves them once each, and the emitter in internal/gen asks them
// to write their declarations.
//
// Resolution is demand driven and cycle safe: a new definition is stored in
// the memo table before anything it refers to is resolved, so a type that
// reaches itself through its fields finds its own entry.
package view
