// Package viewrt is the runtime API that generated views compile against.
//
// A persisted-value store exposes values through path-addressed Property
// handles. Generated views wrap a Property (or, for host-object roots, a
// Document) and expose typed accessors. The builtin views in this package
// cover scalars, structured values, sequences, fixed buffers and
// references; generated code composes them.
//
// Views are small values. Binding never touches the store; accessors
// resolve child properties on first use and cache them, so a view must not
// be shared between goroutines.
package viewrt
