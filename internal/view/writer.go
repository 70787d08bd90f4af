package view

import (
	"bytes"
	"fmt"
)

// Writer accumulates generated source and tracks the generic parameters of
// the enclosing container scopes.
type Writer struct {
	buf   bytes.Buffer
	scope [][]string
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Printf appends formatted text.
func (w *Writer) Printf(format string, args ...any) {
	fmt.Fprintf(&w.buf, format, args...)
}

// PushScope enters a container scope declaring params.
func (w *Writer) PushScope(params []string) {
	w.scope = append(w.scope, params)
}

// PopScope leaves the innermost container scope.
func (w *Writer) PopScope() {
	w.scope = w.scope[:len(w.scope)-1]
}

// ScopeParams returns the parameters of every enclosing scope, outermost
// first.
func (w *Writer) ScopeParams() []string {
	var params []string
	for _, s := range w.scope {
		params = append(params, s...)
	}

	return params
}

// Bytes returns the accumulated source.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}
