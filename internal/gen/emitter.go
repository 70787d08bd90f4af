package gen

import (
	"strings"

	"view-generator/internal/errors"
	"view-generator/internal/view"
)

// Emitter writes the declarations of a view tree.
type Emitter struct {
	w     *view.Writer
	trail []string
}

// NewEmitter returns an Emitter writing to w.
func NewEmitter(w *view.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit walks root depth-first, children in first-inserted order.
func (e *Emitter) Emit(root *Node) error {
	for _, c := range root.Children() {
		if err := e.emit(c); err != nil {
			return err
		}
	}

	return nil
}

func (e *Emitter) emit(n *Node) error {
	e.trail = append(e.trail, n.Segment.Name)
	defer func() { e.trail = e.trail[:len(e.trail)-1] }()

	switch {
	case n.IsLeaf():
		return e.emitLeaf(n)
	case n.Segment.Namespace:
		return e.emitNamespace(n)
	default:
		return e.emitScope(n)
	}
}

// emitNamespace labels the region of a namespace that declares views of
// its own. Namespaces are flattened into the output package.
func (e *Emitter) emitNamespace(n *Node) error {
	for _, c := range n.Children() {
		if !c.Segment.Namespace {
			e.w.Printf("\n// --- namespace %s ---\n", strings.Join(e.trail, "."))
			break
		}
	}

	return e.emitChildren(n)
}

// emitScope opens a container region. Views declared inside take the
// container's parameters first.
func (e *Emitter) emitScope(n *Node) error {
	label := n.Segment.Name
	if len(n.Segment.Params) > 0 {
		label += "[" + strings.Join(n.Segment.Params, ", ") + "]"
	}

	e.w.Printf("\n// --- scope %s ---\n", label)
	e.w.PushScope(n.Segment.Params)

	if err := e.emitChildren(n); err != nil {
		return err
	}

	e.w.PopScope()
	e.w.Printf("\n// --- end scope %s ---\n", n.Segment.Name)

	return nil
}

func (e *Emitter) emitLeaf(n *Node) error {
	v := n.View

	if err := v.Open(e.w); err != nil {
		return errors.Wrapf(err, "opening %s", v.Ident())
	}

	if err := v.Content(e.w); err != nil {
		return errors.Wrapf(err, "writing %s", v.Ident())
	}

	if err := e.emitChildren(n); err != nil {
		return err
	}

	if err := v.Close(e.w); err != nil {
		return errors.Wrapf(err, "closing %s", v.Ident())
	}

	return nil
}

func (e *Emitter) emitChildren(n *Node) error {
	for _, c := range n.Children() {
		if err := e.emit(c); err != nil {
			return err
		}
	}

	return nil
}
