package view

import "view-generator/internal/typegraph"

// sequenceView views a resizable array or list. Its element view is
// resolved after construction so self-referential element types terminate.
type sequenceView struct {
	c     *Catalog
	t     *typegraph.Type
	usage Usage
	elem  Definition
}

func (*sequenceView) IsDirectAccess() bool { return false }

func (v *sequenceView) resolve() error {
	v.elem = v.c.viewOrSink(v.t.Elem, v.usage, nil)
	if v.usage == UsageValueField {
		v.c.discoverNested(v.t.Elem, nil)
	}

	return nil
}

func (v *sequenceView) ViewType(t *typegraph.Type) string {
	elem := v.elem
	if elem == nil {
		elem = v.c.resolvedView(v.t.Elem, v.usage)
	}

	return v.c.runtime("Sequence") + "[" + elem.ViewType(t.Deref().Elem) + "]"
}

// managedReferenceView views a polymorphic reference slot. The declared
// type is kept as written, pointers included; values are never narrowed.
type managedReferenceView struct {
	c *Catalog
}

func (*managedReferenceView) IsDirectAccess() bool { return true }

func (v *managedReferenceView) ViewType(t *typegraph.Type) string {
	return v.c.runtime("ManagedReference") + "[" + v.ValueType(t) + "]"
}

func (v *managedReferenceView) ValueType(t *typegraph.Type) string {
	return v.c.TypeSyntax(t)
}

// objectReferenceView views a handle to a host object. Like references it
// keeps pointer types, so a *Player field reads back a *Player.
type objectReferenceView struct {
	c *Catalog
}

func (*objectReferenceView) IsDirectAccess() bool { return true }

func (v *objectReferenceView) ViewType(t *typegraph.Type) string {
	return v.c.runtime("ObjectReference") + "[" + v.ValueType(t) + "]"
}

func (v *objectReferenceView) ValueType(t *typegraph.Type) string {
	return v.c.TypeSyntax(t)
}
