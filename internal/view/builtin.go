package view

import (
	"view-generator/internal/typegraph"
)

// newBuiltins returns the builtin rules in match order.
func (c *Catalog) newBuiltins() []matcher {
	builtins := []matcher{&typeParamView{}}

	for _, k := range typegraph.BasicKinds() {
		builtins = append(builtins, &scalarView{c: c, kind: k})
	}

	return append(builtins,
		&fixedBufferView{c: c},
		&valueTypeView{c: c},
	)
}

// typeParamView passes a generic parameter through: the view of T is
// whatever view the instantiation supplies for T.
type typeParamView struct{}

func (*typeParamView) IsDirectAccess() bool { return false }

func (*typeParamView) match(t *typegraph.Type, _ Usage) bool {
	return t.Kind == typegraph.KindTypeParam
}

func (*typeParamView) ViewType(t *typegraph.Type) string {
	return t.ID.Name
}

// scalarView is the direct view of one basic kind.
type scalarView struct {
	c    *Catalog
	kind typegraph.BasicKind
}

func (*scalarView) IsDirectAccess() bool { return true }

func (v *scalarView) match(t *typegraph.Type, u Usage) bool {
	t = t.Deref()
	return u.byValue() && t.Kind == typegraph.KindBasic && t.Basic == v.kind
}

func (v *scalarView) ViewType(t *typegraph.Type) string {
	return v.c.runtime(v.runtimeName()) + "[" + v.c.TypeSyntax(t.Deref()) + "]"
}

func (v *scalarView) ValueType(t *typegraph.Type) string {
	return v.c.TypeSyntax(t.Deref())
}

func (v *scalarView) runtimeName() string {
	switch {
	case v.kind == typegraph.BasicBool:
		return "Bool"
	case v.kind == typegraph.BasicString:
		return "Text"
	case v.kind.IsFloat():
		return "Float"
	case v.kind.IsUnsigned():
		return "Unsigned"
	default:
		return "Integer"
	}
}

// fixedBufferView views an inline buffer of serializable elements.
type fixedBufferView struct {
	c *Catalog
}

func (*fixedBufferView) IsDirectAccess() bool { return false }

func (v *fixedBufferView) match(t *typegraph.Type, u Usage) bool {
	t = t.Deref()
	return u.byValue() && t.Kind == typegraph.KindFixedBuffer && v.c.isSerializable(t.Elem)
}

func (v *fixedBufferView) ViewType(t *typegraph.Type) string {
	elem := t.Deref().Elem
	return v.c.runtime("FixedBuffer") + "[" + v.c.resolvedView(elem, UsageValueField).ViewType(elem) + "]"
}

// valueTypeView is the direct view of a configured structured value type.
type valueTypeView struct {
	c *Catalog
}

func (*valueTypeView) IsDirectAccess() bool { return true }

func (v *valueTypeView) match(t *typegraph.Type, u Usage) bool {
	t = t.Deref()
	return u.byValue() && t.Container == nil && v.c.valueTypes[t.ID]
}

func (v *valueTypeView) ViewType(t *typegraph.Type) string {
	return v.c.runtime("Value") + "[" + v.c.TypeSyntax(t.Deref()) + "]"
}

func (v *valueTypeView) ValueType(t *typegraph.Type) string {
	return v.c.TypeSyntax(t.Deref())
}

// unsupportedView is the sink for types no other view can represent.
type unsupportedView struct {
	c *Catalog
}

func (*unsupportedView) IsDirectAccess() bool { return false }

func (v *unsupportedView) ViewType(*typegraph.Type) string {
	return v.c.runtime("Unsupported")
}
