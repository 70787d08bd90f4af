package view

import "view-generator/internal/typegraph"

// enumView is the generated view of an enum. The constant is stored in the
// integer slot and converted on access.
type enumView struct {
	c    *Catalog
	enum *typegraph.Type
}

func newEnumView(c *Catalog, t *typegraph.Type) *enumView {
	return &enumView{c: c, enum: t.Template()}
}

func (*enumView) IsDirectAccess() bool { return true }

func (v *enumView) SourceType() *typegraph.Type { return v.enum }

func (v *enumView) Path() TypePath {
	return pathOf(v.enum, v.enum.ID.Name+"View")
}

func (v *enumView) Ident() string {
	return v.c.viewIdent(v.enum)
}

func (v *enumView) ViewType(t *typegraph.Type) string {
	return v.Ident() + v.c.viewArgs(t.Deref())
}

func (v *enumView) ValueType(t *typegraph.Type) string {
	return v.c.TypeSyntax(t.Deref())
}

func (v *enumView) Open(w *Writer) error {
	ident := v.Ident()
	decl, args := v.c.typeParams(w.ScopeParams())

	return enumTemplate.Execute(w, enumData{
		Comment:  v.enum.String(),
		Ident:    ident,
		Params:   decl,
		Args:     args,
		Property: v.c.runtime("Property"),
		EnumType: v.c.TypeSyntax(v.enum),
		Members:  len(v.enum.Members),
	})
}

func (*enumView) Content(*Writer) error { return nil }

func (v *enumView) Close(w *Writer) error {
	w.Printf("\n")
	return nil
}
