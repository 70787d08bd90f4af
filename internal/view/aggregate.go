package view

import (
	"strconv"

	"view-generator/internal/common"
	"view-generator/internal/typegraph"
)

// reservedAccessors are method names every generated aggregate declares.
var reservedAccessors = []string{"Bind", "Handle", "BindDocument", "Target"}

// fieldEntry is one resolved field of an aggregate.
type fieldEntry struct {
	field    *typegraph.Field
	view     Definition
	direct   bool
	accessor string
}

// aggregateView is the generated view of a struct or class. Generic types
// get one generic view declared for the open definition.
type aggregateView struct {
	c        *Catalog
	template *typegraph.Type
	host     bool
	fields   []fieldEntry
	rendered *aggregateData
}

func newAggregateView(c *Catalog, t *typegraph.Type, host bool) *aggregateView {
	return &aggregateView{c: c, template: t.Template(), host: host}
}

func (*aggregateView) IsDirectAccess() bool { return false }

func (v *aggregateView) SourceType() *typegraph.Type { return v.template }

func (v *aggregateView) Path() TypePath {
	return pathOf(v.template, v.template.ID.Name+"View")
}

func (v *aggregateView) Ident() string {
	return v.c.viewIdent(v.template)
}

func (v *aggregateView) ViewType(t *typegraph.Type) string {
	return v.Ident() + v.c.viewArgs(t.Deref())
}

// resolve collects the stored fields of the type and every ancestor, each
// ancestor visited once, in declaration order.
func (v *aggregateView) resolve() error {
	p := v.c.provider
	v.fields = v.fields[:0]

	taken := map[string]bool{}
	for _, r := range reservedAccessors {
		taken[r] = true
	}

	visited := map[*typegraph.Type]bool{}

	for cur := v.template; cur != nil && !visited[cur.Template()]; cur = p.BaseType(cur) {
		visited[cur.Template()] = true

		for _, f := range p.Fields(cur) {
			if f.Static || f.Const {
				continue
			}

			ov := p.FieldOverrides(f)
			if ov.Ignore {
				continue
			}

			usage, ok := storedAs(f, p.SerializationMarker(f))
			if !ok {
				continue
			}

			if f.FixedBuffer && usage != UsageValueField {
				continue
			}

			view := v.c.viewOrSink(f.Type, usage, f)
			if usage == UsageValueField {
				v.c.discoverNested(f.Type, f)
			}
			direct := !ov.ForceNested && view.IsDirectAccess()

			v.fields = append(v.fields, fieldEntry{
				field:    f,
				view:     view,
				direct:   direct,
				accessor: claimAccessor(taken, f.Name, direct),
			})
		}
	}

	return nil
}

// storedAs applies the field inclusion rule: an explicit value marker
// wins, an explicit reference marker applies only without it, and
// unmarked public fields are stored by value.
func storedAs(f *typegraph.Field, m typegraph.Marker) (Usage, bool) {
	switch {
	case m.Has(typegraph.MarkerValue):
		return UsageValueField, true
	case m.Has(typegraph.MarkerReference):
		return UsageReferenceField, true
	case f.Visibility == typegraph.VisibilityPublic:
		return UsageValueField, true
	default:
		return 0, false
	}
}

// claimAccessor returns an unused exported accessor name for field name.
// Direct fields also claim the Set-prefixed setter.
func claimAccessor(taken map[string]bool, name string, direct bool) string {
	base := common.ExportName(name)

	free := func(n string) bool {
		return !taken[n] && (!direct || !taken["Set"+n])
	}

	accessor := base
	for i := 2; !free(accessor); i++ {
		accessor = base + strconv.Itoa(i)
	}

	taken[accessor] = true
	if direct {
		taken["Set"+accessor] = true
	}

	return accessor
}

// data renders the template input once; Open and Content share it.
func (v *aggregateView) data(w *Writer) aggregateData {
	if v.rendered != nil {
		return *v.rendered
	}

	ident := v.Ident()
	decl, args := v.c.typeParams(append(w.ScopeParams(), paramNames(v.template)...))

	d := aggregateData{
		Comment:  v.template.String(),
		Ident:    ident,
		Slots:    common.UnexportName(ident) + "Slots",
		Params:   decl,
		Args:     args,
		Property: v.c.runtime("Property"),
		Document: v.c.runtime("Document"),
		Host:     v.host,
	}

	for _, e := range v.fields {
		fd := fieldData{
			Name:     e.field.Name,
			Accessor: e.accessor,
			Slot:     "slot" + e.accessor,
			ViewType: e.view.ViewType(e.field.Type),
			Direct:   e.direct,
		}

		if dv, ok := e.view.(Direct); ok && e.direct {
			fd.ValueType = dv.ValueType(e.field.Type)
		}

		d.Fields = append(d.Fields, fd)
	}

	v.rendered = &d

	return d
}

func (v *aggregateView) Open(w *Writer) error {
	return aggregateOpenTemplate.Execute(w, v.data(w))
}

func (v *aggregateView) Content(w *Writer) error {
	return aggregateFieldsTemplate.Execute(w, v.data(w))
}

func (v *aggregateView) Close(w *Writer) error {
	w.Printf("\n")
	return nil
}
