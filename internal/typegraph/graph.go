package typegraph

import (
	"fmt"
	"strings"

	"view-generator/internal/errors"
)

// Provider supplies root declarations and per-field metadata to the catalog.
type Provider interface {
	// RootTypes returns the declared types to generate views for, in a
	// deterministic order.
	RootTypes() []*Type
	// Fields returns the declared fields of an aggregate in declaration order.
	Fields(t *Type) []*Field
	// BaseType returns the parent aggregate, or nil.
	BaseType(t *Type) *Type
	// SerializationMarker returns the explicit markers on a field.
	SerializationMarker(f *Field) Marker
	// FieldOverrides returns the generator directives on a field.
	FieldOverrides(f *Field) Overrides
	// Lookup finds a declared type by ID.
	Lookup(id ID) (*Type, bool)
}

// DerivesFrom reports whether a type in t's base chain, t excluded,
// satisfies match. Chains are walked through p and compared by template;
// a cyclic chain terminates.
func DerivesFrom(p Provider, t *Type, match func(base *Type) bool) bool {
	seen := map[*Type]bool{}
	for cur := p.BaseType(t.Template()); cur != nil && !seen[cur.Template()]; cur = p.BaseType(cur.Template()) {
		if match(cur.Template()) {
			return true
		}

		seen[cur.Template()] = true
	}

	return false
}

// compositeKey identifies an unnamed or instantiated type structurally.
type compositeKey struct {
	kind   Kind
	elem   *Type
	key    *Type
	n      int
	origin *Type
	args   string
}

// Graph is an in-memory Provider. Composite constructors return one *Type
// per structurally distinct type so identity comparison works.
type Graph struct {
	types      map[ID]*Type
	order      []*Type
	roots      []*Type
	rootSet    map[*Type]bool
	basics     map[string]*Type
	composites map[compositeKey]*Type
}

var _ Provider = (*Graph)(nil)

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		types:      make(map[ID]*Type),
		rootSet:    make(map[*Type]bool),
		basics:     make(map[string]*Type),
		composites: make(map[compositeKey]*Type),
	}
}

// Add registers a declared type. Nested declarations are registered under
// their own ID; the Container link carries the nesting.
func (g *Graph) Add(t *Type) error {
	id := g.declID(t)
	if existing, ok := g.types[id]; ok && existing != t {
		return errors.Newf("type %s declared twice", id)
	}

	g.types[id] = t
	g.order = append(g.order, t)

	return nil
}

// declID is the lookup key for a declaration: nested types are keyed by
// the dotted container chain, e.g. "game.Outer.Inner".
func (g *Graph) declID(t *Type) ID {
	var names []string
	for cur := t; cur != nil; cur = cur.Container {
		names = append([]string{cur.ID.Name}, names...)
	}

	return ID{Namespace: t.ID.Namespace, Name: strings.Join(names, ".")}
}

// MarkRoot flags a declared type for view generation. Marking twice is a
// no-op; roots keep the order in which they were first marked.
func (g *Graph) MarkRoot(t *Type) {
	if g.rootSet[t] {
		return
	}

	g.rootSet[t] = true
	g.roots = append(g.roots, t)
}

// Types returns all declared types in registration order.
func (g *Graph) Types() []*Type {
	return g.order
}

// Basic returns the canonical universe type for kind spelled name.
func (g *Graph) Basic(kind BasicKind, name string) *Type {
	if name == "" {
		name = kind.String()
	}

	if t, ok := g.basics[name]; ok {
		return t
	}

	t := NewBasic(kind, name)
	g.basics[name] = t

	return t
}

// PointerTo returns the canonical pointer type to elem.
func (g *Graph) PointerTo(elem *Type) *Type {
	return g.composite(compositeKey{kind: KindPointer, elem: elem}, func() *Type {
		return &Type{Kind: KindPointer, Elem: elem}
	})
}

// SequenceOf returns the canonical resizable array or list of elem.
func (g *Graph) SequenceOf(kind Kind, elem *Type) *Type {
	if !kind.IsSequence() {
		panic(fmt.Sprintf("typegraph: %s is not a sequence kind", kind))
	}

	return g.composite(compositeKey{kind: kind, elem: elem}, func() *Type {
		return &Type{Kind: kind, Elem: elem}
	})
}

// FixedBufferOf returns the canonical n-element inline buffer of elem.
func (g *Graph) FixedBufferOf(n int, elem *Type) *Type {
	return g.composite(compositeKey{kind: KindFixedBuffer, elem: elem, n: n}, func() *Type {
		return &Type{Kind: KindFixedBuffer, Elem: elem, Len: n}
	})
}

// MapOf returns the canonical map type.
func (g *Graph) MapOf(key, elem *Type) *Type {
	return g.composite(compositeKey{kind: KindMap, key: key, elem: elem}, func() *Type {
		return &Type{Kind: KindMap, Key: key, Elem: elem}
	})
}

// Instantiate returns the canonical closed instantiation of a generic
// definition. The instantiation shares the definition's identity fields.
func (g *Graph) Instantiate(origin *Type, args []*Type) *Type {
	ptrs := make([]string, len(args))
	for i, a := range args {
		ptrs[i] = fmt.Sprintf("%p", a)
	}

	key := compositeKey{origin: origin, args: strings.Join(ptrs, ",")}

	return g.composite(key, func() *Type {
		return &Type{
			ID:        origin.ID,
			Kind:      origin.Kind,
			PkgPath:   origin.PkgPath,
			PkgName:   origin.PkgName,
			Container: origin.Container,
			Origin:    origin,
			TypeArgs:  args,
			Basic:     origin.Basic,
			Base:      origin.Base,
		}
	})
}

func (g *Graph) composite(key compositeKey, build func() *Type) *Type {
	if t, ok := g.composites[key]; ok {
		return t
	}

	t := build()
	g.composites[key] = t

	return t
}

// RootTypes returns the marked roots in marking order.
func (g *Graph) RootTypes() []*Type {
	return g.roots
}

// Fields returns the declared fields of the template of t.
func (g *Graph) Fields(t *Type) []*Field {
	return t.Template().Fields
}

// BaseType returns the parent aggregate of t.
func (g *Graph) BaseType(t *Type) *Type {
	return t.Template().Base
}

// SerializationMarker returns the markers recorded on f.
func (g *Graph) SerializationMarker(f *Field) Marker {
	return f.Marker
}

// FieldOverrides returns the overrides recorded on f.
func (g *Graph) FieldOverrides(f *Field) Overrides {
	return f.Overrides
}

// Lookup finds a declared type. Nested types use the dotted container
// chain as name.
func (g *Graph) Lookup(id ID) (*Type, bool) {
	t, ok := g.types[id]

	return t, ok
}
