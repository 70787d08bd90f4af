package view

import (
	"strings"

	"view-generator/internal/typegraph"
)

// Segment is one step of a TypePath.
type Segment struct {
	Name string
	// Params are the generic parameter names of a container type.
	Params []string
	// Namespace marks namespace segments, as opposed to container types.
	Namespace bool
}

// TypePath is the nesting location of a generated view: namespace
// segments, then enclosing container types, then the view itself.
type TypePath struct {
	Segments []Segment
}

// Key is the structural identity of the path. Parameter lists are not part
// of the key.
func (p TypePath) Key() string {
	names := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		names[i] = s.Name
	}

	return strings.Join(names, ".")
}

// String returns the key with generic parameters spelled out.
func (p TypePath) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.Name
		if len(s.Params) > 0 {
			parts[i] += "[" + strings.Join(s.Params, ", ") + "]"
		}
	}

	return strings.Join(parts, ".")
}

// pathOf builds the path of the view named leaf for declared type t.
func pathOf(t *typegraph.Type, leaf string) TypePath {
	var segs []Segment
	for _, ns := range t.ID.Segments() {
		segs = append(segs, Segment{Name: ns, Namespace: true})
	}

	for _, c := range containers(t) {
		segs = append(segs, Segment{Name: c.ID.Name, Params: paramNames(c.Template())})
	}

	segs = append(segs, Segment{Name: leaf})

	return TypePath{Segments: segs}
}

// containers returns the enclosing declared types of t, outermost first.
func containers(t *typegraph.Type) []*typegraph.Type {
	var chain []*typegraph.Type
	for c := t.Container; c != nil; c = c.Container {
		chain = append([]*typegraph.Type{c}, chain...)
	}

	return chain
}

func paramNames(t *typegraph.Type) []string {
	if len(t.TypeParams) == 0 {
		return nil
	}

	names := make([]string, len(t.TypeParams))
	for i, p := range t.TypeParams {
		names[i] = p.ID.Name
	}

	return names
}
