package analyze

import (
	"go/ast"
	"reflect"
	"strings"

	"view-generator/internal/typegraph"
)

// Struct tag keys and the root directive.
const (
	SerializeTag  = "serialize"
	ViewTag       = "view"
	RootDirective = "//viewgen:root"
)

// markerFromTag parses the serialize tag.
func markerFromTag(tag reflect.StructTag) (typegraph.Marker, bool) {
	v, ok := tag.Lookup(SerializeTag)
	if !ok {
		return typegraph.MarkerNone, true
	}

	m := typegraph.MarkerNone

	for _, part := range strings.Split(v, ",") {
		switch strings.TrimSpace(part) {
		case "value":
			m |= typegraph.MarkerValue
		case "ref", "reference":
			m |= typegraph.MarkerReference
		case "":
		default:
			return m, false
		}
	}

	return m, true
}

// overridesFromTag parses the view tag.
func overridesFromTag(tag reflect.StructTag) (typegraph.Overrides, bool) {
	v, ok := tag.Lookup(ViewTag)
	if !ok {
		return typegraph.Overrides{}, true
	}

	var ov typegraph.Overrides

	for _, part := range strings.Split(v, ",") {
		switch strings.TrimSpace(part) {
		case "nested":
			ov.ForceNested = true
		case "ignore", "-":
			ov.Ignore = true
		case "":
		default:
			return ov, false
		}
	}

	return ov, true
}

// hasRootDirective reports whether any comment group carries the root
// directive on a line of its own.
func hasRootDirective(groups ...*ast.CommentGroup) bool {
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if strings.TrimSpace(c.Text) == RootDirective {
				return true
			}
		}
	}

	return false
}
