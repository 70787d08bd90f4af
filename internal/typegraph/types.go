package typegraph

import (
	"strconv"
	"strings"

	"view-generator/internal/common"
)

// ID identifies a declared type by namespace and name.
// Namespaces are slash-separated: a Go import path, or a dotted schema
// namespace with dots replaced by slashes. Universe types have no namespace.
type ID struct {
	Namespace string // e.g., "example.com/game/inventory"
	Name      string // e.g., "Item"
}

// String returns "namespace.Name", or just the name for universe types.
func (id ID) String() string {
	if id.Namespace == "" {
		return id.Name
	}

	return id.Namespace + "." + id.Name
}

// ParseID parses the String form of an ID. The name is everything after the
// last dot, so "example.com/game.Item" splits as expected.
func ParseID(s string) ID {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return ID{Name: s}
	}

	return ID{Namespace: s[:i], Name: s[i+1:]}
}

// Segments splits the namespace into its path segments.
func (id ID) Segments() []string {
	if id.Namespace == "" {
		return nil
	}

	return strings.Split(id.Namespace, "/")
}

// Kind classifies the shape of a type.
type Kind int

const (
	KindUnknown     Kind = iota
	KindBasic            // bool, numbers, string
	KindStruct           // value aggregate
	KindClass            // reference aggregate (schema front-end only)
	KindEnum             // named integer with declared members
	KindInterface        // polymorphic slot
	KindTypeParam        // generic parameter
	KindPointer          // pointer to Elem
	KindArray            // resizable array of Elem
	KindList             // resizable list of Elem
	KindFixedBuffer      // Len elements of Elem stored inline
	KindMap              // Key to Elem
	KindUnsupported      // channels, functions and the like
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindInterface:
		return "interface"
	case KindTypeParam:
		return "type parameter"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindList:
		return "list"
	case KindFixedBuffer:
		return "fixed buffer"
	case KindMap:
		return "map"
	case KindUnsupported:
		return "unsupported"
	default:
		return common.UnknownStr
	}
}

// IsAggregate reports whether values of this kind have fields.
func (k Kind) IsAggregate() bool {
	return k == KindStruct || k == KindClass
}

// IsSequence reports whether this kind is a resizable array or list.
func (k Kind) IsSequence() bool {
	return k == KindArray || k == KindList
}

// Member is one declared enum constant.
type Member struct {
	Name  string
	Value int64
}

// Type describes a declared or composite type.
type Type struct {
	ID   ID
	Kind Kind

	// PkgPath is the Go import path that declares the type, empty for
	// universe types and types declared in the output package.
	PkgPath string
	// PkgName is the Go package name for PkgPath.
	PkgName string

	// Container is the enclosing declared type for nested declarations.
	Container *Type
	// TypeParams are the parameters of an open generic definition.
	TypeParams []*Type
	// TypeArgs and Origin are set on closed instantiations.
	TypeArgs []*Type
	Origin   *Type

	// Elem is the element of pointers, sequences, fixed buffers and maps.
	Elem *Type
	// Key is the key type of maps.
	Key *Type
	// Len is the length of fixed buffers.
	Len int
	// Basic is the basic kind of basic types and the storage of enums.
	Basic BasicKind

	// Base is the parent aggregate, nil at the top of the chain.
	Base *Type
	// Fields are the declared fields, in declaration order.
	Fields []*Field
	// Members are the enum constants, in declaration order.
	Members []Member
}

// IsGeneric reports whether t is an open generic definition.
func (t *Type) IsGeneric() bool {
	return len(t.TypeParams) > 0
}

// IsInstance reports whether t is a closed instantiation of a generic type.
func (t *Type) IsInstance() bool {
	return t.Origin != nil
}

// Template returns the open generic definition for an instantiation, or t.
func (t *Type) Template() *Type {
	if t.Origin != nil {
		return t.Origin
	}

	return t
}

// IsNamed returns true if the type has a declared name.
func (t *Type) IsNamed() bool {
	return t.ID.Name != ""
}

// Deref strips any number of pointer levels.
func (t *Type) Deref() *Type {
	for t != nil && t.Kind == KindPointer {
		t = t.Elem
	}

	return t
}

// String returns a Go-like display form of the type for messages.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case KindPointer:
		return "*" + t.Elem.String()
	case KindArray, KindList:
		return "[]" + t.Elem.String()
	case KindFixedBuffer:
		return "[" + strconv.Itoa(t.Len) + "]" + t.Elem.String()
	case KindMap:
		return "map[" + t.Key.String() + "]" + t.Elem.String()
	}

	name := t.ID.Name
	if t.Container != nil {
		name = t.Container.ID.Name + "." + name
	}

	if t.ID.Namespace != "" && t.Kind != KindTypeParam {
		name = t.ID.Namespace + "." + name
	}

	if len(t.TypeArgs) > 0 {
		args := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = a.String()
		}

		name += "[" + strings.Join(args, ", ") + "]"
	}

	return name
}

// Visibility is the declared accessibility of a field.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityInternal
	VisibilityProtected
	VisibilityPublic
)

// String returns a human-readable representation of the Visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityInternal:
		return "internal"
	case VisibilityProtected:
		return "protected"
	case VisibilityPublic:
		return "public"
	default:
		return common.UnknownStr
	}
}

// Marker is the set of explicit serialization markers on a field.
type Marker uint8

const (
	MarkerNone      Marker = 0
	MarkerValue     Marker = 1 << 0
	MarkerReference Marker = 1 << 1
	MarkerBoth             = MarkerValue | MarkerReference
)

// Has reports whether every bit of m2 is set in m.
func (m Marker) Has(m2 Marker) bool {
	return m&m2 == m2 && m2 != 0
}

// Overrides are per-field generator directives.
type Overrides struct {
	// ForceNested exposes a direct-access field through its view instead.
	ForceNested bool
	// Ignore drops the field entirely.
	Ignore bool
}

// Field describes one declared field of an aggregate.
type Field struct {
	Name  string
	Type  *Type
	Owner *Type

	Static      bool
	Const       bool
	FixedBuffer bool
	Visibility  Visibility
	Marker      Marker
	Overrides   Overrides
}

// String returns "Owner.Name".
func (f *Field) String() string {
	if f.Owner == nil {
		return f.Name
	}

	return f.Owner.ID.Name + "." + f.Name
}
