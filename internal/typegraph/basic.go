package typegraph

import "view-generator/internal/common"

// BasicKind identifies a primitive value type.
type BasicKind int

const (
	BasicInvalid BasicKind = iota
	BasicBool
	BasicInt
	BasicInt8
	BasicInt16
	BasicInt32
	BasicInt64
	BasicUint
	BasicUint8
	BasicUint16
	BasicUint32
	BasicUint64
	BasicFloat32
	BasicFloat64
	BasicString
)

// basicNames are the Go spellings, also accepted by the schema front-end.
var basicNames = map[BasicKind]string{
	BasicBool:    "bool",
	BasicInt:     "int",
	BasicInt8:    "int8",
	BasicInt16:   "int16",
	BasicInt32:   "int32",
	BasicInt64:   "int64",
	BasicUint:    "uint",
	BasicUint8:   "uint8",
	BasicUint16:  "uint16",
	BasicUint32:  "uint32",
	BasicUint64:  "uint64",
	BasicFloat32: "float32",
	BasicFloat64: "float64",
	BasicString:  "string",
}

// BasicKinds lists every valid basic kind in declaration order.
func BasicKinds() []BasicKind {
	kinds := make([]BasicKind, 0, len(basicNames))
	for k := BasicBool; k <= BasicString; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// String returns the Go spelling of the kind.
func (b BasicKind) String() string {
	if name, ok := basicNames[b]; ok {
		return name
	}

	return common.UnknownStr
}

// LookupBasic returns the kind for a Go spelling. The aliases byte and rune
// are accepted.
func LookupBasic(name string) (BasicKind, bool) {
	switch name {
	case "byte":
		return BasicUint8, true
	case "rune":
		return BasicInt32, true
	}

	for k, n := range basicNames {
		if n == name {
			return k, true
		}
	}

	return BasicInvalid, false
}

// IsInteger reports signed and unsigned integer kinds.
func (b BasicKind) IsInteger() bool {
	return b.IsSigned() || b.IsUnsigned()
}

// IsSigned reports signed integer kinds.
func (b BasicKind) IsSigned() bool {
	return b >= BasicInt && b <= BasicInt64
}

// IsUnsigned reports unsigned integer kinds.
func (b BasicKind) IsUnsigned() bool {
	return b >= BasicUint && b <= BasicUint64
}

// IsFloat reports floating point kinds.
func (b BasicKind) IsFloat() bool {
	return b == BasicFloat32 || b == BasicFloat64
}

// EnumStorageBits is the width used to decide whether an enum fits the
// store's integer slot. Platform-sized int and uint count as 32 bits.
func (b BasicKind) EnumStorageBits() int {
	switch b {
	case BasicInt8, BasicUint8:
		return 8
	case BasicInt16, BasicUint16:
		return 16
	case BasicInt, BasicUint, BasicInt32, BasicUint32:
		return 32
	case BasicInt64, BasicUint64:
		return 64
	default:
		return 0
	}
}

// NewBasic returns a fresh universe type for kind, spelled name.
// An empty name uses the canonical spelling.
func NewBasic(kind BasicKind, name string) *Type {
	if name == "" {
		name = kind.String()
	}

	return &Type{ID: ID{Name: name}, Kind: KindBasic, Basic: kind}
}
