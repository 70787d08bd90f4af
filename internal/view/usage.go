package view

import "view-generator/internal/common"

// Usage is the position a type is viewed from.
type Usage int

const (
	// UsageRoot is a top-level annotated type.
	UsageRoot Usage = iota
	// UsageValueField is a field stored inline by value.
	UsageValueField
	// UsageReferenceField is a field stored as a polymorphic reference.
	UsageReferenceField
)

// String returns a human-readable representation of the Usage.
func (u Usage) String() string {
	switch u {
	case UsageRoot:
		return "root"
	case UsageValueField:
		return "value field"
	case UsageReferenceField:
		return "reference field"
	default:
		return common.UnknownStr
	}
}

// byValue reports whether builtin value rules apply to u.
func (u Usage) byValue() bool {
	return u != UsageReferenceField
}
