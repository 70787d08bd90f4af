package schema

import (
	"gopkg.in/yaml.v3"

	"view-generator/internal/errors"
)

// File is the root of a declaration file.
type File struct {
	// Version of the declaration format.
	Version string `toml:"version,omitempty" yaml:"version,omitempty"`

	// Namespaces lists the declared namespaces.
	Namespaces []Namespace `toml:"namespaces" yaml:"namespaces"`

	// Path is the file the declarations were read from.
	Path string `toml:"-" yaml:"-"`
}

// Namespace groups declarations generated into one Go package.
type Namespace struct {
	// Name is the slash-separated namespace, e.g. "game/items".
	Name string `toml:"name" yaml:"name"`

	// Package is the Go import path of the declared types.
	// Defaults to Name.
	Package string `toml:"package,omitempty" yaml:"package,omitempty"`

	// PackageName is the Go package name. Defaults to the last element of
	// Package.
	PackageName string `toml:"package_name,omitempty" yaml:"package_name,omitempty"`

	// Imports are namespaces searched for unqualified names.
	Imports StringArray `toml:"imports,omitempty" yaml:"imports,omitempty"`

	Types []TypeDecl `toml:"types" yaml:"types"`
}

// TypeDecl declares one type.
type TypeDecl struct {
	Name string `toml:"name" yaml:"name"`

	// Kind is struct (default), class, enum or interface.
	Kind string `toml:"kind,omitempty" yaml:"kind,omitempty"`

	// Root marks the type for view generation.
	Root bool `toml:"root,omitempty" yaml:"root,omitempty"`

	// Base is the type expression of the base type.
	Base string `toml:"base,omitempty" yaml:"base,omitempty"`

	// Params are the generic parameter names.
	Params StringArray `toml:"params,omitempty" yaml:"params,omitempty"`

	// Underlying is the integer type of an enum. Defaults to int32.
	Underlying string `toml:"underlying,omitempty" yaml:"underlying,omitempty"`

	Members []MemberDecl `toml:"members,omitempty" yaml:"members,omitempty"`
	Fields  []FieldDecl  `toml:"fields,omitempty" yaml:"fields,omitempty"`
	Nested  []TypeDecl   `toml:"nested,omitempty" yaml:"nested,omitempty"`
}

// MemberDecl is one enum constant.
type MemberDecl struct {
	Name string `toml:"name" yaml:"name"`

	// Value defaults to the previous member's value plus one.
	Value *int64 `toml:"value,omitempty" yaml:"value,omitempty"`
}

// UnmarshalYAML accepts a bare member name as well as a mapping.
func (m *MemberDecl) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		m.Name = value.Value
		return nil
	}

	type plain MemberDecl

	return value.Decode((*plain)(m))
}

// FieldDecl declares one field.
type FieldDecl struct {
	Name string `toml:"name" yaml:"name"`
	Type string `toml:"type" yaml:"type"`

	// Visibility is public (default), protected, internal or private.
	Visibility string `toml:"visibility,omitempty" yaml:"visibility,omitempty"`

	// Serialize is the explicit marker: value, ref or both.
	Serialize string `toml:"serialize,omitempty" yaml:"serialize,omitempty"`

	// View is nested or ignore.
	View string `toml:"view,omitempty" yaml:"view,omitempty"`

	Static bool `toml:"static,omitempty" yaml:"static,omitempty"`
	Const  bool `toml:"const,omitempty" yaml:"const,omitempty"`
}

// StringArray is a string slice that can be unmarshaled from a single
// string or a list.
type StringArray []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringArray) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*s = StringArray{value.Value}
		return nil
	case yaml.SequenceNode:
		var multi []string
		if err := value.Decode(&multi); err != nil {
			return err
		}

		*s = multi

		return nil
	default:
		return errors.Newf("line %d: expected string or list of strings", value.Line)
	}
}
