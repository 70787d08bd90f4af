package schema

import (
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"view-generator/internal/errors"
)

// Format is the syntax of a declaration file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatOf returns the format for a file name by extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, errors.Mark(errors.Newf("%s: unknown declaration file extension", name), errors.ErrMalformedSource)
	}
}

// LoadFile loads and parses a declaration file from the given path.
func LoadFile(name string) (*File, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading declaration file %s", name)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}

	f.Path = name

	return f, nil
}

// LoadFiles loads every file in order.
func LoadFiles(names ...string) ([]*File, error) {
	files := make([]*File, 0, len(names))

	for _, name := range names {
		f, err := LoadFile(name)
		if err != nil {
			return nil, err
		}

		files = append(files, f)
	}

	return files, nil
}

// Parse parses declarations. Unknown keys are rejected.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&f); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "parsing declaration TOML"), errors.ErrMalformedSource)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Mark(errors.Wrap(err, "parsing declaration YAML"), errors.ErrMalformedSource)
		}
	}

	if err := applyDefaults(&f); err != nil {
		return nil, errors.Mark(err, errors.ErrMalformedSource)
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields and rejects
// declarations missing required ones.
func applyDefaults(f *File) error {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Namespaces {
		ns := &f.Namespaces[i]
		if ns.Name == "" {
			return errors.Newf("namespace %d has no name", i)
		}

		ns.Name = strings.Trim(ns.Name, "/")

		if ns.Package == "" {
			ns.Package = ns.Name
		}

		if ns.PackageName == "" {
			ns.PackageName = path.Base(ns.Package)
		}

		if err := typeDefaults(ns.Name, ns.Types); err != nil {
			return err
		}
	}

	return nil
}

func typeDefaults(where string, decls []TypeDecl) error {
	for i := range decls {
		d := &decls[i]
		if d.Name == "" {
			return errors.Newf("%s: type %d has no name", where, i)
		}

		if d.Kind == "" {
			d.Kind = KindStruct
		}

		if d.Kind == KindEnum && d.Underlying == "" {
			d.Underlying = "int32"
		}

		var next int64

		for j := range d.Members {
			m := &d.Members[j]
			if m.Value == nil {
				v := next
				m.Value = &v
			}

			next = *m.Value + 1
		}

		for j := range d.Fields {
			fd := &d.Fields[j]
			if fd.Name == "" || fd.Type == "" {
				return errors.Newf("%s.%s: field %d needs a name and a type", where, d.Name, j)
			}

			if fd.Visibility == "" {
				fd.Visibility = VisibilityPublic
			}
		}

		if err := typeDefaults(where+"."+d.Name, d.Nested); err != nil {
			return err
		}
	}

	return nil
}
