package tables

import (
	"path/filepath"
	"strconv"

	"view-generator/internal/errors"
)

// TagManagerFile is the project settings file holding tags and layers,
// relative to the project directory.
var TagManagerFile = filepath.Join("ProjectSettings", "TagManager.asset")

// Layer is a named layer slot.
type Layer struct {
	Index int
	Name  string
}

// SortingLayer is a named sorting layer.
type SortingLayer struct {
	ID   int32
	Name string
}

// ProjectSettings holds the tables read from a project's tag manager.
type ProjectSettings struct {
	Tags          []string
	Layers        []Layer
	SortingLayers []SortingLayer
}

// LoadProjectSettings reads the tag manager of the project in dir. Unnamed
// layer slots and sorting layers without a valid ID are skipped.
func LoadProjectSettings(dir string) (*ProjectSettings, error) {
	path := filepath.Join(dir, TagManagerFile)

	docs, err := readDocuments(path)
	if err != nil {
		return nil, err
	}

	var (
		s     ProjectSettings
		found bool
	)

	for _, doc := range docs {
		tm := child(doc, "TagManager")
		if tm == nil {
			continue
		}

		found = true

		for _, n := range items(child(tm, "tags")) {
			if tag, ok := scalar(n); ok && tag != "" {
				s.Tags = append(s.Tags, tag)
			}
		}

		for i, n := range items(child(tm, "layers")) {
			if name, ok := scalar(n); ok && name != "" {
				s.Layers = append(s.Layers, Layer{Index: i, Name: name})
			}
		}

		for _, n := range items(child(tm, "m_SortingLayers")) {
			name, ok := scalar(child(n, "name"))
			if !ok || name == "" {
				continue
			}

			raw, ok := scalar(child(n, "uniqueID"))
			if !ok {
				continue
			}

			id, ok := parseLayerID(raw)
			if !ok {
				continue
			}

			s.SortingLayers = append(s.SortingLayers, SortingLayer{ID: id, Name: name})
		}
	}

	if !found {
		return nil, errors.Mark(
			errors.Newf("%s declares no TagManager", path),
			errors.ErrMalformedSource)
	}

	return &s, nil
}

// parseLayerID accepts signed IDs and unsigned ones above the int32 range,
// which the host reinterprets as negative.
func parseLayerID(raw string) (int32, bool) {
	if id, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return int32(id), true
	}

	if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return int32(id), true
	}

	return 0, false
}
