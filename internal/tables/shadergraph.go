package tables

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"view-generator/internal/errors"
)

// ShaderGraphExt is the extension of shader graph files.
const ShaderGraphExt = ".shadergraph"

const graphDataType = "UnityEditor.ShaderGraph.GraphData"

// shaderGraphKinds maps the property object types a shader graph declares
// to their kinds. Other property types (booleans, gradients, matrices)
// have no material accessor and are skipped.
var shaderGraphKinds = map[string]PropertyKind{
	"UnityEditor.ShaderGraph.Internal.ColorShaderProperty":   KindColor,
	"UnityEditor.ShaderGraph.Internal.Vector1ShaderProperty": KindFloat,
	"UnityEditor.ShaderGraph.Internal.Vector2ShaderProperty": KindVector,
	"UnityEditor.ShaderGraph.Internal.Vector3ShaderProperty": KindVector,
	"UnityEditor.ShaderGraph.Internal.Vector4ShaderProperty": KindVector,

	"UnityEditor.ShaderGraph.Internal.Texture2DShaderProperty": KindTexture,
	"UnityEditor.ShaderGraph.Internal.Texture3DShaderProperty": KindTexture,
	"UnityEditor.ShaderGraph.Internal.CubemapShaderProperty":   KindTexture,
	"UnityEditor.ShaderGraph.VirtualTextureShaderProperty":     KindTexture,
}

// sgObject is one of the JSON objects a shader graph file is made of. Only
// the fields needed to list exposed properties are decoded.
type sgObject struct {
	Type string `json:"m_Type"`
	ID   string `json:"m_ObjectId"`

	// Set on the graph data object.
	Properties []struct {
		ID string `json:"m_Id"`
	} `json:"m_Properties"`

	// Set on property objects.
	Exposed      bool   `json:"m_GeneratePropertyBlock"`
	DefaultName  string `json:"m_DefaultReferenceName"`
	OverrideName string `json:"m_OverrideReferenceName"`
}

// referenceName is the shader property name materials address.
func (o *sgObject) referenceName() string {
	if o.OverrideName != "" {
		return o.OverrideName
	}

	return o.DefaultName
}

// ShaderGraph reads the exposed properties of shader graph files, in the
// order the graph lists them. Hidden properties, properties without a
// reference name and property types without a kind are skipped.
type ShaderGraph struct{}

var _ PropertyProvider = ShaderGraph{}

// Properties implements PropertyProvider.
func (ShaderGraph) Properties(sourcePath string) ([]NamedProperty, error) {
	if ext := filepath.Ext(sourcePath); ext != ShaderGraphExt {
		return nil, errors.Mark(
			errors.Newf("%s: unsupported shader format %q, want %s", sourcePath, ext, ShaderGraphExt),
			errors.ErrMalformedSource)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", sourcePath)
	}

	objects, err := parseShaderGraph(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", sourcePath)
	}

	byID := make(map[string]*sgObject, len(objects))

	var graph *sgObject

	for _, o := range objects {
		byID[o.ID] = o

		if graph == nil && o.Type == graphDataType {
			graph = o
		}
	}

	if graph == nil {
		return nil, errors.Mark(
			errors.Newf("%s declares no %s", sourcePath, graphDataType),
			errors.ErrMalformedSource)
	}

	var props []NamedProperty

	for _, ref := range graph.Properties {
		o, ok := byID[ref.ID]
		if !ok || !o.Exposed {
			continue
		}

		kind, ok := shaderGraphKinds[o.Type]
		if !ok {
			continue
		}

		if name := o.referenceName(); name != "" {
			props = append(props, NamedProperty{Name: name, Kind: kind})
		}
	}

	return props, nil
}

// parseShaderGraph decodes the concatenated JSON objects of a shader graph
// file.
func parseShaderGraph(data []byte) ([]*sgObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var objects []*sgObject

	for {
		o := &sgObject{}

		err := dec.Decode(o)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Mark(err, errors.ErrMalformedSource)
		}

		objects = append(objects, o)
	}

	return objects, nil
}
