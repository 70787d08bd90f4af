// Package tables generates the flat lookup tables that sit next to the
// views: project tags, layers and sorting layers read from the project
// settings, typed accessors over the parameters of animator controllers,
// and typed accessors over the exposed properties of shader graphs.
//
// Shader graphs are a sequence of concatenated JSON objects; the graph
// data object lists the property objects by ID. The project settings and
// animator controllers are Unity-flavoured YAML. Their documents start
// with class tags such as
//
//	--- !u!91 &9100000
//
// which are not valid YAML and are stripped before decoding. A source that
// cannot be read or parsed contributes nothing: it is reported as a
// warning and generation continues with the remaining sources.
package tables
