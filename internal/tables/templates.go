package tables

import "text/template"

// member is one constant of a generated table.
type member struct {
	Ident string
	Label string
	Value string
}

type projectData struct {
	Tags          []member
	Layers        []member
	SortingLayers []member
	Clone         string
	Itoa          string
}

var projectTemplate = template.Must(template.New("project").Parse(`
// Tag is a project tag. Values index TagNames.
type Tag int32

const (
{{- range .Tags}}
	// {{.Ident}} is the {{.Label}} tag.
	{{.Ident}} Tag = {{.Value}}
{{- end}}
)

var tagNames = [...]string{
{{- range .Tags}}
	{{.Label}},
{{- end}}
}

// TagNames returns the tag names in declaration order.
func TagNames() []string {
	return {{.Clone}}(tagNames[:])
}

// TagValue returns the tag called name.
func TagValue(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}

	return 0, false
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return "Tag(" + {{.Itoa}}(int(t)) + ")"
	}

	return tagNames[t]
}

// Layer is a layer index.
type Layer int32

const (
{{- range .Layers}}
	// {{.Ident}} is the {{.Label}} layer.
	{{.Ident}} Layer = {{.Value}}
{{- end}}
)

// Mask returns the layer mask selecting l alone.
func (l Layer) Mask() int32 {
	return 1 << l
}

func (l Layer) String() string {
	switch l {
{{- range .Layers}}
	case {{.Ident}}:
		return {{.Label}}
{{- end}}
	}

	return "Layer(" + {{.Itoa}}(int(l)) + ")"
}

// SortingLayer is a sorting layer ID.
type SortingLayer int32

const (
{{- range .SortingLayers}}
	// {{.Ident}} is the {{.Label}} sorting layer.
	{{.Ident}} SortingLayer = {{.Value}}
{{- end}}
)

func (l SortingLayer) String() string {
	switch l {
{{- range .SortingLayers}}
	case {{.Ident}}:
		return {{.Label}}
{{- end}}
	}

	return "SortingLayer(" + {{.Itoa}}(int(l)) + ")"
}
`))

type animatorData struct {
	Ident    string
	Source   string
	Animator string
}

var animatorTemplate = template.Must(template.New("animator").Parse(`
// {{.Ident}} exposes the parameters of {{.Source}}.
type {{.Ident}} struct {
	target {{.Animator}}
}

// New{{.Ident}} returns a view over a.
func New{{.Ident}}(a {{.Animator}}) {{.Ident}} {
	return {{.Ident}}{target: a}
}

// Target returns the wrapped animator.
func (v {{.Ident}}) Target() {{.Animator}} {
	return v.target
}
`))

type materialData struct {
	Ident    string
	Source   string
	Material string
}

var materialTemplate = template.Must(template.New("material").Parse(`
// {{.Ident}} exposes the properties of {{.Source}}.
type {{.Ident}} struct {
	target {{.Material}}
}

// New{{.Ident}} returns a view over m.
func New{{.Ident}}(m {{.Material}}) {{.Ident}} {
	return {{.Ident}}{target: m}
}

// Target returns the wrapped material.
func (v {{.Ident}}) Target() {{.Material}} {
	return v.target
}
`))

// accessorData is the template input for the accessors of one parameter.
type accessorData struct {
	View   string
	Method string
	Label  string
	// Noun names what the label refers to in doc comments.
	Noun string
	// Viewrt qualifies a runtime type name.
	Viewrt func(name string) string
}

type accessor struct {
	// methods lists the method names generated for a parameter.
	methods func(method string) []string
	tmpl    *template.Template
}

func valueAccessor(kind, getter, setter, goType string, damped bool) accessor {
	text := `
// {{.Method}} returns the {{.Label}} {{.Noun}}.
func (v {{.View}}) {{.Method}}() ` + goType + ` {
	return v.target.` + getter + `({{.Label}})
}

// Set{{.Method}} sets the {{.Label}} {{.Noun}}.
func (v {{.View}}) Set{{.Method}}(x ` + goType + `) {
	v.target.` + setter + `({{.Label}}, x)
}
`
	if damped {
		text += `
// Set{{.Method}}Damped moves the {{.Label}} {{.Noun}} towards x.
func (v {{.View}}) Set{{.Method}}Damped(x, dampTime, deltaTime ` + goType + `) {
	v.target.` + setter + `Damped({{.Label}}, x, dampTime, deltaTime)
}
`
	}

	return accessor{
		methods: func(m string) []string {
			if damped {
				return []string{m, "Set" + m, "Set" + m + "Damped"}
			}

			return []string{m, "Set" + m}
		},
		tmpl: template.Must(template.New(kind).Parse(text)),
	}
}

var triggerAccessor = accessor{
	methods: func(m string) []string { return []string{m, "Reset" + m} },
	tmpl: template.Must(template.New("trigger").Parse(`
// {{.Method}} sets the {{.Label}} trigger.
func (v {{.View}}) {{.Method}}() {
	v.target.SetTrigger({{.Label}})
}

// Reset{{.Method}} clears the {{.Label}} trigger.
func (v {{.View}}) Reset{{.Method}}() {
	v.target.ResetTrigger({{.Label}})
}
`)),
}

// animatorAccessors maps the kinds an animator can hold to their accessor
// emitters.
var animatorAccessors = map[PropertyKind]accessor{
	KindFloat:   valueAccessor("float", "Float", "SetFloat", "float32", true),
	KindInteger: valueAccessor("integer", "Integer", "SetInteger", "int32", false),
	KindBool:    valueAccessor("bool", "Bool", "SetBool", "bool", false),
	KindTrigger: triggerAccessor,
}

var textureAccessor = accessor{
	methods: func(m string) []string {
		return []string{m, "Set" + m, "Has" + m, m + "Offset", "Set" + m + "Offset", m + "Scale", "Set" + m + "Scale"}
	},
	tmpl: template.Must(template.New("texture").Parse(`
// {{.Method}} returns the {{.Label}} texture.
func (v {{.View}}) {{.Method}}() {{call .Viewrt "Texture"}} {
	return v.target.Texture({{.Label}})
}

// Set{{.Method}} sets the {{.Label}} texture.
func (v {{.View}}) Set{{.Method}}(x {{call .Viewrt "Texture"}}) {
	v.target.SetTexture({{.Label}}, x)
}

// Has{{.Method}} reports whether a {{.Label}} texture is assigned.
func (v {{.View}}) Has{{.Method}}() bool {
	return v.target.HasTexture({{.Label}})
}

// {{.Method}}Offset returns the {{.Label}} texture offset.
func (v {{.View}}) {{.Method}}Offset() {{call .Viewrt "Vector2"}} {
	return v.target.TextureOffset({{.Label}})
}

// Set{{.Method}}Offset sets the {{.Label}} texture offset.
func (v {{.View}}) Set{{.Method}}Offset(x {{call .Viewrt "Vector2"}}) {
	v.target.SetTextureOffset({{.Label}}, x)
}

// {{.Method}}Scale returns the {{.Label}} texture scale.
func (v {{.View}}) {{.Method}}Scale() {{call .Viewrt "Vector2"}} {
	return v.target.TextureScale({{.Label}})
}

// Set{{.Method}}Scale sets the {{.Label}} texture scale.
func (v {{.View}}) Set{{.Method}}Scale(x {{call .Viewrt "Vector2"}}) {
	v.target.SetTextureScale({{.Label}}, x)
}
`)),
}

// materialAccessors maps the kinds a material can hold to their accessor
// emitters.
var materialAccessors = map[PropertyKind]accessor{
	KindFloat:   valueAccessor("float", "Float", "SetFloat", "float32", false),
	KindInteger: valueAccessor("integer", "Integer", "SetInteger", "int32", false),
	KindColor:   valueAccessor("color", "Color", "SetColor", `{{call .Viewrt "Color"}}`, false),
	KindVector:  valueAccessor("vector", "Vector", "SetVector", `{{call .Viewrt "Vector4"}}`, false),
	KindTexture: textureAccessor,
}
