package view

import "text/template"

// aggregateData is the template input for an aggregate view.
type aggregateData struct {
	Comment  string
	Ident    string
	Slots    string
	Params   string
	Args     string
	Property string
	Document string
	Host     bool
	Fields   []fieldData
}

// fieldData is one accessor of an aggregate view.
type fieldData struct {
	Name      string
	Accessor  string
	Slot      string
	ViewType  string
	ValueType string
	Direct    bool
}

// enumData is the template input for an enum view.
type enumData struct {
	Comment  string
	Ident    string
	Params   string
	Args     string
	Property string
	EnumType string
	Members  int
}

var aggregateOpenTemplate = template.Must(template.New("aggregate").Parse(`
// {{.Ident}} views {{.Comment}}.
type {{.Ident}}{{.Params}} struct {
{{- if .Host}}
	target {{.Document}}
{{- else}}
	prop {{.Property}}
{{- end}}
	slots *{{.Slots}}{{.Args}}
}

type {{.Slots}}{{.Params}} struct {
{{- range .Fields}}
	{{.Accessor}} {{.ViewType}}
{{- end}}
}
{{if .Host}}
// BindDocument returns a view over the host object document d.
func ({{.Ident}}{{.Args}}) BindDocument(d {{.Document}}) {{.Ident}}{{.Args}} {
	return {{.Ident}}{{.Args}}{target: d, slots: new({{.Slots}}{{.Args}})}
}

// Target returns the bound document.
func (v {{.Ident}}{{.Args}}) Target() {{.Document}} {
	return v.target
}
{{- else}}
// Bind returns a view over p.
func ({{.Ident}}{{.Args}}) Bind(p {{.Property}}) {{.Ident}}{{.Args}} {
	return {{.Ident}}{{.Args}}{prop: p, slots: new({{.Slots}}{{.Args}})}
}

// Handle returns the bound property.
func (v {{.Ident}}{{.Args}}) Handle() {{.Property}} {
	return v.prop
}
{{- end}}
`))

var aggregateFieldsTemplate = template.Must(template.New("fields").Parse(`
{{- $v := .}}
{{- range .Fields}}

func (v {{$v.Ident}}{{$v.Args}}) {{.Slot}}() {{.ViewType}} {
	if v.slots.{{.Accessor}}.Handle() == nil {
		v.slots.{{.Accessor}} = v.slots.{{.Accessor}}.Bind({{if $v.Host}}v.target.FindProperty{{else}}v.prop.FindRelative{{end}}({{printf "%q" .Name}}))
	}

	return v.slots.{{.Accessor}}
}
{{if .Direct}}
// {{.Accessor}} returns the stored {{.Name}}.
func (v {{$v.Ident}}{{$v.Args}}) {{.Accessor}}() {{.ValueType}} {
	return v.{{.Slot}}().Value()
}

// Set{{.Accessor}} stores {{.Name}}.
func (v {{$v.Ident}}{{$v.Args}}) Set{{.Accessor}}(value {{.ValueType}}) {
	v.{{.Slot}}().SetValue(value)
}
{{- else}}
// {{.Accessor}} returns the view of {{.Name}}.
func (v {{$v.Ident}}{{$v.Args}}) {{.Accessor}}() {{.ViewType}} {
	return v.{{.Slot}}()
}
{{- end}}
{{- end}}
`))

var enumTemplate = template.Must(template.New("enum").Parse(`
// {{.Ident}} views {{.Comment}}, {{.Members}} declared constants.
type {{.Ident}}{{.Params}} struct {
	prop {{.Property}}
}

// Bind returns a view over p.
func ({{.Ident}}{{.Args}}) Bind(p {{.Property}}) {{.Ident}}{{.Args}} {
	return {{.Ident}}{{.Args}}{prop: p}
}

// Handle returns the bound property.
func (v {{.Ident}}{{.Args}}) Handle() {{.Property}} {
	return v.prop
}

// Value returns the stored constant. It is not checked against the
// declared constants.
func (v {{.Ident}}{{.Args}}) Value() {{.EnumType}} {
	return {{.EnumType}}(v.prop.IntValue())
}

// SetValue stores value.
func (v {{.Ident}}{{.Args}}) SetValue(value {{.EnumType}}) {
	v.prop.SetIntValue(int64(value))
}
`))
