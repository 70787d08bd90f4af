package tables

import (
	"context"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"view-generator/internal/common"
	"view-generator/internal/diagnostic"
	"view-generator/internal/errors"
	"view-generator/internal/gen"
	"view-generator/internal/logger"
	"view-generator/internal/view"
)

// AnimatorSource names an animator controller and the view generated for it.
type AnimatorSource struct {
	// Name is the view type name.
	Name string `mapstructure:"name"`
	// Path is the controller file.
	Path string `mapstructure:"path"`
}

// MaterialSource names a shader and the material view generated for it.
type MaterialSource struct {
	// Name is the view type name.
	Name string `mapstructure:"name"`
	// Path is the shader graph file.
	Path string `mapstructure:"path"`
}

// Config holds configuration for table generation.
type Config struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// Filename is the name of the generated file.
	Filename string
	// BuildTag is an optional build constraint expression.
	BuildTag string
	// RuntimePackage is the import path of the runtime API.
	RuntimePackage string
	// ProjectDir is the project holding the tag manager. Empty skips the
	// tag, layer and sorting layer tables.
	ProjectDir string
	// Animators lists the animator controllers to generate views for.
	Animators []AnimatorSource
	// Materials lists the shaders to generate material views for.
	Materials []MaterialSource
}

// DefaultConfig returns the default table configuration.
func DefaultConfig() Config {
	return Config{
		PackageName:    "tables",
		OutputDir:      "./generated",
		Filename:       "tables_gen.go",
		RuntimePackage: view.DefaultRuntimePackage,
	}
}

// Generator renders the tables of one project into a single file.
type Generator struct {
	config   Config
	provider PropertyProvider
	shaders  PropertyProvider
	log      *zap.SugaredLogger
}

// NewGenerator creates a Generator reading animator parameters with
// AnimatorController and shader properties with ShaderGraph.
func NewGenerator(config Config) *Generator {
	def := DefaultConfig()

	if config.PackageName == "" {
		config.PackageName = def.PackageName
	}

	if config.Filename == "" {
		config.Filename = def.Filename
	}

	if config.RuntimePackage == "" {
		config.RuntimePackage = def.RuntimePackage
	}

	return &Generator{
		config:   config,
		provider: AnimatorController{},
		shaders:  ShaderGraph{},
		log:      logger.Named("tables"),
	}
}

// WithProvider replaces the source of animator parameters.
func (g *Generator) WithProvider(p PropertyProvider) *Generator {
	g.provider = p
	return g
}

// WithShaderProvider replaces the source of material properties.
func (g *Generator) WithShaderProvider(p PropertyProvider) *Generator {
	g.shaders = p
	return g
}

// run holds the state of one Generate call.
type run struct {
	*Generator
	w       *view.Writer
	imports *view.Imports
	diags   *diagnostic.Diagnostics
	idents  map[string]bool
}

// Generate renders the configured tables. Sources that cannot be read are
// reported as warnings and produce empty tables or accessor-less views.
func (g *Generator) Generate(ctx context.Context) (res *gen.Result) {
	res = &gen.Result{}

	header := gen.Header{
		Package:   g.config.PackageName,
		BuildTag:  g.config.BuildTag,
		OutputDir: g.config.OutputDir,
		Filename:  g.config.Filename,
	}

	defer func() {
		if r := recover(); r != nil {
			res.Fail(header, errors.AssertionFailedf("panic during table generation: %v", r))
		}
	}()

	r := &run{
		Generator: g,
		w:         view.NewWriter(),
		imports:   view.NewImports(""),
		diags:     &res.Diagnostics,
		idents:    make(map[string]bool),
	}

	views, err := r.emit(ctx)
	if err == nil {
		header.Imports = r.imports.Specs()

		var content []byte

		content, err = gen.Render(header, r.w.Bytes())
		if err == nil {
			res.File = gen.GeneratedFile{Filename: g.config.Filename, Content: content}
			res.Views = views

			g.log.Infow("generated tables", "file", g.config.Filename, "tables", views,
				"warnings", len(res.Diagnostics.Warnings))

			return res
		}
	}

	g.log.Errorw("table generation failed", "error", err)
	res.Fail(header, err)

	return res
}

func (r *run) emit(ctx context.Context) (int, error) {
	views := 0

	if r.config.ProjectDir != "" {
		if err := r.emitProject(); err != nil {
			return 0, err
		}

		views += 3
	}

	for _, src := range r.config.Animators {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		if err := r.emitAnimator(src); err != nil {
			return 0, err
		}

		views++
	}

	for _, src := range r.config.Materials {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		if err := r.emitMaterial(src); err != nil {
			return 0, err
		}

		views++
	}

	return views, nil
}

func (r *run) emitProject() error {
	for _, id := range []string{"Tag", "Layer", "SortingLayer", "TagNames", "TagValue"} {
		r.idents[id] = true
	}

	settings, err := LoadProjectSettings(r.config.ProjectDir)
	if err != nil {
		r.warn(err, "ProjectSettings")
		settings = &ProjectSettings{}
	}

	data := projectData{
		Clone: r.imports.Qualify("slices", "slices", "Clone"),
		Itoa:  r.imports.Qualify("strconv", "strconv", "Itoa"),
	}

	for i, tag := range settings.Tags {
		data.Tags = append(data.Tags, r.member("Tag", tag, strconv.Itoa(i)))
	}

	for _, l := range settings.Layers {
		data.Layers = append(data.Layers, r.member("Layer", l.Name, strconv.Itoa(l.Index)))
	}

	seen := make(map[int32]bool)

	for _, l := range settings.SortingLayers {
		if seen[l.ID] {
			r.diags.AddWarning(diagnostic.CodeMalformedSource,
				"duplicate sorting layer ID "+strconv.Itoa(int(l.ID)), "SortingLayer", l.Name)

			continue
		}

		seen[l.ID] = true
		data.SortingLayers = append(data.SortingLayers,
			r.member("SortingLayer", l.Name, strconv.Itoa(int(l.ID))))
	}

	return errors.Wrap(projectTemplate.Execute(r.w, data), "executing project template")
}

func (r *run) emitAnimator(src AnimatorSource) error {
	ident := r.unique(common.ExportName(src.Name))
	r.idents["New"+ident] = true

	data := animatorData{
		Ident:    ident,
		Source:   filepath.Base(src.Path),
		Animator: r.imports.Qualify(r.config.RuntimePackage, "viewrt", "Animator"),
	}

	if err := animatorTemplate.Execute(r.w, data); err != nil {
		return errors.Wrap(err, "executing animator template")
	}

	props, err := r.provider.Properties(src.Path)
	if err != nil {
		r.warn(err, ident)
		return nil
	}

	if err := r.emitAccessors(ident, "parameter", props, animatorAccessors); err != nil {
		return err
	}

	r.log.Debugw("animator view", "view", ident, "source", src.Path, "parameters", len(props))

	return nil
}

func (r *run) emitMaterial(src MaterialSource) error {
	ident := r.unique(common.ExportName(src.Name))
	r.idents["New"+ident] = true

	data := materialData{
		Ident:    ident,
		Source:   filepath.Base(src.Path),
		Material: r.imports.Qualify(r.config.RuntimePackage, "viewrt", "Material"),
	}

	if err := materialTemplate.Execute(r.w, data); err != nil {
		return errors.Wrap(err, "executing material template")
	}

	props, err := r.shaders.Properties(src.Path)
	if err != nil {
		r.warn(err, ident)
		return nil
	}

	if err := r.emitAccessors(ident, "property", props, materialAccessors); err != nil {
		return err
	}

	r.log.Debugw("material view", "view", ident, "source", src.Path, "properties", len(props))

	return nil
}

// emitAccessors writes the accessors of props on view. Properties whose
// kind has no accessor, or whose method names are taken, are reported and
// skipped.
func (r *run) emitAccessors(view, noun string, props []NamedProperty, accessors map[PropertyKind]accessor) error {
	methods := map[string]bool{"Target": true}

	viewrt := func(name string) string {
		return r.imports.Qualify(r.config.RuntimePackage, "viewrt", name)
	}

	for _, p := range props {
		acc, ok := accessors[p.Kind]
		if !ok {
			r.diags.AddWarning(diagnostic.CodeUnsupportedField,
				"no accessor for a "+p.Kind.String()+" "+noun, view, p.Name)

			continue
		}

		method := common.ExportName(p.Name)
		names := acc.methods(method)

		if clash := firstTaken(methods, names); clash != "" {
			r.diags.AddWarning(diagnostic.CodeUnsupportedField,
				"accessor "+clash+" is already declared", view, p.Name)

			continue
		}

		for _, n := range names {
			methods[n] = true
		}

		err := acc.tmpl.Execute(r.w, accessorData{
			View:   view,
			Method: method,
			Label:  strconv.Quote(p.Name),
			Noun:   noun,
			Viewrt: viewrt,
		})
		if err != nil {
			return errors.Wrapf(err, "executing %s accessor template", p.Kind)
		}
	}

	return nil
}

// member returns a table constant for name, prefixed with the table type.
func (r *run) member(prefix, name, value string) member {
	return member{
		Ident: r.unique(prefix + common.ExportName(name)),
		Label: strconv.Quote(name),
		Value: value,
	}
}

// unique returns base, or base with the smallest numeric suffix that is
// not yet declared, and reserves it.
func (r *run) unique(base string) string {
	id := base
	for i := 2; r.idents[id]; i++ {
		id = base + strconv.Itoa(i)
	}

	r.idents[id] = true

	return id
}

func (r *run) warn(err error, typeName string) {
	r.log.Warnw("skipping source", "error", err)
	r.diags.AddWarning(diagnostic.CodeMalformedSource, err.Error(), typeName, "")
}

func firstTaken(taken map[string]bool, names []string) string {
	for _, n := range names {
		if taken[n] {
			return n
		}
	}

	return ""
}
