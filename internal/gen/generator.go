package gen

import (
	"bytes"
	"context"
	"go/format"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"view-generator/internal/diagnostic"
	"view-generator/internal/errors"
	"view-generator/internal/logger"
	"view-generator/internal/typegraph"
	"view-generator/internal/view"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// Filename is the name of the generated file.
	Filename string
	// BuildTag is an optional build constraint expression.
	BuildTag string
	// View configures view resolution.
	View view.Options
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName: "views",
		OutputDir:   "./generated",
		Filename:    "views_gen.go",
		View:        view.DefaultOptions(),
	}
}

// Loader produces the type graph of one run.
type Loader func(ctx context.Context) (typegraph.Provider, error)

// Static returns a Loader for an already built provider.
func Static(p typegraph.Provider) Loader {
	return func(context.Context) (typegraph.Provider, error) {
		return p, nil
	}
}

// Result is the outcome of one run.
type Result struct {
	// File is the generated file. After a fatal error it holds only the
	// package clause and a comment describing the failure.
	File GeneratedFile
	// Diagnostics collects per-field warnings and the fatal error, if any.
	Diagnostics diagnostic.Diagnostics
	// Views is the number of view types declared in File.
	Views int
	// Err is the fatal error of the run, or nil.
	Err error
}

// Failed reports whether the run hit a fatal error.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Generator runs view generation. A Generator may be reused; every run
// gets a fresh catalog.
type Generator struct {
	config GeneratorConfig
	log    *zap.SugaredLogger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultGeneratorConfig().Filename
	}

	if config.PackageName == "" {
		config.PackageName = DefaultGeneratorConfig().PackageName
	}

	return &Generator{config: config, log: logger.Named("gen")}
}

// Generate runs discovery, resolution, tree building and emission over the
// types produced by load. Fatal errors, panics included, do not escape:
// they are logged, recorded in the result and rendered into the output as
// a comment.
func (g *Generator) Generate(ctx context.Context, load Loader) (res *Result) {
	res = &Result{}

	defer func() {
		if r := recover(); r != nil {
			g.fail(res, errors.AssertionFailedf("panic during generation: %v", r))
		}
	}()

	content, views, err := g.run(ctx, load, &res.Diagnostics)
	if err != nil {
		g.fail(res, err)
		return res
	}

	res.File = GeneratedFile{Filename: g.config.Filename, Content: content}
	res.Views = views

	g.log.Infow("generated views", "file", g.config.Filename, "views", views,
		"warnings", len(res.Diagnostics.Warnings))

	return res
}

func (g *Generator) run(ctx context.Context, load Loader, diags *diagnostic.Diagnostics) ([]byte, int, error) {
	provider, err := load(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "loading types")
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	c, err := view.NewCatalog(provider, g.config.View)
	if err != nil {
		return nil, 0, err
	}

	defer func() { diags.Merge(c.Diagnostics()) }()

	if err := c.Discover(); err != nil {
		return nil, 0, err
	}

	if err := c.Resolve(); err != nil {
		return nil, 0, err
	}

	views := c.Generated()

	tree, err := BuildTree(views)
	if err != nil {
		return nil, 0, err
	}

	w := view.NewWriter()
	if err := NewEmitter(w).Emit(tree); err != nil {
		return nil, 0, err
	}

	formatted, err := Render(Header{
		Package:   g.config.PackageName,
		BuildTag:  g.config.BuildTag,
		OutputDir: g.config.OutputDir,
		Filename:  g.config.Filename,
		Imports:   c.Imports().Specs(),
	}, w.Bytes())
	if err != nil {
		return nil, 0, err
	}

	return formatted, len(views), nil
}

// Header describes the file a rendered body is placed in.
type Header struct {
	Package  string
	BuildTag string
	// OutputDir and Filename locate the debug sidecar written when the
	// assembled source does not format.
	OutputDir string
	Filename  string
	Imports   []view.ImportSpec
}

// Render assembles the generated file around body and formats it.
func Render(h Header, body []byte) ([]byte, error) {
	var buf bytes.Buffer

	err := fileTemplate.Execute(&buf, fileData{
		Package:  h.Package,
		BuildTag: h.BuildTag,
		Imports:  h.Imports,
		Body:     string(body),
	})
	if err != nil {
		return nil, errors.Wrap(err, "executing file template")
	}

	src := buf.Bytes()

	formatted, err := format.Source(src)
	if err != nil {
		_ = writeDebugUnformatted(h.OutputDir, h.Filename, src)
		return nil, errors.Wrap(err, "formatting generated code")
	}

	return formatted, nil
}

type fileData struct {
	Package  string
	BuildTag string
	Imports  []view.ImportSpec
	Body     string
	Failure  string
}

var fileTemplate = template.Must(template.New("file").Parse(
	`// Code generated by view-generator. DO NOT EDIT.
{{if .BuildTag}}
//go:build {{.BuildTag}}
{{end}}
package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{end}}
{{- .Body}}
{{- if .Failure}}
/*
view-generator failed:

{{.Failure}}
*/
{{end}}`))

// fail replaces the result with the failure file. The partial output of
// the run is discarded.
func (g *Generator) fail(res *Result, err error) {
	g.log.Errorw("generation failed", "error", err)

	res.Fail(Header{
		Package:  g.config.PackageName,
		BuildTag: g.config.BuildTag,
		Filename: g.config.Filename,
	}, err)
}

// Fail records err as the fatal error of the run and replaces File with
// the package clause of h followed by a comment describing err.
func (r *Result) Fail(h Header, err error) {
	r.Err = err
	r.Views = 0
	r.Diagnostics.AddError(diagnostic.CodeFatal, err.Error(), "", "")

	var buf bytes.Buffer

	_ = fileTemplate.Execute(&buf, fileData{
		Package:  h.Package,
		BuildTag: h.BuildTag,
		Failure:  failureText(err),
	})

	content := buf.Bytes()
	if formatted, ferr := format.Source(content); ferr == nil {
		content = formatted
	}

	r.File = GeneratedFile{Filename: h.Filename, Content: content}
}

// failureText renders err for a block comment.
func failureText(err error) string {
	text := err.Error()
	if hints := errors.FlattenHints(err); hints != "" {
		text += "\n\nhint: " + hints
	}

	return strings.ReplaceAll(text, "*/", "* /")
}
