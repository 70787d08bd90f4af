package main

import (
	"context"
	"path/filepath"
	"strings"

	"view-generator/internal/analyze"
	"view-generator/internal/config"
	"view-generator/internal/diagnostic"
	"view-generator/internal/errors"
	"view-generator/internal/gen"
	"view-generator/internal/schema"
	"view-generator/internal/typegraph"
)

// frontEnd loads the type graph of one run and keeps the diagnostics the
// front-end reported while doing so.
type frontEnd struct {
	cfg   *config.Config
	diags diagnostic.Diagnostics
}

func (f *frontEnd) loader() gen.Loader {
	return func(ctx context.Context) (typegraph.Provider, error) {
		f.diags = diagnostic.Diagnostics{}

		switch f.cfg.Source.Kind {
		case config.SourceSchema:
			return f.loadSchemas()
		default:
			return f.loadPackages(ctx)
		}
	}
}

func (f *frontEnd) loadPackages(ctx context.Context) (typegraph.Provider, error) {
	a := analyze.NewAnalyzer(analyze.Config{
		Dir:        f.cfg.Source.Dir,
		BuildFlags: f.cfg.Source.BuildFlags,
		HostObject: f.cfg.GeneratorConfig().View.HostObject,
	})

	g, err := a.LoadPackages(ctx, f.cfg.Source.Patterns...)
	f.diags.Merge(a.Diagnostics())

	if err != nil {
		return nil, err
	}

	return g, nil
}

func (f *frontEnd) loadSchemas() (typegraph.Provider, error) {
	names, err := schemaFiles(f.cfg.Source.Dir, f.cfg.Source.Schemas)
	if err != nil {
		return nil, err
	}

	files, err := schema.LoadFiles(names...)
	if err != nil {
		return nil, err
	}

	vc := f.cfg.GeneratorConfig().View

	var opts schema.Options
	if vc.HostObject != (typegraph.ID{}) {
		opts.Predeclared = append(opts.Predeclared, vc.HostObject)
	}

	opts.Predeclared = append(opts.Predeclared, vc.ValueTypes...)

	g, err := schema.Build(files, opts)
	if err != nil {
		return nil, err
	}

	return g, nil
}

// schemaFiles expands the configured declaration files relative to dir.
// A glob matching nothing is an error.
func schemaFiles(dir string, patterns []string) ([]string, error) {
	var names []string

	for _, p := range patterns {
		if !filepath.IsAbs(p) && dir != "" {
			p = filepath.Join(dir, p)
		}

		if !strings.ContainsAny(p, "*?[") {
			names = append(names, p)
			continue
		}

		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, errors.Wrapf(err, "expanding %s", p)
		}

		if len(matches) == 0 {
			return nil, errors.WithHint(errors.Newf("no declaration files match %s", p),
				"check source.schemas and source.dir")
		}

		names = append(names, matches...)
	}

	return names, nil
}
