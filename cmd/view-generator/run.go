package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"view-generator/internal/config"
	"view-generator/internal/diagnostic"
	"view-generator/internal/gen"
	"view-generator/internal/tables"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

// pass is the outcome of generating every configured file once.
type pass struct {
	files   []gen.GeneratedFile
	results []*gen.Result
	diags   diagnostic.Diagnostics
}

// failed returns the first fatal error of the pass.
func (p *pass) failed() error {
	for _, r := range p.results {
		if r.Failed() {
			return r.Err
		}
	}

	return nil
}

func (p *pass) add(res *gen.Result) {
	p.results = append(p.results, res)
	p.files = append(p.files, res.File)
	p.diags.Merge(res.Diagnostics)
}

// generate runs the views generator and, when tables are configured and
// requested, the tables generator.
func generate(ctx context.Context, cfg *config.Config, views, withTables bool) *pass {
	p := &pass{}

	if views {
		fe := &frontEnd{cfg: cfg}
		res := gen.NewGenerator(cfg.GeneratorConfig()).Generate(ctx, fe.loader())

		p.diags.Merge(fe.diags)
		p.add(res)
	}

	if withTables && cfg.HasTables() {
		p.add(tables.NewGenerator(cfg.TableConfig()).Generate(ctx))
	}

	return p
}

// report prints the diagnostics of p to errOut and one line per file to out.
func report(out, errOut io.Writer, dir string, p *pass) {
	for _, d := range p.diags.All() {
		switch d.Severity {
		case diagnostic.SeverityError:
			errColor.Fprint(errOut, "error: ")
		case diagnostic.SeverityWarning:
			warnColor.Fprint(errOut, "warning: ")
		default:
			fmt.Fprint(errOut, "info: ")
		}

		fmt.Fprintln(errOut, d.String())
	}

	for _, r := range p.results {
		path := filepath.Join(dir, r.File.Filename)

		if r.Failed() {
			errColor.Fprintf(out, "✗ %s", path)
			fmt.Fprintln(out, ": generation failed, see the comment in the file")

			continue
		}

		okColor.Fprintf(out, "✓ %s", path)
		fmt.Fprintf(out, " (%d types, %d warnings)\n", r.Views, len(r.Diagnostics.Warnings))
	}
}
