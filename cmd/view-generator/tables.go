package main

import (
	"strings"

	"github.com/spf13/cobra"

	"view-generator/internal/errors"
	"view-generator/internal/gen"
	"view-generator/internal/tables"
)

func newTablesCommand() *cobra.Command {
	var animators, materials []string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Generate only the tag, layer, animator and material tables",
		Example: `  view-generator tables --project . --animator PlayerAnimator=Assets/Player.controller
  view-generator tables --material Unlit=Assets/Shaders/Unlit.shadergraph`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			for _, a := range animators {
				src, err := parseAnimator(a)
				if err != nil {
					return err
				}

				cfg.Tables.Animators = append(cfg.Tables.Animators, src)
			}

			for _, m := range materials {
				src, err := parseMaterial(m)
				if err != nil {
					return err
				}

				cfg.Tables.Materials = append(cfg.Tables.Materials, src)
			}

			if !cfg.HasTables() {
				return errors.WithHint(errors.New("no table sources configured"),
					"pass --project, --animator or --material, or set tables in view-generator.yaml")
			}

			p := generate(cmd.Context(), cfg, false, true)
			report(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Output.Dir, p)

			if err := gen.WriteFiles(p.files, cfg.Output.Dir); err != nil {
				return err
			}

			return p.failed()
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", "", "output directory")
	flags.String("build-tag", "", "build constraint of the generated file")
	flags.String("project", "", "project directory holding ProjectSettings")
	flags.StringArrayVar(&animators, "animator", nil, "animator view as Name=path/to/controller (repeatable)")
	flags.StringArrayVar(&materials, "material", nil, "material view as Name=path/to/shader.shadergraph (repeatable)")

	return cmd
}

// parseAnimator parses a Name=path animator flag.
func parseAnimator(s string) (tables.AnimatorSource, error) {
	name, path, err := parseNamedPath("animator", s)
	return tables.AnimatorSource{Name: name, Path: path}, err
}

// parseMaterial parses a Name=path material flag.
func parseMaterial(s string) (tables.MaterialSource, error) {
	name, path, err := parseNamedPath("material", s)
	return tables.MaterialSource{Name: name, Path: path}, err
}

func parseNamedPath(flag, s string) (string, string, error) {
	name, path, ok := strings.Cut(s, "=")
	if !ok || name == "" || path == "" {
		return "", "", errors.Newf("invalid --%s %q, want Name=path", flag, s)
	}

	return name, path, nil
}
