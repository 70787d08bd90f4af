package main

import (
	"context"

	"github.com/spf13/cobra"

	"view-generator/internal/config"
	"view-generator/internal/gen"
	"view-generator/internal/logger"
)

func addSourceFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("source", config.SourceGo, `front-end: "go" or "schema"`)
	flags.String("dir", ".", "directory packages and declaration files are resolved in")
	flags.StringSlice("schema", nil, "declaration files, globs allowed (schema source)")
	flags.StringP("output", "o", "", "output directory")
	flags.String("package", "", "generated package name")
	flags.String("filename", "", "generated views file name")
	flags.String("build-tag", "", "build constraint of the generated files")
	flags.String("import-path", "", "import path of the generated package")
	flags.String("home", "", "namespace whose views get unprefixed names")
	flags.StringSlice("root", nil, `additional root types, e.g. "example.com/game.Player"`)
	flags.String("project", "", "project directory holding ProjectSettings")
}

func newGenCommand() *cobra.Command {
	var (
		watch       bool
		failOnError bool
	)

	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate the views and tables files",
		Long: `Generate resolves every root type and writes the views file. When tables
are configured the tables file is written as well.

A fatal error does not abort the command: the file is replaced by one that
describes the failure in a comment. Use --fail-on-error to exit non-zero.`,
		Example: `  view-generator gen ./...
  view-generator gen --source schema --schema 'schemas/*.yaml' -o views
  view-generator gen --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			run := func(ctx context.Context) error {
				p := generate(ctx, cfg, true, true)
				report(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Output.Dir, p)

				if err := gen.WriteFiles(p.files, cfg.Output.Dir); err != nil {
					return err
				}

				if failOnError {
					return p.failed()
				}

				return nil
			}

			if err := run(cmd.Context()); err != nil && !watch {
				return err
			}

			if !watch {
				return nil
			}

			return watchSources(cmd.Context(), cfg, func(ctx context.Context) {
				if err := run(ctx); err != nil {
					logger.Logger.Errorw("regeneration failed", "error", err)
				}
			})
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when sources change")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "exit non-zero when generation fails")

	return cmd
}
