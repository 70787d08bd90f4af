package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"view-generator/internal/errors"
	"view-generator/internal/gen"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Report generated files that are out of date",
		Long: `Check runs generation in memory and compares the result with the files in
the output directory. It fails when a file is missing, differs, or when
generation itself fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			p := generate(cmd.Context(), cfg, true, true)

			if err := p.failed(); err != nil {
				return errors.Wrap(err, "generation failed")
			}

			stale := 0

			for _, f := range p.files {
				path := filepath.Join(cfg.Output.Dir, f.Filename)

				drifted, err := gen.Drifted(f, cfg.Output.Dir)
				if err != nil {
					return err
				}

				if drifted {
					stale++

					errColor.Fprintf(cmd.OutOrStdout(), "✗ %s is out of date\n", path)

					continue
				}

				okColor.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
			}

			if stale > 0 {
				return errors.WithHint(errors.Newf("%d generated file(s) out of date", stale),
					"run view-generator gen")
			}

			return nil
		},
	}

	addSourceFlags(cmd)

	return cmd
}
