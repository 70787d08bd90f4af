package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"view-generator/internal/config"
	"view-generator/internal/errors"
	"view-generator/internal/logger"
)

var configPath string

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "view-generator",
		Short: "Generate typed views over a persisted-value store",
		Long: `view-generator resolves the types reachable from annotated root types and
generates strongly-typed view wrappers for them.

Types are read from Go packages (struct tags serialize:"value|ref",
view:"nested|ignore" and the //viewgen:root directive) or from YAML/TOML
declaration files. Settings come from view-generator.yaml, VIEWGEN_*
environment variables and flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default ./view-generator.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.Bool("json", false, "log in JSON")

	rootCmd.AddCommand(newGenCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newTablesCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// loadConfig reads the configuration with the flags of cmd applied.
// Positional args replace source.patterns.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	v := config.New()

	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		v.Set("source.patterns", args)
	}

	cfg, err := config.Load(v, configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Initialize(cfg.Log.Verbose, cfg.Log.JSON); err != nil {
		return nil, err
	}

	return cfg, nil
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer logger.Sync()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errOut := rootCmd.ErrOrStderr()
		color.New(color.FgRed, color.Bold).Fprintf(errOut, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			color.New(color.FgYellow).Fprintf(errOut, "Hint: %s\n", hint)
		}
		return err
	}

	return nil
}
