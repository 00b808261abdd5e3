// Package cli provides the command-line interface for the query builder.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/efoft/query-builder/internal/cli/commands"
	"github.com/efoft/query-builder/internal/cli/config"
	"github.com/efoft/query-builder/internal/cli/output"
)

// Version information (set at build time).
var (
	Version = "0.1.0"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qb",
		Short: "qb - SQL statement compiler",
		Long: `qb compiles YAML statement descriptions into parameterized SQL text
with named placeholders plus a placeholder-to-value binding mapping,
so literal values never appear inline in the SQL string.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			ctx := commands.WithConfig(cmd.Context(), cfg)
			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
			ctx = commands.WithRenderer(ctx, renderer)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default qb.yaml)")
	flags.String("dialect", config.DefaultDialect, "default dialect for statements without one")
	flags.String("output", config.DefaultOutput, "output mode: text or json")
	flags.BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		commands.NewBuildCommand(),
		commands.NewDialectsCommand(),
		commands.NewVersionCommand(Version),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
