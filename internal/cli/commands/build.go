package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/efoft/query-builder/internal/cli/output"
	"github.com/efoft/query-builder/internal/loader"
)

// buildOutput is the JSON shape of a compiled statement.
type buildOutput struct {
	SQL      string         `json:"sql"`
	Bindings map[string]any `json:"bindings"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build <statement.yaml>",
		Short: "Compile a statement description into SQL and bindings",
		Long: `Compile a YAML statement description into parameterized SQL text
with named placeholders, plus the placeholder-to-value binding mapping.

The document's dialect key wins over the configured default dialect.`,
		Example: `  # Compile a statement and print SQL plus a bindings table
  qb build query.yaml

  # Compile with an explicit default dialect
  qb build query.yaml --dialect mysql

  # Machine-readable output
  qb build query.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0])
		},
	}
}

func runBuild(cmd *cobra.Command, path string) error {
	cmdCtx, err := newCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	b, err := loader.LoadFile(path, cmdCtx.Config.Dialect)
	if err != nil {
		return fmt.Errorf("failed to load statement: %w", err)
	}

	sql, bindings, err := b.Build()
	if err != nil {
		return fmt.Errorf("failed to build statement: %w", err)
	}

	if r.Mode() == output.ModeJSON {
		return r.JSON(buildOutput{SQL: sql, Bindings: bindings})
	}

	r.Println(sql)
	if len(bindings) > 0 {
		rows := make([][]any, 0, len(bindings))
		for _, tag := range b.BindingTags() {
			rows = append(rows, []any{tag, bindings[tag]})
		}
		r.Table([]any{"tag", "value"}, rows)
	}
	return nil
}
