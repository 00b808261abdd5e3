package commands

import (
	"github.com/spf13/cobra"

	"github.com/efoft/query-builder/internal/cli/output"
	"github.com/efoft/query-builder/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered SQL dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer

			names := dialect.List()
			if r.Mode() == output.ModeJSON {
				return r.JSON(map[string]any{"dialects": names})
			}

			rows := make([][]any, 0, len(names))
			for _, name := range names {
				d, err := dialect.Get(name)
				if err != nil {
					return err
				}
				quoted, err := d.Quote("t.column")
				if err != nil {
					return err
				}
				rows = append(rows, []any{name, quoted})
			}
			r.Table([]any{"dialect", "example"}, rows)
			return nil
		},
	}
}
