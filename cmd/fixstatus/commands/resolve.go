package commands

import (
	"github.com/gmackall/flutter-fix-status/internal/ui/table"
	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <query>",
		Short: "Show the commits a reference resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, res, func(r *table.Renderer) error {
				return r.Resolution(res)
			})
		},
	}

	addOutputFlag(cmd)

	return cmd
}
