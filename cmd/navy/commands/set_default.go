package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/navy/internal/core/domain"
)

func (c *CLI) newSetDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default [navy]",
		Short: "Set the environment used when -e is not given (" + domain.DefaultEnvironmentName + " if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := domain.DefaultEnvironmentName
			if len(args) == 1 {
				name = args[0]
			}
			return c.app.SetDefault(name)
		},
	}
}
