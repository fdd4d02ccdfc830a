package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/navy/internal/app"
)

type serviceCommand struct {
	op    app.Operation
	short string
}

// serviceCommands are the lifecycle commands taking an optional service list.
var serviceCommands = []serviceCommand{
	{app.OpLaunch, "Create and start services, applying the environment's overrides"},
	{app.OpStart, "Start existing service containers"},
	{app.OpStop, "Stop running services"},
	{app.OpRestart, "Restart services"},
	{app.OpKill, "Kill running services"},
	{app.OpRm, "Remove stopped service containers"},
	{app.OpPull, "Pull service images"},
}

func (c *CLI) newServiceCmd(sc serviceCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(sc.op) + " [services...]",
		Short: sc.short,
		Long:  sc.short + ". Without services, every service of the environment is used.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = nil
			}
			failFast, _ := cmd.Flags().GetBool("fail-fast")
			return c.app.Run(cmd.Context(), sc.op, c.environment, args, app.RunOptions{
				FailFast: failFast,
			})
		},
	}
	if sc.op != app.OpLaunch {
		cmd.Flags().Bool("fail-fast", false, "Cancel remaining services after the first failure")
	}
	return cmd
}
