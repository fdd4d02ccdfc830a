package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/navy/internal/core/domain"
)

func (c *CLI) newPortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "port <service> <port>",
		Short: "Print the external port bound to a service's internal port",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			internal, err := strconv.Atoi(args[1])
			if err != nil || internal <= 0 {
				return domain.ErrInvalidPort.With("service", args[0]).With("port", args[1])
			}
			port, err := c.app.Port(cmd.Context(), c.environment, args[0], internal)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), port)
			return err
		},
	}
}
