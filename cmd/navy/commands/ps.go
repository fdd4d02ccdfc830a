package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/navy/internal/core/domain"
)

func (c *CLI) newPSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ps",
		Short: "List the services of an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := c.app.PS(cmd.Context(), c.environment)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, services)
			}
			if len(services) == 0 {
				_, err := fmt.Fprintf(out, "No services in %s\n", c.app.ResolveName(c.environment))
				return err
			}
			return writeServices(out, services)
		},
	}
	cmd.Flags().Bool("json", false, "Print services as JSON")
	return cmd
}

func writeServices(w io.Writer, services []domain.RunningService) error {
	rows := make([][]string, 0, len(services))
	for _, svc := range services {
		rows = append(rows, []string{svc.ID, svc.Name, svc.Image, renderState(svc.State), svc.Status})
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"ID", "SERVICE", "IMAGE", "STATE", "STATUS"}, rows))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
