package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/navy/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List every launched environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := c.app.Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, statuses)
			}
			if len(statuses) == 0 {
				_, err := fmt.Fprintln(out, "There are no launched navies")
				return err
			}
			return writeStatuses(out, statuses)
		},
	}
	cmd.Flags().Bool("json", false, "Print environments as JSON")
	return cmd
}

func writeStatuses(w io.Writer, statuses []app.EnvironmentStatus) error {
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		name := st.Name
		if st.Default {
			name += " (default)"
		}
		running := 0
		for _, svc := range st.Services {
			if svc.Running() {
				running++
			}
		}
		rows = append(rows, []string{
			name,
			renderState(st.State),
			strconv.Itoa(running) + "/" + strconv.Itoa(len(st.Services)),
		})
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"NAVY", "STATE", "RUNNING"}, rows))
	return err
}
