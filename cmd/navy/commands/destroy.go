package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/navy/internal/core/domain"
)

func (c *CLI) newDestroyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Remove every container and network of an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := c.app.ResolveName(c.environment)

			if force, _ := cmd.Flags().GetBool("force"); !force {
				if !c.interactive(cmd.InOrStdin()) {
					return domain.ErrConfirmationRequired.With("environment", name)
				}
				ok, err := confirm(cmd, fmt.Sprintf("Destroy %s and all its containers? [y/N] ", name))
				if err != nil || !ok {
					return err
				}
			}

			return c.app.Destroy(cmd.Context(), name)
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Destroy without asking for confirmation")
	return cmd
}

// confirm asks prompt on the command's output and reads a yes/no answer.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if _, err := fmt.Fprint(cmd.OutOrStdout(), prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil //nolint:nilerr // EOF answers no
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
		return false, err
	}
}
