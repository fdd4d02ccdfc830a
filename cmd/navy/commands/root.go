// Package commands implements the CLI commands for navy.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/navy/internal/app"
	"go.trai.ch/navy/internal/build"
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/ui/output"
)

// Application is the application surface the commands drive.
type Application interface {
	ResolveName(name string) string
	Run(ctx context.Context, op app.Operation, name string, services []string, opts app.RunOptions) error
	PS(ctx context.Context, name string) ([]domain.RunningService, error)
	Port(ctx context.Context, name, service string, internal int) (int, error)
	Destroy(ctx context.Context, name string) error
	Status(ctx context.Context) ([]app.EnvironmentStatus, error)
	SetDefault(name string) error
}

var _ Application = (*app.App)(nil)

// CLI represents the command line interface for navy.
type CLI struct {
	app         Application
	rootCmd     *cobra.Command
	environment string
	interactive func(io.Reader) bool
}

// Option configures a CLI.
type Option func(*CLI)

// WithInteractive overrides terminal detection for confirmation prompts.
func WithInteractive(interactive bool) Option {
	return func(c *CLI) {
		c.interactive = func(io.Reader) bool { return interactive }
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "navy",
		Short:         "Run isolated Docker Compose environments side by side",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:         a,
		rootCmd:     rootCmd,
		interactive: output.IsTerminal,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().StringVarP(&c.environment, "environment", "e", "",
		"Environment to act on (defaults to the configured default)")

	for _, sc := range serviceCommands {
		rootCmd.AddCommand(c.newServiceCmd(sc))
	}
	rootCmd.AddCommand(
		c.newPSCmd(),
		c.newPortCmd(),
		c.newDestroyCmd(),
		c.newStatusCmd(),
		c.newSetDefaultCmd(),
		c.newVersionCmd(),
	)

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error writers for the root command.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

// SetInput sets the reader confirmation prompts read from.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}
