// Package main is the entry point for the navy CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/navy/cmd/navy/commands"
	"go.trai.ch/navy/internal/adapters/logger"
	"go.trai.ch/navy/internal/app"
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/core/ports"
	_ "go.trai.ch/navy/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// The configured logger may be what failed; report with the defaults.
		log := logger.New()
		log.SetOutput(stderr)
		report(log, stderr, err)
		return 1
	}

	redirect(components.Logger, stderr)

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		report(components.Logger, stderr, err)
		return 1
	}
	return 0
}

// redirect points loggers that support it at w.
func redirect(log ports.Logger, w io.Writer) {
	if o, ok := log.(interface{ SetOutput(w io.Writer) }); ok {
		o.SetOutput(w)
	}
}

// report prints errors navy classifies through the logger and anything else
// with its full diagnostic.
func report(log ports.Logger, stderr io.Writer, err error) {
	if domain.KindOf(err) != domain.KindUnknown {
		log.Error(err)
		return
	}
	_, _ = fmt.Fprintf(stderr, "Error: %+v\n", err)
}
