// Command kundli draws North-Indian birth charts from chart payloads.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kundli/internal/cli"
	"github.com/matzehuels/kundli/pkg/errors"
)

// Exit codes. Chart and input problems are distinguished from failures of
// the environment so scripts can tell a bad payload from a broken setup.
const (
	exitFailure     = 1
	exitBadChart    = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(report(err))
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}

// report prints err and returns the process exit code for it.
func report(err error) int {
	if stderrors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	fmt.Fprintln(os.Stderr, "Error:", errors.UserMessage(err))

	switch errors.KindOf(err) {
	case errors.KindInput, errors.KindChart:
		return exitBadChart
	}
	return exitFailure
}
