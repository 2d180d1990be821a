package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/haystack-rest/haystack-go/pkg/value"
)

// RunOps runs the ops command.
func RunOps(args []string, stdout, stderr io.Writer) int {
	return runGridCommand("ops", args, stdout, stderr, func(ctx context.Context, e *env) (*value.Grid, error) {
		return e.client.Ops(ctx)
	})
}

// RunFormats runs the formats command.
func RunFormats(args []string, stdout, stderr io.Writer) int {
	return runGridCommand("formats", args, stdout, stderr, func(ctx context.Context, e *env) (*value.Grid, error) {
		return e.client.Formats(ctx)
	})
}

// runGridCommand handles the commands that take no arguments and
// print a single response grid.
func runGridCommand(name string, args []string, stdout, stderr io.Writer, call func(context.Context, *env) (*value.Grid, error)) int {
	opts, err := parseCommonArgs(name, args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	e, err := buildEnv(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer e.closer()

	g, err := call(context.Background(), e)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCallError
	}

	if err := writeGrid(stdout, g, opts); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	return exitSuccess
}
