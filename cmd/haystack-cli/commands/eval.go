package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

// RunEval runs the eval command.
func RunEval(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	opts := commonOptions{}
	addCommonFlags(fs, &opts)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	expr := strings.Join(fs.Args(), " ")
	if expr == "" {
		fmt.Fprintln(stderr, "Error: no expression specified")
		fmt.Fprintln(stderr, "Usage: haystack-cli eval [options] <expr>")
		return exitCommandError
	}

	e, err := buildEnv(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer e.closer()

	g, err := e.client.Eval(context.Background(), expr)
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
