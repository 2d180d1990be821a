package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/haystack-rest/haystack-go/pkg/value"
)

// RunNav runs the nav command.
func RunNav(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("nav", flag.ContinueOnError)
	opts := commonOptions{}
	addCommonFlags(fs, &opts)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	var navID value.Value
	if fs.NArg() > 0 {
		ref, err := parseRef(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		navID = ref
	}

	e, err := buildEnv(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer e.closer()

	g, err := e.client.Nav(context.Background(), navID)
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

// parseRef parses a command-line identifier with an optional leading @.
func parseRef(s string) (value.Ref, error) {
	return value.NewRef(strings.TrimPrefix(s, "@"), "")
}
