package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ReadOptions configures the read command.
type ReadOptions struct {
	commonOptions
	Limit  int
	Filter string
}

// RunRead runs the read command.
func RunRead(args []string, stdout, stderr io.Writer) int {
	opts, err := parseReadArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.Filter == "" {
		fmt.Fprintln(stderr, "Error: no filter specified")
		printReadUsage(stderr)
		return exitCommandError
	}

	e, err := buildEnv(opts.commonOptions, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer e.closer()

	g, err := e.client.Read(context.Background(), opts.Filter, opts.Limit)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCallError
	}

	if err := writeGrid(stdout, g, opts.commonOptions); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	return exitSuccess
}

func parseReadArgs(args []string) (ReadOptions, error) {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	opts := ReadOptions{}

	addCommonFlags(fs, &opts.commonOptions)
	fs.IntVar(&opts.Limit, "limit", 0, "Maximum number of records (0 = no limit)")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	// The filter may contain spaces when unquoted in the shell.
	opts.Filter = strings.Join(fs.Args(), " ")
	return opts, nil
}

func printReadUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: haystack-cli read [options] <filter>

Options:
  --limit <n>      Maximum number of records (0 = no limit)
  --config <path>  Read settings from a YAML file
  --json           Output as Hayson JSON

Examples:
  haystack-cli read site
  haystack-cli read 'point and temp' --limit 10`)
}
