package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/haystack-rest/haystack-go/pkg/value"
)

// RunAbout runs the about command.
func RunAbout(args []string, stdout, stderr io.Writer) int {
	opts, err := parseCommonArgs("about", args)
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

	about, err := e.client.About(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCallError
	}

	if opts.JSON {
		return writeDictJSON(stdout, stderr, about)
	}
	writeDict(stdout, about)
	return exitSuccess
}

// writeDictJSON renders a dict as a single-row grid in Hayson form.
func writeDictJSON(stdout, stderr io.Writer, d value.Dict) int {
	b := value.NewGridBuilder()
	cells := make(map[string]value.Value, len(d.Names()))
	for _, n := range d.Names() {
		b.Col(n)
		v, _ := d.Get(n)
		cells[n] = v
	}
	b.Row(cells)
	g, err := b.Build()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	if err := writeGrid(stdout, g, commonOptions{JSON: true}); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	return exitSuccess
}

// parseCommonArgs parses the flags shared by the no-argument commands.
func parseCommonArgs(name string, args []string) (commonOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	opts := commonOptions{}
	addCommonFlags(fs, &opts)
	fs.Usage = func() {}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return opts, nil
}

func addCommonFlags(fs *flag.FlagSet, opts *commonOptions) {
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to YAML config file")
	fs.BoolVar(&opts.JSON, "json", false, "Output as Hayson JSON")
	fs.BoolVar(&opts.CSV, "csv", false, "Output as CSV")
}
