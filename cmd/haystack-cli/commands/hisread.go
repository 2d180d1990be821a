package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/haystack-rest/haystack-go/pkg/client"
	"github.com/haystack-rest/haystack-go/pkg/value"
)

// RunHisRead runs the his-read command.
func RunHisRead(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("his-read", flag.ContinueOnError)
	opts := commonOptions{}
	addCommonFlags(fs, &opts)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if fs.NArg() < 2 {
		fmt.Fprintln(stderr, "Error: expected point id and range")
		printHisReadUsage(stderr)
		return exitCommandError
	}

	id, err := parseRef(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	r, err := parseHisRange(fs.Arg(1))
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

	g, err := e.client.HisRead(context.Background(), id, r)
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

// parseHisRange parses a command-line range: today, yesterday, a
// single date or a date..date span.
func parseHisRange(s string) (client.HisRange, error) {
	switch s {
	case "today":
		return client.RangeToday(), nil
	case "yesterday":
		return client.RangeYesterday(), nil
	}

	if from, to, ok := strings.Cut(s, ".."); ok {
		fromDate, err := parseDate(from)
		if err != nil {
			return client.HisRange{}, err
		}
		toDate, err := parseDate(to)
		if err != nil {
			return client.HisRange{}, err
		}
		return client.RangeDateSpan(fromDate, toDate), nil
	}

	d, err := parseDate(s)
	if err != nil {
		return client.HisRange{}, err
	}
	return client.RangeDate(d), nil
}

func parseDate(s string) (value.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return value.Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return value.NewDate(t.Year(), t.Month(), t.Day())
}

func printHisReadUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: haystack-cli his-read [options] <id> <range>

Ranges:
  today
  yesterday
  2026-07-01
  2026-07-01..2026-07-31

Examples:
  haystack-cli his-read @p.outsideTemp today
  haystack-cli his-read @p.outsideTemp 2026-07-01..2026-07-31`)
}
