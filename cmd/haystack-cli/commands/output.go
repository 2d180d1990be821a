package commands

import (
	"fmt"
	"io"

	"github.com/haystack-rest/haystack-go/pkg/hayson"
	"github.com/haystack-rest/haystack-go/pkg/value"
	"github.com/haystack-rest/haystack-go/pkg/zinc"
)

// writeGrid renders a grid as Zinc text or, with --json or --csv, as
// Hayson or CSV.
func writeGrid(w io.Writer, g *value.Grid, opts commonOptions) error {
	switch {
	case opts.JSON:
		data, err := hayson.Encode(g)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case opts.CSV:
		return g.WriteCSV(w)
	default:
		_, err := fmt.Fprint(w, zinc.Encode(g))
		return err
	}
}

// writeDict renders a dict as aligned name/value lines.
func writeDict(w io.Writer, d value.Dict) {
	names := d.Names()
	width := 0
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}
	for _, n := range names {
		v, _ := d.Get(n)
		fmt.Fprintf(w, "%-*s  %s\n", width, n, zinc.EncodeValue(v))
	}
}
