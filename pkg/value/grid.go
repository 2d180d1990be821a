package value

import "sort"

// Col is a grid column definition: a name plus column-level meta.
type Col struct {
	name string
	meta Dict
}

// NewCol validates the name and creates a column definition.
func NewCol(name string, meta Dict) (Col, error) {
	if !IsTagName(name) {
		return Col{}, newValueError("Grid column name must be a valid tag name: %q", name)
	}
	return Col{name: name, meta: meta}, nil
}

// Name returns the column name.
func (c Col) Name() string { return c.name }

// Meta returns the column-level meta tags.
func (c Col) Meta() Dict { return c.meta }

// Grid is the tabular type: grid-level meta, ordered column
// definitions, and ordered rows. Every row key must name one of the
// declared columns; a row may omit a column (absent) or hold an
// explicit Null, and the two are distinct.
type Grid struct {
	meta Dict
	cols []Col
	rows []Dict
}

// NewGrid validates column uniqueness and row/column consistency and
// creates a Grid. The column and row slices are copied.
func NewGrid(meta Dict, cols []Col, rows []Dict) (*Grid, error) {
	names := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		if col.name == "" {
			return nil, newValueError("Grid column must be created with NewCol")
		}
		if _, dup := names[col.name]; dup {
			return nil, newValueError("Grid column %q declared twice", col.name)
		}
		names[col.name] = struct{}{}
	}
	for i, row := range rows {
		for name := range row.items {
			if _, ok := names[name]; !ok {
				return nil, newValueError("row %d key %q does not match a declared column", i, name)
			}
		}
	}
	g := &Grid{
		meta: meta,
		cols: append([]Col(nil), cols...),
		rows: append([]Dict(nil), rows...),
	}
	return g, nil
}

// Meta returns the grid-level meta tags.
func (g *Grid) Meta() Dict { return g.meta }

// Cols returns the column definitions in declaration order.
// The returned slice must not be modified.
func (g *Grid) Cols() []Col { return g.cols }

// ColNames returns the column names in declaration order.
func (g *Grid) ColNames() []string {
	names := make([]string, len(g.cols))
	for i, col := range g.cols {
		names[i] = col.name
	}
	return names
}

// Col returns the column definition with the given name.
func (g *Grid) Col(name string) (Col, bool) {
	for _, col := range g.cols {
		if col.name == name {
			return col, true
		}
	}
	return Col{}, false
}

// Rows returns the rows in order. The returned slice must not be
// modified.
func (g *Grid) Rows() []Dict { return g.rows }

// Row returns the row at index i.
func (g *Grid) Row(i int) Dict { return g.rows[i] }

// NumRows returns the number of rows.
func (g *Grid) NumRows() int { return len(g.rows) }

// NumCols returns the number of declared columns.
func (g *Grid) NumCols() int { return len(g.cols) }

// ColToSlice returns the cell for each row in the given column, with
// presence flags distinguishing absent cells from explicit nulls.
func (g *Grid) ColToSlice(name string) []Value {
	out := make([]Value, len(g.rows))
	for i, row := range g.rows {
		if v, ok := row.Get(name); ok {
			out[i] = v
		}
	}
	return out
}

// IsErr reports whether the grid is an error grid: its meta carries
// the err marker.
func (g *Grid) IsErr() bool {
	return g.meta.HasMarker("err")
}

// ErrDis returns the server's error display message, or "" when the
// grid is not an error grid.
func (g *Grid) ErrDis() string {
	s, _ := g.meta.Str("dis")
	return s
}

// ErrTrace returns the server's error trace, or "" when absent.
func (g *Grid) ErrTrace() string {
	s, _ := g.meta.Str("errTrace")
	return s
}

// SortRowsBy returns a new Grid with rows sorted by the comparator.
// The sort is stable; the receiver is unchanged.
func (g *Grid) SortRowsBy(less func(a, b Dict) bool) *Grid {
	rows := append([]Dict(nil), g.rows...)
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	return &Grid{meta: g.meta, cols: g.cols, rows: rows}
}

// WithMeta returns a new Grid with the meta tag set.
func (g *Grid) WithMeta(name string, v Value) (*Grid, error) {
	meta, err := g.meta.With(name, v)
	if err != nil {
		return nil, err
	}
	return &Grid{meta: meta, cols: g.cols, rows: g.rows}, nil
}

// WithCol returns a new Grid with an added or replaced column whose
// cells are produced by mapping each row. Returning nil from the
// mapper leaves the cell absent for that row.
func (g *Grid) WithCol(name string, cell func(row Dict) Value) (*Grid, error) {
	if !IsTagName(name) {
		return nil, newValueError("Grid column name must be a valid tag name: %q", name)
	}
	cols := g.cols
	if _, exists := g.Col(name); !exists {
		cols = append(append([]Col(nil), g.cols...), Col{name: name})
	}
	rows := make([]Dict, len(g.rows))
	for i, row := range g.rows {
		v := cell(row)
		if v == nil {
			rows[i] = row.Without(name)
			continue
		}
		withCell, err := row.With(name, v)
		if err != nil {
			return nil, err
		}
		rows[i] = withCell
	}
	return &Grid{meta: g.meta, cols: cols, rows: rows}, nil
}

// Kind returns KindGrid.
func (*Grid) Kind() Kind { return KindGrid }

func (*Grid) sealed() {}
