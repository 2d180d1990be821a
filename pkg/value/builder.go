package value

import "sort"

// GridBuilder assembles a Grid incrementally. Errors are collected and
// reported once by Build, so call sites can chain without checking
// each step.
type GridBuilder struct {
	meta map[string]Value
	cols []Col
	rows []Dict
	err  error
}

// NewGridBuilder creates a builder with the standard ver meta tag.
func NewGridBuilder() *GridBuilder {
	return &GridBuilder{
		meta: map[string]Value{"ver": Str("3.0")},
	}
}

// Meta sets a grid-level meta tag.
func (b *GridBuilder) Meta(name string, v Value) *GridBuilder {
	if b.err == nil {
		b.meta[name] = v
	}
	return b
}

// Col declares a column without meta.
func (b *GridBuilder) Col(name string) *GridBuilder {
	return b.ColMeta(name, Dict{})
}

// ColMeta declares a column with column-level meta.
func (b *GridBuilder) ColMeta(name string, meta Dict) *GridBuilder {
	if b.err != nil {
		return b
	}
	col, err := NewCol(name, meta)
	if err != nil {
		b.err = err
		return b
	}
	b.cols = append(b.cols, col)
	return b
}

// Row appends a row. Columns referenced by the row must have been
// declared, or be declared before Build.
func (b *GridBuilder) Row(cells map[string]Value) *GridBuilder {
	if b.err != nil {
		return b
	}
	row, err := NewDict(cells)
	if err != nil {
		b.err = err
		return b
	}
	b.rows = append(b.rows, row)
	return b
}

// Build validates and returns the Grid.
func (b *GridBuilder) Build() (*Grid, error) {
	if b.err != nil {
		return nil, b.err
	}
	meta, err := NewDict(b.meta)
	if err != nil {
		return nil, err
	}
	return NewGrid(meta, b.cols, b.rows)
}

// GridFromRows builds a grid whose columns are the sorted union of the
// row keys, the way request grids are typically assembled.
func GridFromRows(rows []map[string]Value) (*Grid, error) {
	names := make(map[string]struct{})
	for _, row := range rows {
		for name := range row {
			names[name] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	b := NewGridBuilder()
	for _, name := range sorted {
		b.Col(name)
	}
	// An empty request grid still needs at least one column to be
	// well-formed on the wire.
	if len(sorted) == 0 {
		b.Col("empty")
	}
	for _, row := range rows {
		b.Row(row)
	}
	return b.Build()
}
