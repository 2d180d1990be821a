package value

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSitesGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGridBuilder().
		Col("id").
		Col("dis").
		Col("area").
		Row(map[string]Value{"id": MustRef("site-1", ""), "dis": Str("Site 1"), "area": NumUnit(1000, "m²")}).
		Row(map[string]Value{"id": MustRef("site-2", ""), "dis": Str("Site 2")}).
		Row(map[string]Value{"id": MustRef("site-3", ""), "dis": Str("Site 3"), "area": Null{}}).
		Build()
	require.NoError(t, err)
	return g
}

func TestGridAbsentVsNull(t *testing.T) {
	g := buildSitesGrid(t)

	// Row 1 omits area entirely: absent.
	_, present := g.Row(1).Get("area")
	assert.False(t, present)

	// Row 2 holds an explicit Null: present.
	v, present := g.Row(2).Get("area")
	assert.True(t, present)
	assert.Equal(t, KindNull, v.Kind())
}

func TestGridRejectsUndeclaredRowKey(t *testing.T) {
	meta := MustDict(map[string]Value{"ver": Str("3.0")})
	col, err := NewCol("dis", Dict{})
	require.NoError(t, err)

	row := MustDict(map[string]Value{"other": Str("x")})
	_, err = NewGrid(meta, []Col{col}, []Dict{row})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "other")
}

func TestGridRejectsDuplicateCols(t *testing.T) {
	meta := MustDict(map[string]Value{"ver": Str("3.0")})
	a, _ := NewCol("dis", Dict{})
	b, _ := NewCol("dis", Dict{})
	_, err := NewGrid(meta, []Col{a, b}, nil)
	assert.Error(t, err)
}

func TestEmptyGridIsLegal(t *testing.T) {
	g, err := NewGridBuilder().Col("dis").Build()
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumRows())
	assert.Equal(t, 1, g.NumCols())
}

func TestErrorGrid(t *testing.T) {
	g, err := NewGridBuilder().
		Meta("err", Marker{}).
		Meta("dis", Str("Invalid expression")).
		Meta("errTrace", Str("sys::ParseErr: ...")).
		Col("empty").
		Build()
	require.NoError(t, err)

	assert.True(t, g.IsErr())
	assert.Equal(t, "Invalid expression", g.ErrDis())
	assert.Equal(t, "sys::ParseErr: ...", g.ErrTrace())

	plain := buildSitesGrid(t)
	assert.False(t, plain.IsErr())
}

func TestSortRowsByReturnsNewGrid(t *testing.T) {
	g, err := GridFromRows([]map[string]Value{
		{"id": Str("b")},
		{"id": Str("d")},
		{"id": Str("a")},
		{"id": Str("c")},
	})
	require.NoError(t, err)

	sorted := g.SortRowsBy(func(a, b Dict) bool {
		as, _ := a.Str("id")
		bs, _ := b.Str("id")
		return as < bs
	})

	first, _ := g.Row(0).Str("id")
	assert.Equal(t, "b", first, "original grid unchanged")

	got := make([]string, 0, sorted.NumRows())
	for _, row := range sorted.Rows() {
		s, _ := row.Str("id")
		got = append(got, s)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestWithCol(t *testing.T) {
	g := buildSitesGrid(t)

	g2, err := g.WithCol("upper", func(row Dict) Value {
		dis, _ := row.Str("dis")
		return Str(strings.ToUpper(dis))
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.NumCols(), "original grid unchanged")
	assert.Equal(t, 4, g2.NumCols())

	v, ok := g2.Row(0).Get("upper")
	require.True(t, ok)
	assert.Equal(t, Str("SITE 1"), v)
}

func TestGridFromRowsSortsColumns(t *testing.T) {
	g, err := GridFromRows([]map[string]Value{
		{"filter": Str("site"), "limit": Num(10)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"filter", "limit"}, g.ColNames())
}

func TestGridFromRowsEmpty(t *testing.T) {
	g, err := GridFromRows(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumRows())
	assert.Equal(t, []string{"empty"}, g.ColNames())
}

func TestGridEquality(t *testing.T) {
	a := buildSitesGrid(t)
	b := buildSitesGrid(t)
	assert.True(t, Equal(a, b))

	c, err := a.WithMeta("dis", Str("changed"))
	require.NoError(t, err)
	assert.False(t, Equal(a, c))
}

func TestWriteCSV(t *testing.T) {
	g := buildSitesGrid(t)

	var buf bytes.Buffer
	require.NoError(t, g.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,dis,area", lines[0])
	assert.Equal(t, "@site-1,Site 1,1000m²", lines[1])
	// Absent and null both collapse to empty fields in CSV.
	assert.Equal(t, "@site-2,Site 2,", lines[2])
	assert.Equal(t, "@site-3,Site 3,", lines[3])
}
