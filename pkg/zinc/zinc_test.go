package zinc

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-rest/haystack-go/pkg/value"
)

func TestDecodeSimpleGrid(t *testing.T) {
	src := "ver:\"3.0\"\ndis\n\"Site 1\"\n\"Site 2\"\n"

	g, err := Decode(src)
	require.NoError(t, err)

	ver, ok := g.Meta().Str("ver")
	require.True(t, ok)
	assert.Equal(t, "3.0", ver)

	require.Equal(t, []string{"dis"}, g.ColNames())
	require.Equal(t, 2, g.NumRows())

	v, ok := g.Row(0).Get("dis")
	require.True(t, ok)
	assert.Equal(t, value.Str("Site 1"), v)
	v, ok = g.Row(1).Get("dis")
	require.True(t, ok)
	assert.Equal(t, value.Str("Site 2"), v)

	assert.Equal(t, src, Encode(g))
}

// Canonical grids must re-encode byte for byte.
func TestRoundTripCanonical(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "scalars",
			src: "ver:\"3.0\"\n" +
				"a,b,c,d,e\n" +
				"T,F,M,R,NA\n" +
				"N,NaN,INF,-INF,42\n",
		},
		{
			name: "numbers with units",
			src: "ver:\"3.0\"\n" +
				"area,temp,rate\n" +
				"45.5kW,75°F,5%\n",
		},
		{
			name: "meta sorted after ver",
			src: "ver:\"3.0\" dis:\"Sites\" hisStart\n" +
				"id,area unit:\"m²\"\n" +
				"@s.1,1200m²\n",
		},
		{
			name: "refs and uris",
			src: "ver:\"3.0\"\n" +
				"id,site,uri\n" +
				"@p:demo:r:25 \"Site 1\",M,`https://example.org/a`\n",
		},
		{
			name: "dates and times",
			src: "ver:\"3.0\"\n" +
				"date,time,ts\n" +
				"2010-03-11,08:30:00,2010-03-11T23:55:00-05:00 New_York\n",
		},
		{
			name: "utc datetime",
			src: "ver:\"3.0\"\n" +
				"ts\n" +
				"2009-11-09T15:39:00Z UTC\n",
		},
		{
			name: "collections",
			src: "ver:\"3.0\"\n" +
				"list,dict\n" +
				"[1,\"two\",T],{dis:\"Bldg\" site}\n",
		},
		{
			name: "coord and xstr",
			src: "ver:\"3.0\"\n" +
				"geo,file\n" +
				"C(37.5458,-77.4491),Bin(\"text/plain\")\n",
		},
		{
			name: "empty grid",
			src:  "ver:\"3.0\"\nempty\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Decode(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.src, Encode(g))
		})
	}
}

func TestAbsentVersusNullCells(t *testing.T) {
	src := "ver:\"3.0\"\na,b,c\n1,,N\n"

	g, err := Decode(src)
	require.NoError(t, err)
	require.Equal(t, 1, g.NumRows())

	row := g.Row(0)
	_, ok := row.Get("a")
	assert.True(t, ok)
	_, ok = row.Get("b")
	assert.False(t, ok, "empty cell must decode as absent")
	v, ok := row.Get("c")
	require.True(t, ok)
	assert.Equal(t, value.KindNull, v.Kind(), "N cell must decode as explicit null")

	assert.Equal(t, src, Encode(g))
}

func TestNestedGrid(t *testing.T) {
	src := "ver:\"3.0\"\n" +
		"dis,sub\n" +
		"\"outer\",<<\nver:\"3.0\"\nx\n1\n2\n>>\n"

	g, err := Decode(src)
	require.NoError(t, err)

	v, ok := g.Row(0).Get("sub")
	require.True(t, ok)
	inner, ok := v.(*value.Grid)
	require.True(t, ok)
	assert.Equal(t, 2, inner.NumRows())

	assert.Equal(t, src, Encode(g))
}

func TestDecodeValueScalars(t *testing.T) {
	sydney, err := value.NewDateTime(
		time.Date(2021, 6, 1, 9, 0, 0, 0, time.FixedZone("", 10*3600)), "Sydney")
	require.NoError(t, err)

	tests := []struct {
		src  string
		want value.Value
	}{
		{"T", value.Bool(true)},
		{"F", value.Bool(false)},
		{"M", value.Marker{}},
		{"R", value.Remove{}},
		{"N", value.Null{}},
		{"NA", value.NA{}},
		{"42", value.Num(42)},
		{"-1.5kWh", value.NumUnit(-1.5, "kWh")},
		{"1e+06", value.Num(1e6)},
		{"1_000", value.Num(1000)},
		{"\"hello\"", value.Str("hello")},
		{"`https://x/`", value.Uri("https://x/")},
		{"@ab-c", value.MustRef("ab-c", "")},
		{"@a \"Dis\"", value.MustRef("a", "Dis")},
		{"2020-02-29", mustDate(t, 2020, 2, 29)},
		{"23:45:01.5", mustTime(t, 23, 45, 1, 500_000_000)},
		{"2021-06-01T09:00:00+10:00 Sydney", sydney},
		{"[1,2]", value.List{value.Num(1), value.Num(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := DecodeValue(tt.src)
			require.NoError(t, err)
			assert.True(t, value.Equal(tt.want, got), "got %v", got)
		})
	}
}

func TestDecodeValueNaN(t *testing.T) {
	got, err := DecodeValue("NaN")
	require.NoError(t, err)
	n, ok := got.(value.Number)
	require.True(t, ok)
	assert.True(t, math.IsNaN(n.Val))
}

func TestStringEscapes(t *testing.T) {
	got, err := DecodeValue(`"a \"b\" \\ \$ \n é"`)
	require.NoError(t, err)
	assert.Equal(t, value.Str("a \"b\" \\ $ \n é"), got)

	assert.Equal(t, `"a \"b\" \\ \$ \n é"`, EncodeValue(got))
}

func TestEncodeControlCharacters(t *testing.T) {
	assert.Equal(t, `"ab"`, EncodeValue(value.Str("a\x01b")))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"meta without ver", "dis:\"x\"\na\n", 1},
		{"unsupported version", "ver:\"9.0\"\na\n\"x\"\n", 1},
		{"unterminated string", "ver:\"3.0", 1},
		{"row too short", "ver:\"3.0\"\na,b\n1\n", 3},
		{"row too long", "ver:\"3.0\"\na\n1,2\n", 3},
		{"bad escape", "ver:\"3.0\"\na\n\"x\\q\"\n", 3},
		{"unknown literal", "ver:\"3.0\"\na\nQ\n", 3},
		{"unclosed nested grid", "ver:\"3.0\"\na\n<<\nver:\"3.0\"\nx\n1\n", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.src)
			require.Error(t, err)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "want *ParseError, got %T", err)
			assert.Equal(t, tt.line, perr.Line)
			assert.Greater(t, perr.Col, 0)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Decode("ver:\"3.0\"\na\n@bad id\n")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Line)
}

func TestEncodeErrorGrid(t *testing.T) {
	g, err := value.NewGridBuilder().
		Meta("err", value.Marker{}).
		Meta("dis", value.Str("boom")).
		Col("empty").
		Build()
	require.NoError(t, err)

	out := Encode(g)
	assert.Equal(t, "ver:\"3.0\" dis:\"boom\" err\nempty\n", out)

	back, err := Decode(out)
	require.NoError(t, err)
	assert.True(t, back.IsErr())
	assert.Equal(t, "boom", back.ErrDis())
}

func TestEncodeZeroColumnGrid(t *testing.T) {
	g, err := value.NewGrid(value.Dict{}, nil, nil)
	require.NoError(t, err)

	out := Encode(g)
	assert.Equal(t, "ver:\"3.0\"\nempty\n", out)

	back, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"empty"}, back.ColNames())
	assert.Equal(t, 0, back.NumRows())
}

func TestEncodeGolden(t *testing.T) {
	ts, err := value.NewDateTime(
		time.Date(2026, 3, 11, 23, 55, 0, 0, time.FixedZone("", -5*3600)), "New_York")
	require.NoError(t, err)
	unitM2, err := value.NewDict(map[string]value.Value{"unit": value.Str("m²")})
	require.NoError(t, err)

	g, err := value.NewGridBuilder().
		Meta("dis", value.Str("Sites")).
		Col("id").
		Col("dis").
		ColMeta("area", unitM2).
		Col("mod").
		Row(map[string]value.Value{
			"id":   value.MustRef("s.1", "HQ"),
			"dis":  value.Str("Headquarters"),
			"area": value.NumUnit(14000, "m²"),
			"mod":  ts,
		}).
		Row(map[string]value.Value{
			"id":   value.MustRef("s.2", ""),
			"dis":  value.Str("Annex"),
			"area": value.Null{},
		}).
		Build()
	require.NoError(t, err)

	gold := goldie.New(t, goldie.WithNameSuffix(".golden"))
	gold.Assert(t, "sites", []byte(Encode(g)))
}

func mustDate(t *testing.T, y int, m time.Month, d int) value.Date {
	t.Helper()
	date, err := value.NewDate(y, m, d)
	require.NoError(t, err)
	return date
}

func mustTime(t *testing.T, h, m, s, n int) value.Time {
	t.Helper()
	tv, err := value.NewTime(h, m, s, n)
	require.NoError(t, err)
	return tv
}
