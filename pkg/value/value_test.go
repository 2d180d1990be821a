package value

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTagName(t *testing.T) {
	valid := []string{"a", "dis", "navId", "some_tag", "a1B2"}
	for _, s := range valid {
		assert.True(t, IsTagName(s), "expected %q to be a valid tag name", s)
	}

	invalid := []string{"", "Dis", "1abc", "foo-bar", "foo bar", "fooBär"}
	for _, s := range invalid {
		assert.False(t, IsTagName(s), "expected %q to be rejected", s)
	}
}

func TestNewRef(t *testing.T) {
	r, err := NewRef("p:demo:r:1234-abcd", "Site 1")
	require.NoError(t, err)
	assert.Equal(t, "p:demo:r:1234-abcd", r.ID())
	assert.Equal(t, "Site 1", r.Dis())

	_, err = NewRef("", "")
	require.Error(t, err)
	var verr *ValueError
	require.ErrorAs(t, err, &verr)

	_, err = NewRef("has space", "")
	assert.Error(t, err)
	_, err = NewRef("has@at", "")
	assert.Error(t, err)
}

func TestRefEqualityIgnoresDis(t *testing.T) {
	a := MustRef("abc", "Display A")
	b := MustRef("abc", "Display B")
	c := MustRef("abd", "Display A")
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestNumberEquality(t *testing.T) {
	assert.True(t, Equal(Num(5), Num(5)))
	assert.False(t, Equal(Num(5), NumUnit(5, "kWh")))
	assert.False(t, Equal(NumUnit(5, "kW"), NumUnit(5, "kWh")))
	assert.True(t, Equal(NumUnit(5, "kWh"), NumUnit(5, "kWh")))

	// NaN and infinities are legal and round-trip stable.
	assert.True(t, Equal(Num(math.NaN()), Num(math.NaN())))
	assert.True(t, Equal(Num(math.Inf(1)), Num(math.Inf(1))))
	assert.False(t, Equal(Num(math.Inf(1)), Num(math.Inf(-1))))
}

func TestNewCoordBounds(t *testing.T) {
	c, err := NewCoord(-27.4679, 153.0278)
	require.NoError(t, err)
	assert.Equal(t, -27.4679, c.Lat())
	assert.Equal(t, 153.0278, c.Lng())

	_, err = NewCoord(90.1, 0)
	assert.Error(t, err)
	_, err = NewCoord(-90.1, 0)
	assert.Error(t, err)
	_, err = NewCoord(0, 180.1)
	assert.Error(t, err)
	_, err = NewCoord(0, -180.1)
	assert.Error(t, err)
}

func TestNewDate(t *testing.T) {
	d, err := NewDate(2023, time.February, 28)
	require.NoError(t, err)
	assert.Equal(t, "2023-02-28", d.String())

	_, err = NewDate(2023, time.February, 29)
	assert.Error(t, err)

	// Leap year.
	_, err = NewDate(2024, time.February, 29)
	assert.NoError(t, err)

	_, err = NewDate(2023, 13, 1)
	assert.Error(t, err)
}

func TestNewTime(t *testing.T) {
	tm, err := NewTime(23, 55, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "23:55:00", tm.String())

	withMillis, err := NewTime(1, 2, 3, 456_000_000)
	require.NoError(t, err)
	assert.Equal(t, "01:02:03.456", withMillis.String())

	_, err = NewTime(24, 0, 0, 0)
	assert.Error(t, err)
	_, err = NewTime(0, 60, 0, 0)
	assert.Error(t, err)
}

func TestDateTimePreservesOffset(t *testing.T) {
	loc := time.FixedZone("", -5*3600)
	instant := time.Date(2010, 3, 11, 23, 55, 0, 0, loc)
	dt, err := NewDateTime(instant, "New_York")
	require.NoError(t, err)

	assert.Equal(t, "New_York", dt.TZ())
	assert.Equal(t, "2010-03-11T23:55:00-05:00 New_York", dt.String())

	_, offset := dt.Time().Zone()
	assert.Equal(t, -5*3600, offset)
}

func TestDateTimeEquality(t *testing.T) {
	sydney := time.FixedZone("", 10*3600)
	instant := time.Date(2019, 1, 1, 0, 0, 0, 0, sydney)

	a, _ := NewDateTime(instant, "Sydney")
	b, _ := NewDateTime(instant.UTC(), "Sydney")
	c, _ := NewDateTime(instant, "Brisbane")

	// Same instant, same zone name: equal regardless of offset form.
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestNewDict(t *testing.T) {
	d, err := NewDict(map[string]Value{"dis": Str("x"), "site": Marker{}})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.True(t, d.HasMarker("site"))
	assert.Equal(t, []string{"dis", "site"}, d.Names())

	_, err = NewDict(map[string]Value{"BadName": Str("x")})
	assert.Error(t, err)
	_, err = NewDict(map[string]Value{"ok": nil})
	assert.Error(t, err)
}

func TestDictWithDoesNotMutate(t *testing.T) {
	d := MustDict(map[string]Value{"a": Num(1)})
	d2, err := d.With("b", Num(2))
	require.NoError(t, err)

	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 2, d2.Len())

	d3 := d2.Without("a")
	assert.True(t, d2.Has("a"))
	assert.False(t, d3.Has("a"))
}

func TestNewXStr(t *testing.T) {
	x, err := NewXStr("Bin", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "Bin", x.Type)

	_, err = NewXStr("bin", "payload")
	assert.Error(t, err)
	_, err = NewXStr("", "payload")
	assert.Error(t, err)
}

func TestLoadTZ(t *testing.T) {
	loc, err := LoadTZ("Australia/Sydney")
	require.NoError(t, err)
	assert.Equal(t, "Australia/Sydney", loc.String())

	loc, err = LoadTZ("Sydney")
	require.NoError(t, err)
	assert.Equal(t, "Australia/Sydney", loc.String())

	loc, err = LoadTZ("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = LoadTZ("NotARealCity")
	assert.Error(t, err)
}

func TestShortTZ(t *testing.T) {
	assert.Equal(t, "New_York", ShortTZ("America/New_York"))
	assert.Equal(t, "Sydney", ShortTZ("Australia/Sydney"))
	assert.Equal(t, "UTC", ShortTZ("UTC"))
	assert.Equal(t, "UTC", ShortTZ("Local"))
}
