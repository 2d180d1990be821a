package zinc

import (
	"math"
	"strconv"
	"strings"

	"github.com/haystack-rest/haystack-go/pkg/value"
	"github.com/haystack-rest/haystack-go/pkg/version"
)

// Encode renders a grid in canonical Zinc: the ver tag first, then
// remaining meta tags in sorted order, columns and cells joined with
// commas, absent cells as empty fields, one trailing newline.
func Encode(g *value.Grid) string {
	var sb strings.Builder
	encodeGrid(&sb, g)
	return sb.String()
}

// EncodeValue renders a single value as a Zinc literal.
func EncodeValue(v value.Value) string {
	var sb strings.Builder
	encodeVal(&sb, v)
	return sb.String()
}

func encodeGrid(sb *strings.Builder, g *value.Grid) {
	meta := g.Meta()
	ver := version.Current
	if s, ok := meta.Str("ver"); ok {
		ver = s
	}
	sb.WriteString("ver:")
	encodeStr(sb, ver)
	for _, name := range meta.Names() {
		if name == "ver" {
			continue
		}
		sb.WriteByte(' ')
		v, _ := meta.Get(name)
		encodePair(sb, name, v)
	}
	sb.WriteByte('\n')

	// A column line must not be blank, so a grid declared without
	// columns gets the same placeholder GridFromRows uses. Its rows
	// hold no cells and are not written.
	if g.NumCols() == 0 {
		sb.WriteString("empty\n")
		return
	}

	for i, col := range g.Cols() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(col.Name())
		cm := col.Meta()
		for _, name := range cm.Names() {
			sb.WriteByte(' ')
			v, _ := cm.Get(name)
			encodePair(sb, name, v)
		}
	}
	sb.WriteByte('\n')

	for _, row := range g.Rows() {
		for i, col := range g.Cols() {
			if i > 0 {
				sb.WriteByte(',')
			}
			if v, ok := row.Get(col.Name()); ok {
				encodeVal(sb, v)
			}
		}
		sb.WriteByte('\n')
	}
}

// encodePair renders a meta tag, collapsing Marker values to the bare
// name form.
func encodePair(sb *strings.Builder, name string, v value.Value) {
	sb.WriteString(name)
	if v.Kind() == value.KindMarker {
		return
	}
	sb.WriteByte(':')
	encodeVal(sb, v)
}

func encodeVal(sb *strings.Builder, v value.Value) {
	switch v := v.(type) {
	case value.Null:
		sb.WriteString("N")
	case value.Marker:
		sb.WriteString("M")
	case value.Remove:
		sb.WriteString("R")
	case value.NA:
		sb.WriteString("NA")
	case value.Bool:
		if v {
			sb.WriteString("T")
		} else {
			sb.WriteString("F")
		}
	case value.Number:
		encodeNumber(sb, v)
	case value.Str:
		encodeStr(sb, string(v))
	case value.Uri:
		encodeUri(sb, string(v))
	case value.Ref:
		sb.WriteByte('@')
		sb.WriteString(v.ID())
		if dis := v.Dis(); dis != "" {
			sb.WriteByte(' ')
			encodeStr(sb, dis)
		}
	case value.Date:
		sb.WriteString(v.String())
	case value.Time:
		sb.WriteString(v.String())
	case value.DateTime:
		sb.WriteString(v.String())
	case value.Coord:
		sb.WriteString(v.String())
	case value.XStr:
		sb.WriteString(v.Type)
		sb.WriteByte('(')
		encodeStr(sb, v.Val)
		sb.WriteByte(')')
	case value.List:
		sb.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			encodeVal(sb, item)
		}
		sb.WriteByte(']')
	case value.Dict:
		sb.WriteByte('{')
		for i, name := range v.Names() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			item, _ := v.Get(name)
			encodePair(sb, name, item)
		}
		sb.WriteByte('}')
	case *value.Grid:
		sb.WriteString("<<\n")
		encodeGrid(sb, v)
		sb.WriteString(">>")
	}
}

func encodeNumber(sb *strings.Builder, n value.Number) {
	switch {
	case math.IsNaN(n.Val):
		sb.WriteString("NaN")
		return
	case math.IsInf(n.Val, 1):
		sb.WriteString("INF")
		return
	case math.IsInf(n.Val, -1):
		sb.WriteString("-INF")
		return
	}
	sb.WriteString(strconv.FormatFloat(n.Val, 'g', -1, 64))
	sb.WriteString(n.Unit)
}

func encodeStr(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '$':
			sb.WriteString(`\$`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				for len(hex) < 4 {
					hex = "0" + hex
				}
				sb.WriteString(hex)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}

func encodeUri(sb *strings.Builder, s string) {
	sb.WriteByte('`')
	for _, r := range s {
		switch r {
		case '`':
			sb.WriteString("\\`")
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('`')
}
