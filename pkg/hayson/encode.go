package hayson

import (
	"encoding/json"
	"math"

	"github.com/haystack-rest/haystack-go/pkg/value"
)

// Encode renders a grid as Hayson JSON.
func Encode(g *value.Grid) ([]byte, error) {
	return json.Marshal(gridToJSON(g))
}

// EncodeValue renders a single value as Hayson JSON.
func EncodeValue(v value.Value) ([]byte, error) {
	return json.Marshal(valueToJSON(v))
}

// valueToJSON converts a value into the tree encoding/json marshals
// from.
func valueToJSON(v value.Value) any {
	switch v := v.(type) {
	case value.Null:
		return nil
	case value.Marker:
		return map[string]any{"_kind": "marker"}
	case value.Remove:
		return map[string]any{"_kind": "remove"}
	case value.NA:
		return map[string]any{"_kind": "na"}
	case value.Bool:
		return bool(v)
	case value.Str:
		return string(v)
	case value.Number:
		return numberToJSON(v)
	case value.Uri:
		return map[string]any{"_kind": "uri", "val": string(v)}
	case value.Ref:
		out := map[string]any{"_kind": "ref", "val": v.ID()}
		if dis := v.Dis(); dis != "" {
			out["dis"] = dis
		}
		return out
	case value.Date:
		return map[string]any{"_kind": "date", "val": v.String()}
	case value.Time:
		return map[string]any{"_kind": "time", "val": v.String()}
	case value.DateTime:
		out := map[string]any{
			"_kind": "dateTime",
			"val":   v.Time().Format("2006-01-02T15:04:05.999999999Z07:00"),
		}
		if tz := v.TZ(); tz != "UTC" {
			out["tz"] = tz
		}
		return out
	case value.Coord:
		return map[string]any{"_kind": "coord", "lat": v.Lat(), "lng": v.Lng()}
	case value.XStr:
		return map[string]any{"_kind": "xstr", "type": v.Type, "val": v.Val}
	case value.List:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = valueToJSON(item)
		}
		return out
	case value.Dict:
		return dictToJSON(v)
	case *value.Grid:
		return gridToJSON(v)
	default:
		return nil
	}
}

// numberToJSON keeps plain finite unitless numbers as JSON numbers and
// boxes the rest. NaN and the infinities become the string forms JSON
// numbers cannot carry.
func numberToJSON(n value.Number) any {
	switch {
	case math.IsNaN(n.Val):
		return map[string]any{"_kind": "number", "val": "NaN"}
	case math.IsInf(n.Val, 1):
		return map[string]any{"_kind": "number", "val": "INF"}
	case math.IsInf(n.Val, -1):
		return map[string]any{"_kind": "number", "val": "-INF"}
	case n.Unit != "":
		return map[string]any{"_kind": "number", "val": n.Val, "unit": n.Unit}
	default:
		return n.Val
	}
}

func dictToJSON(d value.Dict) map[string]any {
	out := make(map[string]any, d.Len())
	for _, name := range d.Names() {
		v, _ := d.Get(name)
		out[name] = valueToJSON(v)
	}
	return out
}

func gridToJSON(g *value.Grid) map[string]any {
	cols := make([]any, 0, g.NumCols())
	for _, col := range g.Cols() {
		cj := map[string]any{"name": col.Name()}
		for _, name := range col.Meta().Names() {
			v, _ := col.Meta().Get(name)
			cj[name] = valueToJSON(v)
		}
		cols = append(cols, cj)
	}

	rows := make([]any, 0, g.NumRows())
	for _, row := range g.Rows() {
		rows = append(rows, dictToJSON(row))
	}

	return map[string]any{
		"_kind": "grid",
		"meta":  dictToJSON(g.Meta()),
		"cols":  cols,
		"rows":  rows,
	}
}
