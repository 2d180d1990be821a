package hayson

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/haystack-rest/haystack-go/pkg/value"
)

// Decode parses Hayson JSON that must be a grid.
func Decode(data []byte) (*value.Grid, error) {
	v, err := DecodeValue(data)
	if err != nil {
		return nil, err
	}
	g, ok := v.(*value.Grid)
	if !ok {
		return nil, parseErrorf("expected a grid, found %s", v.Kind())
	}
	return g, nil
}

// DecodeValue parses any Hayson JSON value.
func DecodeValue(data []byte) (value.Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, parseErrorf("invalid JSON: %v", err)
	}
	return jsonToValue(raw)
}

func jsonToValue(raw any) (value.Value, error) {
	switch raw := raw.(type) {
	case nil:
		return value.Null{}, nil
	case bool:
		return value.Bool(raw), nil
	case float64:
		return value.Num(raw), nil
	case string:
		return value.Str(raw), nil
	case []any:
		out := make(value.List, len(raw))
		for i, item := range raw {
			v, err := jsonToValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case map[string]any:
		if kind, ok := raw["_kind"].(string); ok {
			return taggedToValue(kind, raw)
		}
		return jsonToDict(raw)
	default:
		return nil, parseErrorf("unsupported JSON type %T", raw)
	}
}

func jsonToDict(raw map[string]any) (value.Dict, error) {
	tags := make(map[string]value.Value, len(raw))
	for name, item := range raw {
		v, err := jsonToValue(item)
		if err != nil {
			return value.Dict{}, err
		}
		tags[name] = v
	}
	d, err := value.NewDict(tags)
	if err != nil {
		return value.Dict{}, parseErrorf("invalid dict: %v", err)
	}
	return d, nil
}

func taggedToValue(kind string, raw map[string]any) (value.Value, error) {
	switch kind {
	case "marker":
		return value.Marker{}, nil
	case "remove":
		return value.Remove{}, nil
	case "na":
		return value.NA{}, nil
	case "number":
		return numberFromJSON(raw)
	case "uri":
		s, err := stringField(raw, "val")
		if err != nil {
			return nil, err
		}
		return value.Uri(s), nil
	case "ref":
		id, err := stringField(raw, "val")
		if err != nil {
			return nil, err
		}
		dis, _ := raw["dis"].(string)
		r, err := value.NewRef(id, dis)
		if err != nil {
			return nil, parseErrorf("invalid ref: %v", err)
		}
		return r, nil
	case "date":
		s, err := stringField(raw, "val")
		if err != nil {
			return nil, err
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, parseErrorf("invalid date %q", s)
		}
		d, err := value.NewDate(t.Year(), t.Month(), t.Day())
		if err != nil {
			return nil, parseErrorf("invalid date: %v", err)
		}
		return d, nil
	case "time":
		s, err := stringField(raw, "val")
		if err != nil {
			return nil, err
		}
		t, err := time.Parse("15:04:05.999999999", s)
		if err != nil {
			return nil, parseErrorf("invalid time %q", s)
		}
		tv, err := value.NewTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
		if err != nil {
			return nil, parseErrorf("invalid time: %v", err)
		}
		return tv, nil
	case "dateTime":
		return dateTimeFromJSON(raw)
	case "coord":
		lat, ok1 := raw["lat"].(float64)
		lng, ok2 := raw["lng"].(float64)
		if !ok1 || !ok2 {
			return nil, parseErrorf("coord requires numeric lat and lng")
		}
		c, err := value.NewCoord(lat, lng)
		if err != nil {
			return nil, parseErrorf("invalid coord: %v", err)
		}
		return c, nil
	case "xstr":
		typeName, err := stringField(raw, "type")
		if err != nil {
			return nil, err
		}
		val, err := stringField(raw, "val")
		if err != nil {
			return nil, err
		}
		x, err := value.NewXStr(typeName, val)
		if err != nil {
			return nil, parseErrorf("invalid xstr: %v", err)
		}
		return x, nil
	case "grid":
		return gridFromJSON(raw)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
}

func numberFromJSON(raw map[string]any) (value.Value, error) {
	switch val := raw["val"].(type) {
	case float64:
		unit, _ := raw["unit"].(string)
		return value.NumUnit(val, unit), nil
	case string:
		switch val {
		case "NaN":
			return value.Num(math.NaN()), nil
		case "INF":
			return value.Num(math.Inf(1)), nil
		case "-INF":
			return value.Num(math.Inf(-1)), nil
		}
		return nil, parseErrorf("invalid number literal %q", val)
	default:
		return nil, parseErrorf("number requires a val field")
	}
}

func dateTimeFromJSON(raw map[string]any) (value.Value, error) {
	s, err := stringField(raw, "val")
	if err != nil {
		return nil, err
	}
	t, err := time.Parse("2006-01-02T15:04:05.999999999Z07:00", s)
	if err != nil {
		return nil, parseErrorf("invalid dateTime %q", s)
	}
	tz, _ := raw["tz"].(string)
	if tz == "" {
		tz = "UTC"
	}
	dt, err := value.NewDateTime(t, tz)
	if err != nil {
		return nil, parseErrorf("invalid dateTime: %v", err)
	}
	return dt, nil
}

func gridFromJSON(raw map[string]any) (*value.Grid, error) {
	metaRaw, _ := raw["meta"].(map[string]any)
	meta, err := jsonToDict(metaRaw)
	if err != nil {
		return nil, err
	}

	colsRaw, ok := raw["cols"].([]any)
	if !ok {
		return nil, parseErrorf("grid requires a cols array")
	}
	cols := make([]value.Col, 0, len(colsRaw))
	for _, cr := range colsRaw {
		cm, ok := cr.(map[string]any)
		if !ok {
			return nil, parseErrorf("grid column must be an object")
		}
		name, err := stringField(cm, "name")
		if err != nil {
			return nil, err
		}
		tags := make(map[string]value.Value)
		for key, item := range cm {
			if key == "name" {
				continue
			}
			v, err := jsonToValue(item)
			if err != nil {
				return nil, err
			}
			tags[key] = v
		}
		colMeta, err := value.NewDict(tags)
		if err != nil {
			return nil, parseErrorf("invalid column meta: %v", err)
		}
		col, err := value.NewCol(name, colMeta)
		if err != nil {
			return nil, parseErrorf("invalid column: %v", err)
		}
		cols = append(cols, col)
	}

	rowsRaw, _ := raw["rows"].([]any)
	rows := make([]value.Dict, 0, len(rowsRaw))
	for _, rr := range rowsRaw {
		rm, ok := rr.(map[string]any)
		if !ok {
			return nil, parseErrorf("grid row must be an object")
		}
		row, err := jsonToDict(rm)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	g, err := value.NewGrid(meta, cols, rows)
	if err != nil {
		return nil, parseErrorf("invalid grid: %v", err)
	}
	return g, nil
}

func stringField(raw map[string]any, key string) (string, error) {
	s, ok := raw[key].(string)
	if !ok {
		return "", parseErrorf("missing or non-string %q field", key)
	}
	return s, nil
}
