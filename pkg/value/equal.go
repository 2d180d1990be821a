package value

// Equal compares two values by the variant-specific rules:
// Numbers compare value and unit (NaN equals NaN), Refs compare
// identifier only, DateTimes compare instant and zone name, and
// collections compare recursively. Grids compare meta, column
// definitions in order, and rows in order, with absent cells distinct
// from explicit nulls.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null, Marker, Remove, NA:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return numberEqual(av, b.(Number))
	case Str:
		return av == b.(Str)
	case Uri:
		return av == b.(Uri)
	case Ref:
		return av.id == b.(Ref).id
	case Date:
		return av == b.(Date)
	case Time:
		return av == b.(Time)
	case DateTime:
		bv := b.(DateTime)
		return av.tz == bv.tz && av.instant.Equal(bv.instant)
	case Coord:
		return av == b.(Coord)
	case XStr:
		return av == b.(XStr)
	case List:
		return listEqual(av, b.(List))
	case Dict:
		return dictEqual(av, b.(Dict))
	case *Grid:
		return gridEqual(av, b.(*Grid))
	default:
		return false
	}
}

func listEqual(a, b List) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func dictEqual(a, b Dict) bool {
	if len(a.items) != len(b.items) {
		return false
	}
	for name, av := range a.items {
		bv, ok := b.items[name]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

func gridEqual(a, b *Grid) bool {
	if !dictEqual(a.meta, b.meta) {
		return false
	}
	if len(a.cols) != len(b.cols) || len(a.rows) != len(b.rows) {
		return false
	}
	for i := range a.cols {
		if a.cols[i].name != b.cols[i].name || !dictEqual(a.cols[i].meta, b.cols[i].meta) {
			return false
		}
	}
	for i := range a.rows {
		if !dictEqual(a.rows[i], b.rows[i]) {
			return false
		}
	}
	return true
}
