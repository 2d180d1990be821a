package value

// Kind identifies a Haystack value kind.
type Kind uint8

const (
	// KindNull is the null value.
	KindNull Kind = iota

	// KindMarker is a presence-only tag value.
	KindMarker

	// KindRemove is the "delete this tag" sentinel.
	KindRemove

	// KindNA is "not available", distinct from Null and Remove.
	KindNA

	// KindBool is a boolean.
	KindBool

	// KindNumber is a 64-bit float with an optional unit.
	KindNumber

	// KindStr is a string.
	KindStr

	// KindUri is a URI.
	KindUri

	// KindRef is an identifier with an optional display name.
	KindRef

	// KindDate is a calendar date with no time or zone.
	KindDate

	// KindTime is a time of day with no date or zone.
	KindTime

	// KindDateTime is an instant with a timezone name.
	KindDateTime

	// KindCoord is a latitude/longitude pair.
	KindCoord

	// KindXStr is an extended type: a type name plus a string payload.
	KindXStr

	// KindList is an ordered, heterogeneous sequence.
	KindList

	// KindDict is a tag-name to value mapping.
	KindDict

	// KindGrid is the tabular type: meta, columns, and rows.
	KindGrid
)

// String returns the Haystack kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindMarker:
		return "Marker"
	case KindRemove:
		return "Remove"
	case KindNA:
		return "NA"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindStr:
		return "Str"
	case KindUri:
		return "Uri"
	case KindRef:
		return "Ref"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindDateTime:
		return "DateTime"
	case KindCoord:
		return "Coord"
	case KindXStr:
		return "XStr"
	case KindList:
		return "List"
	case KindDict:
		return "Dict"
	case KindGrid:
		return "Grid"
	default:
		return "Unknown"
	}
}
