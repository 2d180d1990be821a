package value

// Value is a Haystack value. The set of implementations is closed:
// Null, Marker, Remove, NA, Bool, Number, Str, Uri, Ref, Date, Time,
// DateTime, Coord, XStr, List, Dict and *Grid.
type Value interface {
	// Kind reports the value's kind.
	Kind() Kind

	// sealed prevents implementations outside this package.
	sealed()
}

// Null is the null value.
type Null struct{}

// Kind returns KindNull.
func (Null) Kind() Kind { return KindNull }

func (Null) sealed() {}

// Marker is a presence-only tag value carrying no data.
type Marker struct{}

// Kind returns KindMarker.
func (Marker) Kind() Kind { return KindMarker }

func (Marker) sealed() {}

// Remove is the sentinel meaning "delete this tag".
type Remove struct{}

// Kind returns KindRemove.
func (Remove) Kind() Kind { return KindRemove }

func (Remove) sealed() {}

// NA means "not available".
type NA struct{}

// Kind returns KindNA.
func (NA) Kind() Kind { return KindNA }

func (NA) sealed() {}

// Bool is a boolean value.
type Bool bool

// Kind returns KindBool.
func (Bool) Kind() Kind { return KindBool }

func (Bool) sealed() {}

// Str is a string value.
type Str string

// Kind returns KindStr.
func (Str) Kind() Kind { return KindStr }

func (Str) sealed() {}

// Uri is a URI value. The string is the raw URI without Zinc backticks.
type Uri string

// Kind returns KindUri.
func (Uri) Kind() Kind { return KindUri }

func (Uri) sealed() {}

// XStr is an extended type: a type name plus an opaque string payload.
// Used for values the model does not natively represent, such as Bins.
type XStr struct {
	// Type is the extended type name. Starts with an uppercase letter.
	Type string

	// Val is the raw payload.
	Val string
}

// NewXStr validates the type name and creates an XStr.
func NewXStr(typeName, val string) (XStr, error) {
	if !isXStrType(typeName) {
		return XStr{}, newValueError("XStr type must start with an uppercase ASCII letter followed by alphanumerics: %q", typeName)
	}
	return XStr{Type: typeName, Val: val}, nil
}

// Kind returns KindXStr.
func (XStr) Kind() Kind { return KindXStr }

func (XStr) sealed() {}

// List is an ordered, heterogeneous sequence of values.
type List []Value

// Kind returns KindList.
func (List) Kind() Kind { return KindList }

func (List) sealed() {}

func isXStrType(s string) bool {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlphaNum(c) && c != '_' {
			return false
		}
	}
	return true
}

func isAlphaNum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
