package value

// Ref is an identifier with an optional human-readable display name.
// Two Refs are equal when their identifiers match; the display name is
// not part of identity.
type Ref struct {
	id  string
	dis string
}

// NewRef validates the identifier and creates a Ref.
// The identifier is given without the leading '@'.
func NewRef(id, dis string) (Ref, error) {
	if !IsRefID(id) {
		return Ref{}, newValueError("Ref id must be non-empty ASCII alphanumerics plus '_:-.~': %q", id)
	}
	return Ref{id: id, dis: dis}, nil
}

// MustRef is like NewRef but panics on an invalid identifier.
// Intended for literals in tests and examples.
func MustRef(id, dis string) Ref {
	r, err := NewRef(id, dis)
	if err != nil {
		panic(err)
	}
	return r
}

// ID returns the identifier without the leading '@'.
func (r Ref) ID() string { return r.id }

// Dis returns the display name, or "" when none was supplied.
func (r Ref) Dis() string { return r.dis }

// Kind returns KindRef.
func (Ref) Kind() Kind { return KindRef }

func (Ref) sealed() {}
