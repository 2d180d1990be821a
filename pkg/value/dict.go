package value

import "sort"

// Dict is a mapping from tag names to values. Keys are validated
// against the tag-name grammar on construction; insertion order is
// not significant. The zero value is an empty Dict.
type Dict struct {
	items map[string]Value
}

// NewDict validates the keys and creates a Dict. The map is copied;
// nil entries are rejected (use Null{} for an explicit null).
func NewDict(items map[string]Value) (Dict, error) {
	if len(items) == 0 {
		return Dict{}, nil
	}
	copied := make(map[string]Value, len(items))
	for name, v := range items {
		if !IsTagName(name) {
			return Dict{}, newValueError("Dict key must be a valid tag name ([a-z][a-zA-Z0-9_]*): %q", name)
		}
		if v == nil {
			return Dict{}, newValueError("Dict entry %q must not be nil; use Null for an explicit null", name)
		}
		copied[name] = v
	}
	return Dict{items: copied}, nil
}

// MustDict is like NewDict but panics on invalid input.
// Intended for literals in tests and examples.
func MustDict(items map[string]Value) Dict {
	d, err := NewDict(items)
	if err != nil {
		panic(err)
	}
	return d
}

// Get returns the value for the tag and whether it is present.
func (d Dict) Get(name string) (Value, bool) {
	v, ok := d.items[name]
	return v, ok
}

// Has reports whether the tag is present (including explicit Null).
func (d Dict) Has(name string) bool {
	_, ok := d.items[name]
	return ok
}

// HasMarker reports whether the tag is present and is a Marker.
func (d Dict) HasMarker(name string) bool {
	v, ok := d.items[name]
	if !ok {
		return false
	}
	_, isMarker := v.(Marker)
	return isMarker
}

// Str returns the tag as a string when present and of kind Str.
func (d Dict) Str(name string) (string, bool) {
	v, ok := d.items[name]
	if !ok {
		return "", false
	}
	s, ok := v.(Str)
	return string(s), ok
}

// Len returns the number of tags.
func (d Dict) Len() int { return len(d.items) }

// IsEmpty reports whether the Dict has no tags.
func (d Dict) IsEmpty() bool { return len(d.items) == 0 }

// Names returns the tag names in sorted order.
func (d Dict) Names() []string {
	names := make([]string, 0, len(d.items))
	for name := range d.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With returns a new Dict with the tag set, leaving the receiver
// unchanged.
func (d Dict) With(name string, v Value) (Dict, error) {
	items := make(map[string]Value, len(d.items)+1)
	for k, existing := range d.items {
		items[k] = existing
	}
	items[name] = v
	return NewDict(items)
}

// Without returns a new Dict with the tag removed.
func (d Dict) Without(name string) Dict {
	if !d.Has(name) {
		return d
	}
	items := make(map[string]Value, len(d.items)-1)
	for k, existing := range d.items {
		if k != name {
			items[k] = existing
		}
	}
	return Dict{items: items}
}

// Kind returns KindDict.
func (Dict) Kind() Kind { return KindDict }

func (Dict) sealed() {}
