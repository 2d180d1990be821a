// Package hayson implements the Hayson JSON encoding of the Haystack
// data model.
//
// Scalars with a native JSON representation map directly: null, bool,
// string, and unitless finite numbers. Everything else is a JSON
// object tagged with a "_kind" discriminator, e.g.
//
//	{"_kind":"number","val":45.5,"unit":"kW"}
//	{"_kind":"ref","val":"p:demo:r:25","dis":"Site 1"}
//
// Dicts are plain JSON objects. Tag names always start with a
// lowercase letter, so they can never collide with "_kind". Grids are
// objects carrying meta, column definitions and rows. A row object
// omits absent cells and carries JSON null for explicit nulls,
// preserving the absent versus null distinction through a round-trip.
//
// Decoding an object with an unrecognized "_kind" fails with
// ErrUnknownKind rather than guessing.
package hayson
