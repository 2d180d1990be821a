// Package value defines the Haystack data model: a closed set of kinds
// covering scalars (Marker, Bool, Number, Str, Ref, DateTime, ...) and
// collections (List, Dict, Grid).
//
// # Closed Kind Set
//
// Every Value reports its Kind, and the set of kinds is fixed. Codecs
// and clients switch exhaustively on Kind; adding a new kind is a
// breaking change that must be handled everywhere.
//
// # Absent vs Null
//
// A Grid row is a Dict whose keys are a subset of the declared columns.
// A key that is absent means "no value for this cell"; a key holding
// Null means "explicitly null". These are distinct states:
//   - Absent: row.Get(name) returns (nil, false)
//   - Null:   row.Get(name) returns (Null{}, true)
//
// # Immutability
//
// Values are immutable once constructed. Constructors validate their
// invariants eagerly and return a *ValueError naming the violated
// constraint instead of producing a malformed instance. Grid
// transformations (SortRowsBy, WithCol) return new grids.
package value
