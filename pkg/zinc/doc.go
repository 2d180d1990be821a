// Package zinc reads and writes the Zinc text encoding of the
// Haystack value model.
//
// Zinc is line-oriented: line 1 is the grid meta, line 2 declares the
// ordered columns, and every following non-blank line is one row of
// comma-separated cell literals. A blank line or EOF terminates the
// grid. An empty cell between commas means the cell is absent for
// that row, which is distinct from the explicit null literal N.
//
// Decoding is a recursive-descent parse over a single position
// cursor, so every ParseError carries the line and column where the
// input stopped making sense, and nested structures (lists, dicts,
// grid-in-cell via << and >>) compose naturally. A malformed document
// never yields a partial grid.
//
// Round-trip guarantees: Decode(Encode(g)) is value-equal to g for
// every legal grid, and Encode(Decode(s)) reproduces s byte-for-byte
// for canonical input (trailing blank line normalized away).
package zinc
