// Package client provides the typed op catalogue of a Haystack
// server: about, read, eval, navigation, history reads and writes,
// point writes and action invocation.
//
// A Client wraps a session.Session and translates each op into its
// request grid. Methods return the server's response grid, or the
// first row as a Dict where the op semantics are a single record.
//
// Watch ops are not part of this client and return ErrNotSupported;
// polling via Read or Eval covers the same ground for batch use.
package client
