// Package session manages an authenticated connection to one Haystack
// project.
//
// A Session owns the auth token for a project URL. Open runs the
// SCRAM exchange eagerly; Call sends an op request with the current
// token, serialized as Zinc or Hayson per its Format argument, and
// decodes the response grid. When the server answers 403
// the token has expired: the session re-authenticates once and
// retries the call. A second 403 means the credentials themselves are
// no longer accepted and the call fails with ErrAuthExpired.
//
// Re-authentication is single-flight. When several calls see the
// expiry at once, one runs the exchange while the rest wait for its
// outcome, so the server sees one HELLO instead of a stampede.
//
// Error grids returned by the server (meta tagged err) surface as
// *OpError carrying the display message and server trace.
package session
