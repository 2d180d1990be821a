// Package transport provides the HTTP layer the auth and session
// packages send requests through.
//
// The Sender interface is the seam for tests: production code uses
// HTTPSender on top of net/http, tests substitute a fake that scripts
// responses. Requests and responses carry fully buffered bodies, since
// Haystack exchanges are small grids rather than streams.
package transport
