// Package auth implements SCRAM-SHA-256 over the Haystack HELLO
// exchange.
//
// The flow is three HTTP round-trips. HELLO advertises the username
// and learns the handshake token and hash mechanism from the 401
// response. The first SCRAM message sends the client nonce; the server
// answers with its combined nonce, salt and iteration count. The final
// message carries the client proof, and the 200 response carries the
// auth token plus the server signature, which is verified in constant
// time before the token is accepted.
//
// The Exchange type is a strict state machine with one transition
// method per state, so a response can never be replayed into the wrong
// phase. Authenticate drives a complete exchange through a
// transport.Sender.
//
// Header envelopes (username=, data=) are base64url without padding.
// Attributes inside the SCRAM messages themselves (s=, p=, v=) use
// standard base64, matching RFC 5802.
package auth
