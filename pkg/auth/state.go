package auth

// State is the phase of a SCRAM exchange.
type State int

const (
	// StateInit means no message has been sent yet.
	StateInit State = iota

	// StateHelloSent means the HELLO request went out and the exchange
	// is waiting for the handshake token.
	StateHelloSent

	// StateFirstSent means the client-first message went out and the
	// exchange is waiting for the server nonce, salt and iterations.
	StateFirstSent

	// StateFinalSent means the client proof went out and the exchange
	// is waiting for the auth token and server signature.
	StateFinalSent

	// StateAuthenticated means the server proved possession of the
	// password and issued an auth token.
	StateAuthenticated

	// StateFailed means the exchange is dead and must be restarted
	// from scratch.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateHelloSent:
		return "hello-sent"
	case StateFirstSent:
		return "first-sent"
	case StateFinalSent:
		return "final-sent"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
