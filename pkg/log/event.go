package log

import "time"

// Event is one captured client event. CBOR encoding uses integer keys
// for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// CallID correlates the events of a single op call (UUID).
	CallID string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Project is the project name from the session URL.
	Project string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (exactly one is set).
	Op          *OpEvent          `cbor:"10,keyasint,omitempty"`
	Auth        *AuthEvent        `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryOp indicates an op call or its result.
	CategoryOp Category = 0
	// CategoryAuth indicates an authentication phase.
	CategoryAuth Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryOp:
		return "OP"
	case CategoryAuth:
		return "AUTH"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Phase identifies a step of the SCRAM exchange.
type Phase uint8

const (
	// PhaseHello is the HELLO request.
	PhaseHello Phase = 0
	// PhaseFirst is the client-first message.
	PhaseFirst Phase = 1
	// PhaseFinal is the client-final message carrying the proof.
	PhaseFinal Phase = 2
	// PhaseVerify is the server signature verification.
	PhaseVerify Phase = 3
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseHello:
		return "HELLO"
	case PhaseFirst:
		return "FIRST"
	case PhaseFinal:
		return "FINAL"
	case PhaseVerify:
		return "VERIFY"
	default:
		return "UNKNOWN"
	}
}

// OpEvent captures one op request or its response.
type OpEvent struct {
	// Op is the operation name, e.g. "read" or "hisWrite".
	Op string `cbor:"1,keyasint"`

	// Response reports whether this is the response side of the call.
	Response bool `cbor:"2,keyasint,omitempty"`

	// Status is the HTTP status code (response only).
	Status int `cbor:"3,keyasint,omitempty"`

	// BodyBytes is the body size in bytes.
	BodyBytes int `cbor:"4,keyasint,omitempty"`

	// Duration from request send to response receipt (response only).
	// Stored as nanoseconds.
	Duration *time.Duration `cbor:"5,keyasint,omitempty"`
}

// AuthEvent captures a step of the SCRAM exchange. It carries the
// phase and outcome only; credentials, nonces, proofs and tokens are
// never recorded.
type AuthEvent struct {
	// Phase of the exchange.
	Phase Phase `cbor:"1,keyasint"`

	// OK reports whether the phase completed.
	OK bool `cbor:"2,keyasint"`

	// Renewal reports whether this exchange replaces an expired token.
	Renewal bool `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures session lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures an error at any layer.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`

	// Status is the HTTP status code (if applicable).
	Status *int `cbor:"3,keyasint,omitempty"`
}
