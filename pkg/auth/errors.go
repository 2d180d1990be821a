package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedMechanism means the server offered an auth scheme
	// or hash other than SCRAM with SHA-256.
	ErrUnsupportedMechanism = errors.New("auth: server does not support scram sha-256")

	// ErrServerSignatureMismatch means the server's signature did not
	// verify, so the server never knew the password. The token, if
	// any, must not be used.
	ErrServerSignatureMismatch = errors.New("auth: server signature verification failed")

	// ErrInvalidServerMessage means a server response was structurally
	// malformed.
	ErrInvalidServerMessage = errors.New("auth: invalid server message")

	// ErrInvalidCredentials means the server rejected the proof.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrWrongState means a transition method was called out of order.
	ErrWrongState = errors.New("auth: exchange is not in the required state")
)

func invalidServerMessagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidServerMessage, fmt.Sprintf(format, args...))
}
