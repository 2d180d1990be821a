package auth

import (
	"crypto/hmac"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Exchange is a single SCRAM authentication attempt. Each transition
// method is valid in exactly one state; calling one out of order
// returns ErrWrongState. Any failed transition moves the exchange to
// StateFailed permanently.
type Exchange struct {
	username string
	password string

	// nonceFn is replaceable in tests for deterministic nonces.
	nonceFn func() (string, error)

	state           State
	clientNonce     string
	handshakeToken  string
	clientFirstBare string
	serverFirst     string
	combinedNonce   string
	expectedSig     []byte
	token           string
}

// NewExchange creates an exchange in StateInit.
func NewExchange(username, password string) *Exchange {
	return &Exchange{
		username: username,
		password: password,
		nonceFn:  newNonce,
	}
}

// State returns the current phase.
func (e *Exchange) State() State { return e.state }

// Token returns the auth token. Empty until StateAuthenticated.
func (e *Exchange) Token() string { return e.token }

func (e *Exchange) fail(err error) error {
	e.state = StateFailed
	return err
}

// Hello produces the Authorization header for the HELLO request and
// moves to StateHelloSent.
func (e *Exchange) Hello() (string, error) {
	if e.state != StateInit {
		return "", fmt.Errorf("%w: hello in %s", ErrWrongState, e.state)
	}
	e.state = StateHelloSent
	return "HELLO username=" + encodeURL([]byte(e.username)), nil
}

// First consumes the www-authenticate challenge from the HELLO
// response, produces the client-first Authorization header and moves
// to StateFirstSent.
func (e *Exchange) First(wwwAuthenticate string) (string, error) {
	if e.state != StateHelloSent {
		return "", fmt.Errorf("%w: first in %s", ErrWrongState, e.state)
	}

	scheme, params := parseAuthHeader(wwwAuthenticate)
	if scheme != "scram" {
		return "", e.fail(fmt.Errorf("%w: server offered %q", ErrUnsupportedMechanism, scheme))
	}
	if hash, ok := params["hash"]; ok && hash != "SHA-256" {
		return "", e.fail(fmt.Errorf("%w: hash %q", ErrUnsupportedMechanism, hash))
	}
	token, ok := params["handshakeToken"]
	if !ok {
		return "", e.fail(invalidServerMessagef("challenge is missing handshakeToken"))
	}
	e.handshakeToken = token

	nonce, err := e.nonceFn()
	if err != nil {
		return "", e.fail(fmt.Errorf("auth: nonce generation failed: %w", err))
	}
	e.clientNonce = nonce
	e.clientFirstBare = "n=" + saslName(e.username) + ",r=" + nonce

	e.state = StateFirstSent
	return e.scramHeader([]byte("n,," + e.clientFirstBare)), nil
}

// Final consumes the server-first message, produces the client-final
// Authorization header carrying the proof, and moves to
// StateFinalSent. The expected server signature is computed here so
// Verify only has to compare.
func (e *Exchange) Final(wwwAuthenticate string) (string, error) {
	if e.state != StateFirstSent {
		return "", fmt.Errorf("%w: final in %s", ErrWrongState, e.state)
	}

	scheme, params := parseAuthHeader(wwwAuthenticate)
	if scheme != "scram" {
		return "", e.fail(fmt.Errorf("%w: server offered %q", ErrUnsupportedMechanism, scheme))
	}
	if token, ok := params["handshakeToken"]; ok {
		e.handshakeToken = token
	}
	data, ok := params["data"]
	if !ok {
		return "", e.fail(invalidServerMessagef("server-first is missing data"))
	}
	raw, err := decodeURL(data)
	if err != nil {
		return "", e.fail(invalidServerMessagef("server-first is not base64url: %v", err))
	}
	e.serverFirst = string(raw)

	attrs := parseScramAttrs(e.serverFirst)
	combined, ok := attrs["r"]
	if !ok {
		return "", e.fail(invalidServerMessagef("server-first is missing nonce"))
	}
	// The combined nonce must extend our nonce, or the server never
	// saw our first message.
	if !strings.HasPrefix(combined, e.clientNonce) {
		return "", e.fail(invalidServerMessagef("server nonce does not extend client nonce"))
	}
	e.combinedNonce = combined

	salt, err := base64.StdEncoding.DecodeString(attrs["s"])
	if err != nil || len(salt) == 0 {
		return "", e.fail(invalidServerMessagef("invalid salt"))
	}
	iterations, err := strconv.Atoi(attrs["i"])
	if err != nil || iterations < 1 {
		return "", e.fail(invalidServerMessagef("invalid iteration count %q", attrs["i"]))
	}

	withoutProof := "c=biws,r=" + combined
	authMessage := e.clientFirstBare + "," + e.serverFirst + "," + withoutProof

	saltedPw := saltedPassword(e.password, salt, iterations)
	proof := clientProof(saltedPw, authMessage)
	e.expectedSig = serverSignature(saltedPw, authMessage)

	clientFinal := withoutProof + ",p=" + base64.StdEncoding.EncodeToString(proof)

	e.state = StateFinalSent
	return e.scramHeader([]byte(clientFinal)), nil
}

// Verify consumes the authentication-info header from the final
// response, checks the server signature in constant time, and moves
// to StateAuthenticated.
func (e *Exchange) Verify(authenticationInfo string) error {
	if e.state != StateFinalSent {
		return fmt.Errorf("%w: verify in %s", ErrWrongState, e.state)
	}

	_, params := parseAuthHeader(authenticationInfo)
	token, ok := params["authToken"]
	if !ok || token == "" {
		return e.fail(invalidServerMessagef("response is missing authToken"))
	}
	data, ok := params["data"]
	if !ok {
		return e.fail(invalidServerMessagef("response is missing data"))
	}
	raw, err := decodeURL(data)
	if err != nil {
		return e.fail(invalidServerMessagef("response data is not base64url: %v", err))
	}
	sigB64, ok := parseScramAttrs(string(raw))["v"]
	if !ok {
		return e.fail(invalidServerMessagef("response is missing server signature"))
	}
	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return e.fail(invalidServerMessagef("server signature is not base64: %v", err))
	}

	if !hmac.Equal(sig, e.expectedSig) {
		return e.fail(ErrServerSignatureMismatch)
	}

	e.token = token
	e.state = StateAuthenticated
	return nil
}

func (e *Exchange) scramHeader(data []byte) string {
	return "scram handshakeToken=" + e.handshakeToken + ", data=" + encodeURL(data)
}
