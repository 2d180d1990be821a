package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-rest/haystack-go/pkg/transport"
)

// Vectors from RFC 7677 section 3.
func TestScramSHA256TestVectors(t *testing.T) {
	const (
		password    = "pencil"
		clientNonce = "rOprNGfwEbeRWgbNEkqO"
		serverFirst = "r=rOprNGfwEbeRWgbNEkqO%hvYDpWUa2RaTCAfuxFIlj)hNlF$k0," +
			"s=W22ZaJ0SNY7soEsUEjb6gQ==,i=4096"
		wantProof = "dHzbZapWIk4jUhN+Ute9ytag9zjfMHgsqmmiz7AndVQ="
		wantSig   = "6rriTRBi23WpRR/wtup+mMhUZUn/dB5nLTJRsjl95G4="
	)

	salt, err := base64.StdEncoding.DecodeString("W22ZaJ0SNY7soEsUEjb6gQ==")
	require.NoError(t, err)

	clientFirstBare := "n=user,r=" + clientNonce
	combined := parseScramAttrs(serverFirst)["r"]
	authMessage := clientFirstBare + "," + serverFirst + ",c=biws,r=" + combined

	saltedPw := saltedPassword(password, salt, 4096)
	proof := clientProof(saltedPw, authMessage)
	sig := serverSignature(saltedPw, authMessage)

	assert.Equal(t, wantProof, base64.StdEncoding.EncodeToString(proof))
	assert.Equal(t, wantSig, base64.StdEncoding.EncodeToString(sig))
}

func TestParseAuthHeader(t *testing.T) {
	scheme, params := parseAuthHeader("scram hash=SHA-256, handshakeToken=aabbcc")
	assert.Equal(t, "scram", scheme)
	assert.Equal(t, "SHA-256", params["hash"])
	assert.Equal(t, "aabbcc", params["handshakeToken"])

	// authentication-info has no scheme word.
	scheme, params = parseAuthHeader("authToken=xxyyzz, hash=SHA-256, data=dj1zaWc")
	assert.Equal(t, "", scheme)
	assert.Equal(t, "xxyyzz", params["authToken"])

	scheme, _ = parseAuthHeader("Basic realm=proj")
	assert.Equal(t, "basic", scheme)
}

func TestParseScramAttrsKeepsPadding(t *testing.T) {
	attrs := parseScramAttrs("r=abc,s=W22ZaJ0SNY7soEsUEjb6gQ==,i=4096")
	assert.Equal(t, "W22ZaJ0SNY7soEsUEjb6gQ==", attrs["s"])
	assert.Equal(t, "4096", attrs["i"])
}

func TestExchangeRejectsOutOfOrderCalls(t *testing.T) {
	e := NewExchange("alice", "secret")
	_, err := e.Final("scram data=x")
	assert.ErrorIs(t, err, ErrWrongState)
	_, err = e.First("scram handshakeToken=t")
	assert.ErrorIs(t, err, ErrWrongState)
	assert.Equal(t, StateInit, e.State())
}

func TestExchangeRejectsNonScramChallenge(t *testing.T) {
	e := NewExchange("alice", "secret")
	_, err := e.Hello()
	require.NoError(t, err)
	_, err = e.First("Basic realm=proj")
	assert.ErrorIs(t, err, ErrUnsupportedMechanism)
	assert.Equal(t, StateFailed, e.State())
}

func TestClientFirstEscapesUsername(t *testing.T) {
	e := NewExchange("u=ser,name", "secret")
	e.nonceFn = func() (string, error) { return "nonce1234", nil }

	_, err := e.Hello()
	require.NoError(t, err)
	header, err := e.First("scram hash=SHA-256, handshakeToken=t1")
	require.NoError(t, err)

	_, params := parseAuthHeader(header)
	raw, err := decodeURL(params["data"])
	require.NoError(t, err)
	assert.Equal(t, "n,,n=u=3Dser=2Cname,r=nonce1234", string(raw))
}

func TestExchangeRejectsForeignNonce(t *testing.T) {
	e := NewExchange("alice", "secret")
	e.nonceFn = func() (string, error) { return "clientnonceclientnonce", nil }

	_, err := e.Hello()
	require.NoError(t, err)
	_, err = e.First("scram hash=SHA-256, handshakeToken=t1")
	require.NoError(t, err)

	serverFirst := "r=unrelatednonce,s=" +
		base64.StdEncoding.EncodeToString([]byte("somesalt")) + ",i=1000"
	_, err = e.Final("scram handshakeToken=t2, data=" + encodeURL([]byte(serverFirst)))
	assert.ErrorIs(t, err, ErrInvalidServerMessage)
	assert.Equal(t, StateFailed, e.State())
}

// scramServer implements transport.Sender speaking the server side of
// the exchange, so Authenticate can be driven end to end in memory.
type scramServer struct {
	username   string
	password   string
	salt       []byte
	iterations int
	authToken  string

	// tamperSignature makes the server lie about its signature.
	tamperSignature bool

	clientFirstBare string
	serverFirst     string
}

func (s *scramServer) Send(_ context.Context, req *transport.Request) (*transport.Response, error) {
	authz := req.Header.Get("Authorization")
	switch {
	case strings.HasPrefix(authz, "HELLO "):
		return s.hello(authz)
	case s.clientFirstBare == "":
		return s.first(authz)
	default:
		return s.final(authz)
	}
}

func (s *scramServer) hello(authz string) (*transport.Response, error) {
	raw, err := decodeURL(strings.TrimPrefix(authz, "HELLO username="))
	if err != nil || string(raw) != s.username {
		return respond(http.StatusForbidden, "", ""), nil
	}
	return respond(http.StatusUnauthorized,
		"Www-Authenticate", "scram hash=SHA-256, handshakeToken=tok1"), nil
}

func (s *scramServer) first(authz string) (*transport.Response, error) {
	_, params := parseAuthHeader(authz)
	raw, err := decodeURL(params["data"])
	if err != nil {
		return nil, fmt.Errorf("bad client-first: %w", err)
	}
	s.clientFirstBare = strings.TrimPrefix(string(raw), "n,,")

	clientNonce := parseScramAttrs(s.clientFirstBare)["r"]
	s.serverFirst = "r=" + clientNonce + "serverpart,s=" +
		base64.StdEncoding.EncodeToString(s.salt) + ",i=" + fmt.Sprint(s.iterations)

	return respond(http.StatusUnauthorized,
		"Www-Authenticate",
		"scram handshakeToken=tok2, hash=SHA-256, data="+encodeURL([]byte(s.serverFirst))), nil
}

func (s *scramServer) final(authz string) (*transport.Response, error) {
	_, params := parseAuthHeader(authz)
	raw, err := decodeURL(params["data"])
	if err != nil {
		return nil, fmt.Errorf("bad client-final: %w", err)
	}
	attrs := parseScramAttrs(string(raw))

	withoutProof := "c=biws,r=" + attrs["r"]
	authMessage := s.clientFirstBare + "," + s.serverFirst + "," + withoutProof
	saltedPw := saltedPassword(s.password, s.salt, s.iterations)

	wantProof := base64.StdEncoding.EncodeToString(clientProof(saltedPw, authMessage))
	if attrs["p"] != wantProof {
		return respond(http.StatusForbidden, "", ""), nil
	}

	sig := serverSignature(saltedPw, authMessage)
	if s.tamperSignature {
		sig[0] ^= 0xff
	}
	info := "authToken=" + s.authToken + ", hash=SHA-256, data=" +
		encodeURL([]byte("v="+base64.StdEncoding.EncodeToString(sig)))
	return respond(http.StatusOK, "Authentication-Info", info), nil
}

func respond(status int, headerName, headerValue string) *transport.Response {
	h := http.Header{}
	if headerName != "" {
		h.Set(headerName, headerValue)
	}
	return &transport.Response{Status: status, Header: h}
}

func TestAuthenticateEndToEnd(t *testing.T) {
	srv := &scramServer{
		username:   "alice",
		password:   "secret",
		salt:       []byte("0123456789abcdef"),
		iterations: 1000,
		authToken:  "web-abc123",
	}

	token, err := Authenticate(context.Background(), srv,
		"https://host/api/demo/about", "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "web-abc123", token)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	srv := &scramServer{
		username:   "alice",
		password:   "secret",
		salt:       []byte("0123456789abcdef"),
		iterations: 1000,
		authToken:  "web-abc123",
	}

	_, err := Authenticate(context.Background(), srv,
		"https://host/api/demo/about", "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateTamperedServerSignature(t *testing.T) {
	srv := &scramServer{
		username:        "alice",
		password:        "secret",
		salt:            []byte("0123456789abcdef"),
		iterations:      1000,
		authToken:       "web-abc123",
		tamperSignature: true,
	}

	e := NewExchange("alice", "secret")
	_, err := e.run(context.Background(), srv, "https://host/api/demo/about")
	assert.ErrorIs(t, err, ErrServerSignatureMismatch)
	assert.Equal(t, StateFailed, e.State())
	assert.Empty(t, e.Token(), "token must not be usable after a signature mismatch")
}

func TestAuthenticateUnknownUser(t *testing.T) {
	srv := &scramServer{
		username:   "alice",
		password:   "secret",
		salt:       []byte("0123456789abcdef"),
		iterations: 1000,
	}

	_, err := Authenticate(context.Background(), srv,
		"https://host/api/demo/about", "mallory", "secret")
	assert.True(t, errors.Is(err, ErrInvalidServerMessage), "unexpected error: %v", err)
}
