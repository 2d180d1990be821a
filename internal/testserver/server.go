// Package testserver provides an in-memory Haystack server for tests.
//
// Server implements transport.Sender, speaking the server side of the
// SCRAM exchange and dispatching op requests to registered handlers,
// so sessions and clients can be exercised without a network.
package testserver

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	"github.com/haystack-rest/haystack-go/pkg/hayson"
	"github.com/haystack-rest/haystack-go/pkg/transport"
	"github.com/haystack-rest/haystack-go/pkg/value"
	"github.com/haystack-rest/haystack-go/pkg/zinc"
)

// Handler answers one op request. Returning an error grid (meta
// tagged err) is the way to simulate server-side op failures.
type Handler func(req *value.Grid) (*value.Grid, error)

// Server is a scripted Haystack server. Create with New, register
// handlers, then hand it to a Session as its Sender.
type Server struct {
	Username   string
	Password   string
	Salt       []byte
	Iterations int

	// RefuseOps makes every op request answer 403 regardless of
	// token, simulating an account that lost access.
	RefuseOps bool

	mu            sync.Mutex
	handlers      map[string]Handler
	validTokens   map[string]bool
	tokenSeq      int
	exchange      *exchangeState
	AuthExchanges int
	OpCalls       int

	// LastContentType and LastAccept record the headers of the most
	// recent op request.
	LastContentType string
	LastAccept      string
}

type exchangeState struct {
	clientFirstBare string
	serverFirst     string
}

// New creates a server with default credentials alice/secret and an
// "about" handler.
func New() *Server {
	s := &Server{
		Username:    "alice",
		Password:    "secret",
		Salt:        []byte("0123456789abcdef"),
		Iterations:  1000,
		handlers:    map[string]Handler{},
		validTokens: map[string]bool{},
	}
	s.Handle("about", func(*value.Grid) (*value.Grid, error) {
		return value.NewGridBuilder().
			Col("haystackVersion").
			Col("serverName").
			Row(map[string]value.Value{
				"haystackVersion": value.Str("3.0"),
				"serverName":      value.Str("testserver"),
			}).
			Build()
	})
	return s
}

// Handle registers the handler for an op.
func (s *Server) Handle(op string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[op] = h
}

// ExpireTokens invalidates every issued token, forcing the next call
// into renewal.
func (s *Server) ExpireTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tok := range s.validTokens {
		s.validTokens[tok] = false
	}
}

// Send implements transport.Sender.
func (s *Server) Send(_ context.Context, req *transport.Request) (*transport.Response, error) {
	authz := req.Header.Get("Authorization")
	switch {
	case strings.HasPrefix(authz, "HELLO "):
		return s.hello(authz)
	case strings.HasPrefix(authz, "scram "):
		return s.scram(authz)
	case strings.HasPrefix(authz, "BEARER authToken="):
		return s.op(req, strings.TrimPrefix(authz, "BEARER authToken="))
	default:
		return respond(http.StatusUnauthorized, nil, ""), nil
	}
}

func (s *Server) hello(authz string) (*transport.Response, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(authz, "HELLO username="))
	if err != nil || string(raw) != s.Username {
		return respond(http.StatusForbidden, nil, ""), nil
	}
	s.mu.Lock()
	s.exchange = &exchangeState{}
	s.mu.Unlock()
	return respond(http.StatusUnauthorized, http.Header{
		"Www-Authenticate": []string{"scram hash=SHA-256, handshakeToken=hstok"},
	}, ""), nil
}

func (s *Server) scram(authz string) (*transport.Response, error) {
	data := ""
	for _, part := range strings.Split(strings.TrimPrefix(authz, "scram "), ",") {
		part = strings.TrimSpace(part)
		if v, ok := strings.CutPrefix(part, "data="); ok {
			data = v
		}
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return nil, fmt.Errorf("testserver: bad scram data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exchange == nil {
		return respond(http.StatusForbidden, nil, ""), nil
	}
	if s.exchange.clientFirstBare == "" {
		return s.scramFirst(string(raw))
	}
	return s.scramFinal(string(raw))
}

func (s *Server) scramFirst(clientFirst string) (*transport.Response, error) {
	bare := strings.TrimPrefix(clientFirst, "n,,")
	s.exchange.clientFirstBare = bare

	nonce := scramAttr(bare, "r")
	s.exchange.serverFirst = fmt.Sprintf("r=%ssrv,s=%s,i=%d",
		nonce, base64.StdEncoding.EncodeToString(s.Salt), s.Iterations)

	challenge := "scram handshakeToken=hstok, hash=SHA-256, data=" +
		base64.RawURLEncoding.EncodeToString([]byte(s.exchange.serverFirst))
	return respond(http.StatusUnauthorized, http.Header{
		"Www-Authenticate": []string{challenge},
	}, ""), nil
}

func (s *Server) scramFinal(clientFinal string) (*transport.Response, error) {
	withoutProof := "c=biws,r=" + scramAttr(clientFinal, "r")
	authMessage := s.exchange.clientFirstBare + "," + s.exchange.serverFirst + "," + withoutProof

	saltedPw := pbkdf2.Key([]byte(s.Password), s.Salt, s.Iterations, sha256.Size, sha256.New)
	clientKey := hmacSHA256(saltedPw, []byte("Client Key"))
	storedKey := sha256.Sum256(clientKey)
	sig := hmacSHA256(storedKey[:], []byte(authMessage))
	proof := make([]byte, len(clientKey))
	for i := range clientKey {
		proof[i] = clientKey[i] ^ sig[i]
	}
	if scramAttr(clientFinal, "p") != base64.StdEncoding.EncodeToString(proof) {
		s.exchange = nil
		return respond(http.StatusForbidden, nil, ""), nil
	}

	serverKey := hmacSHA256(saltedPw, []byte("Server Key"))
	serverSig := hmacSHA256(serverKey, []byte(authMessage))

	s.tokenSeq++
	token := fmt.Sprintf("tok-%d", s.tokenSeq)
	s.validTokens[token] = true
	s.AuthExchanges++
	s.exchange = nil

	info := "authToken=" + token + ", hash=SHA-256, data=" +
		base64.RawURLEncoding.EncodeToString([]byte(
			"v="+base64.StdEncoding.EncodeToString(serverSig)))
	return respond(http.StatusOK, http.Header{
		"Authentication-Info": []string{info},
	}, ""), nil
}

func (s *Server) op(req *transport.Request, token string) (*transport.Response, error) {
	s.mu.Lock()
	valid := s.validTokens[token] && !s.RefuseOps
	op := req.URL[strings.LastIndexByte(req.URL, '/')+1:]
	h := s.handlers[op]
	s.OpCalls++
	s.LastContentType = req.Header.Get("Content-Type")
	s.LastAccept = req.Header.Get("Accept")
	s.mu.Unlock()

	if !valid {
		return respond(http.StatusForbidden, nil, ""), nil
	}
	if h == nil {
		return respond(http.StatusNotFound, nil, ""), nil
	}

	var (
		reqGrid *value.Grid
		err     error
	)
	if strings.HasPrefix(req.Header.Get("Content-Type"), "application/json") {
		reqGrid, err = hayson.Decode(req.Body)
	} else {
		reqGrid, err = zinc.Decode(string(req.Body))
	}
	if err != nil {
		return nil, fmt.Errorf("testserver: bad request grid: %w", err)
	}
	respGrid, err := h(reqGrid)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(req.Header.Get("Accept"), "application/json") {
		body, err := hayson.Encode(respGrid)
		if err != nil {
			return nil, fmt.Errorf("testserver: bad response grid: %w", err)
		}
		return respond(http.StatusOK, http.Header{
			"Content-Type": []string{"application/json; charset=utf-8"},
		}, string(body)), nil
	}
	return respond(http.StatusOK, http.Header{
		"Content-Type": []string{"text/zinc; charset=utf-8"},
	}, zinc.Encode(respGrid)), nil
}

func scramAttr(msg, key string) string {
	for _, part := range strings.Split(msg, ",") {
		if v, ok := strings.CutPrefix(part, key+"="); ok {
			return v
		}
	}
	return ""
}

func hmacSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

func respond(status int, header http.Header, body string) *transport.Response {
	if header == nil {
		header = http.Header{}
	}
	return &transport.Response{Status: status, Header: header, Body: []byte(body)}
}

// Compile-time interface satisfaction check.
var _ transport.Sender = (*Server)(nil)
