package session

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haystack-rest/haystack-go/pkg/auth"
	"github.com/haystack-rest/haystack-go/pkg/hayson"
	"github.com/haystack-rest/haystack-go/pkg/log"
	"github.com/haystack-rest/haystack-go/pkg/transport"
	"github.com/haystack-rest/haystack-go/pkg/value"
	"github.com/haystack-rest/haystack-go/pkg/zinc"
)

const (
	zincMime   = "text/zinc"
	haysonMime = "application/json"
)

// Format selects the wire codec for a call. The request body and the
// Content-Type and Accept headers all follow it.
type Format int

const (
	// FormatZinc is the compact text encoding, the default.
	FormatZinc Format = iota
	// FormatHayson is the JSON encoding.
	FormatHayson
)

func (f Format) String() string {
	if f == FormatHayson {
		return "hayson"
	}
	return "zinc"
}

func (f Format) mime() string {
	if f == FormatHayson {
		return haysonMime
	}
	return zincMime
}

// Config configures a Session.
type Config struct {
	// URL is the project URL, e.g. "https://host/api/demo/". A
	// missing trailing slash is added.
	URL string

	// Username and Password are the SCRAM credentials.
	Username string
	Password string

	// Token seeds the session with a previously issued auth token,
	// skipping the handshake until the server refuses it.
	Token string

	// Sender is the HTTP layer (default: a fresh HTTPSender).
	Sender transport.Sender

	// Logger receives capture events (default: NoopLogger).
	Logger log.Logger
}

// Session is an authenticated connection to one project. Safe for
// concurrent use.
type Session struct {
	url      string
	project  string
	username string
	password string
	sender   transport.Sender
	logger   log.Logger
	id       string

	mu      sync.Mutex
	token   string
	gen     int
	renewal chan struct{}
	renewErr error
}

// New validates the config and creates a Session. No request is sent
// until Open or the first Call.
func New(cfg Config) (*Session, error) {
	normalized, err := NormalizeURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Sender == nil {
		cfg.Sender = transport.NewHTTPSender(transport.Config{})
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NoopLogger{}
	}
	return &Session{
		url:      normalized,
		project:  ProjectName(normalized),
		username: cfg.Username,
		password: cfg.Password,
		sender:   cfg.Sender,
		logger:   cfg.Logger,
		id:       uuid.NewString(),
		token:    cfg.Token,
	}, nil
}

// Token returns the current auth token, empty before the first
// exchange. A caller may carry it into a later Session via
// Config.Token.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// URL returns the normalized project URL, trailing slash included.
func (s *Session) URL() string { return s.url }

// Project returns the project name from the URL.
func (s *Session) Project() string { return s.project }

// ID returns the session's correlation UUID.
func (s *Session) ID() string { return s.id }

// Open authenticates eagerly. Calling Open is optional; the first
// Call authenticates on demand.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	token := s.token
	s.mu.Unlock()
	if token != "" {
		return nil
	}
	_, err := s.renew(ctx, gen, false)
	return err
}

// Call posts a request grid to the op endpoint, serialized with the
// codec matching format, and decodes the response. A nil request
// sends the canonical empty grid. An expired token triggers one
// re-authentication and one retry.
func (s *Session) Call(ctx context.Context, op string, req *value.Grid, format Format) (*value.Grid, error) {
	if req == nil {
		empty, err := value.GridFromRows(nil)
		if err != nil {
			return nil, err
		}
		req = empty
	}
	body, err := encodeRequest(req, format)
	if err != nil {
		return nil, err
	}
	callID := uuid.NewString()

	token, gen, err := s.currentToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.post(ctx, op, body, token, callID, format)
	if err != nil {
		return nil, err
	}
	if resp.Status == http.StatusForbidden {
		token, err = s.renew(ctx, gen, true)
		if err != nil {
			return nil, err
		}
		resp, err = s.post(ctx, op, body, token, callID, format)
		if err != nil {
			return nil, err
		}
		if resp.Status == http.StatusForbidden {
			s.logError(callID, op, resp.Status, "token refused after renewal")
			return nil, ErrAuthExpired
		}
	}
	if resp.Status < 200 || resp.Status > 299 {
		s.logError(callID, op, resp.Status, "http error status")
		return nil, &CallError{Op: op, Status: resp.Status}
	}

	grid, err := decodeResponse(resp)
	if err != nil {
		return nil, err
	}
	if grid.IsErr() {
		oerr := &OpError{Op: op, Dis: grid.ErrDis(), Trace: grid.ErrTrace()}
		s.logError(callID, op, resp.Status, oerr.Dis)
		return nil, oerr
	}
	return grid, nil
}

// currentToken returns the token and its generation, authenticating
// first if the session was never opened.
func (s *Session) currentToken(ctx context.Context) (string, int, error) {
	s.mu.Lock()
	token, gen := s.token, s.gen
	s.mu.Unlock()
	if token != "" {
		return token, gen, nil
	}
	token, err := s.renew(ctx, gen, false)
	if err != nil {
		return "", 0, err
	}
	s.mu.Lock()
	gen = s.gen
	s.mu.Unlock()
	return token, gen, nil
}

// renew runs the SCRAM exchange unless another caller already renewed
// past seenGen or is renewing right now, in which case the result of
// that renewal is returned.
func (s *Session) renew(ctx context.Context, seenGen int, renewal bool) (string, error) {
	s.mu.Lock()
	if s.gen != seenGen && s.token != "" {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	if s.renewal != nil {
		ch := s.renewal
		s.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return "", ctx.Err()
		}
		s.mu.Lock()
		token, err := s.token, s.renewErr
		s.mu.Unlock()
		if err != nil {
			return "", err
		}
		return token, nil
	}

	ch := make(chan struct{})
	s.renewal = ch
	s.mu.Unlock()

	token, err := auth.Authenticate(ctx, s.sender, s.url+"about", s.username, s.password)

	s.mu.Lock()
	s.renewal = nil
	s.renewErr = err
	if err == nil {
		s.token = token
		s.gen++
	}
	s.mu.Unlock()
	close(ch)

	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Category:  log.CategoryAuth,
		Project:   s.project,
		Auth:      &log.AuthEvent{Phase: log.PhaseVerify, OK: err == nil, Renewal: renewal},
	})
	s.logStateChange(renewal, err)
	if err != nil {
		return "", err
	}
	return token, nil
}

// logStateChange records the session lifecycle transition that the
// completed exchange caused.
func (s *Session) logStateChange(renewal bool, err error) {
	oldState := "unauthenticated"
	reason := "open"
	if renewal {
		oldState = "expired"
		reason = "token refused"
	}
	newState := "authenticated"
	if err != nil {
		newState = "failed"
	}
	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Category:  log.CategoryState,
		Project:   s.project,
		StateChange: &log.StateChangeEvent{
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (s *Session) post(ctx context.Context, op string, body []byte, token, callID string, format Format) (*transport.Response, error) {
	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		CallID:    callID,
		Category:  log.CategoryOp,
		Project:   s.project,
		Op:        &log.OpEvent{Op: op, BodyBytes: len(body)},
	})
	start := time.Now()

	resp, err := s.sender.Send(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    s.url + op,
		Header: http.Header{
			"Authorization": []string{"BEARER authToken=" + token},
			"Content-Type":  []string{format.mime() + "; charset=utf-8"},
			"Accept":        []string{format.mime()},
		},
		Body: body,
	})
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		CallID:    callID,
		Category:  log.CategoryOp,
		Project:   s.project,
		Op: &log.OpEvent{
			Op:        op,
			Response:  true,
			Status:    resp.Status,
			BodyBytes: len(resp.Body),
			Duration:  &elapsed,
		},
	})
	return resp, nil
}

func (s *Session) logError(callID, op string, status int, msg string) {
	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		CallID:    callID,
		Category:  log.CategoryError,
		Project:   s.project,
		Error:     &log.ErrorEventData{Message: msg, Context: op, Status: &status},
	})
}

func encodeRequest(g *value.Grid, format Format) ([]byte, error) {
	if format == FormatHayson {
		return hayson.Encode(g)
	}
	return []byte(zinc.Encode(g)), nil
}

// decodeResponse picks the codec from the Content-Type header. Zinc
// is the default; servers answering JSON get the Hayson decoder.
func decodeResponse(resp *transport.Response) (*value.Grid, error) {
	ct := resp.Header.Get("Content-Type")
	if strings.HasPrefix(ct, haysonMime) {
		return hayson.Decode(resp.Body)
	}
	return zinc.Decode(string(resp.Body))
}
