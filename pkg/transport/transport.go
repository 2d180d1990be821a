package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request is a fully buffered HTTP request.
type Request struct {
	// Method is the HTTP method, GET or POST for Haystack ops.
	Method string

	// URL is the absolute request URL.
	URL string

	// Header carries request headers. May be nil.
	Header http.Header

	// Body is the request body. Empty for GET requests.
	Body []byte
}

// Response is a fully buffered HTTP response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// Header carries the response headers.
	Header http.Header

	// Body is the complete response body.
	Body []byte
}

// Sender sends HTTP requests. Implemented by HTTPSender.
type Sender interface {
	// Send performs the request and buffers the response. A non-2xx
	// status is not an error at this layer; callers interpret it.
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Config configures an HTTPSender.
type Config struct {
	// Timeout is the per-request timeout applied when the context has
	// no deadline (default: 30s).
	Timeout time.Duration

	// UserAgent is sent with every request (default: "haystack-go").
	UserAgent string

	// MaxResponseSize caps how many response bytes are buffered
	// (default: 16MB).
	MaxResponseSize int64

	// Client overrides the underlying http.Client. Nil uses a fresh
	// client, so connection pools are not shared across sessions.
	Client *http.Client
}

// HTTPSender sends requests over net/http.
type HTTPSender struct {
	config Config
	client *http.Client
}

// Compile-time interface satisfaction check.
var _ Sender = (*HTTPSender)(nil)

// NewHTTPSender creates a sender, applying config defaults.
func NewHTTPSender(config Config) *HTTPSender {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "haystack-go"
	}
	if config.MaxResponseSize == 0 {
		config.MaxResponseSize = 16 << 20
	}
	client := config.Client
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSender{config: config, client: client}
}

// Send performs the request and buffers the response body.
func (s *HTTPSender) Send(ctx context.Context, req *Request) (*Response, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &Error{Op: "build request", URL: req.URL, Err: err}
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", s.config.UserAgent)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &Error{Op: "send", URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.config.MaxResponseSize+1))
	if err != nil {
		return nil, &Error{Op: "read response", URL: req.URL, Err: err}
	}
	if int64(len(data)) > s.config.MaxResponseSize {
		return nil, &Error{
			Op:  "read response",
			URL: req.URL,
			Err: fmt.Errorf("response exceeds %d bytes", s.config.MaxResponseSize),
		}
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   data,
	}, nil
}
