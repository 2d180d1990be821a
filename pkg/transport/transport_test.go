package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendBuffersResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "text/zinc", r.Header.Get("Content-Type"))
		assert.Equal(t, "haystack-go", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/zinc; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ver:\"3.0\"\nempty\n"))
	}))
	defer srv.Close()

	s := NewHTTPSender(Config{})
	resp, err := s.Send(context.Background(), &Request{
		Method: "POST",
		URL:    srv.URL + "/api/demo/read",
		Header: http.Header{"Content-Type": []string{"text/zinc"}},
		Body:   []byte("ver:\"3.0\"\nfilter\n\"site\"\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "ver:\"3.0\"\nempty\n", string(resp.Body))
}

func TestSendErrorStatusIsNotTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewHTTPSender(Config{})
	resp, err := s.Send(context.Background(), &Request{Method: "GET", URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.Status)
}

func TestSendNetworkError(t *testing.T) {
	s := NewHTTPSender(Config{})
	_, err := s.Send(context.Background(), &Request{
		Method: "GET",
		URL:    "http://127.0.0.1:1/about",
	})
	require.Error(t, err)
	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "send", terr.Op)
}

func TestSendResponseSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 2048))
	}))
	defer srv.Close()

	s := NewHTTPSender(Config{MaxResponseSize: 1024})
	_, err := s.Send(context.Background(), &Request{Method: "GET", URL: srv.URL})
	require.Error(t, err)
	var terr *Error
	require.True(t, errors.As(err, &terr))
}

func TestSendContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewHTTPSender(Config{})
	_, err := s.Send(ctx, &Request{Method: "GET", URL: srv.URL})
	require.Error(t, err)
}
