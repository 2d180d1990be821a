package auth

import (
	"context"
	"net/http"

	"github.com/haystack-rest/haystack-go/pkg/transport"
)

// Authenticate runs a complete SCRAM exchange against url, typically
// the project's about endpoint, and returns the auth token.
func Authenticate(ctx context.Context, sender transport.Sender, url, username, password string) (string, error) {
	e := NewExchange(username, password)
	return e.run(ctx, sender, url)
}

func (e *Exchange) run(ctx context.Context, sender transport.Sender, url string) (string, error) {
	hello, err := e.Hello()
	if err != nil {
		return "", err
	}
	resp, err := send(ctx, sender, url, hello)
	if err != nil {
		return "", e.fail(err)
	}
	if resp.Status != http.StatusUnauthorized {
		return "", e.fail(invalidServerMessagef("hello answered with status %d, want 401", resp.Status))
	}

	first, err := e.First(resp.Header.Get("Www-Authenticate"))
	if err != nil {
		return "", err
	}
	resp, err = send(ctx, sender, url, first)
	if err != nil {
		return "", e.fail(err)
	}
	if resp.Status != http.StatusUnauthorized {
		return "", e.fail(invalidServerMessagef("client-first answered with status %d, want 401", resp.Status))
	}

	final, err := e.Final(resp.Header.Get("Www-Authenticate"))
	if err != nil {
		return "", err
	}
	resp, err = send(ctx, sender, url, final)
	if err != nil {
		return "", e.fail(err)
	}
	switch resp.Status {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusUnauthorized:
		return "", e.fail(ErrInvalidCredentials)
	default:
		return "", e.fail(invalidServerMessagef("client-final answered with status %d", resp.Status))
	}

	if err := e.Verify(resp.Header.Get("Authentication-Info")); err != nil {
		return "", err
	}
	return e.Token(), nil
}

func send(ctx context.Context, sender transport.Sender, url, authorization string) (*transport.Response, error) {
	return sender.Send(ctx, &transport.Request{
		Method: http.MethodGet,
		URL:    url,
		Header: http.Header{"Authorization": []string{authorization}},
	})
}
