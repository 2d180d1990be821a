package session

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL validates a project URL and returns it with a trailing
// slash, query and fragment stripped. The path must be exactly
// /api/{project}/.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) != 2 || segments[0] != "api" || segments[1] == "" {
		return "", fmt.Errorf("%w: path must be /api/{project}/, got %q", ErrInvalidURL, u.Path)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// ProjectName extracts the project segment from a normalized URL.
func ProjectName(normalized string) string {
	trimmed := strings.TrimSuffix(normalized, "/")
	return trimmed[strings.LastIndexByte(trimmed, '/')+1:]
}
