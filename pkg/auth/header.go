package auth

import (
	"encoding/base64"
	"strings"
)

// encodeURL renders bytes as base64url without padding, the envelope
// encoding used in the Authorization headers.
func encodeURL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeURL(s string) ([]byte, error) {
	// Some servers pad their base64url output.
	s = strings.TrimRight(s, "=")
	return base64.RawURLEncoding.DecodeString(s)
}

// parseAuthHeader splits a www-authenticate or authentication-info
// header into its scheme and key=value parameters.
//
// "scram hash=SHA-256, handshakeToken=aab" parses to scheme "scram"
// and {hash: SHA-256, handshakeToken: aab}. An authentication-info
// header has no scheme word; its first token contains '=' and the
// scheme comes back empty.
func parseAuthHeader(header string) (scheme string, params map[string]string) {
	header = strings.TrimSpace(header)
	rest := header
	if i := strings.IndexByte(header, ' '); i >= 0 && !strings.Contains(header[:i], "=") {
		scheme = strings.ToLower(header[:i])
		rest = header[i+1:]
	} else if !strings.Contains(header, "=") {
		return strings.ToLower(header), map[string]string{}
	}

	params = map[string]string{}
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return scheme, params
}

// parseScramAttrs splits a SCRAM message such as
// "r=nonce,s=salt,i=4096" into its single-letter attributes. The
// value keeps any '=' characters, which standard base64 uses for
// padding.
func parseScramAttrs(msg string) map[string]string {
	attrs := map[string]string{}
	for _, part := range strings.Split(msg, ",") {
		key, val, ok := strings.Cut(part, "=")
		if !ok || len(key) != 1 {
			continue
		}
		attrs[key] = val
	}
	return attrs
}

// saslName escapes the two characters SCRAM reserves inside the n=
// attribute, per RFC 5802 section 5.1.
func saslName(s string) string {
	s = strings.ReplaceAll(s, "=", "=3D")
	return strings.ReplaceAll(s, ",", "=2C")
}
