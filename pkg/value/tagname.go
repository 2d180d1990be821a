package value

// IsTagName reports whether s is a valid tag name: a lowercase ASCII
// letter followed by ASCII alphanumerics and underscores.
func IsTagName(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlphaNum(c) && c != '_' {
			return false
		}
	}
	return true
}

// IsRefID reports whether s is a valid Ref identifier. Ref identifiers
// allow ASCII alphanumerics plus underscore, colon, dash, period and
// tilde, and must be non-empty.
func IsRefID(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isAlphaNum(c):
		case c == '_' || c == ':' || c == '-' || c == '.' || c == '~':
		default:
			return false
		}
	}
	return true
}
