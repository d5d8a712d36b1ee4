package domain

// Identity is the authenticated principal resulting from a successful token
// validation. It lives only in process memory for the duration of one live
// session and is never persisted.
type Identity struct {
	ID    string
	Email string
}

// IsIdentifier reports whether s is a well-formed identifier: non-empty and
// made of letters, digits, underscores or dashes. Both UUIDs and provider
// subjects like "user_123" qualify.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
