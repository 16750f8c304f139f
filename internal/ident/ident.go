// Package ident derives stable user identifiers from email addresses.
// The identifier is the join key between the messaging service's user
// directory and the local store, so it must be deterministic.
package ident

// UserID maps an email address to an identifier containing only
// [A-Za-z0-9_-], replacing every other byte with '_'. An empty email
// yields an empty identifier.
func UserID(email string) string {
	if email == "" {
		return ""
	}
	out := make([]byte, len(email))
	for i := 0; i < len(email); i++ {
		c := email[i]
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '_', c == '-':
			out[i] = c
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
