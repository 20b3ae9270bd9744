package domain

import "strings"

// TokenSignature extracts the opaque verification segment of an issued
// bearer token of the form <header>.<payload>.<signature>. The result is the
// sole session lookup key. Tokens with fewer than three segments yield an
// empty string and can therefore never match a stored session.
func TokenSignature(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) > 2 {
		return parts[2]
	}
	return ""
}
