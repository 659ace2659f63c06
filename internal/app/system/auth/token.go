package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// DefaultTokenBytes is the entropy of a session token before encoding.
const DefaultTokenBytes = 16

// NewToken returns a fresh random session token. n is the number of
// random bytes; the token is their unpadded URL-safe base64 encoding,
// so it can ride in a URL path segment.
func NewToken(n int) (string, error) {
	if n <= 0 {
		n = DefaultTokenBytes
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
