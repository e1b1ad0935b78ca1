package pkg

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateRandomString returns a URL-safe, base64 encoded
// securely generated random string, built from n random bytes.
func GenerateRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
