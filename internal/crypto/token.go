package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// tokenBytes is the entropy of a raw session token. 64 random bytes
// encoded as base64 give clients an opaque blob of fixed length with
// no internal structure.
const tokenBytes = 64

// GenerateSessionToken returns a new raw bearer token. The raw value is
// handed to the client once and never persisted.
func GenerateSessionToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// HashSessionToken computes the one-way digest stored in place of the
// raw token. Lookups compare digests only.
func HashSessionToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
