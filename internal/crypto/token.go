package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenBytes is the amount of entropy in an access token. The hex encoding
// doubles it, so tokens are 256 characters long.
const TokenBytes = 128

// NewAccessToken returns a random hex-encoded bearer token.
func NewAccessToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
