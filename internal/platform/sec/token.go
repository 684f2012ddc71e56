// Copyright (c) 2026 ScoreHub. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a URL-safe random token of byteLength entropy bytes.
func GenerateSecureToken(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Refresh tokens are stored only by hash so a leaked session store cannot be
// replayed directly.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
