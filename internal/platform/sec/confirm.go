// Copyright (c) 2026 ScoreHub. All rights reserved.

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/crypto/hkdf"
)

// # Confirmation Codes
//
// A confirmation code is never stored. It is deterministically derived from the
// user's current mutable state, so any state change (such as the successful
// token exchange stamping last_login_at) implicitly invalidates every code
// issued before it. Codes therefore need no persistence, no expiry column, and
// no cleanup job.

// confirmCodeBytes is the truncated HMAC length; 10 bytes hex-encode to a
// 20-character code, short enough to paste from an email.
const confirmCodeBytes = 10

// UserState is the subset of account state a confirmation code is bound to.
type UserState struct {
	ID          int64
	Username    string
	Email       string
	LastLoginAt *time.Time
}

// CodeGenerator derives and checks confirmation codes.
type CodeGenerator struct {
	secret []byte
}

// NewCodeGenerator creates a generator keyed by the application secret.
func NewCodeGenerator(secret string) *CodeGenerator {
	return &CodeGenerator{secret: []byte(secret)}
}

// Make derives the confirmation code for the user's current state.
func (generator *CodeGenerator) Make(state UserState) (string, error) {
	key, err := generator.deriveKey(state.ID)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, key)
	io.WriteString(mac, generator.stateFingerprint(state))

	return hex.EncodeToString(mac.Sum(nil)[:confirmCodeBytes]), nil
}

// Check reports whether code is valid for the user's current state.
// The comparison is constant-time.
func (generator *CodeGenerator) Check(state UserState, code string) bool {
	expected, err := generator.Make(state)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(code))
}

// deriveKey expands the application secret into a per-user HMAC key so that
// codes for different users are unlinkable even under an identical state
// fingerprint.
func (generator *CodeGenerator) deriveKey(userID int64) ([]byte, error) {
	salt := []byte("scorehub:confirm:" + strconv.FormatInt(userID, 10))
	reader := hkdf.New(sha256.New, generator.secret, salt, []byte("confirmation-code"))

	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("sec: failed to derive confirmation key: %w", err)
	}
	return key, nil
}

// stateFingerprint serializes the mutable fields the code is bound to.
func (generator *CodeGenerator) stateFingerprint(state UserState) string {
	lastLogin := ""
	if state.LastLoginAt != nil {
		lastLogin = strconv.FormatInt(state.LastLoginAt.UnixNano(), 10)
	}
	return fmt.Sprintf("%d|%s|%s|%s", state.ID, state.Username, state.Email, lastLogin)
}
