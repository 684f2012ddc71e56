// Copyright (c) 2026 ScoreHub. All rights reserved.

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorehub/scorehub/internal/platform/sec"
)

// writeKeyPair generates a throwaway RSA key pair on disk for the service
// constructor, which only accepts filesystem paths.
func writeKeyPair(t *testing.T) (privatePath, publicPath string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()

	privatePath = filepath.Join(dir, "jwt.pem")
	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))

	publicBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicPath = filepath.Join(dir, "jwt.pub.pem")
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicBytes,
	})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))

	return privatePath, publicPath
}

func TestTokenService(t *testing.T) {
	privatePath, publicPath := writeKeyPair(t)

	service, err := sec.NewTokenService(privatePath, publicPath, "test-issuer")
	require.NoError(t, err)

	actor := &sec.Actor{ID: 42, Username: "sam", Role: sec.RoleModerator}

	t.Run("roundtrip_restores_actor", func(t *testing.T) {
		token, err := service.GenerateAccessToken(actor, time.Minute)
		require.NoError(t, err)

		claims, err := service.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, "test-issuer", claims.Issuer)

		restored := claims.Actor()
		assert.Equal(t, actor.ID, restored.ID)
		assert.Equal(t, actor.Username, restored.Username)
		assert.Equal(t, actor.Role, restored.Role)
		assert.False(t, restored.IsSuperuser)
	})

	t.Run("expired_token_rejected", func(t *testing.T) {
		token, err := service.GenerateAccessToken(actor, -time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("tampered_token_rejected", func(t *testing.T) {
		token, err := service.GenerateAccessToken(actor, time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token + "x")
		assert.Error(t, err)
	})

	t.Run("foreign_key_rejected", func(t *testing.T) {
		otherPrivate, otherPublic := writeKeyPair(t)
		other, err := sec.NewTokenService(otherPrivate, otherPublic, "test-issuer")
		require.NoError(t, err)

		token, err := other.GenerateAccessToken(actor, time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("nil_claims_actor_is_anonymous", func(t *testing.T) {
		var claims *sec.AuthClaims
		assert.Nil(t, claims.Actor())
	})
}
