package util

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const secret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(sub string) *Claims {
	return &Claims{
		Email: "alice@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestValidateJWT(t *testing.T) {
	t.Run("should accept an HMAC token and expose the subject", func(t *testing.T) {
		req := require.New(t)
		token := sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims("user-1"))

		claims, err := ValidateJWT(token, secret)

		req.NoError(err)
		req.Equal("user-1", claims.Subject)
		req.Equal("alice@example.com", claims.Email)
	})

	t.Run("should accept an ECDSA token signed by the configured key", func(t *testing.T) {
		req := require.New(t)
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		req.NoError(err)
		der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
		req.NoError(err)
		pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
		token := sign(t, jwt.SigningMethodES256, priv, validClaims("user-2"))

		claims, err := ValidateJWT(token, pemKey)

		req.NoError(err)
		req.Equal("user-2", claims.Subject)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		req := require.New(t)
		token := sign(t, jwt.SigningMethodHS256, []byte("other-secret"), validClaims("user-1"))

		_, err := ValidateJWT(token, secret)

		req.Error(err)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)
		claims := validClaims("user-1")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := sign(t, jwt.SigningMethodHS256, []byte(secret), claims)

		_, err := ValidateJWT(token, secret)

		req.ErrorIs(err, jwt.ErrTokenExpired)
	})

	t.Run("should reject a token without a subject", func(t *testing.T) {
		req := require.New(t)
		token := sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims(""))

		_, err := ValidateJWT(token, secret)

		req.ErrorIs(err, ErrMissingSubject)
	})

	t.Run("should reject the none algorithm", func(t *testing.T) {
		req := require.New(t)
		token := sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims("user-1"))

		_, err := ValidateJWT(token, secret)

		req.Error(err)
	})
}
