package util

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the Supabase access token claims the API relies on.
// The authenticated user id is the registered subject.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

var ErrMissingSubject = errors.New("token has no subject")

// keyFuncFor picks the verification key for the token's algorithm family.
// keyMaterial is the shared secret for HMAC or a PEM public key otherwise.
func keyFuncFor(keyMaterial string) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(keyMaterial), nil
		case *jwt.SigningMethodRSA:
			key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(keyMaterial))
			if err != nil {
				return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
			}
			return key, nil
		case *jwt.SigningMethodECDSA:
			key, err := jwt.ParseECPublicKeyFromPEM([]byte(keyMaterial))
			if err != nil {
				return nil, fmt.Errorf("failed to parse ECDSA public key: %w", err)
			}
			return key, nil
		default:
			return nil, fmt.Errorf("unsupported signing algorithm: %v", token.Header["alg"])
		}
	}
}

// ValidateJWT verifies tokenString and returns its claims.
func ValidateJWT(tokenString string, keyMaterial string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		keyFuncFor(keyMaterial),
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512", "RS256", "RS384", "RS512", "ES256", "ES384", "ES512"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
