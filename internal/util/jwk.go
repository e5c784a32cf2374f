package util

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"math/big"
)

type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK is an elliptic-curve JSON Web Key as published by Supabase Auth.
type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	Alg string `json:"alg"`
	Use string `json:"use"`
}

// SigningKey returns the first ES256 key in the set.
func (s JWKS) SigningKey() (JWK, error) {
	for _, k := range s.Keys {
		if k.Kty == "EC" && k.Alg == "ES256" {
			return k, nil
		}
	}
	return JWK{}, fmt.Errorf("no EC/ES256 key among %d keys", len(s.Keys))
}

// PEM encodes the key as a PKIX public key block usable as SUPABASE_JWT_SECRET.
func (k JWK) PEM() (string, error) {
	if k.Kty != "EC" || k.Crv != "P-256" {
		return "", fmt.Errorf("unsupported key %s/%s", k.Kty, k.Crv)
	}
	x, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil {
		return "", fmt.Errorf("decoding x coordinate: %w", err)
	}
	y, err := base64.RawURLEncoding.DecodeString(k.Y)
	if err != nil {
		return "", fmt.Errorf("decoding y coordinate: %w", err)
	}

	pub := &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(x),
		Y:     new(big.Int).SetBytes(y),
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshaling public key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}
