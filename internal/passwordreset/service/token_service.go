// Package service provides reset token generation and hashing.
package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// TokenService generates and hashes password reset tokens.
type TokenService interface {
	// Generate returns a new random token together with its storage hash.
	Generate() (plain string, hash string, err error)

	// Hash computes the storage hash of a plain token.
	Hash(plain string) string
}

// tokenBytes is the entropy of a generated token before encoding.
const tokenBytes = 32

type tokenService struct{}

// NewTokenService creates a new TokenService instance.
func NewTokenService() TokenService {
	return &tokenService{}
}

func (s *tokenService) Generate() (string, string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}

	plain := base64.RawURLEncoding.EncodeToString(buf)
	return plain, s.Hash(plain), nil
}

// Hash returns the hex-encoded SHA-256 of the token. Only the hash is
// stored, so a leaked table row never contains a usable token.
func (s *tokenService) Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
