package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_Generate(t *testing.T) {
	svc := NewTokenService()

	plain, hash, err := svc.Generate()
	require.NoError(t, err)

	assert.NotEmpty(t, plain)
	assert.Len(t, hash, 64)
	assert.Equal(t, svc.Hash(plain), hash)
	assert.NotEqual(t, plain, hash)
}

func TestTokenService_Generate_Unique(t *testing.T) {
	svc := NewTokenService()

	first, _, err := svc.Generate()
	require.NoError(t, err)
	second, _, err := svc.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenService_Hash_Deterministic(t *testing.T) {
	svc := NewTokenService()

	assert.Equal(t, svc.Hash("token-a"), svc.Hash("token-a"))
	assert.NotEqual(t, svc.Hash("token-a"), svc.Hash("token-b"))
}
