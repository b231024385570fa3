package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testKey, "alice", RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(testKey, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParseToken_Rejects(t *testing.T) {
	valid, err := GenerateToken(testKey, "alice", RoleAdmin, time.Hour)
	require.NoError(t, err)

	expired, err := GenerateToken(testKey, "alice", RoleAdmin, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		key   []byte
		token string
	}{
		{name: "wrong key", key: []byte("another-key-another-key-another-k"), token: valid},
		{name: "expired", key: testKey, token: expired},
		{name: "garbage", key: testKey, token: "not.a.token"},
		{name: "unsigned", key: testKey, token: "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJyb2xlIjoiYWRtaW4ifQ."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.key, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
