package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	accountID := uuid.New()

	token, err := manager.Issue(accountID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, got)
}

func TestTokenManager_Verify_Invalid(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Garbage token", token: "not-a-token"},
		{name: "Empty token", token: ""},
		{
			name: "Wrong secret",
			token: func() string {
				other := NewTokenManager("other-secret", time.Hour)
				tok, err := other.Issue(uuid.New())
				require.NoError(t, err)
				return tok
			}(),
		},
		{
			name: "Expired token",
			token: func() string {
				expired := NewTokenManager("test-secret", -time.Hour)
				tok, err := expired.Issue(uuid.New())
				require.NoError(t, err)
				return tok
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least")
}
