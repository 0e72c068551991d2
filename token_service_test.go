package assets_test

import (
	"testing"
	"time"

	assets "github.com/goliatone/go-assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokens(key string) assets.TokenService {
	return assets.NewTokenService([]byte(key), time.Hour, "go-assets-test", []string{"go-assets"}, nil)
}

func TestTokenRoundTripPreservesSession(t *testing.T) {
	tokens := newTokens("secret-key")
	session := assets.NewSession(&assets.User{Username: "alice", Role: "Approver"})

	raw, err := tokens.Generate(session)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	restored, err := tokens.Validate(raw)
	require.NoError(t, err)
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "alice", restored.Username)
	assert.Equal(t, assets.RoleApprover, restored.Role)
}

func TestTokenRejectsWrongKey(t *testing.T) {
	session := assets.NewSession(&assets.User{Username: "alice", Role: "approver"})

	raw, err := newTokens("key-one").Generate(session)
	require.NoError(t, err)

	_, err = newTokens("key-two").Validate(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, assets.ErrTokenInvalid)
}

func TestTokenRejectsGarbage(t *testing.T) {
	_, err := newTokens("secret-key").Validate("not-a-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, assets.ErrTokenInvalid)
}

func TestTokenRefusesUnauthenticatedSession(t *testing.T) {
	_, err := newTokens("secret-key").Generate(&assets.Session{Username: "alice"})
	require.Error(t, err)
}

func TestTokenExpires(t *testing.T) {
	tokens := assets.NewTokenService([]byte("secret-key"), -time.Minute, "go-assets-test", nil, nil)
	session := assets.NewSession(&assets.User{Username: "alice", Role: "approver"})

	raw, err := tokens.Generate(session)
	require.NoError(t, err)

	_, err = newTokens("secret-key").Validate(raw)
	require.Error(t, err)
}
