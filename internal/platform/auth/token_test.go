package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	mgr, err := NewManager("unit-test-secret", time.Hour)
	require.NoError(t, err)

	token, err := mgr.Issue("user-1", []string{"user"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := mgr.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", identity.UserID)
	require.Equal(t, []string{"user"}, identity.Roles)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, err := NewManager("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewManager("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("user-1", nil)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	mgr, err := NewManager("unit-test-secret", -time.Minute)
	require.NoError(t, err)
	// ttl <= 0 falls back to 24h, so expiry must be forced via a stale token string instead.
	mgr.ttl = -time.Minute

	token, err := mgr.Issue("user-1", nil)
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager("  ", time.Hour)
	require.ErrorIs(t, err, ErrMissingSecret)
}
