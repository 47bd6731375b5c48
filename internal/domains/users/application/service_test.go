package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	usersmemory "github.com/belandja/commerce-api/internal/domains/users/adapters/memory"
	"github.com/belandja/commerce-api/internal/domains/users/ports"
	"github.com/belandja/commerce-api/internal/platform/auth"
)

func newUserService(t *testing.T) *Service {
	t.Helper()
	tokens, err := auth.NewManager("test-secret", time.Hour)
	require.NoError(t, err)
	return NewService(usersmemory.NewRepository(), tokens)
}

func TestRegister_AssignsIDAndDefaultRole(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register(context.Background(), "Dian Pertiwi", "dian@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, []string{"user"}, user.Roles)
	require.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register(context.Background(), "Dian Pertiwi", "dian@example.com", "secret123")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "Other Person", "dian@example.com", "different1")
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	tokens, err := auth.NewManager("test-secret", time.Hour)
	require.NoError(t, err)
	svc := NewService(usersmemory.NewRepository(), tokens)

	registered, err := svc.Register(context.Background(), "Dian Pertiwi", "dian@example.com", "secret123")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "dian@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	identity, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, identity.UserID)
	require.Equal(t, []string{"user"}, identity.Roles)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register(context.Background(), "Dian Pertiwi", "dian@example.com", "secret123")
	require.NoError(t, err)
	_, _, err = svc.Login(context.Background(), "dian@example.com", "wrong-pass")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	svc := newUserService(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestUpdateProfile_ChangesFullName(t *testing.T) {
	svc := newUserService(t)

	registered, err := svc.Register(context.Background(), "Dian Pertiwi", "dian@example.com", "secret123")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), registered.ID, "Dian P. Sari")
	require.NoError(t, err)
	require.Equal(t, "Dian P. Sari", updated.FullName)

	loaded, err := svc.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	require.Equal(t, "Dian P. Sari", loaded.FullName)
}
