// Package directory resolves order owners through the users bounded context.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/belandja/commerce-api/internal/domains/orders/ports"
	usersports "github.com/belandja/commerce-api/internal/domains/users/ports"
)

var _ ports.UserDirectory = (*UserDirectory)(nil)

// UserDirectory exposes users as notification recipients.
type UserDirectory struct {
	users usersports.Repository
}

func NewUserDirectory(users usersports.Repository) *UserDirectory {
	return &UserDirectory{users: users}
}

func (d *UserDirectory) FindRecipient(ctx context.Context, userID string) (*ports.Recipient, error) {
	user, err := d.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usersports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ports.ErrUserNotFound, userID)
		}
		return nil, err
	}
	return &ports.Recipient{ID: user.ID, FullName: user.FullName, Email: user.Email}, nil
}
