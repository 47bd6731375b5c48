package mapper

import (
	"github.com/belandja/commerce-api/internal/domains/users/domain"
)

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the credential exchange payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileRequest is the profile update payload.
type ProfileRequest struct {
	FullName string `json:"fullName"`
}

// UserResponse is the transport representation of a user. The password hash
// never leaves the service.
type UserResponse struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// FromDomainUser converts a domain user to the transport representation.
func FromDomainUser(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Roles:    user.Roles,
	}
}
