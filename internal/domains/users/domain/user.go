package domain

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrEmptyFullName = errors.New("full name is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
)

// User represents an account that can place orders.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Roles        []string
}

// NewUser builds a user ensuring required invariants.
func NewUser(id, fullName, email, password string) (*User, error) {
	user := &User{ID: id}
	if err := user.SetFullName(fullName); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetFullName trims and validates the display name.
func (u *User) SetFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return ErrEmptyFullName
	}
	u.FullName = fullName
	return nil
}

// SetEmail normalizes and validates the address.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword validates basic strength and stores a digest.
func (u *User) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 6 {
		return ErrWeakPassword
	}
	u.PasswordHash = hashPassword(u.Email, password)
	return nil
}

// CheckPassword compares the stored digest with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	candidate := hashPassword(u.Email, strings.TrimSpace(password))
	return subtle.ConstantTimeCompare([]byte(u.PasswordHash), []byte(candidate)) == 1
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if strings.TrimSpace(u.FullName) == "" {
		return ErrEmptyFullName
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}

func hashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return hex.EncodeToString(sum[:])
}
