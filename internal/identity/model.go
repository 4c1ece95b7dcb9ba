package identity

import (
	"errors"
	"time"
)

var (
	// ErrDuplicateAccount indicates the username is already taken.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrNotFound indicates no account matches the lookup.
	ErrNotFound = errors.New("account not found")

	// ErrInvalidCredentials covers both unknown usernames and bad passwords
	// so login failures stay indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a registered wallet owner. Admin accounts resolve pending
// requests and manage the plan catalog.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Admin        bool
	CreatedAt    time.Time
}

// Credentials carries a username/password pair across the registration and
// login paths.
type Credentials struct {
	Username string
	Password string
}
