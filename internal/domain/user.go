package domain

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates the the user is not found.
	ErrUserNotFound = errors.New("User not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("Wrong password")
)

// User is a credential entry: the login name bound to one account.
//
// The login name is the account holder name, so two accounts opened by
// holders with the same name share one entry and the later registration wins.
type User struct {
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	AccountNumber  string    `json:"account_number"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to register credentials.
type CreateUserParams struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	AccountNumber  string `json:"account_number"`
}

// UserWihtoutPassword is User data excluding password data.
type UserWihtoutPassword struct {
	Username      string    `json:"username"`
	AccountNumber string    `json:"account_number"`
	CreatedAt     time.Time `json:"created_at"`
}
