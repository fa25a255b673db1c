// Package passpkg derives and checks password verifiers.
package passpkg

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Supported hasher names.
const (
	SHA256 = "sha256"
	Bcrypt = "bcrypt"
)

// ErrMismatchedPassword indicates that the password does not match the verifier.
var ErrMismatchedPassword = errors.New("password does not match verifier")

// Hasher turns a plaintext password into a verifier and checks it back.
type Hasher interface {
	Hash(password string) (string, error)
	Check(password, hashed string) error
}

// New returns the hasher registered under name.
func New(name string) (Hasher, error) {
	switch name {
	case "", SHA256:
		return SHA256Hasher{}, nil
	case Bcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	}

	return nil, fmt.Errorf("unsupported password hasher %q", name)
}

// SHA256Hasher produces the hex encoded SHA-256 digest of the password.
//
// The digest is unsalted and deterministic: the same password always yields
// the same verifier, which makes it open to precomputed lookup tables.
type SHA256Hasher struct{}

// Hash returns the verifier of password.
func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// Check returns ErrMismatchedPassword if password does not produce hashed.
func (h SHA256Hasher) Check(password, hashed string) error {
	got, _ := h.Hash(password)

	if subtle.ConstantTimeCompare([]byte(got), []byte(hashed)) != 1 {
		return ErrMismatchedPassword
	}

	return nil
}

// BcryptHasher produces salted bcrypt verifiers.
type BcryptHasher struct {
	Cost int
}

// Hash returns the bcrypt hash of the password.
func (h BcryptHasher) Hash(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedPassword), nil
}

// Check checks if the provided password is correct or not.
func (BcryptHasher) Check(password, hashed string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedPassword
	}

	return err
}
