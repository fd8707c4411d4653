// Package password hashes user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest password bcrypt can hash without truncating.
const MaxLength = 72

// Cost is the bcrypt work factor used by Hash.
var Cost = bcrypt.DefaultCost

var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrPasswordTooLong   = fmt.Errorf("password cannot be longer than %d bytes", MaxLength)
	ErrHashingPassword   = errors.New("error hashing password")
	ErrVerifyingPassword = errors.New("error verifying password")
)

func Hash(password string) (string, error) {
	switch {
	case password == "":
		return "", ErrEmptyPassword
	case len(password) > MaxLength:
		return "", ErrPasswordTooLong
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return string(bytes), nil
}

// HashOptional hashes password when one was given. Users created without a
// password keep a nil hash and cannot log in.
func HashOptional(password *string) (*string, error) {
	if password == nil {
		return nil, nil //nolint:nilnil
	}

	hash, err := Hash(*password)
	if err != nil {
		return nil, err
	}

	return &hash, nil
}

// Verify reports ErrInvalidPassword when password does not match hash.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}

		return fmt.Errorf("%w: %w", ErrVerifyingPassword, err)
	}

	return nil
}
