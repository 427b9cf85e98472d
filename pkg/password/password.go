package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

var ErrMismatch = errors.New("password: mismatch")

// Hash returns a bcrypt hash of plain
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(h), nil
}

// Compare returns ErrMismatch when plain does not match hash
func Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("password: compare: %w", err)
}

// Bcrypt adapts Hash and Compare to consumer interfaces
type Bcrypt struct{}

func (Bcrypt) Hash(plain string) (string, error) { return Hash(plain) }

func (Bcrypt) Compare(hash, plain string) error { return Compare(hash, plain) }
