package auth

import (
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials holds the single client identity allowed to request tokens.
// The password is kept as a bcrypt hash.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Authenticate returns ErrInvalidCredentials unless username and password
// match. An unconfigured Credentials rejects everything.
func (c Credentials) Authenticate(username, password string) error {
	if c.Username == "" || c.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
