package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"textsim/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialSource returns the configured username and password.
type CredentialSource func() (string, string)

type Gate struct {
	credentials CredentialSource
	logger      logger.ILogger
}

func NewGate(source CredentialSource, log logger.ILogger) *Gate {
	return &Gate{
		credentials: source,
		logger:      log,
	}
}

// Authenticate checks username and password against the configured pair.
// An unset username or password never authenticates.
func (g *Gate) Authenticate(username, password string) error {
	wantUser, wantPass := g.credentials()
	if wantUser == "" || wantPass == "" {
		g.logger.Warn("auth", "credentials not configured", nil)
		return ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(wantUser)) == 1
	passOK := checkPassword(wantPass, password)
	if !userOK || !passOK {
		g.logger.Warn("auth", "login rejected", map[string]interface{}{"username": username})
		return ErrInvalidCredentials
	}

	g.logger.Info("auth", "login accepted", map[string]interface{}{"username": username})
	return nil
}

func checkPassword(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(stored)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
