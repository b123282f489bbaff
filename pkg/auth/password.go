// pkg/auth/password.go
package auth

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
)

// PasswordManager handles password hashing and verification.
type PasswordManager struct {
	cost int
}

// NewPasswordManager creates a password manager with the default bcrypt cost.
func NewPasswordManager() *PasswordManager {
	return &PasswordManager{cost: 12}
}

// HashPassword hashes a plaintext password using bcrypt.
func (pm *PasswordManager) HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), pm.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// ComparePassword compares a plaintext password with a stored hash.
func (pm *PasswordManager) ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidateMail validates a mail address format.
func ValidateMail(mail string) error {
	if !emailRegex.MatchString(mail) {
		return errors.New("invalid mail format")
	}

	if len(mail) > 255 {
		return errors.New("mail address too long")
	}

	return nil
}

// ValidateUsername validates a username.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return errors.New("username must be at least 3 characters")
	}

	if len(username) > 50 {
		return errors.New("username must not exceed 50 characters")
	}

	if !usernameRegex.MatchString(username) {
		return errors.New("username can only contain letters, numbers, underscore, and hyphen")
	}

	return nil
}
