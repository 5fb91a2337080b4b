// Package user defines dashboard user identities and their password hashes.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/louisbranch/invoicing/internal/platform/id"
)

// MinPasswordLength is the shortest password accepted at sign-in and seed.
const MinPasswordLength = 6

var (
	// ErrInvalidEmail indicates an email that is not a bare address.
	ErrInvalidEmail = errors.New("email must be a valid address")
	// ErrPasswordTooShort indicates a password under MinPasswordLength.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	// ErrPasswordMismatch indicates a password that does not match its hash.
	ErrPasswordMismatch = errors.New("password does not match")
)

// User represents a dashboard account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUserInput describes the data needed to create a user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// NormalizeEmail trims and lowercases an email and rejects anything that is
// not a plain address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidEmail
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email || !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// HashPassword returns a bcrypt hash of password at cost, or the library
// default when cost is not positive.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// ComparePassword checks password against a stored hash. A mismatch returns
// ErrPasswordMismatch; a malformed hash returns the underlying error.
func ComparePassword(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// CreateUser builds a user with a hashed password from validated input.
func CreateUser(input CreateUserInput, cost int, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return User{}, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return User{}, err
	}
	hash, err := HashPassword(input.Password, cost)
	if err != nil {
		return User{}, err
	}
	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	return User{
		ID:           userID,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now().UTC(),
	}, nil
}
