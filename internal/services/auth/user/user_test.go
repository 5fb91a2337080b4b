package user

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserNormalizesAndHashes(t *testing.T) {
	fixedTime := time.Date(2026, 1, 23, 10, 0, 0, 0, time.UTC)
	created, err := CreateUser(
		CreateUserInput{Name: " User ", Email: "  USER@Nextmail.com ", Password: "123456"},
		bcrypt.MinCost,
		func() time.Time { return fixedTime },
		func() (string, error) { return "user-123", nil },
	)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID != "user-123" {
		t.Fatalf("id = %q, want user-123", created.ID)
	}
	if created.Email != "user@nextmail.com" {
		t.Fatalf("email = %q, want normalized", created.Email)
	}
	if created.Name != "User" {
		t.Fatalf("name = %q, want trimmed", created.Name)
	}
	if created.PasswordHash == "123456" {
		t.Fatal("password must be hashed")
	}
	if err := ComparePassword(created.PasswordHash, "123456"); err != nil {
		t.Fatalf("compare password: %v", err)
	}
	if !created.CreatedAt.Equal(fixedTime) {
		t.Fatalf("created at = %v, want %v", created.CreatedAt, fixedTime)
	}
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input CreateUserInput
		want  error
	}{
		{name: "empty email", input: CreateUserInput{Email: "", Password: "123456"}, want: ErrInvalidEmail},
		{name: "bad email", input: CreateUserInput{Email: "not-an-email", Password: "123456"}, want: ErrInvalidEmail},
		{name: "display name email", input: CreateUserInput{Email: "User <user@nextmail.com>", Password: "123456"}, want: ErrInvalidEmail},
		{name: "short password", input: CreateUserInput{Email: "user@nextmail.com", Password: "12345"}, want: ErrPasswordTooShort},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateUser(tc.input, bcrypt.MinCost, nil, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCreateUserIDGeneratorError(t *testing.T) {
	_, err := CreateUser(
		CreateUserInput{Email: "user@nextmail.com", Password: "123456"},
		bcrypt.MinCost,
		nil,
		func() (string, error) { return "", errors.New("id generator error") },
	)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestComparePasswordMismatch(t *testing.T) {
	hash, err := HashPassword("correct-horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := ComparePassword(hash, "wrong-horse"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("err = %v, want ErrPasswordMismatch", err)
	}
	if err := ComparePassword("not-a-hash", "whatever"); err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("malformed hash err = %v, want non-mismatch error", err)
	}
}
