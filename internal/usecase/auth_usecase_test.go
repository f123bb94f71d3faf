package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type stubIssuer struct {
	subject string
	role    string
}

func (i *stubIssuer) Issue(subject string, role string, now time.Time) (string, time.Time, error) {
	i.subject = subject
	i.role = role
	return "token-123", now.Add(15 * time.Minute), nil
}

func adminHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestAdminLogin_Success(t *testing.T) {
	issuer := &stubIssuer{}
	uc := usecase.NewAuthUsecase(
		"admin@example.com",
		adminHash(t, "s3cret"),
		usecase.NewBcryptPasswordVerifier(),
		issuer,
	)

	out, err := uc.AdminLogin(context.Background(), usecase.AdminLoginInput{
		Email:    "Admin@Example.com", // 大文字小文字は区別しない
		Password: "s3cret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-123", out.AccessToken)
	assert.Equal(t, "admin@example.com", issuer.subject)
	assert.Equal(t, "ADMIN", issuer.role)
}

func TestAdminLogin_WrongEmail(t *testing.T) {
	uc := usecase.NewAuthUsecase(
		"admin@example.com",
		adminHash(t, "s3cret"),
		usecase.NewBcryptPasswordVerifier(),
		&stubIssuer{},
	)

	_, err := uc.AdminLogin(context.Background(), usecase.AdminLoginInput{
		Email:    "someone@example.com",
		Password: "s3cret",
	})
	assert.True(t, errors.Is(err, usecase.ErrInvalidCredentials))
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	uc := usecase.NewAuthUsecase(
		"admin@example.com",
		adminHash(t, "s3cret"),
		usecase.NewBcryptPasswordVerifier(),
		&stubIssuer{},
	)

	_, err := uc.AdminLogin(context.Background(), usecase.AdminLoginInput{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	assert.True(t, errors.Is(err, usecase.ErrInvalidCredentials))
}

func TestAdminLogin_EmptyFields(t *testing.T) {
	uc := usecase.NewAuthUsecase(
		"admin@example.com",
		adminHash(t, "s3cret"),
		usecase.NewBcryptPasswordVerifier(),
		&stubIssuer{},
	)

	_, err := uc.AdminLogin(context.Background(), usecase.AdminLoginInput{})
	assert.True(t, errors.Is(err, usecase.ErrInvalidCredentials))
}
