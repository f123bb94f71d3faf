package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
)

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(subject string, role string, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// 管理者は環境変数で1アカウント運用（DBにユーザーテーブルは持たない）。
// 注文のフルフィルメントと補充の操作だけに使う。
type AuthUsecase struct {
	adminEmail        string
	adminPasswordHash string
	verifier          PasswordVerifier
	issuer            AccessTokenIssuer
}

func NewAuthUsecase(adminEmail, adminPasswordHash string, verifier PasswordVerifier, issuer AccessTokenIssuer) *AuthUsecase {
	return &AuthUsecase{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		verifier:          verifier,
		issuer:            issuer,
	}
}

type AdminLoginInput struct {
	Email    string
	Password string
}

type AdminLoginOutput struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (u *AuthUsecase) AdminLogin(ctx context.Context, in AdminLoginInput) (AdminLoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return AdminLoginOutput{}, ErrInvalidCredentials
	}

	if !strings.EqualFold(email, u.adminEmail) {
		return AdminLoginOutput{}, ErrInvalidCredentials
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, u.adminPasswordHash); !ok {
		return AdminLoginOutput{}, ErrInvalidCredentials
	}

	token, exp, err := u.issuer.Issue(u.adminEmail, "ADMIN", time.Now())
	if err != nil {
		return AdminLoginOutput{}, err
	}

	return AdminLoginOutput{AccessToken: token, ExpiresAt: exp}, nil
}
