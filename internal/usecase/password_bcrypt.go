package usecase

import "golang.org/x/crypto/bcrypt"

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
