package impl

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceImpl hashes account passphrases with bcrypt. Existing user
// rows carry bcrypt hashes, so the algorithm is part of the stored format.
type PasswordServiceImpl struct {
	cost int
}

func NewPasswordServiceBcrypt() *PasswordServiceImpl {
	return &PasswordServiceImpl{cost: bcrypt.DefaultCost}
}

func (p *PasswordServiceImpl) Hash(password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyCredential
	}
	return bcrypt.GenerateFromPassword([]byte(password), p.cost)
}

func (p *PasswordServiceImpl) Verify(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
