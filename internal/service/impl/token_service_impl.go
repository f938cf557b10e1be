package impl

import (
	"context"
	"time"

	"ekowallet/internal/domain"
	"ekowallet/internal/dto"

	"github.com/golang-jwt/jwt/v5"
)

type TokenConfig struct {
	Issuer     string
	AccessTTL  time.Duration
	SigningKey []byte // HS256 secret
}

type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenServiceImpl struct {
	cfg TokenConfig
}

func NewTokenServiceHS256(cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg}
}

func (t *TokenServiceImpl) Issue(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.AccessTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.SigningKey)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(t.cfg.AccessTTL.Seconds()),
	}, nil
}
