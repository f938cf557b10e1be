package service

import (
	"context"

	"ekowallet/internal/domain"
	"ekowallet/internal/dto"
)

type TokenService interface {
	Issue(ctx context.Context, user *domain.User) (*dto.TokenResponse, error)
}
