package service

import (
	"context"

	"ekowallet/internal/domain"
	"ekowallet/internal/dto"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest, ip, ua string) (*dto.LoginResponse, error)
	VerifyTwoFactor(ctx context.Context, userID domain.UserID, code, ip, ua string) (*dto.TokenResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}
