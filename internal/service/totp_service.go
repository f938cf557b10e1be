package service

import (
	"context"

	"ekowallet/internal/domain"
)

// TOTPService manages per-account time-based one-time-password secrets and
// the two-factor enable/disable state machine. Enable and Disable are the
// only operations allowed to flip the enabled flag, and both demand a valid
// code first.
type TOTPService interface {
	GenerateSecret(ctx context.Context, userID domain.UserID) (otpURI string, err error)
	CurrentCode(ctx context.Context, userID domain.UserID) (string, error)
	Verify(ctx context.Context, userID domain.UserID, code string) (bool, error)
	Enable(ctx context.Context, userID domain.UserID, code string) error
	Disable(ctx context.Context, userID domain.UserID, code string) error
}
