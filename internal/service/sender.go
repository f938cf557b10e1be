package service

import "context"

// Sender is the notification boundary. The engine produces one-time codes
// and reset links; delivering them (email, SMS) is the implementation's
// responsibility and happens outside the engine.
type Sender interface {
	SendTwoFactorCode(ctx context.Context, to, code string) error
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}
