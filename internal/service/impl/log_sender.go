package impl

import (
	"context"
	"log/slog"
)

// LogSender is the default notification boundary for environments without a
// configured mail provider. It records that a delivery was requested and
// drops the payload; codes and links are secrets and are never logged.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (LogSender) SendTwoFactorCode(ctx context.Context, to, code string) error {
	slog.Info("two-factor code delivery requested", "to", to)
	return nil
}

func (LogSender) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	slog.Info("password reset delivery requested", "to", to)
	return nil
}
