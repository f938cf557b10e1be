package impl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ekowallet/internal/domain"
	"ekowallet/internal/observability/metrics"
	"ekowallet/internal/store"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

type TOTPConfig struct {
	Issuer string
	Digits int           // code length, 6
	Step   time.Duration // time-step window, 120s to match issued codes
	Skew   uint          // accepted steps on either side of "now"
}

type TOTPServiceImpl struct {
	Users totpAccountRecords
	cfg   TOTPConfig
}

func NewTOTPServiceImpl(st *store.Store, cfg TOTPConfig) *TOTPServiceImpl {
	return &TOTPServiceImpl{Users: st.Users(), cfg: cfg}
}

type totpAccountRecords interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetTwoFactorSecret(ctx context.Context, userID uuid.UUID, secret string) error
	SetTwoFactorOn(ctx context.Context, userID uuid.UUID, on bool) error
}

func (t *TOTPServiceImpl) validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    uint(t.cfg.Step / time.Second),
		Skew:      t.cfg.Skew,
		Digits:    otp.Digits(t.cfg.Digits),
		Algorithm: otp.AlgorithmSHA1,
	}
}

// GenerateSecret provisions a fresh shared secret for the account,
// overwriting any prior one, and returns the otpauth:// URI for enrollment.
// Generating a new secret does not flip the enabled flag.
func (t *TOTPServiceImpl) GenerateSecret(ctx context.Context, userID domain.UserID) (string, error) {
	user, err := t.Users.GetActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.cfg.Issuer,
		AccountName: user.Email,
		Period:      uint(t.cfg.Step / time.Second),
		SecretSize:  20,
		Digits:      otp.Digits(t.cfg.Digits),
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", err
	}
	if err := t.Users.SetTwoFactorSecret(ctx, userID, key.Secret()); err != nil {
		return "", err
	}
	slog.Info("two-factor secret provisioned", "user_id", userID)
	return key.String(), nil
}

// CurrentCode computes the code for the current time step.
func (t *TOTPServiceImpl) CurrentCode(ctx context.Context, userID domain.UserID) (string, error) {
	secret, err := t.secretFor(ctx, userID)
	if err != nil {
		return "", err
	}
	return totp.GenerateCodeCustom(secret, time.Now().UTC(), t.validateOpts())
}

// Verify recomputes the expected codes within the tolerance window and
// compares in constant time. A mismatch is an expected outcome and returns
// false, not an error; only a missing secret is an error.
func (t *TOTPServiceImpl) Verify(ctx context.Context, userID domain.UserID, code string) (bool, error) {
	secret, err := t.secretFor(ctx, userID)
	if err != nil {
		return false, err
	}
	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), t.validateOpts())
	if err != nil {
		// Malformed submissions count as mismatches.
		ok = false
	}
	result := "mismatch"
	if ok {
		result = "success"
	}
	metrics.TOTPVerificationsTotal.WithLabelValues(result).Inc()
	return ok, nil
}

// Enable turns two-factor on after proof of possession. The flag is
// untouched when the code is invalid.
func (t *TOTPServiceImpl) Enable(ctx context.Context, userID domain.UserID, code string) error {
	return t.setEnabled(ctx, userID, code, true)
}

// Disable mirrors Enable: a valid code is required to turn two-factor off.
func (t *TOTPServiceImpl) Disable(ctx context.Context, userID domain.UserID, code string) error {
	return t.setEnabled(ctx, userID, code, false)
}

func (t *TOTPServiceImpl) setEnabled(ctx context.Context, userID domain.UserID, code string, on bool) error {
	ok, err := t.Verify(ctx, userID, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCode
	}
	if err := t.Users.SetTwoFactorOn(ctx, userID, on); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	slog.Info("two-factor state changed", "user_id", userID, "enabled", on)
	return nil
}

func (t *TOTPServiceImpl) secretFor(ctx context.Context, userID domain.UserID) (string, error) {
	user, err := t.Users.GetActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	if user.TwoFactorSecret == "" {
		return "", domain.ErrSecretNotProvisioned
	}
	return user.TwoFactorSecret, nil
}
