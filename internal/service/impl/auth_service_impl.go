package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ekowallet/internal/domain"
	"ekowallet/internal/dto"
	"ekowallet/internal/observability/metrics"
	"ekowallet/internal/service"
	"ekowallet/internal/store"

	"github.com/google/uuid"
)

type AuthServiceImpl struct {
	Users     authAccountRecords
	Passwords service.PasswordService
	Tokens    service.TokenService
	TOTP      service.TOTPService
	Sender    service.Sender
	BaseURL   string
}

func NewAuthServiceImpl(st *store.Store, passwords service.PasswordService, tokens service.TokenService, totp service.TOTPService, sender service.Sender, baseURL string) *AuthServiceImpl {
	return &AuthServiceImpl{
		Users:     st.Users(),
		Passwords: passwords,
		Tokens:    tokens,
		TOTP:      totp,
		Sender:    sender,
		BaseURL:   baseURL,
	}
}

type authAccountRecords interface {
	Create(ctx context.Context, usr *domain.User) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	GetActiveByEmailAndResetToken(ctx context.Context, email, token string) (*domain.User, error)
	SetResetToken(ctx context.Context, userID uuid.UUID, token string) error
	SetPasswordHash(ctx context.Context, userID uuid.UUID, hash []byte) error
}

// Register creates an account. Email and names are stored lowercased so
// lookups stay case-insensitive.
func (a *AuthServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	result := "success"
	defer func() {
		metrics.AuthRegistrationsTotal.WithLabelValues(result).Inc()
	}()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.ToLower(strings.TrimSpace(req.Name))
	lastName := strings.ToLower(strings.TrimSpace(req.LastName))
	if email == "" || name == "" {
		result = "invalid"
		return nil, ErrEmptyCredential
	}
	if len(req.Password) < 8 {
		result = "invalid"
		return nil, ErrPasswordLength
	}

	if _, err := a.Users.GetActiveByEmail(ctx, email); err == nil {
		result = "duplicate"
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrRecordNotFound) {
		result = "failure"
		return nil, err
	}

	hash, err := a.Passwords.Hash(req.Password)
	if err != nil {
		result = "failure"
		return nil, err
	}
	apiKey, err := randomToken()
	if err != nil {
		result = "failure"
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		LastName:     lastName,
		APIKey:       apiKey,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.Users.Create(ctx, user); err != nil {
		// The unique index on email closes the lookup/insert race.
		result = "failure"
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return &dto.RegisterResponse{UserID: user.ID.String()}, nil
}

// Login verifies the account passphrase. With two-factor off it issues a
// session token directly; with it on, the current one-time code is handed to
// the notification boundary and the caller must exchange it via
// VerifyTwoFactor.
func (a *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest, ip, ua string) (*dto.LoginResponse, error) {
	result := "success"
	defer func() {
		metrics.AuthLoginsTotal.WithLabelValues(result).Inc()
	}()

	if req.Email == "" || req.Password == "" {
		result = "invalid"
		return nil, ErrEmptyCredential
	}

	user, err := a.Users.GetActiveByEmail(ctx, req.Email)
	if err != nil {
		result = "failure"
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !a.Passwords.Verify(req.Password, user.PasswordHash) {
		result = "failure"
		return nil, domain.ErrUnauthorized
	}

	if !user.TwoFactorOn {
		tokens, err := a.Tokens.Issue(ctx, user)
		if err != nil {
			result = "failure"
			return nil, err
		}
		slog.Info("login", "user_id", user.ID, "ip", ip, "ua", ua, "two_factor", false)
		return &dto.LoginResponse{
			UserID:        user.ID.String(),
			TwoFactorOn:   false,
			AcceptedTerms: user.AcceptedTerms,
			Token:         tokens.AccessToken,
		}, nil
	}

	code, err := a.TOTP.CurrentCode(ctx, user.ID)
	if err != nil {
		result = "failure"
		return nil, err
	}
	if err := a.Sender.SendTwoFactorCode(ctx, user.Email, code); err != nil {
		result = "failure"
		return nil, err
	}
	slog.Info("login awaiting two-factor code", "user_id", user.ID, "ip", ip, "ua", ua)
	return &dto.LoginResponse{
		UserID:       user.ID.String(),
		TwoFactorOn:  true,
		AwaitingCode: true,
	}, nil
}

// VerifyTwoFactor exchanges a valid one-time code for a session token.
func (a *AuthServiceImpl) VerifyTwoFactor(ctx context.Context, userID domain.UserID, code, ip, ua string) (*dto.TokenResponse, error) {
	ok, err := a.TOTP.Verify(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCode
	}
	user, err := a.Users.GetActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	slog.Info("two-factor login", "user_id", userID, "ip", ip, "ua", ua)
	return a.Tokens.Issue(ctx, user)
}

// ForgotPassword stores a fresh reset token on the account and hands the
// reset link to the notification boundary.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return ErrEmptyCredential
	}
	user, err := a.Users.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	token, err := randomToken()
	if err != nil {
		return err
	}
	if err := a.Users.SetResetToken(ctx, user.ID, token); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/authentification/resetPassword/%s/%s", a.BaseURL, user.Email, token)
	if err := a.Sender.SendPasswordReset(ctx, user.Email, link); err != nil {
		return err
	}
	slog.Info("password reset requested", "user_id", user.ID)
	return nil
}

// ResetPassword consumes the reset token and replaces the stored hash.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if req.Email == "" || req.Token == "" {
		return ErrEmptyCredential
	}
	if len(req.Password) < 8 {
		return ErrPasswordLength
	}

	user, err := a.Users.GetActiveByEmailAndResetToken(ctx, req.Email, req.Token)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	hash, err := a.Passwords.Hash(req.Password)
	if err != nil {
		return err
	}
	// SetPasswordHash also clears the reset token so it is single-use.
	if err := a.Users.SetPasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}
	slog.Info("password reset", "user_id", user.ID)
	return nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
