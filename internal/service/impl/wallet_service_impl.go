package impl

import (
	"context"
	"crypto/hmac"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ekowallet/internal/domain"
	"ekowallet/internal/dto"
	"ekowallet/internal/hdwallet"
	"ekowallet/internal/observability/metrics"
	"ekowallet/internal/secrets"
	"ekowallet/internal/service"
	"ekowallet/internal/store"

	"github.com/google/uuid"
)

type WalletServiceImpl struct {
	Wallets   walletRecords
	Users     ownerRecords
	Passwords service.PasswordService
	Keys      *secrets.Keyring
}

func NewWalletServiceImpl(st *store.Store, passwords service.PasswordService, keys *secrets.Keyring) *WalletServiceImpl {
	return &WalletServiceImpl{
		Wallets:   st.Wallets(),
		Users:     st.Users(),
		Passwords: passwords,
		Keys:      keys,
	}
}

type walletRecords interface {
	Create(ctx context.Context, ws *domain.WalletSecret) error
	ActiveSeedExists(ctx context.Context, fingerprint []byte) (bool, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.WalletSecret, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.WalletSecret, error)
	Rename(ctx context.Context, id uuid.UUID, name string, at time.Time) error
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

type ownerRecords interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (w *WalletServiceImpl) GenerateMnemonic(entropyBits int) (string, error) {
	mnemonic, err := hdwallet.Generate(entropyBits)
	if err != nil {
		if errors.Is(err, hdwallet.ErrInvalidEntropy) {
			return "", errors.Join(domain.ErrInvalidInput, err)
		}
		return "", err
	}
	return mnemonic, nil
}

func (w *WalletServiceImpl) DeriveAccount(mnemonic string) (hdwallet.Account, error) {
	return hdwallet.DeriveAccount(strings.TrimSpace(mnemonic))
}

// Create encrypts the mnemonic under a fresh IV and persists the ciphertext.
// The plaintext is discarded before returning; only the record id is echoed
// back. An active record holding the same seed, for any owner, rejects the
// create.
func (w *WalletServiceImpl) Create(ctx context.Context, userID domain.UserID, name, mnemonic string) (domain.WalletID, error) {
	result := "success"
	defer func() {
		metrics.WalletCreationsTotal.WithLabelValues(result).Inc()
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		result = "invalid"
		return uuid.Nil, ErrEmptyName
	}
	mnemonic = strings.TrimSpace(mnemonic)
	if mnemonic == "" {
		result = "invalid"
		return uuid.Nil, ErrEmptyMnemonic
	}
	if !hdwallet.Validate(mnemonic) {
		result = "invalid"
		return uuid.Nil, errors.Join(domain.ErrInvalidInput, hdwallet.ErrInvalidMnemonic)
	}

	plaintext := []byte(mnemonic)
	defer zero(plaintext)

	fingerprint := w.Keys.Fingerprint(plaintext)

	// Advisory pre-check; the partial unique index closes the race.
	exists, err := w.Wallets.ActiveSeedExists(ctx, fingerprint)
	if err != nil {
		result = "failure"
		return uuid.Nil, err
	}
	if exists {
		result = "duplicate"
		return uuid.Nil, domain.ErrDuplicateSeed
	}

	ciphertext, iv, err := w.Keys.Seal(plaintext)
	if err != nil {
		result = "failure"
		return uuid.Nil, err
	}

	now := time.Now().UTC()
	rec := &domain.WalletSecret{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Ciphertext:      ciphertext,
		IV:              iv,
		SeedFingerprint: fingerprint,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := w.Wallets.Create(ctx, rec); err != nil {
		// A unique violation here means we lost the race to a concurrent
		// create holding the same seed.
		if dup, checkErr := w.Wallets.ActiveSeedExists(ctx, fingerprint); checkErr == nil && dup {
			result = "duplicate"
			return uuid.Nil, domain.ErrDuplicateSeed
		}
		result = "failure"
		return uuid.Nil, err
	}

	slog.Info("wallet secret created", "wallet_id", rec.ID, "user_id", userID)
	return rec.ID, nil
}

func (w *WalletServiceImpl) Rename(ctx context.Context, walletID domain.WalletID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if err := w.Wallets.Rename(ctx, walletID, name, time.Now().UTC()); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// ListByUser decrypts every active record for the owner. A record that fails
// to decrypt, or whose plaintext no longer matches its stored fingerprint,
// is reported per-record instead of aborting the batch.
func (w *WalletServiceImpl) ListByUser(ctx context.Context, userID domain.UserID) ([]dto.DecryptedWallet, error) {
	records, err := w.Wallets.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DecryptedWallet, 0, len(records))
	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := &records[i]
		entry := dto.DecryptedWallet{WalletID: rec.ID.String(), Name: rec.Name}

		plain, err := w.Keys.Open(rec.Ciphertext, rec.IV)
		if err != nil || !hmac.Equal(w.Keys.Fingerprint(plain), rec.SeedFingerprint) {
			metrics.WalletDecryptFailuresTotal.WithLabelValues().Inc()
			slog.Error("wallet record failed to decrypt", "wallet_id", rec.ID)
			entry.Error = "record could not be decrypted"
			zero(plain)
		} else {
			entry.Mnemonic = string(plain)
			zero(plain)
		}
		out = append(out, entry)
	}
	return out, nil
}

// SoftDelete requires proof of the owner's passphrase before marking the
// record inactive. Inactive is terminal.
func (w *WalletServiceImpl) SoftDelete(ctx context.Context, walletID domain.WalletID, userID domain.UserID, password string) error {
	if password == "" {
		return ErrEmptyCredential
	}

	rec, err := w.Wallets.GetActiveByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if rec.UserID != userID {
		return domain.ErrNotFound
	}

	owner, err := w.Users.GetActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if !w.Passwords.Verify(strings.TrimSpace(password), owner.PasswordHash) {
		return domain.ErrUnauthorized
	}

	if err := w.Wallets.SoftDelete(ctx, walletID, time.Now().UTC()); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	slog.Info("wallet secret soft-deleted", "wallet_id", walletID, "user_id", userID)
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
