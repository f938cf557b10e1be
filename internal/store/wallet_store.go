package store

import (
	"context"
	"time"

	"ekowallet/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WalletStore struct{ db *gorm.DB }

func (s *Store) Wallets() *WalletStore { return &WalletStore{db: s.DB} }

func (w *WalletStore) Create(ctx context.Context, ws *domain.WalletSecret) error {
	if ws.ID == uuid.Nil {
		ws.ID = uuid.New()
	}
	return w.db.WithContext(ctx).Create(ws).Error
}

// ActiveSeedExists reports whether any active record carries the given seed
// fingerprint. Advisory only: the partial unique index on
// (seed_fingerprint) WHERE is_active is what actually closes the race.
func (w *WalletStore) ActiveSeedExists(ctx context.Context, fingerprint []byte) (bool, error) {
	var count int64
	err := w.db.WithContext(ctx).Model(&domain.WalletSecret{}).
		Where("seed_fingerprint = ? AND is_active = true", fingerprint).
		Count(&count).Error
	return count > 0, err
}

func (w *WalletStore) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.WalletSecret, error) {
	var ws domain.WalletSecret
	if err := w.db.WithContext(ctx).First(&ws, "id = ? AND is_active = true", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &ws, nil
}

func (w *WalletStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.WalletSecret, error) {
	var out []domain.WalletSecret
	err := w.db.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (w *WalletStore) Rename(ctx context.Context, id uuid.UUID, name string, at time.Time) error {
	return w.updateActive(ctx, id, map[string]any{"name": name, "updated_at": at})
}

// SoftDelete flips the record inactive and stamps deleted_at. The record is
// retained for audit; no transition leaves the inactive state.
func (w *WalletStore) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	return w.updateActive(ctx, id, map[string]any{"is_active": false, "deleted_at": at, "updated_at": at})
}

func (w *WalletStore) updateActive(ctx context.Context, id uuid.UUID, patch map[string]any) error {
	res := w.db.WithContext(ctx).Model(&domain.WalletSecret{}).
		Where("id = ? AND is_active = true", id).
		Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
