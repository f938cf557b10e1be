package store

import (
	"context"

	"ekowallet/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	return u.db.WithContext(ctx).Create(usr).Error
}

// GetActiveByID returns the user only if it has not been soft-deleted.
func (u *UserStore) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "id = ? AND is_active = true", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "email = ? AND is_active = true", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) GetActiveByEmailAndResetToken(ctx context.Context, email, token string) (*domain.User, error) {
	var user domain.User
	err := u.db.WithContext(ctx).
		First(&user, "email = ? AND reset_token = ? AND is_active = true", email, token).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) SetTwoFactorSecret(ctx context.Context, userID uuid.UUID, secret string) error {
	return u.updateActive(ctx, userID, map[string]any{"two_factor_secret": secret})
}

func (u *UserStore) SetTwoFactorOn(ctx context.Context, userID uuid.UUID, on bool) error {
	return u.updateActive(ctx, userID, map[string]any{"two_factor_on": on})
}

func (u *UserStore) SetResetToken(ctx context.Context, userID uuid.UUID, token string) error {
	return u.updateActive(ctx, userID, map[string]any{"reset_token": token})
}

func (u *UserStore) SetPasswordHash(ctx context.Context, userID uuid.UUID, hash []byte) error {
	return u.updateActive(ctx, userID, map[string]any{"password_hash": hash, "reset_token": ""})
}

func (u *UserStore) updateActive(ctx context.Context, userID uuid.UUID, patch map[string]any) error {
	res := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND is_active = true", userID).
		Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
