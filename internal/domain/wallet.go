package domain

import "time"

// WalletSecret holds one encrypted mnemonic. Ciphertext and IV are paired for
// the life of the record; the plaintext mnemonic never touches the database.
// SeedFingerprint is a keyed digest of the plaintext used only for the
// duplicate-seed guard; the partial unique index is the actual safety net
// under concurrent creates.
type WalletSecret struct {
	ID              WalletID   `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	UserID          UserID     `gorm:"type:uuid;index:ix_wallet_secrets_user" db:"user_id" json:"userId"`
	Name            string     `gorm:"type:text;not null" db:"name" json:"name"`
	Ciphertext      []byte     `gorm:"type:bytea;not null" db:"ciphertext" json:"-"`
	IV              []byte     `gorm:"type:bytea;not null" db:"iv" json:"-"`
	SeedFingerprint []byte     `gorm:"type:bytea;not null;uniqueIndex:ux_wallet_secrets_seed,where:is_active = true" db:"seed_fingerprint" json:"-"`
	IsActive        bool       `gorm:"not null;default:true" db:"is_active" json:"isActive"`
	CreatedAt       time.Time  `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"not null" db:"updated_at" json:"updatedAt"`
	DeletedAt       *time.Time `gorm:"type:timestamp" db:"deleted_at" json:"-"`
}

func (WalletSecret) TableName() string { return "wallet_secrets" }
