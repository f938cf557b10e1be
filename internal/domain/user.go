package domain

import "time"

type User struct {
	ID              UserID     `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	Email           string     `gorm:"type:citext;uniqueIndex:ux_users_email" db:"email" json:"email"`
	Name            string     `gorm:"type:text;not null" db:"name" json:"name"`
	LastName        string     `gorm:"type:text;not null" db:"last_name" json:"lastName"`
	APIKey          string     `gorm:"type:text;uniqueIndex:ux_users_api_key" db:"api_key" json:"apiKey"`
	PasswordHash    []byte     `gorm:"type:bytea;not null" db:"password_hash" json:"-"`
	AcceptedTerms   bool       `gorm:"not null;default:false" db:"accepted_terms" json:"acceptedTerms"`
	ResetToken      string     `gorm:"type:text" db:"reset_token" json:"-"`
	TwoFactorSecret string     `gorm:"type:text" db:"two_factor_secret" json:"-"`
	TwoFactorOn     bool       `gorm:"not null;default:false" db:"two_factor_on" json:"twoFactorOn"`
	IsActive        bool       `gorm:"not null;default:true" db:"is_active" json:"isActive"`
	CreatedAt       time.Time  `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"not null" db:"updated_at" json:"updatedAt"`
	DeletedAt       *time.Time `gorm:"type:timestamp" db:"deleted_at" json:"-"`
}

func (User) TableName() string { return "users" }
