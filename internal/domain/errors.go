package domain

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCode          = errors.New("invalid two-factor code")
	ErrSecretNotProvisioned = errors.New("two-factor secret not provisioned")
	ErrDuplicateSeed        = errors.New("wallet with this seed already exists")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrKeyDerivation        = errors.New("key derivation failed")
)
