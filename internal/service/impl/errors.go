package impl

import (
	"fmt"

	"ekowallet/internal/domain"
)

var (
	ErrEmptyName       = fmt.Errorf("%w: empty wallet name", domain.ErrInvalidInput)
	ErrEmptyMnemonic   = fmt.Errorf("%w: empty mnemonic", domain.ErrInvalidInput)
	ErrEmptyCredential = fmt.Errorf("%w: empty credential(s)", domain.ErrInvalidInput)
	ErrPasswordLength  = fmt.Errorf("%w: password too short", domain.ErrInvalidInput)
)
