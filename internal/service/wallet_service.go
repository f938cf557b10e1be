package service

import (
	"context"

	"ekowallet/internal/domain"
	"ekowallet/internal/dto"
	"ekowallet/internal/hdwallet"
)

// WalletService is the wallet secrecy store: it owns the invariant that a
// mnemonic is only ever reachable in plaintext during an encrypt-then-discard
// or decrypt-then-return call.
type WalletService interface {
	GenerateMnemonic(entropyBits int) (string, error)
	Create(ctx context.Context, userID domain.UserID, name, mnemonic string) (domain.WalletID, error)
	Rename(ctx context.Context, walletID domain.WalletID, name string) error
	ListByUser(ctx context.Context, userID domain.UserID) ([]dto.DecryptedWallet, error)
	SoftDelete(ctx context.Context, walletID domain.WalletID, userID domain.UserID, password string) error
	DeriveAccount(mnemonic string) (hdwallet.Account, error)
}
