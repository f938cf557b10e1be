// Package hdwallet generates BIP-39 mnemonics and derives Ethereum accounts
// from them along the standard m/44'/60'/0'/0/0 path.
package hdwallet

import (
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

var (
	ErrInvalidEntropy  = errors.New("entropy bits must be one of 128, 160, 192, 224, 256")
	ErrInvalidMnemonic = errors.New("mnemonic failed checksum validation")
)

// Generate returns a new checksum-valid mnemonic for the given entropy size.
func Generate(entropyBits int) (string, error) {
	switch entropyBits {
	case 128, 160, 192, 224, 256:
	default:
		return "", fmt.Errorf("%w: got %d", ErrInvalidEntropy, entropyBits)
	}
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// Validate reports whether the phrase has a valid word list and checksum.
func Validate(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}
