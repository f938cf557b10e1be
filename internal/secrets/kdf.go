// Package secrets implements the encryption-at-rest primitives for wallet
// seed material: a scrypt key derivation function and an AES-CTR codec.
package secrets

import (
	"errors"
	"fmt"
	"runtime"

	"ekowallet/internal/domain"

	"golang.org/x/crypto/scrypt"
)

// Persisted ciphertexts were produced under these parameters; changing them
// requires a re-encryption migration.
const (
	scryptN = 16384
	scryptR = 8
	scryptP = 1
)

var ErrEmptyPassphrase = errors.New("empty passphrase")

// kdfSlots bounds concurrent scrypt invocations so key derivation cannot
// saturate the request-serving goroutines.
var kdfSlots = make(chan struct{}, runtime.GOMAXPROCS(0))

// Derive stretches passphrase into a keyLen-byte symmetric key. Deterministic
// for identical inputs. The salt may be a process-wide constant (legacy
// format); callers that can afford a format break should pass a per-record
// salt instead.
func Derive(passphrase, salt []byte, keyLen int) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}
	if keyLen <= 0 {
		return nil, fmt.Errorf("%w: key length %d", domain.ErrKeyDerivation, keyLen)
	}

	kdfSlots <- struct{}{}
	defer func() { <-kdfSlots }()

	key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeyDerivation, err)
	}
	if len(key) != keyLen {
		return nil, fmt.Errorf("%w: short key", domain.ErrKeyDerivation)
	}
	return key, nil
}
