package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

// IVSize is the AES block size; every ciphertext is paired with exactly one
// IV of this size, generated once at encryption time.
const IVSize = aes.BlockSize

var ErrBadIVSize = errors.New("iv must be 16 bytes")

// NewIV returns a fresh random initialization vector. An IV must never be
// reused with the same key in CTR mode.
func NewIV() ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}
	return iv, nil
}

// Encrypt applies AES-256-CTR. Output length equals input length. The codec
// is pure: the caller owns IV generation and storage.
func Encrypt(key, iv, plaintext []byte) ([]byte, error) {
	return xorStream(key, iv, plaintext)
}

// Decrypt reverses Encrypt given the same key and IV. CTR mode carries no
// integrity check: a wrong key or mismatched IV yields garbage, not an error.
// The unauthenticated format is kept for compatibility with existing rows.
func Decrypt(key, iv, ciphertext []byte) ([]byte, error) {
	return xorStream(key, iv, ciphertext)
}

func xorStream(key, iv, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	if len(iv) != IVSize {
		return nil, ErrBadIVSize
	}
	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return out, nil
}
