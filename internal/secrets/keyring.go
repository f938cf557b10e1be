package secrets

import (
	"crypto/hmac"
	"crypto/sha256"
)

// KeySize is the AES-256 key length derived for wallet encryption.
const KeySize = 32

// Keyring holds the process-wide symmetric key derived from the master
// passphrase. Derivation runs once at construction so the scrypt cost is paid
// off the request path.
type Keyring struct {
	key []byte
}

func NewKeyring(passphrase, salt []byte) (*Keyring, error) {
	key, err := Derive(passphrase, salt, KeySize)
	if err != nil {
		return nil, err
	}
	return &Keyring{key: key}, nil
}

// Seal encrypts plaintext under a fresh IV and returns ciphertext and IV.
func (k *Keyring) Seal(plaintext []byte) (ciphertext, iv []byte, err error) {
	iv, err = NewIV()
	if err != nil {
		return nil, nil, err
	}
	ciphertext, err = Encrypt(k.key, iv, plaintext)
	if err != nil {
		return nil, nil, err
	}
	return ciphertext, iv, nil
}

// Open decrypts ciphertext previously produced by Seal with the given IV.
func (k *Keyring) Open(ciphertext, iv []byte) ([]byte, error) {
	return Decrypt(k.key, iv, ciphertext)
}

// Fingerprint returns a keyed digest of plaintext, used as the duplicate-seed
// lookup column. Keying with the derived key keeps the digest useless to
// anyone holding only a database dump.
func (k *Keyring) Fingerprint(plaintext []byte) []byte {
	mac := hmac.New(sha256.New, k.key)
	mac.Write(plaintext)
	return mac.Sum(nil)
}
