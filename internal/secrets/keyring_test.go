package secrets

import (
	"bytes"
	"sync"
	"testing"
)

var (
	ringOnce sync.Once
	ring     *Keyring
	ringErr  error
)

func testKeyring(t *testing.T) *Keyring {
	t.Helper()
	ringOnce.Do(func() {
		ring, ringErr = NewKeyring([]byte("test-passphrase"), []byte("salt"))
	})
	if ringErr != nil {
		t.Fatalf("new keyring: %v", ringErr)
	}
	return ring
}

func TestKeyringSealOpenRoundTrip(t *testing.T) {
	k := testKeyring(t)
	plaintext := []byte("tag volcano eight thank tide danger coast health above argue embrace heavy")

	ct, iv, err := k.Seal(plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if len(iv) != IVSize {
		t.Fatalf("expected %d-byte iv, got %d", IVSize, len(iv))
	}
	got, err := k.Open(ct, iv)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch")
	}
}

func TestKeyringFingerprintIsStableAndKeyed(t *testing.T) {
	k := testKeyring(t)

	a := k.Fingerprint([]byte("seed material"))
	b := k.Fingerprint([]byte("seed material"))
	if !bytes.Equal(a, b) {
		t.Fatalf("fingerprint is not deterministic")
	}
	if bytes.Equal(a, k.Fingerprint([]byte("other material"))) {
		t.Fatalf("different content produced the same fingerprint")
	}

	other, err := NewKeyring([]byte("another-passphrase"), []byte("salt"))
	if err != nil {
		t.Fatalf("new keyring: %v", err)
	}
	if bytes.Equal(a, other.Fingerprint([]byte("seed material"))) {
		t.Fatalf("fingerprint is not keyed by the derived key")
	}
}
