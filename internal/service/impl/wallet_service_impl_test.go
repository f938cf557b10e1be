package impl

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ekowallet/internal/domain"
	"ekowallet/internal/hdwallet"
	"ekowallet/internal/secrets"
	"ekowallet/internal/store"

	"github.com/google/uuid"
)

var (
	keyringOnce sync.Once
	keyring     *secrets.Keyring
	keyringErr  error
)

func testKeyring(t *testing.T) *secrets.Keyring {
	t.Helper()
	keyringOnce.Do(func() {
		keyring, keyringErr = secrets.NewKeyring([]byte("unit-test-passphrase"), []byte("salt"))
	})
	if keyringErr != nil {
		t.Fatalf("new keyring: %v", keyringErr)
	}
	return keyring
}

type memoryWalletStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*domain.WalletSecret
}

func newMemoryWalletStore() *memoryWalletStore {
	return &memoryWalletStore{records: make(map[uuid.UUID]*domain.WalletSecret)}
}

func (m *memoryWalletStore) Create(ctx context.Context, ws *domain.WalletSecret) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.IsActive && bytes.Equal(rec.SeedFingerprint, ws.SeedFingerprint) {
			return errors.New("unique constraint violation")
		}
	}
	copy := *ws
	m.records[ws.ID] = &copy
	return nil
}

func (m *memoryWalletStore) ActiveSeedExists(ctx context.Context, fingerprint []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.IsActive && bytes.Equal(rec.SeedFingerprint, fingerprint) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryWalletStore) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.WalletSecret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok || !rec.IsActive {
		return nil, store.ErrRecordNotFound
	}
	copy := *rec
	return &copy, nil
}

func (m *memoryWalletStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.WalletSecret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.WalletSecret
	for _, rec := range m.records {
		if rec.IsActive && rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memoryWalletStore) Rename(ctx context.Context, id uuid.UUID, name string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok || !rec.IsActive {
		return store.ErrRecordNotFound
	}
	rec.Name = name
	rec.UpdatedAt = at
	return nil
}

func (m *memoryWalletStore) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok || !rec.IsActive {
		return store.ErrRecordNotFound
	}
	rec.IsActive = false
	rec.DeletedAt = &at
	rec.UpdatedAt = at
	return nil
}

func (m *memoryWalletStore) corruptCiphertext(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.records[id]
	rec.Ciphertext = append([]byte(nil), rec.Ciphertext...)
	rec.Ciphertext[0] ^= 0xff
}

type memoryOwnerStore struct {
	users map[uuid.UUID]*domain.User
}

func (m *memoryOwnerStore) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok || !user.IsActive {
		return nil, store.ErrRecordNotFound
	}
	copy := *user
	return &copy, nil
}

type stubPasswordVerifier struct {
	valid string
}

func (s *stubPasswordVerifier) Hash(password string) ([]byte, error) { return []byte(password), nil }

func (s *stubPasswordVerifier) Verify(password string, hash []byte) bool {
	return password == s.valid
}

func newWalletService(t *testing.T, owner *domain.User) (*WalletServiceImpl, *memoryWalletStore) {
	t.Helper()
	ws := newMemoryWalletStore()
	users := &memoryOwnerStore{users: map[uuid.UUID]*domain.User{}}
	if owner != nil {
		users.users[owner.ID] = owner
	}
	svc := &WalletServiceImpl{
		Wallets:   ws,
		Users:     users,
		Passwords: &stubPasswordVerifier{valid: "hunter22"},
		Keys:      testKeyring(t),
	}
	return svc, ws
}

func TestWalletCreateAndListRoundTrip(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, _ := newWalletService(t, nil)

	mnemonic, err := svc.GenerateMnemonic(128)
	if err != nil {
		t.Fatalf("generate mnemonic: %v", err)
	}

	id, err := svc.Create(ctx, userID, "  Main  ", mnemonic)
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if id == uuid.Nil {
		t.Fatalf("create returned nil id")
	}

	out, err := svc.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 wallet, got %d", len(out))
	}
	if out[0].Name != "Main" {
		t.Fatalf("name was not trimmed: %q", out[0].Name)
	}
	if out[0].Mnemonic != mnemonic {
		t.Fatalf("decrypted mnemonic mismatch: got %q want %q", out[0].Mnemonic, mnemonic)
	}
	if out[0].Error != "" {
		t.Fatalf("unexpected per-record error: %s", out[0].Error)
	}
}

func TestWalletCreateValidations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWalletService(t, nil)
	mnemonic, _ := svc.GenerateMnemonic(128)

	cases := []struct {
		name     string
		wallet   string
		mnemonic string
		want     error
	}{
		{name: "empty name", wallet: "   ", mnemonic: mnemonic, want: ErrEmptyName},
		{name: "empty mnemonic", wallet: "Main", mnemonic: "", want: ErrEmptyMnemonic},
		{name: "bad checksum", wallet: "Main", mnemonic: "not a valid mnemonic phrase at all", want: domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, uuid.New(), tc.wallet, tc.mnemonic); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestWalletCreateRejectsDuplicateSeed(t *testing.T) {
	ctx := context.Background()
	owner := &domain.User{ID: uuid.New(), Email: "alice@example.com", IsActive: true}
	svc, _ := newWalletService(t, owner)

	mnemonic, _ := svc.GenerateMnemonic(128)
	id, err := svc.Create(ctx, owner.ID, "First", mnemonic)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same seed again, even for another owner.
	if _, err := svc.Create(ctx, uuid.New(), "Second", mnemonic); !errors.Is(err, domain.ErrDuplicateSeed) {
		t.Fatalf("expected ErrDuplicateSeed, got %v", err)
	}

	// After soft-deleting the original, the seed is free again.
	if err := svc.SoftDelete(ctx, id, owner.ID, "hunter22"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := svc.Create(ctx, owner.ID, "Recovered", mnemonic); err != nil {
		t.Fatalf("create after soft delete returned error: %v", err)
	}
}

func TestWalletRename(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, _ := newWalletService(t, nil)

	mnemonic, _ := svc.GenerateMnemonic(128)
	id, err := svc.Create(ctx, userID, "Main", mnemonic)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Rename(ctx, id, "  Spending  "); err != nil {
		t.Fatalf("rename returned error: %v", err)
	}
	out, _ := svc.ListByUser(ctx, userID)
	if out[0].Name != "Spending" {
		t.Fatalf("rename did not stick: %q", out[0].Name)
	}

	if err := svc.Rename(ctx, id, "   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := svc.Rename(ctx, uuid.New(), "Other"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWalletListReportsPerRecordDecryptFailure(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, ws := newWalletService(t, nil)

	good, _ := svc.GenerateMnemonic(128)
	bad, _ := svc.GenerateMnemonic(128)
	goodID, err := svc.Create(ctx, userID, "Good", good)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	badID, err := svc.Create(ctx, userID, "Bad", bad)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ws.corruptCiphertext(badID)

	out, err := svc.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list returned error despite per-record reporting: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	for _, entry := range out {
		switch entry.WalletID {
		case goodID.String():
			if entry.Error != "" || entry.Mnemonic != good {
				t.Fatalf("healthy record was not decrypted: %+v", entry)
			}
		case badID.String():
			if entry.Error == "" {
				t.Fatalf("corrupted record reported no error")
			}
			if entry.Mnemonic != "" {
				t.Fatalf("corrupted record leaked a mnemonic")
			}
		default:
			t.Fatalf("unexpected entry %+v", entry)
		}
	}
}

func TestWalletSoftDelete(t *testing.T) {
	ctx := context.Background()
	owner := &domain.User{ID: uuid.New(), Email: "bob@example.com", IsActive: true}
	svc, _ := newWalletService(t, owner)

	mnemonic, _ := svc.GenerateMnemonic(128)
	id, err := svc.Create(ctx, owner.ID, "Main", mnemonic)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.SoftDelete(ctx, id, owner.ID, "wrong-password"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.SoftDelete(ctx, id, uuid.New(), "hunter22"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}

	if err := svc.SoftDelete(ctx, id, owner.ID, "hunter22"); err != nil {
		t.Fatalf("soft delete returned error: %v", err)
	}
	out, err := svc.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("soft-deleted wallet still listed: %+v", out)
	}

	// Inactive is terminal: a second delete reports not found.
	if err := svc.SoftDelete(ctx, id, owner.ID, "hunter22"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestWalletDeriveAccountMatchesMnemonic(t *testing.T) {
	svc, _ := newWalletService(t, nil)
	account, err := svc.DeriveAccount(" abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about ")
	if err != nil {
		t.Fatalf("derive returned error: %v", err)
	}
	if account.Address != "0x9858EfFD232B4033E47d90003D41EC34EcaEda94" {
		t.Fatalf("unexpected address: %s", account.Address)
	}
	if _, err := svc.DeriveAccount("garbage"); !errors.Is(err, hdwallet.ErrInvalidMnemonic) {
		t.Fatalf("expected ErrInvalidMnemonic, got %v", err)
	}
}
