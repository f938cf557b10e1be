package service

// PasswordService hashes and verifies account passphrases. The wallet
// secrecy store consumes Verify as the owner-passphrase proof for soft
// deletes.
type PasswordService interface {
	Hash(password string) ([]byte, error)
	Verify(password string, hash []byte) bool
}
