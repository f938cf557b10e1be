package hdwallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/sha3"
)

// BIP-44 path for the first external Ethereum account: m/44'/60'/0'/0/0.
const (
	purpose     = 44
	coinTypeEth = 60
)

// Account is one derived blockchain identity. PublicKey is the compressed
// secp256k1 point, PrivateKey the raw scalar, both 0x-prefixed hex; Address
// is EIP-55 checksummed.
type Account struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Address    string `json:"address"`
}

// DeriveAccount deterministically derives the m/44'/60'/0'/0/0 account from
// a mnemonic. Pure: identical input yields bit-identical output across runs,
// which wallet recovery depends on.
func DeriveAccount(mnemonic string) (Account, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return Account{}, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, "")

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return Account{}, fmt.Errorf("master key: %w", err)
	}
	key := master
	for _, step := range []uint32{
		hdkeychain.HardenedKeyStart + purpose,
		hdkeychain.HardenedKeyStart + coinTypeEth,
		hdkeychain.HardenedKeyStart + 0,
		0,
		0,
	} {
		if key, err = key.Derive(step); err != nil {
			return Account{}, fmt.Errorf("derive path: %w", err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return Account{}, fmt.Errorf("private key: %w", err)
	}
	pub := priv.PubKey()

	return Account{
		PublicKey:  "0x" + hex.EncodeToString(pub.SerializeCompressed()),
		PrivateKey: "0x" + hex.EncodeToString(priv.Serialize()),
		Address:    addressFromPubKey(pub.SerializeUncompressed()),
	}, nil
}

// addressFromPubKey hashes the uncompressed point (without the 0x04 prefix)
// with Keccak-256 and keeps the last 20 bytes, then applies the EIP-55
// mixed-case checksum.
func addressFromPubKey(uncompressed []byte) string {
	keccak := sha3.NewLegacyKeccak256()
	keccak.Write(uncompressed[1:])
	digest := keccak.Sum(nil)
	return ChecksumAddress(hex.EncodeToString(digest[12:]))
}

// ChecksumAddress applies the EIP-55 checksum to a 40-char lowercase hex
// address (with or without 0x prefix).
func ChecksumAddress(addr string) string {
	addr = strings.ToLower(strings.TrimPrefix(addr, "0x"))

	keccak := sha3.NewLegacyKeccak256()
	keccak.Write([]byte(addr))
	hash := hex.EncodeToString(keccak.Sum(nil))

	var b strings.Builder
	b.WriteString("0x")
	for i, c := range addr {
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			b.WriteByte(byte(c) - 'a' + 'A')
		} else {
			b.WriteByte(byte(c))
		}
	}
	return b.String()
}
