package dto

type CreateWalletRequest struct {
	UserID string `json:"userUuid"`
	Name   string `json:"name"`
}

type CreateWalletResponse struct {
	WalletID string `json:"uuid"`
}

type RenameWalletRequest struct {
	WalletID string `json:"uuid"`
	Name     string `json:"name"`
}

type DeleteWalletRequest struct {
	WalletID string `json:"uuid"`
	UserID   string `json:"userUuid"`
	Password string `json:"password"`
}

type ListWalletsRequest struct {
	UserID string `json:"userUuid"`
}

// DecryptedWallet is one listing entry. A record whose ciphertext cannot be
// decrypted is reported with Error set and an empty mnemonic instead of
// failing the whole batch.
type DecryptedWallet struct {
	WalletID string `json:"uuid"`
	Name     string `json:"name"`
	Mnemonic string `json:"mnemonic,omitempty"`
	Error    string `json:"error,omitempty"`
}

type DeriveAddressRequest struct {
	Mnemonic string `json:"mnemonic"`
}

type DeriveAddressResponse struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Address    string `json:"address"`
}
