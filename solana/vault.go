package solana

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/AlexZinkM/voice-wallet/internal/crypto"
	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/skip2/go-qrcode"
)

// Vault persists signer identities to an encrypted .cwt keystore
type Vault struct {
	signer   *Signer
	keystore *crypto.Keystore
	path     string
	password func() ([]byte, error)
}

// NewVault binds a signer to the keystore file at path.
// password is called on every save or load; the returned slice is zeroed after use.
func NewVault(signer *Signer, keystore *crypto.Keystore, path string, password func() ([]byte, error)) *Vault {
	return &Vault{signer: signer, keystore: keystore, path: path, password: password}
}

// Save writes the identity to the keystore. An existing wallet file is never overwritten.
func (v *Vault) Save(id model.IdentityHandle) error {
	walletData, address, err := v.signer.walletData(id)
	if err != nil {
		return err
	}
	defer clear(walletData.Mnemonic)

	qrCode, err := AddressQR(address)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	password, err := v.password()
	if err != nil {
		return fmt.Errorf("failed to get keystore password: %w", err)
	}
	defer clear(password)

	header := crypto.Header{Network: networkSolana, Address: address, QR: qrCode}
	if err := v.keystore.EncryptWallet(v.path, header, walletData, password); err != nil {
		return fmt.Errorf("failed to encrypt wallet: %w", err)
	}
	return nil
}

// Load decrypts the keystore and imports its phrase into the signer.
// It returns "" without error when no keystore exists yet.
func (v *Vault) Load() (model.IdentityHandle, error) {
	exists, err := v.keystore.Exists(v.path)
	if err != nil || !exists {
		return "", err
	}

	password, err := v.password()
	if err != nil {
		return "", fmt.Errorf("failed to get keystore password: %w", err)
	}
	defer clear(password)

	cwtFile, walletData, err := v.keystore.DecryptWallet(v.path, password)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt wallet: %w", err)
	}
	defer clear(walletData.Mnemonic)

	id, err := v.signer.ImportFromWords(strings.Fields(string(walletData.Mnemonic)))
	if err != nil {
		return "", fmt.Errorf("failed to import keystore phrase: %w", err)
	}

	// Verify wallet matches the stored address
	address, err := v.signer.DeriveAddress(id)
	if err != nil {
		return "", err
	}
	if address != cwtFile.Address {
		v.signer.Forget(id)
		return "", fmt.Errorf("keystore phrase does not match address %s", cwtFile.Address)
	}
	return id, nil
}

// AddressQR generates QR code of address as base64 PNG
func AddressQR(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
