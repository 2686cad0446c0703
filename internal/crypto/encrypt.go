package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/spf13/afero"
	"golang.org/x/crypto/scrypt"
)

// Header is the unencrypted part of a keystore file
type Header struct {
	Network string
	Address string
	QR      string
}

// EncryptWallet encrypts wallet data and writes it to a new .cwt file. A non-empty file is never overwritten.
// password must be []byte for security (caller should zero it after use)
func (k *Keystore) EncryptWallet(path string, header Header, walletData *model.WalletData, password []byte) error {
	if !strings.HasSuffix(path, fileExt) {
		return errors.New("file must have .cwt extension")
	}
	exists, err := k.Exists(path)
	if err != nil {
		return err
	}
	if exists {
		return &FileExistsError{Path: path}
	}
	return k.write(path, header, walletData, password)
}

// Rekey re-encrypts an existing keystore under a new password with fresh salt and nonce,
// using the keystore's configured scrypt cost
func (k *Keystore) Rekey(path string, oldPassword, newPassword []byte) error {
	cwtFile, walletData, err := k.DecryptWallet(path, oldPassword)
	if err != nil {
		return err
	}
	defer clear(walletData.Mnemonic)

	header := Header{Network: cwtFile.Network, Address: cwtFile.Address, QR: cwtFile.QR}
	return k.write(path, header, walletData, newPassword)
}

func (k *Keystore) write(path string, header Header, walletData *model.WalletData, password []byte) error {
	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, k.scryptN)
	if err != nil {
		return err
	}

	// Serialize wallet data
	plaintext, err := json.Marshal(walletData)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	cwtFile := model.CWTFile{
		Network:    header.Network,
		Address:    header.Address,
		QR:         header.QR,
		ScryptN:    k.scryptN,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	fileData, err := json.MarshalIndent(cwtFile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cwt file: %w", err)
	}

	// Add UTF-8 BOM for proper display in Windows
	fileDataWithBOM := append(append([]byte(nil), utf8BOM...), fileData...)

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := k.fs.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write to a temp file and rename it over the target
	tmp := path + ".tmp"
	if err := afero.WriteFile(k.fs, tmp, fileDataWithBOM, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := k.fs.Rename(tmp, path); err != nil {
		_ = k.fs.Remove(tmp)
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

func newGCM(password, salt []byte, scryptN int) (cipher.AEAD, error) {
	// Derive key from password
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
