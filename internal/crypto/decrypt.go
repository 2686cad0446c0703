package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/AlexZinkM/voice-wallet/internal/model"
)

// DecryptWallet reads and decrypts .cwt file
// password must be []byte for security (caller should zero it after use)
func (k *Keystore) DecryptWallet(path string, password []byte) (*model.CWTFile, *model.WalletData, error) {
	cwtFile, err := k.readFile(path)
	if err != nil {
		return nil, nil, err
	}

	// Decode salt and nonce
	salt, err := base64.StdEncoding.DecodeString(cwtFile.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(cwtFile.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(cwtFile.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	// Files written before the cost was recorded used the default
	scryptN := cwtFile.ScryptN
	if scryptN == 0 {
		scryptN = DefaultScryptN
	}

	aesGCM, err := newGCM(password, salt, scryptN)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var walletData model.WalletData
	if err := json.Unmarshal(plaintext, &walletData); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal wallet data: %w", err)
	}

	return cwtFile, &walletData, nil
}
