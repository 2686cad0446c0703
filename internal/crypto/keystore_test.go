package crypto

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScryptN = 1 << 4

var testHeader = Header{Network: "solana", Address: "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", QR: "cXI="}

func newTestKeystore() (*Keystore, afero.Fs) {
	fs := afero.NewMemMapFs()
	return NewKeystore(fs, testScryptN), fs
}

func walletData() *model.WalletData {
	return &model.WalletData{
		Mnemonic:  []byte("abandon ability able about above absent absorb abstract absurd abuse access accident"),
		CreatedAt: "2026-03-01T00:00:00Z",
	}
}

func TestEncryptDecrypt(t *testing.T) {
	k, fs := newTestKeystore()
	path := "/wallets/main.cwt"

	require.NoError(t, k.EncryptWallet(path, testHeader, walletData(), []byte("pass")))

	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, utf8BOM))
	assert.NotContains(t, string(raw), "abandon")

	file, data, err := k.DecryptWallet(path, []byte("pass"))
	require.NoError(t, err)
	assert.Equal(t, testHeader.Address, file.Address)
	assert.Equal(t, testHeader.QR, file.QR)
	assert.Equal(t, testScryptN, file.ScryptN)
	assert.Equal(t, walletData().Mnemonic, data.Mnemonic)

	address, err := k.ReadAddress(path)
	require.NoError(t, err)
	assert.Equal(t, testHeader.Address, address)

	exists, err := fs.Stat(path + ".tmp")
	assert.Nil(t, exists)
	assert.True(t, os.IsNotExist(err))
}

func TestDecryptWrongPassword(t *testing.T) {
	k, _ := newTestKeystore()
	path := "main.cwt"
	require.NoError(t, k.EncryptWallet(path, testHeader, walletData(), []byte("pass")))

	_, _, err := k.DecryptWallet(path, []byte("nope"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestEncryptRefusesExistingFile(t *testing.T) {
	k, _ := newTestKeystore()
	path := "main.cwt"
	require.NoError(t, k.EncryptWallet(path, testHeader, walletData(), []byte("pass")))

	err := k.EncryptWallet(path, testHeader, walletData(), []byte("pass"))
	require.Error(t, err)
	assert.True(t, IsFileExistsError(err))
	assert.True(t, errors.Is(err, os.ErrExist))
}

func TestEncryptAllowsEmptyFile(t *testing.T) {
	k, fs := newTestKeystore()
	path := "empty.cwt"
	require.NoError(t, afero.WriteFile(fs, path, nil, 0600))

	require.NoError(t, k.EncryptWallet(path, testHeader, walletData(), []byte("pass")))
}

func TestEncryptRequiresExtension(t *testing.T) {
	k, _ := newTestKeystore()
	assert.Error(t, k.EncryptWallet("wallet.json", testHeader, walletData(), []byte("pass")))
}

func TestReadMissingOrEmpty(t *testing.T) {
	k, fs := newTestKeystore()

	_, err := k.ReadAddress("missing.cwt")
	assert.EqualError(t, err, "file does not exist")

	require.NoError(t, afero.WriteFile(fs, "empty.cwt", nil, 0600))
	_, _, err = k.DecryptWallet("empty.cwt", []byte("pass"))
	assert.EqualError(t, err, "file is empty")

	exists, err := k.Exists("empty.cwt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRekey(t *testing.T) {
	k, _ := newTestKeystore()
	path := "main.cwt"
	require.NoError(t, k.EncryptWallet(path, testHeader, walletData(), []byte("old")))
	before, err := k.ReadHeader(path)
	require.NoError(t, err)

	stronger := NewKeystore(k.fs, 1<<5)
	require.NoError(t, stronger.Rekey(path, []byte("old"), []byte("new")))

	_, _, err = k.DecryptWallet(path, []byte("old"))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	file, data, err := k.DecryptWallet(path, []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, 1<<5, file.ScryptN)
	assert.NotEqual(t, before.Salt, file.Salt)
	assert.Equal(t, testHeader.Address, file.Address)
	assert.Equal(t, walletData().Mnemonic, data.Mnemonic)
}

func TestRekeyWrongPassword(t *testing.T) {
	k, _ := newTestKeystore()
	path := "main.cwt"
	require.NoError(t, k.EncryptWallet(path, testHeader, walletData(), []byte("old")))

	assert.ErrorIs(t, k.Rekey(path, []byte("guess"), []byte("new")), ErrInvalidPassword)
}
