package solana

import (
	"context"
	"crypto/ed25519"
	"errors"
	"strings"
	"testing"

	"github.com/AlexZinkM/voice-wallet/internal/crypto"
	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/AlexZinkM/voice-wallet/internal/store"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

// BIP-39 test vector: all-zero entropy
var zeroPhrase = strings.Fields("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")

func TestGenerate(t *testing.T) {
	s := NewSigner()

	words, id, err := s.Generate()
	require.NoError(t, err)
	assert.Len(t, words, model.SeedWordCount)
	assert.True(t, bip39.IsMnemonicValid(strings.Join(words, " ")))
	assert.NotEmpty(t, id)

	imported, err := s.ImportFromWords(words)
	require.NoError(t, err)
	assert.NotEqual(t, id, imported)

	a, err := s.DeriveAddress(id)
	require.NoError(t, err)
	b, err := s.DeriveAddress(imported)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestImportIsDeterministic(t *testing.T) {
	s := NewSigner()

	first, err := s.ImportFromWords(zeroPhrase)
	require.NoError(t, err)
	upper := make([]string, len(zeroPhrase))
	for i, w := range zeroPhrase {
		upper[i] = strings.ToUpper(w)
	}
	second, err := s.ImportFromWords(upper)
	require.NoError(t, err)

	a, err := s.DeriveAddress(first)
	require.NoError(t, err)
	b, err := s.DeriveAddress(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	seed := bip39.NewSeed(strings.Join(zeroPhrase, " "), "")
	want := solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:32])).PublicKey().String()
	assert.Equal(t, want, a)
}

func TestImportInvalidPhrase(t *testing.T) {
	s := NewSigner()

	cases := map[string][]string{
		"too few":      zeroPhrase[:11],
		"bad checksum": append(append([]string(nil), zeroPhrase[:11]...), "abandon"),
		"not a word":   append(append([]string(nil), zeroPhrase[:11]...), "zzzz"),
	}
	for name, words := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.ImportFromWords(words)
			assert.ErrorIs(t, err, ErrInvalidPhrase)
		})
	}
}

func TestSign(t *testing.T) {
	s := NewSigner()
	id, err := s.ImportFromWords(zeroPhrase)
	require.NoError(t, err)

	sigText, err := s.Sign(id, []byte("send 20 USDC to alice"))
	require.NoError(t, err)

	sig, err := solana.SignatureFromBase58(sigText)
	require.NoError(t, err)
	address, err := s.DeriveAddress(id)
	require.NoError(t, err)
	pub := solana.MustPublicKeyFromBase58(address)
	assert.True(t, sig.Verify(pub, []byte("send 20 USDC to alice")))
}

func TestUnknownIdentity(t *testing.T) {
	s := NewSigner()

	_, err := s.DeriveAddress("nope")
	assert.ErrorIs(t, err, ErrUnknownIdentity)
	_, err = s.Sign("nope", []byte("x"))
	assert.ErrorIs(t, err, ErrUnknownIdentity)
	_, err = s.RevealSecret("nope")
	assert.ErrorIs(t, err, ErrUnknownIdentity)
}

func TestRevealAndForget(t *testing.T) {
	s := NewSigner()
	id, err := s.ImportFromWords(zeroPhrase)
	require.NoError(t, err)

	secret, err := s.RevealSecret(id)
	require.NoError(t, err)
	key, err := solana.PrivateKeyFromBase58(secret)
	require.NoError(t, err)
	address, err := s.DeriveAddress(id)
	require.NoError(t, err)
	assert.Equal(t, address, key.PublicKey().String())

	s.Forget(id)
	_, err = s.RevealSecret(id)
	assert.True(t, errors.Is(err, ErrUnknownIdentity))
}

func password(p string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(p), nil }
}

func TestVaultSaveLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	keystore := crypto.NewKeystore(fs, 1<<4)
	s := NewSigner()
	v := NewVault(s, keystore, "/data/wallet.cwt", password("pw"))

	none, err := v.Load()
	require.NoError(t, err)
	assert.Empty(t, none)

	_, id, err := s.Generate()
	require.NoError(t, err)
	require.NoError(t, v.Save(id))

	header, err := keystore.ReadHeader("/data/wallet.cwt")
	require.NoError(t, err)
	assert.Equal(t, networkSolana, header.Network)
	assert.NotEmpty(t, header.QR)

	loaded, err := NewVault(s, keystore, "/data/wallet.cwt", password("pw")).Load()
	require.NoError(t, err)
	want, err := s.DeriveAddress(id)
	require.NoError(t, err)
	got, err := s.DeriveAddress(loaded)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, want, header.Address)

	_, err = NewVault(s, keystore, "/data/wallet.cwt", password("wrong")).Load()
	assert.ErrorIs(t, err, crypto.ErrInvalidPassword)

	assert.True(t, crypto.IsFileExistsError(v.Save(id)))
}

func TestAddressQR(t *testing.T) {
	qr, err := AddressQR("7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(qr, "iVBORw0KGgo"))
}

type fixedUSDC uint64

func (f fixedUSDC) USDCBalance(context.Context, string) (uint64, error) {
	return uint64(f), nil
}

func TestSyncOpeningBalance(t *testing.T) {
	ctx := context.Background()
	s := NewSigner()
	id, err := s.ImportFromWords(zeroPhrase)
	require.NoError(t, err)
	ledger := store.NewMemoryLedger(500)

	whole, seeded, err := SyncOpeningBalance(ctx, s, id, fixedUSDC(24_981_836), ledger)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Equal(t, uint64(24), whole)

	balance, err := ledger.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(24), balance)
}
