package solana

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/tyler-smith/go-bip39"
)

const (
	networkSolana = "solana"

	// 128 bits of entropy give a 12 word phrase
	entropyBits = 128
)

var (
	// ErrInvalidPhrase is returned when a recovery phrase fails the BIP-39 checks
	ErrInvalidPhrase = errors.New("invalid recovery phrase")
	// ErrUnknownIdentity is returned for a handle the signer never issued (or has forgotten)
	ErrUnknownIdentity = errors.New("unknown identity")
	// ErrSigning is returned when a message cannot be signed
	ErrSigning = errors.New("signing failed")
)

type identity struct {
	mnemonic  string
	key       solana.PrivateKey
	createdAt time.Time
}

// Signer holds wallet keys in memory and hands out opaque handles to them
type Signer struct {
	mu         sync.RWMutex
	identities map[model.IdentityHandle]*identity
	now        func() time.Time
}

func NewSigner() *Signer {
	return &Signer{
		identities: make(map[model.IdentityHandle]*identity),
		now:        time.Now,
	}
}

// Generate creates a fresh 12 word wallet
func (s *Signer) Generate() ([]string, model.IdentityHandle, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer clear(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}

	id, err := s.add(mnemonic)
	if err != nil {
		return nil, "", err
	}
	return strings.Fields(mnemonic), id, nil
}

// ImportFromWords restores a wallet from its recovery phrase
func (s *Signer) ImportFromWords(words []string) (model.IdentityHandle, error) {
	if len(words) != model.SeedWordCount {
		return "", fmt.Errorf("expected %d words, got %d: %w", model.SeedWordCount, len(words), ErrInvalidPhrase)
	}
	mnemonic := strings.ToLower(strings.Join(words, " "))
	if !bip39.IsMnemonicValid(mnemonic) {
		return "", ErrInvalidPhrase
	}
	return s.add(mnemonic)
}

// DeriveAddress returns the base58 public key of the identity
func (s *Signer) DeriveAddress(id model.IdentityHandle) (string, error) {
	ident, err := s.get(id)
	if err != nil {
		return "", err
	}
	return ident.key.PublicKey().String(), nil
}

// Sign signs message with the identity's key and returns the base58 signature
func (s *Signer) Sign(id model.IdentityHandle, message []byte) (string, error) {
	ident, err := s.get(id)
	if err != nil {
		return "", err
	}
	signature, err := ident.key.Sign(message)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signature.String(), nil
}

// RevealSecret returns the base58 private key. Callers must treat the result as secret.
func (s *Signer) RevealSecret(id model.IdentityHandle) (string, error) {
	ident, err := s.get(id)
	if err != nil {
		return "", err
	}
	return ident.key.String(), nil
}

// Forget drops the key material of id
func (s *Signer) Forget(id model.IdentityHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ident, ok := s.identities[id]; ok {
		clear(ident.key)
		delete(s.identities, id)
	}
}

// walletData exports what the keystore persists for id
func (s *Signer) walletData(id model.IdentityHandle) (*model.WalletData, string, error) {
	ident, err := s.get(id)
	if err != nil {
		return nil, "", err
	}
	return &model.WalletData{
		Mnemonic:  []byte(ident.mnemonic),
		CreatedAt: ident.createdAt.UTC().Format(time.RFC3339),
	}, ident.key.PublicKey().String(), nil
}

func (s *Signer) add(mnemonic string) (model.IdentityHandle, error) {
	key, err := keyFromMnemonic(mnemonic)
	if err != nil {
		return "", err
	}
	id := model.IdentityHandle(uuid.NewString())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identities[id] = &identity{mnemonic: mnemonic, key: key, createdAt: s.now()}
	return id, nil
}

func (s *Signer) get(id model.IdentityHandle) (*identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ident, ok := s.identities[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownIdentity)
	}
	return ident, nil
}

// keyFromMnemonic derives the ed25519 key from the first 32 bytes of the BIP-39 seed
func keyFromMnemonic(mnemonic string) (solana.PrivateKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhrase, err)
	}
	defer clear(seed)
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])), nil
}
