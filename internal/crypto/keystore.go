// Package crypto reads and writes the password-protected .cwt keystore file
package crypto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/spf13/afero"
)

const (
	// scrypt parameters for local wallet
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s) works on phones and desktops alike.
	// N=2^20 (~1GB) fails on mobile due to per-app memory limits.
	DefaultScryptN = 1 << 18
	scryptR        = 8
	scryptP        = 1
	scryptKeyLen   = 32
	saltLen        = 32
	nonceLen       = 12

	fileExt = ".cwt"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrInvalidPassword is returned when the keystore cannot be opened with the given password
var ErrInvalidPassword = errors.New("invalid password")

// FileExistsError is returned when refusing to overwrite a non-empty keystore
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("keystore %s is not empty", e.Path)
}

func (e *FileExistsError) Unwrap() error {
	return os.ErrExist
}

// IsFileExistsError reports whether err is (or wraps) a FileExistsError
func IsFileExistsError(err error) bool {
	var target *FileExistsError
	return errors.As(err, &target)
}

// Keystore encrypts wallet data into .cwt files on fs
type Keystore struct {
	fs      afero.Fs
	scryptN int
}

// NewKeystore creates a Keystore. scryptN is the cost for new files; 0 means DefaultScryptN.
// Existing files are always opened with the cost recorded in them.
func NewKeystore(fs afero.Fs, scryptN int) *Keystore {
	if scryptN == 0 {
		scryptN = DefaultScryptN
	}
	return &Keystore{fs: fs, scryptN: scryptN}
}

// Exists reports whether a non-empty keystore is present at path
func (k *Keystore) Exists(path string) (bool, error) {
	info, err := k.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.Size() > 0, nil
}

// ReadAddress reads only the address from .cwt file (without decryption)
func (k *Keystore) ReadAddress(path string) (string, error) {
	file, err := k.readFile(path)
	if err != nil {
		return "", err
	}
	return file.Address, nil
}

// ReadHeader reads the unencrypted part of .cwt file
func (k *Keystore) ReadHeader(path string) (*model.CWTFile, error) {
	return k.readFile(path)
}

func (k *Keystore) readFile(path string) (*model.CWTFile, error) {
	fileInfo, err := k.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("file does not exist")
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := afero.ReadFile(k.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Skip UTF-8 BOM if present
	fileData = bytes.TrimPrefix(fileData, utf8BOM)

	var cwtFile model.CWTFile
	if err := json.Unmarshal(fileData, &cwtFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cwt file: %w", err)
	}
	return &cwtFile, nil
}
