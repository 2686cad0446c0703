package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the keystore password is prompted at runtime and kept in memory - use GetKeystorePasswordBytes()
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	DBPath         string        `envconfig:"DB_PATH" default:"./voicewallet.db"`
	InitialBalance uint64        `envconfig:"INITIAL_BALANCE" default:"500"`
	Contacts       []string      `envconfig:"CONTACTS" default:"Alice,Bob"`
	KeystorePath   string        `envconfig:"KEYSTORE_PATH"`
	ScryptN        int           `envconfig:"SCRYPT_N" default:"262144"`
	SolanaRPCURL   string        `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	SyncBalance    bool          `envconfig:"SYNC_BALANCE" default:"false"`
	FiatCurrency   string        `envconfig:"FIAT_CURRENCY"`
	ListenSettle   time.Duration `envconfig:"LISTEN_SETTLE" default:"300ms"`
	RevealDelay    time.Duration `envconfig:"REVEAL_DELAY" default:"1500ms"`
	SaveDelay      time.Duration `envconfig:"SAVE_DELAY" default:"2s"`
	RetryLimit     int           `envconfig:"RETRY_LIMIT" default:"0"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load processes the environment into a fresh Config without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values envconfig cannot express as tags
func (c *Config) Validate() error {
	if c.ScryptN < 2 || c.ScryptN&(c.ScryptN-1) != 0 {
		return fmt.Errorf("SCRYPT_N must be a power of two greater than 1, got %d", c.ScryptN)
	}
	if c.RetryLimit < 0 {
		return fmt.Errorf("RETRY_LIMIT must not be negative, got %d", c.RetryLimit)
	}
	if c.ListenSettle < 0 || c.RevealDelay < 0 || c.SaveDelay < 0 {
		return errors.New("delays must not be negative")
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetKeystorePath returns path to .cwt keystore file from configuration
func GetKeystorePath() string {
	return Get().KeystorePath
}

// GetSolanaRPCURL returns Solana RPC URL from configuration
func GetSolanaRPCURL() string {
	return Get().SolanaRPCURL
}

var passwordBytes []byte

// PromptForPassword prompts the user for the keystore password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the dialogue engine starts.
func PromptForPassword() error {
	raw, err := ReadPassword("Enter keystore password: ")
	if err != nil {
		return err
	}
	SetKeystorePassword(raw)
	clear(raw)
	return nil
}

// ReadPassword shows prompt on stderr and reads a non-empty password from the terminal without echo.
// Caller must zero the returned slice after use.
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return raw, nil
}

// SetKeystorePassword stores a copy of password in memory
func SetKeystorePassword(password []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// GetKeystorePasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetKeystorePasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
