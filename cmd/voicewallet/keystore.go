package main

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/voice-wallet/internal/config"
	"github.com/AlexZinkM/voice-wallet/internal/crypto"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var keystorePath string

var keystoreCmd = &cobra.Command{
	Use:   "keystore",
	Short: "Inspect or re-encrypt the .cwt keystore",
}

var keystoreAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the wallet address stored in the keystore header",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveKeystorePath()
		if err != nil {
			return err
		}
		address, err := openKeystore().ReadAddress(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), address)
		return nil
	},
}

var keystoreRekeyCmd = &cobra.Command{
	Use:   "rekey",
	Short: "Re-encrypt the keystore under a new password",
	Long: `Decrypts the keystore with the current password and writes it back under a new
password with a fresh salt and nonce, using the configured SCRYPT_N.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveKeystorePath()
		if err != nil {
			return err
		}

		oldPassword, err := config.ReadPassword("Current keystore password: ")
		if err != nil {
			return err
		}
		defer clear(oldPassword)

		newPassword, err := config.ReadPassword("New keystore password: ")
		if err != nil {
			return err
		}
		defer clear(newPassword)

		confirm, err := config.ReadPassword("Repeat new password: ")
		if err != nil {
			return err
		}
		defer clear(confirm)
		if string(confirm) != string(newPassword) {
			return errors.New("passwords do not match")
		}

		if err := openKeystore().Rekey(path, oldPassword, newPassword); err != nil {
			return err
		}
		log.Info("keystore re-encrypted", zap.String("path", path))
		fmt.Fprintln(cmd.OutOrStdout(), "Keystore re-encrypted.")
		return nil
	},
}

func init() {
	keystoreCmd.PersistentFlags().StringVar(&keystorePath, "path", "", "keystore file (default KEYSTORE_PATH)")
	keystoreCmd.AddCommand(keystoreAddressCmd)
	keystoreCmd.AddCommand(keystoreRekeyCmd)
}

func resolveKeystorePath() (string, error) {
	if keystorePath != "" {
		return keystorePath, nil
	}
	if path := config.GetKeystorePath(); path != "" {
		return path, nil
	}
	return "", errors.New("KEYSTORE_PATH not set and --path not given")
}

func openKeystore() *crypto.Keystore {
	return crypto.NewKeystore(afero.NewOsFs(), config.Get().ScryptN)
}
