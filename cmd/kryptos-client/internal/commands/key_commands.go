package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/justmedusty/Kryptos-Client/internal/domain/cryptoalg"
	"github.com/justmedusty/Kryptos-Client/internal/infrastructure/cryptography"
)

// KeyCommandHandler encapsulates logic for generating session keys via CLI.
type KeyCommandHandler struct{}

// NewKeyCommandHandler returns a KeyCommandHandler.
func NewKeyCommandHandler() *KeyCommandHandler {
	return &KeyCommandHandler{}
}

// GenerateKeyCmd generates a printable session key and either prints it or persists it in a selected directory
func (commandHandler *KeyCommandHandler) GenerateKeyCmd(cmd *cobra.Command, _ []string) error {
	encryptionType, err := cmd.Flags().GetString("encryption-type")
	if err != nil {
		return fmt.Errorf("invalid encryption-type flag: %w", err)
	}
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return fmt.Errorf("invalid key-size flag: %w", err)
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}

	encType, err := cryptoalg.ParseEncryptionType(encryptionType)
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true

	loggerInstance, err := setupLogger(cmd)
	if err != nil {
		return err
	}

	key, err := cryptography.GenerateKey(encType, cryptoalg.KeySize(keySize))
	if err != nil {
		return err
	}

	if keyDir == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
		return err
	}

	keyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-session-key.txt", uuid.New()))
	if err := os.WriteFile(keyFilePath, []byte(key), 0600); err != nil {
		return fmt.Errorf("failed to save key: %w", err)
	}

	loggerInstance.Info(encType, " key saved to ", keyFilePath)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), keyFilePath)
	return err
}

// InitKeyCommands registers key related commands
func InitKeyCommands(rootCmd *cobra.Command) error {
	handler := NewKeyCommandHandler()

	var generateKeyCmd = &cobra.Command{
		Use:   "generate-key",
		Short: "Generate a random session key",
		Args:  cobra.NoArgs,
		RunE:  handler.GenerateKeyCmd,
	}
	generateKeyCmd.Flags().StringP("encryption-type", "", string(cryptoalg.EncryptionTypeAESCBC), "Encryption type the key is meant for (AesCbc, AesCtr, AesEcb, Rc4)")
	generateKeyCmd.Flags().IntP("key-size", "", int(cryptoalg.KeySize256), "AES key size in bits (128, 192, 256), ignored for Rc4")
	generateKeyCmd.Flags().StringP("key-dir", "", "", "Directory to store the key, printed to stdout when empty")
	rootCmd.AddCommand(generateKeyCmd)

	return nil
}
