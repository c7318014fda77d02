// Package main is the entry point for the kryptos-client application.
// It builds the root command, which runs the encrypted chat client, registers the
// key generation sub-command and executes the command-line interface.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	commands "github.com/justmedusty/Kryptos-Client/cmd/kryptos-client/internal/commands"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "kryptos-client <ip> <port> <encryption-type> <key>",
		Short: "Encrypted telnet-style chat client",
		Long: `kryptos-client is a simple encrypted telnet chat client.
Every line typed on the console is encrypted before it is sent and every
message received from the server is decrypted before it is printed.

Encryption Options: AesCbc, AesCtr, AesEcb (unsafe), Rc4 (unsafe)
Key Size Options: 128, 192, 256 (AES keys are 16, 24 or 32 characters, Rc4 keys 32)
The port must not be in the reserved range (below 1024).`,
		Version:       version,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("Kryptos client version {{.Version}}\n")
	commands.RegisterLoggerFlags(rootCmd)

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitClientCommand(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize client command: %w", err)
	}

	if err := commands.InitKeyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize key commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
