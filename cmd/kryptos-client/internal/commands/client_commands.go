package commands

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/justmedusty/Kryptos-Client/internal/app"
	"github.com/justmedusty/Kryptos-Client/internal/domain/cryptoalg"
	"github.com/justmedusty/Kryptos-Client/internal/infrastructure/cryptography"
	"github.com/justmedusty/Kryptos-Client/internal/pkg/config"
)

type connectFunc func(ctx context.Context, settings *config.ClientSettings) (net.Conn, error)

// ClientCommandHandler encapsulates the logic of the chat command: it validates the
// arguments, builds the encryption context, connects and runs the session.
type ClientCommandHandler struct {
	input   io.Reader
	output  io.Writer
	connect connectFunc
}

// NewClientCommandHandler returns a handler chatting over stdin and stdout.
func NewClientCommandHandler() *ClientCommandHandler {
	return newClientCommandHandler(os.Stdin, os.Stdout, app.Connect)
}

func newClientCommandHandler(input io.Reader, output io.Writer, connect connectFunc) *ClientCommandHandler {
	return &ClientCommandHandler{
		input:   input,
		output:  output,
		connect: connect,
	}
}

// ChatCmd connects to ip:port and exchanges encrypted lines until the console or the connection closes.
func (commandHandler *ClientCommandHandler) ChatCmd(cmd *cobra.Command, args []string) error {
	settings, err := parseClientSettings(cmd, args)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	// arguments are valid, later failures are runtime errors
	cmd.SilenceUsage = true

	loggerInstance, err := setupLogger(cmd)
	if err != nil {
		return err
	}

	encType := cryptoalg.EncryptionType(settings.EncryptionType)
	encryptionContext, err := cryptography.NewEncryptionContextFromType(encType, []byte(settings.Key), loggerInstance)
	if err != nil {
		return fmt.Errorf("failed to create encryption context: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	conn, err := commandHandler.connect(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			loggerInstance.Warn("failed to close connection: ", err)
		}
	}()

	session := app.NewChatSession(conn, encryptionContext, commandHandler.input, commandHandler.output, settings, loggerInstance)
	return session.Run(ctx)
}

func parseClientSettings(cmd *cobra.Command, args []string) (*config.ClientSettings, error) {
	port, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("error occurred while parsing port %q: %w", args[1], err)
	}

	encType, err := cryptoalg.ParseEncryptionType(args[2])
	if err != nil {
		return nil, fmt.Errorf("%w, try --help for help", err)
	}

	key := args[3]
	if encType.IsAES() {
		if _, err := cryptoalg.KeySizeFromLength(len(key)); err != nil {
			return nil, fmt.Errorf("invalid key: %w", err)
		}
	} else if len(key) != cryptoalg.RC4KeyLength {
		return nil, fmt.Errorf("invalid key: Rc4 requires a %d bit key, the provided key was %d bits", cryptoalg.RC4KeyLength*8, len(key)*8)
	}

	settings := config.NewClientSettings(args[0], port, string(encType), key)

	if settings.PollInterval, err = cmd.Flags().GetDuration("poll-interval"); err != nil {
		return nil, fmt.Errorf("invalid poll-interval flag: %w", err)
	}
	if settings.ReadWindow, err = cmd.Flags().GetDuration("read-window"); err != nil {
		return nil, fmt.Errorf("invalid read-window flag: %w", err)
	}
	if settings.ReadBufferSize, err = cmd.Flags().GetInt("read-buffer"); err != nil {
		return nil, fmt.Errorf("invalid read-buffer flag: %w", err)
	}

	return settings, nil
}

// InitClientCommand turns the root command into the chat client
func InitClientCommand(rootCmd *cobra.Command) error {
	return initClientCommand(rootCmd, NewClientCommandHandler())
}

func initClientCommand(rootCmd *cobra.Command, handler *ClientCommandHandler) error {
	if handler == nil {
		return fmt.Errorf("client command handler is nil")
	}

	rootCmd.Args = cobra.ExactArgs(4)
	rootCmd.RunE = handler.ChatCmd

	rootCmd.Flags().Duration("poll-interval", config.DefaultPollInterval, "Delay between two socket polls")
	rootCmd.Flags().Duration("read-window", config.DefaultReadWindow, "How long a single socket poll waits for data")
	rootCmd.Flags().Int("read-buffer", config.DefaultReadBufferSize, "Maximum bytes read from the socket per poll")

	return nil
}
