package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/justmedusty/Kryptos-Client/internal/domain/cryptoalg"
	"github.com/justmedusty/Kryptos-Client/internal/pkg/config"
	"github.com/justmedusty/Kryptos-Client/internal/pkg/logger"
)

// ErrConnectionClosed is returned by Run when the server closes the connection.
var ErrConnectionClosed = errors.New("remote server has closed the connection")

// ChatSession drives one encrypted chat connection: a reader goroutine polls the socket
// and prints decrypted messages while the input loop encrypts console lines and sends them.
//
// The connection and the cipher are the only shared resources. Each is locked for a single
// operation at a time and no lock is held across a sleep or a console read. The cipher must
// be safe for concurrent use, which EncryptionContext guarantees.
type ChatSession struct {
	id     uuid.UUID
	conn   net.Conn
	connMu sync.RWMutex
	cipher cryptoalg.Encryption

	input  io.Reader
	output io.Writer

	pollInterval   time.Duration
	readWindow     time.Duration
	readBufferSize int
	trimPadding    bool

	logger logger.Logger
}

// NewChatSession creates a session over an established connection.
func NewChatSession(
	conn net.Conn,
	cipher cryptoalg.Encryption,
	input io.Reader,
	output io.Writer,
	settings *config.ClientSettings,
	logger logger.Logger,
) *ChatSession {
	return &ChatSession{
		id:             uuid.New(),
		conn:           conn,
		cipher:         cipher,
		input:          input,
		output:         output,
		pollInterval:   settings.PollInterval,
		readWindow:     settings.ReadWindow,
		readBufferSize: settings.ReadBufferSize,
		trimPadding:    cryptoalg.EncryptionType(settings.EncryptionType).Padded(),
		logger:         logger,
	}
}

// ID returns the identifier used to correlate the session's log lines.
func (s *ChatSession) ID() uuid.UUID {
	return s.id
}

// RemoteAddr returns the address of the chat server.
func (s *ChatSession) RemoteAddr() net.Addr {
	s.connMu.RLock()
	defer s.connMu.RUnlock()

	return s.conn.RemoteAddr()
}

// Run starts the reader goroutine and runs the input loop until one of them stops.
// Console EOF and context cancellation end the session with a nil error; a closed
// connection or an I/O failure is returned and is meant to be fatal for the caller.
//
// A console read cannot be interrupted, so when the reader fails first the input
// goroutine stays blocked until the process exits.
func (s *ChatSession) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.logger.Info("Session ", s.id, " connected to ", s.RemoteAddr())

	readerDone := make(chan error, 1)
	go func() {
		readerDone <- s.readLoop(ctx)
	}()

	inputDone := make(chan error, 1)
	go func() {
		inputDone <- s.inputLoop(ctx)
	}()

	select {
	case err := <-readerDone:
		return err
	case err := <-inputDone:
		cancel()
		if readerErr := <-readerDone; err == nil {
			err = readerErr
		}
		s.logger.Info("Session ", s.id, " ended")
		return err
	}
}

// Send encrypts one line and writes the frame to the connection.
// A cipher failure drops the line; only write failures are returned.
func (s *ChatSession) Send(line string) error {
	frame, err := s.cipher.Encrypt([]byte(line))
	if err != nil {
		s.logger.Error("Session ", s.id, ": dropping outgoing line: ", err)
		return nil
	}

	return s.writeFrame(frame)
}

func (s *ChatSession) inputLoop(ctx context.Context) error {
	reader := bufio.NewReader(s.input)
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read console input: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}

		if line := strings.TrimSpace(raw); line != "" {
			if sendErr := s.Send(line); sendErr != nil {
				return sendErr
			}
		}
		if err != nil {
			return nil
		}
	}
}

func (s *ChatSession) readLoop(ctx context.Context) error {
	buffer := make([]byte, s.readBufferSize)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		n, err := s.readFrame(buffer)
		if n > 0 {
			if printErr := s.printFrame(buffer[:n]); printErr != nil {
				return printErr
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, os.ErrDeadlineExceeded):
			// nothing to read this round
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrClosedPipe):
			return ErrConnectionClosed
		default:
			return fmt.Errorf("failed to read from stream: %w", err)
		}
	}
}

// readFrame performs one bounded read while holding the connection lock.
func (s *ChatSession) readFrame(buffer []byte) (int, error) {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if err := s.conn.SetReadDeadline(time.Now().Add(s.readWindow)); err != nil {
		return 0, fmt.Errorf("failed to set read deadline: %w", err)
	}
	return s.conn.Read(buffer)
}

func (s *ChatSession) writeFrame(frame []byte) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if _, err := s.conn.Write(frame); err != nil {
		return fmt.Errorf("failed to write line to stream: %w", err)
	}
	return nil
}

// printFrame decrypts one received frame and prints it. Trailing zero bytes are
// removed for the padded modes (ECB and CBC) only.
func (s *ChatSession) printFrame(frame []byte) error {
	plaintext, err := s.cipher.Decrypt(frame)
	if err != nil {
		s.logger.Warn("Session ", s.id, ": dropping incoming frame: ", err)
		return nil
	}

	if s.trimPadding {
		plaintext = bytes.TrimRight(plaintext, "\x00")
	}
	if _, err := fmt.Fprintln(s.output, string(plaintext)); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}
