//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justmedusty/Kryptos-Client/internal/domain/cryptoalg"
	"github.com/justmedusty/Kryptos-Client/internal/infrastructure/cryptography"
	"github.com/justmedusty/Kryptos-Client/internal/pkg/config"
	"github.com/justmedusty/Kryptos-Client/internal/pkg/testutil"
)

const testKey = "0123456789abcdef0123456789abcdef"

func testSettings(encType cryptoalg.EncryptionType) *config.ClientSettings {
	settings := config.NewClientSettings("127.0.0.1", 4000, string(encType), testKey)
	settings.PollInterval = time.Millisecond
	settings.ReadWindow = time.Millisecond
	return settings
}

// readFrames collects count frames written by the session to the server end of the pipe.
func readFrames(server net.Conn, count int) <-chan []byte {
	frames := make(chan []byte, count)
	go func() {
		defer close(frames)
		buffer := make([]byte, 4096)
		for i := 0; i < count; i++ {
			n, err := server.Read(buffer)
			if err != nil {
				return
			}
			frames <- append([]byte(nil), buffer[:n]...)
		}
	}()
	return frames
}

func collect(frames <-chan []byte) [][]byte {
	var result [][]byte
	for frame := range frames {
		result = append(result, frame)
	}
	return result
}

func TestChatSession_SendsEncryptedLines(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	client, server := net.Pipe()
	defer server.Close()
	defer client.Close()

	cipher := new(MockEncryption)
	cipher.On("Encrypt", []byte("hello")).Return([]byte("E(hello)"), nil).Once()
	cipher.On("Encrypt", []byte("world")).Return([]byte("E(world)"), nil).Once()

	frames := readFrames(server, 2)

	input := strings.NewReader("hello\n\n   \n  world  \n")
	output := &testutil.SyncBuffer{}
	session := NewChatSession(client, cipher, input, output, testSettings(cryptoalg.EncryptionTypeRC4), logger)

	err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [][]byte{[]byte("E(hello)"), []byte("E(world)")}, collect(frames))
	assert.Empty(t, output.String())
	cipher.AssertExpectations(t)
}

func TestChatSession_EncryptFailureDropsLine(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	client, server := net.Pipe()
	defer server.Close()
	defer client.Close()

	cipher := new(MockEncryption)
	cipher.On("Encrypt", []byte("broken")).Return(nil, errors.New("cipher failure")).Once()
	cipher.On("Encrypt", []byte("fine")).Return([]byte("E(fine)"), nil).Once()

	frames := readFrames(server, 1)

	input := strings.NewReader("broken\nfine\n")
	session := NewChatSession(client, cipher, input, io.Discard, testSettings(cryptoalg.EncryptionTypeRC4), logger)

	require.NoError(t, session.Run(context.Background()))
	assert.Equal(t, [][]byte{[]byte("E(fine)")}, collect(frames))
	cipher.AssertExpectations(t)
}

func TestChatSession_PrintsFramesAndSkipsUndecryptable(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	client, server := net.Pipe()
	defer client.Close()

	cipher := new(MockEncryption)
	cipher.On("Decrypt", []byte("garbage")).Return(nil, errors.New("ciphertext too short")).Once()
	cipher.On("Decrypt", []byte("E(hi)")).Return([]byte("hi\x00\x00\x00\x00"), nil).Once()

	inputReader, inputWriter := io.Pipe()
	defer inputWriter.Close()

	output := &testutil.SyncBuffer{}
	session := NewChatSession(client, cipher, inputReader, output, testSettings(cryptoalg.EncryptionTypeAESCBC), logger)

	go func() {
		_, _ = server.Write([]byte("garbage"))
		_, _ = server.Write([]byte("E(hi)"))
		_ = server.Close()
	}()

	err := session.Run(context.Background())
	assert.ErrorIs(t, err, ErrConnectionClosed)
	assert.Equal(t, "hi\n", output.String())
	cipher.AssertExpectations(t)
}

func TestChatSession_RemoteCloseOverTCP(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		_, _ = conn.Write([]byte("E(bye)"))
		_ = conn.Close()
	}()

	port := listener.Addr().(*net.TCPAddr).Port
	settings := testSettings(cryptoalg.EncryptionTypeAESECB)
	settings.Port = port

	client, err := Connect(context.Background(), settings)
	require.NoError(t, err)
	defer client.Close()

	cipher := new(MockEncryption)
	cipher.On("Decrypt", []byte("E(bye)")).Return([]byte("bye\x00\x00"), nil).Once()

	inputReader, inputWriter := io.Pipe()
	defer inputWriter.Close()

	output := &testutil.SyncBuffer{}
	session := NewChatSession(client, cipher, inputReader, output, settings, logger)

	err = session.Run(context.Background())
	assert.ErrorIs(t, err, ErrConnectionClosed)
	assert.Equal(t, "bye\n", output.String())
	cipher.AssertExpectations(t)
}

func TestChatSession_UnpaddedModesKeepTrailingZeros(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	for _, encType := range []cryptoalg.EncryptionType{cryptoalg.EncryptionTypeRC4, cryptoalg.EncryptionTypeAESCTR} {
		t.Run(string(encType), func(t *testing.T) {
			client, server := net.Pipe()
			defer client.Close()

			cipher := new(MockEncryption)
			cipher.On("Decrypt", []byte("E(raw)")).Return([]byte("raw\x00"), nil).Once()

			inputReader, inputWriter := io.Pipe()
			defer inputWriter.Close()

			output := &testutil.SyncBuffer{}
			session := NewChatSession(client, cipher, inputReader, output, testSettings(encType), logger)

			go func() {
				_, _ = server.Write([]byte("E(raw)"))
				_ = server.Close()
			}()

			assert.ErrorIs(t, session.Run(context.Background()), ErrConnectionClosed)
			assert.Equal(t, "raw\x00\n", output.String())
		})
	}
}

func TestChatSession_LongConsoleLine(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	client, server := net.Pipe()
	defer server.Close()
	defer client.Close()

	line := strings.Repeat("a", 200*1024)

	cipher := new(MockEncryption)
	cipher.On("Encrypt", []byte(line)).Return([]byte("E(long)"), nil).Once()
	cipher.On("Encrypt", []byte("last line without newline")).Return([]byte("E(last)"), nil).Once()

	frames := readFrames(server, 2)

	input := strings.NewReader(line + "\nlast line without newline")
	session := NewChatSession(client, cipher, input, io.Discard, testSettings(cryptoalg.EncryptionTypeRC4), logger)

	require.NoError(t, session.Run(context.Background()))
	assert.Equal(t, [][]byte{[]byte("E(long)"), []byte("E(last)")}, collect(frames))
	cipher.AssertExpectations(t)
}

func TestChatSession_ContextCancelStopsSession(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	client, server := net.Pipe()
	defer server.Close()
	defer client.Close()

	inputReader, inputWriter := io.Pipe()
	defer inputWriter.Close()

	session := NewChatSession(client, new(MockEncryption), inputReader, io.Discard, testSettings(cryptoalg.EncryptionTypeRC4), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx)
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after context cancellation")
	}
}

func TestChatSession_EndToEnd(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	for _, encType := range cryptoalg.EncryptionTypes {
		t.Run(string(encType), func(t *testing.T) {
			client, server := net.Pipe()
			defer server.Close()
			defer client.Close()

			clientCipher, err := cryptography.NewEncryptionContextFromType(encType, []byte(testKey), logger)
			require.NoError(t, err)
			serverCipher, err := cryptography.NewEncryptionContextFromType(encType, []byte(testKey), logger)
			require.NoError(t, err)

			greeting, err := serverCipher.Encrypt([]byte("welcome to the chat"))
			require.NoError(t, err)

			frames := readFrames(server, 1)
			go func() {
				_, _ = server.Write(greeting)
			}()

			inputReader, inputWriter := io.Pipe()
			output := &testutil.SyncBuffer{}
			session := NewChatSession(client, clientCipher, inputReader, output, testSettings(encType), logger)

			done := make(chan error, 1)
			go func() {
				done <- session.Run(context.Background())
			}()

			_, err = io.WriteString(inputWriter, "hello server\n")
			require.NoError(t, err)
			require.Eventually(t, func() bool {
				return output.String() == "welcome to the chat\n"
			}, 2*time.Second, time.Millisecond)
			require.NoError(t, inputWriter.Close())
			require.NoError(t, <-done)

			received := collect(frames)
			require.Len(t, received, 1)
			plaintext, err := serverCipher.Decrypt(received[0])
			require.NoError(t, err)
			assert.Equal(t, "hello server", strings.TrimRight(string(plaintext), "\x00"))
		})
	}
}

func TestChatSession_RemoteAddrAndID(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	client, server := net.Pipe()
	defer server.Close()
	defer client.Close()

	a := NewChatSession(client, new(MockEncryption), strings.NewReader(""), io.Discard, testSettings(cryptoalg.EncryptionTypeRC4), logger)
	b := NewChatSession(client, new(MockEncryption), strings.NewReader(""), io.Discard, testSettings(cryptoalg.EncryptionTypeRC4), logger)

	assert.Equal(t, client.RemoteAddr(), a.RemoteAddr())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestConnect(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	accepted := make(chan struct{})
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			_ = conn.Close()
		}
		close(accepted)
	}()

	port := listener.Addr().(*net.TCPAddr).Port
	settings := config.NewClientSettings("127.0.0.1", port, string(cryptoalg.EncryptionTypeAESCBC), "0123456789abcdef")

	conn, err := Connect(context.Background(), settings)
	require.NoError(t, err)
	defer conn.Close()
	<-accepted
}

func TestConnect_Refused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	settings := config.NewClientSettings("127.0.0.1", port, string(cryptoalg.EncryptionTypeAESCBC), "0123456789abcdef")

	_, err = Connect(context.Background(), settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to")
}
