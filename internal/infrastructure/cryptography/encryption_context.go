package cryptography

import (
	"fmt"
	"sync"

	"github.com/justmedusty/Kryptos-Client/internal/domain/cryptoalg"
	"github.com/justmedusty/Kryptos-Client/internal/pkg/logger"
)

var (
	_ cryptoalg.Encryption = (*AESContext)(nil)
	_ cryptoalg.Encryption = (*RC4State)(nil)
	_ cryptoalg.Encryption = (*EncryptionContext)(nil)
)

// EncryptionContext owns exactly one cipher and serialises access to it.
// It is created once, keyed immediately and then shared by pointer between the
// reader and input goroutines. Each method holds the lock for one operation only.
type EncryptionContext struct {
	mu      sync.Mutex
	cipher  cryptoalg.Encryption
	logger  logger.Logger
}

// NewEncryptionContext wraps an already configured cipher.
func NewEncryptionContext(cipher cryptoalg.Encryption, logger logger.Logger) *EncryptionContext {
	return &EncryptionContext{
		cipher:  cipher,
		logger:  logger,
	}
}

// NewEncryptionContextFromType builds the cipher selected by encType and keys it with key.
// AES key sizes follow the key length (16, 24 or 32 bytes); RC4 requires 32 bytes.
func NewEncryptionContextFromType(encType cryptoalg.EncryptionType, key []byte, logger logger.Logger) (*EncryptionContext, error) {
	var (
		cipher cryptoalg.Encryption
		err    error
	)

	switch {
	case encType.IsAES():
		mode, modeErr := encType.Mode()
		if modeErr != nil {
			return nil, modeErr
		}
		keySize, sizeErr := cryptoalg.KeySizeFromLength(len(key))
		if sizeErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKeyLength, sizeErr)
		}
		cipher, err = NewAESContext(mode, keySize, key)
	case encType == cryptoalg.EncryptionTypeRC4:
		cipher, err = NewRC4State(key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncryptionType, encType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s cipher: %w", encType, err)
	}

	logger.Info("Initialized ", encType, " encryption context")
	return NewEncryptionContext(cipher, logger), nil
}

// Initialize recomputes the key-derived state of the wrapped cipher.
func (e *EncryptionContext) Initialize() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cipher.Initialize()
}

// Encrypt enciphers one message.
func (e *EncryptionContext) Encrypt(plaintext []byte) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ciphertext, err := e.cipher.Encrypt(plaintext)
	if err != nil {
		return nil, fmt.Errorf("encryption failed: %w", err)
	}
	return ciphertext, nil
}

// Decrypt deciphers one received frame.
func (e *EncryptionContext) Decrypt(ciphertext []byte) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	plaintext, err := e.cipher.Decrypt(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// SetKey rekeys the wrapped cipher. A rejected key leaves the previous one in place.
func (e *EncryptionContext) SetKey(key []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.cipher.SetKey(key); err != nil {
		e.logger.Warn("Key rejected: ", err)
		return fmt.Errorf("failed to set key: %w", err)
	}
	e.logger.Debug("Key updated")
	return nil
}

// String never prints key material.
func (e *EncryptionContext) String() string {
	return fmt.Sprintf("EncryptionContext{cipher: %T}", e.cipher)
}
