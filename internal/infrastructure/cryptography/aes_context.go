package cryptography

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/justmedusty/Kryptos-Client/internal/domain/cryptoalg"
)

// AESContext is one configured AES cipher: mode, key size, key, expanded schedule and IV.
// The round keys are re-expanded on every key change, so they always match the key.
// An AESContext is not safe for concurrent use; share it through an EncryptionContext.
type AESContext struct {
	mode      cryptoalg.Mode
	keySize   cryptoalg.KeySize
	key       [maxKeyLength]byte
	roundKeys [maxRoundKeyBytes]byte
	iv        [BlockSize]byte

	random io.Reader
}

// NewAESContext creates an AES cipher for the given mode and key size.
// A nil key is replaced by a random one; otherwise the key must be exactly keySize/8 bytes.
func NewAESContext(mode cryptoalg.Mode, keySize cryptoalg.KeySize, key []byte) (*AESContext, error) {
	if mode != cryptoalg.ModeECB && mode != cryptoalg.ModeCBC && mode != cryptoalg.ModeCTR {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)
	}
	if !keySize.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKeySize, keySize)
	}

	c := &AESContext{
		mode:    mode,
		keySize: keySize,
		random:  rand.Reader,
	}

	if key == nil {
		if _, err := io.ReadFull(c.random, c.key[:]); err != nil {
			return nil, fmt.Errorf("failed to generate AES key: %w", err)
		}
	} else {
		if len(key) != keySize.Bytes() {
			return nil, fmt.Errorf("%w: AES-%d expects %d bytes, got %d", ErrInvalidKeyLength, keySize, keySize.Bytes(), len(key))
		}
		copy(c.key[:], key)
	}

	if err := c.generateIV(); err != nil {
		return nil, err
	}
	c.Initialize()

	return c, nil
}

// Mode returns the mode of operation.
func (c *AESContext) Mode() cryptoalg.Mode {
	return c.mode
}

// KeySize returns the key size in bits.
func (c *AESContext) KeySize() cryptoalg.KeySize {
	return c.keySize
}

// Rounds returns the number of cipher rounds for the configured key size.
func (c *AESContext) Rounds() int {
	return c.keySize.Rounds()
}

// RoundKey returns a copy of the 16 byte round key for round 0..Rounds().
func (c *AESContext) RoundKey(round int) ([]byte, error) {
	if round < 0 || round > c.Rounds() {
		return nil, fmt.Errorf("round %d out of range 0..%d", round, c.Rounds())
	}
	rk := make([]byte, BlockSize)
	copy(rk, c.roundKeys[round*BlockSize:(round+1)*BlockSize])
	return rk, nil
}

// IV returns the IV last generated or consumed by the context.
func (c *AESContext) IV() [BlockSize]byte {
	return c.iv
}

// Initialize expands the current key into the round key schedule.
func (c *AESContext) Initialize() {
	expandKey(c.key[:], c.keySize, &c.roundKeys)
}

// SetKey replaces the key and re-expands the schedule.
// Keys whose length does not match the configured key size are rejected.
func (c *AESContext) SetKey(key []byte) error {
	if len(key) != c.keySize.Bytes() {
		return fmt.Errorf("%w: AES-%d expects %d bytes, got %d", ErrInvalidKeyLength, c.keySize, c.keySize.Bytes(), len(key))
	}
	c.key = [maxKeyLength]byte{}
	copy(c.key[:], key)
	c.Initialize()
	return nil
}

// Encrypt enciphers plaintext in the configured mode.
// ECB and CBC zero-pad the input to a whole number of blocks; CTR never pads.
// CBC and CTR output is prefixed with the freshly generated 16 byte IV or counter seed.
func (c *AESContext) Encrypt(plaintext []byte) ([]byte, error) {
	switch c.mode {
	case cryptoalg.ModeECB:
		return c.ecbEncrypt(zeroPad(plaintext)), nil
	case cryptoalg.ModeCBC:
		return c.cbcEncrypt(zeroPad(plaintext))
	case cryptoalg.ModeCTR:
		return c.ctrEncrypt(plaintext)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, c.mode)
	}
}

// Decrypt reverses Encrypt. Zero padding added on encryption is not removed.
func (c *AESContext) Decrypt(ciphertext []byte) ([]byte, error) {
	switch c.mode {
	case cryptoalg.ModeECB:
		return c.ecbDecrypt(ciphertext)
	case cryptoalg.ModeCBC:
		return c.cbcDecrypt(ciphertext)
	case cryptoalg.ModeCTR:
		return c.ctrDecrypt(ciphertext)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, c.mode)
	}
}

func (c *AESContext) generateIV() error {
	if _, err := io.ReadFull(c.random, c.iv[:]); err != nil {
		return fmt.Errorf("failed to generate initialization vector: %w", err)
	}
	return nil
}
