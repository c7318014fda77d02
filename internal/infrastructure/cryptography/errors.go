package cryptography

import "errors"

var (
	// ErrInvalidKeyLength is returned when a key does not match the length the cipher requires.
	ErrInvalidKeyLength = errors.New("cryptography: invalid key length")

	// ErrShortBuffer is returned when an output buffer cannot hold the result.
	ErrShortBuffer = errors.New("cryptography: output buffer too short")

	// ErrCiphertextTooShort is returned when a CBC or CTR frame is missing its 16 byte prefix.
	ErrCiphertextTooShort = errors.New("cryptography: ciphertext shorter than the IV prefix")

	// ErrCiphertextNotAligned is returned when an ECB or CBC payload is not a whole number of blocks.
	ErrCiphertextNotAligned = errors.New("cryptography: ciphertext is not a multiple of the block size")

	// ErrUnsupportedMode is returned for an AES mode outside ECB, CBC and CTR.
	ErrUnsupportedMode = errors.New("cryptography: unsupported AES mode")

	// ErrUnsupportedKeySize is returned for an AES key size outside 128, 192 and 256 bits.
	ErrUnsupportedKeySize = errors.New("cryptography: unsupported AES key size")

	// ErrUnsupportedEncryptionType is returned for an unknown encryption type token.
	ErrUnsupportedEncryptionType = errors.New("cryptography: unsupported encryption type")
)
