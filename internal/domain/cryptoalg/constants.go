package cryptoalg

import "fmt"

// EncryptionType is one of the literal tokens accepted on the command line.
type EncryptionType string

// EncryptionTypeAESCBC selects AES in cipher block chaining mode
const EncryptionTypeAESCBC EncryptionType = "AesCbc"

// EncryptionTypeAESCTR selects AES in counter mode
const EncryptionTypeAESCTR EncryptionType = "AesCtr"

// EncryptionTypeAESECB selects AES in electronic codebook mode (unsafe)
const EncryptionTypeAESECB EncryptionType = "AesEcb"

// EncryptionTypeRC4 selects the RC4 stream cipher (unsafe)
const EncryptionTypeRC4 EncryptionType = "Rc4"

// EncryptionTypes lists every supported token in the order they are shown in help output.
var EncryptionTypes = []EncryptionType{
	EncryptionTypeAESCBC,
	EncryptionTypeAESCTR,
	EncryptionTypeAESECB,
	EncryptionTypeRC4,
}

// ParseEncryptionType maps a command line token onto an EncryptionType.
func ParseEncryptionType(token string) (EncryptionType, error) {
	for _, t := range EncryptionTypes {
		if string(t) == token {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid encryption type %q", token)
}

// IsAES reports whether the type is backed by the AES engine.
func (t EncryptionType) IsAES() bool {
	return t == EncryptionTypeAESCBC || t == EncryptionTypeAESCTR || t == EncryptionTypeAESECB
}

// Padded reports whether ciphertexts of this type carry zero padding up to the block size.
func (t EncryptionType) Padded() bool {
	return t == EncryptionTypeAESCBC || t == EncryptionTypeAESECB
}

// Mode returns the AES mode of operation for an AES encryption type.
func (t EncryptionType) Mode() (Mode, error) {
	switch t {
	case EncryptionTypeAESCBC:
		return ModeCBC, nil
	case EncryptionTypeAESCTR:
		return ModeCTR, nil
	case EncryptionTypeAESECB:
		return ModeECB, nil
	default:
		return 0, fmt.Errorf("encryption type %q has no AES mode", t)
	}
}

// Mode is an AES mode of operation.
type Mode int

const (
	// ModeECB ciphers every block independently
	ModeECB Mode = iota
	// ModeCBC chains every block to the previous ciphertext block
	ModeCBC
	// ModeCTR turns the block cipher into a stream cipher over a 128-bit counter
	ModeCTR
)

func (m Mode) String() string {
	switch m {
	case ModeECB:
		return "ECB"
	case ModeCBC:
		return "CBC"
	case ModeCTR:
		return "CTR"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// KeySize is an AES key size in bits.
type KeySize int

// KeySize128 is the 128-bit AES key size
const KeySize128 KeySize = 128

// KeySize192 is the 192-bit AES key size
const KeySize192 KeySize = 192

// KeySize256 is the 256-bit AES key size
const KeySize256 KeySize = 256

// RC4KeyLength is the only key length in bytes the RC4 engine accepts
const RC4KeyLength = 32

// KeySizeFromLength maps a raw key length in bytes onto an AES key size.
func KeySizeFromLength(n int) (KeySize, error) {
	switch n * 8 {
	case 128, 192, 256:
		return KeySize(n * 8), nil
	default:
		return 0, fmt.Errorf("valid key sizes are 128, 192, 256 bits, the provided key was %d bits", n*8)
	}
}

// Bytes returns the key length in bytes.
func (k KeySize) Bytes() int {
	return int(k) / 8
}

// Rounds returns the number of AES rounds for the key size (10, 12 or 14).
func (k KeySize) Rounds() int {
	return k.Words() + 6
}

// Words returns Nk, the number of 32-bit words in the key.
func (k KeySize) Words() int {
	return int(k) / 32
}

// Valid reports whether k is one of the three AES key sizes.
func (k KeySize) Valid() bool {
	return k == KeySize128 || k == KeySize192 || k == KeySize256
}
