package cryptography

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/justmedusty/Kryptos-Client/internal/domain/cryptoalg"
)

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateKey returns a random printable key that can be passed on the command line.
// AES keys are keySize/8 characters long; RC4 keys are always 32 characters.
func GenerateKey(encType cryptoalg.EncryptionType, keySize cryptoalg.KeySize) (string, error) {
	var length int
	switch {
	case encType.IsAES():
		if !keySize.Valid() {
			return "", fmt.Errorf("%w: %d", ErrUnsupportedKeySize, keySize)
		}
		length = keySize.Bytes()
	case encType == cryptoalg.EncryptionTypeRC4:
		length = cryptoalg.RC4KeyLength
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncryptionType, encType)
	}

	key := make([]byte, length)
	limit := big.NewInt(int64(len(keyAlphabet)))
	for i := range key {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate key: %w", err)
		}
		key[i] = keyAlphabet[n.Int64()]
	}
	return string(key), nil
}
