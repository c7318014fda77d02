package validators

import (
	"github.com/go-playground/validator/v10"

	"github.com/justmedusty/Kryptos-Client/internal/domain/cryptoalg"
)

// KeyLengthValidation validates the length in bytes of a key string based on the sibling
// EncryptionType field: AES accepts 16, 24 or 32 bytes, RC4 exactly 32.
func KeyLengthValidation(fl validator.FieldLevel) bool {
	encryptionType := cryptoalg.EncryptionType(fl.Parent().FieldByName("EncryptionType").String())
	keyLength := len(fl.Field().String())

	switch {
	case encryptionType.IsAES():
		_, err := cryptoalg.KeySizeFromLength(keyLength)
		return err == nil
	case encryptionType == cryptoalg.EncryptionTypeRC4:
		return keyLength == cryptoalg.RC4KeyLength
	default:
		return false
	}
}
