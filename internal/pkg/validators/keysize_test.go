//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyHolder struct {
	EncryptionType string
	Key            string `validate:"keylength"`
}

func TestKeyLengthValidation(t *testing.T) {
	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("keylength", KeyLengthValidation))

	tests := []struct {
		encryptionType string
		keyLength      int
		valid          bool
	}{
		{"AesCbc", 16, true},
		{"AesCtr", 24, true},
		{"AesEcb", 32, true},
		{"AesCbc", 15, false},
		{"AesCtr", 33, false},
		{"Rc4", 32, true},
		{"Rc4", 16, false},
		{"Rc4", 24, false},
		{"Unknown", 16, false},
	}

	for _, tt := range tests {
		holder := keyHolder{
			EncryptionType: tt.encryptionType,
			Key:            string(make([]byte, tt.keyLength)),
		}

		err := validate.Struct(holder)
		if tt.valid {
			assert.NoError(t, err, "%s with %d byte key", tt.encryptionType, tt.keyLength)
		} else {
			assert.Error(t, err, "%s with %d byte key", tt.encryptionType, tt.keyLength)
		}
	}
}
