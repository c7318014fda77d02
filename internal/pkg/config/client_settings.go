package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/justmedusty/Kryptos-Client/internal/pkg/validators"
)

// Client defaults, matching the polling behaviour of the Kryptos client
const (
	DefaultPollInterval   = 25 * time.Millisecond
	DefaultReadWindow     = 5 * time.Millisecond
	DefaultReadBufferSize = 1024
)

// ClientSettings holds everything needed to open an encrypted chat session
type ClientSettings struct {
	Host           string        `mapstructure:"host" validate:"required,ip|hostname_rfc1123"`
	Port           int           `mapstructure:"port" validate:"required,min=1024,max=65535"`
	EncryptionType string        `mapstructure:"encryption_type" validate:"required,oneof=AesCbc AesCtr AesEcb Rc4"`
	Key            string        `mapstructure:"key" validate:"required,keylength"`
	PollInterval   time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
	ReadWindow     time.Duration `mapstructure:"read_window" validate:"gt=0"`
	ReadBufferSize int           `mapstructure:"read_buffer_size" validate:"min=16,max=65536"`
}

// NewClientSettings returns settings with the default polling parameters
func NewClientSettings(host string, port int, encryptionType, key string) *ClientSettings {
	return &ClientSettings{
		Host:           host,
		Port:           port,
		EncryptionType: encryptionType,
		Key:            key,
		PollInterval:   DefaultPollInterval,
		ReadWindow:     DefaultReadWindow,
		ReadBufferSize: DefaultReadBufferSize,
	}
}

// Validate checks that all fields in ClientSettings are valid
func (s *ClientSettings) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("keylength", validators.KeyLengthValidation); err != nil {
		return fmt.Errorf("failed to register keylength validation: %w", err)
	}

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed for ClientSettings: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// Address returns host:port in the form net.Dial expects
func (s *ClientSettings) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
