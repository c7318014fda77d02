//go:build unit
// +build unit

package app

import (
	"github.com/stretchr/testify/mock"
)

// MockEncryption is a mock implementation of cryptoalg.Encryption
type MockEncryption struct {
	mock.Mock
}

func (m *MockEncryption) Initialize() {
	m.Called()
}

func (m *MockEncryption) Encrypt(plaintext []byte) ([]byte, error) {
	args := m.Called(plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEncryption) Decrypt(ciphertext []byte) ([]byte, error) {
	args := m.Called(ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEncryption) SetKey(key []byte) error {
	args := m.Called(key)
	return args.Error(0)
}
