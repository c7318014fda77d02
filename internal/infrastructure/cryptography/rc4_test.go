//go:build unit
// +build unit

package cryptography

import (
	"encoding/hex"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRC4Key = "0123456789ABCDEF0123456789ABCDEF"

func TestRC4_KeySchedulingIsPermutation(t *testing.T) {
	r, err := NewRC4State([]byte(testRC4Key))
	require.NoError(t, err)

	table := make([]int, len(r.s))
	for i, v := range r.s {
		table[i] = int(v)
	}
	sort.Ints(table)

	for i := range table {
		assert.Equal(t, i, table[i])
	}
	assert.Equal(t, 0, r.i)
	assert.Equal(t, 0, r.j)
}

func TestRC4_Involution(t *testing.T) {
	r, err := NewRC4State([]byte(testRC4Key))
	require.NoError(t, err)

	plaintext := []byte("hello from the other side of the socket")

	ciphertext, err := r.Encrypt(plaintext)
	require.NoError(t, err)
	assert.Len(t, ciphertext, len(plaintext))
	assert.NotEqual(t, plaintext, ciphertext)

	restored, err := r.Encrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, restored)

	decrypted, err := r.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestRC4_KeystreamRestartsEveryCall(t *testing.T) {
	r, err := NewRC4State([]byte(testRC4Key))
	require.NoError(t, err)

	first, err := r.Encrypt(make([]byte, 64))
	require.NoError(t, err)
	second, err := r.Encrypt(make([]byte, 64))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRC4_DifferentKeysDifferentStreams(t *testing.T) {
	a, err := NewRC4State([]byte(testRC4Key))
	require.NoError(t, err)
	b, err := NewRC4State([]byte("FEDCBA9876543210FEDCBA9876543210"))
	require.NoError(t, err)

	streamA, err := a.Encrypt(make([]byte, 32))
	require.NoError(t, err)
	streamB, err := b.Encrypt(make([]byte, 32))
	require.NoError(t, err)

	assert.NotEqual(t, streamA, streamB)
}

func TestRC4_SetKeyRejectsWrongLength(t *testing.T) {
	r, err := NewRC4State([]byte(testRC4Key))
	require.NoError(t, err)
	before := r.key

	for _, n := range []int{0, 16, 24, 31, 33, 256} {
		err := r.SetKey(make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidKeyLength, "%d byte key", n)
		assert.Equal(t, before, r.key)
	}

	require.NoError(t, r.SetKey([]byte("FEDCBA9876543210FEDCBA9876543210")))
	assert.NotEqual(t, before, r.key)
}

func TestRC4_EncryptToShortBuffer(t *testing.T) {
	r, err := NewRC4State([]byte(testRC4Key))
	require.NoError(t, err)

	dst := []byte{1, 2, 3}
	err = r.EncryptTo(dst, []byte("longer than dst"))
	assert.ErrorIs(t, err, ErrShortBuffer)
	assert.Equal(t, []byte{1, 2, 3}, dst)
}

func TestRC4_RandomKey(t *testing.T) {
	a, err := NewRC4State(nil)
	require.NoError(t, err)
	b, err := NewRC4State(nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.key, b.key)
}

func TestNewRC4State_InvalidKey(t *testing.T) {
	_, err := NewRC4State([]byte("too short"))
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestRC4_Keystream(t *testing.T) {
	sequentialKey := make([]byte, 32)
	for i := range sequentialKey {
		sequentialKey[i] = byte(i)
	}

	tests := []struct {
		name      string
		key       []byte
		keystream string
	}{
		{
			name:      "printable key",
			key:       []byte(testRC4Key),
			keystream: "100615160f12051819170f1d0c171e1916100b1b090501190d1903120102021a0913171f07030805",
		},
		{
			name:      "sequential key",
			key:       sequentialKey,
			keystream: "101217141918051a040e1f0a1e0d02191e1e0f1d1115081b0c1c0613131f17141f171418141f1e16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, err := hex.DecodeString(tt.keystream)
			require.NoError(t, err)

			r, err := NewRC4State(tt.key)
			require.NoError(t, err)

			keystream, err := r.Encrypt(make([]byte, len(expected)))
			require.NoError(t, err)
			assert.Equal(t, expected, keystream)

			ciphertext, err := r.Encrypt([]byte("hi"))
			require.NoError(t, err)
			assert.Equal(t, []byte{'h' ^ expected[0], 'i' ^ expected[1]}, ciphertext)
		})
	}
}
