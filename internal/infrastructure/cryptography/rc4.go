package cryptography

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/justmedusty/Kryptos-Client/internal/domain/cryptoalg"
)

const rc4TableSize = cryptoalg.RC4KeyLength

// RC4State is an RC4 stream cipher whose permutation table is sized to the key (32 entries)
// instead of the canonical 256.
//
// The key schedule is re-run at the start of every keystream generation, so every
// Encrypt and Decrypt call starts from the same permutation and messages sent under one
// key share a keystream. The Kryptos server expects exactly this behaviour; do not use it
// where confidentiality matters.
type RC4State struct {
	s    [rc4TableSize]byte
	i, j int
	key  [cryptoalg.RC4KeyLength]byte
}

// NewRC4State creates an RC4 cipher. A nil key is replaced by a random one;
// otherwise the key must be exactly 32 bytes.
func NewRC4State(key []byte) (*RC4State, error) {
	r := &RC4State{}
	if key == nil {
		if err := r.GenerateKey(); err != nil {
			return nil, err
		}
	} else if err := r.SetKey(key); err != nil {
		return nil, err
	}
	r.Initialize()
	return r, nil
}

// GenerateKey replaces the key with 32 random bytes.
func (r *RC4State) GenerateKey() error {
	var key [cryptoalg.RC4KeyLength]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return fmt.Errorf("failed to generate RC4 key: %w", err)
	}
	r.key = key
	return nil
}

// Initialize runs the key schedule over the current key.
func (r *RC4State) Initialize() {
	r.keyScheduling()
}

// SetKey stores a new key. Keys that are not exactly 32 bytes are rejected and
// the previous key stays in place.
func (r *RC4State) SetKey(key []byte) error {
	if len(key) != cryptoalg.RC4KeyLength {
		return fmt.Errorf("%w: RC4 expects %d bytes, got %d", ErrInvalidKeyLength, cryptoalg.RC4KeyLength, len(key))
	}
	copy(r.key[:], key)
	return nil
}

// Encrypt XORs plaintext with a freshly scheduled keystream. The output has the input length.
func (r *RC4State) Encrypt(plaintext []byte) ([]byte, error) {
	out := make([]byte, len(plaintext))
	if err := r.EncryptTo(out, plaintext); err != nil {
		return nil, err
	}
	return out, nil
}

// Decrypt is identical to Encrypt.
func (r *RC4State) Decrypt(ciphertext []byte) ([]byte, error) {
	return r.Encrypt(ciphertext)
}

// EncryptTo writes src XOR keystream into dst. If dst is shorter than src
// nothing is written and ErrShortBuffer is returned.
func (r *RC4State) EncryptTo(dst, src []byte) error {
	if len(dst) < len(src) {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, len(src), len(dst))
	}

	keystream := make([]byte, len(src))
	r.prga(keystream)
	for n := range src {
		dst[n] = src[n] ^ keystream[n]
	}
	return nil
}

func (r *RC4State) keyScheduling() {
	for i := range r.s {
		r.s[i] = byte(i)
	}

	j := 0
	for i := 0; i < rc4TableSize; i++ {
		j = (j + int(r.s[i]) + int(r.key[i%len(r.key)])) % rc4TableSize
		r.s[i], r.s[j] = r.s[j], r.s[i]
	}

	r.i = 0
	r.j = 0
}

// prga fills out with keystream bytes, starting from a freshly scheduled table.
func (r *RC4State) prga(out []byte) {
	r.keyScheduling()
	for n := range out {
		r.i = (r.i + 1) % rc4TableSize
		r.j = (r.j + int(r.s[r.i])) % rc4TableSize
		r.s[r.i], r.s[r.j] = r.s[r.j], r.s[r.i]
		out[n] = r.s[(int(r.s[r.i])+int(r.s[r.j]))%rc4TableSize]
	}
}
