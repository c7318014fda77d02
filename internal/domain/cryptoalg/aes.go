package cryptoalg

// Encryption is the capability every cipher of the chat client provides.
// The client driver is written once against this interface and never needs to know
// whether AES or RC4 is active.
type Encryption interface {
	// Initialize derives the initial internal state from the current key
	// (AES: key expansion, RC4: key scheduling).
	Initialize()

	// Encrypt transforms plaintext into the wire representation of the cipher.
	// The input slice is never modified.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt transforms a wire frame produced by Encrypt back into plaintext.
	Decrypt(ciphertext []byte) ([]byte, error)

	// SetKey replaces the key and recomputes every piece of key-derived state.
	// A rejected key leaves the existing key untouched.
	SetKey(key []byte) error
}
