package cryptography

import "fmt"

// zeroPad returns a copy of data extended with zeros to the next block boundary.
// Aligned input, including empty input, is copied unchanged.
func zeroPad(data []byte) []byte {
	n := len(data)
	if rem := n % BlockSize; rem != 0 {
		n += BlockSize - rem
	}
	padded := make([]byte, n)
	copy(padded, data)
	return padded
}

func xorBlock(dst, a, b []byte) {
	for i := 0; i < BlockSize; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

// incrementCounter adds one to a 128-bit big-endian counter, wrapping at 2^128.
func incrementCounter(counter *[BlockSize]byte) {
	for i := BlockSize - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			return
		}
	}
}

func (c *AESContext) ecbEncrypt(plaintext []byte) []byte {
	out := make([]byte, len(plaintext))
	for off := 0; off < len(plaintext); off += BlockSize {
		c.encryptBlock(out[off:off+BlockSize], plaintext[off:off+BlockSize])
	}
	return out
}

func (c *AESContext) ecbDecrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCiphertextNotAligned, len(ciphertext))
	}
	out := make([]byte, len(ciphertext))
	for off := 0; off < len(ciphertext); off += BlockSize {
		c.decryptBlock(out[off:off+BlockSize], ciphertext[off:off+BlockSize])
	}
	return out, nil
}

// cbcEncrypt expects block aligned input and returns IV || ciphertext.
func (c *AESContext) cbcEncrypt(plaintext []byte) ([]byte, error) {
	if err := c.generateIV(); err != nil {
		return nil, err
	}

	out := make([]byte, BlockSize+len(plaintext))
	copy(out, c.iv[:])

	var block [BlockSize]byte
	prev := out[:BlockSize]
	for off := 0; off < len(plaintext); off += BlockSize {
		xorBlock(block[:], plaintext[off:off+BlockSize], prev)
		dst := out[BlockSize+off : BlockSize+off+BlockSize]
		c.encryptBlock(dst, block[:])
		prev = dst
	}
	return out, nil
}

func (c *AESContext) cbcDecrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrCiphertextTooShort, len(ciphertext))
	}
	payload := ciphertext[BlockSize:]
	if len(payload)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCiphertextNotAligned, len(payload))
	}

	var iv [BlockSize]byte
	copy(iv[:], ciphertext[:BlockSize])

	out := make([]byte, len(payload))
	var block [BlockSize]byte
	for off := 0; off < len(payload); off += BlockSize {
		current := payload[off : off+BlockSize]
		c.decryptBlock(block[:], current)
		xorBlock(out[off:off+BlockSize], block[:], iv[:])
		copy(iv[:], current)
	}

	// only bookkeeping, the next encryption draws a fresh IV
	c.iv = iv
	return out, nil
}

// ctrEncrypt returns seed || (plaintext XOR keystream); the output payload has the input length.
func (c *AESContext) ctrEncrypt(plaintext []byte) ([]byte, error) {
	if err := c.generateIV(); err != nil {
		return nil, err
	}

	out := make([]byte, BlockSize+len(plaintext))
	copy(out, c.iv[:])
	c.ctrXOR(out[BlockSize:], plaintext, c.iv)
	return out, nil
}

func (c *AESContext) ctrDecrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrCiphertextTooShort, len(ciphertext))
	}

	var seed [BlockSize]byte
	copy(seed[:], ciphertext[:BlockSize])

	out := make([]byte, len(ciphertext)-BlockSize)
	c.ctrXOR(out, ciphertext[BlockSize:], seed)
	return out, nil
}

// ctrXOR enciphers the counter once per 16 bytes of src, incrementing it after each block,
// and XORs the keystream into dst byte by byte.
func (c *AESContext) ctrXOR(dst, src []byte, seed [BlockSize]byte) {
	counter := seed
	var keystream [BlockSize]byte
	used := BlockSize

	for i := range src {
		if used == BlockSize {
			c.encryptBlock(keystream[:], counter[:])
			incrementCounter(&counter)
			used = 0
		}
		dst[i] = src[i] ^ keystream[used]
		used++
	}
}
