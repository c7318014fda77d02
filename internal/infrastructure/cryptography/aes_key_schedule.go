package cryptography

import "github.com/justmedusty/Kryptos-Client/internal/domain/cryptoalg"

const (
	// BlockSize is the AES block length in bytes
	BlockSize = 16

	maxKeyLength     = 32
	maxRoundKeyBytes = 240
)

// expandKey writes the round key schedule of key into roundKeys.
// Exactly 16*(rounds+1) bytes are produced, the rest of the array is zeroed.
func expandKey(key []byte, size cryptoalg.KeySize, roundKeys *[maxRoundKeyBytes]byte) {
	nk := size.Words()
	nr := size.Rounds()

	*roundKeys = [maxRoundKeyBytes]byte{}
	copy(roundKeys[:nk*4], key[:nk*4])

	var word [4]byte
	for i := nk; i < 4*(nr+1); i++ {
		copy(word[:], roundKeys[(i-1)*4:i*4])

		switch {
		case i%nk == 0:
			// RotWord, SubWord, Rcon
			word[0], word[1], word[2], word[3] = sbox[word[1]]^rcon[i/nk], sbox[word[2]], sbox[word[3]], sbox[word[0]]
		case nk > 6 && i%nk == 4:
			word[0], word[1], word[2], word[3] = sbox[word[0]], sbox[word[1]], sbox[word[2]], sbox[word[3]]
		}

		prev := (i - nk) * 4
		for b := 0; b < 4; b++ {
			roundKeys[i*4+b] = roundKeys[prev+b] ^ word[b]
		}
	}
}
