package cryptography

// aesState holds one block as state[column][row], loaded column by column.
type aesState [4][4]byte

func loadState(block []byte) aesState {
	var s aesState
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			s[c][r] = block[c*4+r]
		}
	}
	return s
}

func (s *aesState) store(block []byte) {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			block[c*4+r] = s[c][r]
		}
	}
}

func (s *aesState) subBytes() {
	for c := range s {
		for r := range s[c] {
			s[c][r] = sbox[s[c][r]]
		}
	}
}

func (s *aesState) invSubBytes() {
	for c := range s {
		for r := range s[c] {
			s[c][r] = invSbox[s[c][r]]
		}
	}
}

// shiftRows rotates row r left by r columns.
func (s *aesState) shiftRows() {
	old := *s
	for c := 0; c < 4; c++ {
		for r := 1; r < 4; r++ {
			s[c][r] = old[(c+r)%4][r]
		}
	}
}

func (s *aesState) invShiftRows() {
	old := *s
	for c := 0; c < 4; c++ {
		for r := 1; r < 4; r++ {
			s[c][r] = old[(c-r+4)%4][r]
		}
	}
}

func (s *aesState) mixColumns() {
	for c := range s {
		a0, a1, a2, a3 := s[c][0], s[c][1], s[c][2], s[c][3]
		s[c][0] = multiply(a0, 0x02) ^ multiply(a1, 0x03) ^ a2 ^ a3
		s[c][1] = a0 ^ multiply(a1, 0x02) ^ multiply(a2, 0x03) ^ a3
		s[c][2] = a0 ^ a1 ^ multiply(a2, 0x02) ^ multiply(a3, 0x03)
		s[c][3] = multiply(a0, 0x03) ^ a1 ^ a2 ^ multiply(a3, 0x02)
	}
}

func (s *aesState) invMixColumns() {
	for c := range s {
		a0, a1, a2, a3 := s[c][0], s[c][1], s[c][2], s[c][3]
		s[c][0] = multiply(a0, 0x0e) ^ multiply(a1, 0x0b) ^ multiply(a2, 0x0d) ^ multiply(a3, 0x09)
		s[c][1] = multiply(a0, 0x09) ^ multiply(a1, 0x0e) ^ multiply(a2, 0x0b) ^ multiply(a3, 0x0d)
		s[c][2] = multiply(a0, 0x0d) ^ multiply(a1, 0x09) ^ multiply(a2, 0x0e) ^ multiply(a3, 0x0b)
		s[c][3] = multiply(a0, 0x0b) ^ multiply(a1, 0x0d) ^ multiply(a2, 0x09) ^ multiply(a3, 0x0e)
	}
}

func (s *aesState) addRoundKey(roundKeys []byte, round int) {
	offset := round * BlockSize
	for c := range s {
		for r := range s[c] {
			s[c][r] ^= roundKeys[offset+c*4+r]
		}
	}
}

// encryptBlock runs the forward cipher over exactly one block.
// dst and src may overlap entirely.
func (c *AESContext) encryptBlock(dst, src []byte) {
	rounds := c.keySize.Rounds()
	rk := c.roundKeys[:]

	s := loadState(src)
	s.addRoundKey(rk, 0)
	for round := 1; round < rounds; round++ {
		s.subBytes()
		s.shiftRows()
		s.mixColumns()
		s.addRoundKey(rk, round)
	}
	s.subBytes()
	s.shiftRows()
	s.addRoundKey(rk, rounds)
	s.store(dst)
}

// decryptBlock runs the inverse cipher over exactly one block.
func (c *AESContext) decryptBlock(dst, src []byte) {
	rounds := c.keySize.Rounds()
	rk := c.roundKeys[:]

	s := loadState(src)
	s.addRoundKey(rk, rounds)
	for round := rounds - 1; round >= 1; round-- {
		s.invShiftRows()
		s.invSubBytes()
		s.addRoundKey(rk, round)
		s.invMixColumns()
	}
	s.invShiftRows()
	s.invSubBytes()
	s.addRoundKey(rk, 0)
	s.store(dst)
}
