package cryptography

// xtime multiplies x by 2 in GF(2^8), reducing modulo x^8 + x^4 + x^3 + x + 1.
func xtime(x byte) byte {
	return x<<1 ^ (x>>7&1)*0x1b
}

// multiply computes x*y in GF(2^8) for y with at most five significant bits,
// which covers every MixColumns and InvMixColumns constant.
func multiply(x, y byte) byte {
	x2 := xtime(x)
	x4 := xtime(x2)
	x8 := xtime(x4)
	x16 := xtime(x8)

	return (y&1)*x ^
		(y>>1&1)*x2 ^
		(y>>2&1)*x4 ^
		(y>>3&1)*x8 ^
		(y>>4&1)*x16
}
