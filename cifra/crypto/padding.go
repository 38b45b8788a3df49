package crypto

import (
	"crypto/subtle"
	"errors"
)

var ErrInvalidPadding = errors.New("crypto: invalid padding")

// Pad appends PKCS#7 padding up to the next multiple of blockSize.
// A full block of padding is added when b is already aligned.
func Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	out := make([]byte, len(b)+n)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// Unpad verifies and strips PKCS#7 padding. Every padding byte is examined
// regardless of where the first mismatch occurs.
func Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}
	n := int(b[len(b)-1])
	good := subtle.ConstantTimeLessOrEq(1, n) & subtle.ConstantTimeLessOrEq(n, blockSize)

	tail := b[len(b)-blockSize:]
	for i := 0; i < blockSize; i++ {
		// only the last n bytes are padding
		inPad := subtle.ConstantTimeLessOrEq(blockSize-i, n)
		eq := subtle.ConstantTimeByteEq(tail[i], byte(n))
		good &= eq | (inPad ^ 1)
	}
	if good != 1 {
		return nil, ErrInvalidPadding
	}
	return b[:len(b)-n], nil
}
