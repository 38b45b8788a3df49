package crypto

import (
	"crypto/cipher"
	"encoding/binary"
	"unicode/utf8"
)

// NonceSize is the number of high-order IV bytes held fixed in CTR mode.
// The remaining low-order bytes form a big-endian 64-bit block counter.
const NonceSize = 8

// counterStream is a CTR keystream over nonce || counter where only the
// 64-bit counter advances; it never carries into the nonce. cipher.NewCTR
// increments all 128 bits.
type counterStream struct {
	block   cipher.Block
	input   [BlockSize]byte
	counter uint64
	pad     [BlockSize]byte
	used    int
}

func newCounterStream(block cipher.Block, iv []byte) *counterStream {
	s := &counterStream{block: block, used: BlockSize}
	copy(s.input[:NonceSize], iv[:NonceSize])
	s.counter = binary.BigEndian.Uint64(iv[NonceSize:])
	return s
}

func (s *counterStream) refill() {
	binary.BigEndian.PutUint64(s.input[NonceSize:], s.counter)
	s.block.Encrypt(s.pad[:], s.input[:])
	s.counter++ // wraps modulo 2^64
	s.used = 0
}

// XORKeyStream implements cipher.Stream.
func (s *counterStream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("crypto: output smaller than input")
	}
	for i, b := range src {
		if s.used == BlockSize {
			s.refill()
		}
		dst[i] = b ^ s.pad[s.used]
		s.used++
	}
}

// EncryptCTR pads plaintext with PKCS#7 and encrypts it in counter mode.
// The IV is split into an 8-byte nonce and an 8-byte initial counter.
// A random IV is generated when iv is nil. Returns: (iv used, ciphertext)
//
// Padding is applied even though CTR needs no block alignment; DecryptCTR
// expects it.
func EncryptCTR(key []byte, plaintext string, iv []byte) ([]byte, []byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, nil, err
	}
	iv, err = resolveIV(iv)
	if err != nil {
		return nil, nil, err
	}

	padded := Pad([]byte(plaintext), BlockSize)
	ciphertext := make([]byte, len(padded))
	newCounterStream(block, iv).XORKeyStream(ciphertext, padded)
	return iv, ciphertext, nil
}

// DecryptCTR reverses EncryptCTR. Like DecryptCBC it reports every failure
// as ErrDecryptionFailed.
func DecryptCTR(key, ciphertext, iv []byte) (string, error) {
	block, err := newBlock(key)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if len(iv) != BlockSize {
		return "", ErrDecryptionFailed
	}

	padded := make([]byte, len(ciphertext))
	newCounterStream(block, iv).XORKeyStream(padded, ciphertext)

	plain, err := Unpad(padded, BlockSize)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if !utf8.Valid(plain) {
		return "", ErrDecryptionFailed
	}
	return string(plain), nil
}
