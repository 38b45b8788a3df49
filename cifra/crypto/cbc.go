package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"unicode/utf8"
)

var (
	ErrInvalidKeySize   = errors.New("crypto: invalid AES key size")
	ErrInvalidIVSize    = errors.New("crypto: IV must be 16 bytes")
	ErrDecryptionFailed = errors.New("crypto: decryption failed")
)

// BlockSize is the AES block size and the length of every IV.
const BlockSize = aes.BlockSize

// NewIV returns a fresh random 16-byte IV.
func NewIV() ([]byte, error) {
	iv := make([]byte, BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

func newBlock(key []byte) (cipher.Block, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrInvalidKeySize
	}
	return block, nil
}

// resolveIV returns a copy of iv, or a random IV when iv is nil.
func resolveIV(iv []byte) ([]byte, error) {
	if iv == nil {
		return NewIV()
	}
	if len(iv) != BlockSize {
		return nil, ErrInvalidIVSize
	}
	out := make([]byte, BlockSize)
	copy(out, iv)
	return out, nil
}

// DecryptCBC decrypts AES-CBC ciphertext, removes PKCS#7 padding and returns
// the plaintext as UTF-8 text.
//
// Every failure returns ErrDecryptionFailed. Callers must not try to tell a
// wrong key from bad padding; doing so turns this function into a padding oracle.
func DecryptCBC(key, ciphertext, iv []byte) (string, error) {
	block, err := newBlock(key)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if len(iv) != BlockSize || len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return "", ErrDecryptionFailed
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plain, err := Unpad(padded, BlockSize)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if !utf8.Valid(plain) {
		return "", ErrDecryptionFailed
	}
	return string(plain), nil
}

// EncryptCBC pads plaintext with PKCS#7 and encrypts it with AES-CBC.
// A random IV is generated when iv is nil. Returns: (iv used, ciphertext)
func EncryptCBC(key []byte, plaintext string, iv []byte) ([]byte, []byte, error) {
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
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return iv, ciphertext, nil
}
