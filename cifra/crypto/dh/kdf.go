package dh

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"
)

// DerivedKeyHexLen is the length of DeriveKey's output: 128 bits in hex.
const DerivedKeyHexLen = 32

// DeriveKey hashes the decimal form of v with SHA-256 and returns the first
// 128 bits of the digest as lowercase hex.
func DeriveKey(v *big.Int) string {
	sum := sha256.Sum256([]byte(v.String()))
	return hex.EncodeToString(sum[:])[:DerivedKeyHexLen]
}

// ExpandKey derives size bytes from the decimal form of v using HKDF-SHA256.
// info binds the output to its use; different labels give independent keys.
func ExpandKey(v *big.Int, info string, size int) ([]byte, error) {
	if v == nil || size <= 0 {
		return nil, fmt.Errorf("%w: invalid expansion request", ErrDomain)
	}
	hk := hkdf.New(sha256.New, []byte(v.String()), nil, []byte(info))
	key := make([]byte, size)
	if _, err := io.ReadFull(hk, key); err != nil {
		return nil, err
	}
	return key, nil
}
