package codec

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrFormat = errors.New("codec: malformed input")

// HexToBytes decodes a hex string. Both letter cases are accepted.
func HexToBytes(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd hex length %d", ErrFormat, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		var inv hex.InvalidByteError
		if errors.As(err, &inv) {
			return nil, fmt.Errorf("%w: invalid hex character %q", ErrFormat, byte(inv))
		}
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return b, nil
}

// BytesToHex returns the lowercase hex encoding of b.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// NormalizeHex validates s and returns it lowercased.
func NormalizeHex(s string) (string, error) {
	b, err := HexToBytes(s)
	if err != nil {
		return "", err
	}
	return BytesToHex(b), nil
}
