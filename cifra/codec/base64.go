package codec

import (
	"encoding/base64"
	"fmt"
)

// HexToBase64 re-encodes a hex string as padded standard Base64.
func HexToBase64(s string) (string, error) {
	b, err := HexToBytes(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Base64ToHex re-encodes padded standard Base64 as lowercase hex.
func Base64ToHex(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return BytesToHex(b), nil
}
