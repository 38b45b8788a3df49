// Package codec converts key material and ciphertext between the textual
// wire formats used by cifra (hexadecimal and standard Base64) and raw bytes.
//
// All functions are pure. Malformed input fails with an error wrapping ErrFormat.
package codec
