// Package crypto implements the AES block-cipher operations used by cifra.
//
// Design goals:
//   - CBC decryption with PKCS#7 removal that reports a single, uniform failure
//   - CTR encryption over an explicit 8-byte nonce and 8-byte big-endian counter
//   - Randomness for IVs only from crypto/rand
//   - No state retained between calls; every function is safe for concurrent use
//
// Key exchange lives in the dh subpackage.
package crypto
