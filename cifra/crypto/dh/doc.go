// Package dh implements a finite-field Diffie-Hellman computation over
// caller-supplied domain parameters.
//
// The shared secret v = A^b mod p is turned into a 128-bit key by hashing
// its decimal representation with SHA-256 and keeping the first 32 hex digits.
package dh
