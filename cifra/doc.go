// Package cifra ties together the cifra building blocks: hex/Base64 codecs,
// AES-CBC and AES-CTR, and a finite-field Diffie-Hellman computation.
//
// Toolkit exposes the operations at the hex-string level used on the wire,
// and KindOf classifies any returned error as a format, crypto or domain failure.
package cifra
