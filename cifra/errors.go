package cifra

import (
	"errors"

	"github.com/lucasspawn/cifra/cifra/codec"
	"github.com/lucasspawn/cifra/cifra/crypto"
	"github.com/lucasspawn/cifra/cifra/crypto/dh"
)

// Kind classifies errors returned by cifra packages.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindFormat       // malformed hex or Base64
	KindCrypto       // key/IV size, padding or decryption failure
	KindDomain       // Diffie-Hellman parameters out of range
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "FORMAT"
	case KindCrypto:
		return "CRYPTO"
	case KindDomain:
		return "DOMAIN"
	default:
		return "UNKNOWN"
	}
}

// KindOf reports which kind of failure err represents.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, codec.ErrFormat):
		return KindFormat
	case errors.Is(err, crypto.ErrDecryptionFailed),
		errors.Is(err, crypto.ErrInvalidKeySize),
		errors.Is(err, crypto.ErrInvalidIVSize),
		errors.Is(err, crypto.ErrInvalidPadding):
		return KindCrypto
	case errors.Is(err, dh.ErrDomain):
		return KindDomain
	default:
		return KindUnknown
	}
}
