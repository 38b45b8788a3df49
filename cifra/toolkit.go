package cifra

import (
	"fmt"
	"math/big"

	"github.com/lucasspawn/cifra/cifra/codec"
	"github.com/lucasspawn/cifra/cifra/crypto"
	"github.com/lucasspawn/cifra/cifra/crypto/dh"
)

// Toolkit runs cifra operations on hex-encoded inputs against one fixed
// Diffie-Hellman parameter set. It holds no mutable state.
type Toolkit struct {
	params dh.Params
}

// New validates params and returns a Toolkit bound to them.
func New(params dh.Params) (*Toolkit, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Toolkit{params: params}, nil
}

// Params returns the Diffie-Hellman parameters in use.
func (t *Toolkit) Params() dh.Params { return t.params }

// DecryptCBCHex decodes the three hex inputs and decrypts with AES-CBC.
// Malformed hex fails with codec.ErrFormat; everything else with crypto.ErrDecryptionFailed.
func (t *Toolkit) DecryptCBCHex(keyHex, ciphertextHex, ivHex string) (string, error) {
	key, ct, iv, err := decodeTriple(keyHex, ciphertextHex, ivHex)
	if err != nil {
		return "", err
	}
	return crypto.DecryptCBC(key, ct, iv)
}

// EncryptCBCHex encrypts plaintext with AES-CBC. An empty ivHex selects a random IV.
// Returns: (iv hex, ciphertext hex)
func (t *Toolkit) EncryptCBCHex(keyHex, plaintext, ivHex string) (string, string, error) {
	return encryptHex(crypto.EncryptCBC, keyHex, plaintext, ivHex)
}

// EncryptCTRHex encrypts plaintext with AES-CTR. An empty ivHex selects a random IV.
// Returns: (iv hex, ciphertext hex)
func (t *Toolkit) EncryptCTRHex(keyHex, plaintext, ivHex string) (string, string, error) {
	return encryptHex(crypto.EncryptCTR, keyHex, plaintext, ivHex)
}

// DecryptCTRHex reverses EncryptCTRHex.
func (t *Toolkit) DecryptCTRHex(keyHex, ciphertextHex, ivHex string) (string, error) {
	key, ct, iv, err := decodeTriple(keyHex, ciphertextHex, ivHex)
	if err != nil {
		return "", err
	}
	return crypto.DecryptCTR(key, ct, iv)
}

// HexToBase64 re-encodes hex as Base64.
func (t *Toolkit) HexToBase64(s string) (string, error) { return codec.HexToBase64(s) }

// Base64ToHex re-encodes Base64 as lowercase hex.
func (t *Toolkit) Base64ToHex(s string) (string, error) { return codec.Base64ToHex(s) }

type encryptFunc func(key []byte, plaintext string, iv []byte) ([]byte, []byte, error)

func encryptHex(enc encryptFunc, keyHex, plaintext, ivHex string) (string, string, error) {
	key, err := codec.HexToBytes(keyHex)
	if err != nil {
		return "", "", err
	}
	var iv []byte
	if ivHex != "" {
		if iv, err = codec.HexToBytes(ivHex); err != nil {
			return "", "", err
		}
	}
	usedIV, ct, err := enc(key, plaintext, iv)
	if err != nil {
		return "", "", err
	}
	return codec.BytesToHex(usedIV), codec.BytesToHex(ct), nil
}

func decodeTriple(keyHex, dataHex, ivHex string) (key, data, iv []byte, err error) {
	if key, err = codec.HexToBytes(keyHex); err != nil {
		return nil, nil, nil, err
	}
	if data, err = codec.HexToBytes(dataHex); err != nil {
		return nil, nil, nil, err
	}
	if iv, err = codec.HexToBytes(ivHex); err != nil {
		return nil, nil, nil, err
	}
	return key, data, iv, nil
}

// Exchange is the outcome of one Diffie-Hellman computation.
// Private must not outlive the exchange record it belongs to.
type Exchange struct {
	Params  dh.Params
	Private *big.Int // b
	Public  *big.Int // B = g^b mod p
	Shared  *big.Int // v = A^b mod p
	Key     string   // k, 32 hex characters
}

// Exchange draws a fresh private value and computes B, v and k.
func (t *Toolkit) Exchange() (Exchange, error) {
	b, err := dh.GeneratePrivateValue(t.params.P)
	if err != nil {
		return Exchange{}, err
	}
	return t.exchangeWith(b)
}

func (t *Toolkit) exchangeWith(b *big.Int) (Exchange, error) {
	pub, err := dh.ComputePublicValue(t.params.G, b, t.params.P)
	if err != nil {
		return Exchange{}, err
	}
	shared, err := dh.ComputeSharedSecret(t.params.A, b, t.params.P)
	if err != nil {
		return Exchange{}, err
	}
	return Exchange{
		Params:  t.params,
		Private: b,
		Public:  pub,
		Shared:  shared,
		Key:     dh.DeriveKey(shared),
	}, nil
}

// CipherKey returns AES key material for this exchange. Size 16 is k itself;
// 24 and 32 are expanded from v with HKDF-SHA256.
func (e Exchange) CipherKey(size int) ([]byte, error) {
	switch size {
	case 16:
		return codec.HexToBytes(e.Key)
	case 24, 32:
		return dh.ExpandKey(e.Shared, fmt.Sprintf("cifra-aes-%d", size*8), size)
	default:
		return nil, crypto.ErrInvalidKeySize
	}
}
