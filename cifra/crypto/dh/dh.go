package dh

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// GeneratePrivateValue draws b uniformly from [10^39, p) using crypto/rand.
func GeneratePrivateValue(p *big.Int) (*big.Int, error) {
	return generatePrivateValue(rand.Reader, p)
}

func generatePrivateValue(r io.Reader, p *big.Int) (*big.Int, error) {
	if p == nil || p.Cmp(MinPrivateValue) <= 0 {
		return nil, fmt.Errorf("%w: modulus must exceed 10^39", ErrDomain)
	}
	span := new(big.Int).Sub(p, MinPrivateValue)
	n, err := rand.Int(r, span)
	if err != nil {
		return nil, err
	}
	return n.Add(n, MinPrivateValue), nil
}

// ComputePublicValue returns g^b mod p.
func ComputePublicValue(g, b, p *big.Int) (*big.Int, error) {
	if err := checkOperands(g, b, p); err != nil {
		return nil, err
	}
	return ModPow(g, b, p), nil
}

// ComputeSharedSecret returns A^b mod p.
func ComputeSharedSecret(a, b, p *big.Int) (*big.Int, error) {
	if err := checkOperands(a, b, p); err != nil {
		return nil, err
	}
	return ModPow(a, b, p), nil
}

func checkOperands(base, exp, mod *big.Int) error {
	if base == nil || exp == nil || mod == nil {
		return fmt.Errorf("%w: missing operand", ErrDomain)
	}
	if mod.Cmp(big.NewInt(1)) <= 0 {
		return fmt.Errorf("%w: modulus must be greater than 1", ErrDomain)
	}
	if exp.Sign() < 0 {
		return fmt.Errorf("%w: negative exponent", ErrDomain)
	}
	return nil
}

// ModPow computes base^exp mod mod with a Montgomery ladder: every exponent
// bit costs one modular multiply and one modular square, whatever its value.
// exp must be non-negative and mod positive.
func ModPow(base, exp, mod *big.Int) *big.Int {
	r0 := big.NewInt(1)
	r1 := new(big.Int).Mod(base, mod)
	for i := exp.BitLen() - 1; i >= 0; i-- {
		if exp.Bit(i) == 0 {
			r1.Mul(r0, r1).Mod(r1, mod)
			r0.Mul(r0, r0).Mod(r0, mod)
		} else {
			r0.Mul(r0, r1).Mod(r0, mod)
			r1.Mul(r1, r1).Mod(r1, mod)
		}
	}
	return r0.Mod(r0, mod)
}
