package dh

import (
	"errors"
	"fmt"
	"math/big"
)

var ErrDomain = errors.New("dh: domain parameters out of range")

// MinPrivateValue is the inclusive lower bound for private values (10^39).
var MinPrivateValue = new(big.Int).Exp(big.NewInt(10), big.NewInt(39), nil)

// Params holds the domain constants of one exchange.
// P is the prime modulus, G the generator and A the peer's public value.
type Params struct {
	P *big.Int
	G *big.Int
	A *big.Int
}

const (
	referenceP = "57896044618658097711785492504343953926634992332820282019728792003956564819949" // 2^255 - 19
	referenceG = "10"
	referenceA = "10023473944085041662156673746991963142556375513463173715654493121550868737986"
)

// Reference returns the fixed parameter set used by the examples and tests.
func Reference() Params {
	p, err := ParseParams(referenceP, referenceG, referenceA)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseParams parses decimal p, g and A and validates the result.
func ParseParams(p, g, a string) (Params, error) {
	var out Params
	for _, f := range []struct {
		name string
		s    string
		dst  **big.Int
	}{
		{"p", p, &out.P},
		{"g", g, &out.G},
		{"A", a, &out.A},
	} {
		v, ok := new(big.Int).SetString(f.s, 10)
		if !ok {
			return Params{}, fmt.Errorf("%w: %s is not a decimal integer", ErrDomain, f.name)
		}
		*f.dst = v
	}
	if err := out.Validate(); err != nil {
		return Params{}, err
	}
	return out, nil
}

// Validate checks that p leaves room for private values and that g and A
// are residues in [2, p-1).
func (p Params) Validate() error {
	if p.P == nil || p.G == nil || p.A == nil {
		return fmt.Errorf("%w: missing parameter", ErrDomain)
	}
	if p.P.Cmp(MinPrivateValue) <= 0 {
		return fmt.Errorf("%w: modulus must exceed 10^39", ErrDomain)
	}
	pm1 := new(big.Int).Sub(p.P, big.NewInt(1))
	two := big.NewInt(2)
	if p.G.Cmp(two) < 0 || p.G.Cmp(pm1) >= 0 {
		return fmt.Errorf("%w: generator out of range", ErrDomain)
	}
	if p.A.Cmp(two) < 0 || p.A.Cmp(pm1) >= 0 {
		return fmt.Errorf("%w: peer public value out of range", ErrDomain)
	}
	return nil
}
