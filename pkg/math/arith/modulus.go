package arith

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

// ErrInvalidParameters is returned when an operation is called with arguments
// for which the arithmetic is not defined, such as a zero modulus.
var ErrInvalidParameters = errors.New("invalid parameters")

// Modulus wraps a saferith.Modulus and exposes the handful of constant-time
// operations needed for exponent and group arithmetic.
//
// All methods reduce their inputs first, so callers may pass values larger than n.
type Modulus struct {
	// represents modulus n
	*saferith.Modulus
	// even is set when n is even, in which case Exp does not use saferith.
	even bool
}

// ModulusFromN creates a simple wrapper around a given modulus n.
// The modulus is not copied.
func ModulusFromN(n *saferith.Modulus) *Modulus {
	return &Modulus{
		Modulus: n,
		even:    n.Big().Bit(0) == 0,
	}
}

// ModulusFromNat creates a Modulus from a natural number n > 0.
func ModulusFromNat(n *saferith.Nat) (*Modulus, error) {
	if n == nil || n.EqZero() == 1 {
		return nil, fmt.Errorf("arith: modulus must be positive: %w", ErrInvalidParameters)
	}
	return ModulusFromN(saferith.ModulusFromNat(n)), nil
}

// Exp returns xᵉ (mod n), and 1 (mod n) when e = 0.
//
// For odd n this is (saferith.Nat).Exp(x, e, n.Modulus) and runs in constant time.
// saferith's exponentiation is incorrect for even moduli, so these go through
// big.Int.Exp, which is variable time: an even n must only be used with public values.
func (n *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	xReduced := n.Reduce(x)
	if n.even {
		m := n.Big()
		y := new(big.Int).Exp(xReduced.Big(), e.Big(), m)
		return new(saferith.Nat).SetBig(y, m.BitLen())
	}
	return new(saferith.Nat).Exp(xReduced, e, n.Modulus)
}

// Reduce returns x (mod n).
func (n *Modulus) Reduce(x *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).Mod(x, n.Modulus)
}

// Mul returns x⋅y (mod n).
func (n *Modulus) Mul(x, y *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModMul(n.Reduce(x), n.Reduce(y), n.Modulus)
}

// Sub returns the unique representative of x - y in [0, n).
//
// The result is the same as a signed subtraction followed by a reduction,
// but no negative intermediate value is ever formed.
func (n *Modulus) Sub(x, y *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModSub(n.Reduce(x), n.Reduce(y), n.Modulus)
}

// IsValid returns true if all xs are non nil and in [0, n).
func (n *Modulus) IsValid(xs ...*saferith.Nat) bool {
	for _, x := range xs {
		if x == nil {
			return false
		}
		if _, _, lt := x.CmpMod(n.Modulus); lt != 1 {
			return false
		}
	}
	return true
}

// IsValidNonZero returns true if all xs are non nil and in [1, n).
func (n *Modulus) IsValidNonZero(xs ...*saferith.Nat) bool {
	if !n.IsValid(xs...) {
		return false
	}
	for _, x := range xs {
		if x.EqZero() == 1 {
			return false
		}
	}
	return true
}

// ModExp computes baseᵉˣᵖᵒⁿᵉⁿᵗ (mod modulus), in constant time when modulus is odd.
//
// A zero or nil modulus is a misuse and returns ErrInvalidParameters.
func ModExp(base, exponent, modulus *saferith.Nat) (*saferith.Nat, error) {
	if base == nil || exponent == nil {
		return nil, fmt.Errorf("arith: nil operand: %w", ErrInvalidParameters)
	}
	n, err := ModulusFromNat(modulus)
	if err != nil {
		return nil, err
	}
	return n.Exp(base, exponent), nil
}
