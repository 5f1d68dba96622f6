package sample

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/internal/params"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/curve"
)

var ErrMaxIterations = fmt.Errorf("sample: failed to read randomness after %d iterations", params.MaxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < params.MaxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// ModN samples an element of ℤₙ uniformly at random.
//
// Candidates of n.BitLen() bits are drawn and rejected until one is smaller
// than n, so that no modulo bias is introduced. On average fewer than two
// candidates are needed.
func ModN(rand io.Reader, n *saferith.Modulus) *saferith.Nat {
	out := new(saferith.Nat)
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	// mask clears the bits of the leading byte above the bit length of n
	mask := byte(0xff)
	if excess := len(buf)*8 - bits; excess > 0 {
		mask >>= uint(excess)
	}
	for {
		mustReadBits(rand, buf)
		buf[0] &= mask
		out.SetBytes(buf)
		if _, _, lt := out.CmpMod(n); lt == 1 {
			return out
		}
	}
}

// Below returns a value drawn uniformly from [0, bound).
//
// A nil or zero bound is a misuse and returns arith.ErrInvalidParameters.
func Below(rand io.Reader, bound *saferith.Nat) (*saferith.Nat, error) {
	n, err := arith.ModulusFromNat(bound)
	if err != nil {
		return nil, fmt.Errorf("sample: bound: %w", err)
	}
	return ModN(rand, n.Modulus), nil
}

// Scalar samples a uniform scalar of the secp256k1 group.
func Scalar(rand io.Reader) *curve.Scalar {
	return curve.NewScalar().SetNat(ModN(rand, curve.Order()))
}

// ScalarPointPair returns a random scalar x and the point x⋅G.
func ScalarPointPair(rand io.Reader) (*curve.Scalar, *curve.Point) {
	s := Scalar(rand)
	return s, s.ActOnBase()
}
