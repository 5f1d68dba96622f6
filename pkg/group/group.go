// Package group holds the public parameters (p, q, g, h) shared by a prover
// and a verifier.
//
// p is a prime, q is a prime dividing p - 1, and g, h both generate the
// subgroup of order q of ℤₚˣ. A Parameters value is immutable once created and
// may be shared between goroutines.
package group

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/internal/hash"
	"github.com/taurusgroup/chaum-pedersen/internal/params"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
)

type Parameters struct {
	p, q *arith.Modulus
	g, h *saferith.Nat
}

// New validates (p, q, g, h) and returns the corresponding Parameters.
//
// The following are checked:
//   - p and q are odd primes, and q | p - 1,
//   - 1 < g, h < p,
//   - gᵠ = hᵠ = 1 (mod p).
//
// Since ℤₚˣ is cyclic, it has exactly one subgroup of order q, so the last two
// conditions imply that g and h generate the same subgroup.
//
// g = h is accepted. The two equations then coincide, and a proof over such
// parameters only shows knowledge of log_g(y₁), as a Schnorr proof would.
// Use DeriveGenerator to obtain an h with unknown logarithm.
func New(p, q, g, h *saferith.Nat) (*Parameters, error) {
	if p == nil || q == nil || g == nil || h == nil {
		return nil, fmt.Errorf("group: nil parameter: %w", arith.ErrInvalidParameters)
	}
	if err := validatePrimes(p.Big(), q.Big()); err != nil {
		return nil, fmt.Errorf("group: %v: %w", err, arith.ErrInvalidParameters)
	}

	pMod, _ := arith.ModulusFromNat(p)
	qMod, _ := arith.ModulusFromNat(q)
	if !pMod.IsValid(g, h) {
		return nil, fmt.Errorf("group: generators must be smaller than p: %w", arith.ErrInvalidParameters)
	}
	pp := &Parameters{
		p: pMod,
		q: qMod,
		g: new(saferith.Nat).SetNat(g),
		h: new(saferith.Nat).SetNat(h),
	}
	if !pp.isGenerator(pp.g) {
		return nil, fmt.Errorf("group: g does not generate the subgroup of order q: %w", arith.ErrInvalidParameters)
	}
	if !pp.isGenerator(pp.h) {
		return nil, fmt.Errorf("group: h does not generate the subgroup of order q: %w", arith.ErrInvalidParameters)
	}
	return pp, nil
}

// FromUint64 is a convenience wrapper around New, mostly useful for toy groups.
func FromUint64(p, q, g, h uint64) (*Parameters, error) {
	return New(
		new(saferith.Nat).SetUint64(p),
		new(saferith.Nat).SetUint64(q),
		new(saferith.Nat).SetUint64(g),
		new(saferith.Nat).SetUint64(h),
	)
}

func validatePrimes(p, q *big.Int) error {
	two := big.NewInt(2)
	if p.Cmp(two) <= 0 || p.Bit(0) == 0 || !p.ProbablyPrime(params.PrimalityIterations) {
		return errors.New("p is not an odd prime")
	}
	if q.Cmp(two) <= 0 || q.Bit(0) == 0 || !q.ProbablyPrime(params.PrimalityIterations) {
		return errors.New("q is not an odd prime")
	}
	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
	if new(big.Int).Mod(pMinus1, q).Sign() != 0 {
		return errors.New("q does not divide p - 1")
	}
	return nil
}

// isGenerator returns true if x ≠ 1 and xᵠ = 1 (mod p).
// With q prime, this means x has order exactly q.
func (pp *Parameters) isGenerator(x *saferith.Nat) bool {
	one := new(saferith.Nat).SetUint64(1)
	if x.Eq(one) == 1 || x.EqZero() == 1 {
		return false
	}
	return pp.p.Exp(x, pp.q.Nat()).Eq(one) == 1
}

// P returns the prime modulus p.
func (pp *Parameters) P() *arith.Modulus { return pp.p }

// Q returns the prime order q of the subgroup.
func (pp *Parameters) Q() *arith.Modulus { return pp.q }

// G returns the first generator.
func (pp *Parameters) G() *saferith.Nat { return pp.g }

// H returns the second generator.
func (pp *Parameters) H() *saferith.Nat { return pp.h }

// IsElement returns true if y is an element of the subgroup of order q,
// that is 1 ⩽ y < p and yᵠ = 1 (mod p).
func (pp *Parameters) IsElement(y *saferith.Nat) bool {
	if !pp.p.IsValidNonZero(y) {
		return false
	}
	return pp.p.Exp(y, pp.q.Nat()).Eq(new(saferith.Nat).SetUint64(1)) == 1
}

// IsExponent returns true if e ∈ [0, q).
func (pp *Parameters) IsExponent(e *saferith.Nat) bool {
	return pp.q.IsValid(e)
}

// Equal returns true if both parameter sets describe the same group and generators.
func (pp *Parameters) Equal(other *Parameters) bool {
	if other == nil {
		return false
	}
	return pp.p.Nat().Eq(other.p.Nat()) == 1 &&
		pp.q.Nat().Eq(other.q.Nat()) == 1 &&
		pp.g.Eq(other.g) == 1 &&
		pp.h.Eq(other.h) == 1
}

// Fingerprint returns a digest identifying (p, q, g, h).
//
// Two Parameters have the same fingerprint if and only if they are Equal.
func (pp *Parameters) Fingerprint() []byte {
	h := hash.New()
	_ = h.WriteAny("group.Parameters", pp.p.Modulus, pp.q.Modulus, pp.g, pp.h)
	return h.Sum()
}

// String implements fmt.Stringer.
func (pp *Parameters) String() string {
	return fmt.Sprintf("group(p=%s, q=%s, g=%s, h=%s)", pp.p.Big(), pp.q.Big(), pp.g.Big(), pp.h.Big())
}
