package group

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/internal/hash"
	"github.com/taurusgroup/chaum-pedersen/internal/params"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/sample"
)

// DeriveGenerator deterministically derives an element of order q in ℤₚˣ from domain.
//
// A candidate u ∈ ℤₚ is read from a hash of (domain, p, q, counter), and raised
// to the cofactor (p - 1)/q. Since the result is obtained from a hash, nobody
// knows its discrete logarithm with respect to any other generator, which is
// what a second generator h needs.
func DeriveGenerator(p, q *saferith.Nat, domain []byte) (*saferith.Nat, error) {
	if p == nil || q == nil {
		return nil, fmt.Errorf("group: nil parameter: %w", arith.ErrInvalidParameters)
	}
	pBig, qBig := p.Big(), q.Big()
	if err := validatePrimes(pBig, qBig); err != nil {
		return nil, fmt.Errorf("group: %v: %w", err, arith.ErrInvalidParameters)
	}
	// k = (p - 1)/q
	k := new(big.Int).Sub(pBig, big.NewInt(1))
	k.Quo(k, qBig)
	cofactor := new(saferith.Nat).SetBig(k, k.BitLen())

	pMod, _ := arith.ModulusFromNat(p)
	one := new(saferith.Nat).SetUint64(1)
	base := hash.New()
	_ = base.WriteAny("group.DeriveGenerator", domain, pMod.Modulus, q)
	var counter [4]byte
	for i := 0; i < params.MaxIterations; i++ {
		binary.BigEndian.PutUint32(counter[:], uint32(i))
		h := base.Clone()
		_ = h.WriteAny(counter[:])
		u := sample.ModN(h.Digest(), pMod.Modulus)
		candidate := pMod.Exp(u, cofactor)
		if candidate.EqZero() == 1 || candidate.Eq(one) == 1 {
			continue
		}
		return candidate, nil
	}
	return nil, fmt.Errorf("group: failed to derive a generator after %d iterations", params.MaxIterations)
}
