package test

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
)

// ToyGroup returns the parameters p = 23, q = 11, g = 2, h = 3.
func ToyGroup() *group.Parameters {
	pp, err := group.FromUint64(23, 11, 2, 3)
	if err != nil {
		panic(err)
	}
	return pp
}

// SafePrimeGroup generates parameters with p = 2q + 1 a safe prime of the given
// bit size, and g, h derived with group.DeriveGenerator.
//
// Prime generation is slow, so this is only meant for tests with small sizes.
func SafePrimeGroup(r io.Reader, bits int) *group.Parameters {
	if r == nil {
		r = rand.Reader
	}
	one := big.NewInt(1)
	for {
		q, err := rand.Prime(r, bits-1)
		if err != nil {
			panic(err)
		}
		p := new(big.Int).Lsh(q, 1)
		p.Add(p, one)
		if !p.ProbablyPrime(20) {
			continue
		}
		pNat := new(saferith.Nat).SetBig(p, p.BitLen())
		qNat := new(saferith.Nat).SetBig(q, q.BitLen())
		g, err := group.DeriveGenerator(pNat, qNat, []byte("g"))
		if err != nil {
			panic(err)
		}
		h, err := group.DeriveGenerator(pNat, qNat, []byte("h"))
		if err != nil {
			panic(err)
		}
		pp, err := group.New(pNat, qNat, g, h)
		if err != nil {
			panic(fmt.Sprintf("test: generated invalid group: %v", err))
		}
		return pp
	}
}
