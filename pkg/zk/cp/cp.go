// Package zkcp implements the Chaum-Pedersen sigma protocol.
//
// The prover shows knowledge of x such that
//
//	y₁ = gˣ (mod p),  y₂ = hˣ (mod p)
//
// for two generators g, h of the same subgroup of order q, without revealing x.
// A run has three moves:
//
//	prover → verifier:  t₁ = gʳ, t₂ = hʳ             (Commitment)
//	verifier → prover:  c ∈ [0, q)                    (Challenge)
//	prover → verifier:  s = r - c⋅x (mod q)           (Response)
//
// and the verifier accepts iff gˢ⋅y₁ᶜ = t₁ and hˢ⋅y₂ᶜ = t₂ (mod p).
//
// The challenge is either sampled by the verifier or supplied by the caller;
// it is never derived from a hash of the transcript.
package zkcp

import (
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	"github.com/taurusgroup/chaum-pedersen/pkg/pool"
)

// Protocol binds the protocol arithmetic to a set of group parameters.
//
// It holds no mutable state, and can be used concurrently.
type Protocol struct {
	group *group.Parameters
}

// New returns a Protocol over the given group.
func New(group *group.Parameters) *Protocol {
	return &Protocol{group: group}
}

// Group returns the parameters the protocol operates on.
func (pr *Protocol) Group() *group.Parameters {
	return pr.group
}

// Response computes the prover's answer s = r - c⋅x (mod q), as the unique
// representative in [0, q).
//
// r, c and x are expected in [0, q). Larger values are accepted: c⋅x and r are
// reduced mod q before the subtraction, which leaves the verification
// equations unchanged since g and h have order q.
//
// All operations are constant-time, since x is secret.
func (pr *Protocol) Response(r, c, x *saferith.Nat) *saferith.Nat {
	q := pr.group.Q()
	// cx = c⋅x (mod q)
	cx := q.Mul(c, x)
	// s = r - cx (mod q)
	return q.Sub(r, cx)
}

// Verify returns true if
//
//	gˢ⋅y₁ᶜ = t₁ (mod p)  and  hˢ⋅y₂ᶜ = t₂ (mod p).
//
// t₁, t₂, y₁, y₂ must lie in [1, p) and c, s in [0, q), otherwise the proof is rejected.
// The result does not reveal which of the equations failed.
func (pr *Protocol) Verify(t1, t2, c, s, y1, y2 *saferith.Nat) bool {
	p, q := pr.group.P(), pr.group.Q()
	if !p.IsValidNonZero(t1, t2, y1, y2) {
		return false
	}
	if !q.IsValid(c, s) {
		return false
	}

	// lhs₁ = gˢ⋅y₁ᶜ (mod p)
	lhs1 := p.Mul(p.Exp(pr.group.G(), s), p.Exp(y1, c))
	// lhs₂ = hˢ⋅y₂ᶜ (mod p)
	lhs2 := p.Mul(p.Exp(pr.group.H(), s), p.Exp(y2, c))

	return lhs1.Eq(t1)&lhs2.Eq(t2) == 1
}

// VerifyBatch verifies each transcript independently, using the pool's workers.
//
// The i-th result is ts[i].Verify(pr). A nil pool verifies sequentially.
func (pr *Protocol) VerifyBatch(pl *pool.Pool, ts []*Transcript) []bool {
	return pool.Parallelize(pl, len(ts), func(i int) bool {
		return ts[i].Verify(pr)
	})
}
