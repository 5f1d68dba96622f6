// Package zkdleq is the Chaum-Pedersen protocol in the secp256k1 group.
//
// The prover shows knowledge of x with Y₁ = x⋅G and Y₂ = x⋅H. As in package
// zkcp, the challenge is provided by the verifier or the caller.
package zkdleq

import (
	"io"

	"github.com/taurusgroup/chaum-pedersen/pkg/math/curve"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/sample"
)

type Public struct {
	// H is the second generator, G being the curve's base point.
	H *curve.Point
	// Y1 = x⋅G
	Y1 *curve.Point
	// Y2 = x⋅H
	Y2 *curve.Point
}

type Commitment struct {
	// T1 = r⋅G
	T1 *curve.Point
	// T2 = r⋅H
	T2 *curve.Point
}

type Proof struct {
	Commitment
	// C is the challenge
	C *curve.Scalar
	// S = r - c⋅x
	S *curve.Scalar
}

// NewPublic computes the public values of x for the generator H.
func NewPublic(H *curve.Point, x *curve.Scalar) Public {
	return Public{
		H:  H,
		Y1: x.ActOnBase(),
		Y2: x.Act(H),
	}
}

// IsValid checks that no element is missing or equal to the identity.
func (p Public) IsValid() bool {
	if p.H == nil || p.Y1 == nil || p.Y2 == nil {
		return false
	}
	return !p.H.IsIdentity() && !p.Y1.IsIdentity() && !p.Y2.IsIdentity()
}

// Commit samples a nonce r and returns it with the commitment (r⋅G, r⋅H).
func Commit(rand io.Reader, public Public) (*curve.Scalar, Commitment) {
	r, T1 := sample.ScalarPointPair(rand)
	return r, Commitment{
		T1: T1,
		T2: r.Act(public.H),
	}
}

// Response returns s = r - c⋅x (mod N).
func Response(r, c, x *curve.Scalar) *curve.Scalar {
	cx := curve.NewScalar().Set(c).Mul(x)
	return curve.NewScalar().Set(r).Sub(cx)
}

// NewProof runs the prover's side of the protocol with a challenge chosen
// after the commitment by the challenge function.
func NewProof(rand io.Reader, public Public, x *curve.Scalar, challenge func(Commitment) *curve.Scalar) *Proof {
	r, commitment := Commit(rand, public)
	c := challenge(commitment)
	return &Proof{
		Commitment: commitment,
		C:          c,
		S:          Response(r, c, x),
	}
}

// Verify returns true if s⋅G + c⋅Y₁ = T₁ and s⋅H + c⋅Y₂ = T₂.
func Verify(public Public, commitment Commitment, c, s *curve.Scalar) bool {
	if !public.IsValid() || c == nil || s == nil {
		return false
	}
	if commitment.T1 == nil || commitment.T2 == nil {
		return false
	}
	if commitment.T1.IsIdentity() || commitment.T2.IsIdentity() {
		return false
	}

	lhs1 := s.ActOnBase().Add(c.Act(public.Y1))
	lhs2 := s.Act(public.H).Add(c.Act(public.Y2))
	return lhs1.Equal(commitment.T1) && lhs2.Equal(commitment.T2)
}

// Verify checks the proof against public.
func (p *Proof) Verify(public Public) bool {
	if p == nil {
		return false
	}
	return Verify(public, p.Commitment, p.C, p.S)
}
