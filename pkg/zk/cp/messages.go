package zkcp

import (
	"github.com/cronokirby/saferith"
)

// Commitment is the prover's first message.
type Commitment struct {
	// T1 = gʳ (mod p)
	T1 *saferith.Nat
	// T2 = hʳ (mod p)
	T2 *saferith.Nat
}

// Challenge is the verifier's message.
type Challenge struct {
	// C ∈ [0, q)
	C *saferith.Nat
}

// Response is the prover's final message.
type Response struct {
	// S = r - c⋅x (mod q)
	S *saferith.Nat
}

// Transcript is a complete run of the protocol, together with the public keys
// it was run against. It can be stored and checked again later.
type Transcript struct {
	Commitment
	Challenge
	Response
	Public
}

// Verify checks the transcript against the protocol's group.
func (t *Transcript) Verify(pr *Protocol) bool {
	if t == nil {
		return false
	}
	return pr.Verify(t.T1, t.T2, t.C, t.S, t.Y1, t.Y2)
}
