package zkcp

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/internal/params"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/sample"
	"golang.org/x/crypto/argon2"
)

// Public holds the prover's public keys.
type Public struct {
	// Y1 = gˣ (mod p)
	Y1 *saferith.Nat
	// Y2 = hˣ (mod p)
	Y2 *saferith.Nat
}

// NewPublic derives the public keys of the secret x.
func NewPublic(group *group.Parameters, x *saferith.Nat) Public {
	p := group.P()
	return Public{
		Y1: p.Exp(group.G(), x),
		Y2: p.Exp(group.H(), x),
	}
}

// Validate checks that both keys are elements of the subgroup of order q.
func (pub Public) Validate(group *group.Parameters) error {
	if !group.IsElement(pub.Y1) {
		return fmt.Errorf("zkcp: y1 is not in the subgroup: %w", arith.ErrInvalidParameters)
	}
	if !group.IsElement(pub.Y2) {
		return fmt.Errorf("zkcp: y2 is not in the subgroup: %w", arith.ErrInvalidParameters)
	}
	return nil
}

// GenerateSecret samples a secret x ∈ [0, q).
func GenerateSecret(rand io.Reader, group *group.Parameters) *saferith.Nat {
	return sample.ModN(rand, group.Q().Modulus)
}

// SecretFromPassword derives a secret x ∈ [0, q) from a password and salt
// using Argon2id.
//
// The key is stretched to params.StatBytes more than the size of q before the
// reduction, so the result is statistically close to uniform.
func SecretFromPassword(group *group.Parameters, password, salt []byte) *saferith.Nat {
	q := group.Q()
	keyLen := (q.BitLen()+7)/8 + params.StatBytes
	key := argon2.IDKey(password, salt, params.Argon2Time, params.Argon2Memory, params.Argon2Threads, uint32(keyLen))
	x := q.Reduce(new(saferith.Nat).SetBytes(key))
	for i := range key {
		key[i] = 0
	}
	return x
}

// NewSalt returns a fresh salt for SecretFromPassword.
func NewSalt(rand io.Reader) ([]byte, error) {
	salt := make([]byte, params.SaltBytes)
	if _, err := io.ReadFull(rand, salt); err != nil {
		return nil, fmt.Errorf("zkcp: failed to generate salt: %w", err)
	}
	return salt, nil
}
