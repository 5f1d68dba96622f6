package curve

import (
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ScalarBytes is the length of the binary encoding of a Scalar.
const ScalarBytes = 32

var secp256k1Order = saferith.ModulusFromBytes(secp256k1.Params().N.Bytes())

// Order returns the order N of the secp256k1 group.
func Order() *saferith.Modulus {
	return secp256k1Order
}

// Scalar is an element of ℤₙ, with N the order of secp256k1.
//
// Arithmetic on scalars is constant-time.
type Scalar struct {
	value secp256k1.ModNScalar
}

// NewScalar returns the scalar 0.
func NewScalar() *Scalar {
	return new(Scalar)
}

// SetNat sets s = x (mod N).
func (s *Scalar) SetNat(x *saferith.Nat) *Scalar {
	reduced := new(saferith.Nat).Mod(x, secp256k1Order)
	s.value.SetByteSlice(reduced.Bytes())
	return s
}

// SetUInt32 sets s = x.
func (s *Scalar) SetUInt32(x uint32) *Scalar {
	s.value.SetInt(x)
	return s
}

// Set sets s = that.
func (s *Scalar) Set(that *Scalar) *Scalar {
	s.value.Set(&that.value)
	return s
}

// Add sets s = s + that (mod N).
func (s *Scalar) Add(that *Scalar) *Scalar {
	s.value.Add(&that.value)
	return s
}

// Sub sets s = s - that (mod N).
func (s *Scalar) Sub(that *Scalar) *Scalar {
	var negated secp256k1.ModNScalar
	negated.NegateVal(&that.value)
	s.value.Add(&negated)
	return s
}

// Mul sets s = s ⋅ that (mod N).
func (s *Scalar) Mul(that *Scalar) *Scalar {
	s.value.Mul(&that.value)
	return s
}

// Negate sets s = -s (mod N).
func (s *Scalar) Negate() *Scalar {
	s.value.Negate()
	return s
}

// Equal returns true if s = that.
func (s *Scalar) Equal(that *Scalar) bool {
	return s.value.Equals(&that.value)
}

// IsZero returns true if s = 0.
func (s *Scalar) IsZero() bool {
	return s.value.IsZero()
}

// Act returns s⋅P.
func (s *Scalar) Act(that *Point) *Point {
	out := new(Point)
	secp256k1.ScalarMultNonConst(&s.value, &that.value, &out.value)
	return out
}

// ActOnBase returns s⋅G, with G the standard base point.
func (s *Scalar) ActOnBase() *Point {
	out := new(Point)
	secp256k1.ScalarBaseMultNonConst(&s.value, &out.value)
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler.
// The encoding is the 32 byte big-endian representation of s.
func (s *Scalar) MarshalBinary() ([]byte, error) {
	data := s.value.Bytes()
	return data[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// Encodings of values larger than N are rejected.
func (s *Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != ScalarBytes {
		return fmt.Errorf("invalid length for secp256k1 scalar: %d", len(data))
	}
	var exactData [ScalarBytes]byte
	copy(exactData[:], data)
	if s.value.SetBytes(&exactData) != 0 {
		return errors.New("invalid bytes for secp256k1 scalar")
	}
	return nil
}
