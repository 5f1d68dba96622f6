package curve

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/taurusgroup/chaum-pedersen/internal/hash"
	"github.com/taurusgroup/chaum-pedersen/internal/params"
)

// PointBytes is the length of the compressed encoding of a Point.
const PointBytes = 33

// Point is an element of the secp256k1 group.
//
// The zero value is the identity.
type Point struct {
	value secp256k1.JacobianPoint
}

// NewIdentityPoint returns the identity element.
func NewIdentityPoint() *Point {
	return new(Point)
}

// NewBasePoint returns the standard generator G.
func NewBasePoint() *Point {
	return NewScalar().SetUInt32(1).ActOnBase()
}

// Add returns p + that.
func (p *Point) Add(that *Point) *Point {
	out := new(Point)
	secp256k1.AddNonConst(&p.value, &that.value, &out.value)
	return out
}

// Negate returns -p.
func (p *Point) Negate() *Point {
	out := new(Point)
	out.value.Set(&p.value)
	out.value.Y.Normalize()
	out.value.Y.Negate(1)
	out.value.Y.Normalize()
	return out
}

// Sub returns p - that.
func (p *Point) Sub(that *Point) *Point {
	return p.Add(that.Negate())
}

// IsIdentity returns true if p is the identity element.
func (p *Point) IsIdentity() bool {
	var affine secp256k1.JacobianPoint
	affine.Set(&p.value)
	affine.Z.Normalize()
	if affine.Z.IsZero() {
		return true
	}
	affine.ToAffine()
	return affine.X.IsZero() && affine.Y.IsZero()
}

// Equal returns true if p and that represent the same group element.
func (p *Point) Equal(that *Point) bool {
	pIdentity, thatIdentity := p.IsIdentity(), that.IsIdentity()
	if pIdentity || thatIdentity {
		return pIdentity && thatIdentity
	}
	var a, b secp256k1.JacobianPoint
	a.Set(&p.value)
	b.Set(&that.value)
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

// MarshalBinary implements encoding.BinaryMarshaler, using the 33 byte
// compressed encoding. The identity has no encoding.
func (p *Point) MarshalBinary() ([]byte, error) {
	if p.IsIdentity() {
		return nil, errors.New("secp256k1Point.MarshalBinary: identity point")
	}
	var affine secp256k1.JacobianPoint
	affine.Set(&p.value)
	affine.ToAffine()
	out := make([]byte, PointBytes)
	// Doing it this way is compatible with Bitcoin
	out[0] = byte(affine.Y.IsOddBit()) + 2
	data := affine.X.Bytes()
	copy(out[1:], data[:])
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *Point) UnmarshalBinary(data []byte) error {
	if len(data) != PointBytes {
		return fmt.Errorf("invalid length for secp256k1Point: %d", len(data))
	}
	if data[0] != 2 && data[0] != 3 {
		return fmt.Errorf("secp256k1Point.UnmarshalBinary: invalid prefix %d", data[0])
	}
	var x, y secp256k1.FieldVal
	if x.SetByteSlice(data[1:]) {
		return errors.New("secp256k1Point.UnmarshalBinary: x coordinate out of range")
	}
	if !secp256k1.DecompressY(&x, data[0] == 3, &y) {
		return errors.New("secp256k1Point.UnmarshalBinary: x coordinate not on curve")
	}
	p.value.X.Set(&x)
	p.value.Y.Set(&y)
	p.value.Z.SetInt(1)
	return nil
}

// HashToPoint deterministically maps domain to a point whose discrete
// logarithm with respect to G is unknown.
//
// Candidate x coordinates are read from hash(domain, counter) until one lies
// on the curve, which takes two attempts on average.
func HashToPoint(domain []byte) (*Point, error) {
	var counter [4]byte
	for i := 0; i < params.MaxIterations; i++ {
		binary.BigEndian.PutUint32(counter[:], uint32(i))
		h := hash.New()
		_ = h.WriteAny("curve.HashToPoint", domain, counter[:])
		digest := h.Sum()

		var x, y secp256k1.FieldVal
		if x.SetByteSlice(digest[:32]) {
			continue
		}
		if !secp256k1.DecompressY(&x, digest[32]&1 == 1, &y) {
			continue
		}
		out := new(Point)
		out.value.X.Set(&x)
		out.value.Y.Set(&y)
		out.value.Z.SetInt(1)
		return out, nil
	}
	return nil, fmt.Errorf("curve: failed to hash to a point after %d iterations", params.MaxIterations)
}
