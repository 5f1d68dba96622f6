package curve

import (
	"encoding/hex"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marshalTester struct {
	S *Scalar
	P *Point
}

func TestMarshal(t *testing.T) {
	s := marshalTester{
		S: NewScalar().SetNat(new(saferith.Nat).SetUint64(0xED)),
		P: NewBasePoint(),
	}
	data, err := cbor.Marshal(s)
	require.NoError(t, err)
	var s2 marshalTester
	err = cbor.Unmarshal(data, &s2)
	require.NoError(t, err)
	assert.True(t, s.S.Equal(s2.S))
	assert.True(t, s.P.Equal(s2.P))

	_, err = NewIdentityPoint().MarshalBinary()
	assert.Error(t, err)
	assert.Error(t, new(Point).UnmarshalBinary(make([]byte, PointBytes)))
	assert.Error(t, new(Scalar).UnmarshalBinary([]byte{1, 2}))
}

func TestNewBasePoint(t *testing.T) {
	data, err := NewBasePoint().MarshalBinary()
	require.NoError(t, err)
	Gx, _ := hex.DecodeString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	assert.Equal(t, Gx, data[1:])

	g2 := NewBasePoint().Add(NewBasePoint())
	assert.True(t, g2.Equal(NewScalar().SetUInt32(2).ActOnBase()))
}

func TestPoint_Negate(t *testing.T) {
	G := NewBasePoint()
	assert.True(t, G.Add(G.Negate()).IsIdentity())
	assert.True(t, G.Sub(G).IsIdentity())
	assert.True(t, NewIdentityPoint().Sub(G).Equal(G.Negate()))
	assert.True(t, NewIdentityPoint().Equal(NewIdentityPoint()))
	assert.False(t, NewIdentityPoint().Equal(G))
}

func TestScalar_Arithmetic(t *testing.T) {
	two := NewScalar().SetUInt32(2)
	three := NewScalar().SetUInt32(3)
	six := NewScalar().SetUInt32(6)
	assert.True(t, NewScalar().Set(two).Mul(three).Equal(six))
	assert.True(t, NewScalar().Set(six).Sub(three).Equal(three))
	assert.True(t, NewScalar().Set(two).Sub(three).Add(NewScalar().SetUInt32(1)).IsZero())
	assert.True(t, NewScalar().Set(two).Negate().Add(two).IsZero())

	// N ≡ 0
	n := Order().Nat()
	assert.True(t, NewScalar().SetNat(n).IsZero())

	// (a + b)⋅G = a⋅G + b⋅G
	lhs := NewScalar().Set(two).Add(three).ActOnBase()
	rhs := two.ActOnBase().Add(three.ActOnBase())
	assert.True(t, lhs.Equal(rhs))
	assert.True(t, three.Act(two.ActOnBase()).Equal(six.ActOnBase()))
}

func TestHashToPoint(t *testing.T) {
	h1, err := HashToPoint([]byte("H"))
	require.NoError(t, err)
	h2, err := HashToPoint([]byte("H"))
	require.NoError(t, err)
	other, err := HashToPoint([]byte("other"))
	require.NoError(t, err)

	assert.True(t, h1.Equal(h2))
	assert.False(t, h1.Equal(other))
	assert.False(t, h1.IsIdentity())
	assert.False(t, h1.Equal(NewBasePoint()))

	data, err := h1.MarshalBinary()
	require.NoError(t, err)
	decoded := new(Point)
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.True(t, decoded.Equal(h1))
}
