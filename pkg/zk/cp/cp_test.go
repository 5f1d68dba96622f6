package zkcp

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
	"github.com/taurusgroup/chaum-pedersen/pkg/pool"
)

func nat(x uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(x)
}

func toyProtocol(t testing.TB) *Protocol {
	pp, err := group.FromUint64(23, 11, 2, 3)
	require.NoError(t, err)
	return New(pp)
}

// honest runs the protocol with the given secret, nonce and challenge.
func honest(pr *Protocol, x, r, c *saferith.Nat) *Transcript {
	g := pr.Group()
	return &Transcript{
		Commitment: Commitment{
			T1: g.P().Exp(g.G(), r),
			T2: g.P().Exp(g.H(), r),
		},
		Challenge: Challenge{C: c},
		Response:  Response{S: pr.Response(r, c, x)},
		Public:    NewPublic(g, x),
	}
}

func TestVector(t *testing.T) {
	pr := toyProtocol(t)
	g := pr.Group()

	x := nat(4)
	pub := NewPublic(g, x)
	assert.Equal(t, uint64(16), pub.Y1.Big().Uint64())
	assert.Equal(t, uint64(12), pub.Y2.Big().Uint64())

	r := nat(6)
	t1, err := arith.ModExp(g.G(), r, g.P().Nat())
	require.NoError(t, err)
	t2, err := arith.ModExp(g.H(), r, g.P().Nat())
	require.NoError(t, err)
	assert.Equal(t, uint64(18), t1.Big().Uint64())
	assert.Equal(t, uint64(16), t2.Big().Uint64())

	s := pr.Response(r, nat(5), x)
	assert.Equal(t, uint64(8), s.Big().Uint64())

	assert.True(t, pr.Verify(nat(18), nat(16), nat(5), nat(8), nat(16), nat(12)))
}

func TestVector_SingleMutation(t *testing.T) {
	pr := toyProtocol(t)
	values := [6]uint64{18, 16, 5, 8, 16, 12} // t1, t2, c, s, y1, y2
	moduli := [6]uint64{23, 23, 11, 11, 23, 23}
	names := [6]string{"t1", "t2", "c", "s", "y1", "y2"}

	for i := range values {
		for delta := uint64(1); delta < moduli[i]; delta++ {
			v := values
			v[i] = (v[i] + delta) % moduli[i]
			assert.False(t, pr.Verify(nat(v[0]), nat(v[1]), nat(v[2]), nat(v[3]), nat(v[4]), nat(v[5])),
				"changing %s to %d should be rejected", names[i], v[i])
		}
	}
}

func TestResponse_Range(t *testing.T) {
	pr := toyProtocol(t)
	q := int64(11)
	for r := int64(0); r < q; r++ {
		for c := int64(0); c < q; c++ {
			for x := int64(0); x < q; x++ {
				s := pr.Response(nat(uint64(r)), nat(uint64(c)), nat(uint64(x)))
				expected := new(big.Int).Mod(big.NewInt(r-c*x), big.NewInt(q))
				require.Equal(t, 0, expected.Cmp(s.Big()), "r=%d c=%d x=%d", r, c, x)
			}
		}
	}
}

func TestResponse_Unreduced(t *testing.T) {
	pr := toyProtocol(t)
	// c and x larger than q give the same answer as their reductions
	s := pr.Response(nat(6), nat(5+11), nat(4+33))
	assert.Equal(t, uint64(8), s.Big().Uint64())
	assert.True(t, pr.Verify(nat(18), nat(16), nat(5), s, nat(16), nat(12)))
}

func TestResponse_Deterministic(t *testing.T) {
	pr := toyProtocol(t)
	a := pr.Response(nat(3), nat(7), nat(9))
	b := pr.Response(nat(3), nat(7), nat(9))
	assert.True(t, a.Eq(b) == 1)
}

func TestCompleteness_Toy(t *testing.T) {
	pr := toyProtocol(t)
	rand := mrand.New(mrand.NewSource(0))
	for i := 0; i < 200; i++ {
		x := GenerateSecret(rand, pr.Group())
		r := GenerateSecret(rand, pr.Group())
		c := GenerateSecret(rand, pr.Group())
		tr := honest(pr, x, r, c)
		require.True(t, tr.Verify(pr), "x=%v r=%v c=%v", x, r, c)
	}
}

func TestCompleteness_Exhaustive(t *testing.T) {
	pr := toyProtocol(t)
	for x := uint64(0); x < 11; x++ {
		for r := uint64(0); r < 11; r++ {
			for c := uint64(0); c < 11; c++ {
				require.True(t, honest(pr, nat(x), nat(r), nat(c)).Verify(pr), "x=%d r=%d c=%d", x, r, c)
			}
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	pr := toyProtocol(t)
	tr := honest(pr, nat(4), nat(6), nat(5))
	// a response computed with another secret must be rejected for c ≠ 0
	tr.S = pr.Response(nat(6), nat(5), nat(7))
	assert.False(t, tr.Verify(pr))
}

func TestVerify_OutOfRange(t *testing.T) {
	pr := toyProtocol(t)
	assert.False(t, pr.Verify(nil, nat(16), nat(5), nat(8), nat(16), nat(12)))
	assert.False(t, pr.Verify(nat(18), nat(16), nat(5), nat(8+11), nat(16), nat(12)), "s ⩾ q")
	assert.False(t, pr.Verify(nat(18), nat(16), nat(5+11), nat(8), nat(16), nat(12)), "c ⩾ q")
	assert.False(t, pr.Verify(nat(18+23), nat(16), nat(5), nat(8), nat(16), nat(12)), "t1 ⩾ p")
	assert.False(t, pr.Verify(nat(0), nat(0), nat(0), nat(0), nat(0), nat(0)), "zero elements")
	var tr *Transcript
	assert.False(t, tr.Verify(pr))
}

func TestTranscript_Marshal(t *testing.T) {
	pr := toyProtocol(t)
	tr := honest(pr, nat(4), nat(6), nat(5))

	out, err := cbor.Marshal(tr)
	require.NoError(t, err, "failed to marshal transcript")
	tr2 := &Transcript{}
	require.NoError(t, cbor.Unmarshal(out, tr2), "failed to unmarshal transcript")
	assert.True(t, tr2.Verify(pr))
	assert.Equal(t, uint64(8), tr2.S.Big().Uint64())
}

func TestVerifyBatch(t *testing.T) {
	pl := pool.NewPool(0)
	defer pl.TearDown()

	pr := toyProtocol(t)
	rand := mrand.New(mrand.NewSource(2))
	ts := make([]*Transcript, 64)
	for i := range ts {
		g := pr.Group()
		ts[i] = honest(pr, GenerateSecret(rand, g), GenerateSecret(rand, g), GenerateSecret(rand, g))
		if i%3 == 0 {
			ts[i].S = g.Q().Sub(ts[i].S, nat(1))
		}
	}

	for _, p := range []*pool.Pool{nil, pl} {
		results := pr.VerifyBatch(p, ts)
		require.Len(t, results, len(ts))
		for i, ok := range results {
			assert.Equal(t, i%3 != 0, ok, "transcript %d", i)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	pr := toyProtocol(b)
	tr := honest(pr, nat(4), nat(6), nat(5))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Verify(pr)
	}
}
