package pool

import (
	"io"
	mrand "math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Parallelize(t *testing.T) {
	square := func(i int) int { return i * i }

	for _, pl := range []*Pool{nil, NewPool(0), NewPool(3)} {
		results := Parallelize(pl, 100, square)
		require.Len(t, results, 100)
		for i, r := range results {
			assert.Equal(t, i*i, r)
		}
		assert.Empty(t, Parallelize(pl, 0, square))
		pl.TearDown()
	}
}

func TestLockedReader(t *testing.T) {
	r := NewLockedReader(mrand.New(mrand.NewSource(0)))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 32)
			for j := 0; j < 100; j++ {
				_, err := io.ReadFull(r, buf)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
