package random

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFisherYates_PermIsPermutation(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	for _, n := range []int{0, 1, 2, 10, 100} {
		perm := p.Perm(n)
		require.Len(t, perm, n)

		sorted := append([]int(nil), perm...)
		sort.Ints(sorted)
		for i, v := range sorted {
			assert.Equal(t, i, v)
		}
	}
}

func TestNewSeeded_IsDeterministic(t *testing.T) {
	a := NewSeeded(42).Perm(100)
	b := NewSeeded(42).Perm(100)
	c := NewSeeded(43).Perm(100)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFisherYates_RoughlyUniform(t *testing.T) {
	const (
		n      = 10
		trials = 20000
	)
	p := NewSeeded(7)

	// counts[i][v] is how often value v lands at index i.
	var counts [n][n]int
	for range trials {
		for i, v := range p.Perm(n) {
			counts[i][v]++
		}
	}

	expected := float64(trials) / n
	for i := range counts {
		for v := range counts[i] {
			assert.InDelta(t, expected, float64(counts[i][v]), expected*0.15, "index %d value %d", i, v)
		}
	}
}

func TestFisherYates_ConcurrentUse(t *testing.T) {
	p := NewSeeded(1)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.Len(t, p.Perm(10), 10)
			}
		}()
	}
	wg.Wait()
}

func TestFixed(t *testing.T) {
	f := Fixed{2, 0, 1}

	got := f.Perm(3)
	assert.Equal(t, []int{2, 0, 1}, got)

	got[0] = 9
	assert.Equal(t, 2, f[0])

	assert.Panics(t, func() { f.Perm(4) })
}
