package random

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Permuter produces uniformly random permutations of [0, n).
type Permuter interface {
	Perm(n int) []int
}

// FisherYates is a Permuter backed by a Fisher–Yates shuffle. It is safe for
// concurrent use.
type FisherYates struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a FisherYates seeded from the operating system's CSPRNG.
func New() (*FisherYates, error) {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("crand.Read -> %w", err)
	}

	return &FisherYates{rng: rand.New(rand.NewChaCha8(seed))}, nil
}

// NewSeeded returns a deterministic FisherYates, meant for tests.
func NewSeeded(seed uint64) *FisherYates {
	return &FisherYates{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (f *FisherYates) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := n - 1; i > 0; i-- {
		j := f.rng.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	return p
}

// Fixed always returns the same permutation. Perm panics if asked for a
// length other than len(Fixed).
type Fixed []int

func (f Fixed) Perm(n int) []int {
	if n != len(f) {
		panic(fmt.Sprintf("random.Fixed: want permutation of %d, have %d", n, len(f)))
	}

	p := make([]int, n)
	copy(p, f)

	return p
}
