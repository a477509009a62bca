package testutil

import (
	"math/rand"
	"sort"
	"sync"
)

// Interval is one generated mapping piece: [Start, Start+Length) -> Dest.
type Interval struct {
	Start  uint64
	Dest   uint64
	Length uint64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64n returns a pseudo-random number in [0,n). n must be positive.
func (r *RNG) Uint64n(n uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uint64nLocked(n)
}

func (r *RNG) uint64nLocked(n uint64) uint64 {
	if n <= 1<<62 {
		return uint64(r.rand.Int63n(int64(n)))
	}
	return r.rand.Uint64() % n
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Intervals generates up to n pairwise disjoint intervals inside [0, domain),
// each at most maxLen long, returned in random order. Destinations are drawn
// from [0, domain) as well, so chained tables keep keys in a small domain.
//
// Fewer than n intervals are returned when the domain is too crowded.
func (r *RNG) Intervals(n int, domain, maxLen uint64) []Interval {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || domain == 0 || maxLen == 0 {
		return nil
	}

	// Pick 2n distinct cut points and pair them up as [cut[2i], cut[2i+1]).
	cuts := make(map[uint64]struct{}, 2*n)
	for len(cuts) < 2*n && uint64(len(cuts)) < domain {
		cuts[r.uint64nLocked(domain)] = struct{}{}
	}
	sorted := make([]uint64, 0, len(cuts))
	for c := range cuts {
		sorted = append(sorted, c)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out := make([]Interval, 0, n)
	for i := 0; i+1 < len(sorted); i += 2 {
		start := sorted[i]
		length := sorted[i+1] - start
		if length > maxLen {
			length = maxLen
		}
		if length == 0 {
			continue
		}
		out = append(out, Interval{
			Start:  start,
			Dest:   r.uint64nLocked(domain),
			Length: length,
		})
	}

	r.rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// BruteMin returns the minimum of f over every key in [start, start+length-1].
// It enumerates the range and is only meant for small reference checks.
func BruteMin(f func(uint64) uint64, start, length uint64) uint64 {
	best := f(start)
	for k := start + 1; k-start < length; k++ {
		if v := f(k); v < best {
			best = v
		}
	}
	return best
}
