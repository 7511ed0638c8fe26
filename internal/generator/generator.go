// Package generator provides the randomness behind word selection and shuffling.
package generator

import (
	"math"
	"math/rand"
	"time"
)

// Generator produces random integers and permutations.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// RandomInt returns a uniform integer in [ceil(min), floor(max)], or -1 when
// either bound is NaN or infinite, when min > max, or when the range does not
// fit in an int.
func (g *Generator) RandomInt(min, max float64) int {
	if !validRange(min, max) {
		return -1
	}
	lower, upper := math.Ceil(min), math.Floor(max)
	// -MinInt is 2^63 (or 2^31), the first float past the int range.
	if lower > upper || lower < float64(math.MinInt) || upper >= -float64(math.MinInt) {
		return -1
	}
	lo, hi := int(lower), int(upper)
	span := uint(hi) - uint(lo)
	if span >= math.MaxInt {
		return -1
	}
	return lo + g.rnd.Intn(int(span)+1)
}

// Pick selects count words uniformly, with replacement.
func (g *Generator) Pick(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return result
}

// Shuffle permutes list in place (Fisher-Yates) and returns it.
// A nil list is returned unchanged.
func Shuffle[T any](g *Generator, list []T) []T {
	if list == nil {
		return list
	}
	for i := len(list) - 1; i > 0; i-- {
		j := g.RandomInt(0, float64(i))
		if i != j {
			list[i], list[j] = list[j], list[i]
		}
	}
	return list
}

// ShallowEqual reports whether both slices hold the same elements in order.
func ShallowEqual[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func validNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validRange(lower, upper float64) bool {
	return validNumber(lower) && validNumber(upper) && lower <= upper
}
