package generator

import (
	"math"
	"sort"
	"strconv"
	"testing"
)

func TestRandomIntInvalidRange(t *testing.T) {
	g := NewSeeded(1)
	cases := [][2]float64{
		{math.NaN(), 3},
		{0, math.Inf(1)},
		{math.Inf(-1), 0},
		{5, 4},
		{1.2, 1.8},
	}
	for _, c := range cases {
		if got := g.RandomInt(c[0], c[1]); got != -1 {
			t.Fatalf("RandomInt(%v, %v) = %d, expected -1", c[0], c[1], got)
		}
	}
}

func TestRandomIntOutsideIntRange(t *testing.T) {
	g := NewSeeded(1)
	cases := [][2]float64{
		{-9e18, 9e18},
		{0, 1e19},
		{-1e19, 0},
		{1e300, 2e300},
		{float64(math.MinInt), -float64(math.MinInt)},
	}
	for _, c := range cases {
		if got := g.RandomInt(c[0], c[1]); got != -1 {
			t.Fatalf("RandomInt(%v, %v) = %d, expected -1", c[0], c[1], got)
		}
	}
	if strconv.IntSize < 64 {
		t.Skip("wide ranges need 64-bit ints")
	}
	for i := 0; i < 100; i++ {
		v := g.RandomInt(-4e18, 4e18)
		if int64(v) < -4e18 || int64(v) > 4e18 {
			t.Fatalf("value %d outside [-4e18, 4e18]", v)
		}
	}
	if v := g.RandomInt(float64(math.MinInt), float64(math.MinInt)); v != math.MinInt {
		t.Fatalf("expected the smallest int, got %d", v)
	}
}

func TestRandomIntBounds(t *testing.T) {
	g := NewSeeded(42)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := g.RandomInt(0.5, 3.9)
		if v < 1 || v > 3 {
			t.Fatalf("value %d outside [1, 3]", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all of 1..3 to appear, got %v", seen)
	}
	if g.RandomInt(7, 7) != 7 {
		t.Fatalf("expected degenerate range to return its bound")
	}
}

func TestShufflePermutes(t *testing.T) {
	g := NewSeeded(7)
	list := []string{"a", "b", "c", "d", "e", "f"}
	out := Shuffle(g, list)
	if len(out) != 6 {
		t.Fatalf("expected 6 items, got %d", len(out))
	}
	sorted := append([]string(nil), out...)
	sort.Strings(sorted)
	if !ShallowEqual(sorted, []string{"a", "b", "c", "d", "e", "f"}) {
		t.Fatalf("shuffle lost or duplicated items: %v", out)
	}
}

func TestShuffleNilIsNoop(t *testing.T) {
	var list []int
	if out := Shuffle(NewSeeded(1), list); out != nil {
		t.Fatalf("expected nil back, got %v", out)
	}
}

func TestShallowEqual(t *testing.T) {
	if !ShallowEqual([]int{1, 2}, []int{1, 2}) {
		t.Fatalf("expected equal slices")
	}
	if ShallowEqual([]int{1, 2}, []int{2, 1}) {
		t.Fatalf("expected order to matter")
	}
	if ShallowEqual([]int{1}, []int{1, 1}) {
		t.Fatalf("expected length to matter")
	}
}

func TestPick(t *testing.T) {
	g := NewSeeded(3)
	words := []string{"one", "two"}
	out := g.Pick(words, 5)
	if len(out) != 5 {
		t.Fatalf("expected 5 words, got %d", len(out))
	}
	for _, w := range out {
		if w != "one" && w != "two" {
			t.Fatalf("unexpected word %q", w)
		}
	}
	if g.Pick(nil, 3) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
