package shape

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/blaster151/catlim/cat"
)

var (
	// ErrNegativeCount is returned by Discrete and Chain for n < 0.
	ErrNegativeCount = errors.New("shape: negative object count")

	// ErrNotAPoset is returned by FromPoset when the cover relation has
	// a cycle.
	ErrNotAPoset = errors.New("shape: cover relation is not a poset")
)

// Discrete builds the shape with objects "0".."n-1" and no arrows
// besides identities. Diagrams over it are bare families of objects.
func Discrete(n int) (*cat.Fin[string, string], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}
	ids := make([]string, n)
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}

	return DiscreteOf(ids)
}

// DiscreteOf builds a discrete shape over the given object names, kept
// in the given order. Duplicate names fail.
func DiscreteOf(ids []string) (*cat.Fin[string, string], error) {
	b := cat.NewBuilder[string, string]()
	for _, o := range ids {
		if err := b.AddObject(o, "id:"+o); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// WalkingArrow is the two-object shape 0→1 with the single non-identity
// arrow "f". A diagram over it picks out one base morphism.
func WalkingArrow() *cat.Fin[string, string] {
	b := cat.NewBuilder[string, string]()
	must(b.AddObject("0", "id:0"))
	must(b.AddObject("1", "id:1"))
	must(b.AddArrow("f", "0", "1"))
	fin, err := b.Build()
	must(err)

	return fin
}

// ParallelPair is the shape 0⇉1 with arrows "f" and "g". Limits over it
// are equalizers, colimits coequalizers.
func ParallelPair() *cat.Fin[string, string] {
	b := cat.NewBuilder[string, string]()
	must(b.AddObject("0", "id:0"))
	must(b.AddObject("1", "id:1"))
	must(b.AddArrow("f", "0", "1"))
	must(b.AddArrow("g", "0", "1"))
	fin, err := b.Build()
	must(err)

	return fin
}

// Span is the shape 1 ← 0 → 2 with arrows "l": 0→1 and "r": 0→2.
// Colimits over it are pushouts.
func Span() *cat.Fin[string, string] {
	b := cat.NewBuilder[string, string]()
	must(b.AddObject("0", "id:0"))
	must(b.AddObject("1", "id:1"))
	must(b.AddObject("2", "id:2"))
	must(b.AddArrow("l", "0", "1"))
	must(b.AddArrow("r", "0", "2"))
	fin, err := b.Build()
	must(err)

	return fin
}

// Cospan is the shape 1 → 0 ← 2 with arrows "l": 1→0 and "r": 2→0.
// Limits over it are pullbacks.
func Cospan() *cat.Fin[string, string] {
	b := cat.NewBuilder[string, string]()
	must(b.AddObject("0", "id:0"))
	must(b.AddObject("1", "id:1"))
	must(b.AddObject("2", "id:2"))
	must(b.AddArrow("l", "1", "0"))
	must(b.AddArrow("r", "2", "0"))
	fin, err := b.Build()
	must(err)

	return fin
}

// Chain builds the linear poset 0 ≤ 1 ≤ … ≤ n-1 with one arrow per
// comparable pair. Chain(0) is the empty shape.
func Chain(n int) (*cat.Fin[string, string], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}
	covers := make(map[string][]string, n)
	for i := 0; i < n; i++ {
		name := strconv.Itoa(i)
		if i+1 < n {
			covers[name] = []string{strconv.Itoa(i + 1)}
		} else {
			covers[name] = nil
		}
	}

	return FromPoset(covers)
}

// Square is the commutative square: the poset on "00","01","10","11"
// with 00 below everything and 11 above everything. Both composite
// paths share the single diagonal arrow "00≤11", so every diagram over
// it commutes.
func Square() *cat.Fin[string, string] {
	fin, err := FromPoset(map[string][]string{
		"00": {"01", "10"},
		"01": {"11"},
		"10": {"11"},
		"11": nil,
	})
	must(err)

	return fin
}

// must panics on builder errors that are impossible for the fixed
// shapes above.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
