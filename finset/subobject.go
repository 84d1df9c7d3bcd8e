package finset

import (
	"fmt"

	"github.com/blaster151/catlim/limit"
)

// Equalize carves out the subset of the shared domain on which the two
// functions agree. The derived set keeps the domain's element order and
// is named dom[kept...]; Include is the positional inclusion.
func (t *Traits) Equalize(left, right Func) (limit.Equalizer[string, Func], error) {
	t.u.mu.Lock()
	defer t.u.mu.Unlock()
	u := t.u
	var zero limit.Equalizer[string, Func]

	if err := u.checkLocked(left); err != nil {
		return zero, err
	}
	if err := u.checkLocked(right); err != nil {
		return zero, err
	}
	if left.Dom != right.Dom || left.Cod != right.Cod {
		return zero, fmt.Errorf("%w: %s→%s vs %s→%s",
			ErrNotParallel, left.Dom, left.Cod, right.Dom, right.Cod)
	}

	de := u.elems[left.Dom]
	kept := make([]int, 0, len(de))
	sub := make([]string, 0, len(de))
	for i := range de {
		if left.Table[i] == right.Table[i] {
			kept = append(kept, i)
			sub = append(sub, de[i])
		}
	}
	name := subsetName(left.Dom, sub)
	if err := u.register(name, sub); err != nil {
		return zero, err
	}

	return limit.Equalizer[string, Func]{
		Obj:     name,
		Include: Func{Dom: name, Cod: left.Dom, Table: kept},
	}, nil
}

// FactorFork factors a fork through an equalizer subobject: the
// mediator sends each element to the subset position of its fork image.
// Any inclusion-backed equalizer works, not only ones this trait
// issued. Forks that do not equalize the pair, or that land outside the
// subobject, are declined.
func (t *Traits) FactorFork(left, right Func, through limit.Equalizer[string, Func], fork Func) limit.Factorization[Func] {
	t.u.mu.RLock()
	defer t.u.mu.RUnlock()
	u := t.u

	if err := u.checkLocked(left); err != nil {
		return declined("left: %v", err)
	}
	if err := u.checkLocked(right); err != nil {
		return declined("right: %v", err)
	}
	if left.Dom != right.Dom || left.Cod != right.Cod {
		return declined("pair is not parallel: %s→%s vs %s→%s",
			left.Dom, left.Cod, right.Dom, right.Cod)
	}
	if err := u.checkLocked(through.Include); err != nil {
		return declined("inclusion: %v", err)
	}
	if through.Include.Dom != through.Obj || through.Include.Cod != left.Dom {
		return declined("inclusion runs %s→%s, want %s→%s",
			through.Include.Dom, through.Include.Cod, through.Obj, left.Dom)
	}
	if err := u.checkLocked(fork); err != nil {
		return declined("fork: %v", err)
	}
	if fork.Cod != left.Dom {
		return declined("fork targets %s, want %s", fork.Cod, left.Dom)
	}
	for x, v := range fork.Table {
		if left.Table[v] != right.Table[v] {
			return declined("fork does not equalize the pair at element %d", x)
		}
	}

	position := make(map[int]int, len(through.Include.Table))
	for j, v := range through.Include.Table {
		position[v] = j
	}
	table := make([]int, len(fork.Table))
	for x, v := range fork.Table {
		j, ok := position[v]
		if !ok {
			return declined("fork escapes the subobject at element %d", x)
		}
		table[x] = j
	}

	return limit.Factorization[Func]{
		Factored: true,
		Mediator: Func{Dom: fork.Dom, Cod: through.Obj, Table: table},
	}
}

// Pullback computes the pullback of a cospan f: A→C ← B :g by filtering
// the product A×B down to the ranks whose components agree in C. The
// apex is registered as a subset of the product.
func (t *Traits) Pullback(f, g Func) (limit.Pullback[string, Func], error) {
	t.u.mu.Lock()
	defer t.u.mu.Unlock()
	u := t.u
	var zero limit.Pullback[string, Func]

	if err := u.checkLocked(f); err != nil {
		return zero, err
	}
	if err := u.checkLocked(g); err != nil {
		return zero, err
	}
	if f.Cod != g.Cod {
		return zero, fmt.Errorf("%w: %s→%s vs %s→%s", ErrNotCospan, f.Dom, f.Cod, g.Dom, g.Cod)
	}

	prod, err := u.productLocked([]string{f.Dom, g.Dom})
	if err != nil {
		return zero, err
	}
	pe := u.elems[prod.Apex]
	kept := make([]string, 0, len(pe))
	la := make([]int, 0, len(pe))
	lb := make([]int, 0, len(pe))
	for r := range pe {
		a := prod.Projections[0].Table[r]
		b := prod.Projections[1].Table[r]
		if f.Table[a] == g.Table[b] {
			kept = append(kept, pe[r])
			la = append(la, a)
			lb = append(lb, b)
		}
	}
	name := subsetName(prod.Apex, kept)
	if err := u.register(name, kept); err != nil {
		return zero, err
	}

	return limit.Pullback[string, Func]{
		Apex:  name,
		Left:  Func{Dom: name, Cod: f.Dom, Table: la},
		Right: Func{Dom: name, Cod: g.Dom, Table: lb},
	}, nil
}

// FactorSpan factors a commuting span through a pullback: the mediator
// sends x to the apex element pairing (left x, right x). Spans that do
// not commute with the cospan, or that pair outside the apex, are
// declined.
func (t *Traits) FactorSpan(f, g Func, through limit.Pullback[string, Func], left, right Func) limit.Factorization[Func] {
	t.u.mu.RLock()
	defer t.u.mu.RUnlock()
	u := t.u

	if err := u.checkLocked(f); err != nil {
		return declined("f: %v", err)
	}
	if err := u.checkLocked(g); err != nil {
		return declined("g: %v", err)
	}
	if f.Cod != g.Cod {
		return declined("cospan does not share a codomain: %s vs %s", f.Cod, g.Cod)
	}
	if err := u.checkLocked(left); err != nil {
		return declined("left: %v", err)
	}
	if err := u.checkLocked(right); err != nil {
		return declined("right: %v", err)
	}
	if left.Dom != right.Dom {
		return declined("span legs start at %s and %s", left.Dom, right.Dom)
	}
	if left.Cod != f.Dom || right.Cod != g.Dom {
		return declined("span runs to %s and %s, want %s and %s", left.Cod, right.Cod, f.Dom, g.Dom)
	}
	if err := u.checkLocked(through.Left); err != nil {
		return declined("pullback left leg: %v", err)
	}
	if err := u.checkLocked(through.Right); err != nil {
		return declined("pullback right leg: %v", err)
	}
	if through.Left.Dom != through.Apex || through.Right.Dom != through.Apex ||
		through.Left.Cod != f.Dom || through.Right.Cod != g.Dom {
		return declined("pullback legs do not match the cospan")
	}
	for x := range left.Table {
		if f.Table[left.Table[x]] != g.Table[right.Table[x]] {
			return declined("span does not commute with the cospan at element %d", x)
		}
	}

	type pair struct{ a, b int }
	at := make(map[pair]int, len(through.Left.Table))
	for j := range through.Left.Table {
		at[pair{through.Left.Table[j], through.Right.Table[j]}] = j
	}
	table := make([]int, len(left.Table))
	for x := range left.Table {
		j, ok := at[pair{left.Table[x], right.Table[x]}]
		if !ok {
			return declined("span escapes the pullback at element %d", x)
		}
		table[x] = j
	}

	return limit.Factorization[Func]{
		Factored: true,
		Mediator: Func{Dom: left.Dom, Cod: through.Apex, Table: table},
	}
}
