package finset

import (
	"fmt"
	"strings"

	"github.com/blaster151/catlim/limit"
)

// Traits exposes the universe's primitive structure to the limit
// package. The one value implements all six trait interfaces.
//
// Construction operations (Product, Coproduct, Equalize, Coequalize,
// Pullback, Pushout) register their derived set in the universe under a
// content-derived canonical name and are idempotent: repeating a
// request reuses the registered set. Factoring operations never error;
// a fork or cofork that does not factor comes back as a declined
// limit.Factorization.
type Traits struct {
	u *Universe
}

// Traits returns the universe's structure oracles.
func (u *Universe) Traits() *Traits { return &Traits{u: u} }

var (
	_ limit.Products[string, Func]     = (*Traits)(nil)
	_ limit.Coproducts[string, Func]   = (*Traits)(nil)
	_ limit.Equalizers[string, Func]   = (*Traits)(nil)
	_ limit.Coequalizers[string, Func] = (*Traits)(nil)
	_ limit.Pullbacks[string, Func]    = (*Traits)(nil)
	_ limit.Pushouts[string, Func]     = (*Traits)(nil)
)

// Product computes the cartesian product of the named factors. The
// derived set's elements are mixed-radix ranks "0".."n-1" with the
// leftmost factor most significant; projections extract digits. A
// single factor is its own product (identity projection, nothing
// registered); zero factors yield the terminal singleton Π().
func (t *Traits) Product(factors []string) (limit.Product[string, Func], error) {
	t.u.mu.Lock()
	defer t.u.mu.Unlock()

	return t.u.productLocked(factors)
}

func (u *Universe) productLocked(factors []string) (limit.Product[string, Func], error) {
	var zero limit.Product[string, Func]

	if len(factors) == 1 {
		el, ok := u.elems[factors[0]]
		if !ok {
			return zero, fmt.Errorf("%w: %s", ErrUnknownSet, factors[0])
		}
		id := Func{Dom: factors[0], Cod: factors[0], Table: identityTable(len(el))}

		return limit.Product[string, Func]{Apex: factors[0], Projections: []Func{id}}, nil
	}

	sizes := make([]int, len(factors))
	total := 1
	for k, f := range factors {
		el, ok := u.elems[f]
		if !ok {
			return zero, fmt.Errorf("%w: %s", ErrUnknownSet, f)
		}
		sizes[k] = len(el)
		total *= len(el)
	}
	name := productName(factors)
	if err := u.register(name, rankElems(total)); err != nil {
		return zero, err
	}

	projs := make([]Func, len(factors))
	stride := 1
	for k := len(factors) - 1; k >= 0; k-- {
		tab := make([]int, total)
		for r := 0; r < total; r++ {
			tab[r] = (r / stride) % sizes[k]
		}
		projs[k] = Func{Dom: name, Cod: factors[k], Table: tab}
		stride *= sizes[k]
	}

	return limit.Product[string, Func]{Apex: name, Projections: projs}, nil
}

// Tuple mediates legs through a product this trait issued: the unique
// function whose k-th projection recovers legs[k]. The apex, the legs
// and the product's rank count are validated; the mixed-radix layout is
// trusted.
func (t *Traits) Tuple(apex string, legs []Func, into limit.Product[string, Func]) (Func, error) {
	t.u.mu.RLock()
	defer t.u.mu.RUnlock()
	u := t.u

	ae, ok := u.elems[apex]
	if !ok {
		return Func{}, fmt.Errorf("%w: %s", ErrUnknownSet, apex)
	}
	pe, ok := u.elems[into.Apex]
	if !ok {
		return Func{}, fmt.Errorf("%w: %s", ErrUnknownSet, into.Apex)
	}
	if len(legs) != len(into.Projections) {
		return Func{}, fmt.Errorf("%w: %d legs for %d projections",
			ErrArityMismatch, len(legs), len(into.Projections))
	}

	sizes := make([]int, len(legs))
	total := 1
	for k, p := range into.Projections {
		ce, ok := u.elems[p.Cod]
		if !ok {
			return Func{}, fmt.Errorf("%w: %s", ErrUnknownSet, p.Cod)
		}
		sizes[k] = len(ce)
		total *= len(ce)
	}
	if total != len(pe) {
		return Func{}, fmt.Errorf("%w: product apex %s has %d elements, its factors rank %d",
			ErrMalformedFunc, into.Apex, len(pe), total)
	}
	for k, leg := range legs {
		if err := u.checkLocked(leg); err != nil {
			return Func{}, fmt.Errorf("leg %d: %w", k, err)
		}
		if leg.Dom != apex || leg.Cod != into.Projections[k].Cod {
			return Func{}, fmt.Errorf("%w: leg %d runs %s→%s, want %s→%s",
				ErrMalformedFunc, k, leg.Dom, leg.Cod, apex, into.Projections[k].Cod)
		}
	}

	table := make([]int, len(ae))
	for x := range ae {
		r := 0
		for k := range legs {
			r = r*sizes[k] + legs[k].Table[x]
		}
		table[x] = r
	}

	return Func{Dom: apex, Cod: into.Apex, Table: table}, nil
}

// Coproduct computes the disjoint union of the named factors. The
// derived set's elements are ranks "0".."n-1" laid out slot by slot in
// factor order; injections shift into their slot. A single factor is
// its own coproduct; zero factors yield the initial empty set Σ().
func (t *Traits) Coproduct(factors []string) (limit.Coproduct[string, Func], error) {
	t.u.mu.Lock()
	defer t.u.mu.Unlock()

	return t.u.coproductLocked(factors)
}

func (u *Universe) coproductLocked(factors []string) (limit.Coproduct[string, Func], error) {
	var zero limit.Coproduct[string, Func]

	if len(factors) == 1 {
		el, ok := u.elems[factors[0]]
		if !ok {
			return zero, fmt.Errorf("%w: %s", ErrUnknownSet, factors[0])
		}
		id := Func{Dom: factors[0], Cod: factors[0], Table: identityTable(len(el))}

		return limit.Coproduct[string, Func]{Apex: factors[0], Injections: []Func{id}}, nil
	}

	sizes := make([]int, len(factors))
	total := 0
	for k, f := range factors {
		el, ok := u.elems[f]
		if !ok {
			return zero, fmt.Errorf("%w: %s", ErrUnknownSet, f)
		}
		sizes[k] = len(el)
		total += len(el)
	}
	name := coproductName(factors)
	if err := u.register(name, rankElems(total)); err != nil {
		return zero, err
	}

	injs := make([]Func, len(factors))
	offset := 0
	for k, f := range factors {
		tab := make([]int, sizes[k])
		for i := range tab {
			tab[i] = offset + i
		}
		injs[k] = Func{Dom: f, Cod: name, Table: tab}
		offset += sizes[k]
	}

	return limit.Coproduct[string, Func]{Apex: name, Injections: injs}, nil
}

// Cotuple mediates legs out of a coproduct: the unique function whose
// composite with the k-th injection is legs[k]. Slots are filled
// through the injections' own tables, so any genuine coproduct layout
// works; uncovered or doubly covered slots are ErrMalformedFunc.
func (t *Traits) Cotuple(apex string, legs []Func, from limit.Coproduct[string, Func]) (Func, error) {
	t.u.mu.RLock()
	defer t.u.mu.RUnlock()
	u := t.u

	if _, ok := u.elems[apex]; !ok {
		return Func{}, fmt.Errorf("%w: %s", ErrUnknownSet, apex)
	}
	fe, ok := u.elems[from.Apex]
	if !ok {
		return Func{}, fmt.Errorf("%w: %s", ErrUnknownSet, from.Apex)
	}
	if len(legs) != len(from.Injections) {
		return Func{}, fmt.Errorf("%w: %d legs for %d injections",
			ErrArityMismatch, len(legs), len(from.Injections))
	}

	table := make([]int, len(fe))
	seen := make([]bool, len(fe))
	for k, leg := range legs {
		inj := from.Injections[k]
		if err := u.checkLocked(inj); err != nil {
			return Func{}, fmt.Errorf("injection %d: %w", k, err)
		}
		if inj.Cod != from.Apex {
			return Func{}, fmt.Errorf("%w: injection %d targets %s, want %s",
				ErrMalformedFunc, k, inj.Cod, from.Apex)
		}
		if err := u.checkLocked(leg); err != nil {
			return Func{}, fmt.Errorf("leg %d: %w", k, err)
		}
		if leg.Dom != inj.Dom || leg.Cod != apex {
			return Func{}, fmt.Errorf("%w: leg %d runs %s→%s, want %s→%s",
				ErrMalformedFunc, k, leg.Dom, leg.Cod, inj.Dom, apex)
		}
		for i, slot := range inj.Table {
			if seen[slot] {
				return Func{}, fmt.Errorf("%w: injections overlap at slot %d", ErrMalformedFunc, slot)
			}
			seen[slot] = true
			table[slot] = leg.Table[i]
		}
	}
	for slot, ok := range seen {
		if !ok {
			return Func{}, fmt.Errorf("%w: no injection covers slot %d", ErrMalformedFunc, slot)
		}
	}

	return Func{Dom: from.Apex, Cod: apex, Table: table}, nil
}

func productName(factors []string) string {
	return "Π(" + strings.Join(factors, "×") + ")"
}

func coproductName(factors []string) string {
	return "Σ(" + strings.Join(factors, "+") + ")"
}

// subsetName names a subobject by the elements it keeps.
func subsetName(base string, elems []string) string {
	return base + "[" + strings.Join(elems, ",") + "]"
}

// quotientName names a quotient by its partition: classes joined with
// "|", members within a class with "=".
func quotientName(base string, classes [][]string) string {
	parts := make([]string, len(classes))
	for k, c := range classes {
		parts[k] = strings.Join(c, "=")
	}

	return base + "/[" + strings.Join(parts, "|") + "]"
}

// declined wraps a reason into a failed factorization.
func declined(format string, args ...any) limit.Factorization[Func] {
	return limit.Factorization[Func]{Reason: "finset: " + fmt.Sprintf(format, args...)}
}
