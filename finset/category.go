package finset

import (
	"fmt"

	"github.com/blaster151/catlim/cat"
)

// Universe satisfies the category contract and the hom fast path.
var (
	_ cat.Category[string, Func]      = (*Universe)(nil)
	_ cat.HomEnumerator[string, Func] = (*Universe)(nil)
)

// Objects enumerates every set: declared names in sorted order, then
// derived sets in creation order.
func (u *Universe) Objects() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]string, 0, len(u.declared)+len(u.derived))
	out = append(out, u.declared...)
	out = append(out, u.derived...)

	return out
}

// Arrows enumerates every function between every ordered pair of sets,
// per pair in odometer order. The total is Σ |cod|^|dom| over all
// pairs and grows violently with element counts; exhaustive scans are
// for small universes only.
func (u *Universe) Arrows() []Func {
	u.mu.RLock()
	defer u.mu.RUnlock()

	names := make([]string, 0, len(u.declared)+len(u.derived))
	names = append(names, u.declared...)
	names = append(names, u.derived...)

	var out []Func
	for _, from := range names {
		for _, to := range names {
			out = append(out, u.homLocked(from, to)...)
		}
	}

	return out
}

// Identity returns the identity function of a set.
func (u *Universe) Identity(o string) (Func, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	el, ok := u.elems[o]
	if !ok {
		return Func{}, fmt.Errorf("%w: %s", ErrUnknownSet, o)
	}

	return Func{Dom: o, Cod: o, Table: identityTable(len(el))}, nil
}

// Compose returns g∘f. Both functions are validated; mismatched
// endpoints fail with ErrNotComposable.
func (u *Universe) Compose(g, f Func) (Func, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if err := u.checkLocked(f); err != nil {
		return Func{}, err
	}
	if err := u.checkLocked(g); err != nil {
		return Func{}, err
	}
	if f.Cod != g.Dom {
		return Func{}, fmt.Errorf("%w: %s→%s then %s→%s",
			ErrNotComposable, f.Dom, f.Cod, g.Dom, g.Cod)
	}
	table := make([]int, len(f.Table))
	for i, v := range f.Table {
		table[i] = g.Table[v]
	}

	return Func{Dom: f.Dom, Cod: g.Cod, Table: table}, nil
}

// Eq compares endpoints and pointwise images.
func (u *Universe) Eq(a, b Func) bool {
	if a.Dom != b.Dom || a.Cod != b.Cod || len(a.Table) != len(b.Table) {
		return false
	}
	for i := range a.Table {
		if a.Table[i] != b.Table[i] {
			return false
		}
	}

	return true
}

// Dom returns the function's domain set name.
func (u *Universe) Dom(m Func) string { return m.Dom }

// Cod returns the function's codomain set name.
func (u *Universe) Cod(m Func) string { return m.Cod }

// Hom enumerates the |to|^|from| functions from → to in odometer order
// (the last element's image varies fastest). Unknown names yield an
// empty hom-set.
func (u *Universe) Hom(from, to string) []Func {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.homLocked(from, to)
}

func (u *Universe) homLocked(from, to string) []Func {
	de, ok := u.elems[from]
	if !ok {
		return nil
	}
	ce, ok := u.elems[to]
	if !ok {
		return nil
	}
	if len(ce) == 0 && len(de) > 0 {
		return nil
	}

	table := make([]int, len(de))
	var out []Func
	for {
		out = append(out, Func{Dom: from, Cod: to, Table: append([]int(nil), table...)})
		j := len(table) - 1
		for ; j >= 0; j-- {
			table[j]++
			if table[j] < len(ce) {
				break
			}
			table[j] = 0
		}
		if j < 0 {
			break
		}
	}

	return out
}
