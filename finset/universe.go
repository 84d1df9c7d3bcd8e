package finset

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Universe is a mutable collection of named finite sets and the
// category of all total functions between them.
//
// The zero value is not usable; call New.
type Universe struct {
	mu       sync.RWMutex
	declared []string // kept sorted
	derived  []string // creation order
	elems    map[string][]string
}

// New returns an empty universe.
func New() *Universe {
	return &Universe{elems: make(map[string][]string)}
}

// AddSet declares a named finite set. The element list is canonicalized
// first: sorted and deduplicated. Redeclaring a name fails with
// ErrDuplicateSet.
func (u *Universe) AddSet(name string, elems []string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.elems[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSet, name)
	}
	canon := append([]string(nil), elems...)
	sort.Strings(canon)
	canon = compactStrings(canon)
	u.elems[name] = canon
	u.declared = append(u.declared, name)
	sort.Strings(u.declared)

	return nil
}

// Elems returns a copy of a set's element list and whether the set
// exists.
func (u *Universe) Elems(name string) ([]string, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	el, ok := u.elems[name]
	if !ok {
		return nil, false
	}

	return append([]string(nil), el...), true
}

// NewFunc builds a table-backed function and validates it against the
// universe.
func (u *Universe) NewFunc(dom, cod string, table []int) (Func, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	f := Func{Dom: dom, Cod: cod, Table: append([]int(nil), table...)}
	if err := u.checkLocked(f); err != nil {
		return Func{}, err
	}

	return f, nil
}

// FuncOf builds a function from element images: images must map every
// element of dom to an element of cod.
func (u *Universe) FuncOf(dom, cod string, images map[string]string) (Func, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	de, ok := u.elems[dom]
	if !ok {
		return Func{}, fmt.Errorf("%w: %s", ErrUnknownSet, dom)
	}
	ce, ok := u.elems[cod]
	if !ok {
		return Func{}, fmt.Errorf("%w: %s", ErrUnknownSet, cod)
	}
	table := make([]int, len(de))
	for i, x := range de {
		y, ok := images[x]
		if !ok {
			return Func{}, fmt.Errorf("%w: no image for element %s of %s", ErrMalformedFunc, x, dom)
		}
		j := indexOf(ce, y)
		if j < 0 {
			return Func{}, fmt.Errorf("%w: image %s is not in %s", ErrMalformedFunc, y, cod)
		}
		table[i] = j
	}

	return Func{Dom: dom, Cod: cod, Table: table}, nil
}

// register adds a derived set, keeping the given element order. A
// repeat registration with the same elements reuses the existing set; a
// clash with different elements is ErrNameCollision. Callers hold the
// write lock.
func (u *Universe) register(name string, elems []string) error {
	if have, ok := u.elems[name]; ok {
		if !equalStrings(have, elems) {
			return fmt.Errorf("%w: %s", ErrNameCollision, name)
		}
		return nil
	}
	u.elems[name] = append([]string(nil), elems...)
	u.derived = append(u.derived, name)

	return nil
}

// checkLocked validates a Func's endpoints and table under a held lock.
func (u *Universe) checkLocked(f Func) error {
	de, ok := u.elems[f.Dom]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSet, f.Dom)
	}
	ce, ok := u.elems[f.Cod]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSet, f.Cod)
	}
	if len(f.Table) != len(de) {
		return fmt.Errorf("%w: %d table entries for the %d elements of %s",
			ErrMalformedFunc, len(f.Table), len(de), f.Dom)
	}
	for i, v := range f.Table {
		if v < 0 || v >= len(ce) {
			return fmt.Errorf("%w: element %s maps to position %d outside %s",
				ErrMalformedFunc, de[i], v, f.Cod)
		}
	}

	return nil
}

func compactStrings(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}

	return out
}

func equalStrings(a, b []string) bool {
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

func indexOf(elems []string, x string) int {
	for i, e := range elems {
		if e == x {
			return i
		}
	}

	return -1
}

func identityTable(n int) []int {
	t := make([]int, n)
	for i := range t {
		t[i] = i
	}

	return t
}

func rankElems(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}

	return out
}
