package finset

import (
	"fmt"

	"github.com/blaster151/catlim/limit"
)

// dsu is a union-find over element positions, used to build quotient
// partitions. Path halving plus union by rank.
type dsu struct {
	parent []int
	rank   []int
}

func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}

	return d
}

func (d *dsu) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}

	return x
}

func (d *dsu) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}

// classes flattens the partition over the given elements. Classes come
// out ordered by their minimal element position and list members in
// position order; rep maps each position to its class index.
func (d *dsu) classes(elems []string) (classes [][]string, rep []int) {
	rep = make([]int, len(elems))
	classAt := make(map[int]int)
	for i := range elems {
		root := d.find(i)
		k, ok := classAt[root]
		if !ok {
			k = len(classes)
			classAt[root] = k
			classes = append(classes, nil)
		}
		classes[k] = append(classes[k], elems[i])
		rep[i] = k
	}

	return classes, rep
}

// Coequalize quotients the shared codomain by the equivalence generated
// by left(x) ~ right(x). Classes carry their minimal element as
// representative; the derived set lists representatives in class order.
func (t *Traits) Coequalize(left, right Func) (limit.Coequalizer[string, Func], error) {
	t.u.mu.Lock()
	defer t.u.mu.Unlock()
	u := t.u
	var zero limit.Coequalizer[string, Func]

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

	ce := u.elems[left.Cod]
	d := newDSU(len(ce))
	for i := range left.Table {
		d.union(left.Table[i], right.Table[i])
	}
	classes, rep := d.classes(ce)
	name := quotientName(left.Cod, classes)
	reps := make([]string, len(classes))
	for k, c := range classes {
		reps[k] = c[0]
	}
	if err := u.register(name, reps); err != nil {
		return zero, err
	}

	return limit.Coequalizer[string, Func]{
		Obj:     name,
		Project: Func{Dom: left.Cod, Cod: name, Table: rep},
	}, nil
}

// FactorCofork factors a cofork through a quotient: the mediator sends
// each class to the cofork image of any member. Coforks that do not
// coequalize the pair, or that are not constant on a class, are
// declined, as is a projection that misses a class.
func (t *Traits) FactorCofork(left, right Func, through limit.Coequalizer[string, Func], cofork Func) limit.Factorization[Func] {
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
	if err := u.checkLocked(through.Project); err != nil {
		return declined("projection: %v", err)
	}
	if through.Project.Dom != left.Cod || through.Project.Cod != through.Obj {
		return declined("projection runs %s→%s, want %s→%s",
			through.Project.Dom, through.Project.Cod, left.Cod, through.Obj)
	}
	if err := u.checkLocked(cofork); err != nil {
		return declined("cofork: %v", err)
	}
	if cofork.Dom != left.Cod {
		return declined("cofork starts at %s, want %s", cofork.Dom, left.Cod)
	}
	for i := range left.Table {
		if cofork.Table[left.Table[i]] != cofork.Table[right.Table[i]] {
			return declined("cofork does not coequalize the pair at element %d", i)
		}
	}

	qe := u.elems[through.Obj]
	table := make([]int, len(qe))
	set := make([]bool, len(qe))
	for b, q := range through.Project.Table {
		if !set[q] {
			set[q] = true
			table[q] = cofork.Table[b]
			continue
		}
		if table[q] != cofork.Table[b] {
			return declined("cofork is not constant on class %d", q)
		}
	}
	for q, ok := range set {
		if !ok {
			return declined("class %d has no preimage under the projection", q)
		}
	}

	return limit.Factorization[Func]{
		Factored: true,
		Mediator: Func{Dom: through.Obj, Cod: cofork.Cod, Table: table},
	}
}

// Pushout computes the pushout of a span f: C→A, g: C→B as the quotient
// of the coproduct A+B gluing the two images of every element of C.
func (t *Traits) Pushout(f, g Func) (limit.Pushout[string, Func], error) {
	t.u.mu.Lock()
	defer t.u.mu.Unlock()
	u := t.u
	var zero limit.Pushout[string, Func]

	if err := u.checkLocked(f); err != nil {
		return zero, err
	}
	if err := u.checkLocked(g); err != nil {
		return zero, err
	}
	if f.Dom != g.Dom {
		return zero, fmt.Errorf("%w: %s→%s vs %s→%s", ErrNotSpan, f.Dom, f.Cod, g.Dom, g.Cod)
	}

	coprod, err := u.coproductLocked([]string{f.Cod, g.Cod})
	if err != nil {
		return zero, err
	}
	se := u.elems[coprod.Apex]
	injA, injB := coprod.Injections[0], coprod.Injections[1]
	d := newDSU(len(se))
	for c := range f.Table {
		d.union(injA.Table[f.Table[c]], injB.Table[g.Table[c]])
	}
	classes, rep := d.classes(se)
	name := quotientName(coprod.Apex, classes)
	reps := make([]string, len(classes))
	for k, c := range classes {
		reps[k] = c[0]
	}
	if err := u.register(name, reps); err != nil {
		return zero, err
	}

	leftTab := make([]int, len(injA.Table))
	for i, slot := range injA.Table {
		leftTab[i] = rep[slot]
	}
	rightTab := make([]int, len(injB.Table))
	for i, slot := range injB.Table {
		rightTab[i] = rep[slot]
	}

	return limit.Pushout[string, Func]{
		Apex:  name,
		Left:  Func{Dom: f.Cod, Cod: name, Table: leftTab},
		Right: Func{Dom: g.Cod, Cod: name, Table: rightTab},
	}, nil
}

// FactorCospan factors a commuting cospan through a pushout: the
// mediator is read off the pushout legs, checking consistency wherever
// a class meets both sides.
func (t *Traits) FactorCospan(f, g Func, through limit.Pushout[string, Func], left, right Func) limit.Factorization[Func] {
	t.u.mu.RLock()
	defer t.u.mu.RUnlock()
	u := t.u

	if err := u.checkLocked(f); err != nil {
		return declined("f: %v", err)
	}
	if err := u.checkLocked(g); err != nil {
		return declined("g: %v", err)
	}
	if f.Dom != g.Dom {
		return declined("span does not share a domain: %s vs %s", f.Dom, g.Dom)
	}
	if err := u.checkLocked(left); err != nil {
		return declined("left: %v", err)
	}
	if err := u.checkLocked(right); err != nil {
		return declined("right: %v", err)
	}
	if left.Dom != f.Cod || right.Dom != g.Cod {
		return declined("cospan starts at %s and %s, want %s and %s",
			left.Dom, right.Dom, f.Cod, g.Cod)
	}
	if left.Cod != right.Cod {
		return declined("cospan legs target %s and %s", left.Cod, right.Cod)
	}
	if err := u.checkLocked(through.Left); err != nil {
		return declined("pushout left leg: %v", err)
	}
	if err := u.checkLocked(through.Right); err != nil {
		return declined("pushout right leg: %v", err)
	}
	if through.Left.Dom != f.Cod || through.Right.Dom != g.Cod ||
		through.Left.Cod != through.Apex || through.Right.Cod != through.Apex {
		return declined("pushout legs do not match the span")
	}
	for c := range f.Table {
		if left.Table[f.Table[c]] != right.Table[g.Table[c]] {
			return declined("cospan does not commute with the span at element %d", c)
		}
	}

	qe := u.elems[through.Apex]
	table := make([]int, len(qe))
	set := make([]bool, len(qe))
	for a, q := range through.Left.Table {
		if set[q] && table[q] != left.Table[a] {
			return declined("cospan is not constant on class %d", q)
		}
		set[q] = true
		table[q] = left.Table[a]
	}
	for b, q := range through.Right.Table {
		if set[q] && table[q] != right.Table[b] {
			return declined("cospan is not constant on class %d", q)
		}
		set[q] = true
		table[q] = right.Table[b]
	}
	for q, ok := range set {
		if !ok {
			return declined("class %d has no preimage under the pushout legs", q)
		}
	}

	return limit.Factorization[Func]{
		Factored: true,
		Mediator: Func{Dom: through.Apex, Cod: left.Cod, Table: table},
	}
}
