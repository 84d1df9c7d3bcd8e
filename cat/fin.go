// Explicit table-backed finite categories and their construction.

package cat

import "fmt"

// pair is the composition-table key: pair{g, f} indexes the composite g∘f.
type pair[M comparable] struct{ g, f M }

// Fin is an explicit finite category: object and arrow enumerations in
// insertion order, identity and endpoint tables, and a total composition
// table over all composable pairs. Construction (Builder.Build or
// FromFuncs) certifies the category laws, so a non-nil *Fin is always a
// lawful category.
//
// Fin requires comparable arrow values and uses == as its equality
// oracle: arrow values must be canonical representatives. Categories
// whose morphisms have no canonical comparable form implement Category
// directly instead.
type Fin[O comparable, M comparable] struct {
	objects []O
	arrows  []M
	ids     map[O]M
	dom     map[M]O
	cod     map[M]O
	table   map[pair[M]]M
}

// Objects returns the objects in insertion order. The slice is a copy.
func (c *Fin[O, M]) Objects() []O {
	out := make([]O, len(c.objects))
	copy(out, c.objects)

	return out
}

// Arrows returns all arrows (identities included) in insertion order.
// The slice is a copy.
func (c *Fin[O, M]) Arrows() []M {
	out := make([]M, len(c.arrows))
	copy(out, c.arrows)

	return out
}

// Identity returns the identity arrow of o, or ErrUnknownObject.
func (c *Fin[O, M]) Identity(o O) (M, error) {
	id, ok := c.ids[o]
	if !ok {
		var zero M
		return zero, fmt.Errorf("%w: %v", ErrUnknownObject, o)
	}

	return id, nil
}

// Compose returns g∘f. Both arrows must belong to the category and
// satisfy Cod(f) == Dom(g).
func (c *Fin[O, M]) Compose(g, f M) (M, error) {
	var zero M
	if _, ok := c.dom[f]; !ok {
		return zero, fmt.Errorf("%w: %v", ErrUnknownArrow, f)
	}
	if _, ok := c.dom[g]; !ok {
		return zero, fmt.Errorf("%w: %v", ErrUnknownArrow, g)
	}
	if c.cod[f] != c.dom[g] {
		return zero, fmt.Errorf("%w: cod(%v)=%v, dom(%v)=%v", ErrNotComposable, f, c.cod[f], g, c.dom[g])
	}
	h, ok := c.table[pair[M]{g: g, f: f}]
	if !ok {
		// Build/FromFuncs guarantee totality; reaching this means the
		// value was not produced by them.
		return zero, fmt.Errorf("%w: (%v, %v)", ErrIncompleteTable, g, f)
	}

	return h, nil
}

// Eq compares arrows with ==; Fin arrows are canonical values.
func (c *Fin[O, M]) Eq(a, b M) bool { return a == b }

// Dom returns the domain of m. Defined only for member arrows; foreign
// values yield the zero object.
func (c *Fin[O, M]) Dom(m M) O { return c.dom[m] }

// Cod returns the codomain of m. Defined only for member arrows; foreign
// values yield the zero object.
func (c *Fin[O, M]) Cod(m M) O { return c.cod[m] }

// HasArrow reports whether m is a member arrow.
func (c *Fin[O, M]) HasArrow(m M) bool {
	_, ok := c.dom[m]

	return ok
}

// Builder assembles a Fin arrow by arrow. Objects carry explicit
// identity-arrow values (the builder cannot invent M values); composites
// of non-identity pairs are declared with SetComposite, while unit
// entries are filled in automatically by Build.
type Builder[O comparable, M comparable] struct {
	objects []O
	arrows  []M
	ids     map[O]M
	dom     map[M]O
	cod     map[M]O
	table   map[pair[M]]M
}

// NewBuilder returns an empty Builder.
func NewBuilder[O comparable, M comparable]() *Builder[O, M] {
	return &Builder[O, M]{
		ids:   make(map[O]M),
		dom:   make(map[M]O),
		cod:   make(map[M]O),
		table: make(map[pair[M]]M),
	}
}

// AddObject registers object o together with its identity arrow value.
func (b *Builder[O, M]) AddObject(o O, id M) error {
	if _, ok := b.ids[o]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateObject, o)
	}
	if _, ok := b.dom[id]; ok {
		return fmt.Errorf("%w: identity %v already registered", ErrDuplicateArrow, id)
	}
	b.objects = append(b.objects, o)
	b.arrows = append(b.arrows, id)
	b.ids[o] = id
	b.dom[id] = o
	b.cod[id] = o

	return nil
}

// AddArrow registers a non-identity arrow m: from → to. Both endpoints
// must have been added before.
func (b *Builder[O, M]) AddArrow(m M, from, to O) error {
	if _, ok := b.ids[from]; !ok {
		return fmt.Errorf("%w: %v", ErrUnknownObject, from)
	}
	if _, ok := b.ids[to]; !ok {
		return fmt.Errorf("%w: %v", ErrUnknownObject, to)
	}
	if _, ok := b.dom[m]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateArrow, m)
	}
	b.arrows = append(b.arrows, m)
	b.dom[m] = from
	b.cod[m] = to

	return nil
}

// SetComposite declares g∘f = gf. All three arrows must be registered,
// the pair must be composable, and gf must run Dom(f) → Cod(g). Each
// pair may be declared at most once.
func (b *Builder[O, M]) SetComposite(g, f, gf M) error {
	for _, m := range []M{g, f, gf} {
		if _, ok := b.dom[m]; !ok {
			return fmt.Errorf("%w: %v", ErrUnknownArrow, m)
		}
	}
	if b.cod[f] != b.dom[g] {
		return fmt.Errorf("%w: cod(%v)=%v, dom(%v)=%v", ErrNotComposable, f, b.cod[f], g, b.dom[g])
	}
	if b.dom[gf] != b.dom[f] || b.cod[gf] != b.cod[g] {
		return fmt.Errorf("%w: %v∘%v declared as %v: %v→%v, want %v→%v",
			ErrCompositeEndpoints, g, f, gf, b.dom[gf], b.cod[gf], b.dom[f], b.cod[g])
	}
	key := pair[M]{g: g, f: f}
	if _, ok := b.table[key]; ok {
		return fmt.Errorf("%w: (%v, %v)", ErrDuplicateComposite, g, f)
	}
	b.table[key] = gf

	return nil
}

// Build finalizes the category: unit entries are auto-filled, the table
// is checked for totality over all composable pairs, and the unit and
// associativity laws are certified. The Builder remains usable.
func (b *Builder[O, M]) Build() (*Fin[O, M], error) {
	fin := &Fin[O, M]{
		objects: append([]O(nil), b.objects...),
		arrows:  append([]M(nil), b.arrows...),
		ids:     make(map[O]M, len(b.ids)),
		dom:     make(map[M]O, len(b.dom)),
		cod:     make(map[M]O, len(b.cod)),
		table:   make(map[pair[M]]M, len(b.table)),
	}
	for o, id := range b.ids {
		fin.ids[o] = id
	}
	for m, o := range b.dom {
		fin.dom[m] = o
	}
	for m, o := range b.cod {
		fin.cod[m] = o
	}
	for k, v := range b.table {
		fin.table[k] = v
	}

	if err := fillUnits(fin); err != nil {
		return nil, err
	}
	if err := validateTable(fin); err != nil {
		return nil, err
	}

	return fin, nil
}

// FromFuncs tabulates a functional description of a finite category:
// declared objects and arrows, identity/endpoint projections, and a
// composition function invoked once per composable pair. The arrow set
// must be closed under composition and contain every identity; the
// resulting table is certified like Builder.Build output.
//
// Complexity: O(|arrows|²) compose calls plus O(|composable triples|)
// for the associativity check.
func FromFuncs[O comparable, M comparable](
	objects []O,
	arrows []M,
	identity func(O) M,
	dom func(M) O,
	cod func(M) O,
	compose func(g, f M) (M, error),
) (*Fin[O, M], error) {
	fin := &Fin[O, M]{
		ids:   make(map[O]M, len(objects)),
		dom:   make(map[M]O, len(arrows)),
		cod:   make(map[M]O, len(arrows)),
		table: make(map[pair[M]]M),
	}

	// --- 1. Objects and identities ---
	for _, o := range objects {
		if _, ok := fin.ids[o]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateObject, o)
		}
		fin.objects = append(fin.objects, o)
		fin.ids[o] = identity(o)
	}

	// --- 2. Arrows and endpoints ---
	for _, m := range arrows {
		if _, ok := fin.dom[m]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateArrow, m)
		}
		d, c := dom(m), cod(m)
		if _, ok := fin.ids[d]; !ok {
			return nil, fmt.Errorf("%w: dom(%v)=%v", ErrUnknownObject, m, d)
		}
		if _, ok := fin.ids[c]; !ok {
			return nil, fmt.Errorf("%w: cod(%v)=%v", ErrUnknownObject, m, c)
		}
		fin.arrows = append(fin.arrows, m)
		fin.dom[m] = d
		fin.cod[m] = c
	}
	for _, o := range fin.objects {
		id := fin.ids[o]
		if _, ok := fin.dom[id]; !ok {
			return nil, fmt.Errorf("%w: identity of %v", ErrMissingIdentity, o)
		}
		if fin.dom[id] != o || fin.cod[id] != o {
			return nil, fmt.Errorf("%w: identity of %v runs %v→%v", ErrIdentityLaw, o, fin.dom[id], fin.cod[id])
		}
	}

	// --- 3. Tabulate composition over composable pairs ---
	for _, f := range fin.arrows {
		for _, g := range fin.arrows {
			if fin.cod[f] != fin.dom[g] {
				continue
			}
			h, err := compose(g, f)
			if err != nil {
				return nil, fmt.Errorf("cat: compose(%v, %v): %w", g, f, err)
			}
			if _, ok := fin.dom[h]; !ok {
				return nil, fmt.Errorf("%w: composite %v of (%v, %v)", ErrUnknownArrow, h, g, f)
			}
			if fin.dom[h] != fin.dom[f] || fin.cod[h] != fin.cod[g] {
				return nil, fmt.Errorf("%w: %v∘%v = %v: %v→%v, want %v→%v",
					ErrCompositeEndpoints, g, f, h, fin.dom[h], fin.cod[h], fin.dom[f], fin.cod[g])
			}
			fin.table[pair[M]{g: g, f: f}] = h
		}
	}

	// --- 4. Certify the laws ---
	if err := validateTable(fin); err != nil {
		return nil, err
	}

	return fin, nil
}

// fillUnits inserts the unit-law entries id∘f = f and f∘id = f for every
// arrow, failing if a caller-declared entry contradicts them.
func fillUnits[O comparable, M comparable](fin *Fin[O, M]) error {
	for _, m := range fin.arrows {
		ida := fin.ids[fin.dom[m]]
		idb := fin.ids[fin.cod[m]]
		for _, e := range [...]struct {
			key  pair[M]
			want M
		}{
			{key: pair[M]{g: m, f: ida}, want: m},
			{key: pair[M]{g: idb, f: m}, want: m},
		} {
			if got, ok := fin.table[e.key]; ok {
				if got != e.want {
					return fmt.Errorf("%w: %v∘%v = %v, want %v", ErrIdentityLaw, e.key.g, e.key.f, got, e.want)
				}

				continue
			}
			fin.table[e.key] = e.want
		}
	}

	return nil
}

// validateTable certifies totality, unit laws, and associativity of a
// fully assembled table.
func validateTable[O comparable, M comparable](fin *Fin[O, M]) error {
	// Totality and unit laws.
	for _, f := range fin.arrows {
		for _, g := range fin.arrows {
			if fin.cod[f] != fin.dom[g] {
				continue
			}
			h, ok := fin.table[pair[M]{g: g, f: f}]
			if !ok {
				return fmt.Errorf("%w: no composite for (%v, %v)", ErrIncompleteTable, g, f)
			}
			if g == fin.ids[fin.dom[g]] && h != f {
				return fmt.Errorf("%w: id∘%v = %v", ErrIdentityLaw, f, h)
			}
			if f == fin.ids[fin.cod[f]] && h != g {
				return fmt.Errorf("%w: %v∘id = %v", ErrIdentityLaw, g, h)
			}
		}
	}

	// Associativity over all composable triples.
	for _, f := range fin.arrows {
		for _, g := range fin.arrows {
			if fin.cod[f] != fin.dom[g] {
				continue
			}
			gf := fin.table[pair[M]{g: g, f: f}]
			for _, h := range fin.arrows {
				if fin.cod[g] != fin.dom[h] {
					continue
				}
				hg := fin.table[pair[M]{g: h, f: g}]
				left := fin.table[pair[M]{g: h, f: gf}]
				right := fin.table[pair[M]{g: hg, f: f}]
				if left != right {
					return fmt.Errorf("%w: (%v∘%v)∘%v = %v, %v∘(%v∘%v) = %v",
						ErrNotAssociative, h, g, f, right, h, g, f, left)
				}
			}
		}
	}

	return nil
}
