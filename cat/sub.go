// Non-mutating full-subcategory views over an object subset.

package cat

import "fmt"

// Full is the full subcategory of a base category induced by an object
// subset: it keeps exactly the arrows whose endpoints both survive, and
// delegates identity, composition, equality, and endpoint projection to
// the base. Full subcategories are automatically closed under identity
// and composition, so the view is a lawful category whenever the base
// is. The base is not mutated; the view snapshots its enumerations at
// construction.
type Full[O comparable, M any] struct {
	base    Category[O, M]
	objects []O
	arrows  []M
	keep    map[O]struct{}
}

// FullSub builds the full subcategory of base on the given objects,
// preserving base enumeration order for arrows and the given order
// (deduplicated) for objects. Unknown objects are a configuration error.
//
// Complexity: O(|objects| + |arrows|).
func FullSub[O comparable, M any](base Category[O, M], objects []O) (*Full[O, M], error) {
	if base == nil {
		return nil, ErrNilCategory
	}
	sub := &Full[O, M]{
		base: base,
		keep: make(map[O]struct{}, len(objects)),
	}
	for _, o := range objects {
		if !HasObject(base, o) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownObject, o)
		}
		if _, ok := sub.keep[o]; ok {
			continue
		}
		sub.keep[o] = struct{}{}
		sub.objects = append(sub.objects, o)
	}
	for _, m := range base.Arrows() {
		if _, ok := sub.keep[base.Dom(m)]; !ok {
			continue
		}
		if _, ok := sub.keep[base.Cod(m)]; !ok {
			continue
		}
		sub.arrows = append(sub.arrows, m)
	}

	return sub, nil
}

// Objects returns the kept objects in subset order. The slice is a copy.
func (s *Full[O, M]) Objects() []O {
	out := make([]O, len(s.objects))
	copy(out, s.objects)

	return out
}

// Arrows returns the surviving arrows in base enumeration order. The
// slice is a copy.
func (s *Full[O, M]) Arrows() []M {
	out := make([]M, len(s.arrows))
	copy(out, s.arrows)

	return out
}

// Identity delegates to the base after a membership guard.
func (s *Full[O, M]) Identity(o O) (M, error) {
	if _, ok := s.keep[o]; !ok {
		var zero M
		return zero, fmt.Errorf("%w: %v", ErrUnknownObject, o)
	}

	return s.base.Identity(o)
}

// Compose delegates to the base; full subcategories are composition
// closed, so the composite stays inside the view.
func (s *Full[O, M]) Compose(g, f M) (M, error) { return s.base.Compose(g, f) }

// Eq delegates to the base equality oracle.
func (s *Full[O, M]) Eq(a, b M) bool { return s.base.Eq(a, b) }

// Dom delegates to the base.
func (s *Full[O, M]) Dom(m M) O { return s.base.Dom(m) }

// Cod delegates to the base.
func (s *Full[O, M]) Cod(m M) O { return s.base.Cod(m) }
