package shape

import (
	"fmt"
	"sort"

	"github.com/blaster151/catlim/cat"
)

// FromPoset builds the thin category of a finite poset described by its
// cover relation: covers[x] lists the elements immediately above x, and
// the order is the reflexive-transitive closure. The carrier is every
// name appearing as a key or a cover, enumerated in sorted order; the
// arrow from x to a strictly greater y is named "x≤y". Composition
// pairs endpoints: "y≤z" ∘ "x≤y" = "x≤z".
//
// A cover relation whose closure relates two distinct elements both
// ways (or an element strictly to itself) is not a poset and fails with
// ErrNotAPoset.
func FromPoset(covers map[string][]string) (*cat.Fin[string, string], error) {
	// --- 1. carrier, sorted ---
	seen := make(map[string]bool)
	for x, ys := range covers {
		seen[x] = true
		for _, y := range ys {
			seen[y] = true
		}
	}
	objects := make([]string, 0, len(seen))
	for x := range seen {
		objects = append(objects, x)
	}
	sort.Strings(objects)

	// --- 2. strict reachability by wavefront expansion ---
	reach := make(map[string]map[string]bool, len(objects))
	for _, x := range objects {
		above := make(map[string]bool)
		stack := append([]string(nil), covers[x]...)
		for len(stack) > 0 {
			y := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if above[y] {
				continue
			}
			above[y] = true
			stack = append(stack, covers[y]...)
		}
		reach[x] = above
	}

	// a two-way reachable pair closes a cycle through x
	for _, x := range objects {
		if reach[x][x] {
			return nil, fmt.Errorf("%w: %s is strictly above itself", ErrNotAPoset, x)
		}
	}

	// --- 3. assemble the thin category ---
	b := cat.NewBuilder[string, string]()
	for _, x := range objects {
		if err := b.AddObject(x, "id:"+x); err != nil {
			return nil, err
		}
	}
	for _, x := range objects {
		for _, y := range objects {
			if !reach[x][y] {
				continue
			}
			if err := b.AddArrow(le(x, y), x, y); err != nil {
				return nil, err
			}
		}
	}
	for _, x := range objects {
		for _, y := range objects {
			if !reach[x][y] {
				continue
			}
			for _, z := range objects {
				if !reach[y][z] {
					continue
				}
				if err := b.SetComposite(le(y, z), le(x, y), le(x, z)); err != nil {
					return nil, err
				}
			}
		}
	}

	return b.Build()
}

func le(x, y string) string { return x + "≤" + y }
