package closure

import (
	"fmt"

	"github.com/blaster151/catlim/cat"
)

// orderedPair keys arrows by their endpoints for the thinness check.
type orderedPair[I comparable] struct {
	from, to I
}

// pathNode pairs a reached object with the composite arrow and image
// accumulated along its shortest cover path.
type pathNode[I comparable, A comparable, M any] struct {
	obj I
	arr A
	img M
}

// pathWalker encapsulates mutable breadth-first state for one start
// object.
type pathWalker[I comparable, A comparable, O comparable, M any] struct {
	st      *state[I, A, O, M]
	out     map[I][]A
	queue   []pathNode[I, A, M]
	visited map[I]struct{}
}

// Saturate extends the seed along shortest cover paths instead of
// materialising the pairwise fixed point: from every seed object it
// walks the seed (cover) arrows breadth-first, composing both the
// ambient arrow and the base image along each path. The ambient must be
// thin (at most one arrow per ordered object pair), because path
// composition in a thin category cannot depend on the route taken.
//
// Trust mode: unlike Close, Saturate never cross-checks alternative
// paths. The first derivation of an arrow wins and later ones are
// skipped, never compared. Use it only when no two cover paths between
// the same objects can disagree; Result.Diagram re-validates
// functoriality and fails on abuse.
//
// Complexity: O(|objects| · (|objects| + |covers|)) compose calls.
func Saturate[I comparable, A comparable, O comparable, M any](
	ambient cat.Category[I, A],
	base cat.Category[O, M],
	seed Seed[I, A, O, M],
	opts ...Option,
) (*Result[I, A, O, M], error) {
	st, err := newState(ambient, base, seed, opts)
	if err != nil {
		return nil, err
	}

	// --- 1. thinness guard ---
	seen := make(map[orderedPair[I]]A)
	for _, a := range ambient.Arrows() {
		p := orderedPair[I]{from: ambient.Dom(a), to: ambient.Cod(a)}
		if prev, ok := seen[p]; ok {
			return nil, fmt.Errorf("%w: %v and %v both run %v→%v",
				ErrAmbientNotThin, prev, a, p.from, p.to)
		}
		seen[p] = a
	}

	// --- 2. cover adjacency in seed order ---
	out := make(map[I][]A, len(st.objects))
	covered := make(map[A]struct{}, len(seed.Arrows))
	for _, sa := range seed.Arrows {
		if _, ok := covered[sa.Arrow]; ok {
			continue
		}
		covered[sa.Arrow] = struct{}{}
		from := ambient.Dom(sa.Arrow)
		out[from] = append(out[from], sa.Arrow)
	}

	// --- 3. breadth-first path composition from every seed object ---
	for _, start := range st.objects {
		select {
		case <-st.opts.Ctx.Done():
			return nil, fmt.Errorf("closure: cancelled: %w", st.opts.Ctx.Err())
		default:
		}

		w := &pathWalker[I, A, O, M]{
			st:      st,
			out:     out,
			visited: map[I]struct{}{start: {}},
		}
		id := st.ids[start]
		w.queue = append(w.queue, pathNode[I, A, M]{obj: start, arr: id, img: st.images[id]})
		if err := w.loop(); err != nil {
			return nil, err
		}
	}

	return st.result(), nil
}

// loop processes the queue until empty, extending each reached node by
// every outgoing cover.
func (w *pathWalker[I, A, O, M]) loop() error {
	for len(w.queue) > 0 {
		nd := w.queue[0]
		w.queue = w.queue[1:]
		for _, cov := range w.out[nd.obj] {
			to := w.st.ambient.Cod(cov)
			if _, ok := w.visited[to]; ok {
				continue
			}
			w.visited[to] = struct{}{}

			arr, err := w.st.ambient.Compose(cov, nd.arr)
			if err != nil {
				return fmt.Errorf("closure: ambient compose %v∘%v: %w", cov, nd.arr, err)
			}
			img, err := w.st.base.Compose(w.st.images[cov], nd.img)
			if err != nil {
				return fmt.Errorf("closure: base compose at %v: %w", arr, err)
			}
			// First derivation wins. Re-reaching a known arrow along a
			// different start's tree is skipped, not compared.
			if _, ok := w.st.images[arr]; !ok {
				if w.st.opts.ArrowBound > 0 && len(w.st.arrows)+1 > w.st.opts.ArrowBound {
					return fmt.Errorf("%w: bound %d", ErrArrowBoundExceeded, w.st.opts.ArrowBound)
				}
				w.st.images[arr] = img
				w.st.arrows = append(w.st.arrows, arr)
			}
			w.queue = append(w.queue, pathNode[I, A, M]{obj: to, arr: arr, img: img})
		}
	}

	return nil
}
