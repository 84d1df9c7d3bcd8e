package cat

import "errors"

// Sentinel errors shared across the package.
var (
	// ErrNilCategory is returned when a nil Category value is passed.
	ErrNilCategory = errors.New("cat: category is nil")

	// ErrUnknownObject is returned when an object is not in the category.
	ErrUnknownObject = errors.New("cat: object not in category")

	// ErrUnknownArrow is returned when an arrow is not in the category.
	ErrUnknownArrow = errors.New("cat: arrow not in category")

	// ErrNotComposable is returned by Compose when Cod(f) ≠ Dom(g).
	ErrNotComposable = errors.New("cat: arrows not composable")

	// ErrDuplicateObject is returned when an object is added twice.
	ErrDuplicateObject = errors.New("cat: duplicate object")

	// ErrDuplicateArrow is returned when an arrow value is added twice.
	ErrDuplicateArrow = errors.New("cat: duplicate arrow")

	// ErrDuplicateComposite is returned when a composite is declared twice
	// for the same composable pair.
	ErrDuplicateComposite = errors.New("cat: duplicate composite declaration")

	// ErrMissingIdentity is returned by FromFuncs when the declared arrow
	// set lacks the identity of a declared object.
	ErrMissingIdentity = errors.New("cat: identity arrow not among declared arrows")

	// ErrIncompleteTable is returned when a composable pair of arrows has
	// no declared composite.
	ErrIncompleteTable = errors.New("cat: composition table incomplete")

	// ErrCompositeEndpoints is returned when a declared composite does not
	// run from Dom(f) to Cod(g).
	ErrCompositeEndpoints = errors.New("cat: composite endpoints mismatch")

	// ErrIdentityLaw is returned when a declared composite contradicts a
	// unit law (id∘f ≠ f or f∘id ≠ f).
	ErrIdentityLaw = errors.New("cat: identity law violated")

	// ErrNotAssociative is returned when the composition table fails
	// associativity on some composable triple.
	ErrNotAssociative = errors.New("cat: composition not associative")
)

// Category is the finite-category contract consumed by every algorithm in
// this module. Implementations promise:
//
//   - Objects and Arrows return complete enumerations in a stable order
//     (the same order on every call).
//   - Identity is defined exactly on enumerated objects and errors with
//     ErrUnknownObject otherwise.
//   - Compose is partial: it returns g∘f when Cod(f) == Dom(g) and an
//     error wrapping ErrNotComposable otherwise.
//   - Eq decides morphism equality; no caller may compare M values with
//     == instead.
//   - Dom and Cod are total on enumerated arrows.
//
// Object values are canonical representatives: they are compared with ==
// and used as map keys.
type Category[O comparable, M any] interface {
	Objects() []O
	Arrows() []M
	Identity(o O) (M, error)
	Compose(g, f M) (M, error)
	Eq(a, b M) bool
	Dom(m M) O
	Cod(m M) O
}

// HomEnumerator is an optional fast path for hom-set enumeration.
// Categories whose arrows are cheap to enumerate per endpoint pair (for
// example a finite-set category, whose total arrow count is exponential
// while a single hom-set is small) implement it to spare Hom the full
// Arrows() scan.
type HomEnumerator[O comparable, M any] interface {
	Hom(from, to O) []M
}

// Hom returns every arrow from → to, in the category's enumeration
// order. It uses the HomEnumerator fast path when the category provides
// one and otherwise scans Arrows().
//
// Complexity: O(|hom(from,to)|) on the fast path, O(|Arrows|) otherwise.
func Hom[O comparable, M any](c Category[O, M], from, to O) []M {
	if he, ok := c.(HomEnumerator[O, M]); ok {
		return he.Hom(from, to)
	}
	var out []M
	for _, m := range c.Arrows() {
		if c.Dom(m) == from && c.Cod(m) == to {
			out = append(out, m)
		}
	}

	return out
}

// HasObject reports whether o is among c's enumerated objects.
//
// Complexity: O(|Objects|).
func HasObject[O comparable, M any](c Category[O, M], o O) bool {
	for _, x := range c.Objects() {
		if x == o {
			return true
		}
	}

	return false
}
