package mergefunc

import (
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/orizon-lang/orizon/internal/ir"
)

// FnSet is the dedup set: a hash-set whose hash is the fingerprint and
// whose equality is the full function comparator. Buckets hold every
// candidate sharing a fingerprint, since the fingerprint need not
// distinguish non-equivalent functions.
//
// This pass's own driver is single-threaded, but an embedding
// pass manager may run several module-level passes concurrently against
// independent FnSet instances; the singleflight.Group here collapses
// concurrent probes that land on the same fingerprint bucket of the *same*
// FnSet into one comparator run rather than N redundant ones — a
// call-collapsing optimization, not a correctness requirement, since the
// map mutation below is otherwise unguarded and this type is not meant to
// be shared across goroutines beyond that collapsing.
type FnSet struct {
	layout  ir.DataLayout
	buckets map[uint64][]*ir.Function
	sf      singleflight.Group
}

// NewFnSet returns an empty dedup set that compares candidates under the
// given (optional) data layout.
func NewFnSet(layout ir.DataLayout) *FnSet {
	return &FnSet{layout: layout, buckets: make(map[uint64][]*ir.Function)}
}

// Probe looks for a function already in the set that CompareFunctions
// accepts as equivalent to fn. On a hit, it returns the existing function
// and true; fn is NOT inserted (the caller should merge fn into the hit).
// On a miss, fn is inserted and Probe returns (nil, false).
func (s *FnSet) Probe(fn *ir.Function) (*ir.Function, bool) {
	fp := Fingerprint(fn, s.layout)
	key := strconv.FormatUint(fp, 10)

	hit, _, _ := s.sf.Do(key, func() (interface{}, error) {
		for _, cand := range s.buckets[fp] {
			if CompareFunctions(cand, fn, s.layout) {
				return cand, nil
			}
		}
		return nil, nil
	})

	if hit != nil {
		return hit.(*ir.Function), true
	}
	s.buckets[fp] = append(s.buckets[fp], fn)
	return nil, false
}

// Remove erases precisely fn from the set, by pointer identity, so that
// removal never accidentally erases some other function the full
// comparator would deem equivalent to fn. The driver uses it on each
// function whose body a merge has just rewritten, so that function is
// re-examined in the next iteration instead of staying resident.
func (s *FnSet) Remove(fn *ir.Function) {
	fp := Fingerprint(fn, s.layout)
	bucket := s.buckets[fp]
	for i, cand := range bucket {
		if cand == fn {
			s.buckets[fp] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// Contains reports whether fn is present in the set by pointer identity.
func (s *FnSet) Contains(fn *ir.Function) bool {
	for _, cand := range s.buckets[Fingerprint(fn, s.layout)] {
		if cand == fn {
			return true
		}
	}
	return false
}

// Clear empties the set, matching the driver's end-of-run cleanup.
func (s *FnSet) Clear() {
	s.buckets = make(map[uint64][]*ir.Function)
}
