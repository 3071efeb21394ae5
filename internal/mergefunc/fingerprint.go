package mergefunc

import (
	"hash/fnv"

	"github.com/orizon-lang/orizon/internal/ir"
)

// Fingerprint computes a coarse, cheap-to-compute hash: it MUST be stable
// under the equivalence relation (equal for any two functions
// CompareFunctions would accept), but need not
// distinguish functions that are not equivalent. It buckets candidates in
// the dedup set before the expensive full comparator ever runs.
func Fingerprint(fn *ir.Function, layout ir.DataLayout) uint64 {
	h := fnv.New64a()
	write := func(n int) {
		var b [8]byte
		for i := range b {
			b[i] = byte(n)
			n >>= 8
		}
		h.Write(b[:])
	}

	write(len(fn.Blocks))
	write(int(fn.CallConv))
	write(boolInt(fn.HasGC))
	write(boolInt(fn.Type.Variadic))
	write(int(coercedKind(fn.Type.Ret, layout)))
	for _, p := range fn.Type.Params {
		write(int(coercedKind(p, layout)))
	}

	return h.Sum64()
}

// coercedKind returns a type's Kind, substituting an address-space-0
// pointer's kind with the integer kind so two functions differing only in
// pointer parameter/return types land in the same fingerprint bucket.
func coercedKind(t ir.Type, layout ir.DataLayout) ir.TypeKind {
	if layout == nil {
		return t.Kind()
	}
	if p, ok := t.(*ir.PointerType); ok && p.AddrSpace == 0 {
		return layout.IntPtrType().Kind()
	}
	return t.Kind()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
