package mergefunc

import "github.com/orizon-lang/orizon/internal/ir"

// compareGEP decides whether two GEPs are equivalent: they must yield the
// same byte offset from equivalent base values. When a data layout is
// available and both sides' indices are compile-time constant, equal
// accumulated offsets accept regardless of index shape (a [2]i32 step and
// an i64 step of the same byte count are interchangeable). Otherwise it
// falls back to requiring equal pointer-operand types and operand counts,
// enumerating each operand pair through the value enumerator.
func compareGEP(l, r *ir.GEP, fnL, fnR *ir.Function, state *ir.EnumState, layout ir.DataLayout) bool {
	if l.AddrSpace != r.AddrSpace {
		return false
	}

	if layout != nil {
		lOff, lOK := constantGEPOffset(l, layout)
		rOff, rOK := constantGEPOffset(r, layout)
		if lOK && rOK {
			return lOff == rOff && ir.Enumerate(state, l.Base, r.Base, fnL, fnR, layout)
		}
	}

	if !ir.IsEquivalentType(l.Base.Type(), r.Base.Type(), layout) {
		return false
	}
	if len(l.Indices) != len(r.Indices) {
		return false
	}
	if !ir.Enumerate(state, l.Base, r.Base, fnL, fnR, layout) {
		return false
	}
	for i := range l.Indices {
		if !ir.Enumerate(state, l.Indices[i], r.Indices[i], fnL, fnR, layout) {
			return false
		}
	}
	return true
}

func constantGEPOffset(g *ir.GEP, layout ir.DataLayout) (int64, bool) {
	if g.ElemTy == nil {
		return 0, false
	}
	consts := make([]*ir.Constant, len(g.Indices))
	for i, idx := range g.Indices {
		c, ok := idx.(*ir.Constant)
		if !ok {
			return 0, false
		}
		consts[i] = c
	}
	return layout.ConstantGEPOffset(g.ElemTy, consts)
}
