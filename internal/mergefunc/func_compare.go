package mergefunc

import "github.com/orizon-lang/orizon/internal/ir"

// CompareFunctions decides whether fnL and fnR are observationally
// equivalent under the pointer-equivalence relaxation.
//
// The prologue checks below run in a fixed order and short-circuit on the
// first mismatch. Argument enumeration then pairs
// formals positionally through a fresh value-enumeration state, and the
// body walk drives a CFG walk in lockstep from the two entry blocks,
// dispatching each instruction pair to the GEP comparator or the generic
// instruction comparator and enumerating every operand.
func CompareFunctions(fnL, fnR *ir.Function, layout ir.DataLayout) bool {
	if !paramAttrsEqual(fnL, fnR) {
		return false
	}
	if fnL.HasGC != fnR.HasGC || (fnL.HasGC && fnL.GC != fnR.GC) {
		return false
	}
	if fnL.HasSection != fnR.HasSection || (fnL.HasSection && fnL.Section != fnR.Section) {
		return false
	}
	if fnL.Type.Variadic != fnR.Type.Variadic {
		return false
	}
	if fnL.CallConv != fnR.CallConv {
		return false
	}
	if !ir.IsEquivalentType(fnL.Type, fnR.Type, layout) {
		return false
	}

	if len(fnL.Params) != len(fnR.Params) {
		return false
	}

	state := ir.NewEnumState()
	for i := range fnL.Params {
		if !ir.Enumerate(state, fnL.Params[i], fnR.Params[i], fnL, fnR, layout) {
			return false
		}
	}

	return compareBodies(fnL, fnR, state, layout)
}

func paramAttrsEqual(fnL, fnR *ir.Function) bool {
	if len(fnL.ParamAttrs) != len(fnR.ParamAttrs) {
		return false
	}
	for i := range fnL.ParamAttrs {
		if !fnL.ParamAttrs[i].Equal(fnR.ParamAttrs[i]) {
			return false
		}
	}
	return true
}

type blockPair struct{ l, r *ir.BasicBlock }

// compareBodies performs a CFG-ordered lockstep walk. Blocks are explored
// in the order pushed by terminator successor index; the visited set is
// keyed by the left block, and the right walk is driven purely by the left
// walk's successor ordering, so a successor-count mismatch is detected
// structurally (as a negative answer, not a fatal assertion) rather than by
// ever needing to look at the right block's own successor list
// independently.
func compareBodies(fnL, fnR *ir.Function, state *ir.EnumState, layout ir.DataLayout) bool {
	if fnL.IsDeclaration() || fnR.IsDeclaration() {
		return fnL.IsDeclaration() && fnR.IsDeclaration()
	}

	queue := []blockPair{{fnL.Blocks[0], fnR.Blocks[0]}}
	visited := make(map[*ir.BasicBlock]bool)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if !ir.Enumerate(state, p.l, p.r, fnL, fnR, layout) {
			return false
		}
		if visited[p.l] {
			continue
		}
		visited[p.l] = true

		if !compareBlockInstructions(p.l, p.r, fnL, fnR, state, layout) {
			return false
		}

		succL, succR := p.l.Successors(), p.r.Successors()
		if len(succL) != len(succR) {
			return false
		}
		for i := range succL {
			queue = append(queue, blockPair{succL[i], succR[i]})
		}
	}
	return true
}

func compareBlockInstructions(l, r *ir.BasicBlock, fnL, fnR *ir.Function, state *ir.EnumState, layout ir.DataLayout) bool {
	if len(l.Instrs) != len(r.Instrs) {
		return false
	}
	for i := range l.Instrs {
		li, ri := l.Instrs[i], r.Instrs[i]

		gl, lIsGEP := li.(*ir.GEP)
		gr, rIsGEP := ri.(*ir.GEP)
		if lIsGEP || rIsGEP {
			if !lIsGEP || !rIsGEP {
				return false
			}
			if !compareGEP(gl, gr, fnL, fnR, state, layout) {
				return false
			}
		} else {
			if !compareInstructionShape(li, ri, layout) {
				return false
			}
			lo, ro := li.Operands(), ri.Operands()
			for j := range lo {
				if !ir.Enumerate(state, lo[j], ro[j], fnL, fnR, layout) {
					return false
				}
			}
		}

		if li.Dst() != "" {
			if !ir.Enumerate(state, li, ri, fnL, fnR, layout) {
				return false
			}
		}
	}
	return true
}
