// Package mergefunc implements the core of a module-level function-merging
// optimization pass: an equivalence oracle over a pair of functions, a
// dedup engine that schedules and re-evaluates candidate pairs, and a
// rewriter that folds an equivalent pair via call-site redirection, a
// forwarding thunk, or a symbol alias.
package mergefunc

import "github.com/orizon-lang/orizon/internal/ir"

// compareInstructionShape implements the opcode-agnostic half of the
// instruction comparator: opcode, operand count, result type, and the
// sub-class optional-data flags (wrap/exact/fast-math/tail) that apply
// regardless of opcode. It does not enumerate operand values — that is the
// function comparator's job, driving the value enumerator over the operand
// pairs this function confirms have matching types and counts.
func compareInstructionShape(l, r ir.Instruction, layout ir.DataLayout) bool {
	if l.Opcode() != r.Opcode() {
		return false
	}
	lo, ro := l.Operands(), r.Operands()
	if len(lo) != len(ro) {
		return false
	}
	if !ir.IsEquivalentType(l.Result(), r.Result(), layout) {
		return false
	}
	if !optionalFlagsOf(l).Equal(optionalFlagsOf(r)) {
		return false
	}
	for i := range lo {
		if !ir.IsEquivalentType(lo[i].Type(), ro[i].Type(), layout) {
			return false
		}
	}
	return compareOpcodeSpecific(l, r)
}

func optionalFlagsOf(instr ir.Instruction) ir.OptionalFlags {
	switch i := instr.(type) {
	case *ir.BinOp:
		return i.Flags
	case *ir.Call:
		return ir.OptionalFlags{Tail: i.Tail}
	default:
		return ir.OptionalFlags{}
	}
}

// compareOpcodeSpecific checks the per-opcode agreement required beyond the
// generic shape check: load/store ordering and volatility, compare
// predicates, call convention and attributes, insert/extract index paths,
// fence ordering, and the two atomic instruction families. GEP is
// deliberately excluded here; it is routed to the dedicated GEP comparator
// by the function comparator's body walk instead.
func compareOpcodeSpecific(l, r ir.Instruction) bool {
	switch lv := l.(type) {
	case *ir.BinOp:
		rv := r.(*ir.BinOp)
		return lv.Op == rv.Op
	case *ir.Load:
		rv := r.(*ir.Load)
		return lv.Volatile == rv.Volatile &&
			lv.Align == rv.Align &&
			lv.Ordering == rv.Ordering &&
			lv.SyncScope == rv.SyncScope
	case *ir.Store:
		rv := r.(*ir.Store)
		return lv.Volatile == rv.Volatile &&
			lv.Align == rv.Align &&
			lv.Ordering == rv.Ordering &&
			lv.SyncScope == rv.SyncScope
	case *ir.Cmp:
		rv := r.(*ir.Cmp)
		return lv.Pred == rv.Pred
	case *ir.Cast:
		rv := r.(*ir.Cast)
		return lv.Op == rv.Op
	case *ir.Call:
		rv := r.(*ir.Call)
		return lv.CallConv == rv.CallConv && lv.Attrs.Equal(rv.Attrs)
	case *ir.InsertValue:
		rv := r.(*ir.InsertValue)
		return equalIndices(lv.Indices, rv.Indices)
	case *ir.ExtractValue:
		rv := r.(*ir.ExtractValue)
		return equalIndices(lv.Indices, rv.Indices)
	case *ir.Fence:
		rv := r.(*ir.Fence)
		return lv.Ordering == rv.Ordering && lv.SyncScope == rv.SyncScope
	case *ir.AtomicCmpXchg:
		rv := r.(*ir.AtomicCmpXchg)
		return lv.Volatile == rv.Volatile &&
			lv.SuccessOrder == rv.SuccessOrder &&
			lv.FailureOrder == rv.FailureOrder &&
			lv.SyncScope == rv.SyncScope
	case *ir.AtomicRMW:
		rv := r.(*ir.AtomicRMW)
		return lv.Op == rv.Op &&
			lv.Volatile == rv.Volatile &&
			lv.Ordering == rv.Ordering &&
			lv.SyncScope == rv.SyncScope
	case *ir.Alloca:
		rv := r.(*ir.Alloca)
		return ir.IsEquivalentType(lv.ElemTy, rv.ElemTy, nil)
	case *ir.Switch:
		// Case values are compared here; case-target agreement is handled
		// by the body walk's successor-ordering check.
		rv := r.(*ir.Switch)
		if len(lv.Cases) != len(rv.Cases) {
			return false
		}
		for i := range lv.Cases {
			if !lv.Cases[i].Val.Identical(rv.Cases[i].Val) {
				return false
			}
		}
		return true
	default:
		// Br, CondBr, Ret, Unreachable carry no further sub-class data
		// beyond what compareInstructionShape already checked.
		return true
	}
}

func equalIndices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
