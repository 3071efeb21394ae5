// Package fixtures builds small, hand-constructed ir.Module values shared by
// the mergefunc test suite and the orizon-mergefunc CLI's run, list and
// batch commands, so neither has to maintain its own copy of the sample IR.
package fixtures

import "github.com/orizon-lang/orizon/internal/ir"

func i64() ir.Type  { return &ir.IntType{Bits: 64} }
func i1() ir.Type   { return &ir.IntType{Bits: 1} }
func ptr0() ir.Type { return &ir.PointerType{AddrSpace: 0} }

func intConst(n int64) *ir.Constant { return &ir.Constant{Kind: ir.ConstInt, Ty: i64(), Int: n} }

func newFn(name string, linkage ir.Linkage, ty *ir.FunctionType) *ir.Function {
	f := &ir.Function{Name: name, Linkage: linkage, Type: ty, UnnamedAddr: true}
	f.Params = make([]*ir.Argument, len(ty.Params))
	for i, pt := range ty.Params {
		f.Params[i] = &ir.Argument{Name: string(rune('a' + i)), Ty: pt, Index: i, Owner: f}
	}
	return f
}

func block(name string, parent *ir.Function, instrs ...ir.Instruction) *ir.BasicBlock {
	b := &ir.BasicBlock{Name: name, Parent: parent, Instrs: instrs}
	parent.Blocks = append(parent.Blocks, b)
	return b
}

// identityBody returns a three-instruction straight-line body ("t1 = x+0; t2
// = t1+0; ret t2") that passes x through unchanged. It exists purely to keep
// a function's single block above Function.Trivial's two-instruction floor,
// since a bare "ret x" would be too small to bother merging.
func identityBody(x ir.Value) []ir.Instruction {
	t1 := &ir.BinOp{DstName: "t1", Op: ir.BinAdd, LHS: x, RHS: intConst(0), Ty: i64()}
	t2 := &ir.BinOp{DstName: "t2", Op: ir.BinAdd, LHS: t1, RHS: intConst(0), Ty: i64()}
	return []ir.Instruction{t1, t2, &ir.Ret{Val: t2}}
}

// castIdentityBody is a type-generic counterpart of identityBody: two no-op
// bitcasts of v to its own type, then a return. PointerIntEquivalence
// builds both of its functions from it, so the two bodies differ only in
// the types involved.
func castIdentityBody(v ir.Value) []ir.Instruction {
	c1 := &ir.Cast{DstName: "c1", Op: ir.CastBitcast, Src: v, Ty: v.Type()}
	c2 := &ir.Cast{DstName: "c2", Op: ir.CastBitcast, Src: c1, Ty: v.Type()}
	return []ir.Instruction{c1, c2, &ir.Ret{Val: c2}}
}

// PointerIntEquivalence returns a module with two non-overridable functions
// differing only in whether their single argument and return value are
// typed as an address-space-0 pointer or an equally-wide integer — the
// textbook case the pointer-type relaxation exists for.
func PointerIntEquivalence() *ir.Module {
	m := &ir.Module{Name: "pointer_int_equivalence"}

	p := newFn("ptr_identity", ir.LinkageLocal, &ir.FunctionType{Ret: ptr0(), Params: []ir.Type{ptr0()}})
	block("entry", p, castIdentityBody(p.Params[0])...)

	n := newFn("int_identity", ir.LinkageLocal, &ir.FunctionType{Ret: i64(), Params: []ir.Type{i64()}})
	block("entry", n, castIdentityBody(n.Params[0])...)

	m.AddFunction(p)
	m.AddFunction(n)
	return m
}

// ThunkSynthesis returns a module like PointerIntEquivalence except the
// second function has external linkage and UnnamedAddr false. UnnamedAddr
// false makes it ineligible for alias synthesis (writeThunkOrAlias requires
// unnamed_addr), and external linkage keeps writeThunk from simply erasing
// it as an unused local, so the rewriter builds a thunk, exercising the
// argument/return Cast instructions a thunk body is built from.
func ThunkSynthesis() *ir.Module {
	m := &ir.Module{Name: "thunk_synthesis"}

	p := newFn("ptr_thunk_base", ir.LinkageLocal, &ir.FunctionType{Ret: ptr0(), Params: []ir.Type{ptr0()}})
	block("entry", p, castIdentityBody(p.Params[0])...)

	n := newFn("int_thunk_wrapped", ir.LinkageExternal, &ir.FunctionType{Ret: i64(), Params: []ir.Type{i64()}})
	n.UnnamedAddr = false
	block("entry", n, castIdentityBody(n.Params[0])...)

	m.AddFunction(p)
	m.AddFunction(n)
	return m
}

func diamondFn(name string) *ir.Function {
	f := newFn(name, ir.LinkageExternal, &ir.FunctionType{Ret: i64(), Params: []ir.Type{i64()}})
	entry := &ir.BasicBlock{Name: "entry", Parent: f}
	thenB := &ir.BasicBlock{Name: "then", Parent: f}
	elseB := &ir.BasicBlock{Name: "else", Parent: f}
	f.Blocks = []*ir.BasicBlock{entry, thenB, elseB}

	cond := &ir.Cmp{DstName: "cond", Pred: ir.CmpISGT, LHS: f.Params[0], RHS: intConst(0), Ty: i1()}
	entry.Instrs = []ir.Instruction{cond, &ir.CondBr{Cond: cond, True: thenB, False: elseB}}
	thenB.Instrs = []ir.Instruction{&ir.Ret{Val: intConst(1)}}
	elseB.Instrs = []ir.Instruction{&ir.Ret{Val: intConst(0)}}
	return f
}

// DiamondCFGDuplicate returns a module whose two non-overridable functions
// are exact, independently-constructed duplicates of a three-block diamond
// (a compare, a conditional branch, and two return paths), exercising
// compareBodies' CFG-ordered lockstep walk across multiple blocks rather
// than a single-block body.
func DiamondCFGDuplicate() *ir.Module {
	m := &ir.Module{Name: "diamond_duplicate"}
	m.AddFunction(diamondFn("sign_a"))
	m.AddFunction(diamondFn("sign_b"))
	return m
}

// NSWMismatchNonMerge returns a module whose two functions are identical
// except that one's addition carries the no-signed-wrap flag and the
// other's does not — CompareFunctions must reject the pair despite every
// other structural property matching.
func NSWMismatchNonMerge() *ir.Module {
	m := &ir.Module{Name: "nsw_mismatch"}
	ty := &ir.FunctionType{Ret: i64(), Params: []ir.Type{i64(), i64()}}

	plain := newFn("add_plain", ir.LinkageExternal, ty)
	pr := &ir.BinOp{DstName: "r", Op: ir.BinAdd, LHS: plain.Params[0], RHS: plain.Params[1], Ty: i64()}
	pr2 := &ir.BinOp{DstName: "r2", Op: ir.BinAdd, LHS: pr, RHS: intConst(0), Ty: i64()}
	block("entry", plain, pr, pr2, &ir.Ret{Val: pr2})

	nsw := newFn("add_nsw", ir.LinkageExternal, ty)
	nr := &ir.BinOp{DstName: "r", Op: ir.BinAdd, LHS: nsw.Params[0], RHS: nsw.Params[1], Ty: i64(), Flags: ir.OptionalFlags{NoSignedWrap: true}}
	nr2 := &ir.BinOp{DstName: "r2", Op: ir.BinAdd, LHS: nr, RHS: intConst(0), Ty: i64()}
	block("entry", nsw, nr, nr2, &ir.Ret{Val: nr2})

	m.AddFunction(plain)
	m.AddFunction(nsw)
	return m
}

// BothWeakWithAliases returns a module with two overridable (weak-linkage)
// functions of identical body, the case that drives Rewriter into
// synthesizing a fresh private function plus two aliases rather than a
// thunk.
func BothWeakWithAliases() *ir.Module {
	m := &ir.Module{Name: "both_weak"}
	ty := &ir.FunctionType{Ret: i64(), Params: []ir.Type{i64()}}

	a := newFn("weak_a", ir.LinkageWeak, ty)
	block("entry", a, identityBody(a.Params[0])...)

	b := newFn("weak_b", ir.LinkageWeak, ty)
	block("entry", b, identityBody(b.Params[0])...)

	m.AddFunction(a)
	m.AddFunction(b)
	return m
}

func selfRecursiveFn(name string) *ir.Function {
	f := newFn(name, ir.LinkageExternal, &ir.FunctionType{Ret: i64(), Params: []ir.Type{i64()}})
	entry := &ir.BasicBlock{Name: "entry", Parent: f}
	baseB := &ir.BasicBlock{Name: "base", Parent: f}
	recB := &ir.BasicBlock{Name: "rec", Parent: f}
	f.Blocks = []*ir.BasicBlock{entry, baseB, recB}

	cond := &ir.Cmp{DstName: "base_cond", Pred: ir.CmpIEQ, LHS: f.Params[0], RHS: intConst(0), Ty: i1()}
	entry.Instrs = []ir.Instruction{cond, &ir.CondBr{Cond: cond, True: baseB, False: recB}}
	baseB.Instrs = []ir.Instruction{&ir.Ret{Val: intConst(0)}}

	dec := &ir.BinOp{DstName: "dec", Op: ir.BinSub, LHS: f.Params[0], RHS: intConst(1), Ty: i64()}
	call := &ir.Call{DstName: "r", Callee: &ir.GlobalRef{Name: name, Ty: f.Type, Fn: f}, Args: []ir.Value{dec}, Ty: i64()}
	recB.Instrs = []ir.Instruction{dec, call, &ir.Ret{Val: call}}
	return f
}

// SelfRecursive returns a module with two non-overridable functions that
// each call themselves directly, otherwise identical: the case that proves
// the value enumerator's self-reference symmetry rule, since a naive
// bijection would try (and fail) to unify the two distinct function symbols
// as ordinary operand values.
func SelfRecursive() *ir.Module {
	m := &ir.Module{Name: "self_recursive"}
	m.AddFunction(selfRecursiveFn("countdown_f"))
	m.AddFunction(selfRecursiveFn("countdown_g"))
	return m
}

// ThreeFunctionChain returns a module with one non-overridable function and
// two overridable ones, all with identical bodies — exercising the driver's
// two-subpass-per-iteration ordering: the non-overridable function must end
// up as the kept body both overridable ones fold into.
func ThreeFunctionChain() *ir.Module {
	m := &ir.Module{Name: "three_function_chain"}
	ty := &ir.FunctionType{Ret: i64(), Params: []ir.Type{i64()}}

	a := newFn("chain_a", ir.LinkageExternal, ty)
	block("entry", a, identityBody(a.Params[0])...)

	b := newFn("chain_b", ir.LinkageWeak, ty)
	block("entry", b, identityBody(b.Params[0])...)

	c := newFn("chain_c", ir.LinkageWeak, ty)
	block("entry", c, identityBody(c.Params[0])...)

	m.AddFunction(a)
	m.AddFunction(b)
	m.AddFunction(c)
	return m
}

// All returns every named scenario, keyed by the name the CLI's --scenario
// flag accepts.
func All() map[string]func() *ir.Module {
	return map[string]func() *ir.Module{
		"pointer-int-equivalence": PointerIntEquivalence,
		"thunk-synthesis":         ThunkSynthesis,
		"diamond-duplicate":       DiamondCFGDuplicate,
		"nsw-mismatch":            NSWMismatchNonMerge,
		"both-weak-aliases":       BothWeakWithAliases,
		"self-recursive":          SelfRecursive,
		"three-function-chain":    ThreeFunctionChain,
	}
}
