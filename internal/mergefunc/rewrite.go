package mergefunc

import (
	"strconv"

	"github.com/orizon-lang/orizon/internal/errors"
	"github.com/orizon-lang/orizon/internal/ir"
)

// Rewriter applies the three merge strategies once CompareFunctions
// has accepted a pair as equivalent. It holds no state of its own between
// calls; Module, Target and Stats are the only collaborators it needs.
type Rewriter struct {
	Module *ir.Module
	Target *ir.Target
	Stats  *Stats
}

// Merge folds newFn into kept and removes newFn from the Module, except
// when both are overridable and the target has no alias support: then only
// newFn's direct callers are redirected onto kept and both bodies stay in
// the Module. It does nothing for a trivial newFn. kept must
// be the function that was already resident in the dedup set and newFn the
// one whose probe just landed a hit against it — the driver's
// non-overridable-then-overridable subpass ordering is what guarantees
// kept is never overridable while newFn is not, the same way
// this is guaranteed by insertion order rather than by a local swap in the
// pass this one is ported from. Merge panics via
// errors.InvariantViolation if that precondition is violated, since a
// caller reaching this state has a driver bug, not a recoverable input
// error.
//
// It returns every function whose body was rewritten as a side effect
// (callers retargeted onto a new callee), which the driver must re-queue
// for re-examination since their fingerprints may now differ.
func (rw *Rewriter) Merge(kept, newFn *ir.Function) []*ir.Function {
	if kept.Overridable() && !newFn.Overridable() {
		panic(errors.InvariantViolation("mergefunc.Rewriter.Merge",
			"never thunk a non-overridable function to an overridable one"))
	}
	if newFn.Trivial() {
		return nil
	}

	var invalidated []*ir.Function
	if kept.Overridable() {
		invalidated = rw.mergeBothOverridable(kept, newFn)
	} else {
		invalidated = rw.writeThunkOrAlias(kept, newFn)
	}

	rw.Stats.FunctionsMerged++
	return invalidated
}

// mergeBothOverridable implements the "both overridable" merge strategy. When
// the target supports aliases, both kept and newFn become aliases to a
// single private function holding the merged body: kept keeps its storage
// (so existing internal references stay valid without a rewrite pass over
// every operand) but gives up its external name, which is handed to an
// alias of its own so externally-visible symbol resolution is preserved;
// newFn's name becomes a second alias to the same body. When the target
// cannot express aliases, the only available move is redirecting newFn's
// direct callers onto kept and leaving both bodies in place.
func (rw *Rewriter) mergeBothOverridable(kept, newFn *ir.Function) []*ir.Function {
	if rw.Target == nil || !rw.Target.SupportsAliases() {
		return ReplaceDirectCallers(rw.Module, newFn, kept)
	}

	oldName := kept.Name
	maxAlign := newFn.Alignment
	if kept.Alignment > maxAlign {
		maxAlign = kept.Alignment
	}

	invalidated := ReplaceDirectCallers(rw.Module, newFn, kept)

	rw.writeAlias(newFn.Name, newFn.Visibility, kept)
	rw.Module.EraseFunction(newFn)

	if oldName != "" {
		rw.writeAlias(oldName, kept.Visibility, kept)
		kept.Name = ""
	}

	kept.Alignment = maxAlign
	kept.Linkage = ir.LinkagePrivate

	return invalidated
}

// writeThunkOrAlias implements the "kept non-overridable" merge strategy:
// prefer an alias when the target supports one and newFn's linkage and
// unnamed_addr flag make an alias observationally safe, falling back to
// thunk synthesis otherwise.
func (rw *Rewriter) writeThunkOrAlias(kept, newFn *ir.Function) []*ir.Function {
	if rw.Target != nil && rw.Target.SupportsAliases() && newFn.UnnamedAddr &&
		(newFn.Linkage == ir.LinkageExternal || newFn.Linkage == ir.LinkageLocal || newFn.Linkage == ir.LinkageWeak) {
		return rw.writeAliasReplacing(kept, newFn)
	}
	return rw.writeThunk(kept, newFn)
}

func (rw *Rewriter) writeAliasReplacing(kept, newFn *ir.Function) []*ir.Function {
	invalidated := ReplaceDirectCallers(rw.Module, newFn, kept)
	name, vis, align := newFn.Name, newFn.Visibility, newFn.Alignment
	rw.Module.EraseFunction(newFn)
	rw.writeAlias(name, vis, kept)
	if align > kept.Alignment {
		kept.Alignment = align
	}
	return invalidated
}

func (rw *Rewriter) writeAlias(name string, vis ir.Visibility, target *ir.Function) *ir.GlobalAlias {
	al := rw.Module.NewAlias(name, target.Type, target)
	al.Visibility = vis
	rw.Stats.AliasesGenerated++
	return al
}

// writeThunk implements the thunk-synthesis strategy: newFn's
// direct callers, if any and if newFn is itself non-overridable, are
// redirected onto kept first; if that left newFn with no uses at all (it
// had only direct callers and local linkage), there is nothing left to
// call the thunk and newFn is simply erased. Otherwise a fresh function
// replaces newFn with newFn's exact signature, linkage and attributes, whose
// sole body is a tail call to kept with each argument and the return value
// cast across the two signatures as needed, then assumes newFn's name and
// every remaining use of newFn.
func (rw *Rewriter) writeThunk(kept, newFn *ir.Function) []*ir.Function {
	var invalidated []*ir.Function
	if !newFn.Overridable() {
		invalidated = ReplaceDirectCallers(rw.Module, newFn, kept)
	}

	if newFn.Linkage == ir.LinkageLocal && !hasAnyUse(rw.Module, newFn) {
		rw.Module.EraseFunction(newFn)
		return invalidated
	}

	thunk := &ir.Function{
		Name:        "",
		Linkage:     newFn.Linkage,
		Visibility:  newFn.Visibility,
		CallConv:    newFn.CallConv,
		Attrs:       newFn.Attrs,
		ParamAttrs:  newFn.ParamAttrs,
		Section:     newFn.Section,
		HasSection:  newFn.HasSection,
		GC:          newFn.GC,
		HasGC:       newFn.HasGC,
		UnnamedAddr: newFn.UnnamedAddr,
		Alignment:   newFn.Alignment,
		Type:        newFn.Type,
	}

	var instrs []ir.Instruction
	castSeq := 0
	emitCast := func(v ir.Value, target ir.Type) ir.Value {
		if ir.IsEquivalentType(v.Type(), target, nil) {
			return v
		}
		castSeq++
		c := &ir.Cast{DstName: castName(castSeq), Op: castOpFor(v.Type(), target), Src: v, Ty: target}
		instrs = append(instrs, c)
		return c
	}

	params := make([]*ir.Argument, len(newFn.Params))
	args := make([]ir.Value, len(newFn.Type.Params))
	for i, pt := range newFn.Type.Params {
		name := ""
		if i < len(newFn.Params) && newFn.Params[i] != nil {
			name = newFn.Params[i].Name
		}
		arg := &ir.Argument{Name: name, Ty: pt, Index: i, Owner: thunk}
		params[i] = arg
		args[i] = emitCast(arg, kept.Type.Params[i])
	}
	thunk.Params = params

	callName := ""
	if _, isVoid := kept.Type.Ret.(ir.VoidType); !isVoid {
		callName = "call"
	}
	call := &ir.Call{
		DstName:  callName,
		Callee:   &ir.GlobalRef{Name: kept.Name, Ty: kept.Type, Fn: kept},
		Args:     args,
		Ty:       kept.Type.Ret,
		CallConv: kept.CallConv,
		Tail:     true,
	}
	instrs = append(instrs, call)

	var ret ir.Instruction
	if _, isVoid := newFn.Type.Ret.(ir.VoidType); isVoid {
		ret = &ir.Ret{}
	} else {
		ret = &ir.Ret{Val: emitCast(call, newFn.Type.Ret)}
	}
	instrs = append(instrs, ret)

	entry := &ir.BasicBlock{Name: "entry", Parent: thunk, Instrs: instrs}
	thunk.Blocks = []*ir.BasicBlock{entry}

	thunk.Name = newFn.Name
	rw.Module.AddFunction(thunk)
	seen := make(map[*ir.Function]bool, len(invalidated))
	for _, fn := range invalidated {
		seen[fn] = true
	}
	for _, fn := range ReplaceAllUsesWith(rw.Module, newFn, thunk) {
		if !seen[fn] {
			invalidated = append(invalidated, fn)
		}
	}
	rw.Module.EraseFunction(newFn)
	rw.Stats.ThunksGenerated++
	rw.Stats.NewFunctionsCreated++

	return invalidated
}

func castName(seq int) string {
	return "cast" + strconv.Itoa(seq)
}

// castOpFor picks the same conversion the reference writeThunk helper
// (createCast) does: int-to-pointer and pointer-to-int get their dedicated
// instructions, everything else (including pointer-to-pointer address-space
// coercions) is a bitcast.
func castOpFor(src, dst ir.Type) ir.CastOp {
	_, srcInt := src.(*ir.IntType)
	_, dstPtr := dst.(*ir.PointerType)
	_, srcPtr := src.(*ir.PointerType)
	_, dstInt := dst.(*ir.IntType)

	switch {
	case srcInt && dstPtr:
		return ir.CastIntToPtr
	case srcPtr && dstInt:
		return ir.CastPtrToInt
	default:
		return ir.CastBitcast
	}
}
