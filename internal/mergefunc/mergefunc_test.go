package mergefunc_test

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/ir"
	"github.com/orizon-lang/orizon/internal/mergefunc"
	"github.com/orizon-lang/orizon/internal/mergefunc/fixtures"
)

func countFunctions(m *ir.Module) int { return len(m.Functions) }

func findFunction(m *ir.Module, name string) *ir.Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

func findAlias(m *ir.Module, name string) *ir.GlobalAlias {
	for _, al := range m.Aliases {
		if al.Name == name {
			return al
		}
	}
	return nil
}

func TestPointerIntEquivalence_MergesViaAlias(t *testing.T) {
	m := fixtures.PointerIntEquivalence()
	layout := ir.DefaultDataLayout()
	target := ir.DefaultTarget()

	before := countFunctions(m)
	stats := mergefunc.Run(m, layout, target)

	if stats.FunctionsMerged != 1 {
		t.Fatalf("expected exactly one merge, got %d (%s)", stats.FunctionsMerged, stats)
	}
	if stats.AliasesGenerated != 1 {
		t.Errorf("both candidates are local-linkage, unnamed_addr, alias-eligible functions; expected one alias, got %d", stats.AliasesGenerated)
	}
	if countFunctions(m) != before-1 {
		t.Errorf("an alias merge erases the folded-away function: before=%d after=%d", before, countFunctions(m))
	}
	if findFunction(m, "ptr_identity") == nil && findFunction(m, "int_identity") == nil {
		t.Error("one of the two original names should survive as the kept function")
	}
}

func TestThunkSynthesis_MergesViaCastingThunk(t *testing.T) {
	m := fixtures.ThunkSynthesis()
	stats := mergefunc.Run(m, ir.DefaultDataLayout(), ir.DefaultTarget())

	if stats.FunctionsMerged != 1 {
		t.Fatalf("expected exactly one merge, got %s", stats)
	}
	if stats.ThunksGenerated != 1 {
		t.Fatalf("the non-unnamed_addr function should force thunk synthesis rather than an alias, got %s", stats)
	}

	thunk := findFunction(m, "int_thunk_wrapped")
	if thunk == nil {
		t.Fatal("the thunk must keep the merged-away function's original name")
	}
	if len(thunk.Blocks) != 1 {
		t.Fatalf("expected a single-block thunk body, got %d blocks", len(thunk.Blocks))
	}

	var sawCast, sawTailCall bool
	for _, instr := range thunk.Blocks[0].Instrs {
		switch v := instr.(type) {
		case *ir.Cast:
			sawCast = true
		case *ir.Call:
			sawTailCall = v.Tail
			if v.DirectCallee() == nil || v.DirectCallee().Name != "ptr_thunk_base" {
				t.Error("the thunk must tail-call the kept function directly")
			}
		}
	}
	if !sawCast {
		t.Error("bridging an int-typed signature to a pointer-typed kept function requires at least one Cast instruction")
	}
	if !sawTailCall {
		t.Error("the thunk's call to the kept function must be marked tail")
	}
}

func TestPointerIntEquivalence_WithoutLayoutDoesNotMerge(t *testing.T) {
	m := fixtures.PointerIntEquivalence()
	stats := mergefunc.Run(m, nil, ir.DefaultTarget())

	if stats.FunctionsMerged != 0 {
		t.Error("without a DataLayout, a pointer-typed and an integer-typed function must not be judged equivalent")
	}
}

func TestDiamondCFGDuplicate_Merges(t *testing.T) {
	m := fixtures.DiamondCFGDuplicate()
	stats := mergefunc.Run(m, ir.DefaultDataLayout(), ir.DefaultTarget())

	if stats.FunctionsMerged != 1 {
		t.Fatalf("expected the two structurally identical diamond functions to merge, got %s", stats)
	}
}

func TestNSWMismatchNonMerge(t *testing.T) {
	m := fixtures.NSWMismatchNonMerge()
	stats := mergefunc.Run(m, ir.DefaultDataLayout(), ir.DefaultTarget())

	if stats.FunctionsMerged != 0 {
		t.Error("a nsw-flag mismatch on an otherwise identical add must block the merge")
	}
	if countFunctions(m) != 2 {
		t.Error("both functions must survive untouched")
	}
}

func TestBothWeakWithAliases_MergesIntoAliasPair(t *testing.T) {
	m := fixtures.BothWeakWithAliases()
	stats := mergefunc.Run(m, ir.DefaultDataLayout(), ir.DefaultTarget())

	if stats.FunctionsMerged != 1 {
		t.Fatalf("expected the two weak functions to merge, got %s", stats)
	}
	if stats.AliasesGenerated != 2 {
		t.Errorf("merging two overridable functions under alias support should produce two aliases (one per original name), got %d", stats.AliasesGenerated)
	}
	if findAlias(m, "weak_a") == nil || findAlias(m, "weak_b") == nil {
		t.Error("both original names should survive as aliases")
	}

	var privateBodies int
	for _, fn := range m.Functions {
		if fn.Linkage == ir.LinkagePrivate {
			privateBodies++
		}
	}
	if privateBodies != 1 {
		t.Errorf("expected exactly one private function holding the merged body, got %d", privateBodies)
	}
}

func TestBothWeakWithAliases_NoAliasSupportFallsBackToCallerRedirect(t *testing.T) {
	m := fixtures.BothWeakWithAliases()
	cofftarget, err := ir.NewTarget("coff", "", "")
	if err != nil {
		t.Fatal(err)
	}
	stats := mergefunc.Run(m, ir.DefaultDataLayout(), cofftarget)

	if stats.AliasesGenerated != 0 {
		t.Error("a target without alias support must never synthesize an alias")
	}
	if countFunctions(m) != 2 {
		t.Error("without alias support, both bodies remain (only call sites are redirected)")
	}
}

func TestSelfRecursive_Merges(t *testing.T) {
	m := fixtures.SelfRecursive()
	stats := mergefunc.Run(m, ir.DefaultDataLayout(), ir.DefaultTarget())

	if stats.FunctionsMerged != 1 {
		t.Fatalf("two self-recursive functions with identical shape should merge, got %s", stats)
	}
}

func TestThreeFunctionChain_NonOverridableSurvivesAsKept(t *testing.T) {
	m := fixtures.ThreeFunctionChain()
	stats := mergefunc.Run(m, ir.DefaultDataLayout(), ir.DefaultTarget())

	if stats.FunctionsMerged != 2 {
		t.Fatalf("expected both overridable functions to fold into the non-overridable one, got %s", stats)
	}

	chainA := findFunction(m, "chain_a")
	if chainA == nil {
		t.Fatal("the non-overridable function's name must survive the run")
	}
	if chainA.Overridable() {
		t.Error("the surviving kept function must not have become overridable")
	}
}

func TestRewriter_Merge_PanicsOnWeakenedKept(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Merge must panic when asked to thunk a non-overridable function to an overridable one")
		}
	}()

	m := &ir.Module{Name: "bad_precondition"}
	rw := &mergefunc.Rewriter{Module: m, Target: ir.DefaultTarget(), Stats: &mergefunc.Stats{}}

	ty := &ir.FunctionType{Ret: ir.VoidType{}}
	kept := &ir.Function{Name: "kept", Linkage: ir.LinkageWeak, Type: ty}
	newFn := &ir.Function{Name: "new", Linkage: ir.LinkageExternal, Type: ty,
		Blocks: []*ir.BasicBlock{{Name: "entry", Instrs: []ir.Instruction{&ir.Ret{}}}}}

	rw.Merge(kept, newFn)
}

func TestRewriter_Merge_SkipsTrivialFunction(t *testing.T) {
	m := &ir.Module{Name: "trivial_skip"}
	rw := &mergefunc.Rewriter{Module: m, Target: ir.DefaultTarget(), Stats: &mergefunc.Stats{}}

	ty := &ir.FunctionType{Ret: ir.VoidType{}}
	kept := &ir.Function{Name: "kept", Linkage: ir.LinkageExternal, Type: ty}
	trivial := &ir.Function{
		Name: "trivial", Linkage: ir.LinkageExternal, Type: ty,
		Blocks: []*ir.BasicBlock{{Name: "entry", Instrs: []ir.Instruction{&ir.Ret{}}}},
	}

	invalidated := rw.Merge(kept, trivial)
	if invalidated != nil {
		t.Error("merging away a trivial (<=2 instruction) function should be a no-op")
	}
	if rw.Stats.FunctionsMerged != 0 {
		t.Error("a skipped trivial merge must not count toward FunctionsMerged")
	}
}

func TestRegister_ReportsIdentity(t *testing.T) {
	info := mergefunc.Register()
	if info.ID == "" || info.Name == "" {
		t.Error("Register must report a non-empty pass identity")
	}
	if info.PreservesAnalyses {
		t.Error("this pass retargets call sites across the module, so it cannot claim to preserve call-graph analyses")
	}
}
