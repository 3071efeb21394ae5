package mergefunc

import "github.com/orizon-lang/orizon/internal/ir"

// PassInfo describes a module-level pass's identity and the analyses it
// disturbs — the module-IR analogue of parser.OptimizationMetrics' PassName
// field, reporting identity up front rather than after the fact since this
// pass runs once per Module instead of being re-applied to convergence
// against an AST.
type PassInfo struct {
	ID                string
	Name              string
	ModifiesCFG       bool
	PreservesAnalyses bool
}

// Register reports this pass's identity. It never modifies any
// surviving function's CFG — a merged-away function is either erased
// outright or replaced by a new, straight-line thunk function — but it does
// not preserve call-graph analyses, since every direct call site of a
// merged-away function is retargeted.
func Register() PassInfo {
	return PassInfo{ID: "mergefunc", Name: "Merge Functions", ModifiesCFG: false, PreservesAnalyses: false}
}

// Run constructs a Driver over m and runs it to a fixed point, returning the
// accumulated Stats. This is the pass's entry point for an embedding
// pipeline.
func Run(m *ir.Module, layout ir.DataLayout, target *ir.Target) *Stats {
	return NewDriver(m, layout, target).Run()
}
