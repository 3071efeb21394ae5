package mergefunc

import "fmt"

// Stats is a debug/statistics sink: four write-only counters incremented as
// the driver and rewriter run. It follows internal/diagnostics's convention
// of grouping related counters into one struct with a reporting method,
// scaled down to this pass's much smaller surface — a pass-instance-scoped
// struct rather than a global, so global state stays limited to statistics
// and is scoped to the pass instance or an injected observer.
type Stats struct {
	FunctionsMerged int
	ThunksGenerated int
	AliasesGenerated int
	NewFunctionsCreated int
}

func (s *Stats) String() string {
	return fmt.Sprintf(
		"mergefunc: %d functions merged, %d thunks generated, %d aliases generated, %d new functions created",
		s.FunctionsMerged, s.ThunksGenerated, s.AliasesGenerated, s.NewFunctionsCreated,
	)
}
