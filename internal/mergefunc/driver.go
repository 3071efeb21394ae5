package mergefunc

import "github.com/orizon-lang/orizon/internal/ir"

// Driver runs the pass to a fixed point over a whole Module. It keeps a
// deferred worklist of functions still to be examined, iterating
// until that worklist is empty; each iteration visits every non-overridable
// candidate before any overridable one, which is what discharges
// Rewriter.Merge's "kept is never weaker than newFn" precondition by
// construction rather than by a local swap.
type Driver struct {
	Module   *ir.Module
	Target   *ir.Target
	Stats    *Stats
	Rewriter *Rewriter

	fnSet *FnSet
}

// NewDriver builds a Driver ready to run the pass once over m, comparing
// candidates under layout (may be nil) and gating alias synthesis on
// target's capabilities.
func NewDriver(m *ir.Module, layout ir.DataLayout, target *ir.Target) *Driver {
	stats := &Stats{}
	return &Driver{
		Module:   m,
		Target:   target,
		Stats:    stats,
		Rewriter: &Rewriter{Module: m, Target: target, Stats: stats},
		fnSet:    NewFnSet(layout),
	}
}

// Run executes the pass to a fixed point, mutating Module in place, and
// returns the accumulated Stats. The dedup set is cleared only once, after
// the whole run, matching the single-FnSet-lifetime contract: a kept
// function stays resident in the set across every iteration it survives,
// so later candidates keep comparing against its current state.
func (d *Driver) Run() *Stats {
	var deferred []*ir.Function
	for _, fn := range d.Module.Functions {
		if !fn.IsDeclaration() && fn.Linkage != ir.LinkageAvailableExternally {
			deferred = append(deferred, fn)
		}
	}

	for len(deferred) > 0 {
		worklist, overridable := deferred, deferred[:0:0]
		deferred = nil

		for _, fn := range worklist {
			if fn.Erased() {
				continue
			}
			if fn.Overridable() {
				overridable = append(overridable, fn)
				continue
			}
			deferred = append(deferred, d.probe(fn)...)
		}
		for _, fn := range overridable {
			if fn.Erased() {
				continue
			}
			deferred = append(deferred, d.probe(fn)...)
		}
	}

	d.fnSet.Clear()
	return d.Stats
}

// probe inserts fn into the dedup set. A miss leaves fn resident and
// returns nil. A hit merges fn away into the existing resident and returns
// whichever other functions the merge's call-site rewrite touched, each
// first pulled out of the dedup set (if it was already there) so it gets a
// fresh comparison next iteration rather than being judged by a fingerprint
// bucket computed from its pre-rewrite body.
func (d *Driver) probe(fn *ir.Function) []*ir.Function {
	hit, ok := d.fnSet.Probe(fn)
	if !ok {
		return nil
	}

	touched := d.Rewriter.Merge(hit, fn)

	out := make([]*ir.Function, 0, len(touched))
	for _, caller := range touched {
		if caller.Erased() {
			continue
		}
		d.fnSet.Remove(caller)
		out = append(out, caller)
	}
	return out
}
