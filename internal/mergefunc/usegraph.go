package mergefunc

import "github.com/orizon-lang/orizon/internal/ir"

// ReplaceAllUsesWith rewrites every reference to old across m — call
// callees, indirect-call operands, and constant-expression globals — so
// that it names new instead, and retargets any alias whose target is old.
// It returns every function whose body was mutated, so the driver can
// re-queue them for re-examination, since a rewrite can change a caller's
// fingerprint bucket.
func ReplaceAllUsesWith(m *ir.Module, old, new *ir.Function) []*ir.Function {
	touched := map[*ir.Function]struct{}{}
	for _, fn := range m.Functions {
		if fn == old || fn == new {
			continue
		}
		changed := false
		for _, blk := range fn.Blocks {
			for _, in := range blk.Instrs {
				for _, op := range in.Operands() {
					if retargetValue(op, old, new) {
						changed = true
					}
				}
			}
		}
		if changed {
			touched[fn] = struct{}{}
		}
	}
	for _, al := range m.Aliases {
		if al.Target == old {
			al.Target = new
		}
	}
	return touchedSlice(touched)
}

// ReplaceDirectCallers retargets only the direct-call use sites of old —
// Call instructions whose callee names old exactly — to call new instead,
// leaving indirect references (address-taken constants) untouched. This is
// the narrower of the two rewrites writeThunk and the double-weak fallback
// use when they cannot or need not disturb every use of old.
func ReplaceDirectCallers(m *ir.Module, old, new *ir.Function) []*ir.Function {
	touched := map[*ir.Function]struct{}{}
	for _, fn := range m.Functions {
		if fn == old || fn == new {
			continue
		}
		changed := false
		for _, blk := range fn.Blocks {
			for _, in := range blk.Instrs {
				call, ok := in.(*ir.Call)
				if !ok || call.Callee == nil || call.Callee.Fn != old {
					continue
				}
				call.Callee.Fn = new
				call.Callee.Name = new.Name
				changed = true
			}
		}
		if changed {
			touched[fn] = struct{}{}
		}
	}
	return touchedSlice(touched)
}

// hasAnyUse reports whether any function body or alias in m still
// references fn, directly or indirectly. writeThunk consults this: if
// redirecting fn's direct callers left it with no uses at all, there is no
// reason to leave a thunk body behind — fn can simply be erased, since a
// thunk with no remaining callers is itself dead code.
func hasAnyUse(m *ir.Module, fn *ir.Function) bool {
	for _, al := range m.Aliases {
		if al.Target == fn {
			return true
		}
	}
	for _, other := range m.Functions {
		if other == fn {
			continue
		}
		for _, blk := range other.Blocks {
			for _, in := range blk.Instrs {
				for _, op := range in.Operands() {
					if valueRefersTo(op, fn) {
						return true
					}
				}
			}
		}
	}
	return false
}

func valueRefersTo(v ir.Value, fn *ir.Function) bool {
	switch val := v.(type) {
	case *ir.GlobalRef:
		return val.Fn == fn
	case *ir.Constant:
		return val.RefersToFunction(fn)
	default:
		return false
	}
}

func retargetValue(v ir.Value, old, new *ir.Function) bool {
	switch val := v.(type) {
	case *ir.GlobalRef:
		if val.Fn == old {
			val.Fn = new
			val.Name = new.Name
			return true
		}
		return false
	case *ir.Constant:
		return retargetConstant(val, old, new)
	default:
		return false
	}
}

func retargetConstant(c *ir.Constant, old, new *ir.Function) bool {
	if c == nil {
		return false
	}
	switch c.Kind {
	case ir.ConstGlobal:
		if c.Global != nil && c.Global.Fn == old {
			c.Global.Fn = new
			c.Global.Name = new.Name
			return true
		}
		return false
	case ir.ConstExpr:
		if c.Op == ir.ExprGEP {
			changed := retargetConstant(c.GEPBase, old, new)
			for _, idx := range c.GEPIdxs {
				if retargetConstant(idx, old, new) {
					changed = true
				}
			}
			return changed
		}
		return retargetConstant(c.Operand, old, new)
	case ir.ConstAggregate:
		changed := false
		for _, e := range c.Elems {
			if retargetConstant(e, old, new) {
				changed = true
			}
		}
		return changed
	default:
		return false
	}
}

func touchedSlice(touched map[*ir.Function]struct{}) []*ir.Function {
	out := make([]*ir.Function, 0, len(touched))
	for fn := range touched {
		out = append(out, fn)
	}
	return out
}
