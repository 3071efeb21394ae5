package ir

// EnumState is the per-comparison state a single function-pair comparison
// carries: a bijection under construction between the left function's
// values and the right function's values (id_map/seen_right).
type EnumState struct {
	idMap     map[Value]Value
	seenRight map[Value]bool
}

// NewEnumState returns a fresh, empty enumeration state for one
// function-pair comparison.
func NewEnumState() *EnumState {
	return &EnumState{
		idMap:     make(map[Value]Value),
		seenRight: make(map[Value]bool),
	}
}

// MappedTo returns the right-hand value left is currently mapped to, if
// any.
func (s *EnumState) MappedTo(left Value) (Value, bool) {
	v, ok := s.idMap[left]
	return v, ok
}

// Enumerate decides whether left (from function fnL) and right (from
// function fnR) are consistent with every pairing established so far,
// installing a new pairing on first sight. It implements four ordered
// rules; any uncertainty is a rejection.
func Enumerate(s *EnumState, left, right Value, fnL, fnR *Function, layout DataLayout) bool {
	// Rule 1: self-reference symmetry. The two functions may reference
	// themselves or each other interchangeably — this lets mutually (or
	// self-) recursive calls compare equal without ever unifying the two
	// function symbols as ordinary values.
	if lf, rf := referencedFunction(left), referencedFunction(right); lf != nil && rf != nil {
		if (lf == fnL && rf == fnR) || (lf == fnR && rf == fnL) {
			return true
		}
	}

	// Rule 2: constants.
	lc, lIsConst := left.(*Constant)
	rc, rIsConst := right.(*Constant)
	if lIsConst || rIsConst {
		if !lIsConst || !rIsConst {
			return false
		}
		return enumerateConstants(lc, rc, fnL, fnR, layout)
	}

	// Rule 3: inline assembly, identity only, never enumerated.
	la, lIsAsm := left.(*InlineAsm)
	ra, rIsAsm := right.(*InlineAsm)
	if lIsAsm || rIsAsm {
		return lIsAsm && rIsAsm && la == ra
	}

	// Rule 4: prior mapping.
	if mapped, ok := s.idMap[left]; ok {
		return mapped == right
	}
	if s.seenRight[right] {
		return false
	}
	s.idMap[left] = right
	s.seenRight[right] = true
	return true
}

func referencedFunction(v Value) *Function {
	g, ok := v.(*GlobalRef)
	if !ok {
		return nil
	}
	return g.Fn
}

func enumerateConstants(lc, rc *Constant, fnL, fnR *Function, layout DataLayout) bool {
	// Constant expressions capturing either function under comparison, or
	// GEP constant expressions, are rejected conservatively rather than
	// being descended into.
	if lc.RefersToFunction(fnL) || lc.RefersToFunction(fnR) ||
		rc.RefersToFunction(fnL) || rc.RefersToFunction(fnR) {
		return false
	}
	if lc.Kind == ConstExpr && lc.Op == ExprGEP {
		return false
	}
	if rc.Kind == ConstExpr && rc.Op == ExprGEP {
		return false
	}

	if lc.Identical(rc) {
		return true
	}
	if lc.IsNull() && rc.IsNull() && IsEquivalentType(lc.Ty, rc.Ty, layout) {
		return true
	}

	folded, ok := rc.BitcastFold(lc.Ty, layout)
	if !ok {
		return false
	}
	return lc.Identical(folded)
}
