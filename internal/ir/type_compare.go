package ir

import (
	"fmt"

	"github.com/orizon-lang/orizon/internal/errors"
)

func unknownTypeKind(k TypeKind) *errors.StandardError {
	return errors.InvariantViolation("ir.CompareTypes", fmt.Sprintf("unknown type kind %d", int(k)))
}

// CompareTypes is the type comparator: a total order over IR types under
// pointer-width coercion, reported as -1/0/+1.
//
// When layout is non-nil, any address-space-0 pointer type on either side
// is first substituted with the integer type of pointer width, so that
// "i8*" and "i32*" (or "i8*" and "iN" for the platform's pointer width N)
// compare equal under this relaxation — the whole reason this pass can
// merge functions differing only in pointer argument types.
func CompareTypes(a, b Type, layout DataLayout) int {
	a = coercePointer(a, layout)
	b = coercePointer(b, layout)

	if a == b {
		return 0
	}

	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		return cmpInt(int(ka), int(kb))
	}

	switch ka {
	case TypeInteger:
		ia, ib := a.(*IntType), b.(*IntType)
		return cmpInt(ia.Bits, ib.Bits)
	case TypeVoid, TypeFloat, TypeDouble, TypeX86FP80, TypeFP128, TypePPCFP128,
		TypeLabel, TypeMetadata:
		return 0
	case TypePointer:
		pa, pb := a.(*PointerType), b.(*PointerType)
		return cmpInt(pa.AddrSpace, pb.AddrSpace)
	case TypeVector:
		va, vb := a.(*VectorType), b.(*VectorType)
		if c := cmpInt64(va.Len, vb.Len); c != 0 {
			return c
		}
		return CompareTypes(va.Elem, vb.Elem, layout)
	case TypeStruct:
		sa, sb := a.(*StructType), b.(*StructType)
		if c := cmpInt(len(sa.Elems), len(sb.Elems)); c != 0 {
			return c
		}
		if c := cmpBool(sa.Packed, sb.Packed); c != 0 {
			return c
		}
		for i := range sa.Elems {
			if c := CompareTypes(sa.Elems[i], sb.Elems[i], layout); c != 0 {
				return c
			}
		}
		return 0
	case TypeFunction:
		fa, fb := a.(*FunctionType), b.(*FunctionType)
		if c := cmpInt(len(fa.Params), len(fb.Params)); c != 0 {
			return c
		}
		if c := cmpBool(fa.Variadic, fb.Variadic); c != 0 {
			return c
		}
		if c := CompareTypes(fa.Ret, fb.Ret, layout); c != 0 {
			return c
		}
		for i := range fa.Params {
			if c := CompareTypes(fa.Params[i], fb.Params[i], layout); c != 0 {
				return c
			}
		}
		return 0
	case TypeArray:
		aa, ab := a.(*ArrayType), b.(*ArrayType)
		if c := cmpInt64(aa.Len, ab.Len); c != 0 {
			return c
		}
		return CompareTypes(aa.Elem, ab.Elem, layout)
	default:
		panic(unknownTypeKind(ka))
	}
}

// IsEquivalentType is the equivalence predicate derived from CompareTypes.
func IsEquivalentType(a, b Type, layout DataLayout) bool {
	return CompareTypes(a, b, layout) == 0
}

func coercePointer(t Type, layout DataLayout) Type {
	if layout == nil {
		return t
	}
	if p, ok := t.(*PointerType); ok && p.AddrSpace == 0 {
		return layout.IntPtrType()
	}
	return t
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}
