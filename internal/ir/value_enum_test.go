package ir

import "testing"

func TestEnumerate_SelfReferenceSymmetry(t *testing.T) {
	tyF := &FunctionType{Ret: &IntType{Bits: 64}, Params: []Type{&IntType{Bits: 64}}}
	f := &Function{Name: "f", Type: tyF}
	g := &Function{Name: "g", Type: tyF}

	s := NewEnumState()
	left := &GlobalRef{Name: "f", Ty: tyF, Fn: f}
	right := &GlobalRef{Name: "g", Ty: tyF, Fn: g}

	if !Enumerate(s, left, right, f, g, nil) {
		t.Error("a self/mutual reference to the function under comparison on both sides must be accepted")
	}
	if _, mapped := s.MappedTo(left); mapped {
		t.Error("self-reference symmetry must not install a bijection entry")
	}
}

func TestEnumerate_PriorMappingBijection(t *testing.T) {
	f := &Function{Name: "f"}
	g := &Function{Name: "g"}
	s := NewEnumState()

	a1 := &Argument{Name: "a", Ty: &IntType{Bits: 32}}
	b1 := &Argument{Name: "b", Ty: &IntType{Bits: 32}}
	a2 := &Argument{Name: "a2", Ty: &IntType{Bits: 32}}
	b2 := &Argument{Name: "b2", Ty: &IntType{Bits: 32}}

	if !Enumerate(s, a1, b1, f, g, nil) {
		t.Fatal("first sighting of a fresh pair should be accepted and installed")
	}
	if !Enumerate(s, a1, b1, f, g, nil) {
		t.Error("re-seeing the same pair should be accepted via the existing mapping")
	}
	if Enumerate(s, a1, b2, f, g, nil) {
		t.Error("a1 is already mapped to b1; mapping it to b2 must be rejected")
	}
	if Enumerate(s, a2, b1, f, g, nil) {
		t.Error("b1 is already claimed by a1; claiming it for a2 must be rejected")
	}
}

func TestEnumerate_ConstantsNullAcrossCoercedTypes(t *testing.T) {
	layout := DefaultDataLayout()
	s := NewEnumState()
	lc := &Constant{Kind: ConstNull, Ty: &PointerType{AddrSpace: 0}}
	rc := &Constant{Kind: ConstNull, Ty: &IntType{Bits: 64}}

	if !Enumerate(s, lc, rc, nil, nil, layout) {
		t.Error("null constants of coercible types should be accepted")
	}
}

func TestEnumerate_InlineAsmIdentityOnly(t *testing.T) {
	s := NewEnumState()
	asm := &InlineAsm{Asm: "nop", Ty: VoidType{}}

	if !Enumerate(s, asm, asm, nil, nil, nil) {
		t.Error("the same InlineAsm value on both sides should be accepted")
	}

	other := &InlineAsm{Asm: "nop", Ty: VoidType{}}
	if Enumerate(s, asm, other, nil, nil, nil) {
		t.Error("two distinct InlineAsm values must never be accepted, even with identical text")
	}
}
