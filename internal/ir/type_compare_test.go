package ir

import "testing"

func TestCompareTypes_IntegerByWidth(t *testing.T) {
	a := &IntType{Bits: 64}
	b := &IntType{Bits: 64}
	if a == b {
		t.Fatal("test requires distinct pointers")
	}
	if !IsEquivalentType(a, b, nil) {
		t.Error("two distinct *IntType values with equal Bits should compare equal")
	}

	c := &IntType{Bits: 32}
	if IsEquivalentType(a, c, nil) {
		t.Error("IntTypes of different width must not compare equal")
	}
}

func TestCompareTypes_PointerIntCoercion(t *testing.T) {
	layout := DefaultDataLayout()
	ptr := &PointerType{AddrSpace: 0}
	i64 := &IntType{Bits: 64}

	if !IsEquivalentType(ptr, i64, layout) {
		t.Error("an address-space-0 pointer should coerce to the platform's pointer-width integer")
	}
	if IsEquivalentType(ptr, i64, nil) {
		t.Error("without a layout, pointer and integer types must not coerce")
	}

	i32 := &IntType{Bits: 32}
	if IsEquivalentType(ptr, i32, layout) {
		t.Error("a pointer should not coerce to an integer of the wrong width")
	}
}

func TestCompareTypes_IntPtrTypeFreshPointerEachCall(t *testing.T) {
	layout := DefaultDataLayout()
	a := layout.IntPtrType()
	b := layout.IntPtrType()
	if a == b {
		t.Fatal("test requires IntPtrType to allocate a fresh value each call")
	}
	if !IsEquivalentType(a, b, layout) {
		t.Error("two IntPtrType() results must compare equal despite distinct pointers")
	}
}

func TestCompareTypes_VectorByLenAndElem(t *testing.T) {
	v1 := &VectorType{Len: 4, Elem: &IntType{Bits: 32}}
	v2 := &VectorType{Len: 4, Elem: &IntType{Bits: 32}}
	if !IsEquivalentType(v1, v2, nil) {
		t.Error("vectors with equal length and element type should compare equal")
	}

	v3 := &VectorType{Len: 8, Elem: &IntType{Bits: 32}}
	if IsEquivalentType(v1, v3, nil) {
		t.Error("vectors of different length must not compare equal")
	}

	v4 := &VectorType{Len: 4, Elem: &IntType{Bits: 64}}
	if IsEquivalentType(v1, v4, nil) {
		t.Error("vectors of different element type must not compare equal")
	}
}

func TestCompareTypes_StructAndArray(t *testing.T) {
	s1 := &StructType{Elems: []Type{&IntType{Bits: 32}, &IntType{Bits: 64}}}
	s2 := &StructType{Elems: []Type{&IntType{Bits: 32}, &IntType{Bits: 64}}}
	if !IsEquivalentType(s1, s2, nil) {
		t.Error("structurally identical structs should compare equal")
	}

	packed := &StructType{Elems: s1.Elems, Packed: true}
	if IsEquivalentType(s1, packed, nil) {
		t.Error("packed and unpacked structs must not compare equal")
	}

	arr1 := &ArrayType{Len: 3, Elem: &IntType{Bits: 8}}
	arr2 := &ArrayType{Len: 3, Elem: &IntType{Bits: 8}}
	if !IsEquivalentType(arr1, arr2, nil) {
		t.Error("arrays with equal length and element type should compare equal")
	}
}

func TestCompareTypes_FunctionType(t *testing.T) {
	ft1 := &FunctionType{Ret: &IntType{Bits: 64}, Params: []Type{&IntType{Bits: 32}}}
	ft2 := &FunctionType{Ret: &IntType{Bits: 64}, Params: []Type{&IntType{Bits: 32}}}
	if !IsEquivalentType(ft1, ft2, nil) {
		t.Error("structurally identical function types should compare equal")
	}

	ft3 := &FunctionType{Ret: &IntType{Bits: 64}, Params: []Type{&IntType{Bits: 32}}, Variadic: true}
	if IsEquivalentType(ft1, ft3, nil) {
		t.Error("variadic mismatch must not compare equal")
	}
}
