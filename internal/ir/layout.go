package ir

// DataLayout is the (optional) data-layout oracle collaborator: pointer
// width and integer-pointer substitution for address-space-0 pointers, and
// constant GEP byte-offset accumulation. A nil DataLayout disables the
// pointer-coercion relaxation and the constant-offset GEP fast path,
// falling back to structural comparison everywhere that checks it.
type DataLayout interface {
	// IntPtrType returns the integer type used in place of an
	// address-space-0 pointer during type comparison.
	IntPtrType() Type

	// PointerBits returns the bit width of a pointer in address space 0.
	PointerBits() int

	// SizeOf returns the byte size of ty, or false if ty has no fixed size
	// (e.g. an opaque/unsized type) under this layout.
	SizeOf(ty Type) (int64, bool)

	// OffsetOfField returns the byte offset of field index idx within
	// struct type st.
	OffsetOfField(st *StructType, idx int) (int64, bool)

	// ConstantGEPOffset computes the accumulated byte offset a GEP
	// constant expression yields, if every index is a compile-time
	// constant relative to this layout. The second return is false when
	// an index is not statically foldable under this layout.
	ConstantGEPOffset(baseTy Type, indices []*Constant) (int64, bool)
}

// simpleLayout is a straightforward DataLayout over a fixed pointer width
// chosen by its constructor (not derived from the host).
type simpleLayout struct {
	ptrBits int
}

// DefaultDataLayout returns a DataLayout for a 64-bit little-endian target,
// the common case this pass's tests and CLI default to.
func DefaultDataLayout() DataLayout { return &simpleLayout{ptrBits: 64} }

// NewDataLayout returns a DataLayout for an explicit pointer width.
func NewDataLayout(ptrBits int) DataLayout { return &simpleLayout{ptrBits: ptrBits} }

func (l *simpleLayout) IntPtrType() Type  { return &IntType{Bits: l.ptrBits} }
func (l *simpleLayout) PointerBits() int  { return l.ptrBits }

func (l *simpleLayout) SizeOf(ty Type) (int64, bool) {
	switch t := ty.(type) {
	case *IntType:
		return int64((t.Bits + 7) / 8), true
	case *FloatKindType:
		switch t.K {
		case TypeFloat:
			return 4, true
		case TypeDouble:
			return 8, true
		case TypeX86FP80:
			return 10, true
		case TypeFP128, TypePPCFP128:
			return 16, true
		}
		return 0, false
	case *PointerType:
		return int64(l.ptrBits / 8), true
	case *ArrayType:
		elemSz, ok := l.SizeOf(t.Elem)
		if !ok {
			return 0, false
		}
		return elemSz * t.Len, true
	case *VectorType:
		elemSz, ok := l.SizeOf(t.Elem)
		if !ok {
			return 0, false
		}
		return elemSz * t.Len, true
	case *StructType:
		var total int64
		for i := range t.Elems {
			sz, ok := l.SizeOf(t.Elems[i])
			if !ok {
				return 0, false
			}
			if !t.Packed {
				if align, ok := l.alignOf(t.Elems[i]); ok && align > 0 {
					total = alignUp(total, align)
				}
			}
			total += sz
		}
		return total, true
	default:
		return 0, false
	}
}

func (l *simpleLayout) alignOf(ty Type) (int64, bool) {
	sz, ok := l.SizeOf(ty)
	if !ok || sz == 0 {
		return 0, ok
	}
	// A conservative natural alignment: the size itself, capped at pointer
	// width, which is sufficient for the offsets this pass needs to fold.
	if sz > int64(l.ptrBits/8) {
		sz = int64(l.ptrBits / 8)
	}
	return sz, true
}

func alignUp(v, align int64) int64 {
	if align <= 1 {
		return v
	}
	return (v + align - 1) / align * align
}

func (l *simpleLayout) OffsetOfField(st *StructType, idx int) (int64, bool) {
	if idx < 0 || idx >= len(st.Elems) {
		return 0, false
	}
	var offset int64
	for i := 0; i < idx; i++ {
		sz, ok := l.SizeOf(st.Elems[i])
		if !ok {
			return 0, false
		}
		if !st.Packed {
			if align, ok := l.alignOf(st.Elems[i]); ok && align > 0 {
				offset = alignUp(offset, align)
			}
		}
		offset += sz
	}
	if !st.Packed {
		if align, ok := l.alignOf(st.Elems[idx]); ok && align > 0 {
			offset = alignUp(offset, align)
		}
	}
	return offset, true
}

func (l *simpleLayout) ConstantGEPOffset(baseTy Type, indices []*Constant) (int64, bool) {
	var offset int64
	cur := baseTy

	for n, idx := range indices {
		if idx.Kind != ConstInt {
			return 0, false
		}
		if n == 0 {
			// The leading index steps over elements of the pointee type
			// itself (pointer arithmetic), not into it.
			sz, ok := l.SizeOf(cur)
			if !ok {
				return 0, false
			}
			offset += idx.Int * sz
			continue
		}
		switch t := cur.(type) {
		case *StructType:
			off, ok := l.OffsetOfField(t, int(idx.Int))
			if !ok {
				return 0, false
			}
			offset += off
			cur = t.Elems[idx.Int]
		case *ArrayType:
			sz, ok := l.SizeOf(t.Elem)
			if !ok {
				return 0, false
			}
			offset += idx.Int * sz
			cur = t.Elem
		default:
			return 0, false
		}
	}
	return offset, true
}
