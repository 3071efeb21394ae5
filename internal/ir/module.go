package ir

import "fmt"

// Linkage enumerates the symbol linkage kinds this pass reasons about.
type Linkage int

const (
	LinkageExternal Linkage = iota
	LinkageWeak
	LinkageLinkOnce
	LinkageLocal
	LinkageAvailableExternally
	LinkagePrivate
)

// Overridable reports whether the linker is permitted to substitute a
// different definition for this linkage at link time.
func (l Linkage) Overridable() bool {
	switch l {
	case LinkageWeak, LinkageLinkOnce:
		return true
	default:
		return false
	}
}

func (l Linkage) String() string {
	switch l {
	case LinkageExternal:
		return "external"
	case LinkageWeak:
		return "weak"
	case LinkageLinkOnce:
		return "linkonce"
	case LinkageLocal:
		return "internal"
	case LinkageAvailableExternally:
		return "available_externally"
	case LinkagePrivate:
		return "private"
	default:
		return "linkage?"
	}
}

// Visibility mirrors ELF/Mach-O style symbol visibility.
type Visibility int

const (
	VisibilityDefault Visibility = iota
	VisibilityHidden
	VisibilityProtected
)

// CallConv enumerates calling conventions. The only requirement on this
// pass is that two values of this type compare by equality.
type CallConv int

const (
	CallConvC CallConv = iota
	CallConvFast
	CallConvCold
)

// AttributeSet is an unordered set of string-named attributes (e.g.
// "nounwind", "readonly") attached to a function, argument list, or call.
// Equality is set equality, independent of insertion order.
type AttributeSet map[string]struct{}

func NewAttributeSet(attrs ...string) AttributeSet {
	s := make(AttributeSet, len(attrs))
	for _, a := range attrs {
		s[a] = struct{}{}
	}
	return s
}

func (s AttributeSet) Equal(o AttributeSet) bool {
	if len(s) != len(o) {
		return false
	}
	for a := range s {
		if _, ok := o[a]; !ok {
			return false
		}
	}
	return true
}

// Module is a named container owning an ordered collection of Functions and
// GlobalAliases.
type Module struct {
	Name      string
	Functions []*Function
	Aliases   []*GlobalAlias
}

// AddFunction appends fn to the module's function list.
func (m *Module) AddFunction(fn *Function) { m.Functions = append(m.Functions, fn) }

// EraseFunction removes fn from the module's function list and marks fn
// erased. If fn is not present the list is left unchanged (matching the
// tombstone-tolerant contract weak handles rely on); fn is marked erased
// either way.
func (m *Module) EraseFunction(fn *Function) {
	out := m.Functions[:0]
	for _, f := range m.Functions {
		if f != fn {
			out = append(out, f)
		}
	}
	m.Functions = out
	fn.erased = true
}

// NewAlias creates and registers a global alias named name, of type ty,
// aliasing target.
func (m *Module) NewAlias(name string, ty Type, target *Function) *GlobalAlias {
	al := &GlobalAlias{Name: name, Ty: ty, Target: target}
	m.Aliases = append(m.Aliases, al)
	return al
}

// EraseAlias removes al from the module.
func (m *Module) EraseAlias(al *GlobalAlias) {
	out := m.Aliases[:0]
	for _, a := range m.Aliases {
		if a != al {
			out = append(out, a)
		}
	}
	m.Aliases = out
}

// GlobalAlias is a symbol that names the same storage/code as another
// symbol.
type GlobalAlias struct {
	Name       string
	Ty         Type
	Visibility Visibility
	Target     *Function
}

// Function is a symbol with linkage, visibility, calling convention,
// attributes, an optional section and GC strategy, an unnamed_addr flag,
// a function type, and either zero basic blocks (a declaration) or one
// or more.
type Function struct {
	Name        string
	Linkage     Linkage
	Visibility  Visibility
	CallConv    CallConv
	Attrs       AttributeSet
	ParamAttrs  []AttributeSet // per-parameter attribute sets, parallel to Params
	Section     string
	HasSection  bool
	GC          string
	HasGC       bool
	UnnamedAddr bool
	Alignment   int
	Type        *FunctionType
	Params      []*Argument
	Blocks      []*BasicBlock

	erased bool
}

// IsDeclaration reports whether fn has no body.
func (fn *Function) IsDeclaration() bool { return len(fn.Blocks) == 0 }

// Overridable reports whether fn's linkage lets the linker substitute
// another definition.
func (fn *Function) Overridable() bool { return fn.Linkage.Overridable() }

// Erased reports whether this handle's referent has been removed from its
// module. Deferred-queue weak handles check this before re-examining a
// function.
func (fn *Function) Erased() bool { return fn == nil || fn.erased }

// Trivial reports whether fn is a single-block function whose block has at
// most two instructions — too small to be worth merging.
func (fn *Function) Trivial() bool {
	return len(fn.Blocks) == 1 && len(fn.Blocks[0].Instrs) <= 2
}

func (fn *Function) String() string {
	kind := "define"
	if fn.IsDeclaration() {
		kind = "declare"
	}
	return fmt.Sprintf("%s %s %s", kind, fn.Linkage, fn.Name)
}

// BasicBlock is an ordered list of instructions; the last is a terminator
// listing its successor blocks.
type BasicBlock struct {
	Name   string
	Parent *Function
	Instrs []Instruction
}

// Type reports LabelType{}: a BasicBlock is itself a Value (its address is
// a branch target), letting the value enumerator establish and check
// left-to-right block correspondence the same way it does for any other
// value.
func (b *BasicBlock) Type() Type { return LabelType{} }
func (*BasicBlock) isValue()     {}

// Terminator returns the block's final instruction, which must implement
// Successors.
func (b *BasicBlock) Terminator() Instruction {
	if len(b.Instrs) == 0 {
		return nil
	}
	return b.Instrs[len(b.Instrs)-1]
}

// Successors returns the terminator's successor blocks, or nil if the
// block is empty or its terminator has none (e.g. Ret, Unreachable).
func (b *BasicBlock) Successors() []*BasicBlock {
	term := b.Terminator()
	if term == nil {
		return nil
	}
	if s, ok := term.(interface{ Successors() []*BasicBlock }); ok {
		return s.Successors()
	}
	return nil
}
