// Package types implements the uniqued, id-stamped type system shared
// by semantic analysis and SIIR (spec §3.1, §4.1). Every type is owned
// by exactly one Context; equality between types from the same Context
// is pointer identity.
//
// The shape follows the reference compiler's ctypes package (flat
// interface + marker-method variants, see ctypes/types.go) but adds the
// uniquing table ctypes deliberately does not have: ctypes compares
// types structurally on every call, while SIIR needs O(1) identity
// comparison and a stable numeric id for hashing and for the target
// layout oracle's memoization.
package types

import "fmt"

// Kind discriminates the closed set of type variants.
type Kind int

const (
	KindVoid Kind = iota
	KindInt1
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindPointer
	KindArray
	KindStruct
	KindFunction
	KindDeferred
)

func (k Kind) String() string {
	names := [...]string{
		"void", "i1", "i8", "i16", "i32", "i64", "f32", "f64",
		"pointer", "array", "struct", "function", "deferred",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// Type is a uniqued, immutable (except struct field completion) type
// owned by a Context. Identity equality (==) is the only correct
// comparison once two types come from the same Context.
type Type struct {
	id   uint64
	kind Kind
	ctx  *Context

	// KindPointer
	pointee *Type
	// KindArray
	elem       *Type
	arrayLen   int64
	// KindStruct
	name      string
	fields    []Field
	completed bool
	layoutQueried bool
	// KindFunction
	ret    *Type
	params []*Type
	// KindDeferred
	baseName    string
	indirection int
	scopeHandle any
	mutable     bool
}

// Field is one member of a struct type.
type Field struct {
	Name string
	Type *Type
}

func (t *Type) ID() uint64 { return t.id }
func (t *Type) Kind() Kind { return t.kind }

func (t *Type) Pointee() *Type { return t.pointee }
func (t *Type) Elem() *Type    { return t.elem }
func (t *Type) ArrayLen() int64 { return t.arrayLen }
func (t *Type) Name() string   { return t.name }
func (t *Type) Fields() []Field { return t.fields }
func (t *Type) Return() *Type   { return t.ret }
func (t *Type) Params() []*Type { return t.params }
func (t *Type) IsOpaque() bool  { return t.kind == KindStruct && !t.completed }

// Deferred-only accessors.
func (t *Type) DeferredBaseName() string   { return t.baseName }
func (t *Type) DeferredIndirection() int   { return t.indirection }
func (t *Type) DeferredScopeHandle() any   { return t.scopeHandle }
func (t *Type) DeferredMutable() bool      { return t.mutable }

func (t *Type) IsInteger() bool {
	switch t.kind {
	case KindInt1, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
	return false
}

func (t *Type) IsFloat() bool {
	return t.kind == KindFloat32 || t.kind == KindFloat64
}

// IsScalar reports whether T is an integer, float, or pointer (spec §4.2).
func (t *Type) IsScalar() bool {
	return t.IsInteger() || t.IsFloat() || t.kind == KindPointer
}

func (t *Type) IsAggregate() bool {
	return t.kind == KindArray || t.kind == KindStruct
}

// BitWidth returns the width in bits of a scalar integer/float type.
// Panics for non-scalar kinds: callers must check IsScalar first.
func (t *Type) BitWidth() int {
	switch t.kind {
	case KindInt1:
		return 1
	case KindInt8:
		return 8
	case KindInt16:
		return 16
	case KindInt32, KindFloat32:
		return 32
	case KindInt64, KindFloat64, KindPointer:
		return 64
	}
	panic(fmt.Sprintf("types: BitWidth called on non-scalar kind %s", t.kind))
}

func (t *Type) String() string {
	switch t.kind {
	case KindPointer:
		return "*" + t.pointee.String()
	case KindArray:
		return fmt.Sprintf("[%s; %d]", t.elem.String(), t.arrayLen)
	case KindStruct:
		if t.name == "" {
			return "struct{}"
		}
		return "struct " + t.name
	case KindFunction:
		s := "fn("
		for i, p := range t.params {
			if i > 0 {
				s += ", "
			}
			s += p.String()
		}
		return s + ") -> " + t.ret.String()
	case KindDeferred:
		s := t.baseName
		for i := 0; i < t.indirection; i++ {
			s = "*" + s
		}
		return s
	default:
		return t.kind.String()
	}
}

// MarkLayoutQueried records that a struct's layout has been computed at
// least once; further field appends then fail with ErrInvalidatedLayout.
func (t *Type) MarkLayoutQueried() { t.layoutQueried = true }
func (t *Type) LayoutQueried() bool { return t.layoutQueried }
