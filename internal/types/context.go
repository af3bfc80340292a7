package types

import "errors"

// ErrInvalidatedLayout is returned by (*Struct).AppendField when fields
// are appended after the struct's layout has already been queried once
// (spec §4.1 uniqueness rule).
var ErrInvalidatedLayout = errors.New("types: field appended after layout query invalidates completed struct")

// ErrUnsupportedType flags a type the target layout oracle cannot size
// (e.g. an incomplete/opaque struct, or Deferred reaching the oracle).
var ErrUnsupportedType = errors.New("types: unsupported type for layout query")

// Context owns every Type ever constructed for one compilation unit. It
// is the only component permitted to allocate types (spec §3.6): the
// owning CFG embeds exactly one Context and hands out *Type values that
// remain valid for the Context's lifetime.
//
// Uniqueness mirrors an LLVM-style type-context: structurally equal
// non-named types collapse onto one instance; named structs collapse by
// name alone so a forward declaration and its later completion share
// identity.
type Context struct {
	nextID uint64

	leaves   [int(KindDeferred)]*Type // indexed by Kind for the 8 leaf kinds
	pointers map[*Type]*Type
	arrays   map[arrayKey]*Type
	structs  map[string]*Type
	funcs    map[string]*Type // keyed by a serialized signature string
}

type arrayKey struct {
	elem uint64
	n    int64
}

// NewContext allocates an empty type context.
func NewContext() *Context {
	return &Context{
		pointers: make(map[*Type]*Type),
		arrays:   make(map[arrayKey]*Type),
		structs:  make(map[string]*Type),
		funcs:    make(map[string]*Type),
	}
}

func (c *Context) alloc(kind Kind) *Type {
	c.nextID++
	return &Type{id: c.nextID, kind: kind, ctx: c}
}

// Get returns the canonical instance of a leaf kind (Void, Int*, Float*).
// Panics if kind is not a leaf kind; use GetPointer/GetArray/GetStruct/
// GetFunction for the composite kinds.
func (c *Context) Get(kind Kind) *Type {
	if kind >= KindPointer {
		panic("types: Get called with a non-leaf kind")
	}
	if c.leaves[kind] == nil {
		c.leaves[kind] = c.alloc(kind)
	}
	return c.leaves[kind]
}

func (c *Context) Void() *Type    { return c.Get(KindVoid) }
func (c *Context) Int1() *Type    { return c.Get(KindInt1) }
func (c *Context) Int8() *Type    { return c.Get(KindInt8) }
func (c *Context) Int16() *Type   { return c.Get(KindInt16) }
func (c *Context) Int32() *Type   { return c.Get(KindInt32) }
func (c *Context) Int64() *Type   { return c.Get(KindInt64) }
func (c *Context) Float32() *Type { return c.Get(KindFloat32) }
func (c *Context) Float64() *Type { return c.Get(KindFloat64) }

// GetPointer returns the uniqued pointer-to-pointee type.
func (c *Context) GetPointer(pointee *Type) *Type {
	if t, ok := c.pointers[pointee]; ok {
		return t
	}
	t := c.alloc(KindPointer)
	t.pointee = pointee
	c.pointers[pointee] = t
	return t
}

// GetArray returns the uniqued array-of-n-elements type.
func (c *Context) GetArray(elem *Type, n int64) *Type {
	key := arrayKey{elem: elem.id, n: n}
	if t, ok := c.arrays[key]; ok {
		return t
	}
	t := c.alloc(KindArray)
	t.elem = elem
	t.arrayLen = n
	c.arrays[key] = t
	return t
}

// GetStruct returns the struct type registered under name, creating an
// opaque (fieldless, incomplete) struct if this is the first reference.
// Repeated calls with the same name always return the same instance,
// permitting forward declaration followed by later completion via
// AppendField.
func (c *Context) GetStruct(name string) *Type {
	if t, ok := c.structs[name]; ok {
		return t
	}
	t := c.alloc(KindStruct)
	t.name = name
	c.structs[name] = t
	return t
}

// AppendField appends a field to an opaque or still-open struct. Fails
// with ErrInvalidatedLayout if the struct's layout has already been
// queried via the target oracle.
func AppendField(s *Type, field Field) error {
	if s.kind != KindStruct {
		panic("types: AppendField called on a non-struct type")
	}
	if s.layoutQueried {
		return ErrInvalidatedLayout
	}
	s.fields = append(s.fields, field)
	s.completed = true
	return nil
}

// GetFunction returns the uniqued function type for (ret, params).
func (c *Context) GetFunction(ret *Type, params []*Type) *Type {
	key := funcKey(ret, params)
	if t, ok := c.funcs[key]; ok {
		return t
	}
	t := c.alloc(KindFunction)
	t.ret = ret
	t.params = append([]*Type(nil), params...)
	c.funcs[key] = t
	return t
}

func funcKey(ret *Type, params []*Type) string {
	b := make([]byte, 0, 8*(len(params)+1))
	b = appendID(b, ret.id)
	for _, p := range params {
		b = appendID(b, p.id)
	}
	return string(b)
}

func appendID(b []byte, id uint64) []byte {
	for i := 0; i < 8; i++ {
		b = append(b, byte(id>>(8*i)))
	}
	b = append(b, '|')
	return b
}

// NewDeferred constructs a frontend-only placeholder for a named type
// that is not yet resolved. Deferred types are never uniqued (each
// occurrence in source is a distinct placeholder scoped to where it was
// written) and must be resolved to a concrete Type before IR lowering;
// the lowering glue asserts none remain (spec §3.1, §4.9).
func (c *Context) NewDeferred(baseName string, indirection int, scopeHandle any, mutable bool) *Type {
	t := c.alloc(KindDeferred)
	t.baseName = baseName
	t.indirection = indirection
	t.scopeHandle = scopeHandle
	t.mutable = mutable
	return t
}
