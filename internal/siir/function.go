package siir

import (
	"errors"
	"fmt"

	"github.com/statim-lang/statimc/internal/types"
)

// ErrDuplicateLocal is returned by Function.AddLocal when a local of
// the same name already exists (spec §4.5).
var ErrDuplicateLocal = errors.New("siir: duplicate local name")

// Linkage controls whether a function's definition is visible outside
// its translation unit.
type Linkage int

const (
	Internal Linkage = iota
	External
)

func (l Linkage) String() string {
	if l == External {
		return "external"
	}
	return "internal"
}

// Argument is a function parameter value (spec §3.5). It is a Value
// like any instruction result, but is never itself a User.
type Argument struct {
	valueBase
	name  string
	typ   *types.Type
	index int
}

var _ Value = (*Argument)(nil)

func (a *Argument) Name() string          { return a.name }
func (a *Argument) ValueType() *types.Type { return a.typ }
func (a *Argument) Index() int            { return a.index }
func (a *Argument) ReplaceAllUsesWith(other Value) {
	if other == Value(a) {
		return
	}
	replaceAllUsesWith(a, other)
}

// Local is a stack-named value addressable by LOAD/STORE, distinct from
// SSA values (spec glossary: "Local"). Its ValueType is always a
// pointer to the allocated type: a Local denotes an address.
type Local struct {
	valueBase
	name     string
	allocTyp *types.Type // the type of the storage, not of &storage
	align    int64
	ptrTyp   *types.Type
}

var _ Value = (*Local)(nil)

func (l *Local) Name() string             { return l.name }
func (l *Local) AllocatedType() *types.Type { return l.allocTyp }
func (l *Local) Align() int64             { return l.align }
func (l *Local) ValueType() *types.Type    { return l.ptrTyp }
func (l *Local) ReplaceAllUsesWith(other Value) {
	if other == Value(l) {
		return
	}
	replaceAllUsesWith(l, other)
}

// Function owns arguments, locals, a doubly-linked list of blocks, a
// linkage, and a function type (spec §3.5). Destroying a function
// destroys its blocks and locals.
type Function struct {
	name    string
	typ     *types.Type // KindFunction
	linkage Linkage

	args   []*Argument
	locals []*Local
	localByName map[string]*Local

	head, tail *BasicBlock
	nextResult uint32

	module *Module
}

func newFunction(m *Module, name string, typ *types.Type, linkage Linkage) *Function {
	f := &Function{
		name: name, typ: typ, linkage: linkage,
		localByName: make(map[string]*Local),
		module:      m,
	}
	for i, pt := range typ.Params() {
		f.args = append(f.args, &Argument{name: fmt.Sprintf("arg%d", i), typ: pt, index: i})
	}
	return f
}

func (f *Function) Name() string      { return f.name }
func (f *Function) Type() *types.Type { return f.typ }
func (f *Function) Linkage() Linkage  { return f.linkage }
func (f *Function) Module() *Module   { return f.module }

// Args returns the function's argument values in declaration order.
func (f *Function) Args() []*Argument { return f.args }

// GetArg returns the i-th argument value.
func (f *Function) GetArg(i int) *Argument { return f.args[i] }

// SetArg replaces the i-th argument's name (used by the lowering glue
// to bind parameter names from the AST); the Argument identity (and any
// existing uses of it) is preserved.
func (f *Function) SetArg(i int, name string) {
	f.args[i].name = name
}

// AddLocal allocates a new stack-named local of the given type and
// alignment, keyed by name. Fails with ErrDuplicateLocal if name is
// already in use.
func (f *Function) AddLocal(name string, allocType *types.Type, align int64) (*Local, error) {
	if _, ok := f.localByName[name]; ok {
		return nil, ErrDuplicateLocal
	}
	l := &Local{
		name: name, allocTyp: allocType, align: align,
		ptrTyp: f.module.Types().GetPointer(allocType),
	}
	f.locals = append(f.locals, l)
	f.localByName[name] = l
	return l, nil
}

// RemoveLocal removes a local previously added via AddLocal. It is the
// caller's responsibility to ensure no live uses of it remain.
func (f *Function) RemoveLocal(name string) {
	l, ok := f.localByName[name]
	if !ok {
		return
	}
	delete(f.localByName, name)
	for i, ll := range f.locals {
		if ll == l {
			f.locals = append(f.locals[:i], f.locals[i+1:]...)
			break
		}
	}
}

// Locals returns the function's stack-named locals in declaration order.
func (f *Function) Locals() []*Local { return f.locals }

// GetLocal looks up a local by name.
func (f *Function) GetLocal(name string) (*Local, bool) {
	l, ok := f.localByName[name]
	return l, ok
}

// Blocks returns the function's basic blocks in link order.
func (f *Function) Blocks() []*BasicBlock {
	out := make([]*BasicBlock, 0)
	for b := f.head; b != nil; b = b.next {
		out = append(out, b)
	}
	return out
}

// Entry returns the function's entry block, or nil if it has none yet.
func (f *Function) Entry() *BasicBlock { return f.head }

// NewBlock creates and appends a fresh basic block to the function.
func (f *Function) NewBlock(name string) *BasicBlock {
	b := newBasicBlock(name)
	b.parent = f
	b.prev = f.tail
	if f.tail != nil {
		f.tail.next = b
	} else {
		f.head = b
	}
	f.tail = b
	return b
}

// RemoveBlock splices b out of the function's block list and destroys
// its owned instructions.
func (f *Function) RemoveBlock(b *BasicBlock) {
	if b.parent != f {
		panic("siir: RemoveBlock called with a block that is not in this function")
	}
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		f.head = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	} else {
		f.tail = b.prev
	}
	b.prev, b.next, b.parent = nil, nil, nil
	b.destroy()
}

// nextResultID hands out fresh, function-unique positive result ids
// (spec §3.3 invariant iii: result ids are unique per function).
func (f *Function) nextResultID() uint32 {
	f.nextResult++
	return f.nextResult
}

// destroy destroys every block (which cascades to their instructions)
// and drops locals (spec §3.5).
func (f *Function) destroy() {
	for b := f.head; b != nil; {
		next := b.next
		b.destroy()
		b.prev, b.next, b.parent = nil, nil, nil
		b = next
	}
	f.head, f.tail = nil, nil
	f.locals = nil
	f.localByName = nil
}
