// Package siir implements the linear, typed, reference-counted-by-use
// SSA intermediate representation at the heart of the compiler (spec
// §3, §4.1-§4.5): values and use-edges, instructions, basic blocks,
// functions, and the top-level module graph.
//
// The reference pipeline represents each IR stage as its own tree-
// shaped package (rtl, ltl, linear, mach - see rtl/ast.go); ours is a
// single mutable pointer graph with back-edges instead, closer to
// golang.org/x/tools/go/ssa's Value/Referrers pair (see
// other_examples' golang-tools ssa/func.go, which implements the same
// def/use bookkeeping this package generalizes into an explicit Use
// edge type with its own constructor/destructor discipline).
package siir

import "github.com/statim-lang/statimc/internal/types"

// Value is anything in the graph that can be named and referenced by a
// Use edge: instruction results, function arguments, locals, and
// globals. Per spec §9's flattening guidance, this single interface
// replaces the source's Value -> User class hierarchy.
type Value interface {
	// ValueType returns the value's type, or nil for values that never
	// carry one (there are none among our concrete Values, but callers
	// that accept arbitrary Value should not assume non-nil for
	// instructions with ResultID() == 0).
	ValueType() *types.Type
	// NumUses reports the current number of live Use edges targeting
	// this value.
	NumUses() int
	// ReplaceAllUsesWith rewrites every edge currently targeting this
	// value to target other instead, operating on a snapshot so it is
	// reentrancy-safe within the same pass (spec §4.3). A no-op when
	// other == v.
	ReplaceAllUsesWith(other Value)

	addUse(u *Use)
	delUse(u *Use)
	usesSlice() []*Use
}

// valueBase factors the use-list bookkeeping shared by every concrete
// Value. Embedding it gives a type NumUses and the use-list hooks for
// free; ValueType and ReplaceAllUsesWith live on the concrete type.
type valueBase struct {
	uses []*Use
}

func (b *valueBase) addUse(u *Use) {
	b.uses = append(b.uses, u)
}

func (b *valueBase) delUse(u *Use) {
	for i, e := range b.uses {
		if e == u {
			b.uses = append(b.uses[:i], b.uses[i+1:]...)
			return
		}
	}
}

func (b *valueBase) usesSlice() []*Use { return b.uses }

func (b *valueBase) NumUses() int { return len(b.uses) }

// User is anything that can own Use edges pointing at other Values.
// Only *Instruction implements this in the current IR (spec §3.3): a
// user's operand list IS its set of outgoing Use edges.
type User interface {
	// Operands returns the live use edges this user owns, in semantic
	// (opcode-defined) order.
	Operands() []*Use
}

// Use is a directed edge value -> user (spec §3.2). Constructing a Use
// registers it on the referenced value's use list; destroying it (via
// Detach) unregisters it. Order within a value's use list is
// unspecified and never contains the same *Use pointer twice.
type Use struct {
	value Value
	user  User
}

// NewUse constructs a Use edge from value to user and registers it on
// value's use list. Passing a nil value is legal and constructs a use
// edge with no live target; such a Use is never present in any value's
// use list. (A void RETURN does not use one: it has no operand at all.)
func NewUse(value Value, user User) *Use {
	u := &Use{value: value, user: user}
	if value != nil {
		value.addUse(u)
	}
	return u
}

// Value returns the edge's current target, or nil for an optional
// operand slot that was never populated.
func (u *Use) Value() Value { return u.value }

// User returns the instruction that owns this edge.
func (u *Use) User() User { return u.user }

// Detach unregisters the edge from its target's use list. After
// Detach, the Use must not be reused.
func (u *Use) Detach() {
	if u.value != nil {
		u.value.delUse(u)
		u.value = nil
	}
}

// set retargets the edge to a new value, maintaining both values' use
// lists. A nil newValue detaches without re-registering.
func (u *Use) set(newValue Value) {
	if u.value == newValue {
		return
	}
	if u.value != nil {
		u.value.delUse(u)
	}
	u.value = newValue
	if newValue != nil {
		newValue.addUse(u)
	}
}

// replaceAllUsesWith is the shared implementation backing every
// concrete Value's ReplaceAllUsesWith: iterate a snapshot of the use
// list and retarget each edge, so it is safe even if other shares uses
// with v.
func replaceAllUsesWith(v Value, other Value) {
	uses := v.usesSlice()
	snapshot := make([]*Use, len(uses))
	copy(snapshot, uses)
	for _, u := range snapshot {
		u.set(other)
	}
}
