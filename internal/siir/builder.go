package siir

import "github.com/statim-lang/statimc/internal/types"

// Builder drives instruction construction into a "current block" cursor
// (spec §4.7: "Drives an InstBuilder that inserts instructions into a
// current block cursor"). IR lowering is the only intended caller;
// optimization passes mutate the graph directly through BasicBlock's
// list operations instead.
type Builder struct {
	fn      *Function
	current *BasicBlock
}

// NewBuilder creates a Builder targeting fn, with no current block set.
func NewBuilder(fn *Function) *Builder { return &Builder{fn: fn} }

// SetInsertPoint moves the cursor to the end of b.
func (bd *Builder) SetInsertPoint(b *BasicBlock) { bd.current = b }

// Current returns the block the cursor currently targets.
func (bd *Builder) Current() *BasicBlock { return bd.current }

func (bd *Builder) emit(inst *Instruction, definesValue bool) *Instruction {
	if definesValue {
		inst.resultID = bd.fn.nextResultID()
	}
	bd.current.PushBack(inst)
	return inst
}

// EmitConstantInt emits `v = CONSTANT <typ> value`.
func (bd *Builder) EmitConstantInt(typ *types.Type, value int64) *Instruction {
	i := newInst(OpConstant)
	i.typ = typ
	i.constInt = value
	return bd.emit(i, true)
}

// EmitConstantFloat emits `v = CONSTANT <typ> value` for a float payload.
func (bd *Builder) EmitConstantFloat(typ *types.Type, value float64) *Instruction {
	i := newInst(OpConstant)
	i.typ = typ
	i.constFloat = value
	i.constIsFloat = true
	return bd.emit(i, true)
}

// NewDetachedConstantInt builds a CONSTANT instruction that belongs to
// no block or function, for use only as a Global's initializer payload
// (spec §3.6: a Global's init is "an optional CONSTANT/STRING
// initializer, unattached to any block"). It carries no result id since
// nothing ever references it by SSA value; only its payload accessors
// (ConstInt/ConstFloat/ConstString) are read.
func NewDetachedConstantInt(typ *types.Type, value int64) *Instruction {
	i := newInst(OpConstant)
	i.typ = typ
	i.constInt = value
	return i
}

// NewDetachedConstantFloat is NewDetachedConstantInt's float counterpart.
func NewDetachedConstantFloat(typ *types.Type, value float64) *Instruction {
	i := newInst(OpConstant)
	i.typ = typ
	i.constFloat = value
	i.constIsFloat = true
	return i
}

// NewDetachedString builds a detached STRING instruction for use as a
// Global's initializer payload.
func NewDetachedString(ctx *types.Context, value string) *Instruction {
	i := newInst(OpString)
	i.typ = ctx.GetPointer(ctx.Int8())
	i.constStr = value
	return i
}

// EmitString emits `v = STRING value`, typed as a pointer to i8.
func (bd *Builder) EmitString(ctx *types.Context, value string) *Instruction {
	i := newInst(OpString)
	i.typ = ctx.GetPointer(ctx.Int8())
	i.constStr = value
	return bd.emit(i, true)
}

// EmitLoad emits `v = LOAD <typ> addr`, with align stored in the data word.
func (bd *Builder) EmitLoad(addr Value, typ *types.Type, align uint16) *Instruction {
	i := newInst(OpLoad)
	i.typ = typ
	i.data = align
	i.addOperand(addr)
	return bd.emit(i, true)
}

// EmitStore emits `STORE value, addr` with align in the data word. STORE
// never defines a result.
func (bd *Builder) EmitStore(value, addr Value, align uint16) *Instruction {
	i := newInst(OpStore)
	i.data = align
	i.addOperand(value)
	i.addOperand(addr)
	return bd.emit(i, false)
}

// EmitAccessPtr emits `v = ACCESS_PTR <typ> base, indices...` computing
// a derived address (field/element access) without dereferencing it.
func (bd *Builder) EmitAccessPtr(base Value, typ *types.Type, indices ...Value) *Instruction {
	i := newInst(OpAccessPtr)
	i.typ = typ
	i.addOperand(base)
	for _, idx := range indices {
		i.addOperand(idx)
	}
	return bd.emit(i, true)
}

// EmitSelect emits `v = SELECT cond, tval, fval`.
func (bd *Builder) EmitSelect(cond, tval, fval Value, typ *types.Type) *Instruction {
	i := newInst(OpSelect)
	i.typ = typ
	i.addOperand(cond)
	i.addOperand(tval)
	i.addOperand(fval)
	return bd.emit(i, true)
}

// EmitBranchIf terminates the current block with `BRANCH_IF cond, t, f`
// and wires the CFG successor edges.
func (bd *Builder) EmitBranchIf(cond Value, trueBlock, falseBlock *BasicBlock) *Instruction {
	i := newInst(OpBranchIf)
	i.addOperand(cond)
	i.blocks = []*BasicBlock{trueBlock, falseBlock}
	bd.current.AddSucc(trueBlock)
	bd.current.AddSucc(falseBlock)
	return bd.emit(i, false)
}

// EmitJump terminates the current block with `JUMP target`.
func (bd *Builder) EmitJump(target *BasicBlock) *Instruction {
	i := newInst(OpJump)
	i.blocks = []*BasicBlock{target}
	bd.current.AddSucc(target)
	return bd.emit(i, false)
}

// EmitPhi creates a PHI instruction at the head of the current block
// with no incoming edges yet; use AddIncoming to populate it.
func (bd *Builder) EmitPhi(typ *types.Type) *Instruction {
	i := newInst(OpPhi)
	i.typ = typ
	i.resultID = bd.fn.nextResultID()
	bd.current.PushFront(i)
	return i
}

// AddIncoming adds one (value, pred) edge to a PHI instruction. pred
// must be one of the block's actual CFG predecessors (spec §3.3
// invariant ii); the verifier checks this, not the builder.
func AddIncoming(phi *Instruction, value Value, pred *BasicBlock) {
	phi.addPhiOperand(value, pred)
}

// EmitReturn terminates the current block with `RETURN value`, or a
// bare `RETURN` when value is nil.
func (bd *Builder) EmitReturn(value Value) *Instruction {
	i := newInst(OpReturn)
	if value != nil {
		i.addOperand(value)
	}
	return bd.emit(i, false)
}

// EmitAbort terminates the current block with `ABORT`.
func (bd *Builder) EmitAbort() *Instruction {
	return bd.emit(newInst(OpAbort), false)
}

// EmitUnreachable terminates the current block with `UNREACHABLE`.
func (bd *Builder) EmitUnreachable() *Instruction {
	return bd.emit(newInst(OpUnreachable), false)
}

// EmitCallValue emits `v = CALL callee, args...` where callee is a
// regular SSA value (e.g. a function pointer).
func (bd *Builder) EmitCallValue(callee Value, args []Value, retType *types.Type) *Instruction {
	i := newInst(OpCall)
	i.typ = retType
	i.addOperand(callee)
	for _, a := range args {
		i.addOperand(a)
	}
	return bd.emit(i, retType != nil)
}

// EmitCallSymbol emits a direct call to an external/internal symbol by
// name, without a callee operand.
func (bd *Builder) EmitCallSymbol(symbol string, args []Value, retType *types.Type) *Instruction {
	i := newInst(OpCall)
	i.typ = retType
	i.callSymbol = symbol
	for _, a := range args {
		i.addOperand(a)
	}
	return bd.emit(i, retType != nil)
}

// EmitBinOp emits a two-operand arithmetic/bitwise instruction.
func (bd *Builder) EmitBinOp(op Opcode, lhs, rhs Value, typ *types.Type) *Instruction {
	i := newInst(op)
	i.typ = typ
	i.addOperand(lhs)
	i.addOperand(rhs)
	return bd.emit(i, true)
}

// EmitUnOp emits a one-operand arithmetic instruction (INEG/FNEG/NOT).
func (bd *Builder) EmitUnOp(op Opcode, operand Value, typ *types.Type) *Instruction {
	i := newInst(op)
	i.typ = typ
	i.addOperand(operand)
	return bd.emit(i, true)
}

// EmitCast emits a conversion instruction.
func (bd *Builder) EmitCast(op Opcode, operand Value, typ *types.Type) *Instruction {
	i := newInst(op)
	i.typ = typ
	i.addOperand(operand)
	return bd.emit(i, true)
}

// EmitCmp emits a comparison instruction, always typed Int1 (bool).
func (bd *Builder) EmitCmp(op Opcode, lhs, rhs Value, ctx *types.Context) *Instruction {
	i := newInst(op)
	i.typ = ctx.Int1()
	i.addOperand(lhs)
	i.addOperand(rhs)
	return bd.emit(i, true)
}
