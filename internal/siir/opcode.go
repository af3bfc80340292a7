package siir

// Opcode is the closed set of SIIR instruction opcodes (spec §4.4).
// Grouped the way the reference RTL operation set is grouped (see
// rtl/ast.go's Operation variants), but flattened into one enum instead
// of one Go type per operation: SIIR instructions already carry an
// explicit operand list, so a single Opcode discriminator is enough.
type Opcode int

const (
	OpNop Opcode = iota
	OpConstant
	OpString
	OpLoad
	OpStore
	OpAccessPtr
	OpSelect
	OpBranchIf
	OpJump
	OpPhi
	OpReturn
	OpAbort
	OpUnreachable
	OpCall

	// Integer arithmetic.
	OpIAdd
	OpISub
	OpIMul
	OpIDiv
	OpIRem

	// Float arithmetic.
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFRem

	// Signed/unsigned variants used where a distinct encoding matters.
	OpSDiv
	OpSRem
	OpUDiv
	OpURem

	// Bitwise.
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpSar
	OpNot

	// Unary negation.
	OpINeg
	OpFNeg

	// Conversions.
	OpSExt
	OpZExt
	OpFExt
	OpITrunc
	OpFTrunc
	OpSI2FP
	OpUI2FP
	OpFP2SI
	OpFP2UI
	OpP2I
	OpI2P
	OpReinterpret

	// Integer comparison predicates.
	OpICmpEQ
	OpICmpNE
	OpICmpSLT
	OpICmpSLE
	OpICmpSGT
	OpICmpSGE
	OpICmpULT
	OpICmpULE
	OpICmpUGT
	OpICmpUGE

	// Ordered float comparison predicates.
	OpFCmpOEQ
	OpFCmpONE
	OpFCmpOLT
	OpFCmpOLE
	OpFCmpOGT
	OpFCmpOGE

	// Unordered float comparison predicates.
	OpFCmpUNEQ
	OpFCmpUNNE
	OpFCmpUNLT
	OpFCmpUNLE
	OpFCmpUNGT
	OpFCmpUNGE

	opcodeCount
)

var opcodeNames = [...]string{
	OpNop: "NOP", OpConstant: "CONSTANT", OpString: "STRING", OpLoad: "LOAD",
	OpStore: "STORE", OpAccessPtr: "ACCESS_PTR", OpSelect: "SELECT",
	OpBranchIf: "BRANCH_IF", OpJump: "JUMP", OpPhi: "PHI", OpReturn: "RETURN",
	OpAbort: "ABORT", OpUnreachable: "UNREACHABLE", OpCall: "CALL",
	OpIAdd: "IADD", OpISub: "ISUB", OpIMul: "IMUL", OpIDiv: "IDIV", OpIRem: "IREM",
	OpFAdd: "FADD", OpFSub: "FSUB", OpFMul: "FMUL", OpFDiv: "FDIV", OpFRem: "FREM",
	OpSDiv: "SDIV", OpSRem: "SREM", OpUDiv: "UDIV", OpURem: "UREM",
	OpAnd: "AND", OpOr: "OR", OpXor: "XOR", OpShl: "SHL", OpShr: "SHR", OpSar: "SAR", OpNot: "NOT",
	OpINeg: "INEG", OpFNeg: "FNEG",
	OpSExt: "SEXT", OpZExt: "ZEXT", OpFExt: "FEXT", OpITrunc: "ITRUNC", OpFTrunc: "FTRUNC",
	OpSI2FP: "SI2FP", OpUI2FP: "UI2FP", OpFP2SI: "FP2SI", OpFP2UI: "FP2UI",
	OpP2I: "P2I", OpI2P: "I2P", OpReinterpret: "REINTERPRET",
	OpICmpEQ: "IEQ", OpICmpNE: "INE", OpICmpSLT: "SLT", OpICmpSLE: "SLE",
	OpICmpSGT: "SGT", OpICmpSGE: "SGE", OpICmpULT: "ULT", OpICmpULE: "ULE",
	OpICmpUGT: "UGT", OpICmpUGE: "UGE",
	OpFCmpOEQ: "OEQ", OpFCmpONE: "ONE", OpFCmpOLT: "OLT", OpFCmpOLE: "OLE",
	OpFCmpOGT: "OGT", OpFCmpOGE: "OGE",
	OpFCmpUNEQ: "UNEQ", OpFCmpUNNE: "UNNE", OpFCmpUNLT: "UNLT", OpFCmpUNLE: "UNLE",
	OpFCmpUNGT: "UNGT", OpFCmpUNGE: "UNGE",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return "?"
}

// IsTerminator reports whether op ends a basic block (spec §4.4).
func (op Opcode) IsTerminator() bool {
	switch op {
	case OpBranchIf, OpJump, OpReturn, OpAbort, OpUnreachable:
		return true
	}
	return false
}

// IsComparison reports whether op is one of the integer or float
// comparison predicates.
func (op Opcode) IsComparison() bool {
	return op >= OpICmpEQ && op <= OpFCmpUNGE
}

// IsOrderedCmp reports whether op is an ordered float comparison.
func (op Opcode) IsOrderedCmp() bool {
	return op >= OpFCmpOEQ && op <= OpFCmpOGE
}

// IsUnorderedCmp reports whether op is an unordered float comparison.
func (op Opcode) IsUnorderedCmp() bool {
	return op >= OpFCmpUNEQ && op <= OpFCmpUNGE
}

// IsCast reports whether op is a conversion opcode.
func (op Opcode) IsCast() bool {
	switch op {
	case OpSExt, OpZExt, OpFExt, OpITrunc, OpFTrunc, OpSI2FP, OpUI2FP,
		OpFP2SI, OpFP2UI, OpP2I, OpI2P, OpReinterpret:
		return true
	}
	return false
}

// OperatesOnFloats reports whether op is a float arithmetic, negation,
// or comparison opcode.
func (op Opcode) OperatesOnFloats() bool {
	switch op {
	case OpFAdd, OpFSub, OpFMul, OpFDiv, OpFRem, OpFNeg:
		return true
	}
	return op.IsOrderedCmp() || op.IsUnorderedCmp()
}

// isSideEffectFree reports whether op, with no uses, can be removed by
// trivial-DCE without observing a side effect (spec §4.4). STORE,
// CALL, and every terminator are excluded even though some terminators
// (e.g. JUMP) have no result, because removing them would change
// control flow.
func (op Opcode) isSideEffectFree() bool {
	if op.IsTerminator() || op == OpStore || op == OpCall {
		return false
	}
	return true
}
