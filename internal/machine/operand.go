package machine

// OperandKind discriminates the tagged union spec §3.7 describes for
// MachineOperand. Per spec §9's flattening guidance this replaces what
// the reference pipeline expresses as separate Go types per operand
// shape (rtl.Operation variants, ltl.AddressingMode) with one struct
// keyed by an enum.
type OperandKind int

const (
	OperandRegister OperandKind = iota
	OperandMemory
	OperandImmediate
	OperandBlockRef
	OperandSymbol
)

func (k OperandKind) String() string {
	switch k {
	case OperandRegister:
		return "Register"
	case OperandMemory:
		return "Memory"
	case OperandImmediate:
		return "Immediate"
	case OperandBlockRef:
		return "BlockRef"
	case OperandSymbol:
		return "Symbol"
	}
	return "?"
}

// Operand is a single MachineInst operand (spec §3.7). kill and dead
// are mutually exclusive: kill is only meaningful on a use (IsDef ==
// false) and dead only on a def (IsDef == true).
type Operand struct {
	kind OperandKind

	// OperandRegister
	reg        Register
	subreg     uint8 // bit width: 8, 16, 32, or 64
	isDef      bool
	isImplicit bool
	kill       bool
	dead       bool

	// OperandMemory
	baseReg Register
	disp    int32

	// OperandImmediate
	imm int64

	// OperandBlockRef
	block *MachineBasicBlock

	// OperandSymbol
	symbol string
}

func (o Operand) Kind() OperandKind { return o.kind }

func (o Operand) Reg() Register       { return o.reg }
func (o Operand) Subreg() uint8       { return o.subreg }
func (o Operand) IsDef() bool         { return o.isDef }
func (o Operand) IsImplicit() bool    { return o.isImplicit }
func (o Operand) IsKill() bool        { return o.kill }
func (o Operand) IsDead() bool        { return o.dead }
func (o Operand) BaseReg() Register   { return o.baseReg }
func (o Operand) Disp() int32         { return o.disp }
func (o Operand) Imm() int64          { return o.imm }
func (o Operand) Block() *MachineBasicBlock { return o.block }
func (o Operand) Symbol() string      { return o.symbol }

// UseReg builds a register-use operand (a read of reg at width
// subreg). implicit marks an operand not written in source form (e.g.
// a flags register implicitly read by Jcc).
func UseReg(reg Register, subreg uint8, implicit bool) Operand {
	return Operand{kind: OperandRegister, reg: reg, subreg: subreg, isImplicit: implicit}
}

// DefReg builds a register-def operand (a write to reg at width
// subreg).
func DefReg(reg Register, subreg uint8, implicit bool) Operand {
	return Operand{kind: OperandRegister, reg: reg, subreg: subreg, isDef: true, isImplicit: implicit}
}

// WithKill marks a use operand as the register's last use in this
// instruction (ignored, and returns o unchanged, if o is a def).
func (o Operand) WithKill() Operand {
	if o.kind == OperandRegister && !o.isDef {
		o.kill = true
	}
	return o
}

// WithDead marks a def operand as producing a value with no
// subsequent use (ignored, and returns o unchanged, if o is a use).
func (o Operand) WithDead() Operand {
	if o.kind == OperandRegister && o.isDef {
		o.dead = true
	}
	return o
}

// Mem builds a base+displacement memory operand.
func Mem(base Register, disp int32) Operand {
	return Operand{kind: OperandMemory, baseReg: base, disp: disp}
}

// Imm builds an immediate operand.
func Imm(v int64) Operand {
	return Operand{kind: OperandImmediate, imm: v}
}

// BlockRef builds an operand referencing a machine block (a jump/branch
// target).
func BlockRef(b *MachineBasicBlock) Operand {
	return Operand{kind: OperandBlockRef, block: b}
}

// Symbol builds an operand naming an external symbol (a direct call
// target).
func Symbol(s string) Operand {
	return Operand{kind: OperandSymbol, symbol: s}
}
