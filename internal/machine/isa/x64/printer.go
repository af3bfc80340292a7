package x64

import (
	"fmt"
	"io"
	"strings"

	"github.com/statim-lang/statimc/internal/machine"
)

// Printer renders a machine.Module in the textual form spec §4.8/§6.3
// defines, grounded on the reference pipeline's pkg/asm.Printer (same
// header-per-section, one-writer, no-buffering shape) but emitting this
// repository's own machine-IR dump format rather than GNU-as syntax:
// this printer is an observability contract (§6.3), not an assembler
// input.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

// PrintModule writes the "MACHINE CODE <arch>" header followed by every
// function in declaration order.
func (p *Printer) PrintModule(m *machine.Module) {
	fmt.Fprintf(p.w, "MACHINE CODE %s\n", m.Target.Arch)
	for _, fn := range m.Functions() {
		p.PrintFunction(fn)
	}
}

// PrintFunction writes one function's `<name>:` header, then its blocks
// in layout order.
func (p *Printer) PrintFunction(fn *machine.MachineFunction) {
	fmt.Fprintf(p.w, "%s:\n", fn.Name())
	for _, b := range fn.Blocks() {
		p.printBlock(b)
	}
}

func (p *Printer) printBlock(b *machine.MachineBasicBlock) {
	fmt.Fprintf(p.w, ".LBB%d:\n", b.Number())
	for i := b.First(); i != nil; i = i.Next() {
		p.printInst(i)
	}
}

func (p *Printer) printInst(i *machine.MachineInst) {
	mnemonic, operands := mnemonicAndOperands(i)

	var explicit, implicit []string
	for _, o := range operands {
		s := p.formatOperand(o)
		if o.Kind() == machine.OperandRegister && o.IsImplicit() {
			implicit = append(implicit, s)
		} else {
			explicit = append(explicit, s)
		}
	}

	fmt.Fprintf(p.w, "%s", mnemonic)
	if len(explicit) > 0 {
		fmt.Fprintf(p.w, "    %s", strings.Join(explicit, ", "))
	}
	if len(implicit) > 0 {
		fmt.Fprintf(p.w, "    ... %s", strings.Join(implicit, ", "))
	}
	fmt.Fprintf(p.w, "\n")
}

// mnemonicAndOperands resolves a MachineInst's printed opcode name and
// operand list. Jcc/SETcc carry their condition as an immediate operand
// (see select.go's ccOperand) rather than a separate field on
// MachineInst: the first operand of a Jcc, the last operand of a SETcc.
// The printer folds it into the mnemonic here and drops it from the
// operand list.
func mnemonicAndOperands(i *machine.MachineInst) (string, []machine.Operand) {
	op, ok := i.Opcode().(Opcode)
	if !ok {
		return i.Opcode().String(), i.Operands()
	}
	switch op {
	case OpJcc:
		ops := i.Operands()
		cc := JccOpcode(ops[0].Imm())
		return "J" + jccNames[cc][1:], ops[1:]
	case OpSetcc:
		ops := i.Operands()
		cc := JccOpcode(ops[len(ops)-1].Imm())
		return SetccMnemonic(cc), ops[:len(ops)-1]
	default:
		return op.String(), i.Operands()
	}
}

func (p *Printer) formatOperand(o machine.Operand) string {
	switch o.Kind() {
	case machine.OperandRegister:
		if o.Reg().IsVirtual() {
			return fmt.Sprintf("v%d:%d", o.Reg().VirtualIndex(), o.Subreg())
		}
		return "%" + RegisterName(o.Reg(), o.Subreg())
	case machine.OperandMemory:
		return fmt.Sprintf("[%s+%d]", "%"+RegisterName(o.BaseReg(), 64), o.Disp())
	case machine.OperandImmediate:
		return fmt.Sprintf("$%d", o.Imm())
	case machine.OperandBlockRef:
		return fmt.Sprintf(".LBB%d", o.Block().Number())
	case machine.OperandSymbol:
		return o.Symbol()
	}
	return "?"
}
