package siir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Print writes m's functions in the textual form of spec §6.2. This
// form is an observability contract, not a required ingestion format:
// given the same IR, Print is a pure function of its state (spec §8
// determinism property).
func Print(w io.Writer, m *Module) {
	for i, f := range m.Functions() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printFunction(w, f)
	}
}

func printFunction(w io.Writer, f *Function) {
	params := make([]string, len(f.Args()))
	for i, a := range f.Args() {
		params[i] = fmt.Sprintf("%s: %s", a.Name(), a.ValueType().String())
	}
	ret := "void"
	if f.Type().Return() != nil {
		ret = f.Type().Return().String()
	}
	fmt.Fprintf(w, "%s(%s) -> %s {\n", f.Name(), strings.Join(params, ", "), ret)
	for _, b := range f.Blocks() {
		fmt.Fprintf(w, "bb%d:\n", b.Number())
		for i := b.First(); i != nil; i = i.Next() {
			fmt.Fprintf(w, "  %s\n", printInstruction(i))
		}
	}
	fmt.Fprintln(w, "}")
}

func printInstruction(i *Instruction) string {
	var sb strings.Builder
	if i.ResultID() != 0 {
		fmt.Fprintf(&sb, "v%d = ", i.ResultID())
	}
	sb.WriteString(i.Opcode().String())
	if i.ValueType() != nil {
		fmt.Fprintf(&sb, " %s", i.ValueType().String())
	}

	var operands []string
	switch i.Opcode() {
	case OpConstant:
		if i.ConstIsFloat() {
			operands = append(operands, strconv.FormatFloat(i.ConstFloat(), 'g', -1, 64))
		} else {
			operands = append(operands, strconv.FormatInt(i.ConstInt(), 10))
		}
	case OpString:
		operands = append(operands, strconv.Quote(i.ConstString()))
	case OpBranchIf:
		operands = append(operands, printValue(i.Operand(0)), "bb"+strconv.Itoa(i.Blocks()[0].Number()), "bb"+strconv.Itoa(i.Blocks()[1].Number()))
	case OpJump:
		operands = append(operands, "bb"+strconv.Itoa(i.Blocks()[0].Number()))
	case OpPhi:
		for _, p := range i.PhiOperands() {
			operands = append(operands, fmt.Sprintf("[%s, bb%d]", printValue(p.Value()), p.Pred().Number()))
		}
	case OpCall:
		if i.CallSymbol() != "" {
			operands = append(operands, i.CallSymbol())
		}
		for idx := 0; idx < i.NumOperands(); idx++ {
			operands = append(operands, printValue(i.Operand(idx)))
		}
	default:
		for idx := 0; idx < i.NumOperands(); idx++ {
			operands = append(operands, printValue(i.Operand(idx)))
		}
	}

	if len(operands) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(operands, ", "))
	}
	return sb.String()
}

func printValue(v Value) string {
	if v == nil {
		return "<none>"
	}
	switch val := v.(type) {
	case *Instruction:
		if val.ResultID() != 0 {
			return fmt.Sprintf("v%d", val.ResultID())
		}
		return "<void>"
	case *Argument:
		return val.Name()
	case *Local:
		return "%" + val.Name()
	case *Global:
		return "@" + val.Name()
	default:
		return "?"
	}
}
