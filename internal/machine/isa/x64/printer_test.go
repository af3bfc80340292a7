package x64

import (
	"bytes"
	"strings"
	"testing"

	"github.com/statim-lang/statimc/internal/machine"
	"github.com/statim-lang/statimc/internal/types"
)

func TestPrinterModuleHeader(t *testing.T) {
	m := machine.NewModule(types.X64SystemVLinux())
	fn := machine.NewMachineFunction("f")
	b := fn.NewBlock(nil)
	b.PushBack(machine.NewInst(OpRet))
	m.AddFunction(fn)

	var buf bytes.Buffer
	NewPrinter(&buf).PrintModule(m)
	out := buf.String()

	if !strings.HasPrefix(out, "MACHINE CODE x64\n") {
		t.Errorf("expected MACHINE CODE x64 header, got:\n%s", out)
	}
	if !strings.Contains(out, "f:\n") {
		t.Errorf("expected function header f:, got:\n%s", out)
	}
	if !strings.Contains(out, ".LBB0:\n") {
		t.Errorf("expected block label .LBB0:, got:\n%s", out)
	}
}

func TestPrinterOperandForms(t *testing.T) {
	fn := machine.NewMachineFunction("g")
	b0 := fn.NewBlock(nil)
	b1 := fn.NewBlock(nil)
	b0.AddSucc(b1)

	v := fn.FreshVReg(machine.GeneralPurpose)
	b0.PushBack(machine.NewInst(OpMov32, machine.DefReg(v, 32, false), machine.Imm(7)))
	b0.PushBack(machine.NewInst(OpMov32, machine.DefReg(RAX, 32, false), machine.Mem(RBP, -8)))
	b0.PushBack(machine.NewInst(OpCall, machine.Symbol("helper")))
	b0.PushBack(machine.NewInst(OpJmp, machine.BlockRef(b1)))

	var buf bytes.Buffer
	NewPrinter(&buf).PrintFunction(fn)
	out := buf.String()

	for _, want := range []string{
		"v0:32, $7",
		"%eax, [%rbp+-8]",
		"CALL    helper",
		"JMP    .LBB1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected printed output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrinterJccMnemonicAndImplicitOperands(t *testing.T) {
	fn := machine.NewMachineFunction("h")
	b0 := fn.NewBlock(nil)
	b1 := fn.NewBlock(nil)
	b0.AddSucc(b1)

	b0.PushBack(machine.NewInst(OpJcc, machine.Imm(int64(JGE)), machine.BlockRef(b1)))
	b0.PushBack(machine.NewInst(OpAdd,
		machine.DefReg(RAX, 32, false),
		machine.UseReg(RBX, 32, false),
		machine.UseReg(RAX, 64, true).WithKill(), // implicit flags-consuming use, stand-in
	))

	var buf bytes.Buffer
	NewPrinter(&buf).PrintFunction(fn)
	out := buf.String()

	if !strings.Contains(out, "JGE    .LBB1") {
		t.Errorf("expected JGE .LBB1, got:\n%s", out)
	}
	if !strings.Contains(out, "... %rax") {
		t.Errorf("expected implicit operand printed after '...', got:\n%s", out)
	}
}
