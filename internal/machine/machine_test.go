package machine

import (
	"testing"

	"github.com/statim-lang/statimc/internal/types"
)

type testOpcode string

func (o testOpcode) String() string { return string(o) }

func TestRegisterNamespaces(t *testing.T) {
	phys := Register(5)
	if !phys.IsPhysical() || phys.IsVirtual() {
		t.Errorf("Register(5) = physical %v virtual %v, want physical", phys.IsPhysical(), phys.IsVirtual())
	}
	v0 := VirtualRegister(0)
	if v0.IsPhysical() || !v0.IsVirtual() {
		t.Errorf("VirtualRegister(0) = physical %v virtual %v, want virtual", v0.IsPhysical(), v0.IsVirtual())
	}
	if v0.VirtualIndex() != 0 {
		t.Errorf("VirtualIndex = %d, want 0", v0.VirtualIndex())
	}
	v3 := VirtualRegister(3)
	if v3.VirtualIndex() != 3 {
		t.Errorf("VirtualIndex = %d, want 3", v3.VirtualIndex())
	}
	if NoRegister.IsPhysical() || NoRegister.IsVirtual() {
		t.Errorf("NoRegister should be neither physical nor virtual")
	}
}

func TestOperandKillDeadExclusivity(t *testing.T) {
	use := UseReg(Register(1), 32, false).WithKill()
	if !use.IsKill() {
		t.Errorf("use operand WithKill should set kill")
	}
	useAsDead := use.WithDead() // wrong side: should be a no-op
	if useAsDead.IsDead() {
		t.Errorf("WithDead on a use operand must not set dead")
	}

	def := DefReg(Register(1), 32, false).WithDead()
	if !def.IsDead() {
		t.Errorf("def operand WithDead should set dead")
	}
	defAsKill := def.WithKill() // wrong side: should be a no-op
	if defAsKill.IsKill() {
		t.Errorf("WithKill on a def operand must not set kill")
	}
}

func TestMachineInstOperandCounts(t *testing.T) {
	inst := NewInst(testOpcode("ADD"),
		DefReg(Register(1), 32, false),
		UseReg(Register(2), 32, false),
		UseReg(Register(3), 32, false),
		UseReg(Register(4), 0, true), // implicit flags read
	)
	if got := inst.NumDefs(); got != 1 {
		t.Errorf("NumDefs = %d, want 1", got)
	}
	if got := inst.NumUses(); got != 3 {
		t.Errorf("NumUses = %d, want 3", got)
	}
	if got := inst.NumImplicit(); got != 1 {
		t.Errorf("NumImplicit = %d, want 1", got)
	}
	if got := inst.NumExplicit(); got != 3 {
		t.Errorf("NumExplicit = %d, want 3", got)
	}
}

func TestMachineBasicBlockLinking(t *testing.T) {
	fn := NewMachineFunction("f")
	b0 := fn.NewBlock(nil)
	b1 := fn.NewBlock(nil)
	if b0.Number() != 0 || b1.Number() != 1 {
		t.Errorf("block numbers = %d, %d, want 0, 1", b0.Number(), b1.Number())
	}
	b0.AddSucc(b1)
	if len(b0.Succs()) != 1 || b0.Succs()[0] != b1 {
		t.Errorf("b0 successors = %v, want [b1]", b0.Succs())
	}
	if len(b1.Preds()) != 1 || b1.Preds()[0] != b0 {
		t.Errorf("b1 predecessors = %v, want [b0]", b1.Preds())
	}

	i1 := NewInst(testOpcode("NOP"))
	i2 := NewInst(testOpcode("NOP"))
	b0.PushBack(i1)
	b0.PushBack(i2)
	if b0.First() != i1 || b0.Last() != i2 {
		t.Errorf("block instruction order wrong")
	}
	if len(b0.Instructions()) != 2 {
		t.Errorf("Instructions() length = %d, want 2", len(b0.Instructions()))
	}
}

func TestFunctionStackInfoAllocatesDescendingAlignedSlots(t *testing.T) {
	var stack FunctionStackInfo
	a := stack.AddSlot(4, 4)
	b := stack.AddSlot(8, 8)
	if a.Offset != -4 {
		t.Errorf("first slot offset = %d, want -4", a.Offset)
	}
	if b.Offset != -16 {
		t.Errorf("second slot offset = %d, want -16 (aligned to 8)", b.Offset)
	}
	if stack.FrameSize() != 16 {
		t.Errorf("FrameSize = %d, want 16", stack.FrameSize())
	}
}

func TestFunctionRegisterInfoTracksClass(t *testing.T) {
	fn := NewMachineFunction("f")
	r := fn.FreshVReg(FloatingPoint)
	info := fn.Registers.Get(r)
	if info == nil {
		t.Fatal("expected VRegInfo for freshly minted register")
	}
	if info.Class != FloatingPoint {
		t.Errorf("class = %v, want FloatingPoint", info.Class)
	}
	if info.Phys != NoRegister {
		t.Errorf("Phys = %v, want NoRegister before allocation", info.Phys)
	}
}

func TestMachineModuleAddFunction(t *testing.T) {
	m := NewModule(types.X64SystemVLinux())
	m.AddFunction(NewMachineFunction("f"))
	if len(m.Functions()) != 1 {
		t.Errorf("Functions() length = %d, want 1", len(m.Functions()))
	}
}
