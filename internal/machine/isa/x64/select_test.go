package x64

import (
	"bytes"
	"strings"
	"testing"

	"github.com/statim-lang/statimc/internal/machine"
	"github.com/statim-lang/statimc/internal/siir"
	"github.com/statim-lang/statimc/internal/types"
)

func printToString(mfn *machine.MachineFunction) string {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFunction(mfn)
	return buf.String()
}

// TestSelectIdentityFunction covers end-to-end scenario 1: `id :: (x:
// i32) -> i32 { ret x; }` selects to `MOV32 %eax, v<id>:32; RET64`.
func TestSelectIdentityFunction(t *testing.T) {
	ctx := types.NewContext()
	m := siir.NewModuleWithTypes("m", ctx)
	fnType := ctx.GetFunction(ctx.Int32(), []*types.Type{ctx.Int32()})
	fn := m.NewFunction("id", fnType, siir.External)
	entry := fn.NewBlock("bb0")
	bd := siir.NewBuilder(fn)
	bd.SetInsertPoint(entry)
	bd.EmitReturn(fn.GetArg(0))

	mfn := NewInstSelection(types.X64SystemVLinux()).Run(fn)
	out := printToString(mfn)

	if !strings.Contains(out, "MOV32    %eax, v0:32") {
		t.Errorf("expected argument move to %%eax, got:\n%s", out)
	}
	if !strings.Contains(out, "RET64") {
		t.Errorf("expected RET64, got:\n%s", out)
	}
}

// TestSelectConstantReturn covers end-to-end scenario 2: `main :: ()
// -> i32 { ret 42; }` selects to `MOV32 %eax, $42; RET64`.
func TestSelectConstantReturn(t *testing.T) {
	ctx := types.NewContext()
	m := siir.NewModuleWithTypes("m", ctx)
	fnType := ctx.GetFunction(ctx.Int32(), nil)
	fn := m.NewFunction("main", fnType, siir.External)
	entry := fn.NewBlock("bb0")
	bd := siir.NewBuilder(fn)
	bd.SetInsertPoint(entry)
	c := bd.EmitConstantInt(ctx.Int32(), 42)
	bd.EmitReturn(c)

	mfn := NewInstSelection(types.X64SystemVLinux()).Run(fn)
	out := printToString(mfn)

	if !strings.Contains(out, "MOV32    %eax, $42") {
		t.Errorf("expected fused MOV32 %%eax, $42, got:\n%s", out)
	}
	if !strings.Contains(out, "RET64") {
		t.Errorf("expected RET64, got:\n%s", out)
	}
}

// TestSelectBranchIfJccInversion covers end-to-end scenario 6:
// BRANCH_IF(ICmpSLT a, b, T, F) with swapped targets emits JGE against
// the false block (NegJcc(JL) == JGE).
func TestSelectBranchIfJccInversion(t *testing.T) {
	ctx := types.NewContext()
	m := siir.NewModuleWithTypes("m", ctx)
	fnType := ctx.GetFunction(ctx.Int32(), []*types.Type{ctx.Int32(), ctx.Int32()})
	fn := m.NewFunction("f", fnType, siir.External)
	entry := fn.NewBlock("bb0")
	tBlock := fn.NewBlock("bb1")
	fBlock := fn.NewBlock("bb2")
	bd := siir.NewBuilder(fn)

	bd.SetInsertPoint(entry)
	cmp := bd.EmitCmp(siir.OpICmpSLT, fn.GetArg(0), fn.GetArg(1), ctx)
	bd.EmitBranchIf(cmp, tBlock, fBlock)

	bd.SetInsertPoint(tBlock)
	bd.EmitReturn(fn.GetArg(0))
	bd.SetInsertPoint(fBlock)
	bd.EmitReturn(fn.GetArg(1))

	mfn := NewInstSelection(types.X64SystemVLinux()).Run(fn)
	out := printToString(mfn)

	if !strings.Contains(out, "JGE") {
		t.Errorf("expected JGE from NegJcc(JL), got:\n%s", out)
	}
	if strings.Contains(out, "JL ") || strings.Contains(out, "JL    ") {
		t.Errorf("did not expect a direct JL, got:\n%s", out)
	}
}

func TestSelectDeadArithmeticStillSelects(t *testing.T) {
	ctx := types.NewContext()
	m := siir.NewModuleWithTypes("m", ctx)
	fnType := ctx.GetFunction(ctx.Int32(), nil)
	fn := m.NewFunction("deadmath", fnType, siir.External)
	entry := fn.NewBlock("bb0")
	bd := siir.NewBuilder(fn)
	bd.SetInsertPoint(entry)
	v1 := bd.EmitConstantInt(ctx.Int32(), 1)
	bd.EmitBinOp(siir.OpIAdd, v1, v1, ctx.Int32())
	bd.EmitReturn(v1)

	mfn := NewInstSelection(types.X64SystemVLinux()).Run(fn)
	if len(mfn.Blocks()) != 1 {
		t.Fatalf("expected 1 machine block, got %d", len(mfn.Blocks()))
	}
}
