package lower

import (
	"testing"

	"github.com/statim-lang/statimc/internal/ast"
	"github.com/statim-lang/statimc/internal/sema"
	"github.com/statim-lang/statimc/internal/siir"
	"github.com/statim-lang/statimc/internal/types"
)

func i32Ref() ast.TypeRef  { return ast.TypeRef{Name: "i32"} }
func voidRef() ast.TypeRef { return ast.TypeRef{Name: "void"} }

// compile runs the full sema -> lower pipeline over prog and returns the
// resulting module, sharing one type context across every stage the way
// the library entrypoint pipeline.Compile does.
func compile(t *testing.T, prog *ast.Program, moduleName string) *siir.Module {
	t.Helper()
	ctx := types.NewContext()
	module := siir.NewModuleWithTypes(moduleName, ctx)

	r := sema.NewResolver(ctx)
	if err := r.Resolve(prog); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	tc := sema.NewTypeChecker()
	if err := tc.CheckProgram(prog); err != nil {
		t.Fatalf("CheckProgram: %v", err)
	}

	target := types.X64SystemVLinux()
	l := NewLowerer(module, &target)
	if err := l.LowerProgram(prog); err != nil {
		t.Fatalf("LowerProgram: %v", err)
	}
	if err := siir.Verify(module); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return module
}

func allInstructions(f *siir.Function) []*siir.Instruction {
	var out []*siir.Instruction
	for _, b := range f.Blocks() {
		for i := b.First(); i != nil; i = i.Next() {
			out = append(out, i)
		}
	}
	return out
}

func countOpcode(f *siir.Function, op siir.Opcode) int {
	n := 0
	for _, i := range allInstructions(f) {
		if i.Opcode() == op {
			n++
		}
	}
	return n
}

// TestLowerIdentity covers spec §8 scenario 1: a parameter is spilled
// to a local on entry and returned through a load.
func TestLowerIdentity(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "id",
			Params: []*ast.Parameter{{Name: "x", TypeRef: i32Ref()}},
			RetRef: i32Ref(),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Ret{Value: &ast.ReferenceExpr{Name: "x"}},
			}},
		},
	}}
	m := compile(t, prog, "identity")
	fn, ok := m.GetFunction("id")
	if !ok {
		t.Fatal("function \"id\" not found")
	}
	if got := countOpcode(fn, siir.OpStore); got != 1 {
		t.Errorf("STORE count = %d, want 1 (parameter spill)", got)
	}
	if got := countOpcode(fn, siir.OpLoad); got != 1 {
		t.Errorf("LOAD count = %d, want 1", got)
	}
	ret := fn.Entry().Terminator()
	if ret == nil || ret.Opcode() != siir.OpReturn {
		t.Fatalf("entry block terminator = %v, want RETURN", ret)
	}
	if ret.Operand(0) == nil {
		t.Errorf("RETURN has no operand")
	}
}

// TestLowerConstantReturn covers spec §8 scenario 2.
func TestLowerConstantReturn(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "answer",
			RetRef: i32Ref(),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Ret{Value: &ast.IntegerLit{Value: 42}},
			}},
		},
	}}
	m := compile(t, prog, "constret")
	fn, _ := m.GetFunction("answer")
	ret := fn.Entry().Terminator()
	if ret == nil || ret.Opcode() != siir.OpReturn {
		t.Fatalf("terminator = %v, want RETURN", ret)
	}
	cst, ok := ret.Operand(0).(*siir.Instruction)
	if !ok || cst.Opcode() != siir.OpConstant || cst.ConstInt() != 42 {
		t.Errorf("RETURN operand = %v, want CONSTANT 42", ret.Operand(0))
	}
}

// TestLowerIfElseSelect covers spec §8 scenario 3: a three-block
// then/else/merge diamond, with both arms returning so merge never
// falls through.
func TestLowerIfElseSelect(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "choose",
			Params: []*ast.Parameter{{Name: "x", TypeRef: i32Ref()}},
			RetRef: i32Ref(),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.If{
					Cond: &ast.BinaryExpr{
						Op:  ast.OpGt,
						LHS: &ast.ReferenceExpr{Name: "x"},
						RHS: &ast.IntegerLit{Value: 0},
					},
					Then: &ast.Block{Stmts: []ast.Stmt{&ast.Ret{Value: &ast.IntegerLit{Value: 1}}}},
					Else: &ast.Block{Stmts: []ast.Stmt{&ast.Ret{Value: &ast.IntegerLit{Value: 2}}}},
				},
			}},
		},
	}}
	m := compile(t, prog, "select")
	fn, _ := m.GetFunction("choose")
	blocks := fn.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("block count = %d, want 4 (entry, then, else, merge)", len(blocks))
	}
	entryTerm := blocks[0].Terminator()
	if entryTerm == nil || entryTerm.Opcode() != siir.OpBranchIf {
		t.Fatalf("entry terminator = %v, want BRANCH_IF", entryTerm)
	}
	for _, name := range []string{"if.then", "if.else"} {
		found := false
		for _, b := range blocks {
			if b.Name() == name {
				found = true
				if term := b.Terminator(); term == nil || term.Opcode() != siir.OpReturn {
					t.Errorf("block %q terminator = %v, want RETURN", name, term)
				}
			}
		}
		if !found {
			t.Errorf("missing block %q", name)
		}
	}
}

// TestLowerDeadArithmeticDCE covers spec §8 scenario 4: an unused
// arithmetic expression statement lowers to dead instructions that
// trivial-DCE removes down to a fixed point.
func TestLowerDeadArithmeticDCE(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "deadmath",
			RetRef: voidRef(),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.ExprStmt{X: &ast.BinaryExpr{
					Op:  ast.OpAdd,
					LHS: &ast.IntegerLit{Value: 1},
					RHS: &ast.IntegerLit{Value: 2},
				}},
				&ast.Ret{},
			}},
		},
	}}
	m := compile(t, prog, "deadmath")
	fn, _ := m.GetFunction("deadmath")
	before := len(allInstructions(fn))
	removed := siir.RunTrivialDCE(m)
	if removed != before-1 {
		t.Errorf("removed = %d, want %d (everything but RETURN)", removed, before-1)
	}
	remaining := allInstructions(fn)
	if len(remaining) != 1 || remaining[0].Opcode() != siir.OpReturn {
		t.Errorf("remaining instructions = %v, want just RETURN", remaining)
	}
	if siir.RunTrivialDCE(m) != 0 {
		t.Errorf("second DCE pass removed instructions; want idempotent fixed point")
	}
}

// TestLowerStructFieldAccess covers struct layout lowering: a pointer
// parameter's field read lowers to ACCESS_PTR (addressing the field)
// followed by LOAD.
func TestLowerStructFieldAccess(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Struct{Name: "Point", Fields: []*ast.Field{
			{Name: "a", TypeRef: ast.TypeRef{Name: "i8"}},
			{Name: "b", TypeRef: i32Ref()},
		}},
		&ast.Function{
			Name:   "getB",
			Params: []*ast.Parameter{{Name: "p", TypeRef: ast.TypeRef{Name: "Point", Indirection: 1}}},
			RetRef: i32Ref(),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Ret{Value: &ast.MemberExpr{Base: &ast.ReferenceExpr{Name: "p"}, Field: "b"}},
			}},
		},
	}}
	m := compile(t, prog, "structs")
	fn, _ := m.GetFunction("getB")
	var access *siir.Instruction
	for _, i := range allInstructions(fn) {
		if i.Opcode() == siir.OpAccessPtr {
			access = i
		}
	}
	if access == nil {
		t.Fatal("no ACCESS_PTR instruction found")
	}
	idx, ok := access.Operand(1).(*siir.Instruction)
	if !ok || idx.Opcode() != siir.OpConstant || idx.ConstInt() != 1 {
		t.Errorf("ACCESS_PTR index operand = %v, want CONSTANT 1 (field b)", access.Operand(1))
	}
	ret := fn.Entry().Terminator()
	if ret == nil || ret.Opcode() != siir.OpReturn {
		t.Fatalf("terminator = %v, want RETURN", ret)
	}
	load, ok := ret.Operand(0).(*siir.Instruction)
	if !ok || load.Opcode() != siir.OpLoad {
		t.Errorf("RETURN operand = %v, want LOAD", ret.Operand(0))
	}
}

// TestLowerComparison covers the Jcc-relevant case: a relational
// operator lowers to the signed integer comparison predicate.
func TestLowerComparison(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name: "less",
			Params: []*ast.Parameter{
				{Name: "x", TypeRef: i32Ref()},
				{Name: "y", TypeRef: i32Ref()},
			},
			RetRef: ast.TypeRef{Name: "bool"},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Ret{Value: &ast.BinaryExpr{
					Op:  ast.OpLt,
					LHS: &ast.ReferenceExpr{Name: "x"},
					RHS: &ast.ReferenceExpr{Name: "y"},
				}},
			}},
		},
	}}
	m := compile(t, prog, "cmp")
	fn, _ := m.GetFunction("less")
	ret := fn.Entry().Terminator()
	cmp, ok := ret.Operand(0).(*siir.Instruction)
	if !ok || cmp.Opcode() != siir.OpICmpSLT {
		t.Errorf("RETURN operand = %v, want ICmpSLT", ret.Operand(0))
	}
	if cmp.ValueType().Kind() != types.KindInt1 {
		t.Errorf("comparison result type = %v, want i1", cmp.ValueType())
	}
}
