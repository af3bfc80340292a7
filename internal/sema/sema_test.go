package sema

import (
	"testing"

	"github.com/statim-lang/statimc/internal/ast"
	"github.com/statim-lang/statimc/internal/types"
)

func i32Ref() ast.TypeRef { return ast.TypeRef{Name: "i32"} }

// buildIdentityFn builds: id :: (x: i32) -> i32 { ret x; }
func buildIdentityFn() *ast.Program {
	xRef := &ast.ReferenceExpr{Name: "x"}
	fn := &ast.Function{
		Name:   "id",
		Params: []*ast.Parameter{{Name: "x", TypeRef: i32Ref()}},
		RetRef: i32Ref(),
		Body: &ast.Block{
			Stmts: []ast.Stmt{&ast.Ret{Value: xRef}},
		},
	}
	return &ast.Program{Decls: []ast.Decl{fn}}
}

func TestResolveIdentityFunction(t *testing.T) {
	ctx := types.NewContext()
	r := NewResolver(ctx)
	prog := buildIdentityFn()
	if err := r.Resolve(prog); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	fn := prog.Decls[0].(*ast.Function)
	ref := fn.Body.Stmts[0].(*ast.Ret).Value.(*ast.ReferenceExpr)
	if ref.Decl != fn.Params[0] {
		t.Errorf("ReferenceExpr.Decl not bound to the parameter decl")
	}
	if ref.ExprType() != ctx.Int32() {
		t.Errorf("ReferenceExpr type = %v, want i32 (identity)", ref.ExprType())
	}
}

func TestUnresolvedName(t *testing.T) {
	ctx := types.NewContext()
	r := NewResolver(ctx)
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "f",
			RetRef: ast.TypeRef{Name: "void"},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.ExprStmt{X: &ast.ReferenceExpr{Name: "nope"}},
			}},
		},
	}}
	err := r.Resolve(prog)
	if err == nil {
		t.Fatal("expected an UnresolvedName diagnostic")
	}
	dl := err.(*DiagnosticList)
	if dl.Items()[0].Kind != UnresolvedName {
		t.Errorf("diagnostic kind = %v, want UnresolvedName", dl.Items()[0].Kind)
	}
}

func TestStructFieldResolution(t *testing.T) {
	ctx := types.NewContext()
	r := NewResolver(ctx)
	sd := &ast.Struct{Name: "S", Fields: []*ast.Field{
		{Name: "a", TypeRef: ast.TypeRef{Name: "i8"}},
		{Name: "b", TypeRef: ast.TypeRef{Name: "i32"}},
	}}
	prog := &ast.Program{Decls: []ast.Decl{sd}}
	if err := r.Resolve(prog); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	st := ctx.GetStruct("S")
	if len(st.Fields()) != 2 || st.Fields()[1].Type != ctx.Int32() {
		t.Errorf("struct S fields not resolved correctly: %+v", st.Fields())
	}
}

func TestAddressOfRValueRejected(t *testing.T) {
	ctx := types.NewContext()
	r := NewResolver(ctx)
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "f",
			RetRef: ast.TypeRef{Name: "void"},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.ExprStmt{X: &ast.UnaryExpr{
					Op:      ast.OpAddressOf,
					Operand: &ast.IntegerLit{Value: 1},
				}},
			}},
		},
	}}
	err := r.Resolve(prog)
	if err == nil {
		t.Fatal("expected AddressOfRValue diagnostic")
	}
	if err.(*DiagnosticList).Items()[0].Kind != AddressOfRValue {
		t.Errorf("expected AddressOfRValue, got %v", err.(*DiagnosticList).Items()[0].Kind)
	}
}

func TestBreakOutsideLoop(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "f",
			RetRef: ast.TypeRef{Name: "void"},
			Body:   &ast.Block{Stmts: []ast.Stmt{&ast.Break{}}},
		},
	}}
	ctx := types.NewContext()
	r := NewResolver(ctx)
	if err := r.Resolve(prog); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Resolve has already set RetType to void; it is restated here because
	// the typechecker's return-type pass reads it.
	prog.Decls[0].(*ast.Function).RetType = ctx.Void()

	tc := NewTypeChecker()
	err := tc.CheckProgram(prog)
	if err == nil {
		t.Fatal("expected LoopControlOutsideLoop diagnostic")
	}
	if err.(*DiagnosticList).Items()[0].Kind != LoopControlOutsideLoop {
		t.Errorf("expected LoopControlOutsideLoop, got %v", err.(*DiagnosticList).Items()[0].Kind)
	}
}

func TestReturnTypeMismatch(t *testing.T) {
	ctx := types.NewContext()
	r := NewResolver(ctx)
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "f",
			RetRef: ast.TypeRef{Name: "void"},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Ret{Value: &ast.IntegerLit{Value: 1}},
			}},
		},
	}}
	if err := r.Resolve(prog); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	tc := NewTypeChecker()
	err := tc.CheckProgram(prog)
	if err == nil {
		t.Fatal("expected ReturnTypeMismatch diagnostic")
	}
	if err.(*DiagnosticList).Items()[0].Kind != ReturnTypeMismatch {
		t.Errorf("expected ReturnTypeMismatch, got %v", err.(*DiagnosticList).Items()[0].Kind)
	}
}

func TestCheckReturnInsertsImplicitCast(t *testing.T) {
	ctx := types.NewContext()
	r := NewResolver(ctx)
	retStmt := &ast.Ret{Value: &ast.IntegerLit{Value: 1}}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "f",
			RetRef: ast.TypeRef{Name: "i64"},
			Body:   &ast.Block{Stmts: []ast.Stmt{retStmt}},
		},
	}}
	if err := r.Resolve(prog); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	tc := NewTypeChecker()
	if err := tc.CheckProgram(prog); err != nil {
		t.Fatalf("CheckProgram: %v (widening i32->i64 should not diagnose)", err)
	}

	cast, ok := retStmt.Value.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected ret value rewritten to *ast.CastExpr, got %T", retStmt.Value)
	}
	if cast.ExprType() != ctx.Int64() {
		t.Errorf("cast target = %v, want i64", cast.ExprType())
	}
	if _, ok := cast.Operand.(*ast.IntegerLit); !ok {
		t.Errorf("cast operand = %T, want the original IntegerLit", cast.Operand)
	}
}

func TestCheckAssignInsertsImplicitCast(t *testing.T) {
	ctx := types.NewContext()
	r := NewResolver(ctx)
	lhs := &ast.ReferenceExpr{Name: "x"}
	assign := &ast.BinaryExpr{Op: ast.OpAssign, LHS: lhs, RHS: &ast.IntegerLit{Value: 1}}
	fn := &ast.Function{
		Name:   "f",
		RetRef: ast.TypeRef{Name: "void"},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.DeclStmt{D: &ast.Variable{Name: "x", HasType: true, TypeRef: ast.TypeRef{Name: "i64"}}},
			&ast.ExprStmt{X: assign},
		}},
	}
	prog := &ast.Program{Decls: []ast.Decl{fn}}
	if err := r.Resolve(prog); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	tc := NewTypeChecker()
	if err := tc.CheckProgram(prog); err != nil {
		t.Fatalf("CheckProgram: %v (widening i32->i64 should not diagnose)", err)
	}

	cast, ok := assign.RHS.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected assignment RHS rewritten to *ast.CastExpr, got %T", assign.RHS)
	}
	if cast.ExprType() != ctx.Int64() {
		t.Errorf("cast target = %v, want i64", cast.ExprType())
	}
}

func TestCheckClassification(t *testing.T) {
	ctx := types.NewContext()
	i32, i64, f32 := ctx.Int32(), ctx.Int64(), ctx.Float32()

	if got := Check(i32, i32, Exact); got != NoCast {
		t.Errorf("identical types under Exact = %v, want NoCast", got)
	}
	if got := Check(i32, i64, Exact); got != Incompatible {
		t.Errorf("widen under Exact = %v, want Incompatible", got)
	}
	if got := Check(i32, i64, AllowImplicit); got != ImplicitCast {
		t.Errorf("i32->i64 under AllowImplicit = %v, want ImplicitCast", got)
	}
	if got := Check(i64, i32, AllowImplicit); got != Incompatible {
		t.Errorf("narrowing i64->i32 under AllowImplicit = %v, want Incompatible", got)
	}
	if got := Check(i32, f32, AllowImplicit); got != ImplicitCast {
		t.Errorf("i32->f32 under AllowImplicit = %v, want ImplicitCast", got)
	}
	ptr := ctx.GetPointer(i32)
	if got := Check(ptr, i64, Loose); got != ImplicitCast {
		t.Errorf("pointer->int under Loose = %v, want ImplicitCast", got)
	}
	if got := Check(ptr, i64, AllowImplicit); got != Incompatible {
		t.Errorf("pointer->int under AllowImplicit = %v, want Incompatible", got)
	}
}
