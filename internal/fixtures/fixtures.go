// Package fixtures builds the AST trees the six end-to-end scenarios
// name, standing in for the parser this repository does not implement
// (spec §6.1). Each fixture is a Go struct literal tree, the same shape
// internal/sema and internal/lower's own tests construct by hand.
package fixtures

import "github.com/statim-lang/statimc/internal/ast"

func i32Ref() ast.TypeRef  { return ast.TypeRef{Name: "i32"} }
func voidRef() ast.TypeRef { return ast.TypeRef{Name: "void"} }
func boolRef() ast.TypeRef { return ast.TypeRef{Name: "bool"} }

// Fixture names every built-in program, usable as a CLI positional
// argument (`statimc compile <name>`) and as the lookup key into the
// All registry below.
type Fixture struct {
	Name        string
	Description string
	Build       func() *ast.Program
}

// Identity covers scenario 1: `id :: (x: i32) -> i32 { ret x; }`.
func Identity() *ast.Program {
	return &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "id",
			Params: []*ast.Parameter{{Name: "x", TypeRef: i32Ref()}},
			RetRef: i32Ref(),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Ret{Value: &ast.ReferenceExpr{Name: "x"}},
			}},
		},
	}}
}

// ConstantReturn covers scenario 2: `main :: () -> i32 { ret 42; }`.
func ConstantReturn() *ast.Program {
	return &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name:   "main",
			RetRef: i32Ref(),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Ret{Value: &ast.IntegerLit{Value: 42}},
			}},
		},
	}}
}

// IfElseSelect covers scenario 3:
// `f :: (b: bool, x: i32, y: i32) -> i32 { if b { ret x; } else { ret y; } }`.
func IfElseSelect() *ast.Program {
	return &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name: "f",
			Params: []*ast.Parameter{
				{Name: "b", TypeRef: boolRef()},
				{Name: "x", TypeRef: i32Ref()},
				{Name: "y", TypeRef: i32Ref()},
			},
			RetRef: i32Ref(),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.If{
					Cond: &ast.ReferenceExpr{Name: "b"},
					Then: &ast.Block{Stmts: []ast.Stmt{
						&ast.Ret{Value: &ast.ReferenceExpr{Name: "x"}},
					}},
					Else: &ast.Block{Stmts: []ast.Stmt{
						&ast.Ret{Value: &ast.ReferenceExpr{Name: "y"}},
					}},
				},
			}},
		},
	}}
}

// DeadArithmetic covers scenario 4: an unused IADD the trivial-DCE
// pass removes down to a fixed point.
func DeadArithmetic() *ast.Program {
	return &ast.Program{Decls: []ast.Decl{
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
}

// StructFieldAccess covers the struct-layout scenario (scenario 5's
// program-shaped counterpart): `struct Point { a: i8; b: i32; }` with a
// function reading field b through a pointer, exercising ACCESS_PTR and
// FieldOffset together.
func StructFieldAccess() *ast.Program {
	return &ast.Program{Decls: []ast.Decl{
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
}

// JccInversion covers scenario 6: `less :: (x: i32, y: i32) -> i32 {
// if x < y { ret x; } else { ret y; } }`, whose BRANCH_IF selects with
// swapped targets and forces NegJcc(JL) = JGE.
func JccInversion() *ast.Program {
	return &ast.Program{Decls: []ast.Decl{
		&ast.Function{
			Name: "less",
			Params: []*ast.Parameter{
				{Name: "x", TypeRef: i32Ref()},
				{Name: "y", TypeRef: i32Ref()},
			},
			RetRef: i32Ref(),
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.If{
					Cond: &ast.BinaryExpr{
						Op:  ast.OpLt,
						LHS: &ast.ReferenceExpr{Name: "x"},
						RHS: &ast.ReferenceExpr{Name: "y"},
					},
					Then: &ast.Block{Stmts: []ast.Stmt{
						&ast.Ret{Value: &ast.ReferenceExpr{Name: "x"}},
					}},
					Else: &ast.Block{Stmts: []ast.Stmt{
						&ast.Ret{Value: &ast.ReferenceExpr{Name: "y"}},
					}},
				},
			}},
		},
	}}
}

// All lists every built-in fixture in scenario order, the registry
// cmd/statimc's `compile` subcommand resolves `<fixture-name>` against.
var All = []Fixture{
	{Name: "identity", Description: "scenario 1: identity function", Build: Identity},
	{Name: "constant-return", Description: "scenario 2: constant return", Build: ConstantReturn},
	{Name: "if-else", Description: "scenario 3: if/else select", Build: IfElseSelect},
	{Name: "dead-arithmetic", Description: "scenario 4: dead arithmetic, DCE'd", Build: DeadArithmetic},
	{Name: "struct-field", Description: "struct field access via ACCESS_PTR", Build: StructFieldAccess},
	{Name: "jcc-inversion", Description: "scenario 6: Jcc inversion on swapped branch targets", Build: JccInversion},
}

// Lookup finds a built-in fixture by name.
func Lookup(name string) (Fixture, bool) {
	for _, f := range All {
		if f.Name == name {
			return f, true
		}
	}
	return Fixture{}, false
}
