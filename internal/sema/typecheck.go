package sema

import (
	"github.com/statim-lang/statimc/internal/ast"
	"github.com/statim-lang/statimc/internal/types"
)

// Mode selects how permissive a type comparison is (spec §4.6).
type Mode int

const (
	Exact Mode = iota
	AllowImplicit
	Loose
)

// Classification is the outcome of Check.
type Classification int

const (
	NoCast Classification = iota
	ImplicitCast
	Incompatible
)

// Check compares from against to under mode and classifies the result.
// Check only classifies; it never mutates from or to. Callers that
// need the actual conversion inserted (TypeChecker.checkReturn,
// checkExprStmt, and checkStmt for variable initializers) wrap the offending operand in a CastExpr once Check
// returns ImplicitCast (spec §4.6).
func Check(from, to *types.Type, mode Mode) Classification {
	if from == to {
		return NoCast
	}
	if from == nil || to == nil {
		return Incompatible
	}
	if mode >= AllowImplicit && isImplicitWiden(from, to) {
		return ImplicitCast
	}
	if mode == Loose && isPointerIntInteraction(from, to) {
		return ImplicitCast
	}
	return Incompatible
}

// isImplicitWiden permits same-signedness-class integer widening and
// integer-to-float/float-to-wider-float promotion; narrowing never
// qualifies.
func isImplicitWiden(from, to *types.Type) bool {
	if from.IsInteger() && to.IsInteger() {
		return to.BitWidth() >= from.BitWidth()
	}
	if from.IsInteger() && to.IsFloat() {
		return true
	}
	if from.IsFloat() && to.IsFloat() {
		return to.BitWidth() >= from.BitWidth()
	}
	return false
}

func isPointerIntInteraction(from, to *types.Type) bool {
	return (from.Kind() == types.KindPointer && to.IsInteger()) ||
		(from.IsInteger() && to.Kind() == types.KindPointer)
}

// TypeChecker runs the statement-context enforcement rules of spec
// §4.6 over an already-resolved tree (post-Resolver): loop-control
// placement, return-type agreement, lvalue assignment targets, and the
// "if/while body must be a block, not a bare declaration" rule.
// Grounded on ralph-cc's pkg/cshmgen, which performs the analogous
// statement-shape checks ahead of IR generation.
type TypeChecker struct {
	diags    *DiagnosticList
	loopDepth int
	retType  *types.Type
}

func NewTypeChecker() *TypeChecker {
	return &TypeChecker{diags: &DiagnosticList{}}
}

// CheckProgram type-checks every function body in prog.
func (tc *TypeChecker) CheckProgram(prog *ast.Program) error {
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.Function); ok && fn.Body != nil {
			tc.retType = fn.RetType
			tc.checkBlock(fn.Body)
		}
	}
	return tc.diags.AsError()
}

func (tc *TypeChecker) checkBlock(b *ast.Block) {
	for _, s := range b.Stmts {
		tc.checkStmt(s)
	}
}

func (tc *TypeChecker) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Break:
		if tc.loopDepth == 0 {
			tc.diags.Add(LoopControlOutsideLoop, st.Span, "break outside a loop")
		}
	case *ast.Continue:
		if tc.loopDepth == 0 {
			tc.diags.Add(LoopControlOutsideLoop, st.Span, "continue outside a loop")
		}
	case *ast.If:
		tc.checkBareDeclBody(st.Then)
		if st.Else != nil {
			tc.checkBareDeclBody(st.Else)
		}
		tc.checkNested(st.Then)
		if st.Else != nil {
			tc.checkNested(st.Else)
		}
	case *ast.While:
		tc.checkBareDeclBody(st.Body)
		tc.loopDepth++
		tc.checkNested(st.Body)
		tc.loopDepth--
	case *ast.Ret:
		tc.checkReturn(st)
	case *ast.ExprStmt:
		tc.checkExprStmt(st.X)
	case *ast.Block:
		tc.checkBlock(st)
	case *ast.DeclStmt:
		// An initializer must convert to the variable's resolved type; an
		// implicit widening is made explicit with a CastExpr.
		if v, ok := st.D.(*ast.Variable); ok && v.Init != nil && v.Resolved != nil {
			switch Check(v.Init.ExprType(), v.Resolved, AllowImplicit) {
			case Incompatible:
				tc.diags.Add(TypeMismatch, v.Span, "initializer type does not match variable %q", v.Name)
			case ImplicitCast:
				v.Init = newImplicitCast(v.Resolved, v.Init)
			}
		}
	}
}

func (tc *TypeChecker) checkNested(s ast.Stmt) {
	if b, ok := s.(*ast.Block); ok {
		tc.checkBlock(b)
		return
	}
	tc.checkStmt(s)
}

// checkBareDeclBody enforces "if/while whose direct body is a
// declaration must be in a block" (spec §4.6).
func (tc *TypeChecker) checkBareDeclBody(s ast.Stmt) {
	if ds, ok := s.(*ast.DeclStmt); ok {
		tc.diags.Add(TypeMismatch, ds.Span, "declaration cannot be the direct body of if/while; wrap it in a block")
	}
}

func (tc *TypeChecker) checkReturn(st *ast.Ret) {
	switch {
	case st.Value == nil && tc.retType != nil && tc.retType.Kind() != types.KindVoid:
		tc.diags.Add(ReturnTypeMismatch, st.Span, "missing return value for non-void function")
	case st.Value != nil && tc.retType != nil && tc.retType.Kind() == types.KindVoid:
		tc.diags.Add(ReturnTypeMismatch, st.Span, "void function must not return a value")
	case st.Value != nil:
		switch Check(st.Value.ExprType(), tc.retType, AllowImplicit) {
		case Incompatible:
			tc.diags.Add(ReturnTypeMismatch, st.Span, "return type does not match function signature")
		case ImplicitCast:
			st.Value = newImplicitCast(tc.retType, st.Value)
		}
	}
}

func (tc *TypeChecker) checkExprStmt(e ast.Expr) {
	bin, ok := e.(*ast.BinaryExpr)
	if !ok {
		return
	}
	if bin.Op == ast.OpAssign || bin.Op.IsCompoundAssign() {
		if bin.LHS.Kind() != ast.LValue {
			tc.diags.Add(NonLValueAssignment, bin.Span, "assignment target is not an lvalue")
		}
		switch Check(bin.RHS.ExprType(), bin.LHS.ExprType(), AllowImplicit) {
		case Incompatible:
			tc.diags.Add(TypeMismatch, bin.Span, "incompatible types in assignment")
		case ImplicitCast:
			bin.RHS = newImplicitCast(bin.LHS.ExprType(), bin.RHS)
		}
	}
}

// newImplicitCast wraps operand in a CastExpr targeting to. TargetRef
// is left zero since the node never goes back through the resolver:
// lowering only reads Operand.ExprType() and the cast's own
// ExprType().
func newImplicitCast(to *types.Type, operand ast.Expr) *ast.CastExpr {
	c := &ast.CastExpr{Operand: operand}
	c.Span = operand.Pos()
	c.SetExprType(to)
	c.SetKind(ast.RValue)
	return c
}
