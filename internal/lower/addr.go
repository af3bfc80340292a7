package lower

import (
	"fmt"

	"github.com/statim-lang/statimc/internal/ast"
	"github.com/statim-lang/statimc/internal/siir"
	"github.com/statim-lang/statimc/internal/types"
)

// localFor resolves an ast.Decl (a *ast.Parameter or *ast.Variable) to
// its SIIR storage, checking the current function's locals first and
// falling back to the module's globals by name.
func (l *Lowerer) localFor(decl ast.Decl) (siir.Value, bool) {
	if local, ok := l.locals[decl]; ok {
		return local, true
	}
	if v, ok := decl.(*ast.Variable); ok {
		if g, ok := l.globals[v.Name]; ok {
			return g, true
		}
	}
	return nil, false
}

// lowerAddress lowers an lvalue expression to the address it denotes,
// without loading through it. Every expression ast's Resolver marks
// ast.LValue reaches lowering only through this path (spec §4.7:
// "ReferenceExpr lvalue -> the local/global/argument value").
func (l *Lowerer) lowerAddress(e ast.Expr) (siir.Value, error) {
	switch ex := e.(type) {
	case *ast.ReferenceExpr:
		addr, ok := l.localFor(ex.Decl)
		if !ok {
			return nil, fmt.Errorf("lower: %q has no storage location", ex.Name)
		}
		return addr, nil
	case *ast.MemberExpr:
		base, err := l.addressOfBase(ex.Base)
		if err != nil {
			return nil, err
		}
		idx := l.bd.EmitConstantInt(l.module.Types().Int32(), int64(ex.Index))
		return l.bd.EmitAccessPtr(base, l.module.Types().GetPointer(ex.ExprType()), idx), nil
	case *ast.SubscriptExpr:
		base, err := l.addressOfBase(ex.Base)
		if err != nil {
			return nil, err
		}
		idx, err := l.lowerExpr(ex.Index)
		if err != nil {
			return nil, err
		}
		return l.bd.EmitAccessPtr(base, l.module.Types().GetPointer(ex.ExprType()), idx), nil
	case *ast.UnaryExpr:
		if ex.Op == ast.OpDereference {
			return l.lowerExpr(ex.Operand)
		}
	case *ast.ParenExpr:
		return l.lowerAddress(ex.Inner)
	}
	return nil, fmt.Errorf("lower: %T is not an lvalue", e)
}

// addressOfBase resolves the base of a MemberExpr/SubscriptExpr to the
// address it should index from: if base's static type is already a
// pointer (arrow-style access through a pointer), its rvalue IS the
// address; otherwise base must itself be an lvalue whose address we
// take.
func (l *Lowerer) addressOfBase(base ast.Expr) (siir.Value, error) {
	if bt := base.ExprType(); bt != nil && bt.Kind() == types.KindPointer {
		return l.lowerExpr(base)
	}
	return l.lowerAddress(base)
}
