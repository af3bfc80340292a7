package lower

import (
	"fmt"

	"github.com/statim-lang/statimc/internal/ast"
	"github.com/statim-lang/statimc/internal/siir"
	"github.com/statim-lang/statimc/internal/types"
)

// lowerExpr lowers e to the SIIR value it evaluates to, loading through
// storage for every lvalue (spec §4.7: rvalue context always yields a
// LOAD of an lvalue's address). Address-only contexts (assignment
// targets, &x, member/subscript bases) go through lowerAddress instead.
func (l *Lowerer) lowerExpr(e ast.Expr) (siir.Value, error) {
	ctx := l.module.Types()
	switch ex := e.(type) {
	case *ast.BoolLit:
		v := int64(0)
		if ex.Value {
			v = 1
		}
		return l.bd.EmitConstantInt(ctx.Int1(), v), nil

	case *ast.IntegerLit:
		return l.bd.EmitConstantInt(ex.ExprType(), ex.Value), nil

	case *ast.FloatLit:
		return l.bd.EmitConstantFloat(ex.ExprType(), ex.Value), nil

	case *ast.CharLit:
		return l.bd.EmitConstantInt(ctx.Int8(), int64(ex.Value)), nil

	case *ast.StringLit:
		return l.bd.EmitString(ctx, ex.Value), nil

	case *ast.NullLit:
		return l.bd.EmitConstantInt(ex.ExprType(), 0), nil

	case *ast.RuneAnnotation:
		// No rune has an IR effect here, comptime/path/code included;
		// only their argument sub-expressions, if any, are evaluated.
		for _, a := range ex.Args {
			if _, err := l.lowerExpr(a); err != nil {
				return nil, err
			}
		}
		return nil, nil

	case *ast.ReferenceExpr:
		if fn, ok := ex.Decl.(*ast.Function); ok {
			return nil, fmt.Errorf("lower: function %q referenced outside a call", fn.Name)
		}
		addr, err := l.lowerAddress(ex)
		if err != nil {
			return nil, err
		}
		return l.bd.EmitLoad(addr, ex.ExprType(), uint16(l.target.Align(ex.ExprType()))), nil

	case *ast.MemberExpr:
		addr, err := l.lowerAddress(ex)
		if err != nil {
			return nil, err
		}
		return l.bd.EmitLoad(addr, ex.ExprType(), uint16(l.target.Align(ex.ExprType()))), nil

	case *ast.SubscriptExpr:
		addr, err := l.lowerAddress(ex)
		if err != nil {
			return nil, err
		}
		return l.bd.EmitLoad(addr, ex.ExprType(), uint16(l.target.Align(ex.ExprType()))), nil

	case *ast.CallExpr:
		return l.lowerCall(ex)

	case *ast.BinaryExpr:
		return l.lowerBinary(ex)

	case *ast.UnaryExpr:
		return l.lowerUnary(ex)

	case *ast.CastExpr:
		return l.lowerCast(ex)

	case *ast.ParenExpr:
		return l.lowerExpr(ex.Inner)

	case *ast.SizeofExpr:
		return l.lowerSizeof(ex)
	}
	return nil, fmt.Errorf("lower: unsupported expression %T", e)
}

func (l *Lowerer) lowerCall(ex *ast.CallExpr) (siir.Value, error) {
	args := make([]siir.Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := l.lowerExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	retType := ex.ExprType()
	if ref, ok := ex.Callee.(*ast.ReferenceExpr); ok {
		if fn, ok := ref.Decl.(*ast.Function); ok {
			return l.bd.EmitCallSymbol(fn.Name, args, retType), nil
		}
	}
	callee, err := l.lowerExpr(ex.Callee)
	if err != nil {
		return nil, err
	}
	return l.bd.EmitCallValue(callee, args, retType), nil
}

// lowerBinary handles both plain arithmetic/comparison binaries and the
// assignment family (spec §4.7: "compound assignment lowers as a
// load-op-store sequence").
func (l *Lowerer) lowerBinary(ex *ast.BinaryExpr) (siir.Value, error) {
	if ex.Op == ast.OpAssign {
		addr, err := l.lowerAddress(ex.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := l.lowerExpr(ex.RHS)
		if err != nil {
			return nil, err
		}
		l.bd.EmitStore(rhs, addr, uint16(l.target.Align(ex.LHS.ExprType())))
		return rhs, nil
	}
	if ex.Op.IsCompoundAssign() {
		addr, err := l.lowerAddress(ex.LHS)
		if err != nil {
			return nil, err
		}
		align := uint16(l.target.Align(ex.LHS.ExprType()))
		cur := l.bd.EmitLoad(addr, ex.LHS.ExprType(), align)
		rhs, err := l.lowerExpr(ex.RHS)
		if err != nil {
			return nil, err
		}
		op, err := binOpcode(compoundToPlain(ex.Op), ex.LHS.ExprType())
		if err != nil {
			return nil, err
		}
		result := l.bd.EmitBinOp(op, cur, rhs, ex.LHS.ExprType())
		l.bd.EmitStore(result, addr, align)
		return result, nil
	}

	lhs, err := l.lowerExpr(ex.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := l.lowerExpr(ex.RHS)
	if err != nil {
		return nil, err
	}
	operandType := ex.LHS.ExprType()
	if isCmp(ex.Op) {
		op, err := cmpOpcode(ex.Op, operandType)
		if err != nil {
			return nil, err
		}
		return l.bd.EmitCmp(op, lhs, rhs, l.module.Types()), nil
	}
	op, err := binOpcode(ex.Op, operandType)
	if err != nil {
		return nil, err
	}
	return l.bd.EmitBinOp(op, lhs, rhs, ex.ExprType()), nil
}

func compoundToPlain(op ast.BinaryOp) ast.BinaryOp {
	switch op {
	case ast.OpAddAssign:
		return ast.OpAdd
	case ast.OpSubAssign:
		return ast.OpSub
	case ast.OpMulAssign:
		return ast.OpMul
	case ast.OpDivAssign:
		return ast.OpDiv
	}
	return op
}

func isCmp(op ast.BinaryOp) bool {
	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return true
	}
	return false
}

// cmpOpcode picks the ordered-float or (default signed) integer
// comparison opcode for op. The type system carries no separate
// unsigned kind, so relational integer comparisons always lower to the
// signed predicate family.
func cmpOpcode(op ast.BinaryOp, t *types.Type) (siir.Opcode, error) {
	isFloat := t != nil && t.IsFloat()
	switch op {
	case ast.OpEq:
		if isFloat {
			return siir.OpFCmpOEQ, nil
		}
		return siir.OpICmpEQ, nil
	case ast.OpNe:
		if isFloat {
			return siir.OpFCmpONE, nil
		}
		return siir.OpICmpNE, nil
	case ast.OpLt:
		if isFloat {
			return siir.OpFCmpOLT, nil
		}
		return siir.OpICmpSLT, nil
	case ast.OpLe:
		if isFloat {
			return siir.OpFCmpOLE, nil
		}
		return siir.OpICmpSLE, nil
	case ast.OpGt:
		if isFloat {
			return siir.OpFCmpOGT, nil
		}
		return siir.OpICmpSGT, nil
	case ast.OpGe:
		if isFloat {
			return siir.OpFCmpOGE, nil
		}
		return siir.OpICmpSGE, nil
	}
	return 0, fmt.Errorf("lower: %v is not a comparison operator", op)
}

// binOpcode picks the arithmetic/bitwise opcode for op over operands of
// type t.
func binOpcode(op ast.BinaryOp, t *types.Type) (siir.Opcode, error) {
	isFloat := t != nil && t.IsFloat()
	switch op {
	case ast.OpAdd:
		if isFloat {
			return siir.OpFAdd, nil
		}
		return siir.OpIAdd, nil
	case ast.OpSub:
		if isFloat {
			return siir.OpFSub, nil
		}
		return siir.OpISub, nil
	case ast.OpMul:
		if isFloat {
			return siir.OpFMul, nil
		}
		return siir.OpIMul, nil
	case ast.OpDiv:
		if isFloat {
			return siir.OpFDiv, nil
		}
		return siir.OpIDiv, nil
	case ast.OpRem:
		if isFloat {
			return siir.OpFRem, nil
		}
		return siir.OpIRem, nil
	case ast.OpAnd:
		return siir.OpAnd, nil
	case ast.OpOr:
		return siir.OpOr, nil
	case ast.OpXor:
		return siir.OpXor, nil
	case ast.OpShl:
		return siir.OpShl, nil
	case ast.OpShr:
		return siir.OpSar, nil // arithmetic (sign-preserving) shift; the type system has no unsigned kind
	}
	return 0, fmt.Errorf("lower: %v has no arithmetic opcode", op)
}

func (l *Lowerer) lowerUnary(ex *ast.UnaryExpr) (siir.Value, error) {
	ctx := l.module.Types()
	switch ex.Op {
	case ast.OpDereference:
		addr, err := l.lowerExpr(ex.Operand)
		if err != nil {
			return nil, err
		}
		return l.bd.EmitLoad(addr, ex.ExprType(), uint16(l.target.Align(ex.ExprType()))), nil
	case ast.OpAddressOf:
		return l.lowerAddress(ex.Operand)
	case ast.OpLogicalNot:
		v, err := l.lowerExpr(ex.Operand)
		if err != nil {
			return nil, err
		}
		zero := l.bd.EmitConstantInt(ex.Operand.ExprType(), 0)
		return l.bd.EmitCmp(siir.OpICmpEQ, v, zero, ctx), nil
	case ast.OpNegate:
		v, err := l.lowerExpr(ex.Operand)
		if err != nil {
			return nil, err
		}
		if ex.ExprType().IsFloat() {
			return l.bd.EmitUnOp(siir.OpFNeg, v, ex.ExprType()), nil
		}
		return l.bd.EmitUnOp(siir.OpINeg, v, ex.ExprType()), nil
	case ast.OpBitwiseNot:
		v, err := l.lowerExpr(ex.Operand)
		if err != nil {
			return nil, err
		}
		return l.bd.EmitUnOp(siir.OpNot, v, ex.ExprType()), nil
	}
	return nil, fmt.Errorf("lower: unsupported unary operator %v", ex.Op)
}

// lowerCast picks the conversion opcode from (operand type, target
// type). Integer<->integer always assumes signed source per cmpOpcode's
// note; pointer<->pointer reinterprets.
func (l *Lowerer) lowerCast(ex *ast.CastExpr) (siir.Value, error) {
	v, err := l.lowerExpr(ex.Operand)
	if err != nil {
		return nil, err
	}
	from, to := ex.Operand.ExprType(), ex.ExprType()
	op, err := castOpcode(from, to)
	if err != nil {
		return nil, err
	}
	if op == opNoopCast {
		return v, nil
	}
	return l.bd.EmitCast(op, v, to), nil
}

// opNoopCast is a sentinel returned by castOpcode for a cast between
// identical types, which lowers to the operand unchanged.
const opNoopCast = siir.Opcode(-1)

func castOpcode(from, to *types.Type) (siir.Opcode, error) {
	if from == to {
		return opNoopCast, nil
	}
	switch {
	case from.IsInteger() && to.IsInteger():
		if to.BitWidth() > from.BitWidth() {
			return siir.OpSExt, nil
		}
		return siir.OpITrunc, nil
	case from.IsInteger() && to.IsFloat():
		return siir.OpSI2FP, nil
	case from.IsFloat() && to.IsInteger():
		return siir.OpFP2SI, nil
	case from.IsFloat() && to.IsFloat():
		if to.BitWidth() > from.BitWidth() {
			return siir.OpFExt, nil
		}
		return siir.OpFTrunc, nil
	case from.Kind() == types.KindPointer && to.IsInteger():
		return siir.OpP2I, nil
	case from.IsInteger() && to.Kind() == types.KindPointer:
		return siir.OpI2P, nil
	case from.Kind() == types.KindPointer && to.Kind() == types.KindPointer:
		return siir.OpReinterpret, nil
	}
	return 0, fmt.Errorf("lower: no conversion from %s to %s", from, to)
}

// primitiveSizeofNames duplicates sema's primitive-name table for the
// `sizeof(TypeName)` form: the Resolver only stamps SizeofExpr's own
// type as i64 (spec §4.6) and never resolves OperandRef, so lowering
// has to resolve it itself for this one case.
var primitiveSizeofNames = map[string]func(*types.Context) *types.Type{
	"void": (*types.Context).Void,
	"bool": (*types.Context).Int1,
	"i1":   (*types.Context).Int1,
	"i8":   (*types.Context).Int8,
	"i16":  (*types.Context).Int16,
	"i32":  (*types.Context).Int32,
	"i64":  (*types.Context).Int64,
	"f32":  (*types.Context).Float32,
	"f64":  (*types.Context).Float64,
}

func (l *Lowerer) lowerSizeof(ex *ast.SizeofExpr) (siir.Value, error) {
	var t *types.Type
	if ex.HasExpr {
		// sizeof never evaluates its operand at runtime (like a C sizeof
		// expression); only its static type matters.
		t = ex.Operand.ExprType()
	} else {
		ctx := l.module.Types()
		base, ok := primitiveSizeofNames[ex.OperandRef.Name]
		if !ok {
			return nil, fmt.Errorf("lower: sizeof of unknown type %q", ex.OperandRef.Name)
		}
		t = base(ctx)
		for i := 0; i < ex.OperandRef.Indirection; i++ {
			t = ctx.GetPointer(t)
		}
	}
	return l.bd.EmitConstantInt(ex.ExprType(), l.target.Size(t)), nil
}
