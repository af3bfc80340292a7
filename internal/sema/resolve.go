package sema

import (
	"github.com/statim-lang/statimc/internal/ast"
	"github.com/statim-lang/statimc/internal/types"
)

// primitiveNames maps a TypeRef's base spelling to a leaf Kind getter.
var primitiveNames = map[string]func(*types.Context) *types.Type{
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

// resolveTypeRef resolves a frontend TypeRef to a concrete, uniqued
// Type: a known primitive, or a struct looked up by name in the global
// scope (registered during the declaration-collection pass below),
// wrapped in Indirection levels of pointer.
func resolveTypeRef(ctx *types.Context, global *ast.Scope, ref ast.TypeRef) (*types.Type, bool) {
	var base *types.Type
	if mk, ok := primitiveNames[ref.Name]; ok {
		base = mk(ctx)
	} else if decl, ok := Lookup(global, ref.Name); ok {
		if sd, ok := decl.(*ast.Struct); ok {
			base = ctx.GetStruct(sd.Name)
		} else {
			return nil, false
		}
	} else {
		return nil, false
	}
	for i := 0; i < ref.Indirection; i++ {
		base = ctx.GetPointer(base)
	}
	return base, true
}

// Resolver runs the symbol pass (syma, spec §4.6): it builds the scope
// tree, resolves every TypeRef, binds ReferenceExpr.Decl, and
// propagates declared types onto expressions per the type-propagation
// rules (ParenExpr pass-through, Dereference/AddressOf/LogicalNot,
// BinaryExpr lhs-type, CallExpr callee-return-type, inferred Variable
// types). It is grounded on ralph-cc's pkg/clightgen translation
// pass, which performs the analogous C-to-Clight name/type binding in
// one recursive top-down walk.
type Resolver struct {
	ctx    *types.Context
	global *ast.Scope
	diags  *DiagnosticList
}

// NewResolver creates a Resolver over ctx; ctx must be the same type
// context the IR module being lowered will use.
func NewResolver(ctx *types.Context) *Resolver {
	return &Resolver{ctx: ctx, global: ast.NewScope(nil), diags: &DiagnosticList{}}
}

// GlobalScope returns the top-level scope built by Resolve.
func (r *Resolver) GlobalScope() *ast.Scope { return r.global }

// Resolve runs the symbol pass over prog and returns its diagnostics
// (nil if none).
func (r *Resolver) Resolve(prog *ast.Program) error {
	r.collectTopLevel(prog)
	r.resolveSignatures(prog)
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.Function); ok && fn.Body != nil {
			r.resolveBlock(fn.Body, fn.Scope)
		}
	}
	return r.diags.AsError()
}

func (r *Resolver) collectTopLevel(prog *ast.Program) {
	// Structs are registered (as opaque types) before anything else so
	// field and signature TypeRefs referencing them resolve regardless
	// of declaration order.
	for _, d := range prog.Decls {
		if sd, ok := d.(*ast.Struct); ok {
			if !Declare(r.global, sd.Name, sd) {
				r.diags.Add(AmbiguousReference, sd.Span, "struct %q already declared", sd.Name)
				continue
			}
			r.ctx.GetStruct(sd.Name)
		}
	}
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.Struct:
			r.completeStruct(decl)
		case *ast.Function:
			if !Declare(r.global, decl.Name, decl) {
				r.diags.Add(AmbiguousReference, decl.Span, "function %q already declared", decl.Name)
			}
		case *ast.Variable:
			if !Declare(r.global, decl.Name, decl) {
				r.diags.Add(AmbiguousReference, decl.Span, "global %q already declared", decl.Name)
			}
		case *ast.Enum:
			for _, v := range decl.Values {
				if !Declare(r.global, v.Name, v) {
					r.diags.Add(AmbiguousReference, v.Span, "enum value %q already declared", v.Name)
				}
			}
		}
	}
}

func (r *Resolver) completeStruct(sd *ast.Struct) {
	if sd.Opaque {
		return
	}
	st := r.ctx.GetStruct(sd.Name)
	for _, f := range sd.Fields {
		ft, ok := resolveTypeRef(r.ctx, r.global, f.TypeRef)
		if !ok {
			r.diags.Add(UnresolvedName, f.Span, "unknown type %q in field %q", f.TypeRef.Name, f.Name)
			continue
		}
		if err := types.AppendField(st, types.Field{Name: f.Name, Type: ft}); err != nil {
			r.diags.Add(TypeMismatch, f.Span, "%v", err)
		}
	}
}

func (r *Resolver) resolveSignatures(prog *ast.Program) {
	for _, d := range prog.Decls {
		fn, ok := d.(*ast.Function)
		if !ok {
			continue
		}
		fn.Scope = ast.NewScope(r.global)
		ret, ok := resolveTypeRef(r.ctx, r.global, fn.RetRef)
		if !ok {
			r.diags.Add(UnresolvedName, fn.Span, "unknown return type %q", fn.RetRef.Name)
			ret = r.ctx.Void()
		}
		fn.RetType = ret
		for _, p := range fn.Params {
			pt, ok := resolveTypeRef(r.ctx, r.global, p.TypeRef)
			if !ok {
				r.diags.Add(UnresolvedName, p.Span, "unknown parameter type %q", p.TypeRef.Name)
				pt = r.ctx.Void()
			}
			p.Resolved = pt
			Declare(fn.Scope, p.Name, p)
		}
	}
}

func (r *Resolver) resolveBlock(b *ast.Block, parent *ast.Scope) {
	b.Scope = ast.NewScope(parent)
	for _, s := range b.Stmts {
		r.resolveStmt(s, b.Scope)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt, scope *ast.Scope) {
	switch st := s.(type) {
	case *ast.DeclStmt:
		r.resolveVariable(st.D.(*ast.Variable), scope)
	case *ast.If:
		r.resolveExpr(st.Cond, scope)
		r.resolveNestedStmt(st.Then, scope)
		if st.Else != nil {
			r.resolveNestedStmt(st.Else, scope)
		}
	case *ast.While:
		r.resolveExpr(st.Cond, scope)
		r.resolveNestedStmt(st.Body, scope)
	case *ast.Ret:
		if st.Value != nil {
			r.resolveExpr(st.Value, scope)
		}
	case *ast.ExprStmt:
		r.resolveExpr(st.X, scope)
	case *ast.Block:
		r.resolveBlock(st, scope)
	}
}

// resolveNestedStmt handles an If/While body that may itself be a Block
// (new scope) or a single statement (current scope) or a chained If.
func (r *Resolver) resolveNestedStmt(s ast.Stmt, scope *ast.Scope) {
	if b, ok := s.(*ast.Block); ok {
		r.resolveBlock(b, scope)
		return
	}
	r.resolveStmt(s, scope)
}

func (r *Resolver) resolveVariable(v *ast.Variable, scope *ast.Scope) {
	if v.Init != nil {
		r.resolveExpr(v.Init, scope)
	}
	if v.HasType {
		t, ok := resolveTypeRef(r.ctx, r.global, v.TypeRef)
		if !ok {
			r.diags.Add(UnresolvedName, v.Span, "unknown type %q for variable %q", v.TypeRef.Name, v.Name)
			t = r.ctx.Void()
		}
		v.Resolved = t
	} else if v.Init != nil {
		v.Resolved = v.Init.ExprType()
	} else {
		r.diags.Add(UninferrableType, v.Span, "variable %q has no type and no initializer", v.Name)
	}
	Declare(scope, v.Name, v)
}

// resolveExpr implements the §4.6 type-propagation rules and binds
// ReferenceExpr.Decl via scope lookup.
func (r *Resolver) resolveExpr(e ast.Expr, scope *ast.Scope) {
	switch ex := e.(type) {
	case *ast.BoolLit:
		ex.SetExprType(r.ctx.Int1())
	case *ast.IntegerLit:
		ex.SetExprType(r.ctx.Int32())
	case *ast.FloatLit:
		ex.SetExprType(r.ctx.Float64())
	case *ast.CharLit:
		ex.SetExprType(r.ctx.Int8())
	case *ast.StringLit:
		ex.SetExprType(r.ctx.GetPointer(r.ctx.Int8()))
	case *ast.NullLit:
		ex.SetExprType(r.ctx.GetPointer(r.ctx.Void()))
	case *ast.RuneAnnotation:
		for _, a := range ex.Args {
			r.resolveExpr(a, scope)
		}
	case *ast.ReferenceExpr:
		decl, ok := Lookup(scope, ex.Name)
		if !ok {
			r.diags.Add(UnresolvedName, ex.Span, "undeclared identifier %q", ex.Name)
			return
		}
		ex.Decl = decl
		ex.SetKind(ast.LValue)
		switch d := decl.(type) {
		case *ast.Variable:
			ex.SetExprType(d.Resolved)
		case *ast.Parameter:
			ex.SetExprType(d.Resolved)
		case *ast.Function:
			ex.SetExprType(r.ctx.GetFunction(d.RetType, paramTypes(d)))
			ex.SetKind(ast.RValue)
		case *ast.EnumValue:
			ex.SetExprType(r.ctx.Int32())
			ex.SetKind(ast.RValue)
		}
	case *ast.MemberExpr:
		r.resolveExpr(ex.Base, scope)
		ex.SetKind(ex.Base.Kind())
		bt := ex.Base.ExprType()
		if bt == nil {
			return
		}
		if bt.Kind() == types.KindPointer {
			bt = bt.Pointee()
		}
		if bt == nil || bt.Kind() != types.KindStruct {
			r.diags.Add(TypeMismatch, ex.Span, "member access on non-struct type")
			return
		}
		for i, f := range bt.Fields() {
			if f.Name == ex.Field {
				ex.Index = i
				ex.SetExprType(f.Type)
				return
			}
		}
		r.diags.Add(UnresolvedName, ex.Span, "struct %q has no field %q", bt.Name(), ex.Field)
	case *ast.CallExpr:
		r.resolveExpr(ex.Callee, scope)
		for _, a := range ex.Args {
			r.resolveExpr(a, scope)
		}
		ct := ex.Callee.ExprType()
		if ct == nil || ct.Kind() != types.KindFunction {
			r.diags.Add(NotAFunction, ex.Span, "callee is not a function")
			return
		}
		ex.SetExprType(ct.Return())
		ex.SetKind(ast.RValue)
	case *ast.SubscriptExpr:
		r.resolveExpr(ex.Base, scope)
		r.resolveExpr(ex.Index, scope)
		bt := ex.Base.ExprType()
		if bt == nil {
			return
		}
		switch bt.Kind() {
		case types.KindArray:
			ex.SetExprType(bt.Elem())
		case types.KindPointer:
			ex.SetExprType(bt.Pointee())
		default:
			r.diags.Add(TypeMismatch, ex.Span, "subscript of non-array, non-pointer type")
			return
		}
		ex.SetKind(ast.LValue)
	case *ast.BinaryExpr:
		r.resolveExpr(ex.LHS, scope)
		r.resolveExpr(ex.RHS, scope)
		if isComparisonOp(ex.Op) {
			ex.SetExprType(r.ctx.Int1())
		} else {
			ex.SetExprType(ex.LHS.ExprType())
		}
		if ex.Op.IsCompoundAssign() || ex.Op == ast.OpAssign {
			ex.SetKind(ast.LValue)
		} else {
			ex.SetKind(ast.RValue)
		}
	case *ast.UnaryExpr:
		r.resolveExpr(ex.Operand, scope)
		ot := ex.Operand.ExprType()
		switch ex.Op {
		case ast.OpDereference:
			if ot == nil || ot.Kind() != types.KindPointer {
				r.diags.Add(DerefNonPointer, ex.Span, "dereference of non-pointer type")
			} else {
				ex.SetExprType(ot.Pointee())
			}
			ex.SetKind(ast.LValue)
		case ast.OpAddressOf:
			if ex.Operand.Kind() != ast.LValue {
				r.diags.Add(AddressOfRValue, ex.Span, "address-of applied to an rvalue")
			} else if ot != nil {
				ex.SetExprType(r.ctx.GetPointer(ot))
			}
			ex.SetKind(ast.RValue)
		case ast.OpLogicalNot:
			ex.SetExprType(r.ctx.Int1())
			ex.SetKind(ast.RValue)
		default: // Negate, BitwiseNot
			ex.SetExprType(ot)
			ex.SetKind(ast.RValue)
		}
	case *ast.CastExpr:
		r.resolveExpr(ex.Operand, scope)
		t, ok := resolveTypeRef(r.ctx, r.global, ex.TargetRef)
		if !ok {
			r.diags.Add(UnresolvedName, ex.Span, "unknown cast target type %q", ex.TargetRef.Name)
			return
		}
		ex.SetExprType(t)
		ex.SetKind(ast.RValue)
	case *ast.ParenExpr:
		r.resolveExpr(ex.Inner, scope)
		ex.SetExprType(ex.Inner.ExprType())
		ex.SetKind(ex.Inner.Kind())
	case *ast.SizeofExpr:
		if ex.HasExpr {
			r.resolveExpr(ex.Operand, scope)
		}
		ex.SetExprType(r.ctx.Int64())
		ex.SetKind(ast.RValue)
	}
}

func isComparisonOp(op ast.BinaryOp) bool {
	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return true
	}
	return false
}

func paramTypes(fn *ast.Function) []*types.Type {
	out := make([]*types.Type, len(fn.Params))
	for i, p := range fn.Params {
		out[i] = p.Resolved
	}
	return out
}
