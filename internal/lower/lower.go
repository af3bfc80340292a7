// Package lower implements the AST-to-SIIR lowering glue of spec §4.7:
// it drives a siir.Builder ("InstBuilder") over an already-resolved
// and type-checked ast.Program, following the rules for each statement
// and expression node. Grounded on ralph-cc's pkg/cminorgen, whose
// Transformer walks a resolved tree with a type-switch per node kind
// and emits into a lower-level IR one statement/expression at a time;
// this package follows that same shape with statim's nodes and SIIR's
// opcodes instead of Cminor's.
package lower

import (
	"fmt"

	"github.com/statim-lang/statimc/internal/ast"
	"github.com/statim-lang/statimc/internal/siir"
	"github.com/statim-lang/statimc/internal/types"
)

// Lowerer owns the module being built and the per-function state
// (builder cursor, local/global name bindings) needed while lowering
// one function at a time.
type Lowerer struct {
	module *siir.Module
	target *types.Target

	fn      *siir.Function
	bd      *siir.Builder
	locals  map[ast.Decl]*siir.Local // *ast.Parameter/*ast.Variable -> SIIR storage
	globals map[string]*siir.Global // top-level *ast.Variable name -> SIIR storage

	loopBreak    []*siir.BasicBlock // break target stack, innermost last
	loopContinue []*siir.BasicBlock
}

// NewLowerer creates a Lowerer writing into module. module's type
// context must be the same Context the caller ran sema.Resolver
// against: every *types.Type reachable from the AST was stamped from
// that context, and SIIR's own uniquing (GetFunction/GetPointer calls
// made while lowering) must extend the same table, not a fresh one,
// or identity comparisons across the sema/lower boundary silently
// break.
func NewLowerer(module *siir.Module, target *types.Target) *Lowerer {
	return &Lowerer{
		module:  module,
		target:  target,
		locals:  make(map[ast.Decl]*siir.Local),
		globals: make(map[string]*siir.Global),
	}
}

// Module returns the module under construction.
func (l *Lowerer) Module() *siir.Module { return l.module }

// LowerProgram lowers every function and global declaration in prog
// into the module. prog must already have passed sema.Resolver and
// sema.TypeChecker with no diagnostics.
func (l *Lowerer) LowerProgram(prog *ast.Program) error {
	for _, d := range prog.Decls {
		if v, ok := d.(*ast.Variable); ok {
			if err := l.lowerGlobal(v); err != nil {
				return err
			}
		}
	}
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.Function); ok && fn.Body != nil {
			if err := l.lowerFunction(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// lowerGlobal lowers a top-level Variable into a module Global. Only a
// literal initializer has a representation as a detached CONSTANT/
// STRING; any other initializer expression is rejected (spec §3.6
// globals are statically initialized, not run).
func (l *Lowerer) lowerGlobal(v *ast.Variable) error {
	g := l.module.NewGlobal(v.Name, v.Resolved, siir.Internal)
	l.globals[v.Name] = g
	if v.Init == nil {
		return nil
	}
	switch lit := v.Init.(type) {
	case *ast.IntegerLit:
		l.module.SetGlobalInit(g, siir.NewDetachedConstantInt(v.Resolved, lit.Value))
	case *ast.BoolLit:
		b := int64(0)
		if lit.Value {
			b = 1
		}
		l.module.SetGlobalInit(g, siir.NewDetachedConstantInt(v.Resolved, b))
	case *ast.FloatLit:
		l.module.SetGlobalInit(g, siir.NewDetachedConstantFloat(v.Resolved, lit.Value))
	case *ast.StringLit:
		l.module.SetGlobalInit(g, siir.NewDetachedString(l.module.Types(), lit.Value))
	default:
		return fmt.Errorf("lower: global %q initializer must be a literal", v.Name)
	}
	return nil
}

func (l *Lowerer) lowerFunction(fn *ast.Function) error {
	l.fn = l.module.NewFunction(fn.Name, l.module.Types().GetFunction(fn.RetType, paramTypes(fn)), siir.External)
	for i, p := range fn.Params {
		l.fn.SetArg(i, p.Name)
	}
	entry := l.fn.NewBlock("entry")
	l.bd = siir.NewBuilder(l.fn)
	l.bd.SetInsertPoint(entry)
	l.locals = make(map[ast.Decl]*siir.Local)
	l.loopBreak = nil
	l.loopContinue = nil

	for i, p := range fn.Params {
		local, err := l.fn.AddLocal(l.freshLocalName(p.Name), p.Resolved, alignOf(l.target, p.Resolved))
		if err != nil {
			return fmt.Errorf("lower: function %q: %w", fn.Name, err)
		}
		l.locals[p] = local
		l.bd.EmitStore(l.fn.GetArg(i), local, uint16(alignOf(l.target, p.Resolved)))
	}

	if err := l.lowerBlock(fn.Body); err != nil {
		return err
	}
	l.sealTerminator(fn.RetType)
	return nil
}

// sealTerminator ensures the current block has a terminator, inserting
// an implicit `ret` for a void function whose body fell through (the
// lowering glue, not the type checker, is responsible for this: a
// statement-level control-flow fallthrough is legal source, not a type
// error).
func (l *Lowerer) sealTerminator(retType *types.Type) {
	if l.bd.Current().Terminator() != nil {
		return
	}
	if retType != nil && retType.Kind() == types.KindVoid {
		l.bd.EmitReturn(nil)
	} else {
		l.bd.EmitUnreachable()
	}
}

func paramTypes(fn *ast.Function) []*types.Type {
	out := make([]*types.Type, len(fn.Params))
	for i, p := range fn.Params {
		out[i] = p.Resolved
	}
	return out
}

func alignOf(target *types.Target, t *types.Type) int64 {
	return target.Align(t)
}

// freshLocalName returns base, or base suffixed with a disambiguator if
// a local by that name already exists in the current function (a
// nested block can shadow an outer local or parameter of the same
// source name; SIIR locals are named and function.AddLocal rejects
// duplicates).
func (l *Lowerer) freshLocalName(base string) string {
	if _, exists := l.fn.GetLocal(base); !exists {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s$%d", base, i)
		if _, exists := l.fn.GetLocal(name); !exists {
			return name
		}
	}
}
