package lower

import (
	"fmt"

	"github.com/statim-lang/statimc/internal/ast"
	"github.com/statim-lang/statimc/internal/siir"
)

// lowerBlock lowers every statement in b into the current block,
// stopping early if a statement seals the block with a terminator
// (anything textually after `ret`/`break`/`continue` within the same
// block is unreachable and dropped, matching the dead-arithmetic
// scenario's expectation that lowering never emits past a terminator).
func (l *Lowerer) lowerBlock(b *ast.Block) error {
	for _, s := range b.Stmts {
		if l.bd.Current().Terminator() != nil {
			break
		}
		if err := l.lowerStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// lowerNestedStmt handles an If/While body that may be a Block (no new
// storage scope needed; SIIR locals are flat per function) or a single
// statement.
func (l *Lowerer) lowerNestedStmt(s ast.Stmt) error {
	if b, ok := s.(*ast.Block); ok {
		return l.lowerBlock(b)
	}
	return l.lowerStmt(s)
}

func (l *Lowerer) lowerStmt(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.DeclStmt:
		return l.lowerDeclStmt(st)
	case *ast.ExprStmt:
		_, err := l.lowerExpr(st.X)
		return err
	case *ast.If:
		return l.lowerIf(st)
	case *ast.While:
		return l.lowerWhile(st)
	case *ast.Ret:
		return l.lowerReturn(st)
	case *ast.Break:
		if len(l.loopBreak) == 0 {
			return fmt.Errorf("lower: break outside a loop")
		}
		l.bd.EmitJump(l.loopBreak[len(l.loopBreak)-1])
		return nil
	case *ast.Continue:
		if len(l.loopContinue) == 0 {
			return fmt.Errorf("lower: continue outside a loop")
		}
		l.bd.EmitJump(l.loopContinue[len(l.loopContinue)-1])
		return nil
	case *ast.Block:
		return l.lowerBlock(st)
	}
	return fmt.Errorf("lower: unsupported statement %T", s)
}

func (l *Lowerer) lowerDeclStmt(ds *ast.DeclStmt) error {
	v := ds.D.(*ast.Variable)
	align := alignOf(l.target, v.Resolved)
	local, err := l.fn.AddLocal(l.freshLocalName(v.Name), v.Resolved, align)
	if err != nil {
		return fmt.Errorf("lower: local %q: %w", v.Name, err)
	}
	l.locals[v] = local
	if v.Init != nil {
		val, err := l.lowerExpr(v.Init)
		if err != nil {
			return err
		}
		l.bd.EmitStore(val, local, uint16(align))
	}
	return nil
}

func (l *Lowerer) lowerReturn(st *ast.Ret) error {
	if st.Value == nil {
		l.bd.EmitReturn(nil)
		return nil
	}
	v, err := l.lowerExpr(st.Value)
	if err != nil {
		return err
	}
	l.bd.EmitReturn(v)
	return nil
}

// lowerIf lowers an if/else into a then/else/merge three-block diamond
// (spec §4.7, §8 scenario 3). A branch that always terminates (e.g.
// every path returns) is not joined into merge.
func (l *Lowerer) lowerIf(st *ast.If) error {
	cond, err := l.lowerExpr(st.Cond)
	if err != nil {
		return err
	}
	thenBlock := l.fn.NewBlock("if.then")
	var elseBlock *siir.BasicBlock
	hasElse := st.Else != nil
	if hasElse {
		elseBlock = l.fn.NewBlock("if.else")
	}
	mergeBlock := l.fn.NewBlock("if.end")

	if hasElse {
		l.bd.EmitBranchIf(cond, thenBlock, elseBlock)
	} else {
		l.bd.EmitBranchIf(cond, thenBlock, mergeBlock)
	}

	l.bd.SetInsertPoint(thenBlock)
	if err := l.lowerNestedStmt(st.Then); err != nil {
		return err
	}
	if l.bd.Current().Terminator() == nil {
		l.bd.EmitJump(mergeBlock)
	}

	if hasElse {
		l.bd.SetInsertPoint(elseBlock)
		if err := l.lowerNestedStmt(st.Else); err != nil {
			return err
		}
		if l.bd.Current().Terminator() == nil {
			l.bd.EmitJump(mergeBlock)
		}
	}

	l.bd.SetInsertPoint(mergeBlock)
	return nil
}

// lowerWhile lowers a pre-tested loop into cond/body/exit blocks,
// pushing exit/cond as the break/continue targets for the body (spec
// §4.7).
func (l *Lowerer) lowerWhile(st *ast.While) error {
	headerBlock := l.fn.NewBlock("while.cond")
	bodyBlock := l.fn.NewBlock("while.body")
	exitBlock := l.fn.NewBlock("while.end")

	l.bd.EmitJump(headerBlock)

	l.bd.SetInsertPoint(headerBlock)
	cond, err := l.lowerExpr(st.Cond)
	if err != nil {
		return err
	}
	l.bd.EmitBranchIf(cond, bodyBlock, exitBlock)

	l.bd.SetInsertPoint(bodyBlock)
	l.loopBreak = append(l.loopBreak, exitBlock)
	l.loopContinue = append(l.loopContinue, headerBlock)
	bodyErr := l.lowerNestedStmt(st.Body)
	l.loopBreak = l.loopBreak[:len(l.loopBreak)-1]
	l.loopContinue = l.loopContinue[:len(l.loopContinue)-1]
	if bodyErr != nil {
		return bodyErr
	}
	if l.bd.Current().Terminator() == nil {
		l.bd.EmitJump(headerBlock)
	}

	l.bd.SetInsertPoint(exitBlock)
	return nil
}
