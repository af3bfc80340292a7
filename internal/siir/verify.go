package siir

import "fmt"

// VerifyError is a structural IR violation. Per spec §4.9 these
// indicate a compiler bug, not a user error, and the caller is expected
// to abort rather than try to recover.
type VerifyError struct {
	Kind    string
	Message string
}

func (e *VerifyError) Error() string { return fmt.Sprintf("siir: %s: %s", e.Kind, e.Message) }

func newVerifyError(kind, format string, args ...any) *VerifyError {
	return &VerifyError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Verify walks every function in m and returns the first structural
// violation found, or nil if the module is well-formed (spec §4.9):
// multiple terminators, uses of undefined values, PHI operands with
// stale predecessors, PHIs with no incoming operands, and result-id
// reuse within a function.
func Verify(m *Module) error {
	for _, f := range m.Functions() {
		if err := verifyFunction(f); err != nil {
			return err
		}
	}
	return nil
}

func verifyFunction(f *Function) error {
	seenResult := make(map[uint32]bool)
	for _, b := range f.Blocks() {
		if err := verifyBlock(b); err != nil {
			return err
		}
		for i := b.First(); i != nil; i = i.Next() {
			if rid := i.ResultID(); rid != 0 {
				if seenResult[rid] {
					return newVerifyError("ResultIdReuse", "result id %d reused in function %q", rid, f.Name())
				}
				seenResult[rid] = true
			}
			for idx, u := range i.Operands() {
				if u.Value() == nil {
					return newVerifyError("DanglingUse", "operand %d of %s in block %q has no value", idx, i.Opcode(), b.Name())
				}
				if def, ok := u.Value().(*Instruction); ok && def.Parent() == nil {
					return newVerifyError("DanglingUse", "operand %d of %s in block %q uses a detached instruction", idx, i.Opcode(), b.Name())
				}
			}
			if i.Opcode() == OpPhi {
				if err := verifyPhi(b, i); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func verifyBlock(b *BasicBlock) error {
	terms := b.Terminators()
	if len(terms) > 1 {
		return newVerifyError("MultipleTerminators", "block %q has %d terminators, want at most 1", b.Name(), len(terms))
	}
	if len(terms) == 1 && terms[0] != b.Last() {
		return newVerifyError("MultipleTerminators", "block %q has a non-terminator following its terminator", b.Name())
	}
	return nil
}

func verifyPhi(b *BasicBlock, phi *Instruction) error {
	if len(phi.PhiOperands()) == 0 {
		return newVerifyError("EmptyPhi", "phi in block %q has no incoming operands", b.Name())
	}
	preds := make(map[*BasicBlock]bool, len(b.Preds()))
	for _, p := range b.Preds() {
		preds[p] = true
	}
	for _, op := range phi.PhiOperands() {
		if !preds[op.Pred()] {
			return newVerifyError("PhiPredecessorMismatch",
				"phi in block %q references %q, which is not a current predecessor", b.Name(), op.Pred().Name())
		}
		if op.Value() == nil {
			return newVerifyError("DanglingUse", "phi in block %q has an incoming edge with no value", b.Name())
		}
	}
	return nil
}
