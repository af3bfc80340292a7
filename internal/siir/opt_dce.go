package siir

// RunTrivialDCE iterates functions -> blocks -> instructions, collects
// every trivially-dead instruction, and detaches+destroys them (spec
// §4.4). It proves the Value/Use contract: removing a dead instruction
// detaches its operand uses, which can make an operand itself dead in
// turn, so the pass repeats within a block until a fixed point.
//
// Idempotence (spec §8): running this twice on a stable IR produces no
// further removals, since a second pass finds no instruction with
// NumUses() == 0 left to collect.
func RunTrivialDCE(m *Module) (removed int) {
	for _, f := range m.Functions() {
		removed += runTrivialDCEFunction(f)
	}
	return removed
}

func runTrivialDCEFunction(f *Function) int {
	removed := 0
	for _, b := range f.Blocks() {
		removed += runTrivialDCEBlock(b)
	}
	return removed
}

func runTrivialDCEBlock(b *BasicBlock) int {
	removed := 0
	for {
		progress := false
		for i := b.First(); i != nil; {
			next := i.Next()
			if i.IsTriviallyDead() {
				b.DetachAndDestroy(i)
				removed++
				progress = true
			}
			i = next
		}
		if !progress {
			break
		}
	}
	return removed
}
