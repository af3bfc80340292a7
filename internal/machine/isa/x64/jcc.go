package x64

// NegJcc returns the condition that holds exactly when cc does not
// (spec §4.8, confirmed by scenario 6: NegJcc(JL) == JGE — branch
// targets swap, so the test must invert). SETcc shares the same
// condition space, so NegSetcc reuses this table.
var negJcc = map[JccOpcode]JccOpcode{
	JE: JNE, JNE: JE,
	JZ: JNZ, JNZ: JZ,
	JL: JGE, JGE: JL,
	JLE: JG, JG: JLE,
	JA: JBE, JBE: JA,
	JAE: JB, JB: JAE,
}

// FlipJcc returns the condition that tests the same relation with its
// two operands swapped (CMP a, b; Jcc  ==  CMP b, a; FlipJcc(Jcc)):
// equality conditions are symmetric and map to themselves; ordered
// conditions swap their direction (JL, testing a<b, becomes JG,
// testing b<a under the swapped operand order).
var flipJcc = map[JccOpcode]JccOpcode{
	JE: JE, JNE: JNE,
	JZ: JZ, JNZ: JNZ,
	JL: JG, JG: JL,
	JLE: JGE, JGE: JLE,
	JA: JB, JB: JA,
	JAE: JBE, JBE: JAE,
}

// NegJcc inverts cc's polarity.
func NegJcc(cc JccOpcode) JccOpcode { return negJcc[cc] }

// FlipJcc swaps cc's operand sense.
func FlipJcc(cc JccOpcode) JccOpcode { return flipJcc[cc] }

// NegSetcc inverts cc's polarity for a SETcc instruction.
func NegSetcc(cc JccOpcode) JccOpcode { return negJcc[cc] }

// FlipSetcc swaps cc's operand sense for a SETcc instruction.
func FlipSetcc(cc JccOpcode) JccOpcode { return flipJcc[cc] }
