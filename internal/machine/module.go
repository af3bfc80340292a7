package machine

import "github.com/statim-lang/statimc/internal/types"

// Module is the machine layer's top-level container: every function
// instruction selection produced for one siir.Module, plus the target
// triple the printer's "MACHINE CODE <arch>" header names (spec §4.8).
type Module struct {
	Target    types.Target
	functions []*MachineFunction
}

// NewModule creates an empty machine module for target.
func NewModule(target types.Target) *Module {
	return &Module{Target: target}
}

// Functions returns the module's selected functions in the order they
// were added.
func (m *Module) Functions() []*MachineFunction { return m.functions }

// AddFunction appends a selected function to the module.
func (m *Module) AddFunction(f *MachineFunction) { m.functions = append(m.functions, f) }
