// Package pipeline wires the library entrypoint spec §6.5 names: the
// sema -> lower -> verify -> (optional DCE) -> InstSelection chain that
// turns a constructed AST into a machine.Module, independent of any
// particular CLI or config surface. cmd/statimc is a thin wrapper over
// Compile plus the fixture registry needed since no parser exists.
package pipeline

import (
	"fmt"

	"github.com/statim-lang/statimc/internal/ast"
	"github.com/statim-lang/statimc/internal/lower"
	"github.com/statim-lang/statimc/internal/machine"
	"github.com/statim-lang/statimc/internal/machine/isa/x64"
	"github.com/statim-lang/statimc/internal/sema"
	"github.com/statim-lang/statimc/internal/siir"
	"github.com/statim-lang/statimc/internal/types"
)

// Options controls optional pipeline behavior beyond the fixed pass
// order spec §5 mandates (trivial-DCE -> instruction selection).
type Options struct {
	// RunDCE enables the trivial-dead-code-elimination pass between
	// lowering and instruction selection.
	RunDCE bool
}

// Result carries every intermediate artifact a dump flag might need:
// the lowered SIIR module (for the "siir" dump) and the selected
// machine module (for the "machine" dump). The AST itself is whatever
// the caller passed in, so there is nothing to add for "ast".
type Result struct {
	SIIR    *siir.Module
	Machine *machine.Module
	// Removed is how many instructions trivial-DCE detached, 0 if
	// Options.RunDCE was false.
	Removed int
}

// Compile runs prog through semantic analysis, IR lowering, the IR
// verifier, optional trivial-DCE, and x86-64 instruction selection,
// returning the selected machine module. Diagnostics accumulated by
// either semantic pass are returned as a flat slice regardless of
// which pass produced them, since the CLI only needs to print them;
// callers needing the distinction can type-assert by Kind.
func Compile(prog *ast.Program, target types.Target, moduleName string, opts Options) (*Result, []sema.Diagnostic, error) {
	ctx := types.NewContext()
	module := siir.NewModuleWithTypes(moduleName, ctx)

	resolver := sema.NewResolver(ctx)
	if err := resolver.Resolve(prog); err != nil {
		return nil, diagnosticsOf(err), fmt.Errorf("pipeline: resolve: %w", err)
	}

	checker := sema.NewTypeChecker()
	if err := checker.CheckProgram(prog); err != nil {
		return nil, diagnosticsOf(err), fmt.Errorf("pipeline: typecheck: %w", err)
	}

	lowerer := lower.NewLowerer(module, &target)
	if err := lowerer.LowerProgram(prog); err != nil {
		return nil, diagnosticsOf(err), fmt.Errorf("pipeline: lower: %w", err)
	}

	if err := siir.Verify(module); err != nil {
		return nil, nil, fmt.Errorf("pipeline: verify: %w", err)
	}

	removed := 0
	if opts.RunDCE {
		removed = siir.RunTrivialDCE(module)
	}

	mmod := machine.NewModule(target)
	for _, fn := range module.Functions() {
		mfn := x64.NewInstSelection(target).Run(fn)
		mmod.AddFunction(mfn)
	}

	return &Result{SIIR: module, Machine: mmod, Removed: removed}, nil, nil
}

// diagnosticsOf unwraps a *sema.DiagnosticList error into its items, or
// returns nil for errors that aren't one (e.g. lowering's plain
// fmt.Errorf failures, which have no per-diagnostic span to report).
func diagnosticsOf(err error) []sema.Diagnostic {
	if dl, ok := err.(*sema.DiagnosticList); ok {
		return dl.Items()
	}
	return nil
}
