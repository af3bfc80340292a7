// Package sema implements the two semantic-analysis passes named in
// spec §4.6: the symbol pass (syma, name/type resolution over a scope
// tree) and the type-check pass (sema, implicit-cast classification
// and lvalue/rvalue enforcement). It is grounded on ralph-cc's
// pkg/clightgen (name resolution ahead of lowering) and pkg/cshmgen
// (type-check with implicit cast insertion), adapted from a C type
// system to statim's.
package sema

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/statim-lang/statimc/internal/ast"
)

// Kind names one error taxonomy entry from spec §7.
type Kind string

const (
	UnresolvedName       Kind = "UnresolvedName"
	NotAFunction         Kind = "NotAFunction"
	NotAVariable         Kind = "NotAVariable"
	AmbiguousReference   Kind = "AmbiguousReference"
	TypeMismatch         Kind = "TypeMismatch"
	NonLValueAssignment  Kind = "NonLValueAssignment"
	DerefNonPointer      Kind = "DerefNonPointer"
	AddressOfRValue      Kind = "AddressOfRValue"
	ReturnTypeMismatch   Kind = "ReturnTypeMismatch"
	ReturnOutsideFunction Kind = "ReturnOutsideFunction"
	LoopControlOutsideLoop Kind = "LoopControlOutsideLoop"
	UninferrableType     Kind = "UninferrableType"
	UnsupportedRune      Kind = "UnsupportedRune"
)

// Diagnostic is one fatal resolution/type-check error, reported at a span.
type Diagnostic struct {
	Kind    Kind
	Message string
	Span    ast.Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Span.File, d.Span.BLine, d.Span.BCol, d.Kind, d.Message)
}

// DiagnosticList accumulates diagnostics for one translation unit (spec
// §7: "resolution and type errors accumulate ... the pipeline continues
// through the current pass to report as many as possible, then stops
// before the next pass").
type DiagnosticList struct {
	items []Diagnostic
}

func (l *DiagnosticList) Add(kind Kind, span ast.Span, format string, args ...any) {
	l.items = append(l.items, Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span})
}

func (l *DiagnosticList) HasErrors() bool { return len(l.items) > 0 }

func (l *DiagnosticList) Items() []Diagnostic { return l.items }

// AsError returns l as an error if it holds any diagnostics, or nil
// otherwise — the idiom every pass entrypoint uses to report its
// DiagnosticList through a normal Go error return.
func (l *DiagnosticList) AsError() error {
	if l == nil || !l.HasErrors() {
		return nil
	}
	return l
}

// Error implements error so a non-empty DiagnosticList can be returned
// directly from a pass entrypoint.
func (l *DiagnosticList) Error() string {
	if len(l.items) == 0 {
		return "sema: no diagnostics"
	}
	bold := color.New(color.FgRed, color.Bold)
	var out string
	for i, d := range l.items {
		if i > 0 {
			out += "\n"
		}
		out += bold.Sprint("error: ") + d.String()
	}
	return out
}
