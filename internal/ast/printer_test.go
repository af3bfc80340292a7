package ast

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterFunctionWithReturn(t *testing.T) {
	prog := &Program{Decls: []Decl{
		&Function{
			Name:   "id",
			Params: []*Parameter{{Name: "x", TypeRef: TypeRef{Name: "i32"}}},
			RetRef: TypeRef{Name: "i32"},
			Body: &Block{Stmts: []Stmt{
				&Ret{Value: &ReferenceExpr{Name: "x"}},
			}},
		},
	}}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintProgram(prog)
	out := buf.String()

	for _, want := range []string{"fn id(x: i32) -> i32 {", "ret x"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrinterStructFields(t *testing.T) {
	prog := &Program{Decls: []Decl{
		&Struct{Name: "Point", Fields: []*Field{
			{Name: "a", TypeRef: TypeRef{Name: "i8"}},
			{Name: "b", TypeRef: TypeRef{Name: "i32"}},
		}},
	}}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintProgram(prog)
	out := buf.String()

	if !strings.Contains(out, "struct Point {") || !strings.Contains(out, "b: i32") {
		t.Errorf("expected struct dump with fields, got:\n%s", out)
	}
}
