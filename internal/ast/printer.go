package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer dumps a Program in a human-readable, indented form, the way
// the reference pipeline's cabs printer walks its own declarations
// recursively rather than relying on reflection (spec §6.1's AST
// contract has no required textual form; this one exists purely for
// the CLI's -dast dump flag).
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates an AST printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
	fmt.Fprintf(p.w, format, args...)
	fmt.Fprintln(p.w)
}

// PrintProgram prints every top-level declaration.
func (p *Printer) PrintProgram(prog *Program) {
	for _, d := range prog.Decls {
		p.printDecl(d)
	}
}

func (p *Printer) printDecl(d Decl) {
	switch v := d.(type) {
	case *Use:
		p.line("use %q", v.Path)
	case *Struct:
		p.line("struct %s {", v.Name)
		p.indent++
		for _, f := range v.Fields {
			p.line("%s: %s", f.Name, typeRefString(f.TypeRef))
		}
		p.indent--
		p.line("}")
	case *Enum:
		p.line("enum %s {", v.Name)
		p.indent++
		for _, ev := range v.Values {
			if ev.HasValue {
				p.line("%s = %d", ev.Name, ev.Value)
			} else {
				p.line("%s", ev.Name)
			}
		}
		p.indent--
		p.line("}")
	case *Variable:
		p.printVariable(v)
	case *Function:
		p.printFunction(v)
	default:
		p.line("/* unknown decl %T */", d)
	}
}

func (p *Printer) printVariable(v *Variable) {
	if v.Init != nil {
		p.line("var %s = %s", v.Name, exprString(v.Init))
	} else {
		p.line("var %s: %s", v.Name, typeRefString(v.TypeRef))
	}
}

func (p *Printer) printFunction(f *Function) {
	params := make([]string, len(f.Params))
	for i, param := range f.Params {
		params[i] = fmt.Sprintf("%s: %s", param.Name, typeRefString(param.TypeRef))
	}
	p.line("fn %s(%s) -> %s {", f.Name, strings.Join(params, ", "), typeRefString(f.RetRef))
	if f.Body != nil {
		p.indent++
		for _, s := range f.Body.Stmts {
			p.printStmt(s)
		}
		p.indent--
	}
	p.line("}")
}

func (p *Printer) printStmt(s Stmt) {
	switch v := s.(type) {
	case *Block:
		p.line("{")
		p.indent++
		for _, inner := range v.Stmts {
			p.printStmt(inner)
		}
		p.indent--
		p.line("}")
	case *Break:
		p.line("break")
	case *Continue:
		p.line("continue")
	case *DeclStmt:
		p.printDecl(v.D)
	case *If:
		p.line("if %s", exprString(v.Cond))
		p.indent++
		p.printStmt(v.Then)
		p.indent--
		if v.Else != nil {
			p.line("else")
			p.indent++
			p.printStmt(v.Else)
			p.indent--
		}
	case *While:
		p.line("while %s", exprString(v.Cond))
		p.indent++
		p.printStmt(v.Body)
		p.indent--
	case *Ret:
		if v.Value != nil {
			p.line("ret %s", exprString(v.Value))
		} else {
			p.line("ret")
		}
	case *ExprStmt:
		p.line("%s", exprString(v.X))
	default:
		p.line("/* unknown stmt %T */", s)
	}
}

func typeRefString(t TypeRef) string {
	return strings.Repeat("*", t.Indirection) + t.Name
}

func exprString(e Expr) string {
	switch v := e.(type) {
	case *BoolLit:
		return strconv.FormatBool(v.Value)
	case *IntegerLit:
		return strconv.FormatInt(v.Value, 10)
	case *FloatLit:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case *CharLit:
		return strconv.QuoteRune(rune(v.Value))
	case *StringLit:
		return strconv.Quote(v.Value)
	case *NullLit:
		return "null"
	case *ReferenceExpr:
		return v.Name
	case *MemberExpr:
		return exprString(v.Base) + "." + v.Field
	case *CallExpr:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = exprString(a)
		}
		return exprString(v.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *SubscriptExpr:
		return exprString(v.Base) + "[" + exprString(v.Index) + "]"
	case *BinaryExpr:
		return exprString(v.LHS) + " " + v.Op.String() + " " + exprString(v.RHS)
	case *UnaryExpr:
		return v.Op.String() + exprString(v.Operand)
	case *CastExpr:
		return "cast<" + typeRefString(v.TargetRef) + ">(" + exprString(v.Operand) + ")"
	case *ParenExpr:
		return "(" + exprString(v.Inner) + ")"
	case *SizeofExpr:
		if v.HasExpr {
			return "sizeof(" + exprString(v.Operand) + ")"
		}
		return "sizeof(" + typeRefString(v.OperandRef) + ")"
	case *RuneAnnotation:
		return "$" + v.Name
	default:
		return fmt.Sprintf("<%T>", e)
	}
}
