package sema

import "github.com/statim-lang/statimc/internal/ast"

// Scope traversal and mutation lives here, not in package ast (spec §9
// design note: "do not fold scope traversal into the AST; keep scopes
// separate"). ast.Scope is a bare {Parent, Names} holder; every lookup
// and insertion rule is a free function over it.

// Declare inserts name -> decl into s. It fails if name already exists
// directly in s (shadowing an outer scope is legal; redeclaring within
// the same scope is not).
func Declare(s *ast.Scope, name string, decl ast.Decl) bool {
	if _, exists := s.Names[name]; exists {
		return false
	}
	s.Names[name] = decl
	return true
}

// Lookup walks s and its ancestors, returning the nearest declaration
// bound to name, or (nil, false) if none is found in any enclosing scope.
func Lookup(s *ast.Scope, name string) (ast.Decl, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if d, ok := cur.Names[name]; ok {
			return d, true
		}
	}
	return nil, false
}
