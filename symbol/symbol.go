// Package symbol provides scope analysis for LOLCODE programs: it records what
// each name refers to and reports uses of names that the translated Lua would
// see as undefined globals.
package symbol

import (
	"fmt"

	"github.com/soypat/go-lolcode/ast"
)

// Flags
type Flags uint8

const (
	FlagUsed Flags = 1 << iota
	FlagAssigned
	FlagImplicit
)

func (f Flags) HasAny(hasBits Flags) bool { return f&hasBits != 0 }
func (f Flags) HasAll(hasBits Flags) bool { return f&hasBits == hasBits }
func (f Flags) With(mask Flags, setBits bool) Flags {
	if setBits {
		return f | mask
	} else {
		return f &^ mask
	}
}

// Symbol represents a declared entity: a variable, a function parameter or a function.
type Symbol struct {
	name     string
	kind     SymbolKind
	arity    int      // Parameter count, functions only.
	declNode ast.Node // nil for the implicit IT variable.
	scope    *Scope
	flags    Flags
}

// NewSymbol creates a new symbol with the given name and kind
func NewSymbol(name string, kind SymbolKind) *Symbol {
	return &Symbol{
		name: name,
		kind: kind,
	}
}

func (s *Symbol) Name() string       { return s.name }
func (s *Symbol) Kind() SymbolKind   { return s.kind }
func (s *Symbol) Arity() int         { return s.arity }
func (s *Symbol) DeclNode() ast.Node { return s.declNode }
func (s *Symbol) Scope() *Scope      { return s.scope }
func (s *Symbol) Flags() Flags       { return s.flags }

func (s *Symbol) markUsed()     { s.flags = s.flags.With(FlagUsed, true) }
func (s *Symbol) markAssigned() { s.flags = s.flags.With(FlagAssigned, true) }

// SymbolKind classifies what kind of entity a symbol represents
type SymbolKind int

const (
	SymUnknown  SymbolKind = iota
	SymVariable            // I HAS A
	SymParam               // HOW IZ I f YR param
	SymFunction            // HOW IZ I f
	SymIt                  // Implicit IT variable.
)

func (sk SymbolKind) String() string {
	switch sk {
	case SymVariable:
		return "Variable"
	case SymParam:
		return "Param"
	case SymFunction:
		return "Function"
	case SymIt:
		return "It"
	default:
		return "Unknown"
	}
}

// Scope represents a lexical scope. Loop and conditional bodies open block
// scopes since they become Lua blocks where local declarations end.
type Scope struct {
	parent    *Scope
	children  []*Scope
	symbols   map[string]*Symbol
	order     []*Symbol // Symbols in declaration order.
	node      ast.Node  // Program, FuncDecl or the statement owning the block.
	scopeType ScopeType
}

func newScope(parent *Scope, node ast.Node, typ ScopeType) *Scope {
	s := &Scope{
		parent:    parent,
		symbols:   make(map[string]*Symbol),
		node:      node,
		scopeType: typ,
	}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

// Parent returns the parent scope (nil for the program scope)
func (s *Scope) Parent() *Scope     { return s.parent }
func (s *Scope) Children() []*Scope { return s.children }
func (s *Scope) Node() ast.Node     { return s.node }
func (s *Scope) Type() ScopeType    { return s.scopeType }

// Symbols returns the symbols of this scope in declaration order.
func (s *Scope) Symbols() []*Symbol { return s.order }

// Lookup searches for a symbol in this scope and parent scopes
func (s *Scope) Lookup(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal searches for a symbol only in this scope (not parent scopes)
func (s *Scope) LookupLocal(name string) *Symbol {
	return s.symbols[name]
}

// Define adds a symbol to this scope
func (s *Scope) Define(sym *Symbol) error {
	if _, ok := s.symbols[sym.name]; ok {
		return fmt.Errorf("%s already declared in this scope", sym.name)
	}
	sym.scope = s
	s.symbols[sym.name] = sym
	s.order = append(s.order, sym)
	return nil
}

// function returns the innermost function scope enclosing s, or nil.
func (s *Scope) function() *Scope {
	for scope := s; scope != nil; scope = scope.parent {
		if scope.scopeType == ScopeFunction {
			return scope
		}
	}
	return nil
}

// ScopeType identifies the type of scope
type ScopeType int

const (
	ScopeProgram  ScopeType = iota // Top level of the file.
	ScopeFunction                  // HOW IZ I body.
	ScopeBlock                     // Loop, conditional or switch body.
)

func (st ScopeType) String() string {
	switch st {
	case ScopeProgram:
		return "Program"
	case ScopeFunction:
		return "Function"
	case ScopeBlock:
		return "Block"
	default:
		return "Unknown"
	}
}

// Table is the root of the scope hierarchy. Functions are global in LOLCODE so
// they live in their own namespace, separate from variables.
type Table struct {
	program *Scope
	funcs   map[string]*Symbol
}

// NewTable returns a table with an empty program scope holding the implicit IT.
func NewTable(prog *ast.Program) *Table {
	t := &Table{
		program: newScope(nil, prog, ScopeProgram),
		funcs:   make(map[string]*Symbol),
	}
	defineIt(t.program)
	return t
}

// ProgramScope returns the top level scope.
func (t *Table) ProgramScope() *Scope { return t.program }

// Function returns the function named name or nil if it is not declared.
func (t *Table) Function(name string) *Symbol { return t.funcs[name] }
