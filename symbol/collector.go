package symbol

import (
	"fmt"

	"github.com/soypat/go-lolcode/ast"
)

// DeclarationCollector registers every function of a program in a Table before
// any body is resolved, so function bodies may call functions declared later.
type DeclarationCollector struct {
	table *Table
	diags []Diagnostic
}

func NewDeclarationCollector(table *Table) *DeclarationCollector {
	return &DeclarationCollector{table: table}
}

// Collect walks prog declaring its functions and returns redeclaration errors.
func (dc *DeclarationCollector) Collect(prog *ast.Program) []Diagnostic {
	dc.diags = nil
	ast.Walk(dc, prog)
	return dc.diags
}

// Visit implements the ast.Visitor interface.
func (dc *DeclarationCollector) Visit(node ast.Node) ast.Visitor {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.FuncDecl:
		dc.declareFunc(n)
	case ast.Expression:
		return nil // Expressions hold no declarations.
	}
	return dc
}

func (dc *DeclarationCollector) declareFunc(fn *ast.FuncDecl) {
	if fn.Name == nil || fn.Name.Srs {
		return
	}
	name := fn.Name.Name
	if prev := dc.table.funcs[name]; prev != nil {
		dc.diags = append(dc.diags, Diagnostic{
			Severity: SeverityError,
			Pos:      fn.Name.Pos(),
			End:      fn.Name.End(),
			Msg:      fmt.Sprintf("function %s redeclared", name),
		})
		return
	}
	sym := NewSymbol(name, SymFunction)
	sym.arity = len(fn.Params)
	sym.declNode = fn
	dc.table.funcs[name] = sym
}
