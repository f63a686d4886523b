package symbol

import (
	"fmt"
	"sort"

	"github.com/soypat/go-lolcode/ast"
)

// Severity tells errors, which make the translated Lua misbehave, from warnings.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a problem found by Check. Pos and End are byte offsets
// into the source, like the positions of ast nodes.
type Diagnostic struct {
	Severity Severity
	Pos      int
	End      int
	Msg      string
}

func (d Diagnostic) String() string { return d.Severity.String() + ": " + d.Msg }

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Check builds the scope table of prog and reports:
//   - variables used or assigned before their declaration,
//   - calls to undeclared functions or with the wrong amount of arguments,
//   - top level calls that run before the function is declared,
//   - FOUND YR outside of a function,
//   - redeclarations and declared variables that are never read (warnings).
//
// Names given with SRS are resolved at runtime and are not checked.
// Diagnostics are sorted by position.
func Check(prog *ast.Program) (*Table, []Diagnostic) {
	table := NewTable(prog)
	diags := NewDeclarationCollector(table).Collect(prog)
	r := &resolver{table: table, scope: table.program, diags: &diags}
	ast.Walk(r, prog)
	r.closeScope()
	sort.SliceStable(diags, func(i, j int) bool { return diags[i].Pos < diags[j].Pos })
	return table, diags
}

// resolver walks statements in execution order within one scope. Statements
// that open a scope are walked with a child resolver.
type resolver struct {
	table *Table
	scope *Scope
	diags *[]Diagnostic
}

func (r *resolver) child(node ast.Node, typ ScopeType) *resolver {
	return &resolver{table: r.table, scope: newScope(r.scope, node, typ), diags: r.diags}
}

func (r *resolver) errorf(n ast.Node, format string, args ...any) {
	r.report(SeverityError, n, format, args...)
}

func (r *resolver) warnf(n ast.Node, format string, args ...any) {
	r.report(SeverityWarning, n, format, args...)
}

func (r *resolver) report(sev Severity, n ast.Node, format string, args ...any) {
	*r.diags = append(*r.diags, Diagnostic{
		Severity: sev,
		Pos:      n.Pos(),
		End:      n.End(),
		Msg:      fmt.Sprintf(format, args...),
	})
}

// Visit implements the ast.Visitor interface.
func (r *resolver) Visit(node ast.Node) ast.Visitor {
	switch n := node.(type) {
	case nil:
		return nil

	case *ast.Declaration:
		r.walk(n.Init)
		r.declare(n.Name, n, SymVariable)
		return nil

	case *ast.FuncDecl:
		fr := r.child(n, ScopeFunction)
		defineIt(fr.scope)
		for _, param := range n.Params {
			fr.declare(param, param, SymParam)
		}
		fr.walkBlock(n.Body)
		return nil

	case *ast.Loop:
		if n.Var != nil {
			r.use(n.Var)
		}
		r.walk(n.Cond)
		r.child(n, ScopeBlock).walkBlock(n.Body)
		return nil

	case *ast.IfStmt:
		r.child(n, ScopeBlock).walkBlock(n.Then)
		for _, elif := range n.ElseIfs {
			r.walk(elif.Cond)
			r.child(elif, ScopeBlock).walkBlock(elif.Body)
		}
		if n.Else != nil {
			r.child(n, ScopeBlock).walkBlock(n.Else)
		}
		return nil

	case *ast.SwitchStmt:
		for _, clause := range n.Cases {
			r.walk(clause.Value)
			r.child(clause, ScopeBlock).walkBlock(clause.Body)
		}
		if n.Default != nil {
			r.child(n, ScopeBlock).walkBlock(n.Default)
		}
		return nil

	case *ast.Assignment:
		r.walk(n.Value)
		r.assign(n.Target)
		return nil

	case *ast.Gimmeh:
		r.assign(n.Target)
		return nil

	case *ast.SlotSet:
		r.access(n.Container)
		r.walk(n.Key)
		r.walk(n.Value)
		return nil

	case *ast.VariableAccess:
		r.access(n)
		return nil

	case *ast.CallStmt:
		r.call(n, n.Name, len(n.Args))
	case *ast.CallExpr:
		r.call(n, n.Name, len(n.Args))

	case *ast.Return:
		if r.scope.function() == nil {
			r.errorf(n, "FOUND YR outside of a function")
		}
	}
	return r
}

func (r *resolver) walk(n ast.Node) {
	if n != nil {
		ast.Walk(r, n)
	}
}

func (r *resolver) walkBlock(body []ast.Statement) {
	for _, stmt := range body {
		r.walk(stmt)
	}
	r.closeScope()
}

// closeScope reports the variables of the scope that were never read.
func (r *resolver) closeScope() {
	for _, sym := range r.scope.order {
		if sym.kind == SymVariable && !sym.flags.HasAny(FlagUsed) {
			r.warnf(sym.declNode, "%s declared and not used", sym.name)
		}
	}
}

func (r *resolver) declare(name *ast.Identifier, decl ast.Node, kind SymbolKind) {
	if name == nil || name.Srs {
		return
	}
	sym := NewSymbol(name.Name, kind)
	sym.declNode = decl
	if err := r.scope.Define(sym); err != nil {
		r.errorf(name, "%s", err)
		return
	}
	if collidesWithIt(name.Name) {
		r.warnf(name, "%s is the same Lua variable as IT", name.Name)
	}
	if r.table.funcs[name.Name] != nil {
		r.warnf(name, "%s shadows function %s", name.Name, name.Name)
	}
}

// lookup resolves name in the current scope chain, reporting undeclared names.
// It returns nil for SRS names and undeclared names.
func (r *resolver) lookup(name *ast.Identifier) *Symbol {
	if name == nil || name.Srs {
		return nil
	}
	sym := r.scope.Lookup(name.Name)
	if sym == nil {
		r.errorf(name, "undeclared variable %s", name.Name)
	}
	return sym
}

func (r *resolver) use(name *ast.Identifier) {
	if sym := r.lookup(name); sym != nil {
		sym.markUsed()
	}
}

// access marks a variable read. Reaching into slots reads the container too.
func (r *resolver) access(va *ast.VariableAccess) {
	if va != nil {
		r.use(va.Name)
	}
}

func (r *resolver) assign(va *ast.VariableAccess) {
	if va == nil {
		return
	}
	if len(va.Slots) > 0 {
		r.use(va.Name)
		return
	}
	if sym := r.lookup(va.Name); sym != nil {
		sym.markAssigned()
	}
}

func (r *resolver) call(n ast.Node, name *ast.Identifier, nargs int) {
	if name == nil || name.Srs {
		return
	}
	fn := r.table.funcs[name.Name]
	if fn == nil {
		r.errorf(name, "undefined function %s", name.Name)
		return
	}
	fn.markUsed()
	if nargs != fn.arity {
		r.errorf(n, "%s takes %d arguments, got %d", name.Name, fn.arity, nargs)
	}
	if r.scope.function() == nil && fn.declNode.Pos() > n.Pos() {
		r.errorf(n, "%s called before its declaration", name.Name)
	}
}
