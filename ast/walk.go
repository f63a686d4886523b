package ast

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order: It starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor
// w for each of the non-nil children of node, followed by a call of
// w.Visit(nil).
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkStmts(v, n.Body)

	// Leaf statements.
	case *Hai, *Kthxbye, *CanHas, *Gtfo, *BadStmt:

	case *Declaration:
		walkIdent(v, n.Name)
		walkExpr(v, n.Init)

	case *Loop:
		walkIdent(v, n.Label)
		walkIdent(v, n.Var)
		walkExpr(v, n.Cond)
		walkStmts(v, n.Body)

	case *SlotSet:
		if n.Container != nil {
			Walk(v, n.Container)
		}
		walkExpr(v, n.Key)
		walkExpr(v, n.Value)

	case *Assignment:
		if n.Target != nil {
			Walk(v, n.Target)
		}
		walkExpr(v, n.Value)

	case *Visible:
		walkExprs(v, n.Args)

	case *Gimmeh:
		if n.Target != nil {
			Walk(v, n.Target)
		}

	case *FuncDecl:
		walkIdent(v, n.Name)
		for _, p := range n.Params {
			walkIdent(v, p)
		}
		walkStmts(v, n.Body)

	case *CallStmt:
		walkIdent(v, n.Name)
		walkExprs(v, n.Args)

	case *Return:
		walkExpr(v, n.Value)

	case *ExprStmt:
		walkExpr(v, n.X)

	case *IfStmt:
		walkStmts(v, n.Then)
		for _, elif := range n.ElseIfs {
			Walk(v, elif)
		}
		walkStmts(v, n.Else)

	case *ElseIf:
		walkExpr(v, n.Cond)
		walkStmts(v, n.Body)

	case *SwitchStmt:
		for _, cc := range n.Cases {
			Walk(v, cc)
		}
		walkStmts(v, n.Default)

	case *CaseClause:
		walkExpr(v, n.Value)
		walkStmts(v, n.Body)

	// Expressions.
	case *Identifier, *Literal, *ImplicitIt:

	case *VariableAccess:
		walkIdent(v, n.Name)
		for _, slot := range n.Slots {
			walkIdent(v, slot)
		}

	case *UnaryExpr:
		walkExpr(v, n.X)

	case *BinaryExpr:
		walkExpr(v, n.Left)
		walkExpr(v, n.Right)

	case *NaryExpr:
		walkExprs(v, n.Args)

	case *CastExpr:
		walkExpr(v, n.X)

	case *CallExpr:
		walkIdent(v, n.Name)
		walkExprs(v, n.Args)
	}

	v.Visit(nil)
}

func walkStmts(v Visitor, stmts []Statement) {
	for _, stmt := range stmts {
		if stmt != nil {
			Walk(v, stmt)
		}
	}
}

func walkExprs(v Visitor, exprs []Expression) {
	for _, expr := range exprs {
		walkExpr(v, expr)
	}
}

func walkExpr(v Visitor, expr Expression) {
	if expr != nil {
		Walk(v, expr)
	}
}

func walkIdent(v Visitor, ident *Identifier) {
	if ident != nil {
		Walk(v, ident)
	}
}

// Inspect traverses an AST in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a
// call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}
