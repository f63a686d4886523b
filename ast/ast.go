package ast

import (
	"github.com/soypat/go-lolcode/token"
)

type Node interface {
	AppendTokenLiteral(dst []byte) []byte
	AppendString(dst []byte) []byte
	Pos() int // position of first character belonging to the node in file.
	End() int // position of first character immediately after the node in file.
}

type Expression interface {
	Node
	expressionNode()
}

type Statement interface {
	Node
	statementNode()
}

// Program represents the root node of a LOLCODE source file.
type Program struct {
	Body []Statement
}

func (p *Program) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "PROGRAM"...)
}

func (p *Program) AppendString(dst []byte) []byte {
	for i, stmt := range p.Body {
		if i > 0 {
			dst = append(dst, '\n')
		}
		dst = stmt.AppendString(dst)
	}
	return dst
}

func (p *Program) Pos() int {
	if len(p.Body) == 0 {
		return 0
	}
	return p.Body[0].Pos()
}

func (p *Program) End() int {
	if len(p.Body) == 0 {
		return 0
	}
	return p.Body[len(p.Body)-1].End()
}

// Identifier is a variable, function, label or slot name.
// When Srs is set the name is not literal: the runtime value of the variable Name
// is the actual identifier (SRS Name).
type Identifier struct {
	Name     string
	Srs      bool
	StartPos int
	EndPos   int
}

func (i *Identifier) AppendTokenLiteral(dst []byte) []byte {
	if i.Srs {
		return append(dst, "SRS"...)
	}
	return append(dst, i.Name...)
}
func (i *Identifier) AppendString(dst []byte) []byte {
	if i.Srs {
		dst = append(dst, "SRS "...)
	}
	return append(dst, i.Name...)
}
func (i *Identifier) Pos() int { return i.StartPos }
func (i *Identifier) End() int { return i.EndPos }

// ==================== STATEMENTS ====================

// Hai marks the start of a program: HAI [version]
type Hai struct {
	Version  string
	StartPos int
	EndPos   int
}

func (h *Hai) statementNode() {}
func (h *Hai) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "HAI"...)
}
func (h *Hai) AppendString(dst []byte) []byte {
	dst = append(dst, "HAI"...)
	if h.Version != "" {
		dst = append(dst, ' ')
		dst = append(dst, h.Version...)
	}
	return dst
}
func (h *Hai) Pos() int { return h.StartPos }
func (h *Hai) End() int { return h.EndPos }

// Kthxbye marks the end of a program.
type Kthxbye struct {
	StartPos int
	EndPos   int
}

func (k *Kthxbye) statementNode() {}
func (k *Kthxbye) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "KTHXBYE"...)
}
func (k *Kthxbye) AppendString(dst []byte) []byte {
	return append(dst, "KTHXBYE"...)
}
func (k *Kthxbye) Pos() int { return k.StartPos }
func (k *Kthxbye) End() int { return k.EndPos }

// CanHas is a library import: CAN HAS STDIO?
type CanHas struct {
	Library  string
	StartPos int
	EndPos   int
}

func (c *CanHas) statementNode() {}
func (c *CanHas) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "CAN HAS"...)
}
func (c *CanHas) AppendString(dst []byte) []byte {
	dst = append(dst, "CAN HAS "...)
	dst = append(dst, c.Library...)
	return append(dst, '?')
}
func (c *CanHas) Pos() int { return c.StartPos }
func (c *CanHas) End() int { return c.EndPos }

// Declaration declares a variable: I HAS A Name [ITZ Init | ITZ A Type]
// At most one of Init and Type is set. Type is [token.Undefined] when absent.
type Declaration struct {
	Name     *Identifier
	Init     Expression
	Type     token.Token
	StartPos int
	EndPos   int
}

func (d *Declaration) statementNode() {}
func (d *Declaration) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "I HAS A"...)
}
func (d *Declaration) AppendString(dst []byte) []byte {
	dst = append(dst, "I HAS A "...)
	dst = d.Name.AppendString(dst)
	if d.Init != nil {
		dst = append(dst, " ITZ "...)
		dst = d.Init.AppendString(dst)
	} else if d.Type != token.Undefined {
		dst = append(dst, " ITZ A "...)
		dst = append(dst, d.Type.String()...)
	}
	return dst
}
func (d *Declaration) Pos() int { return d.StartPos }
func (d *Declaration) End() int { return d.EndPos }

// Loop represents IM IN YR Label [Op YR Var [CondKind Cond]] ... IM OUTTA YR Label.
// Op is UPPIN, NERFIN or Undefined. CondKind is TIL, WILE or Undefined.
type Loop struct {
	Label    *Identifier
	Op       token.Token
	Var      *Identifier
	CondKind token.Token
	Cond     Expression
	Body     []Statement
	StartPos int
	EndPos   int
}

func (l *Loop) statementNode() {}
func (l *Loop) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "IM IN YR"...)
}
func (l *Loop) AppendString(dst []byte) []byte {
	dst = append(dst, "IM IN YR "...)
	dst = l.Label.AppendString(dst)
	if l.Op != token.Undefined {
		dst = append(dst, ' ')
		dst = append(dst, l.Op.String()...)
		dst = append(dst, " YR "...)
		dst = l.Var.AppendString(dst)
	}
	if l.Cond != nil {
		dst = append(dst, ' ')
		dst = append(dst, l.CondKind.String()...)
		dst = append(dst, ' ')
		dst = l.Cond.AppendString(dst)
	}
	return dst
}
func (l *Loop) Pos() int { return l.StartPos }
func (l *Loop) End() int { return l.EndPos }

// SlotSet stores Value in a BUKKIT slot: Container HAS A slot ITZ Value, or Container'Z slot R Value.
type SlotSet struct {
	Container *VariableAccess
	Key       Expression
	Value     Expression
	StartPos  int
	EndPos    int
}

func (s *SlotSet) statementNode() {}
func (s *SlotSet) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "HAS A"...)
}
func (s *SlotSet) AppendString(dst []byte) []byte {
	dst = s.Container.AppendString(dst)
	dst = append(dst, " HAS A "...)
	if lit, ok := s.Key.(*Literal); ok && lit.Kind == token.YarnLit {
		dst = append(dst, lit.Value...)
	} else {
		dst = s.Key.AppendString(dst)
	}
	dst = append(dst, " ITZ "...)
	return s.Value.AppendString(dst)
}
func (s *SlotSet) Pos() int { return s.StartPos }
func (s *SlotSet) End() int { return s.EndPos }

// Assignment represents Target R Value.
type Assignment struct {
	Target   *VariableAccess
	Value    Expression
	StartPos int
	EndPos   int
}

func (a *Assignment) statementNode() {}
func (a *Assignment) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, 'R')
}
func (a *Assignment) AppendString(dst []byte) []byte {
	dst = a.Target.AppendString(dst)
	dst = append(dst, " R "...)
	return a.Value.AppendString(dst)
}
func (a *Assignment) Pos() int { return a.StartPos }
func (a *Assignment) End() int { return a.EndPos }

// Visible prints its arguments to standard output: VISIBLE args... [!]
type Visible struct {
	Args      []Expression
	NoNewline bool // Trailing '!' suppresses the newline.
	StartPos  int
	EndPos    int
}

func (v *Visible) statementNode() {}
func (v *Visible) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "VISIBLE"...)
}
func (v *Visible) AppendString(dst []byte) []byte {
	dst = append(dst, "VISIBLE"...)
	for _, arg := range v.Args {
		dst = append(dst, ' ')
		dst = arg.AppendString(dst)
	}
	if v.NoNewline {
		dst = append(dst, '!')
	}
	return dst
}
func (v *Visible) Pos() int { return v.StartPos }
func (v *Visible) End() int { return v.EndPos }

// Gimmeh reads a line of user input into Target.
type Gimmeh struct {
	Target   *VariableAccess
	StartPos int
	EndPos   int
}

func (g *Gimmeh) statementNode() {}
func (g *Gimmeh) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "GIMMEH"...)
}
func (g *Gimmeh) AppendString(dst []byte) []byte {
	dst = append(dst, "GIMMEH "...)
	return g.Target.AppendString(dst)
}
func (g *Gimmeh) Pos() int { return g.StartPos }
func (g *Gimmeh) End() int { return g.EndPos }

// FuncDecl represents HOW IZ I Name [YR p [AN YR p]...] ... IF U SAY SO
type FuncDecl struct {
	Name     *Identifier
	Params   []*Identifier
	Body     []Statement
	StartPos int
	EndPos   int
}

func (f *FuncDecl) statementNode() {}
func (f *FuncDecl) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "HOW IZ I"...)
}
func (f *FuncDecl) AppendString(dst []byte) []byte {
	dst = append(dst, "HOW IZ I "...)
	dst = f.Name.AppendString(dst)
	for i, p := range f.Params {
		if i > 0 {
			dst = append(dst, " AN"...)
		}
		dst = append(dst, " YR "...)
		dst = p.AppendString(dst)
	}
	return dst
}
func (f *FuncDecl) Pos() int { return f.StartPos }
func (f *FuncDecl) End() int { return f.EndPos }

// CallStmt is a function call in statement position: I IZ Name [YR a [AN YR a]...] MKAY
type CallStmt struct {
	Name     *Identifier
	Args     []Expression
	StartPos int
	EndPos   int
}

func (c *CallStmt) statementNode() {}
func (c *CallStmt) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "I IZ"...)
}
func (c *CallStmt) AppendString(dst []byte) []byte {
	return appendCall(dst, c.Name, c.Args)
}
func (c *CallStmt) Pos() int { return c.StartPos }
func (c *CallStmt) End() int { return c.EndPos }

// Return represents FOUND YR Value.
type Return struct {
	Value    Expression
	StartPos int
	EndPos   int
}

func (r *Return) statementNode() {}
func (r *Return) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "FOUND YR"...)
}
func (r *Return) AppendString(dst []byte) []byte {
	dst = append(dst, "FOUND YR "...)
	return r.Value.AppendString(dst)
}
func (r *Return) Pos() int { return r.StartPos }
func (r *Return) End() int { return r.EndPos }

// Gtfo returns from a function without a value.
type Gtfo struct {
	StartPos int
	EndPos   int
}

func (g *Gtfo) statementNode() {}
func (g *Gtfo) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "GTFO"...)
}
func (g *Gtfo) AppendString(dst []byte) []byte {
	return append(dst, "GTFO"...)
}
func (g *Gtfo) Pos() int { return g.StartPos }
func (g *Gtfo) End() int { return g.EndPos }

// ExprStmt is a bare expression. Its value is stored in the implicit IT variable.
type ExprStmt struct {
	X Expression
}

func (e *ExprStmt) statementNode() {}
func (e *ExprStmt) AppendTokenLiteral(dst []byte) []byte {
	return e.X.AppendTokenLiteral(dst)
}
func (e *ExprStmt) AppendString(dst []byte) []byte {
	return e.X.AppendString(dst)
}
func (e *ExprStmt) Pos() int { return e.X.Pos() }
func (e *ExprStmt) End() int { return e.X.End() }

// IfStmt represents O RLY? YA RLY ... [MEBBE cond ...]... [NO WAI ...] OIC.
// The condition is the IT variable.
type IfStmt struct {
	Then     []Statement
	ElseIfs  []*ElseIf
	Else     []Statement
	StartPos int
	EndPos   int
}

// ElseIf is a MEBBE clause.
type ElseIf struct {
	Cond     Expression
	Body     []Statement
	StartPos int
	EndPos   int
}

func (is *IfStmt) statementNode() {}
func (is *IfStmt) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "O RLY?"...)
}
func (is *IfStmt) AppendString(dst []byte) []byte {
	return append(dst, "O RLY?"...)
}
func (is *IfStmt) Pos() int { return is.StartPos }
func (is *IfStmt) End() int { return is.EndPos }

func (ei *ElseIf) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "MEBBE"...)
}
func (ei *ElseIf) AppendString(dst []byte) []byte {
	dst = append(dst, "MEBBE "...)
	return ei.Cond.AppendString(dst)
}
func (ei *ElseIf) Pos() int { return ei.StartPos }
func (ei *ElseIf) End() int { return ei.EndPos }

// SwitchStmt represents WTF? OMG literal ... [OMGWTF ...] OIC, switching on IT.
type SwitchStmt struct {
	Cases    []*CaseClause
	Default  []Statement
	StartPos int
	EndPos   int
}

// CaseClause is an OMG clause.
type CaseClause struct {
	Value    Expression
	Body     []Statement
	StartPos int
	EndPos   int
}

func (ss *SwitchStmt) statementNode() {}
func (ss *SwitchStmt) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "WTF?"...)
}
func (ss *SwitchStmt) AppendString(dst []byte) []byte {
	return append(dst, "WTF?"...)
}
func (ss *SwitchStmt) Pos() int { return ss.StartPos }
func (ss *SwitchStmt) End() int { return ss.EndPos }

func (cc *CaseClause) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "OMG"...)
}
func (cc *CaseClause) AppendString(dst []byte) []byte {
	dst = append(dst, "OMG "...)
	return cc.Value.AppendString(dst)
}
func (cc *CaseClause) Pos() int { return cc.StartPos }
func (cc *CaseClause) End() int { return cc.EndPos }

// BadStmt is a placeholder for a statement that failed to parse.
type BadStmt struct {
	Msg      string
	StartPos int
	EndPos   int
}

func (bs *BadStmt) statementNode() {}
func (bs *BadStmt) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "<bad statement>"...)
}
func (bs *BadStmt) AppendString(dst []byte) []byte {
	dst = append(dst, "BTW bad statement: "...)
	return append(dst, bs.Msg...)
}
func (bs *BadStmt) Pos() int { return bs.StartPos }
func (bs *BadStmt) End() int { return bs.EndPos }

// ==================== EXPRESSIONS ====================

// Literal is a NOOB, WIN, FAIL, NUMBR, NUMBAR or YARN literal.
// Value holds the numeral text or the decoded YARN contents.
// Raw holds the YARN contents quoted and escaped for the target language.
type Literal struct {
	Kind     token.Token // NOOB, WIN, FAIL, NumbrLit, NumbarLit or YarnLit.
	Value    string
	Raw      string
	StartPos int
	EndPos   int
}

func (l *Literal) expressionNode() {}
func (l *Literal) AppendTokenLiteral(dst []byte) []byte {
	switch l.Kind {
	case token.NumbrLit:
		return append(dst, "NUMBR"...)
	case token.NumbarLit:
		return append(dst, "NUMBAR"...)
	case token.YarnLit:
		return append(dst, "YARN"...)
	case token.WIN, token.FAIL:
		return append(dst, "TROOF"...)
	}
	return append(dst, "NOOB"...)
}
func (l *Literal) AppendString(dst []byte) []byte {
	switch l.Kind {
	case token.YarnLit:
		return AppendYarn(dst, l.Value)
	case token.NumbrLit, token.NumbarLit:
		return append(dst, l.Value...)
	}
	return append(dst, l.Kind.String()...)
}
func (l *Literal) Pos() int { return l.StartPos }
func (l *Literal) End() int { return l.EndPos }

// VariableAccess reads a variable, optionally through a chain of BUKKIT slots (Name'Z slot'Z slot).
type VariableAccess struct {
	Name     *Identifier
	Slots    []*Identifier
	StartPos int
	EndPos   int
}

func (va *VariableAccess) expressionNode() {}
func (va *VariableAccess) AppendTokenLiteral(dst []byte) []byte {
	return va.Name.AppendTokenLiteral(dst)
}
func (va *VariableAccess) AppendString(dst []byte) []byte {
	dst = va.Name.AppendString(dst)
	for _, slot := range va.Slots {
		dst = append(dst, "'Z "...)
		dst = slot.AppendString(dst)
	}
	return dst
}
func (va *VariableAccess) Pos() int { return va.StartPos }
func (va *VariableAccess) End() int { return va.EndPos }

// ImplicitIt reads the implicit IT variable holding the last bare expression's value.
type ImplicitIt struct {
	StartPos int
	EndPos   int
}

func (it *ImplicitIt) expressionNode() {}
func (it *ImplicitIt) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "IT"...)
}
func (it *ImplicitIt) AppendString(dst []byte) []byte {
	return append(dst, "IT"...)
}
func (it *ImplicitIt) Pos() int { return it.StartPos }
func (it *ImplicitIt) End() int { return it.EndPos }

// UnaryExpr represents NOT X.
type UnaryExpr struct {
	Op       token.Token
	X        Expression
	StartPos int
	EndPos   int
}

func (ue *UnaryExpr) expressionNode() {}
func (ue *UnaryExpr) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, ue.Op.String()...)
}
func (ue *UnaryExpr) AppendString(dst []byte) []byte {
	dst = append(dst, ue.Op.String()...)
	dst = append(dst, ' ')
	return ue.X.AppendString(dst)
}
func (ue *UnaryExpr) Pos() int { return ue.StartPos }
func (ue *UnaryExpr) End() int { return ue.EndPos }

// BinaryExpr represents a two-operand expression in prefix form, e.g. SUM OF Left AN Right.
type BinaryExpr struct {
	Op       token.Token
	Left     Expression
	Right    Expression
	StartPos int
	EndPos   int
}

func (be *BinaryExpr) expressionNode() {}
func (be *BinaryExpr) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, be.Op.String()...)
}
func (be *BinaryExpr) AppendString(dst []byte) []byte {
	dst = append(dst, be.Op.String()...)
	dst = append(dst, ' ')
	dst = be.Left.AppendString(dst)
	dst = append(dst, " AN "...)
	return be.Right.AppendString(dst)
}
func (be *BinaryExpr) Pos() int { return be.StartPos }
func (be *BinaryExpr) End() int { return be.EndPos }

// NaryExpr represents ALL OF, ANY OF and SMOOSH: Op a AN b AN ... MKAY
type NaryExpr struct {
	Op       token.Token
	Args     []Expression
	StartPos int
	EndPos   int
}

func (ne *NaryExpr) expressionNode() {}
func (ne *NaryExpr) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, ne.Op.String()...)
}
func (ne *NaryExpr) AppendString(dst []byte) []byte {
	dst = append(dst, ne.Op.String()...)
	for i, arg := range ne.Args {
		if i > 0 {
			dst = append(dst, " AN"...)
		}
		dst = append(dst, ' ')
		dst = arg.AppendString(dst)
	}
	return append(dst, " MKAY"...)
}
func (ne *NaryExpr) Pos() int { return ne.StartPos }
func (ne *NaryExpr) End() int { return ne.EndPos }

// CastExpr represents MAEK X A Type.
type CastExpr struct {
	X        Expression
	Type     token.Token
	StartPos int
	EndPos   int
}

func (ce *CastExpr) expressionNode() {}
func (ce *CastExpr) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "MAEK"...)
}
func (ce *CastExpr) AppendString(dst []byte) []byte {
	dst = append(dst, "MAEK "...)
	dst = ce.X.AppendString(dst)
	dst = append(dst, " A "...)
	return append(dst, ce.Type.String()...)
}
func (ce *CastExpr) Pos() int { return ce.StartPos }
func (ce *CastExpr) End() int { return ce.EndPos }

// CallExpr is a function call in expression position.
type CallExpr struct {
	Name     *Identifier
	Args     []Expression
	StartPos int
	EndPos   int
}

func (ce *CallExpr) expressionNode() {}
func (ce *CallExpr) AppendTokenLiteral(dst []byte) []byte {
	return append(dst, "I IZ"...)
}
func (ce *CallExpr) AppendString(dst []byte) []byte {
	return appendCall(dst, ce.Name, ce.Args)
}
func (ce *CallExpr) Pos() int { return ce.StartPos }
func (ce *CallExpr) End() int { return ce.EndPos }

func appendCall(dst []byte, name *Identifier, args []Expression) []byte {
	dst = append(dst, "I IZ "...)
	dst = name.AppendString(dst)
	for i, arg := range args {
		if i > 0 {
			dst = append(dst, " AN"...)
		}
		dst = append(dst, " YR "...)
		dst = arg.AppendString(dst)
	}
	return append(dst, " MKAY"...)
}
