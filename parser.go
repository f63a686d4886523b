package lolcode

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/soypat/go-lolcode/ast"
	"github.com/soypat/go-lolcode/token"
)

// Set via -ldflags: go test -ldflags="-X 'github.com/soypat/go-lolcode.debugNoStuckCheck=1'"
var debugNoStuckCheck string

// ErrUnexpectedEOF is wrapped by parser errors raised because the input ended
// inside an open construct. See [IsIncomplete].
var ErrUnexpectedEOF = errors.New("unexpected end of input")

type statementParseFn func() ast.Statement

// ParserError is a parse error at a source position, formatted source:line:col: msg.
type ParserError struct {
	sp  sourcePos
	msg string
	err error
}

func (pe *ParserError) Error() string {
	var dst []byte
	dst = pe.sp.AppendString(dst)
	dst = append(dst, ':', ' ')
	dst = append(dst, pe.msg...)
	return string(dst)
}

func (pe *ParserError) Unwrap() error { return pe.err }

// IsIncomplete reports whether err consists only of errors caused by the input
// ending inside an open construct, meaning more input could complete the program.
func IsIncomplete(err error) bool {
	if err == nil {
		return false
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		for _, e := range errs {
			if !IsIncomplete(e) {
				return false
			}
		}
		return len(errs) > 0
	}
	return errors.Is(err, ErrUnexpectedEOF)
}

type sourcePos struct {
	Source string
	Line   int
	Col    int
	Pos    int
}

func (l *sourcePos) String() string {
	return string(l.AppendString(nil))
}

func (l *sourcePos) AppendString(b []byte) []byte {
	if b == nil {
		b = make([]byte, 0, len(l.Source)+3+3)
	}
	b = append(b, l.Source...)
	b = append(b, ':')

	b = strconv.AppendInt(b, int64(l.Line), 10)
	if l.Col > 0 {
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(l.Col), 10)
	}
	return b
}

// Parser parses LOLCODE 1.2 source into an [ast.Program].
type Parser struct {
	l        Lexer
	current  toktuple
	peek     toktuple
	uberpeek toktuple
	prevEnd  int // end position of the last consumed token.
	stmtFns  map[token.Token]statementParseFn
	errors   []ParserError

	maxStatements int
	maxErrs       int
	nStatements   int
	// nSamePosCheckCount counts amount of times a check was performed on the same sourcePosition
	// after reaching a thrshold the parser dies.
	nSamePosCheckCount int
	lastPosCheck       int
	died               bool
}

// SetMaxErrors sets the amount of errors after which the parser stops. Values below 1 restore the default.
func (p *Parser) SetMaxErrors(n int) {
	if n < 1 {
		n = defaultMaxErrors
	}
	p.maxErrs = n
}

const defaultMaxErrors = 20

// Reset prepares the parser to parse r, discarding previous state and errors. source names the input in errors.
func (p *Parser) Reset(source string, r io.Reader) error {
	err := p.l.Reset(source, r)
	if err != nil {
		return err
	}
	if p.stmtFns == nil {
		p.stmtFns = make(map[token.Token]statementParseFn)
	}
	if p.maxErrs == 0 {
		p.maxErrs = defaultMaxErrors
	}
	*p = Parser{
		l: p.l,
		// Reuse memory but clear later.
		maxErrs:       p.maxErrs,
		maxStatements: 1_000_000,
		stmtFns:       p.stmtFns,
		errors:        p.errors[:0],
	}
	clear(p.stmtFns)

	// Initialize token stream
	p.nextToken()
	p.nextToken()
	p.nextToken()

	p.registerStatementParsers()
	return nil
}

func (p *Parser) nextToken() {
	if p.current.tok == token.EOF {
		return
	}
	p.prevEnd = p.current.end
	tok, start, lit := p.l.NextToken()
	for tok.IsComment() {
		tok, start, lit = p.l.NextToken()
	}
	line, col := p.l.TokenLineCol()
	// Cycle buffers towards current. The latest peek will use current buffer.
	currBuf := p.current.lit // is clobbered by peek, reused by new peek.
	p.current = p.peek
	p.peek = p.uberpeek

	p.uberpeek.lit = append(currBuf[:0], lit...)
	p.uberpeek.start = start
	p.uberpeek.end = p.l.Pos()
	p.uberpeek.tok = tok
	p.uberpeek.line = line
	p.uberpeek.col = col
	if tok == token.Illegal {
		p.addErrorWithPos(sourcePos{Source: p.l.Source(), Line: line, Col: col, Pos: start}, "illegal token: "+string(lit))
	}
}

// posCheck is called in control structure methods like loop*, currentTokenIs, consumeIf* methods.
// Should not be called from higher level parser functions.
func (p *Parser) posCheck() {
	if debugNoStuckCheck == "1" {
		return
	}
	if p.current.start == p.lastPosCheck {
		p.nSamePosCheckCount++
		if p.nSamePosCheckCount == 100000 {
			p.addErrorFatal("parser stuck in forever loop", 3)
		}
	} else {
		p.lastPosCheck = p.current.start
		p.nSamePosCheckCount = 0
	}
}

func (p *Parser) sourcePos() sourcePos {
	return sourcePos{
		Source: p.l.Source(),
		Line:   p.current.line,
		Col:    p.current.col,
		Pos:    p.current.start,
	}
}

// IsDone returns true if the parser is done parsing, whether it be by EOF or error(s) encountered.
func (p *Parser) IsDone() bool {
	p.posCheck()
	return p.died || p.current.tok == token.EOF || len(p.errors) >= p.maxErrs || p.nStatements >= p.maxStatements
}

func (p *Parser) registerStatement(tokenType token.Token, fn statementParseFn) {
	p.stmtFns[tokenType] = fn
}

type toktuple struct {
	tok   token.Token
	start int
	end   int
	lit   []byte
	line  int // Line number where this token starts
	col   int // Column number where this token starts
}

// ParseProgram parses statements until EOF or until too many errors are found.
// The returned program holds every statement parsed, with [ast.BadStmt]
// in place of statements that failed. Check [Parser.Err] after parsing.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipStatementEnds()
	for !p.IsDone() {
		if stmt := p.parseStatement(); stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
		p.endStatement()
	}
	return prog
}

func (p *Parser) registerStatementParsers() {
	p.registerStatement(token.HAI, p.parseHai)
	p.registerStatement(token.KTHXBYE, p.parseKthxbye)
	p.registerStatement(token.CANHAS, p.parseCanHas)
	p.registerStatement(token.IHASA, p.parseDeclaration)
	p.registerStatement(token.IMINYR, p.parseLoop)
	p.registerStatement(token.HOWIZI, p.parseFuncDecl)
	p.registerStatement(token.IIZ, p.parseCallStmt)
	p.registerStatement(token.FOUNDYR, p.parseReturn)
	p.registerStatement(token.GTFO, p.parseGtfo)
	p.registerStatement(token.VISIBLE, p.parseVisible)
	p.registerStatement(token.GIMMEH, p.parseGimmeh)
	p.registerStatement(token.ORLY, p.parseIfStmt)
	p.registerStatement(token.WTF, p.parseSwitchStmt)
	p.registerStatement(token.Identifier, p.parseIdentifierStatement)
	p.registerStatement(token.SRS, p.parseIdentifierStatement)
}

// parseStatement dispatches to the registered statement parser. Statements that
// fail to parse are skipped up to the statement end and returned as [ast.BadStmt].
func (p *Parser) parseStatement() ast.Statement {
	p.nStatements++
	start := p.current.start
	nerr := len(p.errors)
	if fn := p.stmtFns[p.current.tok]; fn != nil {
		if stmt := fn(); stmt != nil {
			return stmt
		}
	} else if p.current.tok.CanStartExpression() {
		if x := p.parseExpression(); x != nil {
			return &ast.ExprStmt{X: x}
		}
	} else if p.current.tok != token.Illegal {
		p.addError("unexpected " + p.current.tok.String() + " at start of statement")
	}
	msg := "malformed statement"
	if len(p.errors) > nerr {
		msg = p.errors[nerr].msg
	}
	p.skipToStatementEnd()
	return &ast.BadStmt{Msg: msg, StartPos: start, EndPos: p.prevEnd}
}

func (p *Parser) parseHai() ast.Statement {
	stmt := &ast.Hai{StartPos: p.current.start}
	p.expect(token.HAI, "")
	if p.currentTokenIs(token.NumbarLit) || p.currentTokenIs(token.NumbrLit) {
		stmt.Version = string(p.current.lit)
		p.nextToken()
	}
	stmt.EndPos = p.prevEnd
	return stmt
}

func (p *Parser) parseKthxbye() ast.Statement {
	stmt := &ast.Kthxbye{StartPos: p.current.start}
	p.expect(token.KTHXBYE, "")
	stmt.EndPos = p.prevEnd
	return stmt
}

func (p *Parser) parseCanHas() ast.Statement {
	stmt := &ast.CanHas{StartPos: p.current.start}
	p.expect(token.CANHAS, "")
	if !p.expectCurrent(token.Identifier) {
		return nil
	}
	stmt.Library = string(p.current.lit)
	p.nextToken()
	p.expect(token.QuestionMark, "after library name")
	stmt.EndPos = p.prevEnd
	return stmt
}

func (p *Parser) parseDeclaration() ast.Statement {
	stmt := &ast.Declaration{StartPos: p.current.start}
	p.expect(token.IHASA, "")
	stmt.Name = p.parseIdentifier("declared variable")
	if stmt.Name == nil {
		return nil
	}
	if p.consumeIf(token.ITZ) {
		if p.currentIsArticle() {
			p.nextToken() // consume A
			stmt.Type = p.parseType("declaration type")
			if stmt.Type == token.Undefined {
				return nil
			}
		} else {
			stmt.Init = p.parseExpression()
			if stmt.Init == nil {
				return nil
			}
		}
	}
	stmt.EndPos = p.prevEnd
	return stmt
}

func (p *Parser) parseLoop() ast.Statement {
	start := p.sourcePos()
	stmt := &ast.Loop{StartPos: start.Pos}
	p.expect(token.IMINYR, "")
	stmt.Label = p.parseIdentifier("loop label")
	if stmt.Label == nil {
		return nil
	}
	if p.currentTokenIs(token.UPPIN) || p.currentTokenIs(token.NERFIN) {
		stmt.Op = p.current.tok
		p.nextToken()
		if !p.expect(token.YR, "loop operation") {
			return nil
		}
		stmt.Var = p.parseIdentifier("loop variable")
		if stmt.Var == nil {
			return nil
		}
	}
	if p.currentTokenIs(token.TIL) || p.currentTokenIs(token.WILE) {
		stmt.CondKind = p.current.tok
		p.nextToken()
		stmt.Cond = p.parseExpression()
		if stmt.Cond == nil {
			return nil
		}
	}
	stmt.Body = p.parseBlock()
	if !p.expect(token.IMOUTTAYR, "closing loop "+stmt.Label.Name) {
		stmt.EndPos = p.prevEnd
		return stmt
	}
	endLabel := p.parseIdentifier("loop end label")
	if endLabel != nil && (endLabel.Name != stmt.Label.Name || endLabel.Srs != stmt.Label.Srs) {
		p.addErrorWithPos(start, "loop label "+strconv.Quote(stmt.Label.Name)+" closed by "+strconv.Quote(endLabel.Name))
	}
	stmt.EndPos = p.prevEnd
	return stmt
}

func (p *Parser) parseFuncDecl() ast.Statement {
	stmt := &ast.FuncDecl{StartPos: p.current.start}
	p.expect(token.HOWIZI, "")
	stmt.Name = p.parseIdentifier("function name")
	if stmt.Name == nil {
		return nil
	}
	if p.consumeIf(token.YR) {
		params, err := parseANSeparatedList(p, true, func() (*ast.Identifier, error) {
			param := p.parseIdentifier("function parameter")
			if param == nil {
				return nil, errAlreadyReported
			}
			return param, nil
		})
		if err != nil {
			return nil
		}
		stmt.Params = params
	}
	stmt.Body = p.parseBlock()
	p.expect(token.IFUSAYSO, "closing function "+stmt.Name.Name)
	stmt.EndPos = p.prevEnd
	return stmt
}

func (p *Parser) parseCallStmt() ast.Statement {
	call := p.parseCall()
	if call == nil {
		return nil
	}
	return &ast.CallStmt{Name: call.Name, Args: call.Args, StartPos: call.StartPos, EndPos: call.EndPos}
}

func (p *Parser) parseReturn() ast.Statement {
	stmt := &ast.Return{StartPos: p.current.start}
	p.expect(token.FOUNDYR, "")
	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		return nil
	}
	stmt.EndPos = p.prevEnd
	return stmt
}

func (p *Parser) parseGtfo() ast.Statement {
	stmt := &ast.Gtfo{StartPos: p.current.start}
	p.expect(token.GTFO, "")
	stmt.EndPos = p.prevEnd
	return stmt
}

func (p *Parser) parseVisible() ast.Statement {
	stmt := &ast.Visible{StartPos: p.current.start}
	p.expect(token.VISIBLE, "")
	for p.current.tok.CanStartExpression() {
		arg := p.parseExpression()
		if arg == nil {
			return nil
		}
		stmt.Args = append(stmt.Args, arg)
		p.consumeIf(token.AN)
	}
	stmt.NoNewline = p.consumeIf(token.Exclamation)
	stmt.EndPos = p.prevEnd
	return stmt
}

func (p *Parser) parseGimmeh() ast.Statement {
	stmt := &ast.Gimmeh{StartPos: p.current.start}
	p.expect(token.GIMMEH, "")
	stmt.Target = p.parseVariableAccess()
	if stmt.Target == nil {
		return nil
	}
	stmt.EndPos = p.prevEnd
	return stmt
}

// parseIfStmt parses O RLY? YA RLY ... [MEBBE expr ...]... [NO WAI ...] OIC
func (p *Parser) parseIfStmt() ast.Statement {
	start := p.sourcePos()
	stmt := &ast.IfStmt{StartPos: start.Pos}
	p.expect(token.ORLY, "")
	if !p.expect(token.QuestionMark, "O RLY") {
		return nil
	}
	p.endStatement()
	if !p.expect(token.YARLY, "O RLY? block") {
		return nil
	}
	stmt.Then = p.parseBlock()
	for p.currentTokenIs(token.MEBBE) {
		clause := &ast.ElseIf{StartPos: p.current.start}
		p.nextToken()
		clause.Cond = p.parseExpression()
		if clause.Cond == nil {
			return nil
		}
		clause.Body = p.parseBlock()
		clause.EndPos = p.prevEnd
		stmt.ElseIfs = append(stmt.ElseIfs, clause)
	}
	if p.consumeIf(token.NOWAI) {
		stmt.Else = p.parseBlock()
	}
	p.expect(token.OIC, "closing O RLY?")
	stmt.EndPos = p.prevEnd
	return stmt
}

// parseSwitchStmt parses WTF? OMG literal ... [OMGWTF ...] OIC
func (p *Parser) parseSwitchStmt() ast.Statement {
	stmt := &ast.SwitchStmt{StartPos: p.current.start}
	p.expect(token.WTF, "")
	if !p.expect(token.QuestionMark, "WTF") {
		return nil
	}
	p.endStatement()
	for p.currentTokenIs(token.OMG) {
		clause := &ast.CaseClause{StartPos: p.current.start}
		p.nextToken()
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		if _, ok := value.(*ast.Literal); !ok {
			p.addError("OMG case value must be a literal")
			return nil
		}
		clause.Value = value
		clause.Body = p.parseBlock()
		clause.EndPos = p.prevEnd
		stmt.Cases = append(stmt.Cases, clause)
	}
	if len(stmt.Cases) == 0 && !p.currentTokenIs(token.OMGWTF) {
		p.addError("WTF? requires at least one OMG case, got " + p.current.tok.String())
		return nil
	}
	if p.consumeIf(token.OMGWTF) {
		stmt.Default = p.parseBlock()
	}
	p.expect(token.OIC, "closing WTF?")
	stmt.EndPos = p.prevEnd
	return stmt
}

// parseIdentifierStatement parses statements starting with a variable:
//
//	x R expr
//	x IS NOW A type
//	x HAS A slot [ITZ expr]
//	x'Z slot R expr
//	x          (bare expression)
func (p *Parser) parseIdentifierStatement() ast.Statement {
	start := p.current.start
	va := p.parseVariableAccess()
	if va == nil {
		return nil
	}
	switch p.current.tok {
	case token.R:
		p.nextToken()
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		if n := len(va.Slots); n > 0 {
			slot := va.Slots[n-1]
			container := &ast.VariableAccess{Name: va.Name, Slots: va.Slots[:n-1], StartPos: va.StartPos, EndPos: slot.StartPos}
			return &ast.SlotSet{Container: container, Key: slotKey(slot), Value: value, StartPos: start, EndPos: p.prevEnd}
		}
		return &ast.Assignment{Target: va, Value: value, StartPos: start, EndPos: p.prevEnd}

	case token.ISNOWA:
		p.nextToken()
		typ := p.parseType("IS NOW A")
		if typ == token.Undefined {
			return nil
		}
		x := *va
		cast := &ast.CastExpr{X: &x, Type: typ, StartPos: start, EndPos: p.prevEnd}
		return &ast.Assignment{Target: va, Value: cast, StartPos: start, EndPos: p.prevEnd}

	case token.HASA:
		p.nextToken()
		slot := p.parseIdentifier("slot name")
		if slot == nil {
			return nil
		}
		stmt := &ast.SlotSet{Container: va, Key: slotKey(slot), StartPos: start}
		if p.consumeIf(token.ITZ) {
			stmt.Value = p.parseExpression()
			if stmt.Value == nil {
				return nil
			}
		} else {
			stmt.Value = &ast.Literal{Kind: token.NOOB, StartPos: p.prevEnd, EndPos: p.prevEnd}
		}
		stmt.EndPos = p.prevEnd
		return stmt
	}
	return &ast.ExprStmt{X: va}
}

// slotKey converts a slot name into the expression used to index its BUKKIT.
// Direct names become YARN keys, SRS names stay variable reads.
func slotKey(slot *ast.Identifier) ast.Expression {
	if slot.Srs {
		return &ast.VariableAccess{Name: slot, StartPos: slot.StartPos, EndPos: slot.EndPos}
	}
	return &ast.Literal{
		Kind:     token.YarnLit,
		Value:    slot.Name,
		Raw:      quoteLuaString(slot.Name),
		StartPos: slot.StartPos,
		EndPos:   slot.EndPos,
	}
}

// parseBlock parses statements until a block ending token.
// The statement opening the block must end before the body starts.
func (p *Parser) parseBlock() []ast.Statement {
	body := []ast.Statement{}
	p.endStatement()
	for !p.IsDone() && !p.current.tok.IsBlockEnd() {
		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		}
		p.endStatement()
	}
	return body
}

// ==================== EXPRESSIONS ====================

// parseExpression parses a prefix notation expression. It returns nil after
// recording an error if no valid expression is found.
func (p *Parser) parseExpression() ast.Expression {
	start := p.current.start
	tok := p.current.tok
	switch {
	case tok.IsLiteral() || tok == token.NOOB:
		return p.parseLiteral()

	case tok == token.Identifier || tok == token.SRS:
		va := p.parseVariableAccess()
		if va == nil {
			return nil
		}
		return va

	case tok == token.IT:
		p.nextToken()
		return &ast.ImplicitIt{StartPos: start, EndPos: p.prevEnd}

	case tok == token.NOT:
		p.nextToken()
		x := p.parseExpression()
		if x == nil {
			return nil
		}
		return &ast.UnaryExpr{Op: tok, X: x, StartPos: start, EndPos: p.prevEnd}

	case tok.IsBinaryOperator():
		p.nextToken()
		left := p.parseExpression()
		if left == nil {
			return nil
		}
		p.consumeIf(token.AN)
		right := p.parseExpression()
		if right == nil {
			return nil
		}
		return &ast.BinaryExpr{Op: tok, Left: left, Right: right, StartPos: start, EndPos: p.prevEnd}

	case tok.IsNaryOperator():
		p.nextToken()
		args, err := parseANSeparatedList(p, false, func() (ast.Expression, error) {
			x := p.parseExpression()
			if x == nil {
				return nil, errAlreadyReported
			}
			return x, nil
		})
		if err != nil {
			return nil
		}
		if !p.consumeIf(token.MKAY) && !p.current.tok.IsStatementEnd() {
			p.addError("expected MKAY closing " + tok.String() + ", got " + p.current.tok.String())
			return nil
		}
		return &ast.NaryExpr{Op: tok, Args: args, StartPos: start, EndPos: p.prevEnd}

	case tok == token.MAEK:
		p.nextToken()
		x := p.parseExpression()
		if x == nil {
			return nil
		}
		if p.currentIsArticle() {
			p.nextToken()
		}
		typ := p.parseType("MAEK")
		if typ == token.Undefined {
			return nil
		}
		return &ast.CastExpr{X: x, Type: typ, StartPos: start, EndPos: p.prevEnd}

	case tok == token.IIZ:
		call := p.parseCall()
		if call == nil {
			return nil
		}
		return call
	}
	if tok != token.Illegal {
		p.addError("expected expression, got " + p.describeCurrent())
	}
	return nil
}

func (p *Parser) parseLiteral() ast.Expression {
	lit := &ast.Literal{
		Kind:     p.current.tok,
		StartPos: p.current.start,
		EndPos:   p.current.end,
	}
	switch lit.Kind {
	case token.NumbrLit, token.NumbarLit:
		lit.Value = string(p.current.lit)
	case token.YarnLit:
		lit.Value = string(p.current.lit)
		lit.Raw = quoteLuaString(lit.Value)
	}
	p.nextToken()
	return lit
}

// parseCall parses I IZ name [YR arg [AN YR arg]...] MKAY
func (p *Parser) parseCall() *ast.CallExpr {
	call := &ast.CallExpr{StartPos: p.current.start}
	p.expect(token.IIZ, "")
	call.Name = p.parseIdentifier("function name")
	if call.Name == nil {
		return nil
	}
	if p.consumeIf(token.YR) {
		args, err := parseANSeparatedList(p, true, func() (ast.Expression, error) {
			x := p.parseExpression()
			if x == nil {
				return nil, errAlreadyReported
			}
			return x, nil
		})
		if err != nil {
			return nil
		}
		call.Args = args
	}
	if !p.consumeIf(token.MKAY) && !p.current.tok.IsStatementEnd() {
		p.addError("expected MKAY closing call to " + call.Name.Name + ", got " + p.current.tok.String())
		return nil
	}
	call.EndPos = p.prevEnd
	return call
}

// parseVariableAccess parses name['Z slot]...
func (p *Parser) parseVariableAccess() *ast.VariableAccess {
	start := p.current.start
	name := p.parseIdentifier("variable")
	if name == nil {
		return nil
	}
	va := &ast.VariableAccess{Name: name, StartPos: start}
	for p.consumeIf(token.SlotAccess) {
		slot := p.parseIdentifier("slot name")
		if slot == nil {
			return nil
		}
		va.Slots = append(va.Slots, slot)
	}
	va.EndPos = p.prevEnd
	return va
}

// parseIdentifier parses a direct name or an indirect SRS name.
func (p *Parser) parseIdentifier(context string) *ast.Identifier {
	ident := &ast.Identifier{StartPos: p.current.start}
	if p.consumeIf(token.SRS) {
		ident.Srs = true
		if !p.currentTokenIs(token.Identifier) && !p.currentTokenIs(token.YarnLit) {
			p.addError(context + ": SRS expects a variable or YARN, got " + p.describeCurrent())
			return nil
		}
	} else if !p.currentTokenIs(token.Identifier) {
		p.addError(context + ": expected identifier, got " + p.describeCurrent())
		return nil
	}
	ident.Name = string(p.current.lit)
	p.nextToken()
	ident.EndPos = p.prevEnd
	return ident
}

// parseType consumes a type keyword, returning [token.Undefined] after recording an error if absent.
func (p *Parser) parseType(context string) token.Token {
	tok := p.current.tok
	if !tok.IsType() {
		p.addError(context + ": expected type, got " + p.describeCurrent())
		return token.Undefined
	}
	p.nextToken()
	return tok
}

// currentIsArticle reports whether the current token is the article A preceding a type name.
func (p *Parser) currentIsArticle() bool {
	return p.currentTokenIs(token.Identifier) && string(p.current.lit) == "A" && p.peek.tok.IsType()
}

// errAlreadyReported signals a list item failed after its error was recorded.
var errAlreadyReported = errors.New("already reported")

// parseANSeparatedList parses items separated by AN. If withYR is set every item
// after the first is introduced by AN YR. Without YR the AN separator is optional.
func parseANSeparatedList[T any](p *Parser, withYR bool, parser func() (T, error)) ([]T, error) {
	var items []T
	for !p.IsDone() {
		if !withYR && !p.current.tok.CanStartExpression() {
			break
		}
		item, err := parser()
		if err != nil {
			return items, err
		}
		items = append(items, item)
		if withYR {
			if !p.consumeIf2(token.AN, token.YR) {
				break
			}
		} else {
			p.consumeIf(token.AN)
		}
	}
	return items, nil
}

// Helper methods

func (p *Parser) loopWhile(t ...token.Token) bool {
	if p.IsDone() {
		return false
	}
	for i := range t {
		if t[i] == p.current.tok {
			return true
		}
	}
	return false
}

func (p *Parser) currentTokenIs(t token.Token) bool {
	p.posCheck()
	return p.current.tok == t
}

func (p *Parser) peekTokenIs(t token.Token) bool {
	p.posCheck()
	return p.peek.tok == t
}

func (p *Parser) expectCurrent(t token.Token) bool {
	if !p.currentTokenIs(t) {
		p.addError("expected " + t.String() + ", got " + p.describeCurrent())
		return false
	}
	return true
}

// expect checks if current token matches t, consumes it if so, and reports error if not.
// Returns true if token matched and was consumed, false otherwise.
func (p *Parser) expect(t token.Token, reason string) bool {
	if !p.currentTokenIs(t) {
		if reason != "" {
			reason += ": "
		}
		p.addError(reason + "expected " + t.String() + ", got " + p.describeCurrent())
		return false
	}
	p.nextToken()
	return true
}

// consumeIf consumes the current token if it matches t, otherwise does nothing.
// Returns true if token was consumed, false otherwise.
func (p *Parser) consumeIf(t token.Token) bool {
	if p.currentTokenIs(t) {
		p.nextToken()
		return true
	}
	return false
}

// consumeIf2 is same as consumeIf but must match current and peek token to consume at least 2 tokens.
func (p *Parser) consumeIf2(current, next token.Token) bool {
	if p.currentTokenIs(current) && p.peekTokenIs(next) {
		p.nextToken()
		p.nextToken()
		return true
	}
	return false
}

// endStatement requires the current token to end a statement and skips
// any following statement separators.
func (p *Parser) endStatement() {
	if !p.current.tok.IsStatementEnd() && !p.died {
		if p.current.tok != token.Illegal {
			p.addError("expected end of statement, got " + p.describeCurrent())
		}
		p.skipToStatementEnd()
	}
	p.skipStatementEnds()
}

func (p *Parser) skipStatementEnds() {
	for p.loopWhile(token.NewLine, token.Comma) {
		p.nextToken()
	}
}

func (p *Parser) skipToStatementEnd() {
	for !p.current.tok.IsStatementEnd() && !p.died {
		p.posCheck()
		p.nextToken()
	}
}

func (p *Parser) describeCurrent() string {
	switch p.current.tok {
	case token.Identifier:
		return "identifier " + strconv.Quote(string(p.current.lit))
	case token.Illegal:
		return "illegal token"
	}
	return p.current.tok.String()
}

func (p *Parser) addErrorWithPos(pos sourcePos, msg string) {
	if p.died {
		msg = "got error with terminated parser: " + msg
	}
	var err error
	if p.current.tok == token.EOF {
		err = ErrUnexpectedEOF
	}
	p.errors = append(p.errors, ParserError{
		sp:  pos,
		msg: msg,
		err: err,
	})
}

func (p *Parser) addErrorFatal(msg string, callstackSkip int) {
	if p.died {
		p.addError(msg)
	} else {
		callstack := getCallStack(callstackSkip)
		p.addError("token state: " + p.strToks() + "\n" + callstack + "\nfatal error encountered, terminating run early: " + msg) // Only one unrecoverable message
	}
	p.died = true
}

func (p *Parser) addError(msg string) {
	p.addErrorWithPos(p.sourcePos(), msg)
}

// Errors returns the errors collected during parsing.
func (p *Parser) Errors() []ParserError {
	return p.errors
}

// Err returns all parsing errors joined or nil if parsing succeeded.
func (p *Parser) Err() error {
	if len(p.errors) == 0 {
		return nil
	}
	errs := make([]error, len(p.errors))
	for i := range p.errors {
		errs[i] = &p.errors[i]
	}
	return errors.Join(errs...)
}

func (p *Parser) strToks() string {
	return fmt.Sprintf("%q %s %q %s %q %s", p.current.lit, p.current.tok,
		p.peek.lit, p.peek.tok, p.uberpeek.lit, p.uberpeek.tok)
}

// getCallStack returns a formatted string of the current call stack
// Format: "filename:line @TypeName.FunctionName"
func getCallStack(skipAdditional int) string {
	var result strings.Builder
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2+skipAdditional, pcs) // Skip getCallStack and its caller
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	first := true
	for {
		frame, more := frames.Next()
		funcName := frame.Function
		parts := strings.Split(funcName, ".")
		funcName = parts[len(parts)-1]
		if len(parts) > 1 {
			typeName := strings.TrimSuffix(strings.TrimPrefix(parts[len(parts)-2], "(*"), ")")
			funcName = typeName + "." + funcName
		}
		if !first {
			result.WriteString("\n")
		}
		first = false
		fmt.Fprintf(&result, "%s:%d @%s", filepath.Base(frame.File), frame.Line, funcName)
		if !more {
			break
		}
	}
	return result.String()
}
