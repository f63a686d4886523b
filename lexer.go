package lolcode

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/soypat/go-lolcode/token"
)

// The lexer layout follows the Lexer from "Writing An Interpreter In Go" by Thorsten Ball https://monkeylang.org/
// with a two rune window (ch, peek) over a buffered reader.

// Lexer is a lexer for LOLCODE 1.2 source.
type Lexer struct {
	input bufio.Reader
	ch    rune // current character (utf8)
	peek  rune // next character (utf8)
	err   error
	idbuf []byte // accumulation buffer.

	source    string // filename or source name.
	line      int    // file line number (position of current char)
	col       int    // column number in line (position of current char)
	pos       int    // byte position of current char.
	peekPos   int    // byte position of peek char.
	readPos   int    // byte position of next unread byte.
	tokenLine int    // line number where the last token started
	tokenCol  int    // column number where the last token started
}

func (l *Lexer) IsDone() bool {
	return l.err != nil && l.ch == 0
}

func (l *Lexer) isUnitialized() bool {
	return l.source == ""
}

// Reset discards all state and buffered data and begins a new lexing
// procedure on the input r. It performs a single utf8 read to initialize.
func (l *Lexer) Reset(source string, r io.Reader) error {
	if r == nil {
		return errors.New("nil reader")
	} else if source == "" {
		return errors.New("no source name")
	}
	*l = Lexer{
		input:  l.input,
		line:   1,
		idbuf:  l.idbuf,
		source: source,
	}
	l.input.Reset(r)
	if l.idbuf == nil {
		l.idbuf = make([]byte, 0, 1024)
	}
	// Fill up peek and current character.
	const peeklen = 2
	l.col = -peeklen + 1 // col is 1 based.
	l.readChar()
	l.readChar()
	if l.err == io.EOF {
		return nil
	}
	return l.err
}

// Source returns the name the lexer was reset/initialized with. Usually a filename.
func (l *Lexer) Source() string {
	return l.source
}

// Err returns the lexer error.
func (l *Lexer) Err() error {
	if l.err == io.EOF {
		return nil
	}
	return l.err
}

// LineCol returns the current line number and column number (utf8 relative).
func (l *Lexer) LineCol() (line, col int) {
	return l.line, l.col
}

// TokenLineCol returns the line/col where the last returned token started.
func (l *Lexer) TokenLineCol() (line, col int) {
	return l.tokenLine, l.tokenCol
}

// Pos returns the absolute position of the lexer in bytes from the start of the file.
func (l *Lexer) Pos() int { return l.pos }

// NextToken parses the upcoming token and returns the literal representation
// of the token for identifiers, numbers, YARNs, comments and multi-word keywords.
// YARN literals are returned with escape sequences decoded.
// For [token.Illegal] the literal describes the problem.
// The returned byte slice is reused between calls to NextToken.
func (l *Lexer) NextToken() (tok token.Token, startPos int, literal []byte) {
	if l.isUnitialized() {
		l.err = errors.New("lexer unitilialized")
		return token.Illegal, 0, nil
	}
	l.skipWhitespace()
	startPos = l.pos
	l.tokenLine, l.tokenCol = l.line, l.col
	if l.ch == 0 {
		return token.EOF, startPos, nil
	} else if l.err != nil && l.err != io.EOF {
		l.ch = 0
		return token.Illegal, startPos, l.illegal(l.err.Error())
	}
	ch := l.ch
	switch ch {
	case '\n':
		tok = token.NewLine
		l.readChar()
	case ',':
		tok = token.Comma
		l.readChar()
	case '?':
		tok = token.QuestionMark
		l.readChar()
	case '!':
		tok = token.Exclamation
		l.readChar()
	case '.', '…':
		// A continuation not followed by a newline is a stray ellipsis.
		if ch == '…' || (l.peek == '.' && l.peekAhead(2) == '.') {
			tok = token.Ellipsis
			l.skipEllipsis()
		} else if isDigit(l.peek) {
			tok, literal = l.readNumber()
		} else {
			tok = token.Illegal
			literal = l.illegal("unexpected character '.'")
			l.readChar()
		}
	case '\'':
		if l.peek == 'Z' && !isIdentifierChar(l.peekAhead(2)) && !isDigit(l.peekAhead(2)) {
			tok = token.SlotAccess
			l.readChar()
			l.readChar()
		} else {
			tok = token.Illegal
			literal = l.illegal("expected 'Z slot access")
			l.readChar()
		}
	case '"':
		tok, literal = l.readYarn()
	default:
		if isIdentifierChar(ch) {
			literal = l.readIdentifier()
			switch string(literal) {
			case "BTW":
				return token.LineComment, startPos, l.readCommentContent()
			case "OBTW":
				tok, literal = l.readBlockComment()
				return tok, startPos, literal
			}
			if tok, phrase := l.matchPhrase(literal); tok != token.Undefined {
				return tok, startPos, phrase
			}
			tok = token.LookupKeyword(literal)
		} else if isDigit(ch) || (ch == '-' && (isDigit(l.peek) || l.peek == '.' && isDigit(l.peekAhead(2)))) {
			tok, literal = l.readNumber()
		} else {
			tok = token.Illegal
			literal = l.illegal("unexpected character " + strconv.QuoteRune(ch))
			l.readChar()
		}
	}
	return tok, startPos, literal
}

// matchPhrase checks whether word begins a multi-word keyword and if so
// consumes the remaining words from the input.
func (l *Lexer) matchPhrase(word []byte) (token.Token, []byte) {
	phrases := token.LookupPhrase(word)
	for _, ph := range phrases {
		n, ok := l.matchAhead(ph.Words[1:])
		if !ok {
			continue
		}
		for i := 0; i < n; i++ {
			l.readChar()
		}
		l.idbuf = l.idbuf[:0]
		for i, w := range ph.Words {
			if i > 0 {
				l.idbuf = append(l.idbuf, ' ')
			}
			l.idbuf = append(l.idbuf, w...)
		}
		return ph.Tok, l.idbuf
	}
	return token.Undefined, nil
}

// matchAhead reports whether the upcoming characters are words each preceded
// by at least one blank and followed by a word boundary.
// It returns the amount of characters spanned by the match.
func (l *Lexer) matchAhead(words []string) (n int, ok bool) {
	for _, w := range words {
		if !isBlank(l.peekAhead(n)) {
			return 0, false
		}
		for isBlank(l.peekAhead(n)) {
			n++
		}
		for i := 0; i < len(w); i++ {
			if l.peekAhead(n) != rune(w[i]) {
				return 0, false
			}
			n++
		}
		if next := l.peekAhead(n); isIdentifierChar(next) || isDigit(next) {
			return 0, false
		}
	}
	return n, true
}

func (l *Lexer) illegal(msg string) []byte {
	l.idbuf = append(l.idbuf[:0], msg...)
	return l.idbuf
}

func (l *Lexer) readCommentContent() []byte {
	start := l.bufstart()
	for isBlank(l.ch) {
		l.readChar()
	}
	for l.ch != '\n' && l.ch != 0 {
		l.idbuf = utf8.AppendRune(l.idbuf, l.ch)
		l.readChar()
	}
	return l.idbuf[start:]
}

// readBlockComment reads an OBTW ... TLDR comment. TLDR is recognized as a
// word on its own.
func (l *Lexer) readBlockComment() (token.Token, []byte) {
	start := l.bufstart()
	wordStart := true
	for l.ch != 0 {
		if wordStart && l.ch == 'T' && l.peek == 'L' && l.peekAhead(2) == 'D' && l.peekAhead(3) == 'R' {
			if next := l.peekAhead(4); !isIdentifierChar(next) && !isDigit(next) {
				for i := 0; i < 4; i++ {
					l.readChar()
				}
				return token.BlockComment, bytes.TrimSpace(l.idbuf[start:])
			}
		}
		wordStart = isWhitespace(l.ch) || l.ch == '\n'
		l.idbuf = utf8.AppendRune(l.idbuf, l.ch)
		l.readChar()
	}
	return token.Illegal, l.illegal("unterminated OBTW comment")
}

func (l *Lexer) readIdentifier() []byte {
	start := l.bufstart()
	for isIdentifierChar(l.ch) || isDigit(l.ch) {
		l.idbuf = utf8.AppendRune(l.idbuf, l.ch)
		l.readChar()
	}
	return l.idbuf[start:]
}

// readNumber reads a NUMBR (-?digits) or NUMBAR (-?digits.digits, -?.digits) literal.
func (l *Lexer) readNumber() (token.Token, []byte) {
	start := l.bufstart()
	tok := token.NumbrLit
	if l.ch == '-' {
		l.idbuf = append(l.idbuf, '-')
		l.readChar()
	}
	for isDigit(l.ch) {
		l.idbuf = utf8.AppendRune(l.idbuf, l.ch)
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peek) {
		tok = token.NumbarLit
		l.idbuf = append(l.idbuf, '.')
		l.readChar()
		for isDigit(l.ch) {
			l.idbuf = utf8.AppendRune(l.idbuf, l.ch)
			l.readChar()
		}
	}
	if isIdentifierChar(l.ch) || l.ch == '.' {
		for isIdentifierChar(l.ch) || isDigit(l.ch) || l.ch == '.' {
			l.readChar()
		}
		return token.Illegal, l.illegal("malformed number " + strconv.Quote(string(l.idbuf[start:])))
	}
	return tok, l.idbuf[start:]
}

// readYarn reads a double quoted YARN literal and decodes its escape sequences:
//
//	:)  newline
//	:>  tab
//	:o  bell
//	:"  double quote
//	::  colon
//	:(<hex>)  unicode code point
func (l *Lexer) readYarn() (token.Token, []byte) {
	start := l.bufstart()
	l.readChar() // consume opening quote
	for {
		switch l.ch {
		case 0, '\n':
			return token.Illegal, l.illegal("unterminated YARN literal")
		case '"':
			l.readChar() // consume closing quote
			return token.YarnLit, l.idbuf[start:]
		case ':':
			l.readChar()
			switch l.ch {
			case ')':
				l.idbuf = append(l.idbuf, '\n')
			case '>':
				l.idbuf = append(l.idbuf, '\t')
			case 'o':
				l.idbuf = append(l.idbuf, '\a')
			case '"':
				l.idbuf = append(l.idbuf, '"')
			case ':':
				l.idbuf = append(l.idbuf, ':')
			case '(':
				l.readChar()
				hexstart := len(l.idbuf)
				for isHexDigit(l.ch) {
					l.idbuf = append(l.idbuf, byte(l.ch))
					l.readChar()
				}
				cp, err := strconv.ParseUint(string(l.idbuf[hexstart:]), 16, 32)
				l.idbuf = l.idbuf[:hexstart]
				if err != nil || l.ch != ')' || !utf8.ValidRune(rune(cp)) {
					l.skipYarn()
					return token.Illegal, l.illegal("invalid :(<hex>) escape in YARN")
				}
				l.idbuf = utf8.AppendRune(l.idbuf, rune(cp))
			case '{':
				l.skipYarn()
				return token.Illegal, l.illegal("YARN interpolation :{var} not supported")
			case '[':
				l.skipYarn()
				return token.Illegal, l.illegal("YARN unicode name :[name] not supported")
			default:
				esc := l.ch
				l.skipYarn()
				return token.Illegal, l.illegal("unknown YARN escape :" + string(esc))
			}
			l.readChar()
		default:
			l.idbuf = utf8.AppendRune(l.idbuf, l.ch)
			l.readChar()
		}
	}
}

// skipYarn advances past the end of a malformed YARN so lexing can resume.
func (l *Lexer) skipYarn() {
	for l.ch != 0 && l.ch != '\n' {
		if l.ch == ':' {
			l.readChar()
		} else if l.ch == '"' {
			l.readChar()
			return
		}
		l.readChar()
	}
}

func (l *Lexer) bufstart() int {
	l.idbuf = l.idbuf[:0]
	return 0
}

// skipWhitespace skips blanks and line continuations.
func (l *Lexer) skipWhitespace() {
	for {
		for isWhitespace(l.ch) {
			l.readChar()
		}
		if !l.isContinuation() {
			return
		}
		l.skipEllipsis()
		for isBlank(l.ch) {
			l.readChar()
		}
		if l.ch == '\n' {
			l.readChar()
		}
	}
}

func (l *Lexer) skipEllipsis() {
	if l.ch == '…' {
		l.readChar()
		return
	}
	for i := 0; i < 3; i++ {
		l.readChar()
	}
}

// isContinuation reports whether the current character starts a "..." or "…"
// followed only by blanks until the end of line.
func (l *Lexer) isContinuation() bool {
	var i int
	switch {
	case l.ch == '…':
		i = 1
	case l.ch == '.' && l.peek == '.' && l.peekAhead(2) == '.':
		i = 3
	default:
		return false
	}
	for {
		ch := l.peekAhead(i)
		switch {
		case ch == '\n':
			return true
		case isBlank(ch):
			i++
		default:
			return false
		}
	}
}

func (l *Lexer) readChar() {
	currentIsNewline := l.ch == '\n'
	l.ch = l.peek
	l.pos = l.peekPos
	l.peekPos = l.readPos
	l.col++
	if currentIsNewline {
		l.line++
		l.col = 1
	}
	ch, sz, err := l.input.ReadRune()
	if err != nil {
		l.peek = 0
		l.err = err
		return
	}
	l.readPos += sz
	l.peek = ch
}

// peekAhead returns the character n positions ahead of the current one.
// Beyond peek only ASCII is reported faithfully.
func (l *Lexer) peekAhead(n int) rune {
	if n <= 0 {
		return l.ch
	}
	if n == 1 {
		return l.peek
	}
	bytes, err := l.input.Peek(n - 1)
	if err != nil || len(bytes) < n-1 {
		return 0
	}
	return rune(bytes[n-2])
}

// PositionString returns the source:line:col of the last returned token.
func (l *Lexer) PositionString() string {
	sp := l.sourcePos()
	return sp.String()
}

func (l *Lexer) sourcePos() sourcePos {
	return sourcePos{
		Source: l.source,
		Line:   l.tokenLine,
		Col:    l.tokenCol,
		Pos:    l.pos,
	}
}

func isIdentifierChar(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isBlank(ch rune) bool {
	return ch == ' ' || ch == '\t'
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}
