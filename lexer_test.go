package lolcode

import (
	"strconv"
	"strings"
	"testing"

	"github.com/soypat/go-lolcode/token"
)

type testtoktuple struct {
	tok     token.Token
	literal string
}

func TestLexer_tokens(t *testing.T) {
	cases := []struct {
		src    string
		expect []testtoktuple
	}{
		0: {
			src: "I HAS A x ITZ 3",
			expect: []testtoktuple{
				{tok: token.IHASA, literal: "I HAS A"},
				{tok: token.Identifier, literal: "x"},
				{tok: token.ITZ, literal: "ITZ"},
				{tok: token.NumbrLit, literal: "3"},
			},
		},
		1: {
			src: `VISIBLE "HAI:)WORLD" !`,
			expect: []testtoktuple{
				{tok: token.VISIBLE, literal: "VISIBLE"},
				{tok: token.YarnLit, literal: "HAI\nWORLD"},
				{tok: token.Exclamation, literal: ""},
			},
		},
		2: {
			src: "SUM OF   x AN -2.5",
			expect: []testtoktuple{
				{tok: token.SUMOF, literal: "SUM OF"},
				{tok: token.Identifier, literal: "x"},
				{tok: token.AN, literal: "AN"},
				{tok: token.NumbarLit, literal: "-2.5"},
			},
		},
		3: {
			src: "x'Z y R BTW set the slot\n",
			expect: []testtoktuple{
				{tok: token.Identifier, literal: "x"},
				{tok: token.SlotAccess, literal: ""},
				{tok: token.Identifier, literal: "y"},
				{tok: token.R, literal: "R"},
				{tok: token.LineComment, literal: "set the slot"},
				{tok: token.NewLine, literal: ""},
			},
		},
		4: {
			src: "OBTW one\ntwo TLDR\nKTHXBYE",
			expect: []testtoktuple{
				{tok: token.BlockComment, literal: "one\ntwo"},
				{tok: token.NewLine, literal: ""},
				{tok: token.KTHXBYE, literal: "KTHXBYE"},
			},
		},
		5: {
			src: "SMOOSH a ...\n  AN b MKAY",
			expect: []testtoktuple{
				{tok: token.SMOOSH, literal: "SMOOSH"},
				{tok: token.Identifier, literal: "a"},
				{tok: token.AN, literal: "AN"},
				{tok: token.Identifier, literal: "b"},
				{tok: token.MKAY, literal: "MKAY"},
			},
		},
		6: {
			src: "O RLY?, YA RLY",
			expect: []testtoktuple{
				{tok: token.ORLY, literal: "O RLY"},
				{tok: token.QuestionMark, literal: ""},
				{tok: token.Comma, literal: ""},
				{tok: token.YARLY, literal: "YA RLY"},
			},
		},
		7: {
			src: `"a:(263A)b::c:""`,
			expect: []testtoktuple{
				{tok: token.YarnLit, literal: "a☺b:c\""},
			},
		},
		8: {
			src: "IM IN YR loop UPPIN YR i TIL BOTH SAEM i AN 10",
			expect: []testtoktuple{
				{tok: token.IMINYR, literal: "IM IN YR"},
				{tok: token.Identifier, literal: "loop"},
				{tok: token.UPPIN, literal: "UPPIN"},
				{tok: token.YR, literal: "YR"},
				{tok: token.Identifier, literal: "i"},
				{tok: token.TIL, literal: "TIL"},
				{tok: token.BOTHSAEM, literal: "BOTH SAEM"},
				{tok: token.Identifier, literal: "i"},
				{tok: token.AN, literal: "AN"},
				{tok: token.NumbrLit, literal: "10"},
			},
		},
		9: {
			src: "HOW IZ I add YR a AN YR b\nIF U SAY SO",
			expect: []testtoktuple{
				{tok: token.HOWIZI, literal: "HOW IZ I"},
				{tok: token.Identifier, literal: "add"},
				{tok: token.YR, literal: "YR"},
				{tok: token.Identifier, literal: "a"},
				{tok: token.AN, literal: "AN"},
				{tok: token.YR, literal: "YR"},
				{tok: token.Identifier, literal: "b"},
				{tok: token.NewLine, literal: ""},
				{tok: token.IFUSAYSO, literal: "IF U SAY SO"},
			},
		},
		10: {
			src: ".5 7",
			expect: []testtoktuple{
				{tok: token.NumbarLit, literal: ".5"},
				{tok: token.NumbrLit, literal: "7"},
			},
		},
		11: {
			src: "I IZ f MKAY",
			expect: []testtoktuple{
				{tok: token.IIZ, literal: "I IZ"},
				{tok: token.Identifier, literal: "f"},
				{tok: token.MKAY, literal: "MKAY"},
			},
		},
		12: {
			src: "x IS NOW A NUMBAR",
			expect: []testtoktuple{
				{tok: token.Identifier, literal: "x"},
				{tok: token.ISNOWA, literal: "IS NOW A"},
				{tok: token.NUMBAR, literal: "NUMBAR"},
			},
		},
		13: {
			// Keywords are case-sensitive and phrases need every word.
			src: "hai HAI I HAZ",
			expect: []testtoktuple{
				{tok: token.Identifier, literal: "hai"},
				{tok: token.HAI, literal: "HAI"},
				{tok: token.Identifier, literal: "I"},
				{tok: token.Identifier, literal: "HAZ"},
			},
		},
		14: {
			src: "CAN HAS STDIO?\r\nWTF?",
			expect: []testtoktuple{
				{tok: token.CANHAS, literal: "CAN HAS"},
				{tok: token.Identifier, literal: "STDIO"},
				{tok: token.QuestionMark, literal: ""},
				{tok: token.NewLine, literal: ""},
				{tok: token.WTF, literal: "WTF"},
				{tok: token.QuestionMark, literal: ""},
			},
		},
		15: {
			src: "IM OUTTA YR loop_2",
			expect: []testtoktuple{
				{tok: token.IMOUTTAYR, literal: "IM OUTTA YR"},
				{tok: token.Identifier, literal: "loop_2"},
			},
		},
	}
	var l Lexer
	for i, test := range cases {
		err := l.Reset("TestLexer"+strconv.Itoa(i), strings.NewReader(test.src))
		if err != nil {
			t.Error(err)
			continue
		}
		for i, expect := range test.expect {
			tok, _, literal := l.NextToken()
			if tok == token.EOF {
				t.Errorf("%s tok %d early EOF", l.Source(), i)
				break
			}
			if tok != expect.tok {
				t.Errorf("%s tok %d TokenMismatch want %s got %s", l.Source(), i, expect.tok.String(), tok.String())
			}
			if string(literal) != expect.literal {
				t.Errorf("%s tok %d LiteralMismatch want %q got %q", l.Source(), i, expect.literal, literal)
			}
		}
		if !l.IsDone() {
			tok, _, lit := l.NextToken()
			t.Errorf("%s expected lexer to be done, got %s (%s)", l.Source(), lit, tok.String())
		}
	}
}

func TestLexer_illegal(t *testing.T) {
	cases := []struct {
		src     string
		wantMsg string
	}{
		0: {src: `"abc`, wantMsg: "unterminated YARN"},
		1: {src: `"a:{b}"`, wantMsg: "interpolation"},
		2: {src: `"a:[SNOWMAN]"`, wantMsg: "unicode name"},
		3: {src: `"a:q"`, wantMsg: "unknown YARN escape :q"},
		4: {src: `"a:(zz)"`, wantMsg: "invalid :(<hex>) escape"},
		5: {src: "12abc", wantMsg: "malformed number"},
		6: {src: "OBTW never closed", wantMsg: "unterminated OBTW"},
		7: {src: "'x", wantMsg: "expected 'Z"},
		8: {src: "@", wantMsg: "unexpected character '@'"},
	}
	var l Lexer
	for i, test := range cases {
		err := l.Reset("TestLexerIllegal"+strconv.Itoa(i), strings.NewReader(test.src))
		if err != nil {
			t.Fatal(err)
		}
		tok, _, lit := l.NextToken()
		if tok != token.Illegal {
			t.Errorf("case %d: want illegal token, got %s %q", i, tok, lit)
			continue
		}
		if !strings.Contains(string(lit), test.wantMsg) {
			t.Errorf("case %d: want message containing %q, got %q", i, test.wantMsg, lit)
		}
	}
}

func TestLexer_lineCol(t *testing.T) {
	const src = "HAI 1.2\nVISIBLE x"
	var l Lexer
	err := l.Reset("pos.lol", strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	expect := []struct {
		tok       token.Token
		line, col int
		start     int
	}{
		{tok: token.HAI, line: 1, col: 1, start: 0},
		{tok: token.NumbarLit, line: 1, col: 5, start: 4},
		{tok: token.NewLine, line: 1, col: 8, start: 7},
		{tok: token.VISIBLE, line: 2, col: 1, start: 8},
		{tok: token.Identifier, line: 2, col: 9, start: 16},
		{tok: token.EOF, line: 2, col: 10, start: 17},
	}
	for i, want := range expect {
		tok, start, _ := l.NextToken()
		line, col := l.TokenLineCol()
		if tok != want.tok || line != want.line || col != want.col || start != want.start {
			t.Errorf("tok %d: want %s at %d:%d (%d), got %s at %d:%d (%d)", i,
				want.tok, want.line, want.col, want.start, tok, line, col, start)
		}
	}
	if got := l.PositionString(); got != "pos.lol:2:10" {
		t.Errorf("unexpected position string %q", got)
	}
}

func TestLexer_resetErrors(t *testing.T) {
	var l Lexer
	if err := l.Reset("", strings.NewReader("HAI")); err == nil {
		t.Error("expected error for empty source name")
	}
	if err := l.Reset("x", nil); err == nil {
		t.Error("expected error for nil reader")
	}
	if err := l.Reset("empty", strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	tok, _, _ := l.NextToken()
	if tok != token.EOF {
		t.Errorf("want EOF on empty input, got %s", tok)
	}
}
