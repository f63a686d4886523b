package ast

import (
	"testing"

	"github.com/soypat/go-lolcode/token"
)

func TestPrettyPrint(t *testing.T) {
	prog := &Program{Body: []Statement{
		&Hai{Version: "1.2"},
		&FuncDecl{
			Name:   &Identifier{Name: "f"},
			Params: []*Identifier{{Name: "n"}},
			Body: []Statement{
				&Loop{
					Label:    &Identifier{Name: "l"},
					Op:       token.NERFIN,
					Var:      &Identifier{Name: "n"},
					CondKind: token.WILE,
					Cond:     &VariableAccess{Name: &Identifier{Name: "n"}},
					Body: []Statement{
						&Visible{Args: []Expression{&VariableAccess{Name: &Identifier{Name: "n"}}}},
					},
				},
				&Return{Value: &Literal{Kind: token.NOOB}},
			},
		},
		&Kthxbye{},
	}}
	want := `HAI 1.2
HOW IZ I f YR n
  IM IN YR l NERFIN YR n WILE n
    VISIBLE n
  IM OUTTA YR l
  FOUND YR NOOB
IF U SAY SO
KTHXBYE
`
	got := PrettyPrint(prog)
	if got != want {
		t.Errorf("PrettyPrint mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestPrettyPrintConditional(t *testing.T) {
	stmt := &IfStmt{
		Then:    []Statement{&Gtfo{}},
		ElseIfs: []*ElseIf{{Cond: &Literal{Kind: token.FAIL}, Body: []Statement{&Gtfo{}}}},
		Else:    []Statement{},
	}
	want := `O RLY?
  YA RLY
    GTFO
  MEBBE FAIL
    GTFO
  NO WAI
OIC
`
	if got := PrettyPrint(stmt); got != want {
		t.Errorf("PrettyPrint mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestAppendYarn(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		0: {in: "", want: `""`},
		1: {in: "hello", want: `"hello"`},
		2: {in: "a\nb", want: `"a:)b"`},
		3: {in: "\t\a", want: `":>:o"`},
		4: {in: `say "hi"`, want: `"say :"hi:""`},
		5: {in: "a:b", want: `"a::b"`},
		6: {in: "\x01", want: `":(1)"`},
		7: {in: "héllo", want: `"héllo"`},
	}
	for i, tc := range cases {
		got := string(AppendYarn(nil, tc.in))
		if got != tc.want {
			t.Errorf("case %d: want %s, got %s", i, tc.want, got)
		}
	}
}
