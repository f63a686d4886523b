package lolcode

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/go-lolcode/ast"
)

//go:embed testdata
var testdatadir embed.FS

func TestData_valid(t *testing.T) {
	entries, err := fs.ReadDir(testdatadir, "testdata")
	if err != nil || len(entries) == 0 {
		t.Fatal(err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "valid_") || !strings.HasSuffix(name, ".lol") {
			continue
		}
		t.Run(entry.Name(), func(t *testing.T) {
			path := "testdata/" + name
			src, err := fs.ReadFile(testdatadir, path)
			if err != nil {
				t.Fatal(err)
			}
			prog := checkErrors(t, path, string(src), false)
			golden, err := fs.ReadFile(testdatadir, strings.TrimSuffix(path, ".lol")+".lua")
			if errors.Is(err, fs.ErrNotExist) {
				return // Program uses constructs with no Lua rendering.
			} else if err != nil {
				t.Fatal(err)
			}
			got, err := Translate(prog)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(string(golden), got); diff != "" {
				t.Errorf("translation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestData_invalid(t *testing.T) {
	entries, err := fs.ReadDir(testdatadir, "testdata")
	if err != nil || len(entries) == 0 {
		t.Fatal(err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "invalid_") {
			continue
		}
		t.Run(entry.Name(), func(t *testing.T) {
			srcpath := "testdata/" + name
			src, err := fs.ReadFile(testdatadir, srcpath)
			if err != nil {
				t.Fatal(err)
			}
			checkErrors(t, srcpath, string(src), true)
		})
	}
}

var errCommentRx = regexp.MustCompile(`BTW\s*ERROR\s+"([^"]*)"`)

// expectedErrors scans the source for error annotations and returns
// a map of line numbers to expected error patterns (as regexes).
func expectedErrors(src string) map[int]string {
	errors := make(map[int]string)
	lines := strings.Split(src, "\n")

	for lineNum, line := range lines {
		if m := errCommentRx.FindStringSubmatch(line); len(m) == 2 {
			// Line numbers are 1-based
			errors[lineNum+1] = m[1]
		}
	}
	return errors
}

// checkErrors is a test helper that parses source code and verifies errors match annotations.
// If expectErrors is false, it verifies that no errors occurred.
func checkErrors(t *testing.T, srcpath, src string, expectErrors bool) *ast.Program {
	t.Helper()
	expected := map[int]string{}
	if expectErrors {
		expected = expectedErrors(src)
	}

	var parser Parser
	err := parser.Reset(srcpath, strings.NewReader(src))
	if err != nil {
		t.Fatalf("Failed to reset parser: %v", err)
	}
	prog := parser.ParseProgram()
	actual := parser.Errors()

	if err := compareErrors(t, srcpath, expected, actual); err != nil {
		t.Error(err)
	}
	return prog
}

// compareErrors compares expected errors (from annotations) with actual parser errors.
// It returns an error describing any mismatches.
func compareErrors(t *testing.T, srcpath string, expected map[int]string, actual []ParserError) error {
	t.Helper()
	actualAreExpected := make([]bool, len(actual))
	for line, pattern := range expected {
		sp := sourcePos{
			Source: srcpath,
			Line:   line,
		}
		rx, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%s: invalid regex pattern %q: %v", sp.String(), pattern, err)
		}
		matched := false
		lineErrFound := ""
		for i := range actual {
			if actual[i].sp.Line == line {
				lineErrFound = actual[i].msg
				if rx.MatchString(actual[i].msg) {
					matched = true
					actualAreExpected[i] = true
					break
				}
			}
		}
		if lineErrFound == "" {
			return fmt.Errorf("%s: expected error matching %q, but no error found", sp.String(), pattern)
		}
		if !matched {
			return fmt.Errorf("%s: expected error matching %q, but got: %v", sp.String(), pattern, lineErrFound)
		}
	}
	for i, isExpected := range actualAreExpected {
		if !isExpected {
			t.Errorf("unexpected error: %v", &actual[i])
		}
	}
	return nil
}

func newParser(t *testing.T, code string) *Parser {
	p := &Parser{}
	err := p.Reset("test.lol", strings.NewReader(code))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func parseNoErrors(t *testing.T, code string) *ast.Program {
	t.Helper()
	p := newParser(t, code)
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		t.Fatalf("parsing %q: %v", code, err)
	}
	return prog
}

func TestParser_statements(t *testing.T) {
	cases := []struct {
		src    string
		expect []string
	}{
		0: {
			src:    "HAI 1.2\nKTHXBYE",
			expect: []string{"HAI 1.2", "KTHXBYE"},
		},
		1: {
			src:    "I HAS A x ITZ 3, I HAS A y ITZ A TROOF, I HAS A z",
			expect: []string{"I HAS A x ITZ 3", "I HAS A y ITZ A TROOF", "I HAS A z"},
		},
		2: {
			src:    "x R BIGGR OF x 2",
			expect: []string{"x R BIGGR OF x AN 2"},
		},
		3: {
			src:    "VISIBLE SMOOSH a b\nVISIBLE \"hi\" x!",
			expect: []string{"VISIBLE SMOOSH a AN b MKAY", `VISIBLE "hi" x!`},
		},
		4: {
			src:    "x IS NOW A NUMBAR",
			expect: []string{"x R MAEK x A NUMBAR"},
		},
		5: {
			src:    "b HAS A k, b HAS A v ITZ 1",
			expect: []string{"b HAS A k ITZ NOOB", "b HAS A v ITZ 1"},
		},
		6: {
			src:    "I IZ f MKAY\nI IZ g YR 1 AN YR SUM OF 2 AN 3 MKAY",
			expect: []string{"I IZ f MKAY", "I IZ g YR 1 AN YR SUM OF 2 AN 3 MKAY"},
		},
		7: {
			src:    "HOW IZ I f YR a AN YR b\nFOUND YR a\nIF U SAY SO",
			expect: []string{"HOW IZ I f YR a AN YR b"},
		},
		8: {
			src:    "IM IN YR l NERFIN YR i WILE i\nGTFO\nIM OUTTA YR l",
			expect: []string{"IM IN YR l NERFIN YR i WILE i"},
		},
		9: {
			src:    "NOT WIN\nIT\nSRS name R 1",
			expect: []string{"NOT WIN", "IT", "SRS name R 1"},
		},
		10: {
			src:    "VISIBLE 1 ...\n  AN 2",
			expect: []string{"VISIBLE 1 2"},
		},
		11: {
			src:    "CAN HAS STDIO?\nGIMMEH x'Z y",
			expect: []string{"CAN HAS STDIO?", "GIMMEH x'Z y"},
		},
	}
	for i, test := range cases {
		prog := parseNoErrors(t, test.src)
		if len(prog.Body) != len(test.expect) {
			t.Errorf("case %d: want %d statements, got %d", i, len(test.expect), len(prog.Body))
			continue
		}
		for j, stmt := range prog.Body {
			got := string(stmt.AppendString(nil))
			if got != test.expect[j] {
				t.Errorf("case %d stmt %d: want %q, got %q", i, j, test.expect[j], got)
			}
		}
	}
}

func TestParser_slotSet(t *testing.T) {
	prog := parseNoErrors(t, "b'Z x'Z y R 3")
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Body))
	}
	set, ok := prog.Body[0].(*ast.SlotSet)
	if !ok {
		t.Fatalf("expected *ast.SlotSet, got %T", prog.Body[0])
	}
	if got := string(set.Container.AppendString(nil)); got != "b'Z x" {
		t.Errorf("unexpected container %q", got)
	}
	key, ok := set.Key.(*ast.Literal)
	if !ok || key.Value != "y" || key.Raw != `"y"` {
		t.Errorf("unexpected slot key %#v", set.Key)
	}
}

func TestParser_positions(t *testing.T) {
	prog := parseNoErrors(t, "I HAS A x ITZ 3\nx R 4")
	decl := prog.Body[0].(*ast.Declaration)
	if decl.Pos() != 0 || decl.End() != 15 {
		t.Errorf("declaration spans [%d,%d), want [0,15)", decl.Pos(), decl.End())
	}
	if decl.Name.Pos() != 8 || decl.Name.End() != 9 {
		t.Errorf("name spans [%d,%d), want [8,9)", decl.Name.Pos(), decl.Name.End())
	}
	assign := prog.Body[1].(*ast.Assignment)
	if assign.Pos() != 16 || assign.End() != 21 {
		t.Errorf("assignment spans [%d,%d), want [16,21)", assign.Pos(), assign.End())
	}
}

func TestParser_loopBody(t *testing.T) {
	prog := parseNoErrors(t, "IM IN YR l UPPIN YR i TIL BOTH SAEM i AN 3\n  VISIBLE i\n  x R i\nIM OUTTA YR l")
	loop, ok := prog.Body[0].(*ast.Loop)
	if !ok {
		t.Fatalf("expected *ast.Loop, got %T", prog.Body[0])
	}
	if len(loop.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(loop.Body))
	}
	if loop.Label.Name != "l" || loop.Var.Name != "i" {
		t.Errorf("unexpected loop label/var %q/%q", loop.Label.Name, loop.Var.Name)
	}
	if _, ok := loop.Cond.(*ast.BinaryExpr); !ok {
		t.Errorf("expected binary loop condition, got %T", loop.Cond)
	}
}

func TestIsIncomplete(t *testing.T) {
	cases := []struct {
		src        string
		incomplete bool
	}{
		0: {src: "HOW IZ I f\n", incomplete: true},
		1: {src: "IM IN YR l\nVISIBLE 1\n", incomplete: true},
		2: {src: "O RLY?\nYA RLY\n", incomplete: true},
		3: {src: "x R", incomplete: true},
		4: {src: "VISIBLE \"a\" R", incomplete: false},
		5: {src: "OIC\nHOW IZ I f\n", incomplete: false},
	}
	for i, test := range cases {
		p := newParser(t, test.src)
		p.ParseProgram()
		err := p.Err()
		if err == nil {
			t.Errorf("case %d: expected error", i)
			continue
		}
		if got := IsIncomplete(err); got != test.incomplete {
			t.Errorf("case %d: IsIncomplete=%v, want %v: %v", i, got, test.incomplete, err)
		}
	}
	if IsIncomplete(nil) {
		t.Error("nil error is not incomplete")
	}
}

func TestParser_maxErrors(t *testing.T) {
	var p Parser
	p.SetMaxErrors(2)
	err := p.Reset("test.lol", strings.NewReader("OIC\nOIC\nOIC\nOIC\n"))
	if err != nil {
		t.Fatal(err)
	}
	p.ParseProgram()
	if n := len(p.Errors()); n != 2 {
		t.Errorf("expected parsing to stop after 2 errors, got %d", n)
	}
}

func TestParserError_format(t *testing.T) {
	p := newParser(t, "HAI\nOIC")
	prog := p.ParseProgram()
	err := p.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	const want = "test.lol:2:1: unexpected OIC at start of statement"
	if err.Error() != want {
		t.Errorf("want %q, got %q", want, err.Error())
	}
	if len(prog.Body) != 2 {
		t.Fatalf("expected HAI and a bad statement, got %d statements", len(prog.Body))
	}
	if _, ok := prog.Body[1].(*ast.BadStmt); !ok {
		t.Errorf("expected *ast.BadStmt, got %T", prog.Body[1])
	}
}
