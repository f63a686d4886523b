package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/soypat/go-lolcode"
	"github.com/soypat/go-lolcode/ast"
	"github.com/soypat/go-lolcode/token"
	"gopkg.in/urfave/cli.v1"
)

var (
	rawFlag = cli.BoolFlag{
		Name:  "raw",
		Usage: "Dump the Go values of the tree including positions",
	}
	statsFlag = cli.BoolFlag{
		Name:  "stats",
		Usage: "Print a table counting the nodes of each kind",
	}

	astCommand = cli.Command{
		Action:    astCmd,
		Name:      "ast",
		Usage:     "Print the parsed syntax tree of a LOLCODE file",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{rawFlag, statsFlag},
	}
	luaCommand = cli.Command{
		Action:    luaCmd,
		Name:      "lua",
		Usage:     "Print the Lua translation of a LOLCODE file",
		ArgsUsage: "<file>",
	}
	tokensCommand = cli.Command{
		Action:    tokensCmd,
		Name:      "tokens",
		Usage:     "Print the tokens of a LOLCODE file",
		ArgsUsage: "<file>",
	}
	fmtCommand = cli.Command{
		Action:    fmtCmd,
		Name:      "fmt",
		Usage:     "Print a LOLCODE file in canonical form",
		ArgsUsage: "<file>",
	}
)

var spewConfig = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

func fileArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", errors.New("expected a single file argument")
	}
	return ctx.Args().First(), nil
}

func parseFileArg(ctx *cli.Context) (*ast.Program, error) {
	filename, err := fileArg(ctx)
	if err != nil {
		return nil, err
	}
	return settings.Transpile.ParseFile(filename)
}

func astCmd(ctx *cli.Context) error {
	filename, err := fileArg(ctx)
	if err != nil {
		return reportErr(err)
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return reportErr(fmt.Errorf("could not read file %s: %w", filename, err))
	}
	prog, err := settings.Transpile.Parse(filename, bytes.NewReader(src))
	if err != nil {
		return reportErr(err)
	}
	switch {
	case ctx.Bool(rawFlag.Name):
		spewConfig.Fdump(os.Stdout, prog)
	case ctx.Bool(statsFlag.Name):
		writeNodeStats(os.Stdout, prog)
	default:
		return ast.Fprint(os.Stdout, src, prog)
	}
	return nil
}

func luaCmd(ctx *cli.Context) error {
	prog, err := parseFileArg(ctx)
	if err != nil {
		return reportErr(err)
	}
	lua, err := settings.Transpile.Translate(prog)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(lua)
	return nil
}

func fmtCmd(ctx *cli.Context) error {
	prog, err := parseFileArg(ctx)
	if err != nil {
		return reportErr(err)
	}
	fmt.Println(ast.PrettyPrint(prog))
	return nil
}

func tokensCmd(ctx *cli.Context) error {
	filename, err := fileArg(ctx)
	if err != nil {
		return reportErr(err)
	}
	fp, err := os.Open(filename)
	if err != nil {
		return reportErr(err)
	}
	defer fp.Close()
	if err = writeTokens(os.Stdout, filename, fp); err != nil {
		return reportErr(err)
	}
	return nil
}

// writeTokens lexes r and renders a table with the position, kind, literal and
// Lua rendering of every token.
func writeTokens(w io.Writer, source string, r io.Reader) error {
	var l lolcode.Lexer
	if err := l.Reset(source, r); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pos", "Token", "Literal", "Lua"})
	table.SetAutoWrapText(false)
	var nillegal int
	for {
		tok, _, lit := l.NextToken()
		if tok == token.EOF {
			break
		}
		line, col := l.TokenLineCol()
		lua := "-"
		if rendered, err := lolcode.AppendToken(nil, tok, lit); err == nil {
			lua = string(rendered)
		}
		if tok == token.Illegal {
			nillegal++
		}
		table.Append([]string{
			strconv.Itoa(line) + ":" + strconv.Itoa(col),
			tok.String(),
			strconv.Quote(string(lit)),
			lua,
		})
	}
	table.Render()
	if err := l.Err(); err != nil {
		return err
	}
	if nillegal > 0 {
		return fmt.Errorf("%s: %d illegal tokens", source, nillegal)
	}
	return nil
}

// writeNodeStats renders a table counting the syntax tree nodes by kind.
func writeNodeStats(w io.Writer, prog *ast.Program) {
	counts := make(map[string]int)
	ast.Inspect(prog, func(n ast.Node) bool {
		if n != nil {
			counts[strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")]++
		}
		return true
	})
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Node", "Count"})
	for _, kind := range kinds {
		table.Append([]string{kind, strconv.Itoa(counts[kind])})
	}
	table.Render()
}
