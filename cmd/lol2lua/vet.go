package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/soypat/go-lolcode/ast"
	"github.com/soypat/go-lolcode/symbol"
	"gopkg.in/urfave/cli.v1"
)

var vetCommand = cli.Command{
	Action:    vetCmd,
	Name:      "vet",
	Usage:     "Report names the Lua translation would see as undefined",
	ArgsUsage: "<file>",
	Description: `The vet command checks declarations and uses of variables and functions:
undeclared variables, undefined functions, calls with the wrong amount of
arguments and unused variables. It fails if any error is found; warnings
alone do not fail the command.`,
}

func vetCmd(ctx *cli.Context) error {
	filename, err := fileArg(ctx)
	if err != nil {
		return reportErr(err)
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return reportErr(err)
	}
	prog, err := settings.Transpile.Parse(filename, bytes.NewReader(src))
	if err != nil {
		return reportErr(err)
	}
	if diags := writeDiagnostics(os.Stdout, filename, src, prog); symbol.HasErrors(diags) {
		return cli.NewExitError("", 1)
	}
	return nil
}

// writeDiagnostics checks prog and writes one filename:line:col line per diagnostic.
func writeDiagnostics(w io.Writer, filename string, src []byte, prog *ast.Program) []symbol.Diagnostic {
	_, diags := symbol.Check(prog)
	for _, d := range diags {
		line, col := ast.LineCol(src, d.Pos)
		fmt.Fprintf(w, "%s:%d:%d: %s\n", filename, line, col, d)
	}
	log.Debug("Checked file", "file", filename, "diagnostics", len(diags))
	return diags
}
