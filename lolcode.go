// Package lolcode implements a LOLCODE 1.2 lexer and parser and a translator
// from the parsed syntax tree to Lua source text.
package lolcode

import (
	"fmt"
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/soypat/go-lolcode/ast"
)

var log = log15.New("pkg", "lolcode")

func init() {
	log.SetHandler(log15.DiscardHandler())
}

// SetLogHandler sets the handler for the package's log records. Records are
// discarded unless a handler is set.
func SetLogHandler(h log15.Handler) {
	log.SetHandler(h)
}

// Config holds parsing and translation settings.
type Config struct {
	// Indent is prepended once per nesting level to the lines of loop and function bodies.
	Indent string
	// MaxParseErrors is the amount of errors after which parsing stops.
	MaxParseErrors int
}

// DefaultConfig renders Lua without indentation.
var DefaultConfig = Config{MaxParseErrors: defaultMaxErrors}

// Parse parses LOLCODE source read from r using [DefaultConfig].
func Parse(source string, r io.Reader) (*ast.Program, error) {
	return DefaultConfig.Parse(source, r)
}

// ParseFile reads and parses the named LOLCODE file using [DefaultConfig].
func ParseFile(filename string) (*ast.Program, error) {
	return DefaultConfig.ParseFile(filename)
}

// Translate renders prog as Lua source using [DefaultConfig].
func Translate(prog *ast.Program) (string, error) {
	return DefaultConfig.Translate(prog)
}

// Parse parses LOLCODE source read from r. source names the input in error messages.
// A non-nil error holds every parse error joined.
func (c Config) Parse(source string, r io.Reader) (*ast.Program, error) {
	var p Parser
	p.SetMaxErrors(c.MaxParseErrors)
	err := p.Reset(source, r)
	if err != nil {
		return nil, err
	}
	prog := p.ParseProgram()
	log.Debug("parsed program", "source", source, "statements", len(prog.Body), "errors", len(p.Errors()))
	if err = p.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseFile reads and parses the named LOLCODE file.
func (c Config) ParseFile(filename string) (*ast.Program, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", filename, err)
	}
	defer fp.Close()
	return c.Parse(filename, fp)
}

// Translate renders prog as Lua source. No text is returned on error.
func (c Config) Translate(prog *ast.Program) (string, error) {
	var tl TranspileToLua
	tl.Reset(c)
	return tl.Transpile(prog)
}
