package lolcode

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/soypat/go-lolcode/ast"
	"github.com/soypat/go-lolcode/token"
)

var (
	// ErrNotImplemented is returned for constructs with no Lua rendering:
	// O RLY?, WTF?, GIMMEH and malformed statements.
	ErrNotImplemented = errors.New("not implemented")
	// ErrIndirectIdentifier is returned when an SRS identifier appears where a static name is required.
	ErrIndirectIdentifier = errors.New("indirect identifier has no static name")
	// ErrSlotAccess is returned for BUKKIT slot access chains ('Z) outside of a slot assignment.
	ErrSlotAccess = errors.New("slot access not supported")
	// ErrNoOperands is returned for ALL OF, ANY OF and SMOOSH without operands.
	ErrNoOperands = errors.New("n-ary expression without operands")
)

// TranspileToLua renders LOLCODE syntax trees as Lua source text.
// The zero value is ready to use and renders with no indentation.
type TranspileToLua struct {
	indent string
}

// Reset prepares the transpiler for a new translation with the given configuration.
func (tl *TranspileToLua) Reset(cfg Config) {
	tl.indent = cfg.Indent
}

// Transpile renders the whole program. Statement renderings are joined by
// newlines. On error no text is returned.
func (tl *TranspileToLua) Transpile(prog *ast.Program) (string, error) {
	if prog == nil {
		return "", errors.New("nil program")
	}
	dst, err := tl.AppendBlock(nil, prog.Body)
	if err != nil {
		return "", err
	}
	log.Debug("transpiled program", "statements", len(prog.Body), "bytes", len(dst))
	return string(dst), nil
}

// AppendBlock appends the renderings of stmts to dst joined by newlines.
// Statements rendering as empty text still produce their line.
func (tl *TranspileToLua) AppendBlock(dst []byte, stmts []ast.Statement) ([]byte, error) {
	var err error
	for i, stmt := range stmts {
		if i > 0 {
			dst = append(dst, '\n')
		}
		dst, err = tl.AppendStatement(dst, stmt)
		if err != nil {
			return dst, err
		}
	}
	return dst, nil
}

// AppendStatement appends the Lua rendering of a single statement to dst.
func (tl *TranspileToLua) AppendStatement(dst []byte, stmt ast.Statement) (_ []byte, err error) {
	switch s := stmt.(type) {
	case *ast.Hai, *ast.Kthxbye, *ast.CanHas:
		// Program delimiters and library imports have no Lua counterpart.

	case *ast.Declaration:
		dst = append(dst, "local "...)
		dst, err = appendIdentifier(dst, s.Name)
		if err != nil {
			return dst, err
		}
		switch {
		case s.Init != nil:
			dst = append(dst, " = "...)
			dst, err = tl.AppendExpression(dst, s.Init)
		case s.Type != token.Undefined:
			dst = append(dst, " = "...)
			dst, err = appendTypeDefault(dst, s.Type)
		}

	case *ast.Loop:
		dst, err = tl.appendLoop(dst, s)

	case *ast.SlotSet:
		dst, err = tl.appendVariable(dst, s.Container)
		if err != nil {
			return dst, err
		}
		dst = append(dst, '[')
		dst, err = tl.AppendExpression(dst, s.Key)
		if err != nil {
			return dst, err
		}
		dst = append(dst, "] = "...)
		dst, err = tl.AppendExpression(dst, s.Value)

	case *ast.Assignment:
		dst, err = tl.appendVariable(dst, s.Target)
		if err != nil {
			return dst, err
		}
		dst = append(dst, " = "...)
		dst, err = tl.AppendExpression(dst, s.Value)

	case *ast.Visible:
		dst = append(dst, "io.write("...)
		dst, err = tl.appendExprList(dst, s.Args)
		if err != nil {
			return dst, err
		}
		if !s.NoNewline {
			if len(s.Args) > 0 {
				dst = append(dst, ", "...)
			}
			dst = append(dst, `"\n"`...)
		}
		dst = append(dst, ')')

	case *ast.FuncDecl:
		dst = append(dst, "function "...)
		dst, err = appendIdentifier(dst, s.Name)
		if err != nil {
			return dst, err
		}
		dst = append(dst, '(')
		for i, param := range s.Params {
			if i > 0 {
				dst = appendSeparator(dst)
			}
			dst, err = appendIdentifier(dst, param)
			if err != nil {
				return dst, err
			}
		}
		dst = append(dst, ')')
		dst, err = tl.appendNested(dst, s.Body, nil)
		if err != nil {
			return dst, err
		}
		dst = append(dst, "\nend"...)

	case *ast.CallStmt:
		dst, err = tl.appendCall(dst, s.Name, s.Args)

	case *ast.Return:
		dst = append(dst, "return "...)
		dst, err = tl.AppendExpression(dst, s.Value)

	case *ast.Gtfo:
		dst = append(dst, "return nil"...)

	case *ast.ExprStmt:
		dst = append(dst, "it = "...)
		dst, err = tl.AppendExpression(dst, s.X)

	case *ast.IfStmt, *ast.SwitchStmt, *ast.Gimmeh, *ast.BadStmt:
		err = makeErr(stmt, ErrNotImplemented)

	default:
		err = fmt.Errorf("unsupported statement %T: %w", stmt, ErrNotImplemented)
	}
	return dst, err
}

// appendLoop renders IM IN YR as a Lua while loop:
//
//	while <cond> do
//	<body>
//	<step>
//	end
func (tl *TranspileToLua) appendLoop(dst []byte, loop *ast.Loop) (_ []byte, err error) {
	if loop.Label != nil && loop.Label.Srs {
		return dst, fmt.Errorf("loop label SRS %s: %w", loop.Label.Name, ErrIndirectIdentifier)
	}
	dst = append(dst, "while "...)
	switch {
	case loop.Cond == nil:
		dst = append(dst, "true"...)
	case loop.CondKind == token.TIL:
		dst = append(dst, "(not "...)
		dst, err = tl.AppendExpression(dst, loop.Cond)
		dst = append(dst, ')')
	case loop.CondKind == token.WILE:
		dst, err = tl.AppendExpression(dst, loop.Cond)
	default:
		err = fmt.Errorf("loop condition kind %s: %w", loop.CondKind, ErrNotImplemented)
	}
	if err != nil {
		return dst, err
	}
	dst = append(dst, " do"...)

	var step []byte
	if loop.Op != token.Undefined {
		step, err = appendLoopStep(step, loop.Op, loop.Var)
		if err != nil {
			return dst, err
		}
	}
	dst, err = tl.appendNested(dst, loop.Body, step)
	if err != nil {
		return dst, err
	}
	return append(dst, "\nend"...), nil
}

// appendLoopStep renders UPPIN YR v as v = (v + 1) and NERFIN YR v as v = (v - 1).
func appendLoopStep(dst []byte, op token.Token, v *ast.Identifier) (_ []byte, err error) {
	var sign byte
	switch op {
	case token.UPPIN:
		sign = '+'
	case token.NERFIN:
		sign = '-'
	default:
		return dst, fmt.Errorf("loop operation %s: %w", op, ErrNotImplemented)
	}
	dst, err = appendIdentifier(dst, v)
	if err != nil {
		return dst, err
	}
	dst = append(dst, " = ("...)
	dst, _ = appendIdentifier(dst, v)
	dst = append(dst, ' ', sign, ' ', '1', ')')
	return dst, nil
}

// appendNested appends body and trailer as the inner lines of a block, each on
// its own line and prefixed by the configured indentation. Empty renderings are omitted.
func (tl *TranspileToLua) appendNested(dst []byte, body []ast.Statement, trailer []byte) ([]byte, error) {
	inner, err := tl.AppendBlock(nil, body)
	if err != nil {
		return dst, err
	}
	dst = tl.appendIndented(dst, inner)
	dst = tl.appendIndented(dst, trailer)
	return dst, nil
}

func (tl *TranspileToLua) appendIndented(dst, lines []byte) []byte {
	if len(lines) == 0 {
		return dst
	}
	dst = append(dst, '\n')
	if tl.indent == "" {
		return append(dst, lines...)
	}
	for i, line := range bytes.Split(lines, []byte{'\n'}) {
		if i > 0 {
			dst = append(dst, '\n')
		}
		if len(line) > 0 {
			dst = append(dst, tl.indent...)
		}
		dst = append(dst, line...)
	}
	return dst
}

// appendVariable renders an assignment target or slot container, which must not carry a slot chain.
func (tl *TranspileToLua) appendVariable(dst []byte, va *ast.VariableAccess) ([]byte, error) {
	if len(va.Slots) > 0 {
		return dst, makeErr(va, ErrSlotAccess)
	}
	return appendIdentifier(dst, va.Name)
}

// makeErr annotates err with the LOLCODE construct that caused it.
func makeErr(node ast.Node, err error) error {
	return fmt.Errorf("%s: %w", node.AppendTokenLiteral(nil), err)
}
