package lolcode

import (
	"fmt"

	"github.com/soypat/go-lolcode/ast"
	"github.com/soypat/go-lolcode/token"
)

// infixOps maps binary LOLCODE operators to their Lua infix operator.
// MOD OF is absent since it renders as a math.fmod call.
var infixOps = map[token.Token]string{
	token.SUMOF:      " + ",
	token.DIFFOF:     " - ",
	token.PRODUKTOF:  " * ",
	token.QUOSHUNTOF: " / ",
	token.BIGGROF:    " > ",
	token.SMALLROF:   " < ",
	token.BOTHOF:     " and ",
	token.EITHEROF:   " or ",
	token.WONOF:      " ~= ",
	token.BOTHSAEM:   " == ",
	token.DIFFRINT:   " ~= ",
}

var naryOps = map[token.Token]string{
	token.ALLOF:  " and ",
	token.ANYOF:  " or ",
	token.SMOOSH: " .. ",
}

// AppendExpression appends the fully parenthesized Lua rendering of expr to dst.
func (tl *TranspileToLua) AppendExpression(dst []byte, expr ast.Expression) (_ []byte, err error) {
	switch e := expr.(type) {
	case *ast.Literal:
		dst, err = appendLiteral(dst, e)

	case *ast.VariableAccess:
		dst, err = tl.appendVariable(dst, e)

	case *ast.ImplicitIt:
		dst = append(dst, "it"...)

	case *ast.UnaryExpr:
		if e.Op != token.NOT {
			return dst, fmt.Errorf("unary operator %s: %w", e.Op, ErrNotImplemented)
		}
		dst = append(dst, "(not "...)
		dst, err = tl.AppendExpression(dst, e.X)
		dst = append(dst, ')')

	case *ast.CastExpr:
		// Lua values are dynamically typed, MAEK leaves the value as is.
		dst, err = tl.AppendExpression(dst, e.X)

	case *ast.BinaryExpr:
		dst, err = tl.appendBinary(dst, e)

	case *ast.NaryExpr:
		op, ok := naryOps[e.Op]
		if !ok {
			return dst, fmt.Errorf("n-ary operator %s: %w", e.Op, ErrNotImplemented)
		} else if len(e.Args) == 0 {
			return dst, makeErr(e, ErrNoOperands)
		}
		dst = append(dst, '(')
		for i, arg := range e.Args {
			if i > 0 {
				dst = append(dst, op...)
			}
			dst, err = tl.AppendExpression(dst, arg)
			if err != nil {
				return dst, err
			}
		}
		dst = append(dst, ')')

	case *ast.CallExpr:
		dst, err = tl.appendCall(dst, e.Name, e.Args)

	default:
		err = fmt.Errorf("unsupported expression %T: %w", expr, ErrNotImplemented)
	}
	return dst, err
}

func (tl *TranspileToLua) appendBinary(dst []byte, e *ast.BinaryExpr) (_ []byte, err error) {
	if e.Op == token.MODOF {
		dst = append(dst, "math.fmod("...)
		dst, err = tl.AppendExpression(dst, e.Left)
		if err != nil {
			return dst, err
		}
		dst = appendSeparator(dst)
		dst, err = tl.AppendExpression(dst, e.Right)
		return append(dst, ')'), err
	}
	op, ok := infixOps[e.Op]
	if !ok {
		return dst, fmt.Errorf("binary operator %s: %w", e.Op, ErrNotImplemented)
	}
	dst = append(dst, '(')
	dst, err = tl.AppendExpression(dst, e.Left)
	if err != nil {
		return dst, err
	}
	dst = append(dst, op...)
	dst, err = tl.AppendExpression(dst, e.Right)
	return append(dst, ')'), err
}

// appendCall renders name(arg1, arg2, ...).
func (tl *TranspileToLua) appendCall(dst []byte, name *ast.Identifier, args []ast.Expression) (_ []byte, err error) {
	dst, err = appendIdentifier(dst, name)
	if err != nil {
		return dst, err
	}
	dst = append(dst, '(')
	dst, err = tl.appendExprList(dst, args)
	return append(dst, ')'), err
}

// appendExprList renders exprs separated by ", " with no leading or trailing separator.
func (tl *TranspileToLua) appendExprList(dst []byte, exprs []ast.Expression) (_ []byte, err error) {
	for i, expr := range exprs {
		if i > 0 {
			dst = appendSeparator(dst)
		}
		dst, err = tl.AppendExpression(dst, expr)
		if err != nil {
			return dst, err
		}
	}
	return dst, nil
}
