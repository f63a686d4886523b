package lolcode

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/soypat/go-lolcode/ast"
	"github.com/soypat/go-lolcode/token"
)

// appendLiteral renders NOOB as nil, WIN/FAIL as true/false, numbers in
// canonical form and YARN as its pre-quoted Raw text.
func appendLiteral(dst []byte, lit *ast.Literal) ([]byte, error) {
	switch lit.Kind {
	case token.NOOB:
		return append(dst, "nil"...), nil
	case token.WIN:
		return append(dst, "true"...), nil
	case token.FAIL:
		return append(dst, "false"...), nil
	case token.YarnLit:
		if lit.Raw == "" {
			return appendLuaString(dst, lit.Value), nil
		}
		return append(dst, lit.Raw...), nil
	case token.NumbrLit:
		v, err := strconv.ParseInt(lit.Value, 10, 64)
		if err != nil {
			return dst, fmt.Errorf("invalid NUMBR %q: %w", lit.Value, err)
		}
		return strconv.AppendInt(dst, v, 10), nil
	case token.NumbarLit:
		v, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return dst, fmt.Errorf("invalid NUMBAR %q: %w", lit.Value, err)
		}
		return appendNumbar(dst, v), nil
	}
	return dst, fmt.Errorf("literal kind %s: %w", lit.Kind, ErrNotImplemented)
}

// appendNumbar renders v in shortest decimal form, always containing a '.'
// so Lua keeps it a float.
func appendNumbar(dst []byte, v float64) []byte {
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'f', -1, 64)
	for _, c := range dst[start:] {
		if c == '.' {
			return dst
		}
	}
	return append(dst, ".0"...)
}

// appendTypeDefault renders the value a variable declared ITZ A <type> starts with.
func appendTypeDefault(dst []byte, typ token.Token) ([]byte, error) {
	switch typ {
	case token.TROOF:
		return append(dst, "false"...), nil
	case token.NUMBR:
		return append(dst, '0'), nil
	case token.NUMBAR:
		return append(dst, "0.0"...), nil
	case token.NOOB:
		return append(dst, "nil"...), nil
	case token.BUKKIT:
		return append(dst, "{}"...), nil
	case token.YARN:
		return append(dst, `""`...), nil
	}
	return dst, fmt.Errorf("declared type %s: %w", typ, ErrNotImplemented)
}

// appendIdentifier renders a direct identifier as its bare name.
func appendIdentifier(dst []byte, ident *ast.Identifier) ([]byte, error) {
	if ident.Srs {
		return dst, fmt.Errorf("SRS %s: %w", ident.Name, ErrIndirectIdentifier)
	}
	return append(dst, ident.Name...), nil
}

// appendSeparator appends the list separator ", ".
func appendSeparator(dst []byte) []byte {
	dst, _ = AppendToken(dst, token.Comma, nil)
	return append(dst, ' ')
}

// AppendToken appends the Lua rendering of a single token atom. Comments
// render as nothing, keywords keep their LOLCODE spelling and literal tokens
// render as their literal would. Slot access has no rendering and fails with [ErrSlotAccess].
func AppendToken(dst []byte, tok token.Token, lit []byte) ([]byte, error) {
	switch {
	case tok == token.Comma:
		return append(dst, ','), nil
	case tok == token.Ellipsis:
		return append(dst, "..."...), nil
	case tok == token.QuestionMark:
		return append(dst, '?'), nil
	case tok == token.Exclamation:
		return append(dst, '!'), nil
	case tok == token.SlotAccess:
		return dst, fmt.Errorf("'Z: %w", ErrSlotAccess)
	case tok.IsComment():
		return dst, nil
	case tok == token.Identifier:
		return append(dst, lit...), nil
	case tok.IsLiteral() || tok == token.NOOB:
		l := &ast.Literal{Kind: tok, Value: string(lit)}
		return appendLiteral(dst, l)
	case tok.IsKeyword() || tok.IsType():
		return append(dst, tok.String()...), nil
	}
	return dst, fmt.Errorf("token %s: %w", tok, ErrNotImplemented)
}

// quoteLuaString returns s as a double quoted Lua string literal.
func quoteLuaString(s string) string {
	return string(appendLuaString(nil, s))
}

// appendLuaString appends s as a double quoted Lua string literal. Control
// characters without a short escape use Lua's decimal \ddd form.
func appendLuaString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case '\\':
			dst = append(dst, `\\`...)
		case '"':
			dst = append(dst, `\"`...)
		case '\n':
			dst = append(dst, `\n`...)
		case '\t':
			dst = append(dst, `\t`...)
		case '\r':
			dst = append(dst, `\r`...)
		case '\a':
			dst = append(dst, `\a`...)
		default:
			if r < ' ' || r == 0x7f {
				dst = append(dst, '\\')
				if r < 100 {
					dst = append(dst, '0')
				}
				if r < 10 {
					dst = append(dst, '0')
				}
				dst = strconv.AppendInt(dst, int64(r), 10)
			} else {
				dst = append(dst, s[i:i+size]...)
			}
		}
		i += size
	}
	return append(dst, '"')
}
