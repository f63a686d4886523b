package ast

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// PrettyPrint generates formatted LOLCODE source from an AST node.
// Nested blocks are indented with two spaces per level.
func PrettyPrint(node Node) string {
	var buf bytes.Buffer
	pp(&buf, node, 0)
	return buf.String()
}

func pp(buf *bytes.Buffer, node Node, indent int) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Body {
			pp(buf, stmt, indent)
		}

	case *Loop:
		writeIndent(buf, indent)
		buf.Write(n.AppendString(nil))
		buf.WriteByte('\n')
		ppBody(buf, n.Body, indent+1)
		writeIndent(buf, indent)
		buf.WriteString("IM OUTTA YR ")
		buf.Write(n.Label.AppendString(nil))
		buf.WriteByte('\n')

	case *FuncDecl:
		writeIndent(buf, indent)
		buf.Write(n.AppendString(nil))
		buf.WriteByte('\n')
		ppBody(buf, n.Body, indent+1)
		writeIndent(buf, indent)
		buf.WriteString("IF U SAY SO\n")

	case *IfStmt:
		writeIndent(buf, indent)
		buf.WriteString("O RLY?\n")
		writeIndent(buf, indent+1)
		buf.WriteString("YA RLY\n")
		ppBody(buf, n.Then, indent+2)
		for _, elif := range n.ElseIfs {
			writeIndent(buf, indent+1)
			buf.Write(elif.AppendString(nil))
			buf.WriteByte('\n')
			ppBody(buf, elif.Body, indent+2)
		}
		if n.Else != nil {
			writeIndent(buf, indent+1)
			buf.WriteString("NO WAI\n")
			ppBody(buf, n.Else, indent+2)
		}
		writeIndent(buf, indent)
		buf.WriteString("OIC\n")

	case *SwitchStmt:
		writeIndent(buf, indent)
		buf.WriteString("WTF?\n")
		for _, cc := range n.Cases {
			writeIndent(buf, indent+1)
			buf.Write(cc.AppendString(nil))
			buf.WriteByte('\n')
			ppBody(buf, cc.Body, indent+2)
		}
		if n.Default != nil {
			writeIndent(buf, indent+1)
			buf.WriteString("OMGWTF\n")
			ppBody(buf, n.Default, indent+2)
		}
		writeIndent(buf, indent)
		buf.WriteString("OIC\n")

	case Statement:
		writeIndent(buf, indent)
		buf.Write(n.AppendString(nil))
		buf.WriteByte('\n')

	case Expression:
		buf.Write(n.AppendString(nil))

	default:
		fmt.Fprintf(buf, "BTW UNHANDLED: %T\n", node)
	}
}

func ppBody(buf *bytes.Buffer, body []Statement, indent int) {
	for _, stmt := range body {
		pp(buf, stmt, indent)
	}
}

func writeIndent(buf *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteString("  ")
	}
}

// AppendYarn appends s to dst as a double quoted LOLCODE YARN literal,
// escaping characters with their colon sequences.
func AppendYarn(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '\n':
			dst = append(dst, ":)"...)
		case '\t':
			dst = append(dst, ":>"...)
		case '\a':
			dst = append(dst, ":o"...)
		case '"':
			dst = append(dst, `:"`...)
		case ':':
			dst = append(dst, "::"...)
		default:
			if r < ' ' || r == 0x7f {
				dst = fmt.Appendf(dst, ":(%X)", r)
			} else {
				dst = utf8.AppendRune(dst, r)
			}
		}
	}
	return append(dst, '"')
}
