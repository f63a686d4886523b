package ast

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Fprint writes the tree rooted at n to w, one node per line indented by depth.
// Each line holds the node kind, its span and its LOLCODE spelling:
//
//	Declaration 2:1-2:16 I HAS A x ITZ 1
//	  Identifier 2:9-2:10 x
//	  Literal 2:15-2:16 1
//
// Spans are printed as line:col when src holds the parsed source and as byte
// offsets when src is nil. The Program root prints without its text.
func Fprint(w io.Writer, src []byte, n Node) error {
	if n == nil {
		return nil
	}
	var err error
	var buf []byte
	Walk(printer{w: w, src: src, err: &err, buf: &buf}, n)
	return err
}

// LineCol converts the byte offset off into src to 1-based line and utf8 column
// numbers. Offsets outside of src are clamped.
func LineCol(src []byte, off int) (line, col int) {
	off = min(max(off, 0), len(src))
	before := src[:off]
	line = bytes.Count(before, []byte{'\n'}) + 1
	lineStart := bytes.LastIndexByte(before, '\n') + 1
	return line, utf8.RuneCount(before[lineStart:]) + 1
}

type printer struct {
	w     io.Writer
	src   []byte
	depth int
	err   *error
	buf   *[]byte // Line buffer shared by all depths.
}

func (p printer) Visit(n Node) Visitor {
	if n == nil || *p.err != nil {
		return nil
	}
	b := (*p.buf)[:0]
	for i := 0; i < p.depth; i++ {
		b = append(b, "  "...)
	}
	b = append(b, strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")...)
	b = append(b, ' ')
	b = p.appendPos(b, n.Pos())
	b = append(b, '-')
	b = p.appendPos(b, n.End())
	if _, isRoot := n.(*Program); !isRoot {
		b = append(b, ' ')
		b = n.AppendString(b)
	}
	b = append(b, '\n')
	_, *p.err = p.w.Write(b)
	*p.buf = b
	p.depth++
	return p
}

func (p printer) appendPos(b []byte, off int) []byte {
	if p.src == nil {
		return strconv.AppendInt(b, int64(off), 10)
	}
	line, col := LineCol(p.src, off)
	b = strconv.AppendInt(b, int64(line), 10)
	b = append(b, ':')
	return strconv.AppendInt(b, int64(col), 10)
}
