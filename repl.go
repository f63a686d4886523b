package lolcode

import (
	"strconv"
	"strings"
)

// REPL translates LOLCODE entered one line at a time. Lines are buffered until
// they form complete statements, so blocks such as loops and function
// declarations may span several lines. HAI and KTHXBYE are not required.
type REPL struct {
	cfg      Config
	pending  strings.Builder
	parser   Parser
	tl       TranspileToLua
	nsnippet int
}

// NewREPL returns a REPL translating with cfg.
func NewREPL(cfg Config) *REPL {
	r := &REPL{cfg: cfg}
	r.parser.SetMaxErrors(cfg.MaxParseErrors)
	r.tl.Reset(cfg)
	return r
}

// Feed appends line to the buffered input. When the buffered input is complete
// it is translated and the buffer is cleared, returning done=true. done=false
// means the input ends inside an open construct and more lines are needed.
func (r *REPL) Feed(line string) (lua string, done bool, err error) {
	r.pending.WriteString(line)
	r.pending.WriteByte('\n')
	if endsInContinuation(line) {
		return "", false, nil
	}
	lua, err = r.Translate(r.pending.String())
	if IsIncomplete(err) {
		return "", false, nil
	}
	r.pending.Reset()
	return lua, true, err
}

// Pending reports whether lines are buffered waiting for more input.
func (r *REPL) Pending() bool { return r.pending.Len() > 0 }

// Discard drops buffered input, as when the user aborts a multi-line entry.
func (r *REPL) Discard() { r.pending.Reset() }

// Translate parses and renders a complete snippet. Each snippet is named
// repl:N in error messages.
func (r *REPL) Translate(src string) (string, error) {
	r.nsnippet++
	source := "repl:" + strconv.Itoa(r.nsnippet)
	err := r.parser.Reset(source, strings.NewReader(src))
	if err != nil {
		return "", err
	}
	prog := r.parser.ParseProgram()
	if err = r.parser.Err(); err != nil {
		return "", err
	}
	log.Debug("repl snippet parsed", "source", source, "statements", len(prog.Body))
	return r.tl.Transpile(prog)
}

func endsInContinuation(line string) bool {
	line = strings.TrimRight(line, " \t\r")
	return strings.HasSuffix(line, "...") || strings.HasSuffix(line, "…")
}
