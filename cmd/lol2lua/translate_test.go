package main

import (
	"strings"
	"testing"

	"github.com/soypat/go-lolcode"
	"github.com/stretchr/testify/require"
)

func TestWriteTokens(t *testing.T) {
	var buf strings.Builder
	err := writeTokens(&buf, "tokens.lol", strings.NewReader("I HAS A x ITZ WIN BTW yes\nVISIBLE \"hi\"!"))
	require.NoError(t, err)
	out := buf.String()
	for _, want := range []string{"I HAS A", "1:1", "2:9", `"hi"`, "true", "<linecomment>"} {
		require.Contains(t, out, want)
	}
}

func TestWriteTokens_illegal(t *testing.T) {
	var buf strings.Builder
	err := writeTokens(&buf, "bad.lol", strings.NewReader("VISIBLE @"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 illegal tokens")
	require.Contains(t, buf.String(), "<illegal>")
}

func TestWriteNodeStats(t *testing.T) {
	prog, err := lolcode.Parse("stats.lol", strings.NewReader("I HAS A x ITZ SUM OF 1 AN 2\nVISIBLE x AN 3\n"))
	require.NoError(t, err)
	var buf strings.Builder
	writeNodeStats(&buf, prog)
	out := buf.String()
	require.Contains(t, out, "Literal")
	require.Contains(t, out, "BinaryExpr")
	require.Contains(t, out, "Declaration")
	require.Contains(t, out, "Visible")
}
