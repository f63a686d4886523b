package lolcode

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inconshreveable/log15"
)

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lol")
	bad := filepath.Join(dir, "bad.lol")
	if err := os.WriteFile(good, []byte("HAI 1.2\nI HAS A x ITZ A NUMBR\nKTHXBYE\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("HAI 1.2\nI HAS A\nKTHXBYE\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	prog, err := ParseFile(good)
	if err != nil {
		t.Fatal(err)
	}
	lua, err := Translate(prog)
	if err != nil {
		t.Fatal(err)
	}
	if lua != "\nlocal x = 0\n" {
		t.Errorf("unexpected translation %q", lua)
	}

	_, err = ParseFile(bad)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.HasPrefix(err.Error(), bad+":2:") {
		t.Errorf("expected error located at line 2 of %s, got %q", bad, err)
	}

	missing := filepath.Join(dir, "missing.lol")
	_, err = ParseFile(missing)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if err == nil || !strings.HasPrefix(err.Error(), "could not read file "+missing) {
		t.Errorf("unexpected read error message: %v", err)
	}
}

func TestConfig_maxParseErrors(t *testing.T) {
	cfg := Config{MaxParseErrors: 1}
	_, err := cfg.Parse("errs.lol", strings.NewReader("OIC\nOIC\nOIC\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), "unexpected OIC"); n != 1 {
		t.Errorf("expected a single reported error, got %d: %v", n, err)
	}
}

func recordingHandler(msgs *[]string) log15.Handler {
	return log15.FuncHandler(func(r *log15.Record) error {
		*msgs = append(*msgs, r.Msg)
		return nil
	})
}

func TestLogging(t *testing.T) {
	root := log15.Root().GetHandler()
	defer log15.Root().SetHandler(root)
	defer SetLogHandler(log15.DiscardHandler())

	// The root handler writes to stdout by default: nothing may reach it.
	var rootMsgs []string
	log15.Root().SetHandler(recordingHandler(&rootMsgs))
	translate := func() {
		t.Helper()
		prog, err := Parse("log.lol", strings.NewReader("I HAS A x ITZ 1\n"))
		if err != nil {
			t.Fatal(err)
		}
		if _, err = Translate(prog); err != nil {
			t.Fatal(err)
		}
	}
	translate()
	if len(rootMsgs) != 0 {
		t.Fatalf("library logged to the root handler: %q", rootMsgs)
	}

	var msgs []string
	SetLogHandler(recordingHandler(&msgs))
	translate()
	if strings.Join(msgs, ",") != "parsed program,transpiled program" {
		t.Errorf("unexpected records %q", msgs)
	}
	if len(rootMsgs) != 0 {
		t.Errorf("library logged to the root handler: %q", rootMsgs)
	}
}
