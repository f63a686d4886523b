package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/go-lolcode"
	"github.com/stretchr/testify/require"
)

func TestWatcher_process(t *testing.T) {
	dir := t.TempDir()
	outdir := filepath.Join(dir, "out")
	w, err := newWatcher(lolcode.Config{Indent: "  "}, watchConfig{OutDir: outdir, CacheSize: 4})
	require.NoError(t, err)

	src := writeFile(t, dir, "count.lol", "IM IN YR l UPPIN YR i\nIM OUTTA YR l\n")
	translated, err := w.process(src)
	require.NoError(t, err)
	require.True(t, translated)
	got, err := os.ReadFile(filepath.Join(outdir, "count.lua"))
	require.NoError(t, err)
	require.Equal(t, "while true do\n  i = (i + 1)\nend\n", string(got))

	// Same content is not translated again.
	translated, err = w.process(src)
	require.NoError(t, err)
	require.False(t, translated)

	writeFile(t, dir, "count.lol", "GTFO\n")
	translated, err = w.process(src)
	require.NoError(t, err)
	require.True(t, translated)
	got, err = os.ReadFile(filepath.Join(outdir, "count.lua"))
	require.NoError(t, err)
	require.Equal(t, "return nil\n", string(got))
}

func TestWatcher_processErrors(t *testing.T) {
	dir := t.TempDir()
	w, err := newWatcher(lolcode.DefaultConfig, watchConfig{})
	require.NoError(t, err)

	_, err = w.process(filepath.Join(dir, "gone.lol"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, dir, "bad.lol", "GIMMEH x\n")
	translated, err := w.process(bad)
	require.ErrorIs(t, err, lolcode.ErrNotImplemented)
	require.False(t, translated)

	// A failed translation is retried even if the content did not change.
	_, err = w.process(bad)
	require.ErrorIs(t, err, lolcode.ErrNotImplemented)
}

func TestWatcher_relativeAndAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	w, err := newWatcher(lolcode.DefaultConfig, watchConfig{})
	require.NoError(t, err)
	writeFile(t, dir, "same.lol", "VISIBLE 1\n")

	// The initial walk sees relative paths, change events carry absolute ones.
	translated, err := w.process("same.lol")
	require.NoError(t, err)
	require.True(t, translated)
	translated, err = w.process(filepath.Join(dir, "same.lol"))
	require.NoError(t, err)
	require.False(t, translated, "unchanged file must hit the cache under its absolute path")
}

func TestIsSource(t *testing.T) {
	require.True(t, isSource("a/b.lol"))
	require.False(t, isSource("a/b.lua"))
	require.False(t, isSource("lol"))
}
