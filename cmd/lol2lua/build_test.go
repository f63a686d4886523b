package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/soypat/go-lolcode"
	"github.com/stretchr/testify/require"
)

func TestBuildFiles(t *testing.T) {
	srcdir := t.TempDir()
	outdir := filepath.Join(t.TempDir(), "lua")
	var files []string
	for i := 0; i < 6; i++ {
		n := strconv.Itoa(i)
		files = append(files, writeFile(t, srcdir, "prog"+n+".lol", "HAI 1.2\nI HAS A x ITZ "+n+"\nKTHXBYE\n"))
	}
	err := buildFiles(context.Background(), lolcode.DefaultConfig, buildConfig{OutDir: outdir, Jobs: 2}, files)
	require.NoError(t, err)
	for i := range files {
		n := strconv.Itoa(i)
		got, err := os.ReadFile(filepath.Join(outdir, "prog"+n+".lua"))
		require.NoError(t, err)
		require.Equal(t, "\nlocal x = "+n+"\n\n", string(got))
	}
}

func TestBuildFiles_failures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.lol", "VISIBLE 1\n")
	unsupported := writeFile(t, dir, "branch.lol", "O RLY?\nYA RLY\nOIC\n")
	missing := filepath.Join(dir, "missing.lol")

	err := buildFiles(context.Background(), lolcode.DefaultConfig, buildConfig{}, []string{good, unsupported, missing})
	require.Error(t, err)
	require.ErrorIs(t, err, lolcode.ErrNotImplemented)
	require.ErrorIs(t, err, os.ErrNotExist)

	// Files that translate are still written next to their source.
	got, err := os.ReadFile(filepath.Join(dir, "good.lua"))
	require.NoError(t, err)
	require.Equal(t, "io.write(1, \"\\n\")\n", string(got))
	_, err = os.Stat(filepath.Join(dir, "branch.lua"))
	require.True(t, errors.Is(err, os.ErrNotExist), "failed translation must not write output")
}

func TestBuildFiles_canceled(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "prog.lol", "VISIBLE 1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := buildFiles(ctx, lolcode.DefaultConfig, buildConfig{Jobs: 1}, []string{file})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, filepath.Join("a", "b.lua"), outputPath("", filepath.Join("a", "b.lol")))
	require.Equal(t, filepath.Join("out", "b.lua"), outputPath("out", filepath.Join("a", "b.lol")))
	require.Equal(t, "noext.lua", outputPath("", "noext"))
}
