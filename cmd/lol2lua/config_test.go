package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "lol2lua.toml", `
[Transpile]
Indent = "  "
MaxParseErrors = 5

[Log]
Verbosity = 4

[Build]
OutDir = "out"
Jobs = 3
`)
	cfg := defaultConfig()
	require.NoError(t, loadConfig(file, &cfg))
	require.Equal(t, "  ", cfg.Transpile.Indent)
	require.Equal(t, 5, cfg.Transpile.MaxParseErrors)
	require.Equal(t, 4, cfg.Log.Verbosity)
	require.Equal(t, "out", cfg.Build.OutDir)
	require.Equal(t, 3, cfg.Build.Jobs)
	// Sections absent from the file keep their defaults.
	require.Equal(t, 256, cfg.Watch.CacheSize)
}

func TestLoadConfig_unknownField(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bad.toml", "[Transpile]\nTabs = true\n")
	cfg := defaultConfig()
	err := loadConfig(file, &cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Tabs")
}

func TestLoadConfig_missingFile(t *testing.T) {
	cfg := defaultConfig()
	require.Error(t, loadConfig(filepath.Join(t.TempDir(), "none.toml"), &cfg))
}

func TestWriteConfig_roundTrip(t *testing.T) {
	want := defaultConfig()
	want.Transpile.Indent = "\t"
	want.Watch.OutDir = "lua"
	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, want))

	file := writeFile(t, t.TempDir(), "dump.toml", buf.String())
	var got lol2luaConfig
	require.NoError(t, loadConfig(file, &got))
	require.Equal(t, want, got)
}
