package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"

	"github.com/inconshreveable/log15"
	"github.com/naoina/toml"
	"github.com/soypat/go-lolcode"
	"gopkg.in/urfave/cli.v1"
)

var dumpConfigCommand = cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	ArgsUsage:   "[file]",
	Description: `The dumpconfig command shows configuration values, writing them to file if given.`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type logConfig struct {
	Verbosity int
}

type replConfig struct {
	HistoryFile string `toml:",omitempty"`
}

type buildConfig struct {
	OutDir string `toml:",omitempty"`
	Jobs   int
}

type watchConfig struct {
	OutDir    string `toml:",omitempty"`
	CacheSize int
}

type lol2luaConfig struct {
	Transpile lolcode.Config
	Log       logConfig
	REPL      replConfig
	Build     buildConfig
	Watch     watchConfig
}

func defaultConfig() lol2luaConfig {
	cfg := lol2luaConfig{
		Transpile: lolcode.DefaultConfig,
		Log:       logConfig{Verbosity: int(log15.LvlWarn)},
		Build:     buildConfig{Jobs: runtime.NumCPU()},
		Watch:     watchConfig{CacheSize: 256},
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.REPL.HistoryFile = filepath.Join(home, ".lol2lua_history")
	}
	return cfg
}

func loadConfig(file string, cfg *lol2luaConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads defaults, then the config file, then applies global flags.
func makeConfig(ctx *cli.Context) (lol2luaConfig, error) {
	cfg := defaultConfig()
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.GlobalIsSet(indentFlag.Name) {
		cfg.Transpile.Indent = ctx.GlobalString(indentFlag.Name)
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	dump := io.Writer(os.Stdout)
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	return writeConfig(dump, settings)
}

func writeConfig(w io.Writer, cfg lol2luaConfig) error {
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
