// lol2lua translates LOLCODE programs to Lua.
//
// Usage:
//
//	lol2lua [global flags] command [command flags] [arguments...]
//
// Commands:
//
//	ast         print the parsed syntax tree of a file
//	lua         print the Lua translation of a file
//	tokens      print the token stream of a file as a table
//	fmt         print a file as canonical LOLCODE
//	repl        translate LOLCODE interactively
//	build       translate many files concurrently, writing one .lua per input
//	watch       re-translate .lol files in a directory when they change
//	vet         report undeclared names and unused variables
//	dumpconfig  print the effective TOML configuration
//
// Global flags:
//
//	--config file   TOML configuration file
//	--verbosity n   logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug
//	--indent str    indentation of nested Lua blocks
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/soypat/go-lolcode"
	"gopkg.in/urfave/cli.v1"
)

var log = log15.New("cmd", "lol2lua")

var (
	app = cli.NewApp()

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug",
		Value: int(log15.LvlWarn),
	}
	indentFlag = cli.StringFlag{
		Name:  "indent",
		Usage: "Indentation prepended to nested Lua block lines",
	}
)

// settings holds the configuration resolved before any command runs.
var settings = defaultConfig()

func init() {
	app.Name = "lol2lua"
	app.Usage = "translate LOLCODE to Lua"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		indentFlag,
	}
	app.Commands = []cli.Command{
		astCommand,
		luaCommand,
		tokensCommand,
		fmtCommand,
		replCommand,
		buildCommand,
		watchCommand,
		vetCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		settings = cfg
		setupLogging(cfg.Log.Verbosity)
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging installs a stderr handler on the root logger and the library logger. Output is colored
// when stderr is a terminal.
func setupLogging(verbosity int) {
	fd := os.Stderr.Fd()
	usecolor := (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
	output := io.Writer(os.Stderr)
	format := log15.LogfmtFormat()
	if usecolor {
		output = colorable.NewColorableStderr()
		format = log15.TerminalFormat()
	}
	handler := log15.LvlFilterHandler(log15.Lvl(verbosity), log15.StreamHandler(output, format))
	log15.Root().SetHandler(handler)
	lolcode.SetLogHandler(handler)
}

// reportErr prints a recoverable failure as "Err: <message>" and makes the
// command exit with status 1.
func reportErr(err error) error {
	color.New(color.FgRed).Fprintf(color.Output, "Err: %v\n", err)
	return cli.NewExitError("", 1)
}

// fatalf aborts the program immediately, as done for translation failures.
func fatalf(format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}
