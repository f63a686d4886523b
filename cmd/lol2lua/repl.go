package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/soypat/go-lolcode"
	"gopkg.in/urfave/cli.v1"
)

const (
	promptMain = "lol> "
	promptCont = "...> "
)

var replCommand = cli.Command{
	Action: replCmd,
	Name:   "repl",
	Usage:  "Translate LOLCODE to Lua interactively",
	Description: `The repl command reads LOLCODE a line at a time and prints the Lua translation
of every complete statement. Blocks may span several lines. Ctrl+C discards
the current input and Ctrl+D exits.`,
}

func replCmd(ctx *cli.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := settings.REPL.HistoryFile
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				log.Warn("Could not save REPL history", "file", histPath, "err", err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	fmt.Println("lol2lua REPL. Ctrl+C cancels input, Ctrl+D exits.")
	repl := lolcode.NewREPL(settings.Transpile)
	luaOut := color.New(color.FgBlue)
	errOut := color.New(color.FgRed)
	for {
		prompt := promptMain
		if repl.Pending() {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			repl.Discard()
			continue
		} else if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		} else if err != nil {
			return err
		}
		if !repl.Pending() && strings.TrimSpace(line) == "" {
			continue
		}
		lua, done, err := repl.Feed(line)
		if !done {
			continue
		}
		ln.AppendHistory(line)
		if err != nil {
			errOut.Fprintln(color.Output, err)
			continue
		}
		if lua != "" {
			luaOut.Fprintln(color.Output, lua)
		}
	}
}
