package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/go-lolcode"
	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"
)

var (
	outDirFlag = cli.StringFlag{
		Name:  "o",
		Usage: "Output directory for .lua files (default: next to each input)",
	}
	jobsFlag = cli.IntFlag{
		Name:  "j",
		Usage: "Maximum amount of files translated concurrently",
	}

	buildCommand = cli.Command{
		Action:    buildCmd,
		Name:      "build",
		Usage:     "Translate LOLCODE files to .lua files",
		ArgsUsage: "<file> [file...]",
		Flags:     []cli.Flag{outDirFlag, jobsFlag},
		Description: `The build command translates every file given, writing name.lua for each
name.lol. All files are attempted; the command fails if any of them fails.`,
	}
)

func buildCmd(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return reportErr(errors.New("no input files"))
	}
	cfg := settings.Build
	if ctx.IsSet(outDirFlag.Name) {
		cfg.OutDir = ctx.String(outDirFlag.Name)
	}
	if ctx.IsSet(jobsFlag.Name) {
		cfg.Jobs = ctx.Int(jobsFlag.Name)
	}
	if err := buildFiles(context.Background(), settings.Transpile, cfg, ctx.Args()); err != nil {
		return reportErr(err)
	}
	return nil
}

// buildFiles translates files concurrently with at most cfg.Jobs translations
// in flight. Each translation has its own parser and translator. The returned
// error joins the failures of every file.
func buildFiles(ctx context.Context, tcfg lolcode.Config, cfg buildConfig, files []string) error {
	if cfg.OutDir != "" {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return err
		}
	}
	var g errgroup.Group
	if cfg.Jobs > 0 {
		g.SetLimit(cfg.Jobs)
	}
	errs := make([]error, len(files))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = translateFile(tcfg, file, outputPath(cfg.OutDir, file))
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}

// translateFile writes the Lua translation of the LOLCODE file src to dst.
// Nothing is written if parsing or translation fails.
func translateFile(cfg lolcode.Config, src, dst string) error {
	prog, err := cfg.ParseFile(src)
	if err != nil {
		return err
	}
	lua, err := cfg.Translate(prog)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if err = os.WriteFile(dst, []byte(lua+"\n"), 0o644); err != nil {
		return err
	}
	log.Info("Translated file", "src", src, "dst", dst, "bytes", len(lua)+1)
	return nil
}

// outputPath returns the .lua path for src, placed in outDir when non-empty.
func outputPath(outDir, src string) string {
	name := strings.TrimSuffix(src, filepath.Ext(src)) + ".lua"
	if outDir == "" {
		return name
	}
	return filepath.Join(outDir, filepath.Base(name))
}
