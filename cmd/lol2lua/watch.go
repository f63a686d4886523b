package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rjeczalik/notify"
	"github.com/soypat/go-lolcode"
	"golang.org/x/crypto/sha3"
	"gopkg.in/urfave/cli.v1"
)

var watchCommand = cli.Command{
	Action:    watchCmd,
	Name:      "watch",
	Usage:     "Re-translate LOLCODE files in a directory when they change",
	ArgsUsage: "<dir>",
	Flags:     []cli.Flag{outDirFlag},
	Description: `The watch command translates every .lol file below dir and then waits for
changes, translating files again when their content changes. Translation
errors are logged and do not stop the command.`,
}

func watchCmd(ctx *cli.Context) error {
	dir, err := fileArg(ctx)
	if err != nil {
		return reportErr(err)
	}
	cfg := settings.Watch
	if ctx.IsSet(outDirFlag.Name) {
		cfg.OutDir = ctx.String(outDirFlag.Name)
	}
	w, err := newWatcher(settings.Transpile, cfg)
	if err != nil {
		return reportErr(err)
	}
	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err = w.run(sigctx, dir); err != nil && !errors.Is(err, context.Canceled) {
		return reportErr(err)
	}
	return nil
}

// watcher translates .lol files, skipping files whose content did not change
// since their last successful translation.
type watcher struct {
	cfg    lolcode.Config
	outDir string
	hashes *lru.Cache // Absolute path -> sha3-256 of the last translated content.
}

func newWatcher(cfg lolcode.Config, wcfg watchConfig) (*watcher, error) {
	size := wcfg.CacheSize
	if size <= 0 {
		size = 256
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	if wcfg.OutDir != "" {
		if err := os.MkdirAll(wcfg.OutDir, 0o755); err != nil {
			return nil, err
		}
	}
	return &watcher{cfg: cfg, outDir: wcfg.OutDir, hashes: cache}, nil
}

// run translates the .lol files below dir and then processes change events
// until ctx is done.
func (w *watcher) run(ctx context.Context, dir string) error {
	events := make(chan notify.EventInfo, 64)
	if err := notify.Watch(filepath.Join(dir, "..."), events, notify.Create, notify.Write, notify.Rename); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	defer notify.Stop(events)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isSource(path) {
			return err
		}
		w.processLogged(path)
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("Watching for changes", "dir", dir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if isSource(ev.Path()) {
				w.processLogged(ev.Path())
			}
		}
	}
}

func (w *watcher) processLogged(path string) {
	translated, err := w.process(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		w.hashes.Remove(cacheKey(path))
	case err != nil:
		log.Error("Translation failed", "file", path, "err", err)
	case !translated:
		log.Debug("File unchanged", "file", path)
	}
}

// process translates the file at path unless its content matches the last
// successful translation. It reports whether a translation was written.
func (w *watcher) process(path string) (translated bool, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	key := cacheKey(path)
	sum := sha3.Sum256(src)
	if prev, ok := w.hashes.Get(key); ok && prev.([32]byte) == sum {
		return false, nil
	}
	prog, err := w.cfg.Parse(path, bytes.NewReader(src))
	if err != nil {
		return false, err
	}
	lua, err := w.cfg.Translate(prog)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	dst := outputPath(w.outDir, path)
	if err = os.WriteFile(dst, []byte(lua+"\n"), 0o644); err != nil {
		return false, err
	}
	w.hashes.Add(key, sum)
	log.Info("Translated file", "src", path, "dst", dst)
	return true, nil
}

// cacheKey returns the absolute form of path. Walking yields paths relative to the
// watched directory while notify events carry absolute paths.
func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func isSource(path string) bool {
	return filepath.Ext(path) == ".lol"
}
