package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
)

// WatchCmd regenerates whenever a table descriptor or the configuration
// file changes.
type WatchCmd struct {
	Tables   []string      `help:"Table descriptor files. Defaults to the tables of the config." type:"existingfile"`
	Target   string        `help:"Output directory. Overrides the config."`
	Debounce time.Duration `help:"Quiet period before regenerating" default:"200ms"`
}

// Run executes the watch command until interrupted.
func (w *WatchCmd) Run(ctx *Context) error {
	sctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return w.watch(sctx, ctx)
}

func (w *WatchCmd) config(app *Context) (*Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if w.Target != "" {
		cfg.Target = w.Target
	}
	if len(w.Tables) > 0 {
		cfg.Tables = w.Tables
	}
	return cfg, nil
}

// watch generates once, then again after every burst of changes to the
// watched files. Generation errors are reported and do not stop the watch.
func (w *WatchCmd) watch(ctx context.Context, app *Context) error {
	cfg, err := w.config(app)
	if err != nil {
		return err
	}
	if len(cfg.Tables) == 0 {
		return ErrNoTables
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Directories are watched so editors that replace files on save keep
	// triggering events.
	files := watched(app.Config, cfg.Tables)
	dirs := make(map[string]bool)
	for f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	run := func() {
		cfg, err := w.config(app)
		if err == nil {
			_, err = generate(ctx, app, cfg)
		}
		if err != nil {
			app.status(color.FgRed, "Generation failed: %v", err)
		}
	}
	run()
	app.status(color.FgCyan, "Watching %d file(s)", len(files))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			app.Logger.Debug("descriptor changed", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			app.Logger.Warn("watch error", "error", err)
		}
	}
}

// watched returns the cleaned absolute paths of the configuration file and
// the table descriptors.
func watched(config string, tables []string) map[string]bool {
	files := make(map[string]bool, len(tables)+1)
	for _, p := range append([]string{config}, tables...) {
		if abs, err := filepath.Abs(p); err == nil {
			files[filepath.Clean(abs)] = true
		}
	}
	return files
}
