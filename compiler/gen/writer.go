package gen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// SnapshotFile is the name of the snapshot kept in the target directory.
const SnapshotFile = ".mapperkit.snapshot"

// File is a generated file. Path is relative to the target directory.
type File struct {
	Path    string
	Content []byte
}

// Emitter renders the files of one unit.
type Emitter interface {
	Emit(u *Unit) ([]File, error)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(u *Unit) ([]File, error)

// Emit calls f(u).
func (f EmitterFunc) Emit(u *Unit) ([]File, error) { return f(u) }

// Snapshot records the fingerprints of the files written by the last run.
type Snapshot struct {
	RunID string            `msgpack:"run_id"`
	Files map[string]uint64 `msgpack:"files"`
}

// Fingerprint returns the fingerprint of a file content.
func Fingerprint(b []byte) uint64 {
	return xxh3.Hash(b)
}

// LoadSnapshot reads the snapshot of the directory. A missing snapshot
// yields an empty one.
func LoadSnapshot(dir string) (*Snapshot, error) {
	b, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	if errors.Is(err, fs.ErrNotExist) {
		return &Snapshot{Files: make(map[string]uint64)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	s := &Snapshot{}
	if err := msgpack.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Files == nil {
		s.Files = make(map[string]uint64)
	}
	return s, nil
}

// Save writes the snapshot into the directory.
func (s *Snapshot) Save(dir string) error {
	b, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, SnapshotFile), b, 0o644)
}

// WriteStats summarizes a write.
type WriteStats struct {
	Written int
	Skipped int
	Bytes   int64
}

// Writer renders units with its emitters and writes the result under the
// target directory. Files whose content did not change since the previous
// run, according to the snapshot, are left untouched.
type Writer struct {
	target   string
	workers  int
	log      *slog.Logger
	emitters []Emitter

	mu    sync.Mutex
	stats WriteStats
}

// NewWriter returns a writer for the configured target directory.
func NewWriter(c *Config, emitters ...Emitter) (*Writer, error) {
	if c == nil || c.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	return &Writer{
		target:   c.Target,
		workers:  c.workers(),
		log:      c.logger(),
		emitters: emitters,
	}, nil
}

// Render runs every emitter over the units. Two files with the same path
// are reported as an error.
func (w *Writer) Render(units []*Unit) ([]File, error) {
	var (
		files []File
		seen  = make(map[string]string)
	)
	for _, u := range units {
		for _, e := range w.emitters {
			out, err := e.Emit(u)
			if err != nil {
				return nil, NewGenerationError("emit", u.Table.Name, "", err)
			}
			for _, f := range out {
				if prev, ok := seen[f.Path]; ok {
					return nil, NewGenerationError("emit", u.Table.Name, fmt.Sprintf("file %s already emitted for table %s", f.Path, prev), nil)
				}
				seen[f.Path] = u.Table.Name
				files = append(files, f)
			}
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Write renders the units and writes the files in parallel.
func (w *Writer) Write(ctx context.Context, runID string, units []*Unit) (WriteStats, error) {
	files, err := w.Render(units)
	if err != nil {
		return WriteStats{}, err
	}
	if err := os.MkdirAll(w.target, 0o755); err != nil {
		return WriteStats{}, fmt.Errorf("create output directory: %w", err)
	}
	prev, err := LoadSnapshot(w.target)
	if err != nil {
		return WriteStats{}, err
	}
	next := &Snapshot{RunID: runID, Files: make(map[string]uint64, len(files))}
	for _, f := range files {
		next.Files[f.Path] = Fingerprint(f.Content)
	}

	w.stats = WriteStats{}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(f, prev.Files[f.Path] == next.Files[f.Path])
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return w.stats, err
	}
	if err := next.Save(w.target); err != nil {
		return w.stats, err
	}
	w.log.Info("files written",
		"run", runID,
		"written", w.stats.Written,
		"skipped", w.stats.Skipped,
		"bytes", w.stats.Bytes,
	)
	return w.stats, nil
}

// writeFile writes one file. unchanged reports that the snapshot holds the
// same fingerprint; the file is then skipped if it still exists on disk.
func (w *Writer) writeFile(f File, unchanged bool) error {
	path := filepath.Join(w.target, f.Path)
	if unchanged {
		if _, err := os.Stat(path); err == nil {
			w.mu.Lock()
			w.stats.Skipped++
			w.mu.Unlock()
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Path, err)
	}
	if err := os.WriteFile(path, f.Content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	w.mu.Lock()
	w.stats.Written++
	w.stats.Bytes += int64(len(f.Content))
	w.mu.Unlock()
	return nil
}
