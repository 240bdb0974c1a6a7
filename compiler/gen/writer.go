package gen

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Writer writes printed files to disk with parallel execution. Go sources
// are formatted with goimports before they are written.
type Writer struct {
	workers int
	log     *slog.Logger

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks write statistics.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a writer for the configuration.
func NewWriter(c *Config) *Writer {
	w := &Writer{
		workers: runtime.GOMAXPROCS(0),
		log:     c.logger(),
	}
	if c != nil && c.Workers > 0 {
		w.workers = c.Workers
	}
	return w
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the write metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// Write writes all files in parallel. The first failure cancels the
// remaining writes.
func (w *Writer) Write(ctx context.Context, files []*File) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)

	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(f)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	m := w.Metrics()
	w.log.Info("files written", "files", m.FilesWritten, "bytes", m.TotalBytes)
	return nil
}

// writeFile writes a single file.
func (w *Writer) writeFile(f *File) error {
	content := f.Content
	if f.IsGo() {
		formatted, err := imports.Process(f.Path, content, nil)
		if err != nil {
			// Write unformatted file for debugging.
			debugPath := f.Path + ".error"
			_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
			_ = os.WriteFile(debugPath, content, 0o644)
			return NewGenerationError("format", f.Path, "unformatted output written to "+debugPath, err)
		}
		content = formatted
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return NewGenerationError("write", f.Path, "create directory", err)
	}
	if err := os.WriteFile(f.Path, content, 0o644); err != nil {
		return NewGenerationError("write", f.Path, "write file", err)
	}
	w.log.Debug("file written", "path", f.Path, "bytes", len(content))

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(content))
	w.mu.Unlock()
	return nil
}
