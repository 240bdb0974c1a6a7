package cli

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/chainsdk/compiler/load"
)

// debounce is the quiet period after the last change before regenerating.
const debounce = 200 * time.Millisecond

// watch generates the project and regenerates it whenever one of its
// schema or document files changes, until ctx is done. Generation errors
// are logged and do not stop the watch.
func watch(ctx context.Context, w io.Writer, project *load.Project, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, dir := range watchDirs(project) {
		if err := watcher.Add(dir); err != nil {
			return err
		}
		logger.Debug("watching", "dir", dir)
	}

	run := func() {
		if err := generate(ctx, w, project, logger); err != nil {
			logger.Error("generation failed", "error", err)
		}
	}
	run()

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isInput(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("change", "file", ev.Name, "op", ev.Op.String())
			if ev.Op.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = watcher.Add(ev.Name)
				}
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer.C:
			run()
		}
	}
}

// isInput reports whether a changed file can affect the generation.
func isInput(name string) bool {
	switch filepath.Ext(name) {
	case ".graphql", ".graphqls", ".gql":
		return true
	}
	return filepath.Base(name) == load.DefaultProjectFile
}

// watchDirs returns the directories holding the project inputs. A pattern
// contributes its static prefix, and every directory below it when the
// pattern is recursive.
func watchDirs(project *load.Project) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if dir = filepath.Clean(dir); !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	if project.Dir() != "" {
		add(project.Dir())
	}
	for _, pattern := range slices.Concat(project.Schema, project.Documents) {
		root, recursive := staticPrefix(pattern)
		if _, err := os.Stat(root); err != nil {
			continue
		}
		add(root)
		if !recursive {
			continue
		}
		_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(p)
			}
			return nil
		})
	}
	return dirs
}

// staticPrefix returns the directory part of pattern before its first
// meta character, and whether the pattern descends with "**".
func staticPrefix(pattern string) (string, bool) {
	i := strings.IndexAny(pattern, "*?[")
	if i < 0 {
		return filepath.Dir(pattern), false
	}
	return filepath.Dir(pattern[:i+1]), strings.Contains(pattern, "**")
}
