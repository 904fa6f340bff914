package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// walker enumerates a directory tree, following symbolic links. Each
// directory's resolved path is remembered so a symlink cycle is
// visited once instead of looping forever.
type walker struct {
	progress *Progress
	visited  map[string]struct{}
}

func newWalker(progress *Progress) *walker {
	return &walker{
		progress: progress,
		visited:  make(map[string]struct{}),
	}
}

// walk sends the path of every reachable regular file on paths,
// incrementing the discovered counter per file. Any enumeration
// failure (unreadable directory, unresolvable entry) aborts the walk.
func (w *walker) walk(ctx context.Context, dir string, paths chan<- string) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	if _, seen := w.visited[real]; seen {
		return nil
	}
	w.visited[real] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())

		// Stat, not Lstat: symlinked files and directories are
		// scanned as what they point at.
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}

		switch {
		case info.IsDir():
			if err := w.walk(ctx, path, paths); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			w.progress.discovered.Add(1)
			select {
			case paths <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return nil
}
