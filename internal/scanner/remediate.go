package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// RemoveFiles deletes the given paths. Files that no longer exist are
// skipped silently — a match may have been removed or moved between
// detection and remediation. The first other failure aborts the
// remaining deletions; the returned slice always holds the paths that
// were actually deleted, so callers can report partial remediation.
func RemoveFiles(paths []string) ([]string, error) {
	removed := make([]string, 0, len(paths))
	for _, path := range paths {
		err := os.Remove(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, fmt.Errorf("deleting %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
