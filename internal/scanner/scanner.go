// Package scanner walks a directory tree, hashes every regular file
// concurrently, and matches the digests against a signature set.
package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/modscan/modscan/internal/hasher"
	"github.com/modscan/modscan/internal/signature"
)

// Match is one infected file found by a scan.
type Match struct {
	Digest string `json:"sha1"`
	Path   string `json:"path"`
}

// Report is the immutable outcome of one completed scan.
type Report struct {
	ID         uuid.UUID     `json:"id"`
	Root       string        `json:"root"`
	Matches    []Match       `json:"matches"`
	Discovered int64         `json:"discovered"`
	Completed  int64         `json:"completed"`
	Skipped    int64         `json:"skipped"`
	Duration   time.Duration `json:"duration"`
}

// Config holds options for a Scanner.
type Config struct {
	Threads int
	Pauser  *Pauser // nil = no pause support
}

// Scanner runs scans against one signature set. A Scanner is reusable
// but not concurrent: a new scan resets the progress counters of the
// previous one.
type Scanner struct {
	sigs     *signature.Set
	threads  int
	pauser   *Pauser
	progress Progress
}

// New creates a Scanner. Threads below 1 are clamped to 1.
func New(sigs *signature.Set, cfg Config) *Scanner {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	return &Scanner{sigs: sigs, threads: threads, pauser: cfg.Pauser}
}

// Progress returns the live counters of the current (or last) scan.
// Safe to poll from other goroutines at any time.
func (s *Scanner) Progress() *Progress {
	return &s.progress
}

// fileDigest associates one successfully hashed file with its digest.
type fileDigest struct {
	digest string
	path   string
}

// Scan hashes every regular file reachable under root and returns the
// files whose digest is a known-malicious signature. Unreadable files
// are skipped; traversal errors abort the scan with no partial result.
func (s *Scanner) Scan(ctx context.Context, root string) (*Report, error) {
	s.progress.reset()
	start := time.Now()

	digests, err := s.hashTree(ctx, root)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for digest, path := range digests {
		if s.sigs.Contains(digest) {
			matches = append(matches, Match{Digest: digest, Path: path})
		}
	}

	return &Report{
		ID:         uuid.New(),
		Root:       root,
		Matches:    matches,
		Discovered: s.progress.Discovered(),
		Completed:  s.progress.Completed(),
		Skipped:    s.progress.Skipped(),
		Duration:   time.Since(start),
	}, nil
}

// hashTree walks root and fans file paths out to a bounded pool of
// hash workers, aggregating digest→path. If two files share a digest
// the last insert wins; the map is keyed by content, not by path.
func (s *Scanner) hashTree(ctx context.Context, root string) (map[string]string, error) {
	paths := make(chan string, s.threads*2)
	results := make(chan fileDigest, s.threads*2)

	g, ctx := errgroup.WithContext(ctx)

	// Producer: traversal feeds the workers as files are discovered.
	g.Go(func() error {
		defer close(paths)
		return newWalker(&s.progress).walk(ctx, root, paths)
	})

	// Workers: hash files. Per-file failures are skips, never fatal.
	var workers sync.WaitGroup
	for i := 0; i < s.threads; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for path := range paths {
				if s.pauser != nil {
					s.pauser.Wait()
				}

				digest, err := hasher.SumFile(path)
				if err != nil {
					s.progress.skipped.Add(1)
					continue
				}
				s.progress.completed.Add(1)

				select {
				case results <- fileDigest{digest: digest, path: path}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Closer: release the collector once all workers have drained.
	go func() {
		workers.Wait()
		close(results)
	}()

	digests := make(map[string]string)
	for r := range results {
		digests[r.digest] = r.path
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return digests, nil
}
