package scanner

import "sync/atomic"

// Progress exposes live counters for one scan. Discovery and hashing
// race independently, so readers may transiently observe
// completed+skipped < discovered; all counters converge once Scan
// returns. Counters only ever increase during a scan and are reset as
// a new scan starts.
type Progress struct {
	discovered atomic.Int64 // regular files found by traversal
	completed  atomic.Int64 // files successfully hashed
	skipped    atomic.Int64 // files skipped due to per-file read errors
}

// Discovered returns the number of regular files found so far.
func (p *Progress) Discovered() int64 { return p.discovered.Load() }

// Completed returns the number of files hashed so far.
func (p *Progress) Completed() int64 { return p.completed.Load() }

// Skipped returns the number of unreadable files skipped so far.
func (p *Progress) Skipped() int64 { return p.skipped.Load() }

func (p *Progress) reset() {
	p.discovered.Store(0)
	p.completed.Store(0)
	p.skipped.Store(0)
}
