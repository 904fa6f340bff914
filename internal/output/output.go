package output

import (
	"time"

	"github.com/modscan/modscan/internal/scanner"
)

// Stats holds aggregate statistics for one completed scan.
type Stats struct {
	ScanID      string
	Root        string
	Discovered  int64
	Hashed      int64
	Skipped     int64
	MatchCount  int
	Duration    time.Duration
	FilesPerSec float64
}

// Writer is implemented by each output format.
type Writer interface {
	WriteHeader() error
	WriteMatch(m *scanner.Match) error
	WriteFooter(stats Stats) error
	Close() error
}
