package output

import (
	"fmt"
	"os"
	"time"

	"github.com/modscan/modscan/internal/scanner"
)

// Progress renders a live status line on stderr by polling the
// scanner's counters. The total is unknown until traversal finishes,
// so the display shows hashed/discovered rather than a percentage.
type Progress struct {
	counters *scanner.Progress
	pauser   *scanner.Pauser
	start    time.Time
	done     chan struct{}
	quiet    bool
}

// NewProgress creates a progress display over the given counters.
// pauser may be nil. Call Start() to begin display updates.
func NewProgress(counters *scanner.Progress, pauser *scanner.Pauser, quiet bool) *Progress {
	return &Progress{
		counters: counters,
		pauser:   pauser,
		start:    time.Now(),
		done:     make(chan struct{}),
		quiet:    quiet,
	}
}

// Start begins periodically printing progress to stderr.
func (p *Progress) Start() {
	if p.quiet {
		return
	}
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.print()
			case <-p.done:
				p.print()
				fmt.Fprint(os.Stderr, "\n")
				return
			}
		}
	}()
}

// Stop ends the progress display.
func (p *Progress) Stop() {
	if p.quiet {
		return
	}
	close(p.done)
}

// ClearLine erases the status line so other output can be printed.
func (p *Progress) ClearLine() {
	if p.quiet {
		return
	}
	fmt.Fprint(os.Stderr, "\r\033[K")
}

// Redraw reprints the status line after interleaved output.
func (p *Progress) Redraw() {
	if p.quiet {
		return
	}
	p.print()
}

func (p *Progress) print() {
	hashed := p.counters.Completed()
	discovered := p.counters.Discovered()
	skipped := p.counters.Skipped()

	// Exclude paused time from the rate so it reflects actual work.
	elapsed := time.Since(p.start)
	if p.pauser != nil {
		elapsed -= p.pauser.PausedDuration()
	}
	rate := float64(0)
	if elapsed.Seconds() > 0 {
		rate = float64(hashed) / elapsed.Seconds()
	}

	state := ""
	if p.pauser != nil && p.pauser.IsPaused() {
		state = " | PAUSED"
	}

	fmt.Fprintf(os.Stderr, "\r\033[K[*] %d/%d files hashed | %.0f files/s | skipped: %d%s",
		hashed, discovered, rate, skipped, state)
}
