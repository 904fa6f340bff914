package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/modscan/modscan/internal/scanner"
)

// ANSI color codes.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorDim   = "\033[2m"
)

// TextWriter writes colored text output to a writer.
type TextWriter struct {
	w       io.Writer
	noColor bool
	quiet   bool
}

// NewTextWriter creates a text output writer. If outputFile is empty,
// stdout is used. noColor disables ANSI escape codes.
func NewTextWriter(outputFile string, noColor, quiet bool) (*TextWriter, error) {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, err
		}
		w = f
	}
	return &TextWriter{w: w, noColor: noColor, quiet: quiet}, nil
}

func (t *TextWriter) WriteHeader() error {
	if t.quiet {
		return nil
	}
	dim, reset := colorDim, colorReset
	if t.noColor {
		dim, reset = "", ""
	}
	_, err := fmt.Fprintf(t.w, "%sSHA-1                                     File%s\n", dim, reset)
	return err
}

func (t *TextWriter) WriteMatch(m *scanner.Match) error {
	red, reset := colorRed, colorReset
	if t.noColor {
		red, reset = "", ""
	}
	_, err := fmt.Fprintf(t.w, "%s%s  %s%s\n", red, m.Digest, m.Path, reset)
	return err
}

func (t *TextWriter) WriteFooter(stats Stats) error {
	if t.quiet {
		return nil
	}

	verdict := fmt.Sprintf("%s%d infected file(s) found%s", colorRed, stats.MatchCount, colorReset)
	if stats.MatchCount == 0 {
		verdict = fmt.Sprintf("%sno infected files found%s", colorGreen, colorReset)
	}
	if t.noColor {
		verdict = fmt.Sprintf("%d infected file(s) found", stats.MatchCount)
		if stats.MatchCount == 0 {
			verdict = "no infected files found"
		}
	}

	_, err := fmt.Fprintf(os.Stderr,
		"\nScanned: %d files | Skipped: %d | Duration: %s | %.0f files/s | %s\n",
		stats.Hashed,
		stats.Skipped,
		stats.Duration.Round(time.Millisecond),
		stats.FilesPerSec,
		verdict,
	)
	return err
}

func (t *TextWriter) Close() error {
	if closer, ok := t.w.(io.Closer); ok && t.w != os.Stdout {
		return closer.Close()
	}
	return nil
}
