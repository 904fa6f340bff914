package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/modscan/modscan/internal/scanner"
)

type jsonReport struct {
	ScanID     string          `json:"scan_id"`
	Root       string          `json:"root"`
	Matches    []scanner.Match `json:"matches"`
	Discovered int64           `json:"discovered"`
	Hashed     int64           `json:"hashed"`
	Skipped    int64           `json:"skipped"`
	DurationMS int64           `json:"duration_ms"`
}

// JSONWriter buffers matches and writes one JSON report document.
type JSONWriter struct {
	w       io.Writer
	closer  io.Closer
	matches []scanner.Match
}

// NewJSONWriter creates a JSON output writer.
func NewJSONWriter(outputFile string) (*JSONWriter, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, err
		}
		w = f
		closer = f
	}
	return &JSONWriter{w: w, closer: closer}, nil
}

func (j *JSONWriter) WriteHeader() error { return nil }

func (j *JSONWriter) WriteMatch(m *scanner.Match) error {
	j.matches = append(j.matches, *m)
	return nil
}

func (j *JSONWriter) WriteFooter(stats Stats) error {
	report := jsonReport{
		ScanID:     stats.ScanID,
		Root:       stats.Root,
		Matches:    j.matches,
		Discovered: stats.Discovered,
		Hashed:     stats.Hashed,
		Skipped:    stats.Skipped,
		DurationMS: stats.Duration.Milliseconds(),
	}
	if report.Matches == nil {
		report.Matches = []scanner.Match{}
	}
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func (j *JSONWriter) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
