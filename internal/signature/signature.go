// Package signature holds the set of known-malicious SHA-1 digests.
package signature

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// infectedHashes is the built-in list of known-malicious file digests
// (fractureiser-era Minecraft mod payloads). The duplicate entry is
// carried from the upstream advisory list; set construction absorbs it.
var infectedHashes = []string{
	"179b5da318604f97616b5108f305e2a8e4609484",
	"1a1c4dcae846866c58cc1abf71fb7f7aa4e7352a",
	"e4d55310039b965fce6756da5286b481cfb09946",
	"2f47e57a6bedc729359ffaf6f0149876008b5cc3",
	"2f47e57a6bedc729359ffaf6f0149876008b5cc3",
}

// Set is an immutable collection of malicious digest strings. It is
// built once at startup and only ever queried afterwards.
type Set struct {
	digests map[string]struct{}
}

// Load builds the signature set from the built-in list, merged with an
// optional signature file (one lowercase hex SHA-1 per line, blank
// lines and # comments ignored). An empty path means built-ins only.
func Load(path string) (*Set, error) {
	s := &Set{digests: make(map[string]struct{}, len(infectedHashes))}
	for _, h := range infectedHashes {
		s.digests[h] = struct{}{}
	}

	if path == "" {
		return s, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening signature file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		entry := strings.TrimSpace(sc.Text())
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		entry = strings.ToLower(entry)
		if !validDigest(entry) {
			return nil, fmt.Errorf("signature file %s:%d: %q is not a SHA-1 hex digest", path, line, entry)
		}
		s.digests[entry] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading signature file: %w", err)
	}

	return s, nil
}

// Contains reports whether digest is a known-malicious signature.
func (s *Set) Contains(digest string) bool {
	_, ok := s.digests[digest]
	return ok
}

// Len returns the number of distinct signatures in the set.
func (s *Set) Len() int {
	return len(s.digests)
}

func validDigest(entry string) bool {
	if len(entry) != 40 {
		return false
	}
	for _, c := range entry {
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
		if !isHex {
			return false
		}
	}
	return true
}
