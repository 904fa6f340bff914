// Package hasher computes streaming SHA-1 content digests of files.
package hasher

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize is how much file content is read per hash update. Files are
// never loaded into memory whole.
const chunkSize = 1 << 20 // 1 MiB

// SumFile returns the SHA-1 digest of the file's content as a lowercase
// hex string. The file is read in fixed-size chunks, so arbitrarily
// large files use bounded memory.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
