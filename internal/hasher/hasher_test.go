package hasher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.bin")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSumFileKnownDigest(t *testing.T) {
	path := writeFile(t, []byte("hello"))
	got, err := SumFile(path)
	if err != nil {
		t.Fatalf("SumFile: %v", err)
	}
	// sha1("hello")
	want := "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"
	if got != want {
		t.Errorf("SumFile = %q, want %q", got, want)
	}
}

func TestSumFileEmpty(t *testing.T) {
	path := writeFile(t, nil)
	got, err := SumFile(path)
	if err != nil {
		t.Fatalf("SumFile: %v", err)
	}
	want := "da39a3ee5e6b4b0d3255bfef95601890afd80709"
	if got != want {
		t.Errorf("SumFile = %q, want %q", got, want)
	}
}

func TestSumFileDeterministic(t *testing.T) {
	path := writeFile(t, []byte("the same bytes every time"))
	first, err := SumFile(path)
	if err != nil {
		t.Fatalf("SumFile: %v", err)
	}
	second, err := SumFile(path)
	if err != nil {
		t.Fatalf("SumFile: %v", err)
	}
	if first != second {
		t.Errorf("digests differ: %q vs %q", first, second)
	}
}

func TestSumFileLargerThanChunk(t *testing.T) {
	// Spans multiple 1 MiB reads to exercise incremental updates.
	content := bytes.Repeat([]byte("abcd1234"), (chunkSize/8)+512)
	path := writeFile(t, content)

	got, err := SumFile(path)
	if err != nil {
		t.Fatalf("SumFile: %v", err)
	}
	if len(got) != 40 {
		t.Fatalf("digest length = %d, want 40", len(got))
	}

	// Rehashing the same content at a different path must agree.
	other := filepath.Join(t.TempDir(), "copy.bin")
	if err := os.WriteFile(other, content, 0644); err != nil {
		t.Fatal(err)
	}
	again, err := SumFile(other)
	if err != nil {
		t.Fatalf("SumFile: %v", err)
	}
	if got != again {
		t.Errorf("same content hashed differently: %q vs %q", got, again)
	}
}

func TestSumFileLowercaseHex(t *testing.T) {
	path := writeFile(t, []byte{0xde, 0xad, 0xbe, 0xef})
	got, err := SumFile(path)
	if err != nil {
		t.Fatalf("SumFile: %v", err)
	}
	for _, c := range got {
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
		if !isHex {
			t.Fatalf("digest %q contains non-lowercase-hex rune %q", got, c)
		}
	}
}

func TestSumFileMissing(t *testing.T) {
	_, err := SumFile(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
