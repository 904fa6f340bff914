// Package hook runs a user-supplied shell command for each match.
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/modscan/modscan/internal/scanner"
)

// matchJSON is the JSON payload sent to the hook command via stdin.
type matchJSON struct {
	SHA1 string `json:"sha1"`
	Path string `json:"path"`
	Root string `json:"root"`
}

// Runner executes a shell command for each infected file found.
type Runner struct {
	cmd   string
	root  string
	quiet bool
}

// NewRunner creates a hook runner. cmd is the shell command to execute.
func NewRunner(cmd, root string, quiet bool) *Runner {
	return &Runner{cmd: cmd, root: root, quiet: quiet}
}

// Run executes the hook command with the match as JSON on stdin.
// The command runs with a 30-second timeout. Errors are logged but
// do not halt result reporting.
func (r *Runner) Run(m *scanner.Match) {
	payload := matchJSON{SHA1: m.Digest, Path: m.Path, Root: r.root}

	data, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[hook] marshal error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shell, args := shellCommand()
	// Replace {path} and {sha1} placeholders in the command.
	expanded := r.cmd
	expanded = strings.ReplaceAll(expanded, "{path}", m.Path)
	expanded = strings.ReplaceAll(expanded, "{sha1}", m.Digest)

	cmd := exec.CommandContext(ctx, shell, append(args, expanded)...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stderr = os.Stderr

	output, err := cmd.Output()
	if err != nil {
		if !r.quiet {
			fmt.Fprintf(os.Stderr, "[hook] error: %v\n", err)
		}
		return
	}

	if len(output) > 0 && !r.quiet {
		fmt.Fprintf(os.Stderr, "[hook] %s", output)
	}
}

func shellCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}
	}
	return "sh", []string{"-c"}
}
