package runner

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modscan/modscan/internal/config"
	"github.com/modscan/modscan/internal/hook"
	"github.com/modscan/modscan/internal/launcher"
	"github.com/modscan/modscan/internal/output"
	"github.com/modscan/modscan/internal/scanner"
	"github.com/modscan/modscan/internal/signature"
	"github.com/modscan/modscan/pkg/version"
)

// Run executes the full scan pipeline: resolve the target root, load
// signatures, hash the tree, report matches, and optionally delete
// them. Any fatal scan or remediation error is returned verbatim.
func Run(ctx context.Context, opts *config.Options) error {
	root, err := resolveRoot(opts)
	if err != nil {
		return err
	}

	sigs, err := signature.Load(opts.SignaturesPath)
	if err != nil {
		return fmt.Errorf("loading signatures: %w", err)
	}

	out, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating output writer: %w", err)
	}
	defer out.Close()

	if !opts.Quiet {
		printBanner(opts, root, sigs.Len())
	}

	// The pause toggle owns stdin while active, so it stays off when a
	// deletion confirmation prompt will need to read stdin afterwards.
	var pauser *scanner.Pauser
	cleanup := func() {}
	if !opts.Delete || opts.AssumeYes {
		pauser, cleanup = startStdinToggle(opts.Quiet)
	}
	defer cleanup()

	sc := scanner.New(sigs, scanner.Config{Threads: opts.Threads, Pauser: pauser})

	progress := output.NewProgress(sc.Progress(), pauser, opts.Quiet)
	progress.Start()

	report, err := sc.Scan(ctx, root)
	progress.Stop()
	cleanup()
	if err != nil {
		return err
	}

	if err := out.WriteHeader(); err != nil {
		return err
	}

	matches := sortedMatches(report)

	var hookRunner *hook.Runner
	if opts.OnMatchCmd != "" {
		hookRunner = hook.NewRunner(opts.OnMatchCmd, root, opts.Quiet)
	}

	for i := range matches {
		if err := out.WriteMatch(&matches[i]); err != nil {
			return err
		}
		if hookRunner != nil {
			hookRunner.Run(&matches[i])
		}
	}

	if err := out.WriteFooter(statsFromReport(report, pauser)); err != nil {
		return err
	}

	if opts.Delete && len(matches) > 0 {
		return remediate(opts, matches)
	}
	return nil
}

// resolveRoot picks the scan root from --path or --launcher.
func resolveRoot(opts *config.Options) (string, error) {
	if opts.Path != "" {
		abs, err := filepath.Abs(opts.Path)
		if err != nil {
			return "", fmt.Errorf("resolving path: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("checking scan root: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("scan root %s is not a directory", abs)
		}
		return abs, nil
	}
	if opts.Launcher != "" {
		return launcher.Resolve(opts.Launcher)
	}
	return "", fmt.Errorf("target required: use --path or --launcher")
}

// sortedMatches returns the report's matches ordered by path so output
// is stable regardless of hashing order.
func sortedMatches(report *scanner.Report) []scanner.Match {
	matches := make([]scanner.Match, len(report.Matches))
	copy(matches, report.Matches)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Path < matches[j].Path
	})
	return matches
}

func statsFromReport(report *scanner.Report, pauser *scanner.Pauser) output.Stats {
	stats := output.Stats{
		ScanID:     report.ID.String(),
		Root:       report.Root,
		Discovered: report.Discovered,
		Hashed:     report.Completed,
		Skipped:    report.Skipped,
		MatchCount: len(report.Matches),
		Duration:   report.Duration,
	}
	active := report.Duration
	if pauser != nil {
		active -= pauser.PausedDuration()
	}
	if active.Seconds() > 0 {
		stats.FilesPerSec = float64(report.Completed) / active.Seconds()
	}
	return stats
}

// remediate deletes the matched files, prompting first unless --yes.
func remediate(opts *config.Options, matches []scanner.Match) error {
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = m.Path
	}

	if !opts.AssumeYes {
		fmt.Fprintf(os.Stderr, "\n[?] Delete %d infected file(s)? [y/N] ", len(paths))
		sc := bufio.NewScanner(os.Stdin)
		if !sc.Scan() || !isYes(sc.Text()) {
			fmt.Fprintf(os.Stderr, "[*] Deletion aborted, no files removed\n")
			return nil
		}
	}

	removed, err := scanner.RemoveFiles(paths)
	if err != nil {
		return fmt.Errorf("remediation stopped after deleting %d of %d file(s): %w",
			len(removed), len(paths), err)
	}
	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "[+] Deleted %d infected file(s)\n", len(removed))
	}
	return nil
}

func isYes(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func createWriter(opts *config.Options) (output.Writer, error) {
	switch opts.OutputFormat {
	case "json":
		return output.NewJSONWriter(opts.OutputFile)
	case "csv":
		return output.NewCSVWriter(opts.OutputFile)
	default:
		return output.NewTextWriter(opts.OutputFile, opts.NoColor, opts.Quiet)
	}
}

func printBanner(opts *config.Options, root string, sigCount int) {
	const (
		cyan  = "\033[36m"
		white = "\033[97m"
		dim   = "\033[2m"
		reset = "\033[0m"
	)

	c, w, d, rs := cyan, white, dim, reset
	if opts.NoColor {
		c, w, d, rs = "", "", "", ""
	}

	fmt.Fprintf(os.Stderr, `
%s                        __
%s   ____ ___  ____  ____/ /_____________ _____
%s  / __ '__ \/ __ \/ __  / ___/ ___/ __ '/ __ \
%s / / / / / / /_/ / /_/ (__  ) /__/ /_/ / / / /
%s/_/ /_/ /_/\____/\__,_/____/\___/\__,_/_/ /_/%s  %sv%s%s

%s    Mod Folder Malware Scanner%s
`,
		c,
		c, c, c,
		c, rs, d, version.Version, rs,
		w, rs,
	)

	fmt.Fprintf(os.Stderr, "%s  ──────────────────────────────────────%s\n", d, rs)
	fmt.Fprintf(os.Stderr, "  %sTarget:%s      %s%s%s\n", d, rs, w, root, rs)
	if opts.Launcher != "" {
		fmt.Fprintf(os.Stderr, "  %sLauncher:%s    %s%s%s\n", d, rs, w, opts.Launcher, rs)
	}
	fmt.Fprintf(os.Stderr, "  %sThreads:%s     %s%d%s\n", d, rs, w, opts.Threads, rs)
	fmt.Fprintf(os.Stderr, "  %sSignatures:%s  %s%d%s\n", d, rs, w, sigCount, rs)
	fmt.Fprintf(os.Stderr, "%s  ──────────────────────────────────────%s\n\n", d, rs)
}
