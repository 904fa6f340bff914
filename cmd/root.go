package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/modscan/modscan/internal/config"
	"github.com/modscan/modscan/internal/launcher"
	"github.com/modscan/modscan/internal/runner"
	"github.com/modscan/modscan/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var opts config.Options

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"path", "launcher", "signatures"}},
	{"PERFORMANCE", []string{"threads"}},
	{"REMEDIATION", []string{"delete", "yes"}},
	{"OUTPUT", []string{"output", "format", "quiet", "no-color"}},
	{"HOOKS", []string{"on-match"}},
}

var rootCmd = &cobra.Command{
	Use:     "modscan (-p <dir> | -L <launcher>) [flags]",
	Short:   "Scan Minecraft mod folders for known-malicious files",
	Version: version.Version,
	Long: `modscan hashes every file under a launcher's data directory (or any
directory you point it at) and compares the SHA-1 digests against a
built-in list of known-malicious mod signatures. Matches can be
deleted in place once you have reviewed them.`,
	Example: `  modscan -L modrinth
  modscan -L prism --delete
  modscan -p ~/.minecraft/mods
  modscan -p /srv/mods -t 16 -o report.json --format json
  modscan -L vanilla -s extra-sigs.txt
  modscan -L atlauncher --on-match "notify-send 'infected: {path}'"`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if opts.Path == "" && opts.Launcher == "" {
			_ = cmd.Help()
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("target required: use -p or -L (launchers: %s)",
				strings.Join(launcher.Names(), ", "))
		}
		if opts.Path != "" && opts.Launcher != "" {
			return fmt.Errorf("--path and --launcher are mutually exclusive")
		}
		if opts.OutputFormat != "text" && opts.OutputFormat != "json" && opts.OutputFormat != "csv" {
			return fmt.Errorf("--format must be one of: text, json, csv")
		}
		if opts.Threads < 1 {
			return fmt.Errorf("--threads must be at least 1")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Target
	f.StringVarP(&opts.Path, "path", "p", "", "Directory to scan")
	f.StringVarP(&opts.Launcher, "launcher", "L", "", "Launcher profile to scan (modrinth, prism, atlauncher, vanilla)")
	f.StringVarP(&opts.SignaturesPath, "signatures", "s", "", "Extra signature file, one SHA-1 per line (merged with built-ins)")

	// Performance
	f.IntVarP(&opts.Threads, "threads", "t", runtime.NumCPU(), "Number of concurrent hash workers")

	// Remediation
	f.BoolVar(&opts.Delete, "delete", false, "Delete infected files after the scan")
	f.BoolVarP(&opts.AssumeYes, "yes", "y", false, "Skip the deletion confirmation prompt")

	// Output
	f.StringVarP(&opts.OutputFile, "output", "o", "", "Output file path")
	f.StringVar(&opts.OutputFormat, "format", "text", "Output format: text, json, csv")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Minimal output")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")

	// Hooks
	f.StringVar(&opts.OnMatchCmd, "on-match", "", "Shell command to run for each match (receives JSON on stdin)")

	// Custom help: categorized flags like httpx.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprintf(w, "\nmodscan %s — Minecraft mod malware scanner\n", cmd.Version)
		fmt.Fprintf(w, "\n%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 32
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	// Show default for non-zero values.
	def := f.DefValue
	if def != "" && def != "false" && def != "0" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}
