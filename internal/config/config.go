package config

// Options holds all configuration for a modscan run.
type Options struct {
	// Target
	Path           string // custom root directory to scan
	Launcher       string // launcher profile: modrinth, prism, atlauncher, vanilla
	SignaturesPath string // extra signature file (default: built-in list only)

	// Performance
	Threads int

	// Remediation
	Delete    bool // delete matched files after the scan
	AssumeYes bool // skip the deletion confirmation prompt

	// Output
	OutputFile   string
	OutputFormat string // "text", "json", "csv"
	Quiet        bool
	NoColor      bool

	// Hooks
	OnMatchCmd string
}
