// Package launcher maps Minecraft launcher profiles to the data
// directories their mods live under.
package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// dataDirs maps a launcher name to its mod/instance directory relative
// to the user config directory.
var dataDirs = map[string][]string{
	"modrinth":   {"com.modrinth.theseus", "profiles"},
	"prism":      {"PrismLauncher", "instances"},
	"atlauncher": {"ATLauncher"},
	"vanilla":    {".minecraft"},
}

// Names returns the supported launcher names, sorted.
func Names() []string {
	names := make([]string, 0, len(dataDirs))
	for name := range dataDirs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the data directory for a launcher profile. The name
// is matched case-insensitively. The directory must exist: scanning a
// launcher that is not installed is reported up front rather than as
// an empty scan.
func Resolve(name string) (string, error) {
	rel, ok := dataDirs[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown launcher %q (supported: %s)", name, strings.Join(Names(), ", "))
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}

	dir := filepath.Join(append([]string{cfg}, rel...)...)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("launcher %q data directory not found at %s", name, dir)
		}
		return "", fmt.Errorf("checking launcher directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("launcher path %s is not a directory", dir)
	}

	return dir, nil
}
