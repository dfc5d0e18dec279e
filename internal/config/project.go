// ABOUTME: Project .punchclock marker detection and config overrides
// ABOUTME: Walks directory tree to find the nearest project root
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// MarkerFile is the per-directory config file that scopes logs to a project tree.
const MarkerFile = ".punchclock"

// FindProjectRoot walks up from dir looking for a .punchclock file
// Returns empty string if not found
func FindProjectRoot(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	current := absDir
	for {
		markerPath := filepath.Join(current, MarkerFile)
		if info, err := os.Stat(markerPath); err == nil && !info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)

		// Stop at filesystem root or home directory
		if parent == current || current == homeDir {
			return "", nil
		}

		current = parent
	}
}

// LoadProjectConfig overlays the marker file at path onto cfg. A relative
// log_dir is resolved against the marker's directory.
func LoadProjectConfig(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}

	if md.IsDefined("log_dir") && !filepath.IsAbs(cfg.LogDir) && cfg.LogDir != "~" && !hasHomePrefix(cfg.LogDir) {
		cfg.LogDir = filepath.Join(filepath.Dir(path), cfg.LogDir)
	}
	return nil
}

func hasHomePrefix(p string) bool {
	return len(p) >= 2 && p[:2] == "~/"
}
