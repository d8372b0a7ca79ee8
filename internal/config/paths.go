package config

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeEnv overrides the glide home directory.
const HomeEnv = "GLIDE_HOME"

// Paths locates glide's files on disk.
type Paths struct {
	Home       string // ~/.glide unless GLIDE_HOME is set
	ConfigPath string
	LogDir     string
}

// DefaultPaths roots glide's files at $GLIDE_HOME, or ~/.glide.
func DefaultPaths() (*Paths, error) {
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return PathsAt(dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return PathsAt(filepath.Join(home, ".glide")), nil
}

// PathsAt roots every path at dir.
func PathsAt(dir string) *Paths {
	return &Paths{
		Home:       dir,
		ConfigPath: filepath.Join(dir, "config.json"),
		LogDir:     filepath.Join(dir, "logs"),
	}
}

// EnsureDirectories creates the home and log directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Home, p.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
