package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader resolves theme names to palettes.
type Loader struct {
	ConfigDir string
}

// NewLoader creates a Loader reading user themes from the snipshot config
// directory.
func NewLoader() *Loader {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return &Loader{ConfigDir: filepath.Join(dir, "snipshot", "themes")}
}

// Load returns the theme called name. Lookup order:
//  1. empty name: Default
//  2. a path to an existing file
//  3. a built-in theme
//  4. <ConfigDir>/<name>.theme
func (l *Loader) Load(name string) (*Theme, error) {
	if strings.TrimSpace(name) == "" {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(name)
	}
	if t, ok := Builtin(name); ok {
		return t, nil
	}
	if l.ConfigDir != "" {
		filename := name
		if !strings.HasSuffix(filename, ".theme") {
			filename += ".theme"
		}
		path := filepath.Join(l.ConfigDir, filename)
		if _, err := os.Stat(path); err == nil {
			return parseFile(path)
		}
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}
