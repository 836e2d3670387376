package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SNIPSHOT_CAPTURE_BACKEND.
const EnvPrefix = "SNIPSHOT"

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // --config, or set at compile time
	EnvFile      string // .env file; ".env" in the working directory when empty
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// FlagKeys maps command flag names onto config keys.
var FlagKeys = map[string]string{
	"save-dir":      KeySaveDir,
	"file-name":     KeyFileName,
	"format":        KeyDefaultFormat,
	"formats":       KeyFormats,
	"jpeg-quality":  KeyJPEGQuality,
	"backend":       KeyBackend,
	"export-dir":    KeyExportDir,
	"export-margin": KeyExportMargin,
	"notify-save":   KeyNotifySave,
	"notify-copy":   KeyNotifyCopy,
	"notify-export": KeyNotifyExport,
	"log-format":    KeyLogFormat,
	"log-level":     KeyLogLevel,
	"theme":         KeyTheme,
}

// Load builds the configuration. flags may be nil; flags present in
// FlagKeys override every other source when set on the command line.
func (l *Loader) Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if err := l.Bind(v, flags); err != nil {
		return nil, err
	}
	return FromViper(v)
}

// Bind wires defaults, the config file, the .env file, the environment and
// flags into v.
func (l *Loader) Bind(v *viper.Viper, flags *pflag.FlagSet) error {
	SetDefaults(v)

	if path := l.GetConfigPath(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	} else if l.OverridePath != "" {
		return fmt.Errorf("config %s: %w", l.OverridePath, os.ErrNotExist)
	}

	if err := l.loadEnvFile(); err != nil {
		return err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}
	return nil
}

// loadEnvFile exports the .env file's variables without overriding ones
// already set in the environment.
func (l *Loader) loadEnvFile() error {
	path := l.EnvFile
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	return nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
		return ""
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".snipshot.toml")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	if dir, err := os.UserConfigDir(); err == nil {
		xdgPath := filepath.Join(dir, "snipshot", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	return ""
}
