// Package config loads snipshot settings from defaults, a TOML file, a
// .env file, SNIPSHOT_* environment variables and command flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/example/snipshot/internal/format"
)

// Keys understood by Load.
const (
	KeySaveDir       = "save_dir"
	KeyFileName      = "file_name"
	KeyDefaultFormat = "default_format"
	KeyFormats       = "formats"
	KeyJPEGQuality   = "jpeg_quality"
	KeyBackend       = "capture.backend"
	KeyExportDir     = "export.dir"
	KeyExportMargin  = "export.margin"
	KeyExportWidth   = "export.width"
	KeyExportHeight  = "export.height"
	KeyNotifySave    = "notify.save"
	KeyNotifyCopy    = "notify.copy"
	KeyNotifyExport  = "notify.export"
	KeyLogFormat     = "log.format"
	KeyLogLevel      = "log.level"
	KeyTheme         = "theme"
)

// Capture holds screen grab settings.
type Capture struct {
	Backend string
}

// Export holds export window settings.
type Export struct {
	Dir    string
	Margin int
	Width  int
	Height int
}

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Copy   bool
	Export bool
}

// Log holds logging settings.
type Log struct {
	Format string
	Level  string
}

// Config holds the application configuration.
type Config struct {
	SaveDir       string
	FileName      string
	DefaultFormat string
	Formats       []string
	JPEGQuality   int
	Theme         string
	Capture       Capture
	Export        Export
	Notify        Notify
	Log           Log
}

func defaultExportDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "snipshot", "spool")
	}
	return filepath.Join(os.TempDir(), "snipshot-spool")
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySaveDir, "")
	v.SetDefault(KeyFileName, "Screenshot 2006-01-02 150405")
	v.SetDefault(KeyDefaultFormat, "png")
	v.SetDefault(KeyFormats, []string{"png", "jpg", "bmp", "gif", "tiff"})
	v.SetDefault(KeyJPEGQuality, format.DefaultJPEGQuality)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyBackend, "auto")
	v.SetDefault(KeyExportDir, defaultExportDir())
	v.SetDefault(KeyExportMargin, 100)
	v.SetDefault(KeyExportWidth, 400)
	v.SetDefault(KeyExportHeight, 120)
	v.SetDefault(KeyNotifySave, false)
	v.SetDefault(KeyNotifyCopy, false)
	v.SetDefault(KeyNotifyExport, false)
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogLevel, "info")
}

// New returns the default configuration.
func New() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, _ := FromViper(v)
	return cfg
}

// FromViper reads every key from v and validates the result.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		SaveDir:       v.GetString(KeySaveDir),
		FileName:      v.GetString(KeyFileName),
		DefaultFormat: strings.ToLower(strings.TrimSpace(v.GetString(KeyDefaultFormat))),
		Formats:       splitList(v.Get(KeyFormats)),
		JPEGQuality:   v.GetInt(KeyJPEGQuality),
		Theme:         v.GetString(KeyTheme),
		Capture:       Capture{Backend: v.GetString(KeyBackend)},
		Export: Export{
			Dir:    v.GetString(KeyExportDir),
			Margin: v.GetInt(KeyExportMargin),
			Width:  v.GetInt(KeyExportWidth),
			Height: v.GetInt(KeyExportHeight),
		},
		Notify: Notify{
			Save:   v.GetBool(KeyNotifySave),
			Copy:   v.GetBool(KeyNotifyCopy),
			Export: v.GetBool(KeyNotifyExport),
		},
		Log: Log{
			Format: v.GetString(KeyLogFormat),
			Level:  v.GetString(KeyLogLevel),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList accepts a TOML array or a comma or space separated string, as
// environment variables deliver it.
func splitList(raw interface{}) []string {
	var items []string
	switch v := raw.(type) {
	case []string:
		items = v
	case []interface{}:
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
	case string:
		items = strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	}
	var out []string
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks that the configured formats resolve.
func (c *Config) Validate() error {
	reg, err := format.Subset(c.Formats)
	if err != nil {
		return fmt.Errorf("%s: %w", KeyFormats, err)
	}
	if c.DefaultFormat != "" && reg.IndexOf(c.DefaultFormat) < 0 {
		return fmt.Errorf("%s: %q is not one of %v", KeyDefaultFormat, c.DefaultFormat, c.Formats)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%s: %d out of range 1..100", KeyJPEGQuality, c.JPEGQuality)
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		return fmt.Errorf("export window size %dx%d must be positive", c.Export.Width, c.Export.Height)
	}
	return nil
}

// Registry returns the format registry for the configured formats.
func (c *Config) Registry() format.Registry {
	reg, err := format.Subset(c.Formats)
	if err != nil {
		return format.Default()
	}
	return reg
}

// String implements fmt.Stringer and returns the configuration as TOML.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s = %q\n", KeySaveDir, c.SaveDir)
	fmt.Fprintf(&sb, "%s = %q\n", KeyFileName, c.FileName)
	fmt.Fprintf(&sb, "%s = %q\n", KeyDefaultFormat, c.DefaultFormat)
	quoted := make([]string, len(c.Formats))
	for i, f := range c.Formats {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	fmt.Fprintf(&sb, "%s = [%s]\n", KeyFormats, strings.Join(quoted, ", "))
	fmt.Fprintf(&sb, "%s = %d\n", KeyJPEGQuality, c.JPEGQuality)
	fmt.Fprintf(&sb, "%s = %q\n", KeyTheme, c.Theme)
	sb.WriteString("\n")

	sb.WriteString("[capture]\n")
	fmt.Fprintf(&sb, "backend = %q\n", c.Capture.Backend)
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "dir = %q\n", c.Export.Dir)
	fmt.Fprintf(&sb, "margin = %d\n", c.Export.Margin)
	fmt.Fprintf(&sb, "width = %d\n", c.Export.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Export.Height)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	sb.WriteString("\n")

	sb.WriteString("[log]\n")
	fmt.Fprintf(&sb, "format = %q\n", c.Log.Format)
	fmt.Fprintf(&sb, "level = %q\n", c.Log.Level)

	return sb.String()
}
