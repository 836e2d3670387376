// snipshot: select a region of a frozen screenshot and save, copy or export it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "snipshot",
		Short: "Select and export a region of the screen",
		Long: `snipshot freezes the screen, lets you drag out a rectangle and then saves,
copies or exports the selected pixels.

Config file search order (first found wins):
  path supplied via --config
  ./.snipshot.toml (development builds only)
  $XDG_CONFIG_HOME/snipshot/config.toml

A .env file in the working directory is loaded next. Every key can be set
with a SNIPSHOT_<KEY> environment variable, e.g. SNIPSHOT_EXPORT_DIR, and
flags override everything.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", configPathOverride, "path to config file (overrides auto-discovery)")
	pf.String("log-format", "auto", "log format: auto|text|json")
	pf.String("log-level", "info", "log level: debug|info|warn|error")
	pf.Bool("notify-save", false, "show a desktop notification after saving an image")
	pf.Bool("notify-copy", false, "show a desktop notification after copying to the clipboard")
	pf.Bool("notify-export", false, "show a desktop notification after handing an image to the export window")

	root.AddCommand(
		newCaptureCmd(),
		newRegionCmd(),
		newFormatsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "snipshot version %s\n", version)
			if commit != "" {
				fmt.Fprintf(out, "commit %s built %s\n", commit, date)
			}
		},
	}
}
