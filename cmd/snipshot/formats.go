package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/snipshot/internal/config"
)

func newFormatsCmd() *cobra.Command {
	var filter bool
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the save formats in filter order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			reg := a.cfg.Registry()
			out := cmd.OutOrStdout()
			if filter {
				fmt.Fprintln(out, reg.Filter())
				return nil
			}
			for i, f := range reg {
				exts := append([]string{f.Extension}, f.Aliases...)
				marker := " "
				if f.Extension == a.cfg.DefaultFormat || f.Encoder == a.cfg.DefaultFormat {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %d  %-5s %s\n", marker, i, f.Name, strings.Join(exts, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&filter, "filter", false, "print the combined dialog filter string")
	cmd.Flags().StringSlice("formats", nil, "formats offered when saving, in order")
	cmd.Flags().String("format", "png", "default save format")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the merged configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.cfg.String())
			return nil
		},
	}, &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			override, _ := cmd.Flags().GetString("config")
			path := config.NewLoader(version, override).GetConfigPath()
			if path == "" {
				path = "(none)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}
