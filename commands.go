// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Subcommands: watch, config, version.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pytoc/config"
	"pytoc/logger"
	"pytoc/meta"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [path]",
		Short: "Translate files, then re-translate them as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			root := pathArg(args)
			fmt.Fprintln(a.stderr, pterm.Info.Sprintf("watching %s (ctrl-c to stop)", root))
			return a.driver().Watch(ctx, root)
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or validate configuration",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(a.cfg, format)
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
	show.Flags().StringVar(&format, "format", "toml", "output format: toml, yaml, json")

	validate := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a configuration file for unknown keys and bad values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				if wd, err := os.Getwd(); err == nil {
					path = config.FindConfig(wd)
				}
			}
			if path == "" {
				fmt.Fprintln(a.stdout, pterm.Success.Sprint("no configuration file found; defaults are valid"))
				return nil
			}

			report, err := config.ValidateFile(path)
			if err != nil {
				return err
			}
			for _, key := range report.Unknown {
				fmt.Fprintln(a.stdout, pterm.Warning.Sprintf("%s: unknown key %s", path, key))
			}
			if report.Err != nil {
				fmt.Fprintln(a.stdout, pterm.Error.Sprintf("%s: %v", path, report.Err))
			}
			if !report.OK() {
				return errors.WithHint(
					errors.Newf("%s is not valid", path),
					"known sections are: "+strings.Join([]string{"parser", "projector", "driver", "output", "log", "watch"}, ", "),
				)
			}
			fmt.Fprintln(a.stdout, pterm.Success.Sprintf("%s is valid", path))
			return nil
		},
	}

	cmd.AddCommand(show, validate)
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.stdout, meta.Banner())
		},
	}
}
