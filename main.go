// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Command line entry point for the pytoc translator.

package main

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pytoc/config"
	"pytoc/driver"
	"pytoc/logger"
	"pytoc/meta"
)

// flagKeys binds persistent flags onto configuration keys.
var flagKeys = map[string]string{
	"backend":   "parser.backend",
	"strict":    "projector.strict",
	"workers":   "driver.workers",
	"fail-fast": "driver.fail_fast",
	"dry-run":   "driver.dry_run",
	"banner":    "output.banner",
	"json":      "log.json",
	"log-level": "log.level",
}

type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgFile string
	viper   *viper.Viper
	cfg     *config.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:               meta.Name + " [path]",
		Short:             meta.Short,
		Long:              meta.Long,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		RunE:              a.runTranslate,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	d := config.Defaults()
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "configuration file (default: nearest "+config.FileName+")")
	flags.String("backend", d.Parser.Backend, "parser backend: native or tree-sitter")
	flags.Bool("strict", d.Projector.Strict, "fail on statements that have no translation")
	flags.Int("workers", d.Driver.Workers, "number of files translated in parallel")
	flags.Bool("fail-fast", d.Driver.FailFast, "stop the batch at the first failed file")
	flags.Bool("dry-run", d.Driver.DryRun, "print translations instead of writing files")
	flags.Bool("banner", d.Output.Banner, "prefix output with a comment naming the source file")
	flags.Bool("json", d.Log.JSON, "log as JSON")
	flags.String("log-level", d.Log.Level, "log level: debug, info, warn, error")

	root.AddCommand(newWatchCmd(a), newConfigCmd(a), newVersionCmd(a))
	return root
}

// load builds the configuration from defaults, file, environment and flags.
func (a *app) load(cmd *cobra.Command, args []string) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "failed to bind --%s", flag)
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	a.viper, a.cfg = v, cfg
	return nil
}

func (a *app) driver() *driver.Driver {
	opts := driver.OptionsFromConfig(a.cfg)
	opts.Stdout = a.stdout
	return driver.New(opts)
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func (a *app) runTranslate(cmd *cobra.Command, args []string) error {
	defer logger.Cleanup()

	report, err := a.driver().Run(cmd.Context(), pathArg(args))
	if report != nil {
		printReport(a.stderr, report)
	}
	if err != nil {
		return err
	}
	if !report.OK() {
		return errors.Newf("%d of %d files failed", len(report.Failed), len(report.Failed)+len(report.Translated))
	}
	return nil
}

func printReport(w io.Writer, r *driver.Report) {
	for _, f := range r.Failed {
		io.WriteString(w, pterm.Error.Sprintf("%s [%s]\n", f.Error(), f.Kind))
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Translated", "Failed", "Skipped", "Duration"},
		{
			strconv.Itoa(len(r.Translated)),
			strconv.Itoa(len(r.Failed)),
			strconv.Itoa(len(r.Skipped)),
			r.Duration.Round(time.Millisecond).String(),
		},
	}).Srender()
	if err == nil {
		io.WriteString(w, table+"\n")
	}

	if r.OK() {
		io.WriteString(w, pterm.Success.Sprintf("translated %d files\n", len(r.Translated)))
	}
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
