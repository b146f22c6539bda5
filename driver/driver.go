// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Batch translation of a directory tree.

package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pytoc/config"
	"pytoc/logger"
	"pytoc/translator"
)

// Options configures a Driver.
type Options struct {
	Workers   int
	SourceExt string
	OutputExt string
	Exclude   []string
	FailFast  bool
	DryRun    bool
	Debounce  time.Duration

	// Translator options applied to every per-worker translator.
	Translator []translator.Option
	// Stdout receives translations in dry-run mode.
	Stdout io.Writer
}

// OptionsFromConfig maps configuration onto driver options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Workers:    cfg.Driver.Workers,
		SourceExt:  cfg.Driver.SourceExt,
		OutputExt:  cfg.Driver.OutputExt,
		Exclude:    cfg.Driver.Exclude,
		FailFast:   cfg.Driver.FailFast,
		DryRun:     cfg.Driver.DryRun,
		Debounce:   time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		Translator: translator.FromConfig(cfg),
		Stdout:     os.Stdout,
	}
}

// UnitError records why one unit was not translated.
type UnitError struct {
	File string
	Kind string
	Err  error
}

func (e UnitError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Report summarises one batch.
type Report struct {
	Translated []string
	Failed     []UnitError
	// Skipped lists units never attempted because a fail-fast batch stopped.
	Skipped  []string
	Duration time.Duration
}

// OK reports whether every discovered unit was translated.
func (r *Report) OK() bool {
	return len(r.Failed) == 0 && len(r.Skipped) == 0
}

// Driver runs translations over files on disk.
type Driver struct {
	opts Options
	log  *zap.SugaredLogger

	outMu sync.Mutex
}

// New builds a Driver, filling unset options from the defaults.
func New(opts Options) *Driver {
	d := config.Defaults()
	if opts.Workers < 1 {
		opts.Workers = d.Driver.Workers
	}
	if opts.SourceExt == "" {
		opts.SourceExt = d.Driver.SourceExt
	}
	if opts.OutputExt == "" {
		opts.OutputExt = d.Driver.OutputExt
	}
	if opts.Exclude == nil {
		opts.Exclude = d.Driver.Exclude
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Driver{opts: opts, log: logger.ComponentLogger("driver")}
}

// Run translates every unit under root with a bounded pool of workers.
// A unit that fails is recorded and never stops the others unless FailFast
// is set. The returned error covers discovery, cancellation and fail-fast
// aborts; per-unit failures are only in the report.
func (d *Driver) Run(ctx context.Context, root string) (*Report, error) {
	start := time.Now()

	files, err := Discover(root, d.opts.SourceExt, d.opts.Exclude)
	if err != nil {
		return nil, err
	}
	d.log.Debugw("discovered units", logger.FieldCount, len(files))

	var (
		mu     sync.Mutex
		report = &Report{}
		done   = make(map[string]bool, len(files))
		paths  = make(chan string)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(paths)
		for _, f := range files {
			select {
			case paths <- f:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	workers := d.opts.Workers
	if workers > len(files) {
		workers = len(files)
	}
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			tr, err := translator.New(d.opts.Translator...)
			if err != nil {
				return err
			}
			defer tr.Close()

			for path := range paths {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				out, err := d.translateFile(tr, path)

				mu.Lock()
				done[path] = true
				if err != nil {
					report.Failed = append(report.Failed, UnitError{File: path, Kind: translator.Classify(err), Err: err})
				} else {
					report.Translated = append(report.Translated, out)
				}
				mu.Unlock()

				if err != nil && d.opts.FailFast {
					return err
				}
			}
			return nil
		})
	}

	runErr := g.Wait()

	for _, f := range files {
		if !done[f] {
			report.Skipped = append(report.Skipped, f)
		}
	}
	sort.Strings(report.Translated)
	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].File < report.Failed[j].File })
	report.Duration = time.Since(start)

	d.log.Infow("batch finished",
		logger.FieldCount, len(report.Translated),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
		logger.FieldDurationMS, report.Duration.Milliseconds(),
	)
	return report, runErr
}

// TranslateFile translates one unit with a fresh translator.
func (d *Driver) TranslateFile(path string) (string, error) {
	tr, err := translator.New(d.opts.Translator...)
	if err != nil {
		return "", err
	}
	defer tr.Close()
	return d.translateFile(tr, path)
}

// translateFile returns the output path written, or in dry-run mode the
// path that would have been written.
func (d *Driver) translateFile(tr *translator.Translator, path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}

	target := OutputPath(path, d.opts.SourceExt, d.opts.OutputExt)
	out, err := tr.Translate(path, src)
	if err != nil {
		d.log.Warnw("translation failed", logger.FieldFile, path, logger.FieldError, err)
		if !d.opts.DryRun {
			d.removeStale(target)
		}
		return "", err
	}

	if d.opts.DryRun {
		d.outMu.Lock()
		defer d.outMu.Unlock()
		if _, err := fmt.Fprintf(d.opts.Stdout, "// %s\n%s", target, out); err != nil {
			return "", errors.Wrap(err, "failed to write translation")
		}
		return target, nil
	}

	if err := writeFileAtomic(target, []byte(out)); err != nil {
		return "", err
	}
	d.log.Infow("translated", logger.FieldFile, path, logger.FieldOutput, target)
	return target, nil
}

// removeStale deletes the output of an earlier run so a failed unit never
// leaves translated text behind.
func (d *Driver) removeStale(target string) {
	err := os.Remove(target)
	if err == nil {
		d.log.Infow("removed stale output", logger.FieldOutput, target)
		return
	}
	if !errors.Is(err, os.ErrNotExist) {
		d.log.Warnw("failed to remove stale output", logger.FieldOutput, target, logger.FieldError, err)
	}
}

// writeFileAtomic writes through a temporary file in the target directory
// so a reader never sees partial output.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "failed to create output for %s", path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "failed to write %s", path)
}
