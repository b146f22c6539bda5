// By Navid M (c)
// Date: 2025
// License: GPL3

package config

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Validate checks every value for consistency.
func (c *Config) Validate() error {
	switch c.Parser.Backend {
	case BackendNative, BackendTreeSitter:
	default:
		return errors.WithHintf(
			errors.Newf("parser.backend must be %q or %q, got %q", BackendNative, BackendTreeSitter, c.Parser.Backend),
			"set parser.backend = %q", BackendNative,
		)
	}

	if c.Driver.Workers < 1 {
		return errors.Newf("driver.workers must be >= 1, got %d", c.Driver.Workers)
	}
	if !strings.HasPrefix(c.Driver.SourceExt, ".") || len(c.Driver.SourceExt) < 2 {
		return errors.Newf("driver.source_ext must start with a dot, got %q", c.Driver.SourceExt)
	}
	if !strings.HasPrefix(c.Driver.OutputExt, ".") || len(c.Driver.OutputExt) < 2 {
		return errors.Newf("driver.output_ext must start with a dot, got %q", c.Driver.OutputExt)
	}
	if c.Driver.SourceExt == c.Driver.OutputExt {
		return errors.Newf("driver.output_ext must differ from driver.source_ext (%q)", c.Driver.SourceExt)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Newf("log.level %q is not a valid level", c.Log.Level)
	}

	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	return nil
}

// FileReport is the result of checking a configuration file on its own.
type FileReport struct {
	Path string
	// Unknown lists keys present in the file that pytoc does not read.
	Unknown []string
	// Err holds the first value error, if any.
	Err error
}

// OK reports whether the file is free of unknown keys and value errors.
func (r *FileReport) OK() bool {
	return len(r.Unknown) == 0 && r.Err == nil
}

// ValidateFile strictly decodes path over the defaults and reports unknown
// keys separately from value errors. Only a file that cannot be read or
// parsed as TOML returns an error.
func ValidateFile(path string) (*FileReport, error) {
	cfg := Defaults()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	report := &FileReport{Path: path}
	for _, key := range md.Undecoded() {
		report.Unknown = append(report.Unknown, key.String())
	}
	sort.Strings(report.Unknown)
	report.Err = cfg.Validate()
	return report, nil
}
