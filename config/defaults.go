// By Navid M (c)
// Date: 2025
// License: GPL3

package config

import (
	"runtime"

	"github.com/spf13/viper"
)

// DefaultExclude lists directory names never descended into.
var DefaultExclude = []string{".git", "__pycache__", ".venv"}

// Defaults returns the configuration used when no file or environment
// override is present.
func Defaults() *Config {
	return &Config{
		Parser: ParserConfig{Backend: BackendNative},
		Driver: DriverConfig{
			Workers:   runtime.NumCPU(),
			SourceExt: ".py",
			OutputExt: ".c",
			Exclude:   append([]string(nil), DefaultExclude...),
		},
		Log:   LogConfig{Level: "info"},
		Watch: WatchConfig{DebounceMS: 200},
	}
}

// SetDefaults registers every default on v so environment overrides apply
// to every key.
func SetDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("parser.backend", d.Parser.Backend)

	v.SetDefault("projector.strict", d.Projector.Strict)

	v.SetDefault("driver.workers", d.Driver.Workers)
	v.SetDefault("driver.source_ext", d.Driver.SourceExt)
	v.SetDefault("driver.output_ext", d.Driver.OutputExt)
	v.SetDefault("driver.exclude", d.Driver.Exclude)
	v.SetDefault("driver.fail_fast", d.Driver.FailFast)
	v.SetDefault("driver.dry_run", d.Driver.DryRun)

	v.SetDefault("output.banner", d.Output.Banner)

	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("watch.debounce_ms", d.Watch.DebounceMS)
}
