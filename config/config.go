// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Configuration model for pytoc.

package config

// FileName is the project configuration file searched for upward from the
// working directory.
const FileName = "pytoc.toml"

// Parser backends.
const (
	BackendNative     = "native"
	BackendTreeSitter = "tree-sitter"
)

// Config is the full pytoc configuration.
type Config struct {
	Parser    ParserConfig    `mapstructure:"parser" toml:"parser" yaml:"parser" json:"parser"`
	Projector ProjectorConfig `mapstructure:"projector" toml:"projector" yaml:"projector" json:"projector"`
	Driver    DriverConfig    `mapstructure:"driver" toml:"driver" yaml:"driver" json:"driver"`
	Output    OutputConfig    `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Log       LogConfig       `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
}

// ParserConfig selects the source parser.
type ParserConfig struct {
	Backend string `mapstructure:"backend" toml:"backend" yaml:"backend" json:"backend"` // native or tree-sitter
}

// ProjectorConfig controls projection of unsupported statements.
type ProjectorConfig struct {
	Strict bool `mapstructure:"strict" toml:"strict" yaml:"strict" json:"strict"` // fail instead of dropping
}

// DriverConfig controls batch translation of a directory tree.
type DriverConfig struct {
	Workers   int      `mapstructure:"workers" toml:"workers" yaml:"workers" json:"workers"`
	SourceExt string   `mapstructure:"source_ext" toml:"source_ext" yaml:"source_ext" json:"source_ext"`
	OutputExt string   `mapstructure:"output_ext" toml:"output_ext" yaml:"output_ext" json:"output_ext"`
	Exclude   []string `mapstructure:"exclude" toml:"exclude" yaml:"exclude" json:"exclude"` // directory names skipped during discovery
	FailFast  bool     `mapstructure:"fail_fast" toml:"fail_fast" yaml:"fail_fast" json:"fail_fast"`
	DryRun    bool     `mapstructure:"dry_run" toml:"dry_run" yaml:"dry_run" json:"dry_run"`
}

// OutputConfig controls rendered output decoration.
type OutputConfig struct {
	Banner bool `mapstructure:"banner" toml:"banner" yaml:"banner" json:"banner"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Level string `mapstructure:"level" toml:"level" yaml:"level" json:"level"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
}
