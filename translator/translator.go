// By Navid M (c)
// Date: 2025
// License: GPL3
//
// One-unit translation pipeline: normalise, parse, project, render.

package translator

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"pytoc/config"
	"pytoc/lexer"
	"pytoc/logger"
	"pytoc/preprocessor"
	"pytoc/projector"
	"pytoc/pyast"
	"pytoc/renderer"
	"pytoc/treesitter"
)

// ErrUnknownBackend is returned by New for an unrecognised parser backend.
var ErrUnknownBackend = errors.New("unknown parser backend")

// Translator turns one source unit into C text. It holds parser state and
// must not be shared between goroutines.
type Translator struct {
	backend   string
	parser    pyast.Parser
	closer    func()
	projector projector.Projector
	banner    bool
	log       *zap.SugaredLogger
}

// Option configures a Translator.
type Option func(*Translator)

// WithBackend selects the parser backend by name.
func WithBackend(name string) Option {
	return func(t *Translator) { t.backend = name }
}

// WithStrict makes statements without a translation fail the unit.
func WithStrict(strict bool) Option {
	return func(t *Translator) { t.projector.Strict = strict }
}

// WithBanner prefixes output with a comment naming the source unit.
func WithBanner(banner bool) Option {
	return func(t *Translator) { t.banner = banner }
}

// WithLogger sends per-unit debug logs to l instead of the translator component logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(t *Translator) { t.log = l }
}

// FromConfig maps configuration onto translator options.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithBackend(cfg.Parser.Backend),
		WithStrict(cfg.Projector.Strict),
		WithBanner(cfg.Output.Banner),
	}
}

// New builds a Translator. The native backend is used unless another is
// selected.
func New(opts ...Option) (*Translator, error) {
	t := &Translator{backend: config.BackendNative}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = logger.ComponentLogger("translator")
	}

	switch t.backend {
	case config.BackendNative:
		t.parser = lexer.Parser{}
	case config.BackendTreeSitter:
		p, err := treesitter.New()
		if err != nil {
			return nil, err
		}
		t.parser, t.closer = p, p.Close
	default:
		return nil, errors.WithHintf(
			errors.Wrapf(ErrUnknownBackend, "%q", t.backend),
			"use %q or %q", config.BackendNative, config.BackendTreeSitter,
		)
	}
	return t, nil
}

// Backend names the parser in use.
func (t *Translator) Backend() string {
	return t.backend
}

// Close releases parser resources.
func (t *Translator) Close() {
	if t.closer != nil {
		t.closer()
		t.closer = nil
	}
}

// Translate converts src, read from the unit called name, to C. Any error
// aborts the unit and no output is returned.
func (t *Translator) Translate(name string, src []byte) (string, error) {
	start := time.Now()

	text := preprocessor.NormalizeSource(string(src))

	file, err := t.parser.Parse(name, []byte(text))
	if err != nil {
		return "", err
	}

	roots, err := t.projector.ProjectModule(file)
	if err != nil {
		return "", err
	}

	out := renderer.RenderUnit(roots)
	if t.banner {
		out = preprocessor.InsertBanner(out, name)
	}

	t.log.Debugw("translated",
		logger.FieldFile, name,
		logger.FieldBackend, t.backend,
		logger.FieldCount, len(roots),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return out, nil
}
