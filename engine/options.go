package engine

import (
	"log/slog"
	"time"

	"github.com/shallot-lang/shallot/hostcall"
	"github.com/shallot-lang/shallot/value"
)

// EngineOption configures an Engine at creation time.
type EngineOption func(*engineConfig)

type engineConfig struct {
	logger   *slog.Logger
	builtins *hostcall.Registry
}

func defaultEngineConfig() engineConfig {
	return engineConfig{}
}

// WithLogger enables debug logging of evaluation lifecycle and adapter
// invocations.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithBuiltins exposes a registry's bindings to every evaluation. Entries
// supplied per-call through WithContext shadow builtins of the same name.
func WithBuiltins(r *hostcall.Registry) EngineOption {
	return func(c *engineConfig) {
		c.builtins = r
	}
}

// Option configures a single evaluation.
type Option func(*runConfig)

type runConfig struct {
	workDir string
	context []value.Value
	timeout time.Duration
}

func defaultRunConfig() runConfig {
	return runConfig{}
}

// WithWorkDir anchors @import resolution for this evaluation. The directory
// must exist; anything else about module resolution is the evaluator's
// business.
func WithWorkDir(path string) Option {
	return func(c *runConfig) {
		c.workDir = path
	}
}

// WithContext supplies named values visible to the script as top-level
// bindings. Every entry must be a Named value; duplicate names are a caller
// error. May be passed multiple times; entries accumulate in order.
func WithContext(entries ...value.Value) Option {
	return func(c *runConfig) {
		c.context = append(c.context, entries...)
	}
}

// WithTimeout bounds the evaluation. Zero means no limit beyond the caller's
// own context.
func WithTimeout(d time.Duration) Option {
	return func(c *runConfig) {
		c.timeout = d
	}
}
