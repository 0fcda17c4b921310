package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/shallot-lang/shallot/hostcall"
	"github.com/shallot-lang/shallot/interp"
	"github.com/shallot-lang/shallot/value"
)

// Engine evaluates shallot source on behalf of a host process. The zero cost
// of construction is deliberate: an Engine holds no per-evaluation state and
// may be shared freely.
type Engine struct {
	logger   *slog.Logger
	builtins *hostcall.Registry
}

// New creates an Engine.
func New(opts ...EngineOption) *Engine {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{
		logger:   cfg.logger,
		builtins: cfg.builtins,
	}
}

// Evaluate runs source to completion and returns the evaluator's terminal
// value verbatim: a pair of (success flag, payload). It does not interpret
// success or failure; use EvaluateOrThrow for the thrown-error convention.
//
// Evaluate fails host-side only for malformed input: unparsable source, a
// working directory that does not exist, or an invalid context (non-Named
// entries, duplicate names). Cancellation of ctx propagates into any pending
// adapter call.
func (e *Engine) Evaluate(ctx context.Context, source string, opts ...Option) (value.Value, error) {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	if cfg.workDir != "" {
		info, err := os.Stat(cfg.workDir)
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid working directory %q: %w", cfg.workDir, err)
		}
		if !info.IsDir() {
			return value.Value{}, fmt.Errorf("invalid working directory %q: not a directory", cfg.workDir)
		}
	}

	bindings, err := e.buildBindings(cfg.context)
	if err != nil {
		return value.Value{}, err
	}

	prog, err := interp.Parse(source)
	if err != nil {
		return value.Value{}, errors.Wrap(err, "parse")
	}

	if e.logger != nil {
		e.logger.Debug("evaluation start", "bindings", len(bindings), "workdir", cfg.workDir)
	}
	start := time.Now()

	out, err := interp.Run(ctx, prog, bindings, interp.Config{
		WorkDir: cfg.workDir,
		Logger:  e.logger,
	})

	if e.logger != nil {
		e.logger.Debug("evaluation done", "duration", time.Since(start), "err", err)
	}
	if err != nil {
		return value.Value{}, err
	}
	return out, nil
}

// EvaluateOrThrow evaluates source and applies the outcome convention: the
// payload of a successful pair is returned directly, a failed pair becomes a
// *RuntimeFailure carrying the thrown value unchanged, and a terminal value
// that is not a (boolean, payload) pair at all becomes a *ResultShapeError.
func (e *Engine) EvaluateOrThrow(ctx context.Context, source string, opts ...Option) (value.Value, error) {
	out, err := e.Evaluate(ctx, source, opts...)
	if err != nil {
		return value.Value{}, err
	}
	return unwrapOutcome(out)
}

// unwrapOutcome decomposes a terminal value per the tagged-pair convention.
func unwrapOutcome(out value.Value) (value.Value, error) {
	if !out.IsPair() {
		return value.Value{}, &ResultShapeError{Got: out}
	}
	flag, err := out.Key()
	if err != nil {
		return value.Value{}, &ResultShapeError{Got: out}
	}
	ok, err := flag.AsBool()
	if err != nil {
		return value.Value{}, &ResultShapeError{Got: out}
	}
	payload, _ := out.Value()

	if ok {
		return payload, nil
	}
	return value.Value{}, &RuntimeFailure{Value: payload}
}

// buildBindings merges engine builtins with the per-call context. Context
// entries shadow builtins by name; duplicate names within the caller's own
// context are rejected as a caller error since the evaluator does not define
// shadowing among peers.
func (e *Engine) buildBindings(ctx []value.Value) ([]value.Value, error) {
	seen := make(map[string]bool, len(ctx))
	for i, entry := range ctx {
		name, err := entry.Name()
		if err != nil {
			return nil, fmt.Errorf("context entry %d is not a named value: %w", i, err)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate context entry %q", name)
		}
		seen[name] = true
	}

	var bindings []value.Value
	if e.builtins != nil {
		for _, b := range e.builtins.Context() {
			name, _ := b.Name()
			if !seen[name] {
				bindings = append(bindings, b)
			}
		}
	}
	return append(bindings, ctx...), nil
}
