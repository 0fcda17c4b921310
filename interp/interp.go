package interp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/shallot-lang/shallot/value"
)

const maxImportDepth = 16

// Config carries per-evaluation settings from the embedding layer.
type Config struct {
	// WorkDir anchors @import resolution. Empty disables imports.
	WorkDir string
	// Logger receives debug events. Nil disables logging.
	Logger *slog.Logger
}

// returnSignal and thrownError travel the Go error path to unwind statement
// execution; Run translates them into the terminal outcome pair.
type returnSignal struct{ val value.Value }

func (*returnSignal) Error() string { return "return" }

type thrownError struct{ val value.Value }

func (e *thrownError) Error() string { return "raised: " + e.val.Repr() }

// hostFault marks failures that belong to the host embedding layer (bad
// imports, cancellation) and must not be folded into the script's error
// domain.
type hostFault struct{ err error }

func (e *hostFault) Error() string { return e.err.Error() }
func (e *hostFault) Unwrap() error { return e.err }

// Run executes a parsed program with the given context bindings (Named
// values) and returns the terminal outcome: Pair(true, result) for a normal
// return, Pair(false, thrown value) when the script raises or a host call
// fails. The returned error is host-level only: cancellation or a broken
// import.
func Run(ctx context.Context, prog *Program, bindings []value.Value, cfg Config) (value.Value, error) {
	env := make(map[string]value.Value, len(bindings))
	for _, b := range bindings {
		name, err := b.Name()
		if err != nil {
			return value.Value{}, errors.Wrap(err, "context entry is not a named value")
		}
		v, _ := b.Binding()
		env[name] = v
	}

	ev := &evaluator{env: env, cfg: cfg}
	return ev.run(ctx, prog)
}

type evaluator struct {
	env         map[string]value.Value
	cfg         Config
	importDepth int
}

func (ev *evaluator) run(ctx context.Context, prog *Program) (value.Value, error) {
	for _, st := range prog.Stmts {
		if err := ctx.Err(); err != nil {
			return value.Value{}, err
		}
		if err := ev.execStmt(ctx, st); err != nil {
			return ev.settle(ctx, err)
		}
	}
	return value.Pair(value.Bool(true), value.Null()), nil
}

// settle classifies an execution error: control signals become the outcome
// pair, host faults and cancellation propagate, and anything else is a
// script-domain failure folded into a thrown value.
func (ev *evaluator) settle(ctx context.Context, err error) (value.Value, error) {
	var ret *returnSignal
	if errors.As(err, &ret) {
		return value.Pair(value.Bool(true), ret.val), nil
	}
	var thr *thrownError
	if errors.As(err, &thr) {
		return value.Pair(value.Bool(false), thr.val), nil
	}
	var hf *hostFault
	if errors.As(err, &hf) {
		return value.Value{}, hf.err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return value.Value{}, err
	}
	return value.Pair(value.Bool(false), value.String(err.Error())), nil
}

func (ev *evaluator) execStmt(ctx context.Context, st Stmt) error {
	switch s := st.(type) {
	case *RequireStmt:
		if _, ok := ev.env[s.Name]; !ok {
			return &thrownError{val: value.String(
				fmt.Sprintf("required binding %q not provided", s.Name))}
		}
		return nil

	case *ImportStmt:
		v, err := ev.runImport(ctx, s)
		if err != nil {
			return err
		}
		ev.env[s.Name] = v
		return nil

	case *AssignStmt:
		v, err := ev.evalExpr(ctx, s.Value)
		if err != nil {
			return err
		}
		ev.env[s.Name] = v
		return nil

	case *ReturnStmt:
		if s.Value == nil {
			return &returnSignal{val: value.Null()}
		}
		v, err := ev.evalExpr(ctx, s.Value)
		if err != nil {
			return err
		}
		return &returnSignal{val: v}

	case *RaiseStmt:
		v, err := ev.evalExpr(ctx, s.Value)
		if err != nil {
			return err
		}
		return &thrownError{val: v}

	case *ExprStmt:
		_, err := ev.evalExpr(ctx, s.Value)
		return err
	}
	return fmt.Errorf("unknown statement %T", st)
}

func (ev *evaluator) runImport(ctx context.Context, s *ImportStmt) (value.Value, error) {
	if ev.cfg.WorkDir == "" {
		return value.Value{}, &hostFault{err: errors.Errorf(
			"line %d: @import %q requires a working directory", s.Line, s.Path)}
	}
	if ev.importDepth >= maxImportDepth {
		return value.Value{}, &hostFault{err: errors.Errorf(
			"line %d: import depth exceeds %d, likely an import cycle", s.Line, maxImportDepth)}
	}

	full := filepath.Join(ev.cfg.WorkDir, filepath.Clean(s.Path))
	src, err := os.ReadFile(full)
	if err != nil {
		return value.Value{}, &hostFault{err: errors.Wrapf(err, "line %d: import %q", s.Line, s.Path)}
	}
	prog, err := Parse(string(src))
	if err != nil {
		return value.Value{}, &hostFault{err: errors.Wrapf(err, "import %q", s.Path)}
	}

	if ev.cfg.Logger != nil {
		ev.cfg.Logger.Debug("import", "path", s.Path, "depth", ev.importDepth)
	}

	// Imported files evaluate in a fresh environment anchored at the
	// directory of the imported file, so nested imports resolve relative to
	// their own file.
	sub := &evaluator{
		env:         make(map[string]value.Value),
		cfg:         Config{WorkDir: filepath.Dir(full), Logger: ev.cfg.Logger},
		importDepth: ev.importDepth + 1,
	}
	out, err := sub.run(ctx, prog)
	if err != nil {
		return value.Value{}, &hostFault{err: errors.Wrapf(err, "import %q", s.Path)}
	}

	ok, payload, err := decompose(out)
	if err != nil {
		return value.Value{}, &hostFault{err: errors.Wrapf(err, "import %q", s.Path)}
	}
	if !ok {
		// A raise inside the imported file propagates as a thrown value.
		return value.Value{}, &thrownError{val: payload}
	}
	return payload, nil
}

func decompose(outcome value.Value) (bool, value.Value, error) {
	k, err := outcome.Key()
	if err != nil {
		return false, value.Value{}, err
	}
	ok, err := k.AsBool()
	if err != nil {
		return false, value.Value{}, err
	}
	v, _ := outcome.Value()
	return ok, v, nil
}
