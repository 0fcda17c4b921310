package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shallot-lang/shallot/engine"
	"github.com/shallot-lang/shallot/hostcall"
)

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate a script",
	Long: `Evaluate a shallot script to completion and print the result.

Source can be provided via:
  - File argument: shallot eval script.sha
  - Inline flag: shallot eval -c 'return 1 + 2;'
  - Stdin: echo 'return 1 + 2;' | shallot eval`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	addEvalFlags(evalCmd)
	rootCmd.AddCommand(evalCmd)
}

func addEvalFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Script to evaluate")
	cmd.Flags().String("workdir", "", "Working directory for @import resolution")
	cmd.Flags().Duration("timeout", 30*time.Second, "Evaluation timeout")
	cmd.Flags().Bool("raw", false, "Print the raw outcome pair instead of unwrapping it")
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	code, _ := cmd.Flags().GetString("code")
	switch {
	case code != "":
		return code, nil
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read script: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}

func newEngine(cmd *cobra.Command) *engine.Engine {
	reg := hostcall.NewRegistry()
	reg.Register("time_now", hostcall.TimeNow())
	hostcall.NewKV().Register(reg)

	opts := []engine.EngineOption{engine.WithBuiltins(reg)}
	if debug, _ := cmd.Root().PersistentFlags().GetBool("debug"); debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, engine.WithLogger(logger))
	}
	return engine.New(opts...)
}

func runEval(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	if source == "" {
		return fmt.Errorf("no script: pass a file, -c, or stdin")
	}

	workdir, _ := cmd.Flags().GetString("workdir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	raw, _ := cmd.Flags().GetBool("raw")

	var opts []engine.Option
	if workdir != "" {
		opts = append(opts, engine.WithWorkDir(workdir))
	}
	if timeout > 0 {
		opts = append(opts, engine.WithTimeout(timeout))
	}

	eng := newEngine(cmd)
	ctx := context.Background()

	if raw {
		out, err := eng.Evaluate(ctx, source, opts...)
		if err != nil {
			return err
		}
		fmt.Println(out.Repr())
		return nil
	}

	res, err := eng.EvaluateOrThrow(ctx, source, opts...)
	if err != nil {
		return err
	}
	fmt.Println(res.Repr())
	return nil
}
