package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/shallot-lang/shallot/engine"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive evaluation loop",
	Long: `Start an interactive REPL (Read-Eval-Print Loop).

Each input evaluates as a full script; end a line with \ to continue it on
the next line. The kv_* builtins persist values between inputs. Type 'exit'
or press Ctrl+D to leave.`,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().String("workdir", "", "Working directory for @import resolution")
	replCmd.Flags().String("history", "", "History file path (default: ~/.shallot_history)")
	rootCmd.AddCommand(replCmd)
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	raisedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// asScript turns a bare expression into a return statement so its result
// prints. Input already terminated with ';' runs unchanged; only the trailing
// terminator counts, so a ';' inside a string literal does not suppress the
// wrapping.
func asScript(source string) string {
	if strings.HasSuffix(strings.TrimSpace(source), ";") {
		return source
	}
	return "return " + source + ";"
}

func runRepl(cmd *cobra.Command, args []string) error {
	workdir, _ := cmd.Flags().GetString("workdir")
	historyFile, _ := cmd.Flags().GetString("history")
	if historyFile == "" {
		home, _ := os.UserHomeDir()
		historyFile = filepath.Join(home, ".shallot_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptStyle.Render("shallot> "),
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	eng := newEngine(cmd)
	var opts []engine.Option
	if workdir != "" {
		opts = append(opts, engine.WithWorkDir(workdir))
	}

	fmt.Println("shallot repl - end a line with \\ to continue, 'exit' to quit")

	var pending strings.Builder
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			pending.Reset()
			rl.SetPrompt(promptStyle.Render("shallot> "))
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if pending.Len() == 0 && (trimmed == "exit" || trimmed == "quit") {
			return nil
		}
		if strings.HasSuffix(trimmed, "\\") {
			pending.WriteString(strings.TrimSuffix(trimmed, "\\"))
			pending.WriteString("\n")
			rl.SetPrompt(promptStyle.Render("    ... "))
			continue
		}

		pending.WriteString(line)
		source := pending.String()
		pending.Reset()
		rl.SetPrompt(promptStyle.Render("shallot> "))

		if strings.TrimSpace(source) == "" {
			continue
		}
		source = asScript(source)

		res, err := eng.EvaluateOrThrow(context.Background(), source, opts...)
		switch {
		case err == nil:
			fmt.Println(resultStyle.Render(res.Repr()))
		default:
			var rf *engine.RuntimeFailure
			if errors.As(err, &rf) {
				fmt.Println(raisedStyle.Render("raised: " + rf.Value.Repr()))
			} else {
				fmt.Println(errorStyle.Render("error: " + err.Error()))
			}
		}
	}
}
