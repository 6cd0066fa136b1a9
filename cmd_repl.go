package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"ember/desugar"
	"ember/interpreter"
	"ember/lexer"
	"ember/parser"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
)

// replCmd drives an interactive tree-walk session: every line is lexed,
// parsed, desugared and interpreted against a single interpreter instance
// kept alive across the whole session, so variables and functions defined
// on one line are visible on the next.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive tree-walk session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL backed by the tree-walk interpreter.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func repl(out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      ">>> ",
		HistoryFile: "/tmp/.ember_history",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	w := bufio.NewWriter(out)
	defer w.Flush()
	interp := interpreter.Make(w)

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}

		lex := lexer.New(line)
		tokens, err := lex.Scan()
		if err != nil {
			reportError(lex, err)
			continue
		}
		stmts, err := parser.Make(tokens).Parse()
		if err != nil {
			reportError(lex, err)
			continue
		}
		stmts = desugar.Desugar(stmts)
		if err := interp.Interpret(stmts); err != nil {
			reportError(lex, err)
		}
		w.Flush()
	}
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Welcome to ember!")
	if err := repl(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
