package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"ember/desugar"
	"ember/interpreter"
	"ember/lexer"
	"ember/parser"

	"github.com/google/subcommands"
)

// runCmd executes a source file with the tree-walk interpreter.
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a source file with the tree-walk interpreter" }
func (*runCmd) Usage() string {
	return `run <file>:
  Lex, parse, desugar, and interpret a program directly against the AST.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "missing source file")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	lex := lexer.New(string(data))
	tokens, err := lex.Scan()
	if err != nil {
		reportError(lex, err)
		return subcommands.ExitFailure
	}

	stmts, err := parser.Make(tokens).Parse()
	if err != nil {
		reportError(lex, err)
		return subcommands.ExitFailure
	}
	stmts = desugar.Desugar(stmts)

	out := bufio.NewWriter(os.Stdout)
	interp := interpreter.Make(out)
	if err := interp.Interpret(stmts); err != nil {
		reportError(lex, err)
		out.Flush()
		return subcommands.ExitFailure
	}
	out.Flush()
	return subcommands.ExitSuccess
}
