package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"ember/compiler"
	"ember/desugar"
	"ember/lexer"
	"ember/parser"
	"ember/vm"

	"github.com/google/subcommands"
)

// runCompiledCmd executes a source file via the bytecode compiler and stack
// VM.
type runCompiledCmd struct{}

func (*runCompiledCmd) Name() string { return "runC" }
func (*runCompiledCmd) Synopsis() string {
	return "Execute a source file with the bytecode compiler and VM"
}
func (*runCompiledCmd) Usage() string {
	return `runC <file>:
  Lex, parse, desugar, compile to bytecode, and run it on the stack VM.
`
}
func (r *runCompiledCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	bc, err := compiler.Compile(stmts, out)
	if err != nil {
		reportError(lex, err)
		return subcommands.ExitFailure
	}

	if err := vm.New().Run(bc); err != nil {
		reportError(lex, err)
		out.Flush()
		return subcommands.ExitFailure
	}
	out.Flush()
	return subcommands.ExitSuccess
}
