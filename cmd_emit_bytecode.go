package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ember/compiler"
	"ember/desugar"
	"ember/lexer"
	"ember/parser"

	"github.com/google/subcommands"
)

// emitBytecodeCmd compiles a source file and writes out its bytecode, either
// disassembled as text or encoded as hex, without running it.
type emitBytecodeCmd struct {
	diassemble   bool
	dumpBytecode bool
	filePath     string
}

func (*emitBytecodeCmd) Name() string { return "emit" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Emit the bytecode representation of a source file"
}
func (*emitBytecodeCmd) Usage() string {
	return `emit <file>:
  Compile a source file to bytecode without running it.
`
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.diassemble, "diassemble", true, "disassemble the bytecode and write it to a .dnic file")
	f.BoolVar(&cmd.dumpBytecode, "dumpBytecode", true, "write the encoded bytecode as hexadecimal to a .nic file")
	f.StringVar(&cmd.filePath, "filePath", "", "base path to write output files to (defaults to the source file's path without its extension)")
}

func (r *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "missing source file")
		return subcommands.ExitUsageError
	}
	sourceFile := args[0]

	data, err := os.ReadFile(sourceFile)
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

	statements, err := parser.Make(tokens).Parse()
	if err != nil {
		reportError(lex, err)
		return subcommands.ExitFailure
	}
	statements = desugar.Desugar(statements)

	bc, err := compiler.Compile(statements, bufio.NewWriter(io.Discard))
	if err != nil {
		reportError(lex, err)
		return subcommands.ExitFailure
	}

	base := r.filePath
	if base == "" {
		base = strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile))
	}

	if r.diassemble {
		if err := os.WriteFile(base+".dnic", []byte(compiler.Disassemble(bc)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "bytecode disassemble error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if r.dumpBytecode {
		if err := dumpBytecodeHex(bc, base+".nic"); err != nil {
			fmt.Fprintf(os.Stderr, "dump bytecode error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
