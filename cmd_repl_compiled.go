package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"ember/compiler"
	"ember/desugar"
	"ember/errs"
	"ember/lexer"
	"ember/parser"
	"ember/token"
	"ember/vm"

	"github.com/google/subcommands"
)

type replCompiledCmd struct {
	diassemble   bool
	dumpBytecode bool
	dumpAST      bool
}

func (*replCompiledCmd) Name() string { return "cRepl" }
func (*replCompiledCmd) Synopsis() string {
	return "Start a REPL session backed by the bytecode compiler and VM"
}
func (*replCompiledCmd) Usage() string {
	return `cRepl:
  Start an interactive REPL that compiles each statement to bytecode and
  runs it on the stack VM.
`
}

func (cmd *replCompiledCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.diassemble, "diassemble", false, "print the disassembled bytecode for each line")
	f.BoolVar(&cmd.dumpBytecode, "dumpBytecode", false, "write the encoded bytecode as hex to a .nic file")
	f.BoolVar(&cmd.dumpAST, "dumpAST", false, "write the AST as JSON to ast.json")
	f.BoolVar(&cmd.diassemble, "di", false, "shorthand for diassemble")
	f.BoolVar(&cmd.dumpBytecode, "du", false, "shorthand for dumpBytecode")
	f.BoolVar(&cmd.dumpAST, "da", false, "shorthand for dumpAST")
}

func (cmd *replCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("\nWelcome to ember (compiled)!")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	machine := vm.New()
	out := bufio.NewWriter(os.Stdout)
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			fmt.Fprint(os.Stdout, ">>> ")
		} else {
			fmt.Fprint(os.Stdout, "... ")
		}
		scanned := scanner.Scan()
		if !scanned {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
				return subcommands.ExitFailure
			}
			return subcommands.ExitSuccess
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		lex := lexer.New(source)
		tokens, err := lex.Scan()
		if err != nil {
			reportError(lex, err)
			buffer.Reset()
			continue
		}

		if !isInputReady(tokens) {
			continue
		}

		statements, err := parser.Make(tokens).Parse()
		if err != nil {
			// A syntax error at the position of the EOF token means the
			// statement isn't finished yet — keep accumulating lines.
			if errAtEOF(err, tokens[len(tokens)-1]) {
				continue
			}
			reportError(lex, err)
			buffer.Reset()
			continue
		}
		statements = desugar.Desugar(statements)

		if cmd.dumpAST {
			if err := parser.WriteASTJSONToFile(statements, "ast.json"); err != nil {
				fmt.Fprintf(os.Stderr, "dump AST error: %s\n", err.Error())
			}
		}

		// Each line is compiled against a fresh global table, and each Run
		// resets the VM's globals vector, so a compiled line only ever sees
		// definitions made within it.
		bc, err := compiler.Compile(statements, out)
		if err != nil {
			reportError(lex, err)
			buffer.Reset()
			continue
		}

		if cmd.diassemble {
			fmt.Fprint(os.Stdout, compiler.Disassemble(bc))
		}
		if cmd.dumpBytecode {
			if err := dumpBytecodeHex(bc, "bytecode.nic"); err != nil {
				fmt.Fprintf(os.Stderr, "dump bytecode error: %s\n", err.Error())
			}
		}

		if err := machine.Run(bc); err != nil {
			reportError(lex, err)
			buffer.Reset()
			continue
		}
		out.Flush()
		buffer.Reset()
	}
}

// isInputReady reports whether the accumulated tokens form a complete
// statement: braces must balance, and the last non-EOF token must not be
// one that obviously expects a continuation.
func isInputReady(tokens []token.Token) bool {
	braceBalance := 0
	for _, tok := range tokens {
		switch tok.Type {
		case token.LCUR:
			braceBalance++
		case token.RCUR:
			braceBalance--
		}
	}
	if braceBalance > 0 {
		return false
	}

	last := lastNonEOF(tokens)
	if last == nil {
		return true
	}

	switch last.Type {
	case token.ASSIGN,
		token.ADD,
		token.SUB,
		token.MULT,
		token.DIV,
		token.BANG,
		token.EQUAL_EQUAL,
		token.NOT_EQUAL,
		token.LESS,
		token.LESS_EQUAL,
		token.LARGER,
		token.LARGER_EQUAL,
		token.COMMA,
		token.LPA,
		token.LCUR,
		token.IF,
		token.ELSE,
		token.WHILE,
		token.FOR,
		token.FUNCTION,
		token.RETURN,
		token.VAR,
		token.AND,
		token.OR:
		return false
	}

	return true
}

// lastNonEOF returns the last non-EOF token, or nil if there is none.
func lastNonEOF(tokens []token.Token) *token.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Type != token.EOF {
			return &tokens[i]
		}
	}
	return nil
}

// errAtEOF reports whether err is a positioned parse error pointing at the
// EOF token, which signals unfinished input rather than a real mistake.
func errAtEOF(err error, eof token.Token) bool {
	positioned, ok := err.(errs.Positioned)
	if !ok {
		return false
	}
	pos := positioned.Position()
	return pos.Line == eof.Pos.Line && pos.Character == eof.Pos.Character
}
