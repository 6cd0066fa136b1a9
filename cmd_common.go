package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"ember/compiler"
	"ember/diag"
	"ember/errs"
	"ember/lexer"
)

// reportError renders err through the diagnostic formatter when it carries
// a source position, or prints it plainly otherwise; compiled bytecode
// failures, for instance, never carry one.
func reportError(lex *lexer.Lexer, err error) {
	if rt, ok := err.(*errs.RuntimeError); ok && !rt.HasPos {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	if positioned, ok := err.(errs.Positioned); ok {
		fmt.Fprintln(os.Stderr, diag.Format(lex.Cursor(), positioned))
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// dumpBytecodeHex writes bc's raw instruction stream to path as hex text,
// one instruction stream per file.
func dumpBytecodeHex(bc *compiler.Bytecode, path string) error {
	encoded := hex.EncodeToString(bc.Instructions)
	return os.WriteFile(path, []byte(encoded), 0o644)
}
