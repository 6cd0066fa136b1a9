// Package builtins implements the host-provided native function table:
// print, println, space, plot_x. Both execution engines register these
// same value.NativeFunction instances into the global scope/globals
// vector; the language core never knows what is behind them.
package builtins

import (
	"bufio"
	"fmt"

	"ember/errs"
	"ember/value"
)

// Names lists every native function in table-registration order, so both
// engines can iterate it identically when sizing globals.
var Names = []string{"print", "println", "space", "plot_x"}

// Table builds fresh value.NativeFunction instances writing to w. A fresh
// table is built per run rather than shared globally, so tests can capture
// output without touching package state.
func Table(w *bufio.Writer) map[string]value.NativeFunction {
	return map[string]value.NativeFunction{
		"print":   {Name: "print", Fn: printFn(w)},
		"println": {Name: "println", Fn: printlnFn(w)},
		"space":   {Name: "space", Fn: spaceFn(w)},
		"plot_x":  {Name: "plot_x", Fn: plotXFn(w)},
	}
}

// printFn writes each argument's display form with no separator and no
// trailing newline.
func printFn(w *bufio.Writer) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		for _, a := range args {
			fmt.Fprint(w, a.String())
		}
		return value.Void{}, nil
	}
}

// printlnFn is print followed by a newline.
func printlnFn(w *bufio.Writer) func([]value.Value) (value.Value, error) {
	p := printFn(w)
	return func(args []value.Value) (value.Value, error) {
		if _, err := p(args); err != nil {
			return nil, err
		}
		fmt.Fprintln(w)
		return value.Void{}, nil
	}
}

// spaceFn writes a single space and takes no arguments.
func spaceFn(w *bufio.Writer) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 0 {
			return nil, errs.NewRuntimeError(fmt.Sprintf("space expects 0 arguments, got %d", len(args)))
		}
		fmt.Fprint(w, " ")
		return value.Void{}, nil
	}
}

// plotXFn writes 'x' when its single bool argument is true, a space
// otherwise.
func plotXFn(w *bufio.Writer) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, errs.NewRuntimeError(fmt.Sprintf("plot_x expects 1 argument, got %d", len(args)))
		}
		b, ok := args[0].(value.Bool)
		if !ok {
			return nil, errs.NewRuntimeError(fmt.Sprintf("plot_x expects a bool, got %s", args[0].Kind()))
		}
		if b.V {
			fmt.Fprint(w, "x")
		} else {
			fmt.Fprint(w, " ")
		}
		return value.Void{}, nil
	}
}
