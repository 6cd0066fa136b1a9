package builtins

import (
	"bufio"
	"strings"
	"testing"

	"ember/value"
)

func capture(t *testing.T, run func(table map[string]value.NativeFunction) error) string {
	t.Helper()
	var sb strings.Builder
	w := bufio.NewWriter(&sb)
	if err := run(Table(w)); err != nil {
		t.Fatalf("native call failed: %v", err)
	}
	w.Flush()
	return sb.String()
}

func TestPrintFormatsByKind(t *testing.T) {
	got := capture(t, func(table map[string]value.NativeFunction) error {
		_, err := table["print"].Fn([]value.Value{
			value.NewInteger(42),
			value.Bool{V: true},
			value.String{V: "hi"},
			value.Function{},
			value.NativeFunction{},
		})
		return err
	})
	want := "42truehi<function><native function>"
	if got != want {
		t.Errorf("print output = %q, want %q", got, want)
	}
}

func TestPrintlnAppendsNewline(t *testing.T) {
	got := capture(t, func(table map[string]value.NativeFunction) error {
		_, err := table["println"].Fn([]value.Value{value.NewInteger(7)})
		return err
	})
	if got != "7\n" {
		t.Errorf("println output = %q, want %q", got, "7\n")
	}
}

func TestSpaceAndPlotX(t *testing.T) {
	got := capture(t, func(table map[string]value.NativeFunction) error {
		if _, err := table["space"].Fn(nil); err != nil {
			return err
		}
		if _, err := table["plot_x"].Fn([]value.Value{value.Bool{V: true}}); err != nil {
			return err
		}
		_, err := table["plot_x"].Fn([]value.Value{value.Bool{V: false}})
		return err
	})
	if got != " x " {
		t.Errorf("output = %q, want %q", got, " x ")
	}
}

func TestPlotXRejectsNonBool(t *testing.T) {
	var sb strings.Builder
	table := Table(bufio.NewWriter(&sb))
	if _, err := table["plot_x"].Fn([]value.Value{value.NewInteger(1)}); err == nil {
		t.Fatal("expected an error for a non-bool plot_x argument")
	}
}
