package vm

import "ember/value"

// frame is a single in-progress call: its register file, its own
// computation stack (LIFO of values), and an instruction pointer into the
// shared code vector.
type frame struct {
	registers []value.Value
	stack     []value.Value
	ip        int
}

func newFrame(ip int) *frame {
	return &frame{ip: ip}
}

func (f *frame) push(v value.Value) {
	f.stack = append(f.stack, v)
}

// pop removes and returns the top value. ok is false on an empty stack,
// which Return treats as "no result" rather than an error.
func (f *frame) pop() (value.Value, bool) {
	if len(f.stack) == 0 {
		return nil, false
	}
	idx := len(f.stack) - 1
	v := f.stack[idx]
	f.stack = f.stack[:idx]
	return v, true
}

func (f *frame) mustPop() (value.Value, error) {
	v, ok := f.pop()
	if !ok {
		return nil, runtimeError("stack underflow")
	}
	return v, nil
}
