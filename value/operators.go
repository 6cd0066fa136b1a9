package value

import (
	"math/big"
	"strings"
)

// Add: int+int -> int; int+string or string+int -> string (concat, numeric
// side stringified); string+string -> string concat.
func Add(l, r Value) (Value, error) {
	if li, ok := l.(Integer); ok {
		if ri, ok := r.(Integer); ok {
			return Integer{V: new(big.Int).Add(li.V, ri.V)}, nil
		}
		if rs, ok := r.(String); ok {
			return String{V: li.V.String() + rs.V}, nil
		}
	}
	if ls, ok := l.(String); ok {
		if ri, ok := r.(Integer); ok {
			return String{V: ls.V + ri.V.String()}, nil
		}
		if rs, ok := r.(String); ok {
			return String{V: ls.V + rs.V}, nil
		}
	}
	return nil, &UnsupportedOperands{Op: "+", Left: l.Kind(), Right: r.Kind()}
}

// Sub, Div, Mod: integer only.
func Sub(l, r Value) (Value, error) {
	li, lok := l.(Integer)
	ri, rok := r.(Integer)
	if !lok || !rok {
		return nil, &UnsupportedOperands{Op: "-", Left: l.Kind(), Right: r.Kind()}
	}
	return Integer{V: new(big.Int).Sub(li.V, ri.V)}, nil
}

func Div(l, r Value) (Value, error) {
	li, lok := l.(Integer)
	ri, rok := r.(Integer)
	if !lok || !rok {
		return nil, &UnsupportedOperands{Op: "/", Left: l.Kind(), Right: r.Kind()}
	}
	if ri.V.Sign() == 0 {
		return nil, &DivideByZero{}
	}
	return Integer{V: new(big.Int).Quo(li.V, ri.V)}, nil
}

func Mod(l, r Value) (Value, error) {
	li, lok := l.(Integer)
	ri, rok := r.(Integer)
	if !lok || !rok {
		return nil, &UnsupportedOperands{Op: "%", Left: l.Kind(), Right: r.Kind()}
	}
	if ri.V.Sign() == 0 {
		return nil, &DivideByZero{}
	}
	return Integer{V: new(big.Int).Rem(li.V, ri.V)}, nil
}

// Mul: int*int -> int; int*string or string*int -> repeated string (count
// must be >= 0).
func Mul(l, r Value) (Value, error) {
	if li, ok := l.(Integer); ok {
		if ri, ok := r.(Integer); ok {
			return Integer{V: new(big.Int).Mul(li.V, ri.V)}, nil
		}
		if rs, ok := r.(String); ok {
			return repeatString(rs.V, li.V)
		}
	}
	if ls, ok := l.(String); ok {
		if ri, ok := r.(Integer); ok {
			return repeatString(ls.V, ri.V)
		}
	}
	return nil, &UnsupportedOperands{Op: "*", Left: l.Kind(), Right: r.Kind()}
}

func repeatString(s string, count *big.Int) (Value, error) {
	if count.Sign() < 0 {
		return nil, &NegativeRepeat{}
	}
	if !count.IsInt64() {
		return nil, &NegativeRepeat{}
	}
	return String{V: strings.Repeat(s, int(count.Int64()))}, nil
}

// Relationals: integer only.
func Less(l, r Value) (Value, error)         { return compareInts("<", l, r, func(c int) bool { return c < 0 }) }
func LessEqual(l, r Value) (Value, error)    { return compareInts("<=", l, r, func(c int) bool { return c <= 0 }) }
func Greater(l, r Value) (Value, error)      { return compareInts(">", l, r, func(c int) bool { return c > 0 }) }
func GreaterEqual(l, r Value) (Value, error) { return compareInts(">=", l, r, func(c int) bool { return c >= 0 }) }

func compareInts(op string, l, r Value, pred func(int) bool) (Value, error) {
	li, lok := l.(Integer)
	ri, rok := r.(Integer)
	if !lok || !rok {
		return nil, &UnsupportedOperands{Op: op, Left: l.Kind(), Right: r.Kind()}
	}
	return Bool{V: pred(li.V.Cmp(ri.V))}, nil
}

// Eq/NotEq: defined when both operands share a kind among integer, bool,
// string; otherwise a CrossKindEquality type error.
func Eq(l, r Value) (Value, error) {
	eq, err := equal(l, r)
	if err != nil {
		return nil, err
	}
	return Bool{V: eq}, nil
}

func NotEq(l, r Value) (Value, error) {
	eq, err := equal(l, r)
	if err != nil {
		return nil, err
	}
	return Bool{V: !eq}, nil
}

func equal(l, r Value) (bool, error) {
	switch lv := l.(type) {
	case Integer:
		rv, ok := r.(Integer)
		if !ok {
			return false, &CrossKindEquality{Left: l.Kind(), Right: r.Kind()}
		}
		return lv.V.Cmp(rv.V) == 0, nil
	case Bool:
		rv, ok := r.(Bool)
		if !ok {
			return false, &CrossKindEquality{Left: l.Kind(), Right: r.Kind()}
		}
		return lv.V == rv.V, nil
	case String:
		rv, ok := r.(String)
		if !ok {
			return false, &CrossKindEquality{Left: l.Kind(), Right: r.Kind()}
		}
		return lv.V == rv.V, nil
	default:
		return false, &CrossKindEquality{Left: l.Kind(), Right: r.Kind()}
	}
}

// Unary -: integer negate. Unary +: integer identity. Unary !: bool not.
func Neg(v Value) (Value, error) {
	iv, ok := v.(Integer)
	if !ok {
		return nil, &TypeMismatch{Expected: "integer", Got: v.Kind()}
	}
	return Integer{V: new(big.Int).Neg(iv.V)}, nil
}

func Pos(v Value) (Value, error) {
	iv, ok := v.(Integer)
	if !ok {
		return nil, &TypeMismatch{Expected: "integer", Got: v.Kind()}
	}
	return Integer{V: new(big.Int).Set(iv.V)}, nil
}

func Not(v Value) (Value, error) {
	bv, ok := v.(Bool)
	if !ok {
		return nil, &TypeMismatch{Expected: "bool", Got: v.Kind()}
	}
	return Bool{V: !bv.V}, nil
}
