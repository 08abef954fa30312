package types

import (
	"fmt"
	"math/big"
)

// Int64 is the machine-word integer kind.
type Int64 int64

func (i Int64) String() string   { return fmt.Sprintf("%d", int64(i)) }
func (i Int64) TypeName() string { return "Int" }
func (i Int64) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "add":
		o, err := asInt64(args, verb)
		if err != nil {
			return nil, err
		}
		return addInt64(int64(i), int64(o)), nil
	case "subtract":
		o, err := asInt64(args, verb)
		if err != nil {
			return nil, err
		}
		return addInt64(int64(i), -int64(o)), nil
	case "multiply":
		o, err := asInt64(args, verb)
		if err != nil {
			return nil, err
		}
		hi, lo := bits64Mul(int64(i), int64(o))
		if hi == 0 || hi == -1 {
			return Int64(lo), nil
		}
		return &BigInt{V: new(big.Int).Mul(big.NewInt(int64(i)), big.NewInt(int64(o)))}, nil
	case "floorDivide":
		o, err := asInt64(args, verb)
		if err != nil {
			return nil, err
		}
		if o == 0 {
			return nil, NewThrown("floorDivide: division by zero")
		}
		q := int64(i) / int64(o)
		if (int64(i)%int64(o) != 0) && ((int64(i) < 0) != (int64(o) < 0)) {
			q--
		}
		return Int64(q), nil
	case "mod":
		o, err := asInt64(args, verb)
		if err != nil {
			return nil, err
		}
		if o == 0 {
			return nil, NewThrown("mod: division by zero")
		}
		m := int64(i) % int64(o)
		if m != 0 && (m < 0) != (int64(o) < 0) {
			m += int64(o)
		}
		return Int64(m), nil
	case "negate":
		return addInt64(0, -int64(i)), nil
	case "abs":
		if i < 0 {
			return addInt64(0, -int64(i)), nil
		}
		return i, nil
	case "aboveZero":
		return Bool(i > 0), nil
	case "atLeastZero":
		return Bool(i >= 0), nil
	case "op__cmp":
		o, err := asInt64(args, verb)
		if err != nil {
			return nil, err
		}
		switch {
		case int64(i) < int64(o):
			return Int64(-1), nil
		case int64(i) > int64(o):
			return Int64(1), nil
		default:
			return Int64(0), nil
		}
	case "asDouble":
		return Double(float64(i)), nil
	}
	return nil, NewThrown(fmt.Sprintf("%s/%d not understood by an Int", verb, len(args)))
}

func asInt64(args []Value, verb string) (Int64, error) {
	if len(args) != 1 {
		return 0, NewThrown(verb + ": expected 1 argument")
	}
	o, ok := args[0].(Int64)
	if !ok {
		return 0, NewThrown(verb + ": expected an Int argument")
	}
	return o, nil
}

// addInt64 adds a and b, promoting to BigInt on overflow.
func addInt64(a, b int64) Value {
	sum := a + b
	if (sum > a) == (b > 0) {
		return Int64(sum)
	}
	return &BigInt{V: new(big.Int).Add(big.NewInt(a), big.NewInt(b))}
}

// bits64Mul multiplies two int64s to detect overflow of Int64
// multiplication: it returns (0, product) when the product fits in an
// int64, and (1, 0) otherwise.
func bits64Mul(a, b int64) (hi, lo int64) {
	prod := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	if prod.IsInt64() {
		return 0, prod.Int64()
	}
	return 1, 0
}

// BigInt is the arbitrary-precision integer kind, used once an Int64
// computation overflows a machine word.
type BigInt struct{ V *big.Int }

func (b *BigInt) String() string   { return b.V.String() }
func (b *BigInt) TypeName() string { return "Int" }
func (b *BigInt) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "add", "subtract", "multiply":
		o, err := asBigArg(args, verb)
		if err != nil {
			return nil, err
		}
		r := new(big.Int)
		switch verb {
		case "add":
			r.Add(b.V, o)
		case "subtract":
			r.Sub(b.V, o)
		case "multiply":
			r.Mul(b.V, o)
		}
		return normalizeBig(r), nil
	case "negate":
		return normalizeBig(new(big.Int).Neg(b.V)), nil
	case "op__cmp":
		o, err := asBigArg(args, verb)
		if err != nil {
			return nil, err
		}
		return Int64(b.V.Cmp(o)), nil
	}
	return nil, NewThrown(fmt.Sprintf("%s/%d not understood by an Int", verb, len(args)))
}

func asBigArg(args []Value, verb string) (*big.Int, error) {
	if len(args) != 1 {
		return nil, NewThrown(verb + ": expected 1 argument")
	}
	switch o := args[0].(type) {
	case Int64:
		return big.NewInt(int64(o)), nil
	case *BigInt:
		return o.V, nil
	}
	return nil, NewThrown(verb + ": expected an Int argument")
}

// normalizeBig demotes a BigInt result back to Int64 when it fits, keeping
// the machine-int/big-int split canonical after arithmetic.
func normalizeBig(v *big.Int) Value {
	if v.IsInt64() {
		return Int64(v.Int64())
	}
	return &BigInt{V: v}
}

// Double is the floating-point kind.
type Double float64

func (d Double) String() string   { return fmt.Sprintf("%g", float64(d)) }
func (d Double) TypeName() string { return "Double" }
func (d Double) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "add", "subtract", "multiply", "approxDivide":
		o, err := asDouble(args, verb)
		if err != nil {
			return nil, err
		}
		switch verb {
		case "add":
			return d + o, nil
		case "subtract":
			return d - o, nil
		case "multiply":
			return d * o, nil
		case "approxDivide":
			return d / o, nil
		}
	case "negate":
		return -d, nil
	case "abs":
		if d < 0 {
			return -d, nil
		}
		return d, nil
	case "op__cmp":
		o, err := asDouble(args, verb)
		if err != nil {
			return nil, err
		}
		switch {
		case d < o:
			return Int64(-1), nil
		case d > o:
			return Int64(1), nil
		default:
			return Int64(0), nil
		}
	}
	return nil, NewThrown(fmt.Sprintf("%s/%d not understood by a Double", verb, len(args)))
}

func asDouble(args []Value, verb string) (Double, error) {
	if len(args) != 1 {
		return 0, NewThrown(verb + ": expected 1 argument")
	}
	switch o := args[0].(type) {
	case Double:
		return o, nil
	case Int64:
		return Double(o), nil
	}
	return 0, NewThrown(verb + ": expected a Double argument")
}

// Char is the single-character kind.
type Char rune

func (c Char) String() string   { return string(rune(c)) }
func (c Char) TypeName() string { return "Char" }
func (c Char) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "asInteger":
		return Int64(c), nil
	case "op__cmp":
		if len(args) != 1 {
			return nil, NewThrown("op__cmp: expected 1 argument")
		}
		o, ok := args[0].(Char)
		if !ok {
			return nil, NewThrown("op__cmp: expected a Char argument")
		}
		switch {
		case c < o:
			return Int64(-1), nil
		case c > o:
			return Int64(1), nil
		default:
			return Int64(0), nil
		}
	}
	return nil, NewThrown(fmt.Sprintf("%s/%d not understood by a Char", verb, len(args)))
}
