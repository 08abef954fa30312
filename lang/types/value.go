// Package types defines the runtime value model the evaluator manipulates:
// the Value interface every value implements, the primitive value kinds,
// guards, slots and bindings, the two built-in collections, and the
// sealed-exception representation thrown by "throw" and caught by
// try/catch. One Go type per runtime value kind, each implementing a
// small common Value interface, with verb-and-arity method dispatch
// standing in for operator overloading.
package types

// Value is implemented by every runtime value: primitives, guards, slots,
// bindings, collections, exceptions, and (in package machine) user-defined
// objects built from an object literal's Script.
type Value interface {
	// String returns the value's printed representation.
	String() string

	// TypeName returns a short, user-facing name for the value's type, used
	// in guard-coercion and audit failure messages.
	TypeName() string

	// Call dispatches a verb-and-arity message to the value. Most primitives implement only a handful of verbs
	// and return a Thrown error for anything else.
	Call(t *Thread, verb string, args []Value, namedArgs map[string]Value) (Value, error)
}

// Bool is the truth-value type. Unlike most values, Bool is not wrapped in
// a pointer: its zero value (false) is a valid Value.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) TypeName() string { return "Bool" }
func (b Bool) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "not":
		return Bool(!b), nil
	case "and":
		o, err := asBool(args, verb)
		if err != nil {
			return nil, err
		}
		return Bool(bool(b) && bool(o)), nil
	case "or":
		o, err := asBool(args, verb)
		if err != nil {
			return nil, err
		}
		return Bool(bool(b) || bool(o)), nil
	case "xor":
		o, err := asBool(args, verb)
		if err != nil {
			return nil, err
		}
		return Bool(bool(b) != bool(o)), nil
	case "op__cmp":
		o, err := asBool(args, verb)
		if err != nil {
			return nil, err
		}
		return Int64(cmpBool(bool(b), bool(o))), nil
	}
	return nil, NewThrown(verb + "/" + itoa(len(args)) + " not understood by a Bool")
}

func asBool(args []Value, verb string) (Bool, error) {
	if len(args) != 1 {
		return false, NewThrown(verb + ": expected 1 argument")
	}
	o, ok := args[0].(Bool)
	if !ok {
		return false, NewThrown(verb + ": expected a Bool argument")
	}
	return o, nil
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
