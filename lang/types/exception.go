package types

import "fmt"

// SealedException is the value thrown by "throw" and caught by try/catch.
// It carries the thrown payload plus a Trace of frame descriptions added
// through Annotate. The evaluator does not call Annotate, so exceptions it
// raises or propagates reach try/catch with an empty Trace.
type SealedException struct {
	Payload Value
	Trace   []string
}

func (e *SealedException) String() string {
	if e.Payload != nil {
		return e.Payload.String()
	}
	return "<sealed exception>"
}
func (e *SealedException) TypeName() string { return "SealedException" }
func (e *SealedException) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "eject":
		// "e.eject(ejector, null)" style re-raise convenience; not a real
		// ejector, just rethrows.
		return nil, e
	}
	return nil, NewThrown(verb + " not understood by a SealedException")
}

// Error implements the error interface so a SealedException can be returned
// directly as a Go error and propagated through Call chains.
func (e *SealedException) Error() string { return e.String() }

// Annotate appends a frame description to the trace and returns the same
// exception, accumulating a traceback as it unwinds through nested calls.
func (e *SealedException) Annotate(frame string) *SealedException {
	e.Trace = append(e.Trace, frame)
	return e
}

// Str is the built-in string value type.
type Str string

func (s Str) String() string   { return string(s) }
func (s Str) TypeName() string { return "Str" }
func (s Str) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "size":
		return Int64(len([]rune(string(s)))), nil
	case "add":
		if len(args) != 1 {
			return nil, NewThrown("add: expected 1 argument")
		}
		o, ok := args[0].(Str)
		if !ok {
			return nil, NewThrown("add: expected a Str argument")
		}
		return s + o, nil
	case "toUpperCase":
		return toUpper(s), nil
	case "toLowerCase":
		return toLower(s), nil
	}
	return nil, NewThrown(fmt.Sprintf("%s/%d not understood by a Str", verb, len(args)))
}

func toUpper(s Str) Str {
	r := []rune(string(s))
	for i, c := range r {
		if c >= 'a' && c <= 'z' {
			r[i] = c - ('a' - 'A')
		}
	}
	return Str(r)
}

func toLower(s Str) Str {
	r := []rune(string(s))
	for i, c := range r {
		if c >= 'A' && c <= 'Z' {
			r[i] = c + ('a' - 'A')
		}
	}
	return Str(r)
}

// NewThrown builds a SealedException wrapping a plain Str message, the
// common case for internal/primitive failures (guard coercion, arity
// mismatch, unknown verb).
func NewThrown(msg string) *SealedException {
	return &SealedException{Payload: Str(msg)}
}
