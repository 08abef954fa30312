package types

import "fmt"

// Guard is any Value used in a pattern's Guard slot. Coercing a specimen
// against a guard is just a "coerce/2" call (specimen, ejector) — Guard
// carries no methods of its own beyond what Value already provides; it
// exists purely to name the role a Value is playing at a call site.
type Guard = Value

// Coerce calls guard.coerce(specimen, ej) if guard is non-nil, returning
// specimen unchanged when guard is nil (an unguarded pattern). ej, when
// non-nil, is passed through for the guard to call on failure instead of
// throwing; when ej is nil a failed coercion returns a SealedException.
func Coerce(t *Thread, guard Value, specimen Value, ej Value) (Value, error) {
	if guard == nil {
		return specimen, nil
	}
	args := []Value{specimen, NullValue}
	if ej != nil {
		args[1] = ej
	}
	return guard.Call(t, "coerce", args, nil)
}

// PrimitiveGuard is a built-in guard that accepts values of a single Go
// concrete type, the shape every base-layer type guard (Int, Str, Double,
// Char, Bool, Any) takes.
type PrimitiveGuard struct {
	Name  string
	Check func(Value) bool
}

func (g *PrimitiveGuard) String() string   { return g.Name }
func (g *PrimitiveGuard) TypeName() string { return "Guard" }
func (g *PrimitiveGuard) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "coerce":
		if len(args) != 2 {
			return nil, NewThrown("coerce: expected 2 arguments")
		}
		specimen := args[0]
		if g.Check(specimen) {
			return specimen, nil
		}
		msg := fmt.Sprintf("%s: %s does not match guard %s", g.Name, specimen.TypeName(), g.Name)
		if ej, ok := args[1].(*Ejector); ok {
			return ej.Fire(t, Str(msg))
		}
		return nil, NewThrown(msg)
	}
	return nil, NewThrown(verb + " not understood by a Guard")
}

// AnyGuardValue accepts every specimen. The evaluator uses it where it
// needs an explicit guard but none was declared: the guard stored on an
// unguarded binding pattern's binding, on the binding synthesized for a
// value-severity name, and an object's guard-auditor when none is given.
// Unguarded patterns themselves coerce with a nil guard (see Coerce).
var AnyGuardValue = &PrimitiveGuard{Name: "Any", Check: func(Value) bool { return true }}

var (
	IntGuard    = &PrimitiveGuard{Name: "Int", Check: func(v Value) bool { _, ok := v.(Int64); if ok { return true }; _, ok = v.(*BigInt); return ok }}
	StrGuard    = &PrimitiveGuard{Name: "Str", Check: func(v Value) bool { _, ok := v.(Str); return ok }}
	DoubleGuard = &PrimitiveGuard{Name: "Double", Check: func(v Value) bool { _, ok := v.(Double); return ok }}
	CharGuard   = &PrimitiveGuard{Name: "Char", Check: func(v Value) bool { _, ok := v.(Char); return ok }}
	BoolGuard   = &PrimitiveGuard{Name: "Bool", Check: func(v Value) bool { _, ok := v.(Bool); return ok }}
	VoidGuard   = &PrimitiveGuard{Name: "Void", Check: func(v Value) bool { return true }}
)
