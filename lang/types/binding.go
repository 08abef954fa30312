package types

// Binding is the runtime value produced by a FinalBindingPatt/VarBindingPatt
// ("&&name" access to a binding): it carries both the slot and the guard
// the binding was declared with, so code holding only the binding can
// still recover how the name was originally typed.
type Binding struct {
	Slot  Slot
	Guard Value // nilable
}

// NewFinalBinding wraps v in a fresh FinalSlot and returns the Binding.
func NewFinalBinding(v Value, guard Value) *Binding {
	return &Binding{Slot: NewFinalSlot(v), Guard: guard}
}

// NewVarBinding wraps v in a fresh VarSlot and returns the Binding.
func NewVarBinding(v Value, guard Value) *Binding {
	return &Binding{Slot: NewVarSlot(v), Guard: guard}
}

func (b *Binding) String() string   { return "<binding>" }
func (b *Binding) TypeName() string { return "Binding" }
func (b *Binding) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "get":
		return b.Slot, nil
	}
	return nil, NewThrown(verb + " not understood by a Binding")
}
