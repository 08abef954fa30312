package machine

import "github.com/mna/caplang/lang/types"

// readValue implements the implicit coercion-to-value every
// LocalNounExpr/FrameNounExpr/OuterNounExpr read performs: a bare value
// reads back unchanged, a slot reads back its held value, and a binding
// reads back its slot's held value.
func readValue(cell types.Value) types.Value {
	switch c := cell.(type) {
	case *types.Binding:
		return c.Slot.Get()
	case types.Slot:
		return c.Get()
	default:
		return cell
	}
}

// readBinding implements the "...BindingExpr" read: a stored binding
// reads back unchanged, a stored slot is wrapped in a synthesized binding
// carrying the slot's own guard, and a bare value (SevNoun storage) is
// wrapped in a freshly synthesized final binding over AnyGuardValue.
func readBinding(cell types.Value) *types.Binding {
	switch c := cell.(type) {
	case *types.Binding:
		return c
	case types.Slot:
		return &types.Binding{Slot: c, Guard: c.Guard()}
	default:
		return types.NewFinalBinding(cell, types.AnyGuardValue)
	}
}

// guardOf returns the guard a stored cell was declared with, or nil if the
// cell carries no guard of its own (a bare SevNoun value, or a slot/binding
// built without one).
func guardOf(cell types.Value) types.Value {
	switch c := cell.(type) {
	case *types.Binding:
		return c.Guard
	case types.Slot:
		return c.Guard()
	default:
		return nil
	}
}

// putAt implements the store half of an AssignExpr: the cell must be
// something mutable — a slot stored directly (a local mutable
// name), or a binding wrapping one (a frame/outer capture, or a local
// "&&name"-severity mutable name). Anything else is a "cannot assign"
// defect that should have been rejected already by BindNouns; it is
// reported as a user exception rather than panicking, since a host-supplied
// outer binding could in principle be read-only in a way the static pass
// can't see.
func putAt(cell types.Value, v types.Value) error {
	switch c := cell.(type) {
	case *types.Binding:
		return c.Slot.Put(v)
	case types.Slot:
		return c.Put(v)
	default:
		return types.NewThrown("cannot assign: target is not mutable")
	}
}
