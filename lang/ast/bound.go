package ast

import "github.com/mna/caplang/lang/token"

// The six precise pattern shapes produced by RecoverSlots out of the raw
// FinalPatt/VarPatt: NounPatt, FinalSlotPatt,
// VarSlotPatt, FinalBindingPatt, VarBindingPatt, and IgnorePatt (already
// precise, defined in patts.go). Index is filled in by BindNouns once the
// layout pass has assigned the pattern's ScopeItem a position.

// NounPatt stores the bare (already-coerced) value at Index.
type NounPatt struct {
	Pos   token.Pos
	Name  string
	Guard Expr // nilable
	Index int
}

// FinalSlotPatt wraps the coerced value in a read-only FinalSlot.
type FinalSlotPatt struct {
	Pos   token.Pos
	Name  string
	Guard Expr // nilable
	Index int
}

// VarSlotPatt wraps the coerced value in a mutable VarSlot.
type VarSlotPatt struct {
	Pos   token.Pos
	Name  string
	Guard Expr // nilable
	Index int
}

// FinalBindingPatt wraps the coerced value in a read-only binding.
type FinalBindingPatt struct {
	Pos   token.Pos
	Name  string
	Guard Expr // nilable
	Index int
}

// VarBindingPatt wraps the coerced value in a mutable binding.
type VarBindingPatt struct {
	Pos   token.Pos
	Name  string
	Guard Expr // nilable
	Index int
}

func (n *NounPatt) pattNode()         {}
func (n *FinalSlotPatt) pattNode()    {}
func (n *VarSlotPatt) pattNode()      {}
func (n *FinalBindingPatt) pattNode() {}
func (n *VarBindingPatt) pattNode()   {}

func (n *NounPatt) Span() (token.Pos, token.Pos)         { return n.Pos, n.Pos }
func (n *FinalSlotPatt) Span() (token.Pos, token.Pos)    { return n.Pos, n.Pos }
func (n *VarSlotPatt) Span() (token.Pos, token.Pos)      { return n.Pos, n.Pos }
func (n *FinalBindingPatt) Span() (token.Pos, token.Pos) { return n.Pos, n.Pos }
func (n *VarBindingPatt) Span() (token.Pos, token.Pos)   { return n.Pos, n.Pos }

func (n *NounPatt) Walk(v Visitor) {
	if n.Guard != nil {
		Walk(v, n.Guard)
	}
}
func (n *FinalSlotPatt) Walk(v Visitor) {
	if n.Guard != nil {
		Walk(v, n.Guard)
	}
}
func (n *VarSlotPatt) Walk(v Visitor) {
	if n.Guard != nil {
		Walk(v, n.Guard)
	}
}
func (n *FinalBindingPatt) Walk(v Visitor) {
	if n.Guard != nil {
		Walk(v, n.Guard)
	}
}
func (n *VarBindingPatt) Walk(v Visitor) {
	if n.Guard != nil {
		Walk(v, n.Guard)
	}
}

// The nine bound expression shapes produced by BindNouns out
// of the raw NounExpr/BindingExpr/AssignExpr: one LocalX/FrameX/OuterX per
// raw form. OuterAssignExpr is defined for uniformity but BindNouns never
// actually constructs one: an outer-scope name is always final, so
// assigning to it is rejected at compile time.

// LocalNounExpr reads locals[Idx].
type LocalNounExpr struct {
	Pos  token.Pos
	Name string
	Idx  int
}

// FrameNounExpr reads frame[Idx].
type FrameNounExpr struct {
	Pos  token.Pos
	Name string
	Idx  int
}

// OuterNounExpr reads outers[Idx].
type OuterNounExpr struct {
	Pos  token.Pos
	Name string
	Idx  int
}

// LocalBindingExpr reads the binding at locals[Idx], synthesizing one from
// the stored slot/value if the name's severity is less than SevBinding.
type LocalBindingExpr struct {
	Pos  token.Pos
	Name string
	Idx  int
}

// FrameBindingExpr is the frame-array counterpart of LocalBindingExpr.
type FrameBindingExpr struct {
	Pos  token.Pos
	Name string
	Idx  int
}

// OuterBindingExpr is the outer-array counterpart of LocalBindingExpr.
type OuterBindingExpr struct {
	Pos  token.Pos
	Name string
	Idx  int
}

// LocalAssignExpr evaluates Value, coerces it through the target slot's
// guard, stores it at locals[Idx], and yields the stored value.
type LocalAssignExpr struct {
	Pos   token.Pos
	Name  string
	Idx   int
	Value Expr
}

// FrameAssignExpr is the frame-array counterpart of LocalAssignExpr.
type FrameAssignExpr struct {
	Pos   token.Pos
	Name  string
	Idx   int
	Value Expr
}

// OuterAssignExpr is the outer-array counterpart of LocalAssignExpr. See the
// note above: BindNouns never actually produces this node.
type OuterAssignExpr struct {
	Pos   token.Pos
	Name  string
	Idx   int
	Value Expr
}

func (n *LocalNounExpr) exprNode()     {}
func (n *FrameNounExpr) exprNode()     {}
func (n *OuterNounExpr) exprNode()     {}
func (n *LocalBindingExpr) exprNode()  {}
func (n *FrameBindingExpr) exprNode()  {}
func (n *OuterBindingExpr) exprNode()  {}
func (n *LocalAssignExpr) exprNode()   {}
func (n *FrameAssignExpr) exprNode()   {}
func (n *OuterAssignExpr) exprNode()   {}

func (n *LocalNounExpr) Span() (token.Pos, token.Pos)    { return n.Pos, n.Pos }
func (n *FrameNounExpr) Span() (token.Pos, token.Pos)    { return n.Pos, n.Pos }
func (n *OuterNounExpr) Span() (token.Pos, token.Pos)    { return n.Pos, n.Pos }
func (n *LocalBindingExpr) Span() (token.Pos, token.Pos) { return n.Pos, n.Pos }
func (n *FrameBindingExpr) Span() (token.Pos, token.Pos) { return n.Pos, n.Pos }
func (n *OuterBindingExpr) Span() (token.Pos, token.Pos) { return n.Pos, n.Pos }
func (n *LocalAssignExpr) Span() (token.Pos, token.Pos)  { return n.Pos, n.Pos }
func (n *FrameAssignExpr) Span() (token.Pos, token.Pos)  { return n.Pos, n.Pos }
func (n *OuterAssignExpr) Span() (token.Pos, token.Pos)  { return n.Pos, n.Pos }

func (n *LocalNounExpr) Walk(v Visitor)    {}
func (n *FrameNounExpr) Walk(v Visitor)    {}
func (n *OuterNounExpr) Walk(v Visitor)    {}
func (n *LocalBindingExpr) Walk(v Visitor) {}
func (n *FrameBindingExpr) Walk(v Visitor) {}
func (n *OuterBindingExpr) Walk(v Visitor) {}
func (n *LocalAssignExpr) Walk(v Visitor)  { Walk(v, n.Value) }
func (n *FrameAssignExpr) Walk(v Visitor)  { Walk(v, n.Value) }
func (n *OuterAssignExpr) Walk(v Visitor)  { Walk(v, n.Value) }
