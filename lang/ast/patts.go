package ast

import "github.com/mna/caplang/lang/token"

// IgnorePatt matches anything and binds nothing. If Guard is non-nil, the
// specimen is still coerced through it for its side effects.
type IgnorePatt struct {
	Pos   token.Pos
	Guard Expr // nilable
}

// FinalPatt is the raw "def"-style binding pattern, before RecoverSlots
// normalizes it (using Sigil) into NounPatt, FinalSlotPatt or
// FinalBindingPatt.
type FinalPatt struct {
	Pos   token.Pos
	Name  string
	Sigil Sigil
	Guard Expr // nilable
}

// VarPatt is the raw "var"-style binding pattern, before RecoverSlots
// normalizes it (using Sigil) into VarSlotPatt or VarBindingPatt.
type VarPatt struct {
	Pos   token.Pos
	Name  string
	Sigil Sigil
	Guard Expr // nilable
}

// BindingPatt matches a specimen that is itself expected to already be a
// binding (e.g. "&&name" used directly as a pattern, not through def/var)
// and stores it verbatim.
type BindingPatt struct {
	Pos   token.Pos
	Name  string
	Index int // assigned by BindNouns
}

// ListPatt matches a specimen that unwraps to a list of exactly len(Patts)
// elements, matching each sub-pattern in turn.
type ListPatt struct {
	Pos   token.Pos
	Patts []Patt
}

// ViaPatt runs Trans.run(specimen, ej) and matches the result against the
// inner pattern.
type ViaPatt struct {
	Pos   token.Pos
	Trans Expr
	Patt  Patt
}

// NamedPatt matches a named-argument map: if Key is absent and Default is
// nil, the match fails via the ambient ejector; otherwise Patt is matched
// against the found (or defaulted) value. NamedPatt also serves as a
// method's named-parameter pattern.
type NamedPatt struct {
	Pos     token.Pos
	Key     Expr
	Patt    Patt
	Default Expr // nilable
}

func (n *IgnorePatt) pattNode()  {}
func (n *FinalPatt) pattNode()   {}
func (n *VarPatt) pattNode()     {}
func (n *BindingPatt) pattNode() {}
func (n *ListPatt) pattNode()    {}
func (n *ViaPatt) pattNode()     {}
func (n *NamedPatt) pattNode()   {}

func (n *IgnorePatt) Span() (token.Pos, token.Pos)  { return n.Pos, n.Pos }
func (n *FinalPatt) Span() (token.Pos, token.Pos)   { return n.Pos, n.Pos }
func (n *VarPatt) Span() (token.Pos, token.Pos)     { return n.Pos, n.Pos }
func (n *BindingPatt) Span() (token.Pos, token.Pos) { return n.Pos, n.Pos }
func (n *ListPatt) Span() (token.Pos, token.Pos)    { return n.Pos, n.Pos }
func (n *ViaPatt) Span() (token.Pos, token.Pos)     { return n.Pos, n.Pos }
func (n *NamedPatt) Span() (token.Pos, token.Pos)   { return n.Pos, n.Pos }

func (n *IgnorePatt) Walk(v Visitor) {
	if n.Guard != nil {
		Walk(v, n.Guard)
	}
}
func (n *FinalPatt) Walk(v Visitor) {
	if n.Guard != nil {
		Walk(v, n.Guard)
	}
}
func (n *VarPatt) Walk(v Visitor) {
	if n.Guard != nil {
		Walk(v, n.Guard)
	}
}
func (n *BindingPatt) Walk(v Visitor) {}
func (n *ListPatt) Walk(v Visitor) {
	for _, p := range n.Patts {
		Walk(v, p)
	}
}
func (n *ViaPatt) Walk(v Visitor) {
	Walk(v, n.Trans)
	Walk(v, n.Patt)
}
func (n *NamedPatt) Walk(v Visitor) {
	Walk(v, n.Key)
	Walk(v, n.Patt)
	if n.Default != nil {
		Walk(v, n.Default)
	}
}
