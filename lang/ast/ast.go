// Package ast defines the input intermediate representation assumed to have
// been produced by a front-end parser (out of scope for this module, see
// ) as well as the bound forms produced by the BindNouns and
// RecoverSlots passes. RecoverSlots and the fused
// LayoutScopes/BindNouns pass (lang/layout) mutate the tree in place field
// by field (a Patt field is swapped for its normalized shape, a NounExpr's
// parent field is swapped for a LocalNounExpr, and so on); only node kinds
// that change shape across a pass are replaced, never copied wholesale.
package ast

import "github.com/mna/caplang/lang/token"

// Node is implemented by every node in the tree, both the raw input forms
// and the bound forms produced by later passes.
type Node interface {
	// Span reports the start and end position of the node, as assigned by
	// the (out of scope) front end. Nodes synthesized by a pass (e.g.
	// ReifyMeta's replacement of a MetaStateExpr) report the position of the
	// node they replace.
	Span() (start, end token.Pos)

	// Walk enters each child node inside itself, to implement the Visitor
	// pattern.
	Walk(v Visitor)
}

// Expr is implemented by every expression node, both raw and bound.
type Expr interface {
	Node
	exprNode()
}

// Patt is implemented by every pattern node, both raw and bound.
type Patt interface {
	Node
	pattNode()
}

// Sigil records which of the three surface forms (plain noun, &slot,
// &&binding) a def/var pattern used, prior to RecoverSlots normalizing it
// into one of the six precise pattern shapes.
type Sigil uint8

const (
	// SigilNone is the plain "x" form.
	SigilNone Sigil = iota
	// SigilSlot is the "&x" form.
	SigilSlot
	// SigilBinding is the "&&x" form.
	SigilBinding
)
