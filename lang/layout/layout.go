// Package layout implements the LayoutScopes and BindNouns passes as a
// single fused traversal: Analyze walks the AST produced by RecoverSlots,
// building a tree of Scope records mirroring lexical structure, and as it
// reaches each name reference it immediately rewrites it —
// NounExpr/BindingExpr/AssignExpr become LocalX/FrameX/OuterX, and
// binding patterns get their Index filled in — using whichever Scope is
// "in force" at that point in the walk.
//
// Much of the shape of this pass — a linked list of blocks with a current
// "env" pointer, push/pop, and a requireShadowable-style redefinition
// check — generalizes Lua-style block/function scoping to a
// lexical-region/frame-capture model.
package layout

import (
	"fmt"

	"github.com/mna/caplang/lang/ast"
	"github.com/mna/caplang/lang/sem"
)

// Kind identifies which of the four layout node shapes a Scope is.
type Kind uint8

const (
	// KindOuter is the root layout, one per compilation unit.
	KindOuter Kind = iota
	// KindFrame is introduced by each object literal.
	KindFrame
	// KindBox introduces a fresh lexical region without capturing a frame
	// (if-arms, escape/try/finally bodies, method/matcher bodies, hide).
	KindBox
	// KindItem is introduced by a single pattern binding.
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindOuter:
		return "outer"
	case KindFrame:
		return "frame"
	case KindBox:
		return "box"
	case KindItem:
		return "item"
	default:
		return fmt.Sprintf("<invalid Kind %d>", uint8(k))
	}
}

// funcCtx is the position counter shared by every Scope that lives within
// the same method, matcher, or top-level chunk body: positions are
// contiguous within one activation's locals array, regardless of how many
// ScopeBox nodes are nested inside it.
type funcCtx struct {
	next     int
	maxSeen  int
}

func (f *funcCtx) alloc() int {
	p := f.next
	f.next++
	if f.next > f.maxSeen {
		f.maxSeen = f.next
	}
	return p
}

// Scope is one node of the layout tree, linked
// only to its Parent: resolving a name walks outward from the current Scope
// rather than down from a root. A KindFrame node's FrameNames/Captures grow
// as the walk discovers more names the object needs to capture.
type Scope struct {
	Kind   Kind
	Parent *Scope

	fn *funcCtx // shared within one method/matcher/chunk body

	// KindItem fields.
	Name     string
	Severity sem.Severity
	Mutable  bool // true for var-flavored patterns; false for def/final ones
	Position int

	// KindFrame fields: names captured from an enclosing lexical scope
	// (FrameNames/FrameSeverities/Captures, kept parallel) and names
	// referenced that resolved all the way to the outer/host environment
	// (OuterNames, informational only — OuterNounExpr indexes a single
	// process-wide array, so no per-frame position is needed). The two
	// source sets are disjoint.
	FrameNames      []string
	FrameSeverities []sem.Severity
	FrameMutable    []bool
	Captures        []ast.Expr
	OuterNames      []string
	frameSeen       map[string]int
	outerSeen       map[string]bool

	// KindOuter (root) field.
	InRepl bool
}

// LocalSize returns the number of distinct local slots used within the
// method/matcher/chunk body that this scope belongs to.
func (s *Scope) LocalSize() int { return s.fn.maxSeen }

func newFrame(parent *Scope) *Scope {
	return &Scope{
		Kind:      KindFrame,
		Parent:    parent,
		frameSeen: make(map[string]int),
		outerSeen: make(map[string]bool),
	}
}

// newFuncBox starts a fresh activation (a method/matcher/chunk body): a
// KindBox scope with its own funcCtx, so local slot positions restart at 0
// and are independent of whatever activation encloses it.
func newFuncBox(parent *Scope) *Scope {
	return &Scope{Kind: KindBox, Parent: parent, fn: &funcCtx{}}
}

// newBox starts a nested lexical region that shares the enclosing
// activation's funcCtx (if-arms, escape/try/finally bodies, hide).
func newBox(parent *Scope) *Scope {
	return &Scope{Kind: KindBox, Parent: parent, fn: parent.fn}
}

// bind allocates a new local slot for name in the current activation and
// returns the new KindItem scope, which becomes the current scope for
// whatever code follows this binding lexically.
func bind(parent *Scope, name string, sev sem.Severity, mutable bool) *Scope {
	return &Scope{
		Kind:     KindItem,
		Parent:   parent,
		fn:       parent.fn,
		Name:     name,
		Severity: sev,
		Mutable:  mutable,
		Position: parent.fn.alloc(),
	}
}

// newRoot starts the single KindOuter scope for a whole compilation unit.
func newRoot(inRepl bool) *Scope {
	return &Scope{Kind: KindOuter, fn: &funcCtx{}, InRepl: inRepl}
}
