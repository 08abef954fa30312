package ast

import (
	"math/big"

	"github.com/mna/caplang/lang/token"
)

// NullExpr is the literal "null".
type NullExpr struct{ Pos token.Pos }

// CharExpr is a single-character literal.
type CharExpr struct {
	Pos   token.Pos
	Value rune
}

// DoubleExpr is a floating-point literal.
type DoubleExpr struct {
	Pos   token.Pos
	Value float64
}

// IntExpr is an integer literal. Big is non-nil when the literal's value
// does not fit in an int64, per 's literal table ("use
// machine-int if it fits, otherwise big-int").
type IntExpr struct {
	Pos   token.Pos
	Value int64
	Big   *big.Int
}

// StrExpr is a string literal.
type StrExpr struct {
	Pos   token.Pos
	Value string
}

// NounExpr is a free name reference, before BindNouns resolves it into one
// of LocalNounExpr, FrameNounExpr or OuterNounExpr.
type NounExpr struct {
	Pos  token.Pos
	Name string
}

// BindingExpr is a "&&name" binding-access expression, before BindNouns
// resolves it.
type BindingExpr struct {
	Pos  token.Pos
	Name string
}

// AssignExpr is a "name := value"-style assignment, before BindNouns
// resolves it.
type AssignExpr struct {
	Pos   token.Pos
	Name  string
	Value Expr
}

// NamedArg is a single named-argument entry in a CallExpr.
type NamedArg struct {
	Key   Expr
	Value Expr
}

// CallExpr calls a verb on an object with positional and named arguments.
type CallExpr struct {
	Pos       token.Pos
	Obj       Expr
	Verb      string
	Args      []Expr
	NamedArgs []*NamedArg
}

// DefExpr binds Patt to the result of Value, optionally routing pattern
// match failure through Ejector (nil means the ambient thrower ejector).
type DefExpr struct {
	Pos     token.Pos
	Patt    Patt
	Ejector Expr // nilable
	Value   Expr
}

// SeqExpr evaluates each expression in order, yielding the last (or null if
// empty).
type SeqExpr struct {
	Pos   token.Pos
	Exprs []Expr
}

// IfExpr evaluates Test and then either Then or Else (which may be nil,
// meaning "null").
type IfExpr struct {
	Pos        token.Pos
	Test, Then Expr
	Else       Expr // nilable
}

// EscapeExpr allocates a fresh ejector, binds EjPatt to it, and evaluates
// Body. If CatchPatt is nil, this represents the EscapeOnlyExpr form (no
// catch clause); otherwise an Ejecting signal for this ejector is caught,
// CatchPatt is bound to the ejected value, and CatchBody is evaluated.
type EscapeExpr struct {
	Pos       token.Pos
	EjPatt    Patt
	Body      Expr
	CatchPatt Patt // nilable
	CatchBody Expr // nilable
}

// FinallyExpr evaluates Body, then unconditionally evaluates AtLast on any
// exit path, discarding AtLast's value (unless AtLast itself raises, which
// replaces the original exit).
type FinallyExpr struct {
	Pos          token.Pos
	Body, AtLast Expr
}

// TryExpr evaluates Body; on a user exception (not an ejecting signal), the
// sealed exception is bound to CatchPatt and CatchBody is evaluated.
type TryExpr struct {
	Pos       token.Pos
	Body      Expr
	CatchPatt Patt
	CatchBody Expr
}

// HideExpr introduces a fresh lexical region (a ScopeBox, see )
// around Body without otherwise changing evaluation.
type HideExpr struct {
	Pos  token.Pos
	Body Expr
}

// ObjectExpr is an object literal. Methods and Matchers are gathered by the
// SaveScripts pass into the immutable Script; later passes read Script, not
// Methods/Matchers directly.
type ObjectExpr struct {
	Pos      token.Pos
	Doc      string
	Patt     Patt // the object's self-naming pattern (IgnorePatt for "_")
	Auditors []Expr
	Methods  []*Method
	Matchers []*Matcher
	Script   *Script // filled in by SaveScripts

	// Clear is set by RefactorStructure: true when Auditors is
	// trivially empty, so the evaluator can skip audit machinery.
	Clear bool

	// FrameNames and Captures are filled in by BindNouns (lang/layout's
	// Analyze): FrameNames lists, in frame-array order, every name
	// this object's methods/matchers read from an enclosing activation.
	// Captures holds one expression per FrameNames entry, each already bound
	// to the ENCLOSING scope (the scope the object literal itself appears
	// in); constructing the object evaluates each Capture in turn and stores
	// the results into the new frame array at matching indices.
	FrameNames []string
	Captures   []Expr
}

// MetaContextExpr is "meta.context()". Both it and MetaStateExpr are left
// untouched by RecoverSlots/BindNouns and evaluated directly by the machine
// package, which builds the result from the enclosing activation's own
// ObjectExpr (its Script and FrameNames/Captures) — information that only
// exists once BindNouns has already run, so rewriting these into ordinary
// expression trees ahead of time would require anticipating the very
// metadata they query.
type MetaContextExpr struct{ Pos token.Pos }

// MetaStateExpr is "meta.getState()". See MetaContextExpr.
type MetaStateExpr struct{ Pos token.Pos }

func (n *NullExpr) exprNode()        {}
func (n *CharExpr) exprNode()        {}
func (n *DoubleExpr) exprNode()      {}
func (n *IntExpr) exprNode()         {}
func (n *StrExpr) exprNode()         {}
func (n *NounExpr) exprNode()        {}
func (n *BindingExpr) exprNode()     {}
func (n *AssignExpr) exprNode()      {}
func (n *CallExpr) exprNode()        {}
func (n *DefExpr) exprNode()         {}
func (n *SeqExpr) exprNode()         {}
func (n *IfExpr) exprNode()          {}
func (n *EscapeExpr) exprNode()      {}
func (n *FinallyExpr) exprNode()     {}
func (n *TryExpr) exprNode()         {}
func (n *HideExpr) exprNode()        {}
func (n *ObjectExpr) exprNode()      {}
func (n *MetaContextExpr) exprNode() {}
func (n *MetaStateExpr) exprNode()   {}

func (n *NullExpr) Span() (token.Pos, token.Pos)    { return n.Pos, n.Pos }
func (n *CharExpr) Span() (token.Pos, token.Pos)    { return n.Pos, n.Pos }
func (n *DoubleExpr) Span() (token.Pos, token.Pos)  { return n.Pos, n.Pos }
func (n *IntExpr) Span() (token.Pos, token.Pos)     { return n.Pos, n.Pos }
func (n *StrExpr) Span() (token.Pos, token.Pos)     { return n.Pos, n.Pos }
func (n *NounExpr) Span() (token.Pos, token.Pos)    { return n.Pos, n.Pos }
func (n *BindingExpr) Span() (token.Pos, token.Pos) { return n.Pos, n.Pos }
func (n *AssignExpr) Span() (token.Pos, token.Pos)  { return n.Pos, n.Pos }
func (n *CallExpr) Span() (token.Pos, token.Pos)    { return n.Pos, n.Pos }
func (n *DefExpr) Span() (token.Pos, token.Pos)     { return n.Pos, n.Pos }
func (n *SeqExpr) Span() (token.Pos, token.Pos)     { return n.Pos, n.Pos }
func (n *IfExpr) Span() (token.Pos, token.Pos)      { return n.Pos, n.Pos }
func (n *EscapeExpr) Span() (token.Pos, token.Pos)  { return n.Pos, n.Pos }
func (n *FinallyExpr) Span() (token.Pos, token.Pos) { return n.Pos, n.Pos }
func (n *TryExpr) Span() (token.Pos, token.Pos)     { return n.Pos, n.Pos }
func (n *HideExpr) Span() (token.Pos, token.Pos)    { return n.Pos, n.Pos }
func (n *ObjectExpr) Span() (token.Pos, token.Pos)  { return n.Pos, n.Pos }
func (n *MetaContextExpr) Span() (token.Pos, token.Pos) { return n.Pos, n.Pos }
func (n *MetaStateExpr) Span() (token.Pos, token.Pos)   { return n.Pos, n.Pos }

func (n *NullExpr) Walk(v Visitor)    {}
func (n *CharExpr) Walk(v Visitor)    {}
func (n *DoubleExpr) Walk(v Visitor)  {}
func (n *IntExpr) Walk(v Visitor)     {}
func (n *StrExpr) Walk(v Visitor)     {}
func (n *NounExpr) Walk(v Visitor)    {}
func (n *BindingExpr) Walk(v Visitor) {}
func (n *AssignExpr) Walk(v Visitor)  { Walk(v, n.Value) }
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Obj)
	for _, a := range n.Args {
		Walk(v, a)
	}
	for _, na := range n.NamedArgs {
		Walk(v, na.Key)
		Walk(v, na.Value)
	}
}
func (n *DefExpr) Walk(v Visitor) {
	Walk(v, n.Patt)
	if n.Ejector != nil {
		Walk(v, n.Ejector)
	}
	Walk(v, n.Value)
}
func (n *SeqExpr) Walk(v Visitor) {
	for _, e := range n.Exprs {
		Walk(v, e)
	}
}
func (n *IfExpr) Walk(v Visitor) {
	Walk(v, n.Test)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *EscapeExpr) Walk(v Visitor) {
	Walk(v, n.EjPatt)
	Walk(v, n.Body)
	if n.CatchPatt != nil {
		Walk(v, n.CatchPatt)
		Walk(v, n.CatchBody)
	}
}
func (n *FinallyExpr) Walk(v Visitor) {
	Walk(v, n.Body)
	Walk(v, n.AtLast)
}
func (n *TryExpr) Walk(v Visitor) {
	Walk(v, n.Body)
	Walk(v, n.CatchPatt)
	Walk(v, n.CatchBody)
}
func (n *HideExpr) Walk(v Visitor) { Walk(v, n.Body) }
func (n *ObjectExpr) Walk(v Visitor) {
	Walk(v, n.Patt)
	for _, a := range n.Auditors {
		Walk(v, a)
	}
	for _, m := range n.Methods {
		for _, p := range m.Patts {
			Walk(v, p)
		}
		for _, np := range m.NamedPatts {
			Walk(v, np)
		}
		if m.Guard != nil {
			Walk(v, m.Guard)
		}
		Walk(v, m.Body)
	}
	for _, m := range n.Matchers {
		Walk(v, m.Patt)
		Walk(v, m.Body)
	}
	for _, c := range n.Captures {
		Walk(v, c)
	}
}
func (n *MetaContextExpr) Walk(v Visitor) {}
func (n *MetaStateExpr) Walk(v Visitor)   {}
