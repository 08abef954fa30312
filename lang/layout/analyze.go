package layout

import (
	"fmt"
	"go/scanner"
	gotoken "go/token"

	"github.com/mna/caplang/lang/ast"
	"github.com/mna/caplang/lang/sem"
	"github.com/mna/caplang/lang/token"
)

// Result is the output of Analyze: the same tree passed in, with every
// NounExpr/BindingExpr/AssignExpr and binding pattern replaced or annotated
// with its resolved storage location, plus the whole-program bookkeeping
// BindNouns needs.
type Result struct {
	// Root is e, mutated in place (the top-level expressions that change
	// shape, such as NounExpr, are replaced; everything else is reused).
	Root ast.Expr

	// OuterNames is every distinct name resolved against the host
	// environment, in first-use order; its length is the size of the
	// process-wide outers array and OuterNounExpr/OuterBindingExpr's Idx
	// indexes into it.
	OuterNames []string

	// TopLocalNames is the names bound directly at the top level, in
	// declaration order. Every caller gets these, not just a REPL host: a
	// one-shot Eval still reports what each top-level def bound, and a REPL
	// host additionally carries them forward into the next chunk's
	// compilation.
	TopLocalNames []string

	// TopLocalPositions is parallel to TopLocalNames: the locals-array index
	// each name was bound at, so the machine package can read the final
	// value/slot/binding straight out of the top-level chunk's locals array
	// once evaluation completes.
	TopLocalPositions []int

	// LocalSize is the number of local slots used by the top-level chunk
	// itself (not by any object's methods/matchers, which carry their own
	// Method.LocalSize/Matcher.LocalSize).
	LocalSize int
}

// Analyze implements the fused LayoutScopes and BindNouns passes: it
// walks e (already processed by RecoverSlots), builds a layout tree as it
// goes, and rewrites every name reference using whatever layout is "in
// force" at that point in the walk. Running the two passes as a single
// traversal avoids threading a separate node-to-scope side table between
// them; a layout tree followed by a rewrite driven by it is preserved in
// the Result's fields, just computed together.
//
// host lists the names available in the ambient/predeclared environment;
// resolving a name that isn't found anywhere in the lexical chain and isn't
// in host is reported as an error. When inRepl is true, the "cannot redefine
// an already-referenced outer name" top-level check is suppressed, matching
// a REPL's expectation that a later chunk may freely shadow an earlier
// one's use of a predeclared name.
func Analyze(e ast.Expr, host map[string]bool, inRepl bool) (*Result, error) {
	w := &walker{
		host:       host,
		outerIndex: make(map[string]int),
		outerUsed:  make(map[string]bool),
	}
	w.root = newRoot(inRepl)

	bound, finalCur := w.resolveStmt(w.root, e)
	if len(w.errs) > 0 {
		return nil, w.errs.Err()
	}

	res := &Result{
		Root:       bound,
		OuterNames: w.outerOrder,
		LocalSize:  w.root.LocalSize(),
	}
	res.TopLocalNames, res.TopLocalPositions = collectNames(finalCur, w.root)
	return res, nil
}

type walker struct {
	host map[string]bool
	root *Scope

	outerIndex map[string]int // name -> global outers[] index
	outerOrder []string
	outerUsed  map[string]bool // names ever resolved to Outer, for requireShadowable

	errs scanner.ErrorList
}

func (w *walker) errorf(pos token.Pos, format string, args ...interface{}) {
	gp := gotoken.Position{Filename: pos.Filename, Line: pos.Line, Column: pos.Col}
	w.errs.Add(gp, fmt.Sprintf(format, args...))
}

// resolveStmt processes one statement-position expression and returns the
// scope that is current for whatever lexically follows it: unchanged for
// everything except DefExpr and ObjectExpr, which introduce a new binding
// visible to later siblings in the enclosing SeqExpr.
func (w *walker) resolveStmt(cur *Scope, e ast.Expr) (ast.Expr, *Scope) {
	switch e := e.(type) {
	case *ast.DefExpr:
		e.Ejector = w.resolveExprOpt(cur, e.Ejector)
		e.Value = w.resolveExpr(cur, e.Value)
		newCur := w.resolvePatt(cur, e.Patt)
		return e, newCur
	case *ast.ObjectExpr:
		newCur := w.bindObject(cur, e)
		return e, newCur
	default:
		return w.resolveExpr(cur, e), cur
	}
}

func (w *walker) resolveExprOpt(cur *Scope, e ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	return w.resolveExpr(cur, e)
}

func (w *walker) resolveExpr(cur *Scope, e ast.Expr) ast.Expr {
	switch e := e.(type) {
	case nil:
		return nil

	case *ast.NullExpr, *ast.CharExpr, *ast.DoubleExpr, *ast.IntExpr, *ast.StrExpr,
		*ast.MetaContextExpr, *ast.MetaStateExpr:
		return e

	case *ast.NounExpr:
		class, _, _, idx, err := w.resolveRef(cur, e.Name, e.Pos)
		if err != nil {
			w.errorf(e.Pos, "%v", err)
			return e
		}
		return buildNounRead(class, idx, e.Name, e.Pos)

	case *ast.BindingExpr:
		class, _, _, idx, err := w.resolveRef(cur, e.Name, e.Pos)
		if err != nil {
			w.errorf(e.Pos, "%v", err)
			return e
		}
		return buildBindingRead(class, idx, e.Name, e.Pos)

	case *ast.AssignExpr:
		class, _, mutable, idx, err := w.resolveRef(cur, e.Name, e.Pos)
		if err != nil {
			w.errorf(e.Pos, "%v", err)
			return e
		}
		if !mutable {
			w.errorf(e.Pos, "cannot assign to final name %q", e.Name)
			return e
		}
		val := w.resolveExpr(cur, e.Value)
		out, aerr := buildAssign(class, idx, e.Name, e.Pos, val)
		if aerr != nil {
			w.errorf(e.Pos, "%v", aerr)
			return e
		}
		return out

	case *ast.CallExpr:
		e.Obj = w.resolveExpr(cur, e.Obj)
		for i, a := range e.Args {
			e.Args[i] = w.resolveExpr(cur, a)
		}
		for _, na := range e.NamedArgs {
			na.Key = w.resolveExpr(cur, na.Key)
			na.Value = w.resolveExpr(cur, na.Value)
		}
		return e

	case *ast.DefExpr:
		out, _ := w.resolveStmt(cur, e)
		return out

	case *ast.SeqExpr:
		c := cur
		for i, s := range e.Exprs {
			var ns ast.Expr
			ns, c = w.resolveStmt(c, s)
			e.Exprs[i] = ns
		}
		return e

	case *ast.IfExpr:
		e.Test = w.resolveExpr(cur, e.Test)
		e.Then = w.resolveExpr(newBox(cur), e.Then)
		if e.Else != nil {
			e.Else = w.resolveExpr(newBox(cur), e.Else)
		}
		return e

	case *ast.EscapeExpr:
		ejCur := w.resolvePatt(newBox(cur), e.EjPatt)
		e.Body = w.resolveExpr(ejCur, e.Body)
		if e.CatchPatt != nil {
			catchCur := w.resolvePatt(newBox(cur), e.CatchPatt)
			e.CatchBody = w.resolveExpr(catchCur, e.CatchBody)
		}
		return e

	case *ast.FinallyExpr:
		e.Body = w.resolveExpr(newBox(cur), e.Body)
		e.AtLast = w.resolveExpr(newBox(cur), e.AtLast)
		return e

	case *ast.TryExpr:
		e.Body = w.resolveExpr(newBox(cur), e.Body)
		catchCur := w.resolvePatt(newBox(cur), e.CatchPatt)
		e.CatchBody = w.resolveExpr(catchCur, e.CatchBody)
		return e

	case *ast.HideExpr:
		e.Body = w.resolveExpr(newBox(cur), e.Body)
		return e

	case *ast.ObjectExpr:
		out, _ := w.resolveStmt(cur, e)
		return out

	default:
		panic(fmt.Sprintf("layout: Analyze: unexpected expr type %T", e))
	}
}

// bindObject resolves one object literal's auditors, self-naming pattern,
// and every method/matcher body, each in its own fresh activation rooted at
// a shared KindFrame scope. It returns the scope in force after the
// object's own name is bound, for whatever lexically follows the object
// literal.
func (w *walker) bindObject(cur *Scope, e *ast.ObjectExpr) *Scope {
	for i, a := range e.Auditors {
		e.Auditors[i] = w.resolveExpr(cur, a)
	}

	// The self-naming pattern is bound into the enclosing scope before the
	// frame is built, so methods that reference the object's own name
	// resolve it like any other frame capture: by the time a method actually
	// runs, the enclosing def has already filled in the slot.
	curWithSelf := w.resolvePatt(cur, e.Patt)

	frame := newFrame(curWithSelf)

	for _, m := range e.Methods {
		body := newFuncBox(frame)
		mc := body
		for i, p := range m.Patts {
			mc = w.resolvePatt(mc, p)
			m.Patts[i] = p
		}
		for _, np := range m.NamedPatts {
			np.Key = w.resolveExpr(mc, np.Key)
			np.Default = w.resolveExprOpt(mc, np.Default)
			mc = w.resolvePatt(mc, np.Patt)
		}
		if m.Guard != nil {
			m.Guard = w.resolveExpr(mc, m.Guard)
		}
		m.Body = w.resolveExpr(mc, m.Body)
		m.LocalSize = body.LocalSize()
	}

	for _, m := range e.Matchers {
		body := newFuncBox(frame)
		mc := w.resolvePatt(body, m.Patt)
		m.Body = w.resolveExpr(mc, m.Body)
		m.LocalSize = body.LocalSize()
	}

	e.FrameNames = frame.FrameNames
	e.Captures = frame.Captures
	return curWithSelf
}

// resolvePatt binds p's name(s) (if any) and returns the scope in force for
// whatever lexically follows the pattern.
func (w *walker) resolvePatt(cur *Scope, p ast.Patt) *Scope {
	switch p := p.(type) {
	case nil:
		return cur

	case *ast.IgnorePatt:
		p.Guard = w.resolveExprOpt(cur, p.Guard)
		return cur

	case *ast.NounPatt:
		p.Guard = w.resolveExprOpt(cur, p.Guard)
		item := w.checkAndBind(cur, p.Name, sem.SevNoun, false, p.Pos)
		p.Index = item.Position
		return item

	case *ast.FinalSlotPatt:
		p.Guard = w.resolveExprOpt(cur, p.Guard)
		item := w.checkAndBind(cur, p.Name, sem.SevSlot, false, p.Pos)
		p.Index = item.Position
		return item

	case *ast.VarSlotPatt:
		p.Guard = w.resolveExprOpt(cur, p.Guard)
		item := w.checkAndBind(cur, p.Name, sem.SevSlot, true, p.Pos)
		p.Index = item.Position
		return item

	case *ast.FinalBindingPatt:
		p.Guard = w.resolveExprOpt(cur, p.Guard)
		item := w.checkAndBind(cur, p.Name, sem.SevBinding, false, p.Pos)
		p.Index = item.Position
		return item

	case *ast.VarBindingPatt:
		p.Guard = w.resolveExprOpt(cur, p.Guard)
		item := w.checkAndBind(cur, p.Name, sem.SevBinding, true, p.Pos)
		p.Index = item.Position
		return item

	case *ast.BindingPatt:
		item := w.checkAndBind(cur, p.Name, sem.SevBinding, true, p.Pos)
		p.Index = item.Position
		return item

	case *ast.ListPatt:
		c := cur
		for i, sub := range p.Patts {
			c = w.resolvePatt(c, sub)
			p.Patts[i] = sub
		}
		return c

	case *ast.ViaPatt:
		p.Trans = w.resolveExpr(cur, p.Trans)
		return w.resolvePatt(cur, p.Patt)

	case *ast.NamedPatt:
		p.Key = w.resolveExpr(cur, p.Key)
		p.Default = w.resolveExprOpt(cur, p.Default)
		return w.resolvePatt(cur, p.Patt)

	default:
		panic(fmt.Sprintf("layout: Analyze: unexpected patt type %T", p))
	}
}

// checkAndBind applies the top-level redefinition check and allocates the new binding's slot.
func (w *walker) checkAndBind(cur *Scope, name string, sev sem.Severity, mutable bool, pos token.Pos) *Scope {
	toplevel := cur.fn == w.root.fn
	if toplevel && !w.root.InRepl && w.outerUsed[name] {
		w.errorf(pos, "cannot redefine %q: already used as an outer name at top level", name)
	}
	return bind(cur, name, sev, mutable)
}

// resolveInFunc looks for name among the Item scopes reachable from cur
// without crossing a KindFrame boundary: a match here is always Local.
func resolveInFunc(cur *Scope, name string) (*Scope, bool) {
	for s := cur; s != nil; s = s.Parent {
		if s.Kind == KindFrame {
			return nil, false
		}
		if s.Kind == KindItem && s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// resolveRef classifies a name reference, capturing it into the nearest
// enclosing object's frame if it resolves to an ancestor activation, or
// resolving it directly against the host environment if it resolves
// nowhere in the lexical chain.
func (w *walker) resolveRef(cur *Scope, name string, pos token.Pos) (sem.ScopeClass, sem.Severity, bool, int, error) {
	if item, ok := resolveInFunc(cur, name); ok {
		return sem.ClassLocal, item.Severity, item.Mutable, item.Position, nil
	}

	var frame *Scope
	for s := cur; s != nil; s = s.Parent {
		if s.Kind == KindFrame {
			frame = s
			break
		}
	}
	if frame == nil {
		return w.resolveOuter(name, pos)
	}

	if idx, ok := frame.frameSeen[name]; ok {
		return sem.ClassFrame, frame.FrameSeverities[idx], frame.FrameMutable[idx], idx, nil
	}

	innerClass, innerSev, innerMutable, innerIdx, err := w.resolveRef(frame.Parent, name, pos)
	if err != nil {
		return 0, 0, false, 0, err
	}

	if innerClass == sem.ClassOuter {
		// outers[] is a single process-wide array: no per-object indirection
		// is needed, so references propagate the outer index straight
		// through every enclosing frame instead of each capturing it.
		if !frame.outerSeen[name] {
			frame.outerSeen[name] = true
			frame.OuterNames = append(frame.OuterNames, name)
		}
		return sem.ClassOuter, innerSev, innerMutable, innerIdx, nil
	}

	idx := len(frame.FrameNames)
	frame.FrameNames = append(frame.FrameNames, name)
	frame.FrameSeverities = append(frame.FrameSeverities, innerSev)
	frame.FrameMutable = append(frame.FrameMutable, innerMutable)
	frame.frameSeen[name] = idx
	frame.Captures = append(frame.Captures, buildCaptureExpr(innerClass, innerSev, innerIdx, name, pos))
	return sem.ClassFrame, innerSev, innerMutable, idx, nil
}

func (w *walker) resolveOuter(name string, pos token.Pos) (sem.ScopeClass, sem.Severity, bool, int, error) {
	if !w.host[name] {
		return 0, 0, false, 0, fmt.Errorf("undefined name: %s", name)
	}
	w.outerUsed[name] = true
	idx, ok := w.outerIndex[name]
	if !ok {
		idx = len(w.outerOrder)
		w.outerIndex[name] = idx
		w.outerOrder = append(w.outerOrder, name)
	}
	return sem.ClassOuter, sem.SevBinding, false, idx, nil
}

func buildNounRead(class sem.ScopeClass, idx int, name string, pos token.Pos) ast.Expr {
	switch class {
	case sem.ClassLocal:
		return &ast.LocalNounExpr{Pos: pos, Name: name, Idx: idx}
	case sem.ClassFrame:
		return &ast.FrameNounExpr{Pos: pos, Name: name, Idx: idx}
	default:
		return &ast.OuterNounExpr{Pos: pos, Name: name, Idx: idx}
	}
}

func buildBindingRead(class sem.ScopeClass, idx int, name string, pos token.Pos) ast.Expr {
	switch class {
	case sem.ClassLocal:
		return &ast.LocalBindingExpr{Pos: pos, Name: name, Idx: idx}
	case sem.ClassFrame:
		return &ast.FrameBindingExpr{Pos: pos, Name: name, Idx: idx}
	default:
		return &ast.OuterBindingExpr{Pos: pos, Name: name, Idx: idx}
	}
}

// buildCaptureExpr builds the expression evaluated once, at the enclosing
// activation, to populate a new object's frame slot. Noun-severity names
// capture the bare value (single-assignment, nothing to share); slot- and
// binding-severity names capture the binding itself, so mutation and
// identity are shared between the original scope and every object that
// captures it.
func buildCaptureExpr(class sem.ScopeClass, sev sem.Severity, idx int, name string, pos token.Pos) ast.Expr {
	if sev == sem.SevNoun {
		return buildNounRead(class, idx, name, pos)
	}
	return buildBindingRead(class, idx, name, pos)
}

func buildAssign(class sem.ScopeClass, idx int, name string, pos token.Pos, value ast.Expr) (ast.Expr, error) {
	switch class {
	case sem.ClassLocal:
		return &ast.LocalAssignExpr{Pos: pos, Name: name, Idx: idx, Value: value}, nil
	case sem.ClassFrame:
		return &ast.FrameAssignExpr{Pos: pos, Name: name, Idx: idx, Value: value}, nil
	default:
		return nil, fmt.Errorf("cannot assign to outer name %q", name)
	}
}

func collectNames(cur, root *Scope) ([]string, []int) {
	var names []string
	var positions []int
	for s := cur; s != nil && s != root; s = s.Parent {
		if s.Kind == KindItem {
			names = append(names, s.Name)
			positions = append(positions, s.Position)
		}
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
		positions[i], positions[j] = positions[j], positions[i]
	}
	return names, positions
}
