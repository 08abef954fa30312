// Package machine implements the Evaluator: a tree-walking interpreter
// over the final IR produced by resolver.SaveScripts, resolver.RecoverSlots,
// layout.Analyze and compiler.Compile. It operates on the three activation
// name vectors — locals, frame, outers — plus the per-object-literal
// auditor clipboard, and exposes the top-level evalMonte/evalToPair entry
// points.
//
// This package's "machine" is a plain recursive-descent switch over ast
// nodes rather than a bytecode VM: bytecode generation, JIT and AOT
// compilation stay out of scope, so the pipeline's final stage is a tree
// walk rather than a second compiler. The activation bookkeeping (locals
// array sized per-call, shared frame/outers arrays) and the "panic on an
// IR shape an earlier pass should have ruled out" posture are adapted
// directly from an opcode-dispatch interpreter loop.
package machine

import (
	"context"
	"fmt"

	"github.com/mna/caplang/lang/ast"
	"github.com/mna/caplang/lang/compiler"
	"github.com/mna/caplang/lang/layout"
	"github.com/mna/caplang/lang/resolver"
	"github.com/mna/caplang/lang/types"
)

// Context carries the whole-run state shared by every activation: the
// Thread primitives (*types.Thread) evaluated values dispatch through, the
// process-wide outer-binding array, and the per-object-literal auditor
// clipboards, keyed by the *ast.ObjectExpr node so that repeated
// evaluations of the same compiled literal (e.g. across REPL chunks sharing
// a parsed definition, or repeated calls to a method that itself contains
// an object literal) reuse one clipboard per source position.
type Context struct {
	Thread *types.Thread
	Outers []types.Value

	clipboards map[*ast.ObjectExpr]*clipboard
}

// NewContext builds a Context ready to evaluate against outers (already
// ordered to match whatever layout.Result.OuterNames produced it).
func NewContext(th *types.Thread, outers []types.Value) *Context {
	return &Context{Thread: th, Outers: outers, clipboards: make(map[*ast.ObjectExpr]*clipboard)}
}

func (ctx *Context) clipboardFor(o *ast.ObjectExpr) *clipboard {
	c, ok := ctx.clipboards[o]
	if !ok {
		c = newClipboard()
		ctx.clipboards[o] = c
	}
	return c
}

// activation is one method/matcher/top-level-chunk invocation's private
// state: a freshly allocated locals array, plus the frame/outers arrays
// shared with (respectively) the enclosing object and the whole run. obj
// is nil for the top-level chunk activation (no enclosing object literal);
// meta.getState()/meta.context() use that to know there is no frame to
// report.
type activation struct {
	locals    []types.Value
	frame     []types.Value
	outers    []types.Value
	obj       *InterpObject
	fqnPrefix string
}

// TopLocal is one entry of evalMonte's topLocals result: a top-level name
// paired with the binding it ended up with, using the SevNoun→finalBinding
// over AnyGuardValue / SevSlot→Binding over the stored slot (carrying the
// slot's own guard) / SevBinding→binding mapping — which is exactly what
// readBinding already implements for any locals-array cell.
type TopLocal struct {
	Name    string
	Binding *types.Binding
}

// Evaluate implements evalMonte: it runs the whole pipeline
// (SaveScripts, RecoverSlots, LayoutScopes+BindNouns, DischargeAuditors+
// RefactorStructure) over expr and then evaluates the resulting IR.
// environment maps "&&name" to the binding a host wants available as an
// outer name; fqnPrefix seeds meta.context().getFQNPrefix() for code at the
// top level. The returned []TopLocal always has one entry per name bound
// directly at the top level, regardless of inRepl; inRepl only relaxes the
// layout pass's check against redefining an already-referenced outer name,
// so a REPL host can shadow a predeclared name across chunks.
//
// A Load failure from any pipeline pass is returned as-is,
// without running the evaluator at all. An uncaught Ejecting signal
// is reported as a plain error rather than propagated as one, since
// there is no further Go caller positioned to catch it either.
func Evaluate(ctx context.Context, th *types.Thread, expr ast.Expr, environment map[string]*types.Binding, fqnPrefix string, inRepl bool) (types.Value, []TopLocal, error) {
	if err := resolver.SaveScripts(expr); err != nil {
		return nil, nil, err
	}
	resolver.RecoverSlots(expr)

	host := make(map[string]bool, len(environment))
	for k := range environment {
		host[stripAmpAmp(k)] = true
	}

	res, err := layout.Analyze(expr, host, inRepl)
	if err != nil {
		return nil, nil, err
	}
	if err := compiler.Compile(res.Root); err != nil {
		return nil, nil, err
	}

	outers := make([]types.Value, len(res.OuterNames))
	for i, name := range res.OuterNames {
		b, ok := environment["&&"+name]
		if !ok || b == nil {
			return nil, nil, fmt.Errorf("machine: outer name %q has no binding in environment", name)
		}
		outers[i] = b
	}

	th.Init(ctx)
	mctx := NewContext(th, outers)
	act := &activation{locals: make([]types.Value, res.LocalSize), outers: outers, fqnPrefix: fqnPrefix}

	v, err := Eval(mctx, act, res.Root)
	if err != nil {
		if sig, ok := err.(*types.EjectingSignal); ok {
			return nil, nil, fmt.Errorf("machine: uncaught ejector fired with value %s", sig.Value)
		}
		return nil, nil, err
	}

	topLocals := make([]TopLocal, len(res.TopLocalNames))
	for i, name := range res.TopLocalNames {
		topLocals[i] = TopLocal{Name: name, Binding: readBinding(act.locals[res.TopLocalPositions[i]])}
	}
	return v, topLocals, nil
}

// EvalToPair implements evalToPair: it adapts Evaluate's
// (environment map[string]*types.Binding) / (topLocals []TopLocal) shapes
// into a single scope map keyed "&&name", for a REPL host that just wants
// to thread one map from chunk to chunk.
func EvalToPair(ctx context.Context, th *types.Thread, expr ast.Expr, scope map[string]*types.Binding, inRepl bool) (types.Value, map[string]*types.Binding, error) {
	v, topLocals, err := Evaluate(ctx, th, expr, scope, "<repl>", inRepl)
	if err != nil {
		return nil, nil, err
	}

	newScope := make(map[string]*types.Binding, len(scope)+len(topLocals))
	for k, b := range scope {
		newScope[k] = b
	}
	for _, tl := range topLocals {
		newScope["&&"+tl.Name] = tl.Binding
	}
	return v, newScope, nil
}

func stripAmpAmp(name string) string {
	if len(name) >= 2 && name[0] == '&' && name[1] == '&' {
		return name[2:]
	}
	return name
}
