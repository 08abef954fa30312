package machine

import (
	"fmt"

	"github.com/mna/caplang/lang/ast"
	"github.com/mna/caplang/lang/types"
)

// InterpObject is the runtime value an ObjectExpr evaluates to: a script
// plus the frame array its methods/matchers close over. It implements
// types.Value.Call directly as recvNamed.
type InterpObject struct {
	mctx        *Context
	doc         string
	displayName string
	objName     string
	script      *ast.Script
	frameNames  []string
	frame       []types.Value
	outers      []types.Value
	fqn         string
	report      *AuditReport // nilable; set only for an audited (non-Clear) object

	cacheValid  bool
	cacheAtom   ast.Atom
	cacheMethod *ast.Method
}

func (o *InterpObject) String() string {
	if o.objName != "" && o.objName != "_" {
		return fmt.Sprintf("<%s>", o.objName)
	}
	return fmt.Sprintf("<%s>", o.displayName)
}
func (o *InterpObject) TypeName() string { return "Object" }

// Call implements recvNamed: dispatch by atom, a
// method cache for the common repeated-call case, then matcher fallback,
// then "does not respond to".
func (o *InterpObject) Call(t *types.Thread, verb string, args []types.Value, named map[string]types.Value) (types.Value, error) {
	atom := ast.Atom{Verb: verb, Arity: len(args)}

	var method *ast.Method
	if o.cacheValid && o.cacheAtom == atom {
		method = o.cacheMethod
	} else if m, ok := o.script.Lookup(atom); ok {
		method = m
		o.cacheAtom, o.cacheMethod, o.cacheValid = atom, m, true
	}

	if method != nil {
		return o.invokeMethod(method, args, named)
	}
	return o.invokeMatcher(atom, args, named)
}

func (o *InterpObject) invokeMethod(method *ast.Method, args []types.Value, named map[string]types.Value) (types.Value, error) {
	act := &activation{
		locals:    make([]types.Value, method.LocalSize),
		frame:     o.frame,
		outers:    o.outers,
		obj:       o,
		fqnPrefix: o.fqn,
	}

	for i, p := range method.Patts {
		if err := matchBind(o.mctx, act, p, args[i], nil); err != nil {
			return nil, err
		}
	}
	for _, np := range method.NamedPatts {
		if err := matchNamed(o.mctx, act, np, named, nil); err != nil {
			return nil, err
		}
	}

	result, err := Eval(o.mctx, act, method.Body)
	if err != nil {
		return nil, err
	}
	if method.Guard != nil {
		g, err := Eval(o.mctx, act, method.Guard)
		if err != nil {
			return nil, err
		}
		return types.Coerce(o.mctx.Thread, g, result, nil)
	}
	return result, nil
}

// invokeMatcher is the matcher-fallback path of dispatch: each matcher's
// pattern is tried in turn against a two-element specimen list
// [verb, args], using a fresh ejector per attempt so a failed sub-pattern
// moves on to the next matcher instead of aborting the whole dispatch.
func (o *InterpObject) invokeMatcher(atom ast.Atom, args []types.Value, named map[string]types.Value) (types.Value, error) {
	argsCopy := make([]types.Value, len(args))
	copy(argsCopy, args)
	specimen := types.NewConstList([]types.Value{types.Str(atom.Verb), types.NewConstList(argsCopy)})

	for _, m := range o.script.Matchers {
		act := &activation{
			locals:    make([]types.Value, m.LocalSize),
			frame:     o.frame,
			outers:    o.outers,
			obj:       o,
			fqnPrefix: o.fqn,
		}
		ej := types.NewEjector("matcher")
		err := matchBind(o.mctx, act, m.Patt, specimen, ej)
		if err == nil {
			ej.Disable()
			return Eval(o.mctx, act, m.Body)
		}
		if sig, ok := err.(*types.EjectingSignal); ok && sig.Ejector == ej {
			continue
		}
		return nil, err
	}
	return nil, types.NewThrown(fmt.Sprintf("%s: does not respond to %s", o.displayName, atom))
}

// evalObject implements ObjectExpr construction. The self-reference frame
// slot (see objName's match against e.FrameNames) is left unevaluated
// until after the object's own pattern has bound locals[index]; it is
// then filled by re-evaluating the very same capture expression
// layout.Analyze already built for that name — there is nothing special
// about the self-reference that needs its own synthesis logic.
func evalObject(ctx *Context, act *activation, e *ast.ObjectExpr) (types.Value, error) {
	objName := objectPattName(e.Patt)

	var guardAuditor types.Value = types.AnyGuardValue
	var auditors []types.Value
	if len(e.Auditors) > 0 {
		gv, err := Eval(ctx, act, e.Auditors[0])
		if err != nil {
			return nil, err
		}
		if _, isNull := gv.(types.Null); !isNull {
			guardAuditor = gv
		}
		auditors = make([]types.Value, 0, len(e.Auditors)-1)
		for _, a := range e.Auditors[1:] {
			av, err := Eval(ctx, act, a)
			if err != nil {
				return nil, err
			}
			auditors = append(auditors, av)
		}
	}

	frame := make([]types.Value, len(e.FrameNames))
	selfIdx := -1
	for i, name := range e.FrameNames {
		if objName != "" && objName != "_" && name == objName {
			selfIdx = i
			continue
		}
		v, err := Eval(ctx, act, e.Captures[i])
		if err != nil {
			return nil, err
		}
		frame[i] = v
	}

	obj := &InterpObject{
		mctx:        ctx,
		doc:         e.Doc,
		displayName: e.Script.DisplayName,
		objName:     objName,
		script:      e.Script,
		frameNames:  e.FrameNames,
		frame:       frame,
		outers:      act.outers,
		fqn:         act.fqnPrefix + "$" + e.Script.DisplayName,
	}

	var result types.Value = obj
	if !e.Clear {
		cb := ctx.clipboardFor(e)
		report, err := cb.audit(ctx.Thread, obj, auditors, guardAuditor, e.FrameNames)
		if err != nil {
			return nil, err
		}
		obj.report = report
		coerced, err := types.Coerce(ctx.Thread, guardAuditor, obj, nil)
		if err != nil {
			return nil, err
		}
		result = coerced
	}

	if err := matchBind(ctx, act, e.Patt, result, nil); err != nil {
		return nil, err
	}

	if selfIdx >= 0 {
		v, err := Eval(ctx, act, e.Captures[selfIdx])
		if err != nil {
			return nil, err
		}
		frame[selfIdx] = v
	}

	return result, nil
}

func objectPattName(p ast.Patt) string {
	switch p := p.(type) {
	case *ast.IgnorePatt:
		return "_"
	case *ast.NounPatt:
		return p.Name
	case *ast.FinalSlotPatt:
		return p.Name
	case *ast.VarSlotPatt:
		return p.Name
	case *ast.FinalBindingPatt:
		return p.Name
	case *ast.VarBindingPatt:
		return p.Name
	default:
		return "_"
	}
}
