package machine

import (
	"fmt"

	"github.com/mna/caplang/lang/ast"
	"github.com/mna/caplang/lang/types"
)

// Eval evaluates e within act, dispatching on the final bound IR shape.
// It never sees a raw NounExpr/BindingExpr/AssignExpr or FinalPatt/VarPatt:
// those are rewritten by resolver.RecoverSlots and layout.Analyze before
// compiler.Compile ever hands a tree to this package, so their absence
// here mirrors lang/compiler's walkObjects switch, which makes the same
// assumption.
//
// A returned error is one of: a *types.SealedException (a user exception,
// an uncaught runtime fault, or a step-limit or call-depth failure), a
// *types.EjectingSignal (an ejector fire in flight), or a plain Go error
// returned by a host Value's Call. Every case below propagates whichever of these it gets
// from a sub-evaluation unchanged, except EscapeExpr (which may consume a
// signal for its own ejector) and TryExpr (which may consume a sealed
// exception).
func Eval(ctx *Context, act *activation, e ast.Expr) (types.Value, error) {
	if !ctx.Thread.Step() {
		return nil, types.NewThrown("evaluation step limit exceeded")
	}

	switch e := e.(type) {
	case *ast.NullExpr:
		return types.NullValue, nil
	case *ast.CharExpr:
		return types.Char(e.Value), nil
	case *ast.DoubleExpr:
		return types.Double(e.Value), nil
	case *ast.StrExpr:
		return types.Str(e.Value), nil
	case *ast.IntExpr:
		if e.Big != nil {
			return &types.BigInt{V: e.Big}, nil
		}
		return types.Int64(e.Value), nil

	case *ast.LocalNounExpr:
		return readValue(act.locals[e.Idx]), nil
	case *ast.FrameNounExpr:
		return readValue(act.frame[e.Idx]), nil
	case *ast.OuterNounExpr:
		return readValue(act.outers[e.Idx]), nil

	case *ast.LocalBindingExpr:
		return readBinding(act.locals[e.Idx]), nil
	case *ast.FrameBindingExpr:
		return readBinding(act.frame[e.Idx]), nil
	case *ast.OuterBindingExpr:
		return readBinding(act.outers[e.Idx]), nil

	case *ast.LocalAssignExpr:
		return evalAssign(ctx, act, act.locals, e.Idx, e.Value)
	case *ast.FrameAssignExpr:
		return evalAssign(ctx, act, act.frame, e.Idx, e.Value)
	case *ast.OuterAssignExpr:
		return evalAssign(ctx, act, act.outers, e.Idx, e.Value)

	case *ast.CallExpr:
		return evalCall(ctx, act, e)

	case *ast.DefExpr:
		return evalDef(ctx, act, e)

	case *ast.SeqExpr:
		var result types.Value = types.NullValue
		for _, s := range e.Exprs {
			v, err := Eval(ctx, act, s)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil

	case *ast.IfExpr:
		tv, err := Eval(ctx, act, e.Test)
		if err != nil {
			return nil, err
		}
		b, ok := tv.(types.Bool)
		if !ok {
			return nil, types.NewThrown("if: test expression did not yield a Bool")
		}
		if bool(b) {
			return Eval(ctx, act, e.Then)
		}
		if e.Else != nil {
			return Eval(ctx, act, e.Else)
		}
		return types.NullValue, nil

	case *ast.EscapeExpr:
		return evalEscape(ctx, act, e)

	case *ast.FinallyExpr:
		return evalFinally(ctx, act, e)

	case *ast.TryExpr:
		return evalTry(ctx, act, e)

	case *ast.HideExpr:
		return Eval(ctx, act, e.Body)

	case *ast.ObjectExpr:
		return evalObject(ctx, act, e)

	case *ast.MetaContextExpr:
		return evalMetaContext(act), nil
	case *ast.MetaStateExpr:
		return evalMetaState(act), nil

	default:
		panic(fmt.Sprintf("machine: Eval: unexpected expr type %T", e))
	}
}

func evalAssign(ctx *Context, act *activation, arr []types.Value, idx int, rhs ast.Expr) (types.Value, error) {
	val, err := Eval(ctx, act, rhs)
	if err != nil {
		return nil, err
	}
	cell := arr[idx]
	guard := guardOf(cell)
	coerced, err := types.Coerce(ctx.Thread, guard, val, nil)
	if err != nil {
		return nil, err
	}
	if err := putAt(cell, coerced); err != nil {
		return nil, err
	}
	return coerced, nil
}

func evalDef(ctx *Context, act *activation, e *ast.DefExpr) (types.Value, error) {
	var ej *types.Ejector
	if e.Ejector != nil {
		ev, err := Eval(ctx, act, e.Ejector)
		if err != nil {
			return nil, err
		}
		if _, isNull := ev.(types.Null); !isNull {
			e, ok := ev.(*types.Ejector)
			if !ok {
				return nil, types.NewThrown("def: ejector expression did not yield an ejector or null")
			}
			ej = e
		}
	}

	val, err := Eval(ctx, act, e.Value)
	if err != nil {
		return nil, err
	}
	if err := matchBind(ctx, act, e.Patt, val, ej); err != nil {
		return nil, err
	}
	return val, nil
}

func evalCall(ctx *Context, act *activation, e *ast.CallExpr) (types.Value, error) {
	obj, err := Eval(ctx, act, e.Obj)
	if err != nil {
		return nil, err
	}

	args := make([]types.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := Eval(ctx, act, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	var namedArgs map[string]types.Value
	if len(e.NamedArgs) > 0 {
		namedArgs = make(map[string]types.Value, len(e.NamedArgs))
		for _, na := range e.NamedArgs {
			kv, err := Eval(ctx, act, na.Key)
			if err != nil {
				return nil, err
			}
			ks, ok := kv.(types.Str)
			if !ok {
				return nil, types.NewThrown("call: named argument key must evaluate to a Str")
			}
			vv, err := Eval(ctx, act, na.Value)
			if err != nil {
				return nil, err
			}
			namedArgs[string(ks)] = vv
		}
	}

	if !ctx.Thread.EnterCall() {
		return nil, types.NewThrown("call stack depth exceeded")
	}
	defer ctx.Thread.ExitCall()

	return obj.Call(ctx.Thread, e.Verb, args, namedArgs)
}

func evalEscape(ctx *Context, act *activation, e *ast.EscapeExpr) (types.Value, error) {
	ej := types.NewEjector(ejectorLabel(e.EjPatt))
	if err := matchBind(ctx, act, e.EjPatt, ej, nil); err != nil {
		return nil, err
	}

	result, err := Eval(ctx, act, e.Body)
	ej.Disable()

	if err == nil {
		return result, nil
	}

	sig, ok := err.(*types.EjectingSignal)
	if !ok || sig.Ejector != ej {
		// Not our ejector (or not an ejecting signal at all): propagate unchanged.
		return nil, err
	}

	if e.CatchPatt == nil {
		// EscapeOnlyExpr form: the escape expression's own value is the
		// ejected value.
		return sig.Value, nil
	}
	if err := matchBind(ctx, act, e.CatchPatt, sig.Value, nil); err != nil {
		return nil, err
	}
	return Eval(ctx, act, e.CatchBody)
}

func ejectorLabel(p ast.Patt) string {
	switch p := p.(type) {
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

func evalFinally(ctx *Context, act *activation, e *ast.FinallyExpr) (types.Value, error) {
	result, bodyErr := Eval(ctx, act, e.Body)
	_, atLastErr := Eval(ctx, act, e.AtLast)
	if atLastErr != nil {
		// atLast's own exit replaces the original one.
		return nil, atLastErr
	}
	return result, bodyErr
}

func evalTry(ctx *Context, act *activation, e *ast.TryExpr) (types.Value, error) {
	result, err := Eval(ctx, act, e.Body)
	if err == nil {
		return result, nil
	}
	if _, ok := err.(*types.EjectingSignal); ok {
		// TryExpr catches user exceptions only, never an ejecting signal.
		return nil, err
	}

	sealed, ok := err.(*types.SealedException)
	if !ok {
		sealed = &types.SealedException{Payload: types.Str(err.Error())}
	}
	if err := matchBind(ctx, act, e.CatchPatt, sealed, nil); err != nil {
		return nil, err
	}
	return Eval(ctx, act, e.CatchBody)
}
