package machine

import (
	"github.com/mna/caplang/lang/ast"
	"github.com/mna/caplang/lang/types"
)

// matchBind tries to match specimen against patt, storing whatever it
// binds into act's locals array at each pattern's Index. On mismatch it
// fires ej (the ambient ejector the enclosing DefExpr/Method/Matcher/
// ListPatt-element supplied) if non-nil, or else throws a
// SealedException — the ambient thrower behavior for an omitted
// "exit ej" clause.
func matchBind(ctx *Context, act *activation, patt ast.Patt, specimen types.Value, ej *types.Ejector) error {
	switch p := patt.(type) {
	case *ast.IgnorePatt:
		if p.Guard != nil {
			g, err := Eval(ctx, act, p.Guard)
			if err != nil {
				return err
			}
			if _, err := coerceWith(ctx, g, specimen, ej); err != nil {
				return err
			}
		}
		return nil

	case *ast.NounPatt:
		g, err := evalGuardExpr(ctx, act, p.Guard)
		if err != nil {
			return err
		}
		v, err := coerceWith(ctx, g, specimen, ej)
		if err != nil {
			return err
		}
		act.locals[p.Index] = v
		return nil

	case *ast.FinalSlotPatt:
		g, err := evalGuardExpr(ctx, act, p.Guard)
		if err != nil {
			return err
		}
		v, err := coerceWith(ctx, g, specimen, ej)
		if err != nil {
			return err
		}
		act.locals[p.Index] = types.NewFinalSlotGuarded(v, g)
		return nil

	case *ast.VarSlotPatt:
		g, err := evalGuardExpr(ctx, act, p.Guard)
		if err != nil {
			return err
		}
		v, err := coerceWith(ctx, g, specimen, ej)
		if err != nil {
			return err
		}
		act.locals[p.Index] = types.NewVarSlotGuarded(v, g)
		return nil

	case *ast.FinalBindingPatt:
		g, err := evalGuardExpr(ctx, act, p.Guard)
		if err != nil {
			return err
		}
		v, err := coerceWith(ctx, g, specimen, ej)
		if err != nil {
			return err
		}
		act.locals[p.Index] = types.NewFinalBinding(v, guardOrAny(g))
		return nil

	case *ast.VarBindingPatt:
		g, err := evalGuardExpr(ctx, act, p.Guard)
		if err != nil {
			return err
		}
		v, err := coerceWith(ctx, g, specimen, ej)
		if err != nil {
			return err
		}
		act.locals[p.Index] = types.NewVarBinding(v, guardOrAny(g))
		return nil

	case *ast.BindingPatt:
		b, ok := specimen.(*types.Binding)
		if !ok {
			return fireOrThrow(ctx, ej, "pattern expected a Binding specimen")
		}
		act.locals[p.Index] = b
		return nil

	case *ast.ListPatt:
		items, ok := asValueSlice(specimen)
		if !ok {
			return fireOrThrow(ctx, ej, "list pattern: specimen is not a List")
		}
		if len(items) != len(p.Patts) {
			return fireOrThrow(ctx, ej, "list pattern: specimen length does not match")
		}
		for i, sub := range p.Patts {
			if err := matchBind(ctx, act, sub, items[i], ej); err != nil {
				return err
			}
		}
		return nil

	case *ast.ViaPatt:
		trans, err := Eval(ctx, act, p.Trans)
		if err != nil {
			return err
		}
		var ejArg types.Value = types.NullValue
		if ej != nil {
			ejArg = ej
		}
		transformed, err := trans.Call(ctx.Thread, "run", []types.Value{specimen, ejArg}, nil)
		if err != nil {
			return err
		}
		return matchBind(ctx, act, p.Patt, transformed, ej)

	case *ast.NamedPatt:
		// NamedPatt as a plain (non-method) pattern matches a named-argument
		// map specimen. Used directly, this appears only inside
		// method parameter lists, where invokeMethod binds it against the
		// call's namedArgs map via matchNamed rather
		// than through this generic path; this branch exists for
		// completeness when nested under a ViaPatt/ListPatt.
		return matchBind(ctx, act, p.Patt, specimen, ej)

	default:
		return fireOrThrow(ctx, ej, "unsupported pattern shape")
	}
}

// matchNamed binds a single NamedPatt against namedArgs: if Key
// (evaluated to a Str) is present in namedArgs, Patt is matched against
// its value; otherwise Default (if any) supplies the value, and a
// missing key with no Default is a match failure through the ambient
// thrower.
func matchNamed(ctx *Context, act *activation, np *ast.NamedPatt, namedArgs map[string]types.Value, ej *types.Ejector) error {
	kv, err := Eval(ctx, act, np.Key)
	if err != nil {
		return err
	}
	ks, ok := kv.(types.Str)
	if !ok {
		return types.NewThrown("named pattern: key must evaluate to a Str")
	}
	if v, found := namedArgs[string(ks)]; found {
		return matchBind(ctx, act, np.Patt, v, ej)
	}
	if np.Default != nil {
		dv, err := Eval(ctx, act, np.Default)
		if err != nil {
			return err
		}
		return matchBind(ctx, act, np.Patt, dv, ej)
	}
	return fireOrThrow(ctx, ej, "missing named argument \""+string(ks)+"\"")
}

// evalGuardExpr evaluates guardExpr exactly once, returning nil for an
// unguarded pattern. The result is threaded into both the coercion of the
// specimen and the guard stored on the resulting slot/binding, so a guard
// expression with a side effect (or one that only succeeds once) runs a
// single time per pattern match.
func evalGuardExpr(ctx *Context, act *activation, guardExpr ast.Expr) (types.Value, error) {
	if guardExpr == nil {
		return nil, nil
	}
	return Eval(ctx, act, guardExpr)
}

// coerceWith coerces specimen against an already-evaluated guard (nil means
// unguarded, and specimen passes through unchanged).
func coerceWith(ctx *Context, guard types.Value, specimen types.Value, ej *types.Ejector) (types.Value, error) {
	var ejArg types.Value
	if ej != nil {
		ejArg = ej
	}
	return types.Coerce(ctx.Thread, guard, specimen, ejArg)
}

// guardOrAny substitutes AnyGuardValue for a binding pattern's stored guard
// when the pattern itself was unguarded.
func guardOrAny(g types.Value) types.Value {
	if g != nil {
		return g
	}
	return types.AnyGuardValue
}

func asValueSlice(v types.Value) ([]types.Value, bool) {
	switch l := v.(type) {
	case *types.ConstList:
		return l.Slice(), true
	case *types.FlexList:
		out, err := l.Call(nil, "snapshot", nil, nil)
		if err != nil {
			return nil, false
		}
		return out.(*types.ConstList).Slice(), true
	default:
		return nil, false
	}
}

func fireOrThrow(ctx *Context, ej *types.Ejector, msg string) error {
	if ej != nil {
		_, err := ej.Fire(ctx.Thread, types.Str(msg))
		return err
	}
	return types.NewThrown(msg)
}
