// Package compiler implements the last two passes of the pipeline,
// DischargeAuditors and RefactorStructure:
// deciding, for every object literal, whether it needs real audit machinery
// at construction time, and reserving the per-object bookkeeping the
// evaluator needs to run it.
package compiler

import "github.com/mna/caplang/lang/ast"

// Compile runs DischargeAuditors followed by RefactorStructure over root,
// mutating the tree in place.
func Compile(root ast.Expr) error {
	if err := DischargeAuditors(root); err != nil {
		return err
	}
	RefactorStructure(root)
	return nil
}

// DischargeAuditors walks every object literal and validates its Auditors
// list: each auditor expression must ultimately be something the evaluator
// can call ".audit(specimen)" or ".run(specimen)" on, which for this pass
// just means rejecting literals that can never produce such a value (a
// bare literal used directly as an auditor, e.g. "implements 1", is an
// error here rather than at every construction of the object). Real audit
// dispatch — invoking each auditor and memoizing its approval on the
// object's clipboard — is necessarily a runtime concern (the auditor is an
// arbitrary object, possibly from the ambient environment) and lives in the
// machine package's object-construction step.
func DischargeAuditors(root ast.Expr) error {
	return walkObjects(root, func(o *ast.ObjectExpr) error {
		for _, a := range o.Auditors {
			switch a.(type) {
			case *ast.NullExpr, *ast.CharExpr, *ast.DoubleExpr, *ast.IntExpr, *ast.StrExpr:
				return &staticAuditorError{name: o.Script.DisplayName}
			}
		}
		return nil
	})
}

type staticAuditorError struct{ name string }

func (e *staticAuditorError) Error() string {
	return "object " + e.name + ": literal value cannot be used as an auditor"
}

// RefactorStructure sets ObjectExpr.Clear: true when Auditors is trivially
// empty, letting the evaluator skip the audit clipboard and construct the
// object directly.
func RefactorStructure(root ast.Expr) {
	_ = walkObjects(root, func(o *ast.ObjectExpr) error {
		o.Clear = len(o.Auditors) == 0
		return nil
	})
}

// walkObjects calls fn for every ObjectExpr in the tree, innermost objects
// first (so fn can assume any nested object's own fields are already
// finalized).
func walkObjects(e ast.Expr, fn func(*ast.ObjectExpr) error) error {
	switch e := e.(type) {
	case nil:
		return nil
	case *ast.NullExpr, *ast.CharExpr, *ast.DoubleExpr, *ast.IntExpr, *ast.StrExpr,
		*ast.LocalNounExpr, *ast.FrameNounExpr, *ast.OuterNounExpr,
		*ast.LocalBindingExpr, *ast.FrameBindingExpr, *ast.OuterBindingExpr,
		*ast.MetaContextExpr, *ast.MetaStateExpr:
		return nil

	case *ast.LocalAssignExpr:
		return walkObjects(e.Value, fn)
	case *ast.FrameAssignExpr:
		return walkObjects(e.Value, fn)
	case *ast.OuterAssignExpr:
		return walkObjects(e.Value, fn)

	case *ast.CallExpr:
		if err := walkObjects(e.Obj, fn); err != nil {
			return err
		}
		for _, a := range e.Args {
			if err := walkObjects(a, fn); err != nil {
				return err
			}
		}
		for _, na := range e.NamedArgs {
			if err := walkObjects(na.Key, fn); err != nil {
				return err
			}
			if err := walkObjects(na.Value, fn); err != nil {
				return err
			}
		}
		return nil

	case *ast.DefExpr:
		if err := walkObjectsPatt(e.Patt, fn); err != nil {
			return err
		}
		if err := walkObjects(e.Ejector, fn); err != nil {
			return err
		}
		return walkObjects(e.Value, fn)

	case *ast.SeqExpr:
		for _, s := range e.Exprs {
			if err := walkObjects(s, fn); err != nil {
				return err
			}
		}
		return nil

	case *ast.IfExpr:
		if err := walkObjects(e.Test, fn); err != nil {
			return err
		}
		if err := walkObjects(e.Then, fn); err != nil {
			return err
		}
		return walkObjects(e.Else, fn)

	case *ast.EscapeExpr:
		if err := walkObjects(e.Body, fn); err != nil {
			return err
		}
		return walkObjects(e.CatchBody, fn)

	case *ast.FinallyExpr:
		if err := walkObjects(e.Body, fn); err != nil {
			return err
		}
		return walkObjects(e.AtLast, fn)

	case *ast.TryExpr:
		if err := walkObjects(e.Body, fn); err != nil {
			return err
		}
		return walkObjects(e.CatchBody, fn)

	case *ast.HideExpr:
		return walkObjects(e.Body, fn)

	case *ast.ObjectExpr:
		for _, a := range e.Auditors {
			if err := walkObjects(a, fn); err != nil {
				return err
			}
		}
		for _, m := range e.Methods {
			if err := walkObjects(m.Guard, fn); err != nil {
				return err
			}
			if err := walkObjects(m.Body, fn); err != nil {
				return err
			}
		}
		for _, m := range e.Matchers {
			if err := walkObjects(m.Body, fn); err != nil {
				return err
			}
		}
		for _, c := range e.Captures {
			if err := walkObjects(c, fn); err != nil {
				return err
			}
		}
		return fn(e)

	default:
		panic("compiler: unexpected expr type")
	}
}

func walkObjectsPatt(p ast.Patt, fn func(*ast.ObjectExpr) error) error {
	switch p := p.(type) {
	case nil:
		return nil
	case *ast.NounPatt:
		return walkObjects(p.Guard, fn)
	case *ast.FinalSlotPatt:
		return walkObjects(p.Guard, fn)
	case *ast.VarSlotPatt:
		return walkObjects(p.Guard, fn)
	case *ast.FinalBindingPatt:
		return walkObjects(p.Guard, fn)
	case *ast.VarBindingPatt:
		return walkObjects(p.Guard, fn)
	case *ast.IgnorePatt:
		return walkObjects(p.Guard, fn)
	case *ast.BindingPatt:
		return nil
	case *ast.ListPatt:
		for _, sub := range p.Patts {
			if err := walkObjectsPatt(sub, fn); err != nil {
				return err
			}
		}
		return nil
	case *ast.ViaPatt:
		if err := walkObjects(p.Trans, fn); err != nil {
			return err
		}
		return walkObjectsPatt(p.Patt, fn)
	case *ast.NamedPatt:
		if err := walkObjects(p.Key, fn); err != nil {
			return err
		}
		if err := walkObjects(p.Default, fn); err != nil {
			return err
		}
		return walkObjectsPatt(p.Patt, fn)
	default:
		panic("compiler: unexpected patt type")
	}
}
