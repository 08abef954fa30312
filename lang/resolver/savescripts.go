package resolver

import "github.com/mna/caplang/lang/ast"

// SaveScripts implements step 1: it walks the raw tree (before
// RecoverSlots) and gathers each object literal's Methods/Matchers slices
// into an immutable ast.Script, so every later pass reads a single
// dispatch-ready Script instead of re-deriving atom lookup from the raw
// slices. It must run before RecoverSlots.
func SaveScripts(root ast.Expr) error {
	return saveExpr(root)
}

func saveExpr(e ast.Expr) error {
	switch e := e.(type) {
	case nil:
	case *ast.NullExpr, *ast.CharExpr, *ast.DoubleExpr, *ast.IntExpr, *ast.StrExpr,
		*ast.NounExpr, *ast.BindingExpr, *ast.MetaContextExpr, *ast.MetaStateExpr:

	case *ast.AssignExpr:
		return saveExpr(e.Value)

	case *ast.CallExpr:
		if err := saveExpr(e.Obj); err != nil {
			return err
		}
		for _, a := range e.Args {
			if err := saveExpr(a); err != nil {
				return err
			}
		}
		for _, na := range e.NamedArgs {
			if err := saveExpr(na.Key); err != nil {
				return err
			}
			if err := saveExpr(na.Value); err != nil {
				return err
			}
		}

	case *ast.DefExpr:
		if err := saveExpr(e.Ejector); err != nil {
			return err
		}
		return saveExpr(e.Value)

	case *ast.SeqExpr:
		for _, s := range e.Exprs {
			if err := saveExpr(s); err != nil {
				return err
			}
		}

	case *ast.IfExpr:
		if err := saveExpr(e.Test); err != nil {
			return err
		}
		if err := saveExpr(e.Then); err != nil {
			return err
		}
		return saveExpr(e.Else)

	case *ast.EscapeExpr:
		if err := saveExpr(e.Body); err != nil {
			return err
		}
		return saveExpr(e.CatchBody)

	case *ast.FinallyExpr:
		if err := saveExpr(e.Body); err != nil {
			return err
		}
		return saveExpr(e.AtLast)

	case *ast.TryExpr:
		if err := saveExpr(e.Body); err != nil {
			return err
		}
		return saveExpr(e.CatchBody)

	case *ast.HideExpr:
		return saveExpr(e.Body)

	case *ast.ObjectExpr:
		if err := savePatt(e.Patt); err != nil {
			return err
		}
		for _, a := range e.Auditors {
			if err := saveExpr(a); err != nil {
				return err
			}
		}
		for _, m := range e.Methods {
			for _, p := range m.Patts {
				if err := savePatt(p); err != nil {
					return err
				}
			}
			for _, np := range m.NamedPatts {
				if err := savePatt(np); err != nil {
					return err
				}
			}
			if err := saveExpr(m.Guard); err != nil {
				return err
			}
			if err := saveExpr(m.Body); err != nil {
				return err
			}
		}
		for _, m := range e.Matchers {
			if err := savePatt(m.Patt); err != nil {
				return err
			}
			if err := saveExpr(m.Body); err != nil {
				return err
			}
		}
		script, err := ast.NewScript(objectDisplayName(e), e.Methods, e.Matchers)
		if err != nil {
			return err
		}
		e.Script = script

	default:
		panic("resolver: SaveScripts: unexpected expr type")
	}
	return nil
}

func savePatt(p ast.Patt) error {
	switch p := p.(type) {
	case nil:
		return nil
	case *ast.IgnorePatt:
		return saveExpr(p.Guard)
	case *ast.FinalPatt:
		return saveExpr(p.Guard)
	case *ast.VarPatt:
		return saveExpr(p.Guard)
	case *ast.BindingPatt:
		return nil
	case *ast.ListPatt:
		for _, sub := range p.Patts {
			if err := savePatt(sub); err != nil {
				return err
			}
		}
		return nil
	case *ast.ViaPatt:
		if err := saveExpr(p.Trans); err != nil {
			return err
		}
		return savePatt(p.Patt)
	case *ast.NamedPatt:
		if err := saveExpr(p.Key); err != nil {
			return err
		}
		if err := saveExpr(p.Default); err != nil {
			return err
		}
		return savePatt(p.Patt)
	default:
		panic("resolver: SaveScripts: unexpected patt type")
	}
}

// objectDisplayName derives a debug-friendly name from the object's own
// naming pattern, falling back to "_" for the anonymous/ignore case.
func objectDisplayName(e *ast.ObjectExpr) string {
	switch p := e.Patt.(type) {
	case *ast.FinalPatt:
		return p.Name
	case *ast.VarPatt:
		return p.Name
	default:
		return "_"
	}
}
