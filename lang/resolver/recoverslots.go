package resolver

import "github.com/mna/caplang/lang/ast"

// RecoverSlots normalizes the raw FinalPatt/VarPatt (with their Sigil)
// into the six syntactically distinct shapes NounPatt, FinalSlotPatt,
// VarSlotPatt, FinalBindingPatt, VarBindingPatt and IgnorePatt (already
// precise). It mutates the tree in place, rewriting only the Patt-typed
// fields it finds; every other field is left untouched.
//
// RecoverSlots must run before LayoutScopes/BindNouns (layout.Analyze): those
// passes assume every pattern in the tree is already one of the precise
// shapes.
func RecoverSlots(root ast.Expr) {
	recoverExpr(root)
}

func recoverExpr(e ast.Expr) {
	switch e := e.(type) {
	case nil:
	case *ast.NullExpr, *ast.CharExpr, *ast.DoubleExpr, *ast.IntExpr, *ast.StrExpr,
		*ast.NounExpr, *ast.BindingExpr, *ast.MetaContextExpr, *ast.MetaStateExpr:
		// leaves, nothing to recover

	case *ast.AssignExpr:
		recoverExpr(e.Value)

	case *ast.CallExpr:
		recoverExpr(e.Obj)
		for _, a := range e.Args {
			recoverExpr(a)
		}
		for _, na := range e.NamedArgs {
			recoverExpr(na.Key)
			recoverExpr(na.Value)
		}

	case *ast.DefExpr:
		e.Patt = recoverPatt(e.Patt)
		recoverExpr(e.Ejector)
		recoverExpr(e.Value)

	case *ast.SeqExpr:
		for _, s := range e.Exprs {
			recoverExpr(s)
		}

	case *ast.IfExpr:
		recoverExpr(e.Test)
		recoverExpr(e.Then)
		recoverExpr(e.Else)

	case *ast.EscapeExpr:
		e.EjPatt = recoverPatt(e.EjPatt)
		recoverExpr(e.Body)
		if e.CatchPatt != nil {
			e.CatchPatt = recoverPatt(e.CatchPatt)
			recoverExpr(e.CatchBody)
		}

	case *ast.FinallyExpr:
		recoverExpr(e.Body)
		recoverExpr(e.AtLast)

	case *ast.TryExpr:
		recoverExpr(e.Body)
		e.CatchPatt = recoverPatt(e.CatchPatt)
		recoverExpr(e.CatchBody)

	case *ast.HideExpr:
		recoverExpr(e.Body)

	case *ast.ObjectExpr:
		e.Patt = recoverPatt(e.Patt)
		for _, a := range e.Auditors {
			recoverExpr(a)
		}
		for _, m := range e.Methods {
			for i, p := range m.Patts {
				m.Patts[i] = recoverPatt(p)
			}
			for _, np := range m.NamedPatts {
				np.Patt = recoverPatt(np.Patt)
				recoverExpr(np.Default)
			}
			recoverExpr(m.Guard)
			recoverExpr(m.Body)
		}
		for _, m := range e.Matchers {
			m.Patt = recoverPatt(m.Patt)
			recoverExpr(m.Body)
		}

	default:
		panic("resolver: RecoverSlots: unexpected expr type")
	}
}

// recoverPatt returns the normalized pattern, rewriting FinalPatt/VarPatt
// into their precise shape and recursing into structural patterns.
func recoverPatt(p ast.Patt) ast.Patt {
	switch p := p.(type) {
	case nil:
		return nil

	case *ast.FinalPatt:
		recoverExpr(p.Guard)
		switch p.Sigil {
		case ast.SigilNone:
			return &ast.NounPatt{Pos: p.Pos, Name: p.Name, Guard: p.Guard}
		case ast.SigilSlot:
			return &ast.FinalSlotPatt{Pos: p.Pos, Name: p.Name, Guard: p.Guard}
		case ast.SigilBinding:
			return &ast.FinalBindingPatt{Pos: p.Pos, Name: p.Name, Guard: p.Guard}
		default:
			panic("resolver: RecoverSlots: invalid Sigil on FinalPatt")
		}

	case *ast.VarPatt:
		recoverExpr(p.Guard)
		switch p.Sigil {
		case ast.SigilNone, ast.SigilSlot:
			return &ast.VarSlotPatt{Pos: p.Pos, Name: p.Name, Guard: p.Guard}
		case ast.SigilBinding:
			return &ast.VarBindingPatt{Pos: p.Pos, Name: p.Name, Guard: p.Guard}
		default:
			panic("resolver: RecoverSlots: invalid Sigil on VarPatt")
		}

	case *ast.IgnorePatt:
		recoverExpr(p.Guard)
		return p

	case *ast.BindingPatt:
		return p

	case *ast.ListPatt:
		for i, sub := range p.Patts {
			p.Patts[i] = recoverPatt(sub)
		}
		return p

	case *ast.ViaPatt:
		recoverExpr(p.Trans)
		p.Patt = recoverPatt(p.Patt)
		return p

	case *ast.NamedPatt:
		recoverExpr(p.Key)
		p.Patt = recoverPatt(p.Patt)
		recoverExpr(p.Default)
		return p

	default:
		panic("resolver: RecoverSlots: unexpected patt type")
	}
}
