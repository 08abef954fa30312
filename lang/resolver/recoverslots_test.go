package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/caplang/lang/ast"
	"github.com/mna/caplang/lang/token"
)

func TestRecoverSlotsPlainNoun(t *testing.T) {
	def := &ast.DefExpr{
		Patt:  &ast.FinalPatt{Name: "x", Sigil: ast.SigilNone},
		Value: &ast.IntExpr{Value: 1},
	}
	RecoverSlots(def)

	np, ok := def.Patt.(*ast.NounPatt)
	require.True(t, ok, "expected *ast.NounPatt, got %T", def.Patt)
	assert.Equal(t, "x", np.Name)
}

func TestRecoverSlotsSlotSigil(t *testing.T) {
	def := &ast.DefExpr{
		Patt:  &ast.FinalPatt{Name: "x", Sigil: ast.SigilSlot},
		Value: &ast.IntExpr{Value: 1},
	}
	RecoverSlots(def)

	_, ok := def.Patt.(*ast.FinalSlotPatt)
	assert.True(t, ok, "expected *ast.FinalSlotPatt, got %T", def.Patt)
}

func TestRecoverSlotsBindingSigil(t *testing.T) {
	def := &ast.DefExpr{
		Patt:  &ast.FinalPatt{Name: "x", Sigil: ast.SigilBinding},
		Value: &ast.IntExpr{Value: 1},
	}
	RecoverSlots(def)

	_, ok := def.Patt.(*ast.FinalBindingPatt)
	assert.True(t, ok, "expected *ast.FinalBindingPatt, got %T", def.Patt)
}

func TestRecoverSlotsVarPatt(t *testing.T) {
	def := &ast.DefExpr{
		Patt:  &ast.VarPatt{Name: "n", Sigil: ast.SigilNone},
		Value: &ast.IntExpr{Value: 0},
	}
	RecoverSlots(def)

	_, ok := def.Patt.(*ast.VarSlotPatt)
	assert.True(t, ok, "expected *ast.VarSlotPatt, got %T", def.Patt)
}

func TestRecoverSlotsNestedInListPatt(t *testing.T) {
	def := &ast.DefExpr{
		Patt: &ast.ListPatt{Patts: []ast.Patt{
			&ast.FinalPatt{Name: "a", Sigil: ast.SigilNone},
			&ast.VarPatt{Name: "b", Sigil: ast.SigilSlot},
		}},
		Value: &ast.NounExpr{Name: "pair"},
	}
	RecoverSlots(def)

	lp, ok := def.Patt.(*ast.ListPatt)
	require.True(t, ok)
	require.Len(t, lp.Patts, 2)
	_, ok = lp.Patts[0].(*ast.NounPatt)
	assert.True(t, ok)
	_, ok = lp.Patts[1].(*ast.VarSlotPatt)
	assert.True(t, ok)
}

func TestRecoverSlotsRecursesIntoObjectLiteral(t *testing.T) {
	obj := &ast.ObjectExpr{
		Pos:  token.Pos{Line: 1, Col: 1},
		Patt: &ast.FinalPatt{Name: "point", Sigil: ast.SigilNone},
		Methods: []*ast.Method{
			{
				Verb: "getX",
				Patts: []ast.Patt{
					&ast.FinalPatt{Name: "unused", Sigil: ast.SigilNone},
				},
				Body: &ast.NounExpr{Name: "x"},
			},
		},
	}
	RecoverSlots(obj)

	_, ok := obj.Patt.(*ast.NounPatt)
	assert.True(t, ok)
	_, ok = obj.Methods[0].Patts[0].(*ast.NounPatt)
	assert.True(t, ok)
}

func TestRecoverSlotsIgnorePattPreservesGuard(t *testing.T) {
	ig := &ast.IgnorePatt{Guard: &ast.NounExpr{Name: "Int"}}
	out := recoverPatt(ig)
	assert.Same(t, ig, out)
}
