package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/caplang/lang/ast"
	"github.com/mna/caplang/lang/layout"
	"github.com/mna/caplang/lang/resolver"
)

func chunk(exprs ...ast.Expr) ast.Expr {
	return &ast.SeqExpr{Exprs: exprs}
}

func TestAnalyzeLocalNoun(t *testing.T) {
	root := chunk(
		&ast.DefExpr{
			Patt:  &ast.FinalPatt{Name: "x", Sigil: ast.SigilNone},
			Value: &ast.IntExpr{Value: 1},
		},
		&ast.NounExpr{Name: "x"},
	)
	resolver.RecoverSlots(root)

	res, err := layout.Analyze(root, nil, false)
	require.NoError(t, err)

	se := res.Root.(*ast.SeqExpr)
	ref, ok := se.Exprs[1].(*ast.LocalNounExpr)
	require.True(t, ok, "expected *ast.LocalNounExpr, got %T", se.Exprs[1])
	assert.Equal(t, "x", ref.Name)
	assert.Equal(t, 0, ref.Idx)
	assert.Equal(t, 1, res.LocalSize)
}

func TestAnalyzeOuterNoun(t *testing.T) {
	root := ast.Expr(&ast.NounExpr{Name: "traceln"})
	resolver.RecoverSlots(root)

	res, err := layout.Analyze(root, map[string]bool{"traceln": true}, false)
	require.NoError(t, err)

	ref, ok := res.Root.(*ast.OuterNounExpr)
	require.True(t, ok, "expected *ast.OuterNounExpr, got %T", res.Root)
	assert.Equal(t, 0, ref.Idx)
	assert.Equal(t, []string{"traceln"}, res.OuterNames)
}

func TestAnalyzeUndefinedName(t *testing.T) {
	root := ast.Expr(&ast.NounExpr{Name: "nope"})
	_, err := layout.Analyze(root, nil, false)
	assert.Error(t, err)
}

func TestAnalyzeAssignToFinalIsRejected(t *testing.T) {
	root := chunk(
		&ast.DefExpr{
			Patt:  &ast.FinalPatt{Name: "x", Sigil: ast.SigilNone},
			Value: &ast.IntExpr{Value: 1},
		},
		&ast.AssignExpr{Name: "x", Value: &ast.IntExpr{Value: 2}},
	)
	resolver.RecoverSlots(root)

	_, err := layout.Analyze(root, nil, false)
	assert.Error(t, err)
}

func TestAnalyzeAssignToFinalSlotIsRejected(t *testing.T) {
	root := chunk(
		&ast.DefExpr{
			Patt:  &ast.FinalPatt{Name: "x", Sigil: ast.SigilSlot},
			Value: &ast.IntExpr{Value: 1},
		},
		&ast.AssignExpr{Name: "x", Value: &ast.IntExpr{Value: 2}},
	)
	resolver.RecoverSlots(root)

	_, err := layout.Analyze(root, nil, false)
	assert.Error(t, err)
}

func TestAnalyzeVarAssignIsAllowed(t *testing.T) {
	root := chunk(
		&ast.DefExpr{
			Patt:  &ast.VarPatt{Name: "n", Sigil: ast.SigilNone},
			Value: &ast.IntExpr{Value: 0},
		},
		&ast.AssignExpr{
			Name: "n",
			Value: &ast.CallExpr{
				Obj:  &ast.NounExpr{Name: "n"},
				Verb: "add",
				Args: []ast.Expr{&ast.IntExpr{Value: 1}},
			},
		},
	)
	resolver.RecoverSlots(root)

	res, err := layout.Analyze(root, nil, false)
	require.NoError(t, err)

	se := res.Root.(*ast.SeqExpr)
	assign, ok := se.Exprs[1].(*ast.LocalAssignExpr)
	require.True(t, ok, "expected *ast.LocalAssignExpr, got %T", se.Exprs[1])
	assert.Equal(t, 0, assign.Idx)

	call := assign.Value.(*ast.CallExpr)
	ref, ok := call.Obj.(*ast.LocalNounExpr)
	require.True(t, ok)
	assert.Equal(t, 0, ref.Idx)
}

func TestAnalyzeFrameCaptureOfEnclosingVar(t *testing.T) {
	obj := &ast.ObjectExpr{
		Patt: &ast.FinalPatt{Name: "counter", Sigil: ast.SigilNone},
		Methods: []*ast.Method{
			{
				Verb: "bump",
				Body: &ast.AssignExpr{
					Name: "n",
					Value: &ast.CallExpr{
						Obj:  &ast.NounExpr{Name: "n"},
						Verb: "add",
						Args: []ast.Expr{&ast.IntExpr{Value: 1}},
					},
				},
			},
		},
	}
	root := chunk(
		&ast.DefExpr{
			Patt:  &ast.VarPatt{Name: "n", Sigil: ast.SigilNone},
			Value: &ast.IntExpr{Value: 0},
		},
		obj,
	)
	resolver.RecoverSlots(root)

	_, err := layout.Analyze(root, nil, false)
	require.NoError(t, err)

	require.Len(t, obj.FrameNames, 1)
	assert.Equal(t, "n", obj.FrameNames[0])
	require.Len(t, obj.Captures, 1)
	capture, ok := obj.Captures[0].(*ast.LocalBindingExpr)
	require.True(t, ok, "expected *ast.LocalBindingExpr capture, got %T", obj.Captures[0])
	assert.Equal(t, 0, capture.Idx)

	assign, ok := obj.Methods[0].Body.(*ast.FrameAssignExpr)
	require.True(t, ok, "expected *ast.FrameAssignExpr, got %T", obj.Methods[0].Body)
	assert.Equal(t, 0, assign.Idx)
}

func TestAnalyzeObjectSelfReference(t *testing.T) {
	obj := &ast.ObjectExpr{
		Patt: &ast.FinalPatt{Name: "self", Sigil: ast.SigilNone},
		Methods: []*ast.Method{
			{
				Verb: "me",
				Body: &ast.NounExpr{Name: "self"},
			},
		},
	}
	resolver.RecoverSlots(obj)

	_, err := layout.Analyze(obj, nil, false)
	require.NoError(t, err)

	require.Len(t, obj.FrameNames, 1)
	assert.Equal(t, "self", obj.FrameNames[0])
	_, ok := obj.Methods[0].Body.(*ast.FrameNounExpr)
	assert.True(t, ok, "expected *ast.FrameNounExpr, got %T", obj.Methods[0].Body)
}

func TestAnalyzeCannotRedefineUsedOuterNameAtTopLevel(t *testing.T) {
	root := chunk(
		&ast.NounExpr{Name: "traceln"},
		&ast.DefExpr{
			Patt:  &ast.FinalPatt{Name: "traceln", Sigil: ast.SigilNone},
			Value: &ast.IntExpr{Value: 1},
		},
	)
	resolver.RecoverSlots(root)

	_, err := layout.Analyze(root, map[string]bool{"traceln": true}, false)
	assert.Error(t, err)
}

func TestAnalyzeRedefinitionAllowedInRepl(t *testing.T) {
	root := chunk(
		&ast.NounExpr{Name: "traceln"},
		&ast.DefExpr{
			Patt:  &ast.FinalPatt{Name: "traceln", Sigil: ast.SigilNone},
			Value: &ast.IntExpr{Value: 1},
		},
	)
	resolver.RecoverSlots(root)

	res, err := layout.Analyze(root, map[string]bool{"traceln": true}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"traceln"}, res.TopLocalNames)
}
