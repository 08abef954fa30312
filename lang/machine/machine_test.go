package machine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/caplang/lang/ast"
	"github.com/mna/caplang/lang/types"
)

func chunk(exprs ...ast.Expr) ast.Expr {
	return &ast.SeqExpr{Exprs: exprs}
}

func newTestThread() *types.Thread {
	return &types.Thread{MaxSteps: 10000, MaxCallStackDepth: 256}
}

func TestEvaluateDefAndArithmetic(t *testing.T) {
	root := chunk(
		&ast.DefExpr{
			Patt:  &ast.FinalPatt{Name: "x", Sigil: ast.SigilNone},
			Value: &ast.IntExpr{Value: 3},
		},
		&ast.CallExpr{
			Obj:  &ast.NounExpr{Name: "x"},
			Verb: "add",
			Args: []ast.Expr{&ast.IntExpr{Value: 1}},
		},
	)

	v, topLocals, err := Evaluate(context.Background(), newTestThread(), root, nil, "<test>", false)
	require.NoError(t, err)
	assert.Equal(t, types.Int64(4), v)
	require.Len(t, topLocals, 1)
	assert.Equal(t, "x", topLocals[0].Name)
	assert.Equal(t, types.Int64(3), topLocals[0].Binding.Slot.Get())
}

func TestEvaluateReportsTopLocalsInRepl(t *testing.T) {
	root := &ast.DefExpr{
		Patt:  &ast.FinalPatt{Name: "x", Sigil: ast.SigilNone},
		Value: &ast.IntExpr{Value: 3},
	}

	_, topLocals, err := Evaluate(context.Background(), newTestThread(), root, nil, "<test>", true)
	require.NoError(t, err)
	require.Len(t, topLocals, 1)
	assert.Equal(t, "x", topLocals[0].Name)
	assert.Equal(t, types.Int64(3), topLocals[0].Binding.Slot.Get())
}

func TestEvaluateEscapeOnlyReturnsEjectedValue(t *testing.T) {
	root := &ast.EscapeExpr{
		EjPatt: &ast.FinalPatt{Name: "ej", Sigil: ast.SigilNone},
		Body: chunk(
			&ast.CallExpr{
				Obj:  &ast.NounExpr{Name: "ej"},
				Verb: "run",
				Args: []ast.Expr{&ast.IntExpr{Value: 7}},
			},
			&ast.IntExpr{Value: 99},
		),
	}

	v, _, err := Evaluate(context.Background(), newTestThread(), root, nil, "<test>", false)
	require.NoError(t, err)
	assert.Equal(t, types.Int64(7), v)
}

func TestEvaluateEscapeWithCatchBindsEjectedValue(t *testing.T) {
	root := &ast.EscapeExpr{
		EjPatt: &ast.FinalPatt{Name: "ej", Sigil: ast.SigilNone},
		Body: &ast.CallExpr{
			Obj:  &ast.NounExpr{Name: "ej"},
			Verb: "run",
			Args: []ast.Expr{&ast.IntExpr{Value: 7}},
		},
		CatchPatt: &ast.FinalPatt{Name: "caught", Sigil: ast.SigilNone},
		CatchBody: &ast.CallExpr{
			Obj:  &ast.NounExpr{Name: "caught"},
			Verb: "add",
			Args: []ast.Expr{&ast.IntExpr{Value: 1}},
		},
	}

	v, _, err := Evaluate(context.Background(), newTestThread(), root, nil, "<test>", false)
	require.NoError(t, err)
	assert.Equal(t, types.Int64(8), v)
}

func TestEvaluateTryCatchesUserException(t *testing.T) {
	root := &ast.TryExpr{
		Body: &ast.CallExpr{
			Obj:  &ast.IntExpr{Value: 1},
			Verb: "noSuchVerb",
		},
		CatchPatt: &ast.FinalPatt{Name: "p", Sigil: ast.SigilNone},
		CatchBody: &ast.NounExpr{Name: "p"},
	}

	v, _, err := Evaluate(context.Background(), newTestThread(), root, nil, "<test>", false)
	require.NoError(t, err)
	sealed, ok := v.(*types.SealedException)
	require.True(t, ok, "expected *types.SealedException, got %T", v)
	assert.Contains(t, sealed.Payload.String(), "noSuchVerb")
}

func TestEvaluateFinallyRunsAtLastOnNormalExit(t *testing.T) {
	root := chunk(
		&ast.DefExpr{
			Patt:  &ast.VarPatt{Name: "ran", Sigil: ast.SigilNone},
			Value: &ast.IntExpr{Value: 0},
		},
		&ast.FinallyExpr{
			Body: &ast.IntExpr{Value: 5},
			AtLast: &ast.AssignExpr{
				Name:  "ran",
				Value: &ast.IntExpr{Value: 1},
			},
		},
		&ast.NounExpr{Name: "ran"},
	)

	v, _, err := Evaluate(context.Background(), newTestThread(), root, nil, "<test>", false)
	require.NoError(t, err)
	assert.Equal(t, types.Int64(1), v)
}

func TestEvaluateObjectMethodDispatchAndSelfReference(t *testing.T) {
	root := chunk(
		&ast.ObjectExpr{
			Patt: &ast.FinalPatt{Name: "o", Sigil: ast.SigilNone},
			Methods: []*ast.Method{
				{Verb: "get", Body: &ast.IntExpr{Value: 1}},
				{Verb: "getSelf", Body: &ast.NounExpr{Name: "o"}},
			},
		},
		&ast.CallExpr{
			Obj:  &ast.NounExpr{Name: "o"},
			Verb: "getSelf",
		},
	)

	v, _, err := Evaluate(context.Background(), newTestThread(), root, nil, "<test>", false)
	require.NoError(t, err)

	self, ok := v.(types.Value)
	require.True(t, ok)
	got, err := self.Call(newTestThread(), "get", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, types.Int64(1), got)
}

func TestEvaluateFrameAssignMutatesCapturedVar(t *testing.T) {
	root := chunk(
		&ast.DefExpr{
			Patt:  &ast.VarPatt{Name: "n", Sigil: ast.SigilNone},
			Value: &ast.IntExpr{Value: 0},
		},
		&ast.ObjectExpr{
			Patt: &ast.FinalPatt{Name: "counter", Sigil: ast.SigilNone},
			Methods: []*ast.Method{
				{
					Verb: "inc",
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
		},
		&ast.CallExpr{Obj: &ast.NounExpr{Name: "counter"}, Verb: "inc"},
		&ast.CallExpr{Obj: &ast.NounExpr{Name: "counter"}, Verb: "inc"},
		&ast.CallExpr{Obj: &ast.NounExpr{Name: "counter"}, Verb: "inc"},
		&ast.NounExpr{Name: "n"},
	)

	v, _, err := Evaluate(context.Background(), newTestThread(), root, nil, "<test>", false)
	require.NoError(t, err)
	assert.Equal(t, types.Int64(3), v)
}

func TestEvaluateMatcherFallback(t *testing.T) {
	root := chunk(
		&ast.ObjectExpr{
			Patt: &ast.FinalPatt{Name: "o", Sigil: ast.SigilNone},
			Matchers: []*ast.Matcher{
				{
					Patt: &ast.ListPatt{Patts: []ast.Patt{
						&ast.FinalPatt{Name: "verb", Sigil: ast.SigilNone},
						&ast.FinalPatt{Name: "args", Sigil: ast.SigilNone},
					}},
					Body: &ast.NounExpr{Name: "verb"},
				},
			},
		},
		&ast.CallExpr{Obj: &ast.NounExpr{Name: "o"}, Verb: "whatever", Args: []ast.Expr{&ast.IntExpr{Value: 1}}},
	)

	v, _, err := Evaluate(context.Background(), newTestThread(), root, nil, "<test>", false)
	require.NoError(t, err)
	assert.Equal(t, types.Str("whatever"), v)
}

func TestEvaluateAssignToFinalIsRejectedAtLayout(t *testing.T) {
	root := chunk(
		&ast.DefExpr{
			Patt:  &ast.FinalPatt{Name: "x", Sigil: ast.SigilNone},
			Value: &ast.IntExpr{Value: 1},
		},
		&ast.AssignExpr{Name: "x", Value: &ast.IntExpr{Value: 2}},
	)

	_, _, err := Evaluate(context.Background(), newTestThread(), root, nil, "<test>", false)
	assert.Error(t, err)
}
