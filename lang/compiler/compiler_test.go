package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/caplang/lang/ast"
)

func mustScript(t *testing.T, o *ast.ObjectExpr) {
	t.Helper()
	s, err := ast.NewScript("test", o.Methods, o.Matchers)
	require.NoError(t, err)
	o.Script = s
}

func TestRefactorStructureMarksClearWhenNoAuditors(t *testing.T) {
	o := &ast.ObjectExpr{Patt: &ast.IgnorePatt{}}
	mustScript(t, o)

	RefactorStructure(o)
	assert.True(t, o.Clear)
}

func TestRefactorStructureMarksNotClearWithAuditors(t *testing.T) {
	o := &ast.ObjectExpr{
		Patt:     &ast.IgnorePatt{},
		Auditors: []ast.Expr{&ast.OuterNounExpr{Name: "DeepFrozen"}},
	}
	mustScript(t, o)

	RefactorStructure(o)
	assert.False(t, o.Clear)
}

func TestDischargeAuditorsRejectsLiteralAuditor(t *testing.T) {
	o := &ast.ObjectExpr{
		Patt:     &ast.IgnorePatt{},
		Auditors: []ast.Expr{&ast.IntExpr{Value: 1}},
	}
	mustScript(t, o)

	err := DischargeAuditors(o)
	assert.Error(t, err)
}

func TestRefactorStructureVisitsNestedObjects(t *testing.T) {
	inner := &ast.ObjectExpr{Patt: &ast.IgnorePatt{}}
	mustScript(t, inner)
	outer := &ast.ObjectExpr{
		Patt: &ast.IgnorePatt{},
		Methods: []*ast.Method{
			{Verb: "make", Body: inner},
		},
	}
	mustScript(t, outer)

	RefactorStructure(outer)
	assert.True(t, inner.Clear)
	assert.True(t, outer.Clear)
}
