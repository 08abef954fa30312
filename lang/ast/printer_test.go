package ast_test

import (
	"bytes"
	"flag"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/mna/caplang/internal/evaltest"
	"github.com/mna/caplang/lang/ast"
)

var testUpdatePrinterTests = flag.Bool("test.update-printer-tests", false, "If set, replace expected printer test results with actual results.")

// buildCase returns the hand-built tree for one testdata/in/*.case file,
// keyed by file name since this package has no front-end parser to build
// trees from source text.
func buildCase(t *testing.T, name string) ast.Expr {
	t.Helper()
	switch name {
	case "seq-basic.case":
		return &ast.SeqExpr{Exprs: []ast.Expr{
			&ast.IntExpr{Value: 1},
			&ast.NounExpr{Name: "x"},
		}}
	case "def-and-local.case":
		return &ast.SeqExpr{Exprs: []ast.Expr{
			&ast.DefExpr{
				Patt:  &ast.NounPatt{Name: "x", Index: 0},
				Value: &ast.IntExpr{Value: 1},
			},
			&ast.LocalNounExpr{Name: "x", Idx: 0},
		}}
	default:
		t.Fatalf("no hand-built tree registered for testdata case %q", name)
		return nil
	}
}

func TestPrinter(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range evaltest.SourceFiles(t, srcDir, ".case") {
		t.Run(fi.Name(), func(t *testing.T) {
			root := buildCase(t, fi.Name())

			var buf bytes.Buffer
			p := &ast.Printer{Output: &buf}
			if err := p.Print(root); err != nil {
				t.Fatal(err)
			}

			evaltest.DiffOutput(t, fi, buf.String(), resultDir, testUpdatePrinterTests)
		})
	}
}

// TestPrinterBigInt exercises a describe() branch (*IntExpr with a
// non-nil Big) the hand-built testdata cases above don't reach.
func TestPrinterBigInt(t *testing.T) {
	root := &ast.IntExpr{Big: big.NewInt(9000)}

	var buf bytes.Buffer
	p := &ast.Printer{Output: &buf}
	if err := p.Print(root); err != nil {
		t.Fatal(err)
	}

	const want = "int(9000)\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
