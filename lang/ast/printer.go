package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints a node tree, one line per node, indented by depth.
// It is a debugging aid only; nothing in the pipeline depends on its
// output format.
type Printer struct {
	Output io.Writer
}

// Print walks n and writes one indented line per node to p.Output.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit {
		p.depth--
		return nil
	}
	if p.err != nil {
		return nil
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(". ", p.depth), describe(n))
	p.depth++
	return p
}

func describe(n Node) string {
	switch n := n.(type) {
	case *NullExpr:
		return "null"
	case *CharExpr:
		return fmt.Sprintf("char(%q)", n.Value)
	case *DoubleExpr:
		return fmt.Sprintf("double(%v)", n.Value)
	case *IntExpr:
		if n.Big != nil {
			return fmt.Sprintf("int(%s)", n.Big.String())
		}
		return fmt.Sprintf("int(%d)", n.Value)
	case *StrExpr:
		return fmt.Sprintf("str(%q)", n.Value)
	case *NounExpr:
		return fmt.Sprintf("noun(%s)", n.Name)
	case *LocalNounExpr:
		return fmt.Sprintf("local-noun(%s, %d)", n.Name, n.Idx)
	case *FrameNounExpr:
		return fmt.Sprintf("frame-noun(%s, %d)", n.Name, n.Idx)
	case *OuterNounExpr:
		return fmt.Sprintf("outer-noun(%s, %d)", n.Name, n.Idx)
	case *CallExpr:
		return fmt.Sprintf("call(.%s, %d args)", n.Verb, len(n.Args))
	case *DefExpr:
		return "def"
	case *SeqExpr:
		return fmt.Sprintf("seq(%d)", len(n.Exprs))
	case *IfExpr:
		return "if"
	case *EscapeExpr:
		if n.CatchPatt == nil {
			return "escape-only"
		}
		return "escape"
	case *FinallyExpr:
		return "finally"
	case *TryExpr:
		return "try"
	case *HideExpr:
		return "hide"
	case *ObjectExpr:
		return fmt.Sprintf("object(clear=%t)", n.Clear)
	case *MetaContextExpr:
		return "meta.context"
	case *MetaStateExpr:
		return "meta.getState"
	case *IgnorePatt:
		return "ignore-patt"
	case *NounPatt:
		return fmt.Sprintf("noun-patt(%s, %d)", n.Name, n.Index)
	case *FinalSlotPatt:
		return fmt.Sprintf("final-slot-patt(%s, %d)", n.Name, n.Index)
	case *VarSlotPatt:
		return fmt.Sprintf("var-slot-patt(%s, %d)", n.Name, n.Index)
	case *FinalBindingPatt:
		return fmt.Sprintf("final-binding-patt(%s, %d)", n.Name, n.Index)
	case *VarBindingPatt:
		return fmt.Sprintf("var-binding-patt(%s, %d)", n.Name, n.Index)
	case *ListPatt:
		return fmt.Sprintf("list-patt(%d)", len(n.Patts))
	default:
		return fmt.Sprintf("%T", n)
	}
}
