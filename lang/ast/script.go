package ast

import (
	"fmt"

	"github.com/mna/caplang/lang/token"
)

// Atom identifies a method by its verb and positional arity, the key used
// for method lookup.
type Atom struct {
	Verb  string
	Arity int
}

func (a Atom) String() string { return fmt.Sprintf("%s/%d", a.Verb, a.Arity) }

// Method is one method definition inside an object literal.
type Method struct {
	Pos        token.Pos
	Doc        string
	Verb       string
	Patts      []Patt      // positional parameter patterns
	NamedPatts []*NamedPatt // named parameter patterns
	Guard      Expr         // optional result guard
	Body       Expr

	// LocalSize is the max local-slot index used inside Body (plus any
	// reserve the implementation chooses), computed by the BindNouns/compiler
	// passes.
	LocalSize int
}

// Atom returns the method's dispatch key.
func (m *Method) Atom() Atom { return Atom{Verb: m.Verb, Arity: len(m.Patts)} }

// Matcher is one matcher clause inside an object literal, tried in order
// when no method's atom matches a call.
type Matcher struct {
	Pos       token.Pos
	Patt      Patt
	Body      Expr
	LocalSize int
}

// Script is the immutable ordered tuple of methods and matchers gathered
// from an object literal by the SaveScripts pass.
type Script struct {
	DisplayName string
	Methods     []*Method
	Matchers    []*Matcher

	byAtom map[Atom]*Method
}

// NewScript builds an immutable Script from the given methods and matchers,
// indexing methods by atom for O(1) dispatch lookup. It returns an error if
// two methods share the same atom.
func NewScript(displayName string, methods []*Method, matchers []*Matcher) (*Script, error) {
	byAtom := make(map[Atom]*Method, len(methods))
	for _, m := range methods {
		a := m.Atom()
		if _, ok := byAtom[a]; ok {
			return nil, fmt.Errorf("duplicate method for %s", a)
		}
		byAtom[a] = m
	}
	return &Script{
		DisplayName: displayName,
		Methods:     methods,
		Matchers:    matchers,
		byAtom:      byAtom,
	}, nil
}

// Lookup returns the method matching atom, if any.
func (s *Script) Lookup(a Atom) (*Method, bool) {
	m, ok := s.byAtom[a]
	return m, ok
}
