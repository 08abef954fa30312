package types

import "fmt"

// Iterable abstracts a sequence of values that can be walked with
// Iterate, using Call-based verb dispatch on the consuming side instead
// of direct Go methods.
type Iterable interface {
	Value
	Iterate() Iterator
}

// Iterator yields successive elements; the caller must call Done once
// finished with it.
type Iterator interface {
	Next(p *Value) bool
	Done()
}

// Tuple is a fixed pair (or larger group) of values, yielded as the
// index/value or key/value pairs of list and map iteration.
type Tuple []Value

func (t Tuple) String() string {
	s := "["
	for i, v := range t {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s + "]"
}
func (t Tuple) TypeName() string { return "Tuple" }
func (t Tuple) Call(th *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "get":
		i, err := asIndex(args, verb, len(t))
		if err != nil {
			return nil, err
		}
		return t[i], nil
	case "size":
		return Int64(len(t)), nil
	}
	return nil, NewThrown(verb + " not understood by a Tuple")
}

// ConstList is the immutable List value Monte's "[a, b, c]" literal
// produces: appending or updating yields a new ConstList
// rather than mutating in place.
type ConstList struct {
	items []Value
}

var (
	_ Value    = (*ConstList)(nil)
	_ Iterable = (*ConstList)(nil)
)

// NewConstList wraps items (not copied; callers must not mutate it
// afterwards) in a ConstList.
func NewConstList(items []Value) *ConstList { return &ConstList{items: items} }

func (l *ConstList) String() string {
	s := "["
	for i, v := range l.items {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s + "]"
}
func (l *ConstList) TypeName() string { return "List" }
func (l *ConstList) Len() int         { return len(l.items) }
func (l *ConstList) Slice() []Value   { return l.items }

func (l *ConstList) Iterate() Iterator {
	return &listIterator{items: l.items}
}

func (l *ConstList) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "size":
		return Int64(len(l.items)), nil
	case "get":
		i, err := asIndex(args, verb, len(l.items))
		if err != nil {
			return nil, err
		}
		return l.items[i], nil
	case "with":
		if len(args) != 1 {
			return nil, NewThrown("with: expected 1 argument")
		}
		out := make([]Value, len(l.items)+1)
		copy(out, l.items)
		out[len(l.items)] = args[0]
		return NewConstList(out), nil
	case "add":
		if len(args) != 1 {
			return nil, NewThrown("add: expected 1 argument")
		}
		o, ok := args[0].(*ConstList)
		if !ok {
			return nil, NewThrown("add: expected a List argument")
		}
		out := make([]Value, 0, len(l.items)+len(o.items))
		out = append(out, l.items...)
		out = append(out, o.items...)
		return NewConstList(out), nil
	case "diverge":
		items := make([]Value, len(l.items))
		copy(items, l.items)
		return NewFlexList(items), nil
	}
	return nil, NewThrown(fmt.Sprintf("%s/%d not understood by a List", verb, len(args)))
}

// FlexList is the mutable list kind produced by ConstList.diverge() and by
// the "[].diverge()" idiom.
type FlexList struct {
	items []Value
}

var _ Value = (*FlexList)(nil)

// NewFlexList wraps items (not copied) in a FlexList.
func NewFlexList(items []Value) *FlexList { return &FlexList{items: items} }

func (l *FlexList) String() string {
	return NewConstList(l.items).String()
}
func (l *FlexList) TypeName() string { return "FlexList" }
func (l *FlexList) Iterate() Iterator {
	return &listIterator{items: l.items}
}
func (l *FlexList) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "size":
		return Int64(len(l.items)), nil
	case "get":
		i, err := asIndex(args, verb, len(l.items))
		if err != nil {
			return nil, err
		}
		return l.items[i], nil
	case "push":
		if len(args) != 1 {
			return nil, NewThrown("push: expected 1 argument")
		}
		l.items = append(l.items, args[0])
		return NullValue, nil
	case "put":
		if len(args) != 2 {
			return nil, NewThrown("put: expected 2 arguments")
		}
		i, err := asIndex(args[:1], verb, len(l.items)+1)
		if err != nil {
			return nil, err
		}
		if i == len(l.items) {
			l.items = append(l.items, args[1])
		} else {
			l.items[i] = args[1]
		}
		return NullValue, nil
	case "snapshot":
		out := make([]Value, len(l.items))
		copy(out, l.items)
		return NewConstList(out), nil
	}
	return nil, NewThrown(fmt.Sprintf("%s/%d not understood by a FlexList", verb, len(args)))
}

type listIterator struct {
	items []Value
	idx   int
}

func (it *listIterator) Next(p *Value) bool {
	if it.idx >= len(it.items) {
		return false
	}
	*p = Tuple{Int64(it.idx), it.items[it.idx]}
	it.idx++
	return true
}
func (it *listIterator) Done() {}

func asIndex(args []Value, verb string, size int) (int, error) {
	if len(args) != 1 {
		return 0, NewThrown(verb + ": expected 1 argument")
	}
	i, ok := args[0].(Int64)
	if !ok {
		return 0, NewThrown(verb + ": expected an Int index")
	}
	idx := int(i)
	if idx < 0 || idx >= size {
		return 0, NewThrown(fmt.Sprintf("%s: index %d out of range [0, %d)", verb, idx, size))
	}
	return idx, nil
}
