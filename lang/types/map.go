package types

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// ConstMap is the immutable Map value a "[k => v, ...]" literal produces,
// backed by a swiss-table map for O(1) average lookup over
// github.com/dolthub/swiss.Map[Value, Value].
type ConstMap struct {
	m *swiss.Map[Value, Value]
}

var _ Value = (*ConstMap)(nil)

// NewConstMap builds a ConstMap from parallel key/value slices of equal
// length.
func NewConstMap(keys, vals []Value) *ConstMap {
	m := swiss.NewMap[Value, Value](uint32(len(keys)))
	for i, k := range keys {
		m.Put(k, vals[i])
	}
	return &ConstMap{m: m}
}

func (m *ConstMap) String() string { return fmt.Sprintf("map(%d entries)", m.m.Count()) }
func (m *ConstMap) TypeName() string { return "Map" }

func (m *ConstMap) Iterate() Iterator {
	pairs := make([]Tuple, 0, m.m.Count())
	m.m.Iter(func(k, v Value) bool {
		pairs = append(pairs, Tuple{k, v})
		return false
	})
	return &mapIterator{pairs: pairs}
}

func (m *ConstMap) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "get":
		if len(args) != 1 {
			return nil, NewThrown("get: expected 1 argument")
		}
		v, ok := m.m.Get(args[0])
		if !ok {
			return nil, NewThrown("get: key not found in map")
		}
		return v, nil
	case "fetch":
		if len(args) != 2 {
			return nil, NewThrown("fetch: expected 2 arguments")
		}
		v, ok := m.m.Get(args[0])
		if ok {
			return v, nil
		}
		return args[1].Call(t, "run", nil, nil)
	case "size":
		return Int64(m.m.Count()), nil
	case "with":
		if len(args) != 2 {
			return nil, NewThrown("with: expected 2 arguments")
		}
		out := swiss.NewMap[Value, Value](uint32(m.m.Count() + 1))
		m.m.Iter(func(k, v Value) bool {
			out.Put(k, v)
			return false
		})
		out.Put(args[0], args[1])
		return &ConstMap{m: out}, nil
	case "diverge":
		out := swiss.NewMap[Value, Value](uint32(m.m.Count()))
		m.m.Iter(func(k, v Value) bool {
			out.Put(k, v)
			return false
		})
		return &FlexMap{m: out}, nil
	}
	return nil, NewThrown(fmt.Sprintf("%s/%d not understood by a Map", verb, len(args)))
}

// FlexMap is the mutable map kind produced by ConstMap.diverge().
type FlexMap struct {
	m *swiss.Map[Value, Value]
}

var _ Value = (*FlexMap)(nil)

func (m *FlexMap) String() string   { return fmt.Sprintf("map(%d entries)", m.m.Count()) }
func (m *FlexMap) TypeName() string { return "FlexMap" }
func (m *FlexMap) Iterate() Iterator {
	pairs := make([]Tuple, 0, m.m.Count())
	m.m.Iter(func(k, v Value) bool {
		pairs = append(pairs, Tuple{k, v})
		return false
	})
	return &mapIterator{pairs: pairs}
}
func (m *FlexMap) Call(t *Thread, verb string, args []Value, named map[string]Value) (Value, error) {
	switch verb {
	case "get":
		if len(args) != 1 {
			return nil, NewThrown("get: expected 1 argument")
		}
		v, ok := m.m.Get(args[0])
		if !ok {
			return nil, NewThrown("get: key not found in map")
		}
		return v, nil
	case "put":
		if len(args) != 2 {
			return nil, NewThrown("put: expected 2 arguments")
		}
		m.m.Put(args[0], args[1])
		return NullValue, nil
	case "removeKey":
		if len(args) != 1 {
			return nil, NewThrown("removeKey: expected 1 argument")
		}
		m.m.Delete(args[0])
		return NullValue, nil
	case "size":
		return Int64(m.m.Count()), nil
	case "snapshot":
		out := swiss.NewMap[Value, Value](uint32(m.m.Count()))
		m.m.Iter(func(k, v Value) bool {
			out.Put(k, v)
			return false
		})
		return &ConstMap{m: out}, nil
	}
	return nil, NewThrown(fmt.Sprintf("%s/%d not understood by a FlexMap", verb, len(args)))
}

type mapIterator struct {
	pairs []Tuple
	idx   int
}

func (it *mapIterator) Next(p *Value) bool {
	if it.idx >= len(it.pairs) {
		return false
	}
	*p = it.pairs[it.idx]
	it.idx++
	return true
}
func (it *mapIterator) Done() {}
