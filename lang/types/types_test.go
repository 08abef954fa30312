package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64Add(t *testing.T) {
	r, err := Int64(2).Call(nil, "add", []Value{Int64(3)}, nil)
	require.NoError(t, err)
	assert.Equal(t, Int64(5), r)
}

func TestInt64MultiplyOverflowsToBigInt(t *testing.T) {
	big1 := Int64(1) << 62
	r, err := big1.Call(nil, "multiply", []Value{Int64(4)}, nil)
	require.NoError(t, err)
	_, ok := r.(*BigInt)
	assert.True(t, ok)
}

func TestStrAdd(t *testing.T) {
	r, err := Str("foo").Call(nil, "add", []Value{Str("bar")}, nil)
	require.NoError(t, err)
	assert.Equal(t, Str("foobar"), r)
}

func TestFinalSlotRejectsPut(t *testing.T) {
	s := NewFinalSlot(Int64(1))
	err := s.Put(Int64(2))
	assert.Error(t, err)
}

func TestVarSlotAllowsPut(t *testing.T) {
	s := NewVarSlot(Int64(1))
	require.NoError(t, s.Put(Int64(2)))
	assert.Equal(t, Int64(2), s.Get())
}

func TestIntGuardCoerce(t *testing.T) {
	v, err := Coerce(nil, IntGuard, Int64(5), nil)
	require.NoError(t, err)
	assert.Equal(t, Int64(5), v)

	_, err = Coerce(nil, IntGuard, Str("x"), nil)
	assert.Error(t, err)
}

func TestEjectorFireReturnsEjectingSignal(t *testing.T) {
	ej := NewEjector("test")
	_, err := ej.Fire(nil, Str("escaped"))
	sig, ok := err.(*EjectingSignal)
	require.True(t, ok)
	assert.Same(t, ej, sig.Ejector)
	assert.Equal(t, Str("escaped"), sig.Value)
}

func TestConstListWith(t *testing.T) {
	l := NewConstList([]Value{Int64(1), Int64(2)})
	r, err := l.Call(nil, "with", []Value{Int64(3)}, nil)
	require.NoError(t, err)
	nl := r.(*ConstList)
	assert.Equal(t, 3, nl.Len())
	assert.Equal(t, 2, l.Len())
}

func TestConstMapGetAndWith(t *testing.T) {
	m := NewConstMap([]Value{Str("a")}, []Value{Int64(1)})
	v, err := m.Call(nil, "get", []Value{Str("a")}, nil)
	require.NoError(t, err)
	assert.Equal(t, Int64(1), v)

	r, err := m.Call(nil, "with", []Value{Str("b"), Int64(2)}, nil)
	require.NoError(t, err)
	nm := r.(*ConstMap)
	sz, _ := nm.Call(nil, "size", nil, nil)
	assert.Equal(t, Int64(2), sz)
}

func TestSealedExceptionAsGoError(t *testing.T) {
	e := NewThrown("boom")
	var err error = e
	assert.Equal(t, "boom", err.Error())
}
