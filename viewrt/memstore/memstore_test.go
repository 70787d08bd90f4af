package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_FindPropertyIsStable(t *testing.T) {
	s := New()

	a := s.FindProperty("a")
	a.SetIntValue(7)

	assert.Same(t, a, s.FindProperty("a"))
	assert.Equal(t, int64(7), s.FindProperty("a").IntValue())
	assert.Equal(t, "a", a.Path())
	assert.Equal(t, "a.b", a.FindRelative("b").Path())
}

func TestProp_Scalars(t *testing.T) {
	p := New().FindProperty("x")

	p.SetUintValue(3)
	p.SetFloatValue(1.5)
	p.SetBoolValue(true)
	p.SetStringValue("hi")
	p.SetValue([2]int{1, 2})
	p.SetObjectReference("obj")
	p.SetManagedReference(42)

	assert.Equal(t, uint64(3), p.UintValue())
	assert.InDelta(t, 1.5, p.FloatValue(), 0)
	assert.True(t, p.BoolValue())
	assert.Equal(t, "hi", p.StringValue())
	assert.Equal(t, [2]int{1, 2}, p.Value())
	assert.Equal(t, "obj", p.ObjectReference())
	assert.Equal(t, 42, p.ManagedReference())
}

func TestProp_Array(t *testing.T) {
	p := New().FindProperty("items").(*Prop)

	p.SetArraySize(3)
	for i := range 3 {
		p.ArrayElementAt(i).SetIntValue(int64(i * 10))
	}

	assert.Equal(t, "items[2]", p.ArrayElementAt(2).Path())

	p.InsertArrayElementAt(1)
	require.Equal(t, 4, p.ArraySize())
	assert.Equal(t, int64(0), p.ArrayElementAt(1).IntValue())
	assert.Equal(t, int64(10), p.ArrayElementAt(2).IntValue())

	p.InsertArrayElementAt(4)
	assert.Equal(t, 5, p.ArraySize())

	p.DeleteArrayElementAt(1)
	assert.Equal(t, []int64{0, 10, 20, 0}, ints(p))

	assert.True(t, p.MoveArrayElement(0, 2))
	assert.Equal(t, []int64{10, 20, 0, 0}, ints(p))
	assert.False(t, p.MoveArrayElement(0, 4))
	assert.False(t, p.MoveArrayElement(-1, 0))

	p.SetArraySize(1)
	assert.Equal(t, []int64{10}, ints(p))

	p.ClearArray()
	assert.Equal(t, 0, p.ArraySize())

	assert.Panics(t, func() { p.ArrayElementAt(0) })
	assert.Panics(t, func() { p.SetArraySize(-1) })
}

func TestProp_FixedBuffer(t *testing.T) {
	p := New().FindProperty("buf")
	assert.Equal(t, 0, p.FixedBufferSize())

	p.(*Prop).InitFixedBuffer(4)
	require.Equal(t, 4, p.FixedBufferSize())

	p.FixedBufferElementAt(3).SetFloatValue(2)
	assert.InDelta(t, 2.0, p.FixedBufferElementAt(3).FloatValue(), 0)
	assert.Equal(t, "buf[3]", p.FixedBufferElementAt(3).Path())
	assert.Panics(t, func() { p.FixedBufferElementAt(4) })
}

func ints(p *Prop) []int64 {
	out := make([]int64, p.ArraySize())
	for i := range out {
		out[i] = p.ArrayElementAt(i).IntValue()
	}

	return out
}
