package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/spawner"
	"view-generator/spawner/views"
	"view-generator/viewrt/memstore"
)

func bind() (*memstore.Store, views.SpawnerView) {
	s := memstore.New()
	return s, views.SpawnerView{}.Bind(s.FindProperty("spawner"))
}

func TestSpawnerView_Scalar(t *testing.T) {
	s, v := bind()

	assert.Zero(t, v.Count())

	v.SetCount(12)
	assert.Equal(t, 12, v.Count())
	assert.Equal(t, int64(12), s.FindProperty("spawner").FindRelative("Count").IntValue(),
		"the accessor writes the field's property")
}

func TestSpawnerView_Sequence(t *testing.T) {
	s, v := bind()

	delays := v.Delays()
	require.Zero(t, delays.Len())

	delays.SetLen(2)
	delays.At(0).SetValue(0.5)
	delays.At(1).SetValue(2)

	inserted := delays.InsertAt(1)
	assert.Zero(t, inserted.Value(), "inserted elements start at the default value")
	inserted.SetValue(1)

	assert.Equal(t, 3, v.Delays().Len(), "length reflects the live count")
	assert.Equal(t, 3, s.FindProperty("spawner").FindRelative("Delays").ArraySize())

	var got []float32
	for _, d := range v.Delays().All() {
		got = append(got, d.Value())
	}

	assert.Equal(t, []float32{0.5, 1, 2}, got)

	delays.DeleteAt(0)
	assert.Equal(t, float32(1), delays.At(0).Value(), "later elements shift down")
	assert.Equal(t, float32(2), delays.At(1).Value())

	assert.True(t, delays.Move(1, 0))
	assert.False(t, delays.Move(0, 2))
	assert.Equal(t, float32(2), delays.At(0).Value())
}

func TestSpawnerView_Enum(t *testing.T) {
	_, v := bind()

	assert.Equal(t, spawner.WaveSingle, v.Pattern())

	v.SetPattern(spawner.WaveStream)
	assert.Equal(t, spawner.WaveStream, v.Pattern())

	v.SetPattern(spawner.Wave(99))
	assert.Equal(t, spawner.Wave(99), v.Pattern(), "undeclared values round-trip unchanged")
}

func TestSpawnerView_SlotsAreShared(t *testing.T) {
	s, v := bind()

	v.SetCount(3)
	copied := v
	copied.SetCount(4)

	assert.Equal(t, 4, v.Count())
	assert.Equal(t, 4, views.SpawnerView{}.Bind(s.FindProperty("spawner")).Count(),
		"a fresh view reads the stored value")
}
