package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/typegraph"
)

func TestPathOf(t *testing.T) {
	outer := &typegraph.Type{
		ID:         typegraph.ID{Namespace: "game/items", Name: "Outer"},
		Kind:       typegraph.KindClass,
		TypeParams: []*typegraph.Type{{ID: typegraph.ID{Name: "T"}, Kind: typegraph.KindTypeParam}},
	}
	inner := &typegraph.Type{
		ID:        typegraph.ID{Namespace: "game/items", Name: "Inner"},
		Kind:      typegraph.KindStruct,
		Container: outer,
	}

	p := pathOf(inner, "InnerView")

	require.Len(t, p.Segments, 4)
	assert.Equal(t, "game.items.Outer.InnerView", p.Key())
	assert.Equal(t, "game.items.Outer[T].InnerView", p.String())
	assert.True(t, p.Segments[0].Namespace)
	assert.False(t, p.Segments[2].Namespace)
	assert.Equal(t, []string{"T"}, p.Segments[2].Params)
	assert.Equal(t, "InnerView", p.Segments[3].Name)
}

func TestTypePath_KeyIgnoresParams(t *testing.T) {
	a := TypePath{Segments: []Segment{{Name: "Outer", Params: []string{"T"}}, {Name: "XView"}}}
	b := TypePath{Segments: []Segment{{Name: "Outer", Params: []string{"U"}}, {Name: "XView"}}}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.String(), b.String())
}
