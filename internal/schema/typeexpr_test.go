package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeExpr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int32", "int32"},
		{"float[]", "float[]"},
		{"int32[4]", "int32[4]"},
		{"*Item", "*Item"},
		{"List<Slot>", "List<Slot>"},
		{"Map< string ,int32 >", "Map<string, int32>"},
		{"Pair<List<T>, int>[2][]", "Pair<List<T>, int>[2][]"},
		{"game/shared.Outer.Inner", "game/shared.Outer.Inner"},
		{"example.com/game/items.Item", "example.com/game/items.Item"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := ParseTypeExpr(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())
		})
	}
}

func TestParseTypeExpr_Shape(t *testing.T) {
	e, err := ParseTypeExpr("Pair<int, T>[3][]")
	require.NoError(t, err)

	assert.Equal(t, ExprArray, e.Kind)
	assert.Equal(t, ExprFixed, e.Elem.Kind)
	assert.Equal(t, 3, e.Elem.Len)

	named := e.Elem.Elem
	assert.Equal(t, ExprNamed, named.Kind)
	assert.Equal(t, "Pair", named.Name)
	require.Len(t, named.Args, 2)
	assert.Equal(t, "T", named.Args[1].Name)
}

func TestParseTypeExpr_Errors(t *testing.T) {
	for _, in := range []string{"", "List<", "List<int", "int[", "int[0]", "int[x]", "<int>", "int>", "a b"} {
		_, err := ParseTypeExpr(in)
		assert.Error(t, err, in)
	}
}
