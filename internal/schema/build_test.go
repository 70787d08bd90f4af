package schema

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/errors"
	"view-generator/internal/gen"
	"view-generator/internal/typegraph"
	"view-generator/internal/view"
)

const (
	itemsNS  = "game/items"
	sharedNS = "game/shared"
)

func buildInventory(t *testing.T, name string) *typegraph.Graph {
	t.Helper()

	files, err := LoadFiles(name)
	require.NoError(t, err)

	g, err := Build(files, DefaultOptions())
	require.NoError(t, err)

	return g
}

func mustLookup(t *testing.T, g *typegraph.Graph, ns, name string) *typegraph.Type {
	t.Helper()

	typ, ok := g.Lookup(typegraph.ID{Namespace: ns, Name: name})
	require.True(t, ok, "%s.%s", ns, name)

	return typ
}

func fieldType(t *testing.T, typ *typegraph.Type, name string) *typegraph.Type {
	t.Helper()

	for _, f := range typ.Fields {
		if f.Name == name {
			return f.Type
		}
	}

	require.Failf(t, "no field", "%s.%s", typ, name)

	return nil
}

func TestBuild_Declarations(t *testing.T) {
	for _, name := range []string{"testdata/inventory.yaml", "testdata/inventory.toml"} {
		t.Run(name, func(t *testing.T) {
			g := buildInventory(t, name)

			inventory := mustLookup(t, g, itemsNS, "Inventory")
			assert.Equal(t, typegraph.KindClass, inventory.Kind)
			assert.Equal(t, "example.com/game/items", inventory.PkgPath)
			assert.Equal(t, "items", inventory.PkgName)
			assert.Equal(t, []*typegraph.Type{inventory}, g.RootTypes())

			container := mustLookup(t, g, sharedNS, "Container")
			assert.Same(t, container, inventory.Base, "base found through imports")

			slot := mustLookup(t, g, itemsNS, "Inventory.Slot")
			assert.Same(t, inventory, slot.Container)
			assert.Equal(t, "Slot", slot.ID.Name)

			slots := fieldType(t, inventory, "slots")
			assert.Equal(t, typegraph.KindList, slots.Kind)
			assert.Same(t, slot, slots.Elem, "nested name resolves inside its container")

			weights := fieldType(t, inventory, "weights")
			assert.Equal(t, typegraph.KindArray, weights.Kind)
			assert.Equal(t, typegraph.BasicFloat32, weights.Elem.Basic)

			hotbar := fieldType(t, inventory, "hotbar")
			assert.Equal(t, typegraph.KindFixedBuffer, hotbar.Kind)
			assert.Equal(t, 4, hotbar.Len)

			position := fieldType(t, inventory, "position")
			assert.Equal(t, typegraph.ID{Namespace: view.DefaultRuntimePackage, Name: "Vector3"}, position.ID)
			assert.Equal(t, "viewrt", position.PkgName)

			stack := mustLookup(t, g, itemsNS, "Stack")
			stacks := fieldType(t, inventory, "stacks")
			assert.Same(t, stack, stacks.Origin)
			assert.Equal(t, []*typegraph.Type{slot}, stacks.TypeArgs)

			assert.Same(t, inventory, fieldType(t, slot, "parent"))
		})
	}
}

func TestBuild_Enums(t *testing.T) {
	g := buildInventory(t, "testdata/inventory.yaml")

	rarity := mustLookup(t, g, itemsNS, "Rarity")
	assert.Equal(t, typegraph.KindEnum, rarity.Kind)
	assert.Equal(t, typegraph.BasicUint8, rarity.Basic)
	assert.Equal(t, []typegraph.Member{
		{Name: "Common", Value: 0},
		{Name: "Rare", Value: 1},
		{Name: "Legendary", Value: 10},
		{Name: "Mythic", Value: 11},
	}, rarity.Members)
}

func TestBuild_FieldMetadata(t *testing.T) {
	g := buildInventory(t, "testdata/inventory.yaml")

	fields := map[string]*typegraph.Field{}
	for _, typ := range []*typegraph.Type{
		mustLookup(t, g, itemsNS, "Inventory"),
		mustLookup(t, g, sharedNS, "Container"),
		mustLookup(t, g, itemsNS, "Inventory.Slot"),
	} {
		for _, f := range typ.Fields {
			fields[typ.ID.Name+"."+f.Name] = f
		}
	}

	assert.Equal(t, typegraph.MarkerReference, fields["Inventory.owner"].Marker)
	assert.True(t, fields["Inventory.hotbar"].FixedBuffer)
	assert.True(t, fields["Inventory.version"].Static)
	assert.True(t, fields["Inventory.scratch"].Overrides.Ignore)
	assert.True(t, fields["Slot.parent"].Overrides.ForceNested)
	assert.Equal(t, typegraph.VisibilityPrivate, fields["Container.label"].Visibility)
	assert.Equal(t, typegraph.MarkerValue, fields["Container.tag"].Marker)
	assert.Same(t, fields["Container.capacity"].Owner, mustLookup(t, g, sharedNS, "Container"))
}

func TestBuild_GenericNested(t *testing.T) {
	g := buildInventory(t, "testdata/inventory.yaml")

	stack := mustLookup(t, g, itemsNS, "Stack")
	require.Len(t, stack.TypeParams, 1)
	param := stack.TypeParams[0]

	entry := mustLookup(t, g, itemsNS, "Stack.Entry")
	assert.Same(t, param, fieldType(t, entry, "value"), "container parameters are in scope")
	assert.Equal(t, typegraph.BasicInt64, fieldType(t, entry, "amount").Basic)
	assert.Same(t, param, fieldType(t, stack, "top"))
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		sentinel error
	}{
		{"unknown type", `
namespaces:
  - name: a
    types:
      - name: T
        fields: [{name: x, type: Missing}]
`, errors.ErrUnresolvableSymbol},
		{"unknown kind", `
namespaces:
  - name: a
    types: [{name: T, kind: union}]
`, errors.ErrMalformedSource},
		{"missing type arguments", `
namespaces:
  - name: a
    types:
      - {name: Box, params: [T]}
      - name: U
        fields: [{name: x, type: Box}]
`, errors.ErrMalformedSource},
		{"enum of strings", `
namespaces:
  - name: a
    types: [{name: E, kind: enum, underlying: string}]
`, errors.ErrMalformedSource},
		{"base is not aggregate", `
namespaces:
  - name: a
    types:
      - {name: E, kind: enum}
      - {name: T, base: E}
`, errors.ErrMalformedSource},
		{"duplicate type", `
namespaces:
  - name: a
    types: [{name: T}, {name: T}]
`, errors.ErrMalformedSource},
		{"bad marker", `
namespaces:
  - name: a
    types:
      - name: T
        fields: [{name: x, type: int, serialize: maybe}]
`, errors.ErrMalformedSource},
		{"bad type expression", `
namespaces:
  - name: a
    types:
      - name: T
        fields: [{name: x, type: "List<int"}]
`, errors.ErrMalformedSource},
		{"invalid name", `
namespaces:
  - name: a
    types: [{name: "two words"}]
`, errors.ErrMalformedSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml), FormatYAML)
			require.NoError(t, err)

			_, err = Build([]*File{f}, DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "%v", err)
		})
	}
}

func TestBuild_UnresolvedSuggestsNames(t *testing.T) {
	f, err := Parse([]byte(`
namespaces:
  - name: a
    types:
      - name: Inventory
      - name: T
        fields: [{name: x, type: Inventroy}]
  - name: b
    types:
      - name: Container
      - name: U
        fields: [{name: y, type: a.Inventry}]
`), FormatYAML)
	require.NoError(t, err)

	_, err = Build([]*File{f}, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnresolvableSymbol))
	assert.Equal(t, "did you mean Inventory?", errors.FlattenHints(err))

	f.Namespaces[0].Types[1].Fields[0].Type = "Inventory"

	_, err = Build([]*File{f}, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.Inventry in b.U")
	assert.Equal(t, "did you mean a.Inventory?", errors.FlattenHints(err))
}

func TestSplitQualified(t *testing.T) {
	tests := []struct {
		in, ns, local string
		ok            bool
	}{
		{"game/shared.Item", "game/shared", "Item", true},
		{"game/shared.Outer.Inner", "game/shared", "Outer.Inner", true},
		{"example.com/game/items.Item", "example.com/game/items", "Item", true},
		{"viewrt.Vector3", "viewrt", "Vector3", true},
		{"Item", "", "", false},
		{"game/Item", "", "", false},
	}

	for _, tt := range tests {
		ns, local, ok := splitQualified(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)

		if tt.ok {
			assert.Equal(t, tt.ns, ns, tt.in)
			assert.Equal(t, tt.local, local, tt.in)
		}
	}
}

func TestBuild_Generate(t *testing.T) {
	g := buildInventory(t, "testdata/inventory.yaml")

	cfg := gen.DefaultGeneratorConfig()
	cfg.PackageName = "items"
	cfg.OutputDir = ""
	cfg.View.OutputPackage = "example.com/game/items"

	res := gen.NewGenerator(cfg).Generate(context.Background(), gen.Static(g))
	require.False(t, res.Failed(), "%v", res.Err)
	assert.Equal(t, 5, res.Views)

	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, "lookup", res.Diagnostics.Warnings[0].Field)

	src := string(res.File.Content)
	for _, want := range []string{
		"// --- namespace game.items ---",
		"type InventoryView struct {",
		"func (v InventoryView) Slots() viewrt.Sequence[InventorySlotView] {",
		"func (v InventoryView) Weights() viewrt.Sequence[viewrt.Float[float32]] {",
		"func (v InventoryView) Owner() Inventory {",
		"func (v InventoryView) Position() viewrt.Vector3 {",
		"func (v InventoryView) Hotbar() viewrt.FixedBuffer[viewrt.Integer[int32]] {",
		"func (v InventoryView) Stacks() StackView[InventorySlotView] {",
		"func (v InventoryView) Lookup() viewrt.Unsupported {",
		"func (v InventoryView) Capacity() int32 {",
		"func (v InventoryView) Tag() string {",
		"// --- scope Inventory ---",
		"type InventorySlotView struct {",
		"func (v InventorySlotView) Rarity() Rarity {",
		"func (v InventorySlotView) Parent() InventoryView {",
		"type StackView[T viewrt.View[T]] struct {",
		"func (v StackView[T]) Entries() viewrt.Sequence[StackEntryView[T]] {",
		"// --- scope Stack[T] ---",
		"type StackEntryView[T viewrt.View[T]] struct {",
		"func (v StackEntryView[T]) Amount() int64 {",
		"type RarityView struct {",
	} {
		assert.Contains(t, src, want)
	}

	for _, absent := range []string{"Version()", "Scratch()", "Label()"} {
		assert.NotContains(t, src, absent)
	}

	assert.Equal(t, 1, strings.Count(src, "type InventoryView struct"))
}
