package analyze

import (
	"context"
	"flag"
	"go/ast"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/diagnostic"
	"view-generator/internal/gen"
	"view-generator/internal/typegraph"
	"view-generator/internal/view"
)

const (
	storePkg     = "view-generator/store"
	warehousePkg = "view-generator/warehouse"
	spawnerPkg   = "view-generator/spawner"
)

var update = flag.Bool("update", false, "rewrite checked-in generated files")

var hostObject = typegraph.ID{Namespace: view.DefaultRuntimePackage, Name: "Object"}

func load(t *testing.T, patterns ...string) (*Analyzer, *typegraph.Graph) {
	t.Helper()

	a := NewAnalyzer(Config{HostObject: hostObject})
	g, err := a.LoadPackages(context.Background(), patterns...)
	require.NoError(t, err)

	return a, g
}

func lookup(t *testing.T, g *typegraph.Graph, pkg, name string) *typegraph.Type {
	t.Helper()

	typ, ok := g.Lookup(typegraph.ID{Namespace: pkg, Name: name})
	require.True(t, ok, "%s.%s not loaded", pkg, name)

	return typ
}

func fieldByName(t *testing.T, typ *typegraph.Type, name string) *typegraph.Field {
	t.Helper()

	for _, f := range typ.Fields {
		if f.Name == name {
			return f
		}
	}

	require.Failf(t, "field not found", "%s.%s", typ, name)

	return nil
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	_, g := load(t, storePkg)

	roots := g.RootTypes()
	require.Len(t, roots, 1)
	assert.Equal(t, "Order", roots[0].ID.Name)
	assert.Equal(t, storePkg, roots[0].ID.Namespace)
	assert.Equal(t, "store", roots[0].PkgName)
	assert.Equal(t, typegraph.KindStruct, roots[0].Kind)
}

func TestAnalyzer_Enum(t *testing.T) {
	_, g := load(t, storePkg)

	status := lookup(t, g, storePkg, "OrderStatus")
	assert.Equal(t, typegraph.KindEnum, status.Kind)
	assert.Equal(t, typegraph.BasicUint8, status.Basic)
	assert.Equal(t, []typegraph.Member{
		{Name: "StatusPending", Value: 0},
		{Name: "StatusPaid", Value: 1},
		{Name: "StatusShipped", Value: 2},
		{Name: "StatusCancelled", Value: 3},
	}, status.Members)
}

func TestAnalyzer_FieldMetadata(t *testing.T) {
	_, g := load(t, storePkg)

	product := lookup(t, g, storePkg, "Product")
	assert.Equal(t, typegraph.VisibilityPublic, fieldByName(t, product, "SKU").Visibility)

	supplier := fieldByName(t, product, "supplier")
	assert.Equal(t, typegraph.VisibilityPrivate, supplier.Visibility)
	assert.Equal(t, typegraph.MarkerNone, supplier.Marker)

	cost := fieldByName(t, product, "cost")
	assert.Equal(t, typegraph.VisibilityPrivate, cost.Visibility)
	assert.True(t, cost.Marker.Has(typegraph.MarkerValue))

	order := lookup(t, g, storePkg, "Order")

	customer := fieldByName(t, order, "Customer")
	assert.Equal(t, typegraph.MarkerReference, customer.Marker)
	assert.Equal(t, typegraph.KindPointer, customer.Type.Kind)

	notes := fieldByName(t, order, "Notes")
	assert.True(t, notes.FixedBuffer)
	assert.Equal(t, 4, notes.Type.Len)

	assert.True(t, fieldByName(t, order, "Preview").Overrides.Ignore)
	assert.Equal(t, typegraph.KindMap, fieldByName(t, order, "Totals").Type.Kind)

	item := lookup(t, g, storePkg, "OrderItem")
	assert.True(t, fieldByName(t, item, "Product").Overrides.ForceNested)
}

func TestAnalyzer_CanonicalTypes(t *testing.T) {
	_, g := load(t, storePkg)

	order := lookup(t, g, storePkg, "Order")
	item := lookup(t, g, storePkg, "OrderItem")

	items := fieldByName(t, order, "Items").Type
	bundle := fieldByName(t, item, "Bundle").Type
	assert.Same(t, items, bundle, "identical slice types share one descriptor")
	assert.Same(t, item, items.Elem)
}

func TestAnalyzer_Generics(t *testing.T) {
	_, g := load(t, storePkg)

	tagged := lookup(t, g, storePkg, "Tagged")
	require.Len(t, tagged.TypeParams, 1)
	param := tagged.TypeParams[0]
	assert.Equal(t, typegraph.KindTypeParam, param.Kind)
	assert.Equal(t, "T", param.ID.Name)
	assert.Same(t, param, fieldByName(t, tagged, "Value").Type)

	discount := fieldByName(t, lookup(t, g, storePkg, "Order"), "Discount").Type
	assert.True(t, discount.IsInstance())
	assert.Same(t, tagged, discount.Origin)
	require.Len(t, discount.TypeArgs, 1)
	assert.Equal(t, typegraph.BasicInt32, discount.TypeArgs[0].Basic)
}

func TestAnalyzer_BaseTypes(t *testing.T) {
	_, g := load(t, warehousePkg)

	shelf := lookup(t, g, warehousePkg, "Shelf")
	require.NotNil(t, shelf.Base)
	assert.Equal(t, hostObject, shelf.Base.ID)

	for _, f := range shelf.Fields {
		assert.NotEqual(t, "Object", f.Name, "the base is not a field")
	}

	bay := lookup(t, g, warehousePkg, "Bay")
	require.NotNil(t, bay.Base)
	assert.Equal(t, "Location", bay.Base.ID.Name)

	stock := fieldByName(t, shelf, "Stock").Type
	assert.Equal(t, storePkg, stock.Elem.ID.Namespace)

	assert.Len(t, g.RootTypes(), 2)
}

func TestAnalyzer_MissingPackage(t *testing.T) {
	a := NewAnalyzer(Config{})
	_, err := a.LoadPackages(context.Background(), "view-generator/does/not/exist")
	require.Error(t, err)
}

func TestAnalyzer_GenerateFromSource(t *testing.T) {
	a, g := load(t, warehousePkg)
	require.Zero(t, a.Diagnostics().Len())

	cfg := gen.DefaultGeneratorConfig()
	cfg.PackageName = "warehouse"
	cfg.OutputDir = ""
	cfg.View.OutputPackage = warehousePkg
	cfg.View.RequireHostObject = true

	res := gen.NewGenerator(cfg).Generate(context.Background(), gen.Static(g))
	require.False(t, res.Failed(), "%v", res.Err)

	src := string(res.File.Content)
	for _, want := range []string{
		"func (ShelfView) BindDocument(d viewrt.Document) ShelfView {",
		"func (v ShelfView) Neighbour() *Shelf {",
		"func (v ShelfView) Stock() viewrt.Sequence[StoreProductView] {",
		"func (v ShelfView) Bounds() viewrt.Bounds {",
		"func (v BayView) Aisle() int32 {",
		"func (v BayView) Shelves() viewrt.Sequence[viewrt.ObjectReference[*Shelf]] {",
		"func (v BayView) Orders() viewrt.Sequence[viewrt.ManagedReference[*store.Order]] {",
		"type StoreProductView struct {",
		`"view-generator/store"`,
	} {
		assert.Contains(t, src, want)
	}

	var unsupported []diagnostic.Diagnostic
	for _, d := range res.Diagnostics.All() {
		if d.Code == diagnostic.CodeUnsupportedField {
			unsupported = append(unsupported, d)
		}
	}

	assert.Empty(t, unsupported, "warehouse views never reach store.Order fields")
}

// The spawner views are checked in so their behaviour can be tested
// against a store. Run the tests with -update after changing the templates.
func TestAnalyzer_SpawnerViewsUpToDate(t *testing.T) {
	_, g := load(t, spawnerPkg)

	cfg := gen.DefaultGeneratorConfig()
	cfg.PackageName = "views"
	cfg.OutputDir = ""
	cfg.View.OutputPackage = spawnerPkg + "/views"

	res := gen.NewGenerator(cfg).Generate(context.Background(), gen.Static(g))
	require.False(t, res.Failed(), "%v", res.Err)
	assert.Zero(t, res.Diagnostics.Len())
	assert.Equal(t, 2, res.Views)

	path := filepath.Join("..", "..", "spawner", "views", res.File.Filename)
	if *update {
		require.NoError(t, os.WriteFile(path, res.File.Content, 0o644))
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(res.File.Content), "run go test ./internal/analyze -update")
}

func TestAnalyzer_UnsupportedFieldDegrades(t *testing.T) {
	_, g := load(t, storePkg)

	cfg := gen.DefaultGeneratorConfig()
	cfg.PackageName = "store"
	cfg.OutputDir = ""
	cfg.View.OutputPackage = storePkg

	res := gen.NewGenerator(cfg).Generate(context.Background(), gen.Static(g))
	require.False(t, res.Failed(), "%v", res.Err)

	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, "Totals", res.Diagnostics.Warnings[0].Field)

	src := string(res.File.Content)
	assert.Contains(t, src, "func (v OrderView) Totals() viewrt.Unsupported {")
	assert.Contains(t, src, "func (v OrderView) Status() OrderStatus {")
	assert.Contains(t, src, "func (v OrderView) Customer() *Customer {")
	assert.Contains(t, src, "func (v OrderView) SetCustomer(value *Customer) {")
	assert.Contains(t, src, "func (v OrderView) Notes() viewrt.FixedBuffer[viewrt.Text[string]] {")
	assert.Contains(t, src, "func (v OrderView) Discount() TaggedView[viewrt.Integer[int32]] {")
	assert.Contains(t, src, "func (v OrderItemView) Product() ProductView {")
	assert.Contains(t, src, "func (v ProductView) Cost() int64 {")
	assert.NotContains(t, src, "Supplier()")
	assert.NotContains(t, src, "Preview()")
	assert.NotContains(t, src, "DraftCache()")
}

func TestMarkerFromTag(t *testing.T) {
	tests := []struct {
		tag  reflect.StructTag
		want typegraph.Marker
		ok   bool
	}{
		{``, typegraph.MarkerNone, true},
		{`serialize:"value"`, typegraph.MarkerValue, true},
		{`serialize:"ref"`, typegraph.MarkerReference, true},
		{`serialize:"value,reference"`, typegraph.MarkerBoth, true},
		{`serialize:"bogus"`, typegraph.MarkerNone, false},
	}

	for _, tt := range tests {
		got, ok := markerFromTag(tt.tag)
		assert.Equal(t, tt.want, got, string(tt.tag))
		assert.Equal(t, tt.ok, ok, string(tt.tag))
	}
}

func TestOverridesFromTag(t *testing.T) {
	ov, ok := overridesFromTag(`view:"nested"`)
	assert.True(t, ok)
	assert.True(t, ov.ForceNested)

	ov, ok = overridesFromTag(`view:"-"`)
	assert.True(t, ok)
	assert.True(t, ov.Ignore)

	_, ok = overridesFromTag(`view:"flat"`)
	assert.False(t, ok)
}

func TestHasRootDirective(t *testing.T) {
	doc := &ast.CommentGroup{List: []*ast.Comment{
		{Text: "// Order is a thing."},
		{Text: "//"},
		{Text: "//viewgen:root"},
	}}

	assert.True(t, hasRootDirective(nil, doc))
	assert.False(t, hasRootDirective(&ast.CommentGroup{List: []*ast.Comment{{Text: "// see //viewgen:root"}}}))
}
