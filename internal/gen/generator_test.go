package gen

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/diagnostic"
	"view-generator/internal/errors"
	"view-generator/internal/typegraph"
	"view-generator/internal/view"
)

const gamePkg = "example.com/game"

func declare(t *testing.T, g *typegraph.Graph, name string, kind typegraph.Kind) *typegraph.Type {
	t.Helper()

	typ := &typegraph.Type{
		ID:      typegraph.ID{Namespace: gamePkg, Name: name},
		Kind:    kind,
		PkgPath: gamePkg,
		PkgName: "game",
	}
	require.NoError(t, g.Add(typ))

	return typ
}

func addField(owner *typegraph.Type, name string, ft *typegraph.Type) {
	owner.Fields = append(owner.Fields, &typegraph.Field{
		Name:       name,
		Type:       ft,
		Owner:      owner,
		Visibility: typegraph.VisibilityPublic,
	})
}

func testConfig() GeneratorConfig {
	cfg := DefaultGeneratorConfig()
	cfg.PackageName = "game"
	cfg.OutputDir = ""
	cfg.View.OutputPackage = gamePkg
	cfg.View.Home = gamePkg

	return cfg
}

// spawnerGraph declares a root with an int, a float sequence and an enum.
func spawnerGraph(t *testing.T) *typegraph.Graph {
	t.Helper()

	g := typegraph.NewGraph()

	enumX := declare(t, g, "EnumX", typegraph.KindEnum)
	enumX.Basic = typegraph.BasicInt32
	enumX.Members = []typegraph.Member{{Name: "EnumXNone", Value: 0}, {Name: "EnumXSome", Value: 1}}

	spawner := declare(t, g, "Spawner", typegraph.KindStruct)
	addField(spawner, "a", g.Basic(typegraph.BasicInt, ""))
	addField(spawner, "b", g.SequenceOf(typegraph.KindList, g.Basic(typegraph.BasicFloat32, "")))
	addField(spawner, "c", enumX)
	g.MarkRoot(spawner)

	return g
}

func TestGenerator_EndToEnd(t *testing.T) {
	res := NewGenerator(testConfig()).Generate(context.Background(), Static(spawnerGraph(t)))
	require.False(t, res.Failed(), "%v", res.Err)

	assert.Equal(t, "views_gen.go", res.File.Filename)
	assert.Equal(t, 2, res.Views)
	assert.Zero(t, res.Diagnostics.Len())

	src := string(res.File.Content)
	assert.True(t, strings.HasPrefix(src, "// Code generated by view-generator. DO NOT EDIT.\n\npackage game\n"))

	for _, want := range []string{
		`"view-generator/viewrt"`,
		"// --- namespace example.com.game ---",
		"type SpawnerView struct {",
		"func (v SpawnerView) A() int {",
		"func (v SpawnerView) SetA(value int) {",
		"func (v SpawnerView) B() viewrt.Sequence[viewrt.Float[float32]] {",
		"func (v SpawnerView) C() EnumX {",
		"func (v SpawnerView) SetC(value EnumX) {",
		"type EnumXView struct {",
		"func (v EnumXView) Value() EnumX {",
	} {
		assert.Contains(t, src, want)
	}

	assert.NotContains(t, src, "SetB(", "sequences are nested")
	assert.Less(t, strings.Index(src, "type SpawnerView"), strings.Index(src, "type EnumXView"),
		"views are emitted in discovery order")
}

func TestGenerator_Idempotent(t *testing.T) {
	g := NewGenerator(testConfig())

	first := g.Generate(context.Background(), Static(spawnerGraph(t)))
	second := g.Generate(context.Background(), Static(spawnerGraph(t)))

	require.False(t, first.Failed())
	require.False(t, second.Failed())
	assert.Equal(t, string(first.File.Content), string(second.File.Content))
}

func TestGenerator_GenericContainerScope(t *testing.T) {
	g := typegraph.NewGraph()

	param := &typegraph.Type{ID: typegraph.ID{Name: "T"}, Kind: typegraph.KindTypeParam}
	pair := declare(t, g, "Pair", typegraph.KindStruct)
	pair.TypeParams = []*typegraph.Type{param}

	node := &typegraph.Type{
		ID:        typegraph.ID{Namespace: gamePkg, Name: "Node"},
		Kind:      typegraph.KindStruct,
		PkgPath:   gamePkg,
		PkgName:   "game",
		Container: pair,
	}
	require.NoError(t, g.Add(node))
	addField(node, "value", param)

	addField(pair, "head", node)

	holder := declare(t, g, "Holder", typegraph.KindStruct)
	addField(holder, "pair", g.Instantiate(pair, []*typegraph.Type{g.Basic(typegraph.BasicInt32, "")}))
	g.MarkRoot(holder)

	res := NewGenerator(testConfig()).Generate(context.Background(), Static(g))
	require.False(t, res.Failed(), "%v", res.Err)
	assert.Equal(t, 3, res.Views)

	src := string(res.File.Content)
	for _, want := range []string{
		"func (v HolderView) Pair() PairView[viewrt.Integer[int32]] {",
		"type PairView[T viewrt.View[T]] struct {",
		"func (v PairView[T]) Head() PairNodeView[T] {",
		"// --- scope Pair[T] ---",
		"type PairNodeView[T viewrt.View[T]] struct {",
		"func (v PairNodeView[T]) Value() T {",
		"// --- end scope Pair ---",
	} {
		assert.Contains(t, src, want)
	}

	open := strings.Index(src, "// --- scope Pair[T] ---")
	decl := strings.Index(src, "type PairNodeView")
	end := strings.Index(src, "// --- end scope Pair ---")
	assert.True(t, open < decl && decl < end, "nested view is declared inside its container scope")
}

func TestGenerator_TypeArgumentViewsAreDeclared(t *testing.T) {
	g := typegraph.NewGraph()

	param := &typegraph.Type{ID: typegraph.ID{Name: "T"}, Kind: typegraph.KindTypeParam}
	box := declare(t, g, "Box", typegraph.KindStruct)
	box.TypeParams = []*typegraph.Type{param}
	addField(box, "value", param)

	item := declare(t, g, "Item", typegraph.KindStruct)
	addField(item, "count", g.Basic(typegraph.BasicInt32, ""))

	level := declare(t, g, "Level", typegraph.KindEnum)
	level.Basic = typegraph.BasicInt32

	slot := declare(t, g, "Slot", typegraph.KindStruct)
	addField(slot, "id", g.Basic(typegraph.BasicInt32, ""))

	holder := declare(t, g, "Holder", typegraph.KindStruct)
	addField(holder, "box", g.Instantiate(box, []*typegraph.Type{item}))
	addField(holder, "levels", g.SequenceOf(typegraph.KindList,
		g.Instantiate(box, []*typegraph.Type{g.Instantiate(box, []*typegraph.Type{level})})))
	addField(holder, "slots", g.FixedBufferOf(2, slot))
	g.MarkRoot(holder)

	res := NewGenerator(testConfig()).Generate(context.Background(), Static(g))
	require.False(t, res.Failed(), "%v", res.Err)
	assert.Equal(t, 5, res.Views)
	assert.Zero(t, res.Diagnostics.Len())

	src := string(res.File.Content)
	assert.Contains(t, src, "func (v HolderView) Box() BoxView[ItemView] {")
	assert.Contains(t, src, "func (v HolderView) Levels() viewrt.Sequence[BoxView[BoxView[LevelView]]] {")
	assert.Contains(t, src, "func (v HolderView) Slots() viewrt.FixedBuffer[SlotView] {")

	declared := map[string]bool{}
	for _, m := range regexp.MustCompile(`type ([A-Z]\w*View)\b`).FindAllStringSubmatch(src, -1) {
		declared[m[1]] = true
	}

	for _, m := range regexp.MustCompile(`\b([A-Z]\w*View)\b`).FindAllStringSubmatch(src, -1) {
		assert.True(t, declared[m[1]], "%s is referenced but not declared", m[1])
	}
}

func TestGenerator_BuildTag(t *testing.T) {
	cfg := testConfig()
	cfg.BuildTag = "!noviews"

	res := NewGenerator(cfg).Generate(context.Background(), Static(spawnerGraph(t)))
	require.False(t, res.Failed())
	assert.Contains(t, string(res.File.Content), "DO NOT EDIT.\n\n//go:build !noviews\n\npackage game\n")
}

func TestGenerator_FatalRootBecomesComment(t *testing.T) {
	g := typegraph.NewGraph()
	iface := declare(t, g, "Behaviour", typegraph.KindInterface)
	g.MarkRoot(iface)

	res := NewGenerator(testConfig()).Generate(context.Background(), Static(g))
	require.True(t, res.Failed())
	assert.True(t, errors.Is(res.Err, errors.ErrUnsupportedRoot))
	assert.True(t, res.Diagnostics.HasErrors())
	assert.Equal(t, diagnostic.CodeFatal, res.Diagnostics.Errors[0].Code)
	assert.Zero(t, res.Views)

	src := string(res.File.Content)
	assert.Contains(t, src, "package game")
	assert.Contains(t, src, "/*\nview-generator failed:")
	assert.Contains(t, src, "Behaviour")
	assert.NotContains(t, src, "struct {", "partial output is discarded")
}

func TestGenerator_LoaderError(t *testing.T) {
	load := func(context.Context) (typegraph.Provider, error) {
		return nil, errors.WithHint(errors.New("no packages matched"), "check the patterns")
	}

	res := NewGenerator(testConfig()).Generate(context.Background(), load)
	require.True(t, res.Failed())

	src := string(res.File.Content)
	assert.Contains(t, src, "loading types: no packages matched")
	assert.Contains(t, src, "hint: check the patterns")
}

func TestGenerator_RecoversPanics(t *testing.T) {
	load := func(context.Context) (typegraph.Provider, error) {
		panic("provider exploded")
	}

	res := NewGenerator(testConfig()).Generate(context.Background(), load)
	require.True(t, res.Failed())
	assert.Contains(t, res.Err.Error(), "provider exploded")
	assert.Contains(t, string(res.File.Content), "panic during generation")
}

func TestGenerator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewGenerator(testConfig()).Generate(ctx, Static(spawnerGraph(t)))
	require.True(t, res.Failed())
	assert.True(t, errors.Is(res.Err, context.Canceled))
}

func TestGenerator_MissingRequiredHostObject(t *testing.T) {
	cfg := testConfig()
	cfg.View.RequireHostObject = true

	res := NewGenerator(cfg).Generate(context.Background(), Static(spawnerGraph(t)))
	require.True(t, res.Failed())
	assert.True(t, errors.Is(res.Err, errors.ErrUnresolvableSymbol))
}

func TestFailureText_EscapesCommentEnd(t *testing.T) {
	assert.Equal(t, "bad * / here", failureText(errors.New("bad */ here")))
}

func TestWriteFiles_AndDrift(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	file := GeneratedFile{Filename: "views_gen.go", Content: []byte("package game\n")}

	drifted, err := Drifted(file, dir)
	require.NoError(t, err)
	assert.True(t, drifted, "missing file has drifted")

	require.NoError(t, WriteFiles([]GeneratedFile{file}, dir))

	drifted, err = Drifted(file, dir)
	require.NoError(t, err)
	assert.False(t, drifted)

	file.Content = []byte("package game\n\n// changed\n")
	drifted, err = Drifted(file, dir)
	require.NoError(t, err)
	assert.True(t, drifted)
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "views_gen.go", []byte("package (")))

	got, err := os.ReadFile(filepath.Join(dir, "views_gen.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "package (", string(got))

	assert.NoError(t, writeDebugUnformatted("", "views_gen.go", nil), "no output dir is a no-op")
}

func TestDefaultGeneratorConfig(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	assert.Equal(t, view.DefaultRuntimePackage, cfg.View.RuntimePackage)
	assert.Equal(t, "views", cfg.PackageName)
}
