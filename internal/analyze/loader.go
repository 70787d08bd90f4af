package analyze

import (
	"context"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"

	"view-generator/internal/diagnostic"
	"view-generator/internal/errors"
	"view-generator/internal/logger"
	"view-generator/internal/typegraph"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Config configures package loading.
type Config struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string
	// BuildFlags are passed to the build system, e.g. "-tags=dev".
	BuildFlags []string
	// HostObject is the base type embedded by host objects. It always
	// becomes the base type when embedded.
	HostObject typegraph.ID
}

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	config    Config
	graph     *typegraph.Graph
	typeCache typeutil.Map // types.Type -> *typegraph.Type
	enums     map[*types.TypeName][]typegraph.Member
	diags     diagnostic.Diagnostics
	log       *zap.SugaredLogger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{
		config: config,
		graph:  typegraph.NewGraph(),
		enums:  make(map[*types.TypeName][]typegraph.Member),
		log:    logger.Named("analyze"),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./store",
// "view-generator/warehouse"). Every package must type-check.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*typegraph.Graph, error) {
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       LoadMode,
		Dir:        a.config.Dir,
		BuildFlags: a.config.BuildFlags,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "loading packages")
	}

	if len(pkgs) == 0 {
		return nil, errors.WithHintf(errors.Newf("no packages match %s", strings.Join(patterns, " ")),
			"patterns are resolved relative to %q", a.config.Dir)
	}

	var msgs []string

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			msgs = append(msgs, e.Error())
		}
	})

	if len(msgs) > 0 {
		return nil, errors.WithHint(errors.Newf("package errors: %s", strings.Join(msgs, "; ")),
			"the packages must type-check before views can be generated")
	}

	for _, pkg := range pkgs {
		a.collectEnums(pkg)
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, errors.Wrapf(err, "processing package %s", pkg.PkgPath)
		}
	}

	a.log.Debugw("loaded packages", "packages", len(pkgs), "types", len(a.graph.Types()),
		"roots", len(a.graph.RootTypes()))

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *typegraph.Graph {
	return a.graph
}

// Diagnostics returns problems found in tags and declarations.
func (a *Analyzer) Diagnostics() diagnostic.Diagnostics {
	return a.diags
}

// collectEnums records, in declaration order, the constants of every named
// integer type declared in pkg.
func (a *Analyzer) collectEnums(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}

			for _, spec := range gd.Specs {
				for _, name := range spec.(*ast.ValueSpec).Names {
					c, ok := pkg.TypesInfo.Defs[name].(*types.Const)
					if !ok {
						continue
					}

					named, ok := types.Unalias(c.Type()).(*types.Named)
					if !ok || named.Obj().Pkg() != pkg.Types || !isInteger(named.Underlying()) {
						continue
					}

					v, exact := constant.Int64Val(constant.ToInt(c.Val()))
					if !exact {
						continue
					}

					obj := named.Obj()
					a.enums[obj] = append(a.enums[obj], typegraph.Member{Name: c.Name(), Value: v})
				}
			}
		}
	}
}

// processPackage registers the declared types of pkg and marks roots.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok || obj.IsAlias() {
					continue
				}

				t := a.analyzeType(obj.Type())

				if !hasRootDirective(gd.Doc, ts.Doc) {
					continue
				}

				if !t.Kind.IsAggregate() {
					return errors.Mark(errors.Newf("%s is marked as root but is a %s", t, t.Kind),
						errors.ErrUnsupportedRoot)
				}

				a.graph.MarkRoot(t)
			}
		}
	}

	return nil
}

// analyzeType recursively converts a go/types type. Identical types map to
// one *typegraph.Type.
func (a *Analyzer) analyzeType(t types.Type) *typegraph.Type {
	t = types.Unalias(t)

	if cached, ok := a.typeCache.At(t).(*typegraph.Type); ok {
		return cached
	}

	var info *typegraph.Type

	switch tt := t.(type) {
	case *types.Named:
		if tt.TypeArgs().Len() > 0 {
			info = a.analyzeInstance(tt)
		} else {
			info = a.analyzeNamedType(tt)
		}

	case *types.Basic:
		info = a.basic(tt)

	case *types.Pointer:
		info = a.graph.PointerTo(a.analyzeType(tt.Elem()))

	case *types.Slice:
		info = a.graph.SequenceOf(typegraph.KindList, a.analyzeType(tt.Elem()))

	case *types.Array:
		info = a.graph.FixedBufferOf(int(tt.Len()), a.analyzeType(tt.Elem()))

	case *types.Map:
		info = a.graph.MapOf(a.analyzeType(tt.Key()), a.analyzeType(tt.Elem()))

	case *types.TypeParam:
		info = &typegraph.Type{ID: typegraph.ID{Name: tt.Obj().Name()}, Kind: typegraph.KindTypeParam}

	case *types.Interface:
		info = &typegraph.Type{ID: typegraph.ID{Name: "any"}, Kind: typegraph.KindInterface}

	default:
		// Channels, functions and anonymous structs have no view.
		info = &typegraph.Type{ID: typegraph.ID{Name: t.String()}, Kind: typegraph.KindUnsupported}
	}

	a.typeCache.Set(t, info)

	return info
}

func (a *Analyzer) basic(b *types.Basic) *typegraph.Type {
	kind, ok := typegraph.LookupBasic(b.Name())
	if !ok {
		return &typegraph.Type{ID: typegraph.ID{Name: b.Name()}, Kind: typegraph.KindUnsupported}
	}

	return a.graph.Basic(kind, b.Name())
}

// analyzeInstance converts an instantiated generic type.
func (a *Analyzer) analyzeInstance(named *types.Named) *typegraph.Type {
	origin := a.analyzeType(named.Origin())

	list := named.TypeArgs()
	args := make([]*typegraph.Type, list.Len())

	for i := range list.Len() {
		args[i] = a.analyzeType(list.At(i))
	}

	return a.graph.Instantiate(origin, args)
}

// analyzeNamedType converts a declared type. The result is cached before
// fields are analyzed so recursive types terminate.
func (a *Analyzer) analyzeNamedType(named *types.Named) *typegraph.Type {
	obj := named.Obj()

	info := &typegraph.Type{Kind: typegraph.KindUnsupported, ID: typegraph.ID{Name: obj.Name()}}
	if obj.Pkg() != nil {
		info.ID.Namespace = obj.Pkg().Path()
		info.PkgPath = obj.Pkg().Path()
		info.PkgName = obj.Pkg().Name()
	}

	a.typeCache.Set(named, info)

	if obj.Pkg() != nil {
		if err := a.graph.Add(info); err != nil {
			a.log.Warnw("duplicate declaration", "type", info.ID.String(), "error", err)
		}
	}

	if tps := named.TypeParams(); tps.Len() > 0 {
		info.TypeParams = make([]*typegraph.Type, tps.Len())
		for i := range tps.Len() {
			info.TypeParams[i] = a.analyzeType(tps.At(i))
		}
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = typegraph.KindStruct
		a.analyzeStructFields(ut, info)

	case *types.Basic:
		kind, ok := typegraph.LookupBasic(ut.Name())
		if !ok {
			break
		}

		info.Basic = kind
		info.Kind = typegraph.KindBasic

		if members, ok := a.enums[obj]; ok {
			info.Kind = typegraph.KindEnum
			info.Members = members
		}

	case *types.Interface:
		info.Kind = typegraph.KindInterface

	case *types.Slice:
		info.Kind = typegraph.KindList
		info.Elem = a.analyzeType(ut.Elem())

	case *types.Array:
		info.Kind = typegraph.KindFixedBuffer
		info.Len = int(ut.Len())
		info.Elem = a.analyzeType(ut.Elem())

	case *types.Map:
		info.Kind = typegraph.KindMap
		info.Key = a.analyzeType(ut.Key())
		info.Elem = a.analyzeType(ut.Elem())
	}

	return info
}

// analyzeStructFields extracts fields and the base type from a struct.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *typegraph.Type) {
	for i := range st.NumFields() {
		field := st.Field(i)
		if field.Name() == "_" {
			continue
		}

		ft := a.analyzeType(field.Type())

		if field.Embedded() && a.claimsBase(info, ft) {
			info.Base = ft.Deref()
			continue
		}

		tag := reflect.StructTag(st.Tag(i))

		f := &typegraph.Field{
			Name:        field.Name(),
			Type:        ft,
			Owner:       info,
			FixedBuffer: ft.Kind == typegraph.KindFixedBuffer,
			Visibility:  typegraph.VisibilityPrivate,
		}

		if field.Exported() {
			f.Visibility = typegraph.VisibilityPublic
		}

		var ok bool
		if f.Marker, ok = markerFromTag(tag); !ok {
			a.diags.AddWarning(diagnostic.CodeMalformedSource,
				"unknown "+SerializeTag+" tag value "+tag.Get(SerializeTag), info.String(), f.Name)
		}

		if f.Overrides, ok = overridesFromTag(tag); !ok {
			a.diags.AddWarning(diagnostic.CodeMalformedSource,
				"unknown "+ViewTag+" tag value "+tag.Get(ViewTag), info.String(), f.Name)
		}

		info.Fields = append(info.Fields, f)
	}
}

// claimsBase reports whether the embedded type ft becomes the base of
// owner. The host object always does and displaces an earlier base.
func (a *Analyzer) claimsBase(owner, ft *typegraph.Type) bool {
	t := ft.Deref()
	if !t.Kind.IsAggregate() || t.IsInstance() {
		return false
	}

	if a.config.HostObject != (typegraph.ID{}) && t.ID == a.config.HostObject {
		if owner.Base != nil {
			owner.Fields = append(owner.Fields, &typegraph.Field{
				Name:       owner.Base.ID.Name,
				Type:       owner.Base,
				Owner:      owner,
				Visibility: typegraph.VisibilityPublic,
			})
		}

		return true
	}

	return owner.Base == nil
}

func isInteger(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Info()&types.IsInteger != 0
}
