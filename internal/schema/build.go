package schema

import (
	"path"
	"strings"

	"go.uber.org/zap"

	"view-generator/internal/common"
	"view-generator/internal/errors"
	"view-generator/internal/logger"
	"view-generator/internal/match"
	"view-generator/internal/typegraph"
	"view-generator/internal/view"
)

// Declaration kinds.
const (
	KindStruct    = "struct"
	KindClass     = "class"
	KindEnum      = "enum"
	KindInterface = "interface"
)

// Field visibilities.
const (
	VisibilityPublic    = "public"
	VisibilityProtected = "protected"
	VisibilityInternal  = "internal"
	VisibilityPrivate   = "private"
)

// basicAliases are accepted in addition to the Go spellings.
var basicAliases = map[string]typegraph.BasicKind{
	"float":  typegraph.BasicFloat32,
	"double": typegraph.BasicFloat64,
	"long":   typegraph.BasicInt64,
	"short":  typegraph.BasicInt16,
	"sbyte":  typegraph.BasicInt8,
	"ushort": typegraph.BasicUint16,
	"ulong":  typegraph.BasicUint64,
}

// Options configures Build.
type Options struct {
	// Predeclared are types declared outside the files, such as the
	// runtime value types. They are referenced by qualified name, e.g.
	// "viewrt.Vector3" or "time.Time".
	Predeclared []typegraph.ID
}

// DefaultOptions predeclares the runtime host object and the builtin
// value types.
func DefaultOptions() Options {
	ids := []typegraph.ID{{Namespace: view.DefaultRuntimePackage, Name: "Object"}}

	return Options{Predeclared: append(ids, view.DefaultValueTypes()...)}
}

type scope struct {
	file  string
	ns    *Namespace
	chain []*typegraph.Type // enclosing declarations and the type itself, outermost first
}

func (s *scope) where(name string) string {
	parts := []string{s.ns.Name}
	for _, t := range s.chain {
		parts = append(parts, t.ID.Name)
	}

	if name != "" {
		parts = append(parts, name)
	}

	loc := strings.Join(parts, ".")
	if s.file != "" {
		loc = s.file + ": " + loc
	}

	return loc
}

type pendingDecl struct {
	decl  *TypeDecl
	t     *typegraph.Type
	scope *scope
}

type builder struct {
	g       *typegraph.Graph
	pending []pendingDecl
	log     *zap.SugaredLogger
}

// Build declares every type of files, then resolves bases and fields, so
// declarations may refer to each other in any order and across files.
func Build(files []*File, opts Options) (*typegraph.Graph, error) {
	b := &builder{g: typegraph.NewGraph(), log: logger.Named("schema")}

	for _, f := range files {
		for i := range f.Namespaces {
			ns := &f.Namespaces[i]
			if err := b.declare(&scope{file: f.Path, ns: ns}, nil, ns.Types); err != nil {
				return nil, err
			}
		}
	}

	for _, id := range opts.Predeclared {
		if _, ok := b.g.Lookup(id); ok {
			continue
		}

		t := &typegraph.Type{ID: id, Kind: typegraph.KindStruct, PkgPath: id.Namespace, PkgName: path.Base(id.Namespace)}
		if err := b.g.Add(t); err != nil {
			return nil, err
		}
	}

	for _, p := range b.pending {
		if err := b.define(p); err != nil {
			return nil, err
		}
	}

	b.log.Debugw("built declarations", "files", len(files), "types", len(b.g.Types()), "roots", len(b.g.RootTypes()))

	return b.g, nil
}

// declare registers decls and their nested declarations.
func (b *builder) declare(parent *scope, container *typegraph.Type, decls []TypeDecl) error {
	for i := range decls {
		d := &decls[i]

		if !common.IsIdent(d.Name) {
			return malformed(parent, d.Name, "%q is not a valid type name", d.Name)
		}

		t := &typegraph.Type{
			ID:        typegraph.ID{Namespace: parent.ns.Name, Name: d.Name},
			PkgPath:   parent.ns.Package,
			PkgName:   parent.ns.PackageName,
			Container: container,
		}

		sc := &scope{file: parent.file, ns: parent.ns, chain: append(append([]*typegraph.Type{}, parent.chain...), t)}

		if err := b.declareShape(sc, d, t); err != nil {
			return err
		}

		if err := b.g.Add(t); err != nil {
			return errors.Mark(errors.Wrap(err, sc.where("")), errors.ErrMalformedSource)
		}

		if d.Root {
			b.g.MarkRoot(t)
		}

		b.pending = append(b.pending, pendingDecl{decl: d, t: t, scope: sc})

		if err := b.declare(sc, t, d.Nested); err != nil {
			return err
		}
	}

	return nil
}

func (b *builder) declareShape(sc *scope, d *TypeDecl, t *typegraph.Type) error {
	switch d.Kind {
	case KindStruct:
		t.Kind = typegraph.KindStruct
	case KindClass:
		t.Kind = typegraph.KindClass
	case KindInterface:
		t.Kind = typegraph.KindInterface
	case KindEnum:
		t.Kind = typegraph.KindEnum

		kind, ok := lookupBasic(d.Underlying)
		if !ok || !kind.IsInteger() {
			return malformed(sc, "", "enum underlying type %q is not an integer type", d.Underlying)
		}

		t.Basic = kind
		for _, m := range d.Members {
			t.Members = append(t.Members, typegraph.Member{Name: m.Name, Value: *m.Value})
		}

		if len(d.Fields) > 0 {
			return malformed(sc, "", "enums cannot declare fields")
		}
	default:
		return malformed(sc, "", "unknown kind %q", d.Kind)
	}

	for _, name := range d.Params {
		if !common.IsIdent(name) {
			return malformed(sc, "", "%q is not a valid parameter name", name)
		}

		t.TypeParams = append(t.TypeParams, &typegraph.Type{ID: typegraph.ID{Name: name}, Kind: typegraph.KindTypeParam})
	}

	return nil
}

// define resolves the base type and fields of a declaration.
func (b *builder) define(p pendingDecl) error {
	d, t, sc := p.decl, p.t, p.scope

	if d.Base != "" {
		base, err := b.resolveString(d.Base, sc)
		if err != nil {
			return errors.Wrapf(err, "%s: base", sc.where(""))
		}

		if !base.Deref().Kind.IsAggregate() {
			return malformed(sc, "", "base %s is not a struct or class", d.Base)
		}

		t.Base = base.Deref()
	}

	for i := range d.Fields {
		fd := &d.Fields[i]

		f, err := b.field(fd, t, sc)
		if err != nil {
			return err
		}

		t.Fields = append(t.Fields, f)
	}

	return nil
}

func (b *builder) field(fd *FieldDecl, owner *typegraph.Type, sc *scope) (*typegraph.Field, error) {
	ft, err := b.resolveString(fd.Type, sc)
	if err != nil {
		return nil, errors.Wrap(err, sc.where(fd.Name))
	}

	f := &typegraph.Field{
		Name:        fd.Name,
		Type:        ft,
		Owner:       owner,
		Static:      fd.Static,
		Const:       fd.Const,
		FixedBuffer: ft.Kind == typegraph.KindFixedBuffer,
	}

	switch fd.Visibility {
	case VisibilityPublic:
		f.Visibility = typegraph.VisibilityPublic
	case VisibilityProtected:
		f.Visibility = typegraph.VisibilityProtected
	case VisibilityInternal:
		f.Visibility = typegraph.VisibilityInternal
	case VisibilityPrivate:
		f.Visibility = typegraph.VisibilityPrivate
	default:
		return nil, malformed(sc, fd.Name, "unknown visibility %q", fd.Visibility)
	}

	switch fd.Serialize {
	case "":
	case "value":
		f.Marker = typegraph.MarkerValue
	case "ref", "reference":
		f.Marker = typegraph.MarkerReference
	case "both":
		f.Marker = typegraph.MarkerBoth
	default:
		return nil, malformed(sc, fd.Name, "unknown serialize marker %q", fd.Serialize)
	}

	switch fd.View {
	case "":
	case "nested":
		f.Overrides.ForceNested = true
	case "ignore", "-":
		f.Overrides.Ignore = true
	default:
		return nil, malformed(sc, fd.Name, "unknown view override %q", fd.View)
	}

	return f, nil
}

func (b *builder) resolveString(s string, sc *scope) (*typegraph.Type, error) {
	e, err := ParseTypeExpr(s)
	if err != nil {
		return nil, errors.Mark(err, errors.ErrMalformedSource)
	}

	return b.resolve(e, sc)
}

// resolve turns a type expression into a canonical graph type.
func (b *builder) resolve(e *TypeExpr, sc *scope) (*typegraph.Type, error) {
	switch e.Kind {
	case ExprArray, ExprFixed, ExprPointer:
		elem, err := b.resolve(e.Elem, sc)
		if err != nil {
			return nil, err
		}

		switch e.Kind {
		case ExprArray:
			return b.g.SequenceOf(typegraph.KindArray, elem), nil
		case ExprFixed:
			return b.g.FixedBufferOf(e.Len, elem), nil
		default:
			return b.g.PointerTo(elem), nil
		}
	}

	args := make([]*typegraph.Type, len(e.Args))
	for i, a := range e.Args {
		t, err := b.resolve(a, sc)
		if err != nil {
			return nil, err
		}

		args[i] = t
	}

	if len(args) == 0 {
		if t := sc.param(e.Name); t != nil {
			return t, nil
		}

		if kind, ok := lookupBasic(e.Name); ok {
			return b.g.Basic(kind, ""), nil
		}
	}

	switch {
	case e.Name == "List" && len(args) == 1:
		return b.g.SequenceOf(typegraph.KindList, args[0]), nil
	case e.Name == "Map" && len(args) == 2:
		return b.g.MapOf(args[0], args[1]), nil
	}

	origin := b.lookup(e.Name, sc)
	if origin == nil {
		err := errors.Wrapf(errors.ErrUnresolvableSymbol, "%s in %s", e.Name, sc.where(""))
		if hint := match.Hint(match.Suggest(e.Name, b.names(sc), 3)); hint != "" {
			err = errors.WithHint(err, hint)
		}

		return nil, err
	}

	if len(origin.TypeParams) != len(args) {
		return nil, errors.Mark(
			errors.Newf("%s takes %d type arguments, got %d", origin, len(origin.TypeParams), len(args)),
			errors.ErrMalformedSource)
	}

	if len(args) == 0 {
		return origin, nil
	}

	return b.g.Instantiate(origin, args), nil
}

// param finds a generic parameter of the enclosing declarations.
func (s *scope) param(name string) *typegraph.Type {
	for i := len(s.chain) - 1; i >= 0; i-- {
		for _, p := range s.chain[i].TypeParams {
			if p.ID.Name == name {
				return p
			}
		}
	}

	return nil
}

// lookup finds a declared type by name: nested in the enclosing
// declarations, in the namespace, in its imports, then fully or
// partially qualified.
func (b *builder) lookup(name string, sc *scope) *typegraph.Type {
	for i := len(sc.chain) - 1; i >= 0; i-- {
		names := make([]string, 0, i+2)
		for _, c := range sc.chain[:i+1] {
			names = append(names, c.ID.Name)
		}

		names = append(names, name)

		if t, ok := b.g.Lookup(typegraph.ID{Namespace: sc.ns.Name, Name: strings.Join(names, ".")}); ok {
			return t
		}
	}

	if t, ok := b.g.Lookup(typegraph.ID{Namespace: sc.ns.Name, Name: name}); ok {
		return t
	}

	for _, imp := range sc.ns.Imports {
		if t, ok := b.g.Lookup(typegraph.ID{Namespace: strings.Trim(imp, "/"), Name: name}); ok {
			return t
		}
	}

	ns, local, ok := splitQualified(name)
	if !ok {
		return nil
	}

	if t, ok := b.g.Lookup(typegraph.ID{Namespace: ns, Name: local}); ok {
		return t
	}

	// Short forms such as "viewrt.Vector3" or "shared.Item".
	for _, t := range b.g.Types() {
		if t.Container != nil || t.ID.Name != local {
			continue
		}

		if strings.HasSuffix(t.ID.Namespace, "/"+ns) || t.PkgName == ns {
			return t
		}
	}

	return nil
}

// names lists the declared types as they are spelled from sc: bare in
// their own namespace, package-qualified elsewhere.
func (b *builder) names(sc *scope) []string {
	var names []string

	for _, t := range b.g.Types() {
		if t.Kind == typegraph.KindTypeParam {
			continue
		}

		if t.ID.Namespace == sc.ns.Name || t.Container != nil {
			names = append(names, t.ID.Name)
			continue
		}

		names = append(names, t.PkgName+"."+t.ID.Name)
	}

	return names
}

// splitQualified splits "a/b.Outer.Inner" into the namespace "a/b" and
// the declaration path "Outer.Inner".
func splitQualified(name string) (ns, local string, ok bool) {
	slash := strings.LastIndex(name, "/")

	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return "", "", false
	}

	dot += slash + 1

	return name[:dot], name[dot+1:], dot > 0 && dot < len(name)-1
}

func lookupBasic(name string) (typegraph.BasicKind, bool) {
	if k, ok := typegraph.LookupBasic(name); ok {
		return k, true
	}

	k, ok := basicAliases[name]

	return k, ok
}

func malformed(sc *scope, name, format string, args ...any) error {
	return errors.Mark(errors.Wrap(errors.Newf(format, args...), sc.where(name)), errors.ErrMalformedSource)
}
