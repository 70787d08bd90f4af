package view

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"view-generator/internal/common"
	"view-generator/internal/diagnostic"
	"view-generator/internal/errors"
	"view-generator/internal/logger"
	"view-generator/internal/typegraph"
)

// DefaultRuntimePackage is the import path of the runtime API.
const DefaultRuntimePackage = "view-generator/viewrt"

// Options configures a Catalog.
type Options struct {
	// Home is the namespace whose views get unprefixed identifiers.
	// Empty selects the namespace of the first root type.
	Home string
	// OutputPackage is the import path of the generated package. Types it
	// declares are referenced unqualified.
	OutputPackage string
	// RuntimePackage is the import path of the runtime API.
	RuntimePackage string
	// HostObject is the base type that marks host objects. Types deriving
	// from it are stored as object references; their root view binds a
	// document. The zero ID disables host objects.
	HostObject typegraph.ID
	// RequireHostObject makes a HostObject missing from the provider fatal.
	RequireHostObject bool
	// ValueTypes are structured types the store holds whole.
	ValueTypes []typegraph.ID
	// Roots are additional root types looked up by ID. A missing one is fatal.
	Roots []typegraph.ID
}

// DefaultOptions returns options for the default runtime.
func DefaultOptions() Options {
	return Options{
		RuntimePackage: DefaultRuntimePackage,
		HostObject:     typegraph.ID{Namespace: DefaultRuntimePackage, Name: "Object"},
		ValueTypes:     DefaultValueTypes(),
	}
}

// DefaultValueTypes lists the builtin structured value types.
func DefaultValueTypes() []typegraph.ID {
	ids := []typegraph.ID{
		{Namespace: "time", Name: "Time"},
		{Namespace: "time", Name: "Duration"},
	}

	for _, name := range []string{
		"Color", "Vector2", "Vector2Int", "Vector3", "Vector3Int", "Vector4",
		"Quaternion", "Rect", "RectInt", "Bounds", "BoundsInt", "Hash128",
	} {
		ids = append(ids, typegraph.ID{Namespace: DefaultRuntimePackage, Name: name})
	}

	return ids
}

type memoKey struct {
	t     *typegraph.Type
	usage Usage
}

// Catalog owns the builtin rules and the memo table of one generation run.
// It is not safe for concurrent use; create one per run.
type Catalog struct {
	provider typegraph.Provider
	opts     Options
	imports  *Imports
	log      *zap.SugaredLogger
	diags    diagnostic.Diagnostics

	builtins    []matcher
	table       map[memoKey]Definition
	order       []Definition
	generated   []Generated
	resolved    map[Definition]bool
	unsupported *unsupportedView
	valueTypes  map[typegraph.ID]bool
	hostObject  *typegraph.Type
	sealed      bool
}

// NewCatalog creates a catalog over provider.
// It fails with ErrUnresolvableSymbol when a required symbol is missing.
func NewCatalog(provider typegraph.Provider, opts Options) (*Catalog, error) {
	if opts.RuntimePackage == "" {
		opts.RuntimePackage = DefaultRuntimePackage
	}

	c := &Catalog{
		provider:   provider,
		opts:       opts,
		imports:    NewImports(opts.OutputPackage),
		log:        logger.Named("catalog"),
		table:      make(map[memoKey]Definition),
		resolved:   make(map[Definition]bool),
		valueTypes: make(map[typegraph.ID]bool),
	}

	for _, id := range opts.ValueTypes {
		c.valueTypes[id] = true
	}

	if opts.HostObject != (typegraph.ID{}) {
		host, ok := provider.Lookup(opts.HostObject)
		switch {
		case ok:
			c.hostObject = host
		case opts.RequireHostObject:
			return nil, errors.Wrapf(errors.ErrUnresolvableSymbol, "host object base %s", opts.HostObject)
		default:
			c.log.Debugw("host object base not loaded", "type", opts.HostObject.String())
		}
	}

	c.unsupported = &unsupportedView{c: c}
	c.builtins = c.newBuiltins()

	return c, nil
}

// Diagnostics returns the diagnostics collected so far.
func (c *Catalog) Diagnostics() diagnostic.Diagnostics {
	return c.diags
}

// Imports returns the packages referenced by rendered syntax so far.
func (c *Catalog) Imports() *Imports {
	return c.imports
}

// Home returns the namespace whose views get unprefixed identifiers.
func (c *Catalog) Home() string {
	return c.opts.Home
}

// Generated returns the generated definitions in discovery order.
func (c *Catalog) Generated() []Generated {
	return c.generated
}

// Definitions returns every memoized definition in discovery order.
func (c *Catalog) Definitions() []Definition {
	return c.order
}

// GetView returns the definition for viewing t from usage u.
// Builtin rules are tried first, in order. Otherwise the memo table is
// consulted; on a miss t is classified and the new definition is stored
// before anything it refers to is resolved. The error wraps
// ErrUnsupportedFieldShape when no view kind fits t. Once Resolve has run
// a new definition is an assertion failure: rendering only reads the table.
func (c *Catalog) GetView(t *typegraph.Type, u Usage) (Definition, error) {
	if t == nil {
		return nil, errors.AssertionFailedf("GetView called with nil type")
	}

	for _, b := range c.builtins {
		if b.match(t, u) {
			return b, nil
		}
	}

	nt := normalize(t)
	key := memoKey{t: nt, usage: c.keyUsage(nt, u)}

	if d, ok := c.table[key]; ok {
		return d, nil
	}

	d, err := c.classify(nt, key.usage)
	if err != nil {
		return nil, err
	}

	if c.sealed {
		return nil, errors.AssertionFailedf("view of %s as %s discovered after resolution", nt, key.usage)
	}

	c.table[key] = d
	c.order = append(c.order, d)

	if g, ok := d.(Generated); ok {
		c.generated = append(c.generated, g)
	}

	return d, nil
}

// normalize strips pointers and maps generic aggregate instantiations to
// their open definition, which is what a generated view is declared for.
func normalize(t *typegraph.Type) *typegraph.Type {
	t = t.Deref()
	if t.IsInstance() && (t.Kind.IsAggregate() || t.Kind == typegraph.KindEnum) {
		return t.Origin
	}

	return t
}

// keyUsage folds Root into ValueField, except for host objects whose root
// view differs from their field view.
func (c *Catalog) keyUsage(t *typegraph.Type, u Usage) Usage {
	if u == UsageRoot && !c.isHostObject(t) {
		return UsageValueField
	}

	return u
}

func (c *Catalog) classify(t *typegraph.Type, u Usage) (Definition, error) {
	switch {
	case t.Kind.IsSequence():
		return &sequenceView{c: c, t: t, usage: u}, nil
	case u == UsageReferenceField:
		return &managedReferenceView{c: c}, nil
	case u == UsageValueField && c.isHostObject(t):
		return &objectReferenceView{c: c}, nil
	case t.Kind.IsAggregate():
		return newAggregateView(c, t, u == UsageRoot), nil
	case t.Kind == typegraph.KindEnum && enumFits(t):
		return newEnumView(c, t), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedFieldShape, "%s (%s) as %s", t, t.Kind, u)
	}
}

func enumFits(t *typegraph.Type) bool {
	bits := t.Basic.EnumStorageBits()
	return bits > 0 && bits <= 32
}

// isHostObject reports whether t derives from the configured host base.
func (c *Catalog) isHostObject(t *typegraph.Type) bool {
	if c.opts.HostObject == (typegraph.ID{}) {
		return false
	}

	return typegraph.DerivesFrom(c.provider, t, func(base *typegraph.Type) bool {
		return base == c.hostObject || base.ID == c.opts.HostObject
	})
}

// viewOrSink returns the view for t, degrading to the unsupported view
// with a warning when t cannot be viewed.
func (c *Catalog) viewOrSink(t *typegraph.Type, u Usage, f *typegraph.Field) Definition {
	d, err := c.GetView(t, u)
	if err == nil {
		return d
	}

	typeName, fieldName := t.String(), ""
	if f != nil {
		typeName, fieldName = f.Owner.String(), f.Name
	}

	c.diags.AddWarning(diagnostic.CodeUnsupportedField, err.Error(), typeName, fieldName)
	c.log.Warnw("no view for type, using unsupported view", "type", typeName, "field", fieldName, "error", err)

	return c.unsupported
}

// resolvedView returns the view resolution chose for t. It is used while
// rendering, where a view missing from the table is a programming error.
func (c *Catalog) resolvedView(t *typegraph.Type, u Usage) Definition {
	d, err := c.GetView(t, u)
	switch {
	case err == nil:
		return d
	case errors.Is(err, errors.ErrUnsupportedFieldShape):
		return c.unsupported
	default:
		panic(err)
	}
}

// discoverNested memoizes the views a reference to t renders without t's
// own view resolving them: fixed buffer elements and generic arguments,
// recursively through nested instantiations. Host object handles render
// their declared type only.
func (c *Catalog) discoverNested(t *typegraph.Type, f *typegraph.Field) {
	t = t.Deref()
	if c.isHostObject(t) {
		return
	}

	if t.Kind == typegraph.KindFixedBuffer {
		c.viewOrSink(t.Elem, UsageValueField, f)
		c.discoverNested(t.Elem, f)
	}

	for _, cur := range append(containers(t), t) {
		for _, a := range cur.TypeArgs {
			c.viewOrSink(a, UsageValueField, f)
			c.discoverNested(a, f)
		}
	}
}

// Discover resolves the root view of every root type.
// A root that cannot be classified is fatal.
func (c *Catalog) Discover() error {
	roots := slices.Clone(c.provider.RootTypes())

	for _, id := range c.opts.Roots {
		t, ok := c.provider.Lookup(id)
		if !ok {
			return errors.Wrapf(errors.ErrUnresolvableSymbol, "root %s", id)
		}

		if !slices.Contains(roots, t) {
			roots = append(roots, t)
		}
	}

	if c.opts.Home == "" && len(roots) > 0 {
		c.opts.Home = roots[0].ID.Namespace
	}

	for _, r := range roots {
		d, err := c.GetView(r, UsageRoot)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "root %s", r), errors.ErrUnsupportedRoot)
		}

		if _, ok := d.(Generated); !ok {
			c.diags.AddInfo(diagnostic.CodeSkippedRoot, "root resolves to a builtin view; nothing to generate", r.String(), "")
		}
	}

	c.log.Debugw("discovered roots", "roots", len(roots), "definitions", len(c.order))

	return nil
}

// Resolve runs deferred resolution for every memoized definition exactly
// once. Definitions discovered while resolving are appended and resolved
// in the same pass.
func (c *Catalog) Resolve() error {
	for i := 0; i < len(c.order); i++ {
		d := c.order[i]

		r, ok := d.(resolver)
		if !ok {
			continue
		}

		if c.resolved[d] {
			return errors.AssertionFailedf("definition %d resolved twice", i)
		}

		c.resolved[d] = true

		if err := r.resolve(); err != nil {
			return err
		}
	}

	c.sealed = true

	c.log.Debugw("resolved views", "definitions", len(c.order), "generated", len(c.generated))

	return nil
}

// runtime qualifies a name from the runtime package.
func (c *Catalog) runtime(name string) string {
	return c.imports.Qualify(c.opts.RuntimePackage, "viewrt", name)
}

// TypeSyntax returns the Go syntax of a declared type as referenced from
// the output package.
func (c *Catalog) TypeSyntax(t *typegraph.Type) string {
	if t == nil {
		return "any"
	}

	switch t.Kind {
	case typegraph.KindTypeParam:
		return t.ID.Name
	case typegraph.KindPointer:
		return "*" + c.TypeSyntax(t.Elem)
	case typegraph.KindArray, typegraph.KindList:
		if !t.IsNamed() {
			return "[]" + c.TypeSyntax(t.Elem)
		}
	case typegraph.KindFixedBuffer:
		if !t.IsNamed() {
			return "[" + strconv.Itoa(t.Len) + "]" + c.TypeSyntax(t.Elem)
		}
	case typegraph.KindMap:
		if !t.IsNamed() {
			return "map[" + c.TypeSyntax(t.Key) + "]" + c.TypeSyntax(t.Elem)
		}
	}

	if !t.IsNamed() {
		return "any"
	}

	name := t.ID.Name
	for _, ct := range containers(t) {
		name = ct.ID.Name + name
	}

	name = c.imports.Qualify(t.PkgPath, t.PkgName, name)

	if len(t.TypeArgs) > 0 {
		args := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = c.TypeSyntax(a)
		}

		name += "[" + strings.Join(args, ", ") + "]"
	}

	return name
}

// viewIdent returns the identifier of the generated view for template t:
// a namespace prefix outside the home namespace, the container chain, the
// type name and "View".
func (c *Catalog) viewIdent(t *typegraph.Type) string {
	var b strings.Builder

	if ns := t.ID.Namespace; ns != "" && ns != c.opts.Home {
		segs := t.ID.Segments()
		b.WriteString(common.ExportName(segs[len(segs)-1]))
	}

	for _, ct := range containers(t) {
		b.WriteString(ct.ID.Name)
	}

	b.WriteString(t.ID.Name)
	b.WriteString("View")

	return b.String()
}

// viewArgs renders the view type arguments for a reference to t: the
// arguments of every enclosing container, then t's own. Open definitions
// contribute their parameter names.
func (c *Catalog) viewArgs(t *typegraph.Type) string {
	var args []string

	for _, cur := range append(containers(t), t) {
		list := cur.TypeArgs
		if len(list) == 0 {
			list = cur.Template().TypeParams
		}

		for _, a := range list {
			args = append(args, c.resolvedView(a, UsageValueField).ViewType(a))
		}
	}

	if len(args) == 0 {
		return ""
	}

	return "[" + strings.Join(args, ", ") + "]"
}

// typeParams renders a type parameter list constraining each name to the
// runtime View interface.
func (c *Catalog) typeParams(names []string) (decl, args string) {
	if len(names) == 0 {
		return "", ""
	}

	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s %s[%s]", n, c.runtime("View"), n)
	}

	return "[" + strings.Join(parts, ", ") + "]", "[" + strings.Join(names, ", ") + "]"
}

// isSerializable reports whether t can be stored by value. It has no side
// effects on the memo table.
func (c *Catalog) isSerializable(t *typegraph.Type) bool {
	return c.serializable(t, map[*typegraph.Type]bool{})
}

func (c *Catalog) serializable(t *typegraph.Type, seen map[*typegraph.Type]bool) bool {
	t = t.Deref()
	if seen[t] {
		return true
	}

	seen[t] = true

	switch {
	case t.Kind == typegraph.KindTypeParam, t.Kind == typegraph.KindBasic:
		return true
	case t.Kind == typegraph.KindEnum:
		return enumFits(t)
	case c.valueTypes[t.ID] && t.Container == nil:
		return true
	case c.isHostObject(t), t.Kind.IsAggregate():
		return true
	case t.Kind.IsSequence():
		return c.serializable(t.Elem, seen)
	default:
		return false
	}
}
