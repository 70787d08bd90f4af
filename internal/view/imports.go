package view

import (
	"path"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ImportSpec is one import of the generated file.
type ImportSpec struct {
	Alias string
	Path  string
}

// Explicit reports whether the alias must be written in the import clause.
func (s ImportSpec) Explicit() bool {
	return s.Alias != path.Base(s.Path)
}

// String renders the spec as it appears inside an import block.
func (s ImportSpec) String() string {
	if s.Explicit() {
		return s.Alias + " " + strconv.Quote(s.Path)
	}

	return strconv.Quote(s.Path)
}

// Imports assigns deterministic aliases to the packages generated code
// refers to. Aliases are handed out first come, first served; clashes get
// a numeric suffix.
type Imports struct {
	home    string
	byPath  map[string]string
	aliases map[string]string
}

// NewImports returns an empty set. References to home, the import path of
// the output package, are never qualified.
func NewImports(home string) *Imports {
	return &Imports{
		home:    home,
		byPath:  make(map[string]string),
		aliases: make(map[string]string),
	}
}

// Qualify returns name as referenced from the output package, importing
// pkgPath if needed. pkgName is the declared package name, or empty to
// derive one from the path.
func (im *Imports) Qualify(pkgPath, pkgName, name string) string {
	if pkgPath == "" || pkgPath == im.home {
		return name
	}

	return im.alias(pkgPath, pkgName) + "." + name
}

func (im *Imports) alias(pkgPath, pkgName string) string {
	if a, ok := im.byPath[pkgPath]; ok {
		return a
	}

	base := pkgName
	if base == "" {
		base = sanitizeAlias(aliasElem(pkgPath))
	}

	a := base
	for i := 2; im.aliases[a] != ""; i++ {
		a = base + strconv.Itoa(i)
	}

	im.byPath[pkgPath] = a
	im.aliases[a] = pkgPath

	return a
}

// Specs returns the imports sorted by path.
func (im *Imports) Specs() []ImportSpec {
	specs := make([]ImportSpec, 0, len(im.byPath))
	for p, a := range im.byPath {
		specs = append(specs, ImportSpec{Alias: a, Path: p})
	}

	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Path < specs[j].Path
	})

	return specs
}

// aliasElem returns the path element a package is usually named after,
// skipping a trailing major version such as "v2".
func aliasElem(pkgPath string) string {
	base := path.Base(pkgPath)
	if len(base) > 1 && base[0] == 'v' && strings.Trim(base[1:], "0123456789") == "" {
		if parent := path.Dir(pkgPath); parent != "." && parent != "/" {
			return path.Base(parent)
		}
	}

	return base
}

// sanitizeAlias derives a package identifier from a path element such as
// "yaml.v3" or "go-toml".
func sanitizeAlias(s string) string {
	s = strings.TrimPrefix(s, "go-")
	if i := strings.IndexAny(s, ".-"); i > 0 {
		s = s[:i]
	}

	var b strings.Builder

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	out := b.String()
	if out == "" || !unicode.IsLetter([]rune(out)[0]) {
		out = "pkg" + out
	}

	return out
}
