// Package config loads the view-generator configuration from
// view-generator.yaml, VIEWGEN_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"view-generator/internal/errors"
	"view-generator/internal/gen"
	"view-generator/internal/match"
	"view-generator/internal/tables"
	"view-generator/internal/typegraph"
	"view-generator/internal/view"
)

const (
	// FileName is the configuration file name without extension.
	FileName = "view-generator"
	// EnvPrefix prefixes the environment variables overriding keys, e.g.
	// VIEWGEN_OUTPUT_DIR for output.dir.
	EnvPrefix = "VIEWGEN"
)

// Source kinds.
const (
	SourceGo     = "go"
	SourceSchema = "schema"
)

// Config represents the view-generator configuration.
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Output OutputConfig `mapstructure:"output"`
	View   ViewConfig   `mapstructure:"view"`
	Tables TablesConfig `mapstructure:"tables"`
	Log    LogConfig    `mapstructure:"log"`
}

// SourceConfig selects the front-end producing the type graph.
type SourceConfig struct {
	// Kind is "go" to load Go packages or "schema" to read declaration files.
	Kind       string   `mapstructure:"kind"`
	Dir        string   `mapstructure:"dir"`
	Patterns   []string `mapstructure:"patterns"`
	BuildFlags []string `mapstructure:"build_flags"`
	// Schemas lists declaration files. Entries may be glob patterns.
	Schemas []string `mapstructure:"schemas"`
}

// OutputConfig describes the generated views file.
type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Package  string `mapstructure:"package"`
	Filename string `mapstructure:"filename"`
	BuildTag string `mapstructure:"build_tag"`
	// ImportPath is the import path of the output package.
	ImportPath string `mapstructure:"import_path"`
}

// ViewConfig configures view resolution. Types are written as
// "namespace.Name", e.g. "view-generator/viewrt.Vector3".
type ViewConfig struct {
	Home              string   `mapstructure:"home"`
	Runtime           string   `mapstructure:"runtime"`
	HostObject        string   `mapstructure:"host_object"`
	RequireHostObject bool     `mapstructure:"require_host_object"`
	ValueTypes        []string `mapstructure:"value_types"`
	Roots             []string `mapstructure:"roots"`
}

// TablesConfig describes the tables file.
type TablesConfig struct {
	Package    string                  `mapstructure:"package"`
	Filename   string                  `mapstructure:"filename"`
	ProjectDir string                  `mapstructure:"project_dir"`
	Animators  []tables.AnimatorSource `mapstructure:"animators"`
	Materials  []tables.MaterialSource `mapstructure:"materials"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
	JSON    bool `mapstructure:"json"`
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// keys without a default are only read from the environment once bound
	for _, key := range FlagKeys {
		_ = v.BindEnv(key)
	}

	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	genDefaults := gen.DefaultGeneratorConfig()
	tableDefaults := tables.DefaultConfig()

	v.SetDefault("source.kind", SourceGo)
	v.SetDefault("source.dir", ".")
	v.SetDefault("source.patterns", []string{"./..."})

	v.SetDefault("output.dir", genDefaults.OutputDir)
	v.SetDefault("output.package", genDefaults.PackageName)
	v.SetDefault("output.filename", genDefaults.Filename)

	v.SetDefault("view.runtime", view.DefaultRuntimePackage)
	v.SetDefault("view.host_object", genDefaults.View.HostObject.String())
	v.SetDefault("view.value_types", idStrings(view.DefaultValueTypes()))

	v.SetDefault("tables.package", tableDefaults.PackageName)
	v.SetDefault("tables.filename", tableDefaults.Filename)
}

// FlagKeys maps command-line flag names to the configuration keys they
// override.
var FlagKeys = map[string]string{
	"source":      "source.kind",
	"dir":         "source.dir",
	"schema":      "source.schemas",
	"output":      "output.dir",
	"package":     "output.package",
	"filename":    "output.filename",
	"build-tag":   "output.build_tag",
	"import-path": "output.import_path",
	"home":        "view.home",
	"root":        "view.roots",
	"project":     "tables.project_dir",
	"verbose":     "log.verbose",
	"json":        "log.json",
}

// BindFlags binds the flags of FlagKeys that are defined in flags.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "binding flag --%s", name)
		}
	}

	return nil
}

// Load reads the configuration. An explicit path must exist; otherwise
// view-generator.yaml is looked up in the current directory and defaults
// apply when it is absent.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values the generator cannot default.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceGo:
		if len(c.Source.Patterns) == 0 {
			return errors.WithHint(errors.New("source.patterns is empty"),
				`list the packages to load, e.g. "./..."`)
		}
	case SourceSchema:
		if len(c.Source.Schemas) == 0 {
			return errors.WithHint(errors.New("source.schemas is empty"),
				"list the declaration files to read")
		}
	default:
		hint := match.Hint(match.Suggest(c.Source.Kind, []string{SourceGo, SourceSchema}, 1))
		if hint == "" {
			hint = fmt.Sprintf("use %q or %q", SourceGo, SourceSchema)
		}

		return errors.WithHint(errors.Newf("unknown source.kind %q", c.Source.Kind), hint)
	}

	for i, a := range c.Tables.Animators {
		if a.Name == "" || a.Path == "" {
			return errors.Newf("tables.animators[%d] needs a name and a path", i)
		}
	}

	for i, m := range c.Tables.Materials {
		if m.Name == "" || m.Path == "" {
			return errors.Newf("tables.materials[%d] needs a name and a path", i)
		}
	}

	return nil
}

// GeneratorConfig returns the view generator configuration.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	opts := view.Options{
		Home:              c.View.Home,
		OutputPackage:     c.Output.ImportPath,
		RuntimePackage:    c.View.Runtime,
		RequireHostObject: c.View.RequireHostObject,
		ValueTypes:        parseIDs(c.View.ValueTypes),
		Roots:             parseIDs(c.View.Roots),
	}

	if c.View.HostObject != "" {
		opts.HostObject = typegraph.ParseID(c.View.HostObject)
	}

	return gen.GeneratorConfig{
		PackageName: c.Output.Package,
		OutputDir:   c.Output.Dir,
		Filename:    c.Output.Filename,
		BuildTag:    c.Output.BuildTag,
		View:        opts,
	}
}

// TableConfig returns the table generator configuration. Tables share the
// output directory and build tag of the views.
func (c *Config) TableConfig() tables.Config {
	return tables.Config{
		PackageName:    c.Tables.Package,
		OutputDir:      c.Output.Dir,
		Filename:       c.Tables.Filename,
		BuildTag:       c.Output.BuildTag,
		RuntimePackage: c.View.Runtime,
		ProjectDir:     c.Tables.ProjectDir,
		Animators:      c.Tables.Animators,
		Materials:      c.Tables.Materials,
	}
}

// HasTables reports whether any table source is configured.
func (c *Config) HasTables() bool {
	return c.Tables.ProjectDir != "" || len(c.Tables.Animators) > 0 || len(c.Tables.Materials) > 0
}

func parseIDs(ss []string) []typegraph.ID {
	if len(ss) == 0 {
		return nil
	}

	ids := make([]typegraph.ID, 0, len(ss))
	for _, s := range ss {
		ids = append(ids, typegraph.ParseID(s))
	}

	return ids
}

func idStrings(ids []typegraph.ID) []string {
	ss := make([]string, 0, len(ids))
	for _, id := range ids {
		ss = append(ss, id.String())
	}

	return ss
}
