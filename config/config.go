package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/fit"
	"github.com/katalvlaran/enzfit/params"
	"github.com/katalvlaran/enzfit/plot"
	"github.com/katalvlaran/enzfit/ratelaw"
	"github.com/katalvlaran/enzfit/store"
)

// Storage backends understood by Storage.Open.
const (
	BackendNone     = "none"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// DefaultSQLiteDSN is used when the sqlite backend has no DSN.
const DefaultSQLiteDSN = "enzfit.db"

// Config is a complete run configuration.
type Config struct {
	// Enzyme is the total enzyme concentration; 0 leaves it unset.
	Enzyme  float64  `yaml:"enzyme,omitempty"`
	Units   Units    `yaml:"units"`
	Fit     Fit      `yaml:"fit"`
	Models  []Model  `yaml:"models"`
	Roles   []string `yaml:"roles,omitempty"`
	Storage Storage  `yaml:"storage"`
	Output  Output   `yaml:"output"`
	Metrics Metrics  `yaml:"metrics"`
}

// Units names the concentration and time units of the experiment.
type Units struct {
	Concentration string `yaml:"concentration"`
	Time          string `yaml:"time"`
}

// Fit holds engine settings. Initializations is the default for models that
// do not set their own.
type Fit struct {
	Initializations int     `yaml:"initializations"`
	Seed            int64   `yaml:"seed"`
	FTol            float64 `yaml:"ftol"`
	XTol            float64 `yaml:"xtol"`
	GTol            float64 `yaml:"gtol"`
	MaxEvaluations  int     `yaml:"max_evaluations"`
}

// Model selects one rate law by short code or title.
type Model struct {
	Kind            string              `yaml:"kind"`
	Initializations *int                `yaml:"initializations,omitempty"`
	Params          map[string]Override `yaml:"params,omitempty"`
}

// Override replaces selected fields of a parameter. Bounds accept .inf and -.inf.
type Override struct {
	Value *float64 `yaml:"value,omitempty"`
	Min   *float64 `yaml:"min,omitempty"`
	Max   *float64 `yaml:"max,omitempty"`
	Fixed *bool    `yaml:"fixed,omitempty"`
}

// Storage selects where projects are persisted.
type Storage struct {
	Backend string         `yaml:"backend"`
	DSN     string         `yaml:"dsn,omitempty"`
	Codec   string         `yaml:"codec"`
	Prefix  string         `yaml:"prefix"`
	S3      store.S3Config `yaml:"s3,omitempty"`
}

// Output selects the artifacts written after fitting.
type Output struct {
	Dir        string   `yaml:"dir"`
	Workbook   bool     `yaml:"workbook"`
	Plots      bool     `yaml:"plots"`
	Residuals  bool     `yaml:"residuals"`
	Transforms []string `yaml:"transforms"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
}

// Metrics configures the optional Pushgateway delivery.
type Metrics struct {
	PushURL string `yaml:"push_url,omitempty"`
	Job     string `yaml:"job"`
}

// Default returns the configuration used for every field a file omits:
// mM and s, default tolerances, a Michaelis-Menten fit of both roles,
// no persistence, and workbook plus direct plots under the current directory.
func Default() *Config {
	return &Config{
		Units: Units{Concentration: "mM", Time: "s"},
		Fit: Fit{
			FTol: fit.DefaultFTol,
			XTol: fit.DefaultXTol,
			GTol: fit.DefaultGTol,
		},
		Models: []Model{{Kind: ratelaw.MichaelisMenten.String()}},
		Roles:  []string{dataset.RoleA.String(), dataset.RoleB.String()},
		Storage: Storage{
			Backend: BackendNone,
			Codec:   store.CodecZstd.String(),
			Prefix:  "projects/",
		},
		Output: Output{
			Dir:        ".",
			Workbook:   true,
			Plots:      true,
			Transforms: []string{plot.Direct.String()},
			Width:      800,
			Height:     600,
		},
		Metrics: Metrics{Job: "enzfit"},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse decodes b over Default and validates the result. Unknown fields are
// rejected. An empty document yields the defaults.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := decodeStrict(b, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func decodeStrict(b []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	return nil
}

// Validate checks every setting without touching the network or disk.
func (c *Config) Validate() error {
	if c.Enzyme < 0 || math.IsNaN(c.Enzyme) || math.IsInf(c.Enzyme, 0) {
		return fmt.Errorf("enzyme %g: %w", c.Enzyme, ErrInvalid)
	}
	if c.Units.Concentration == "" || c.Units.Time == "" {
		return fmt.Errorf("units: %w", ErrInvalid)
	}
	if err := c.Fit.validate(); err != nil {
		return err
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("models: none selected: %w", ErrInvalid)
	}
	if _, err := c.Laws(ratelaw.Env{}); err != nil {
		return err
	}
	if _, err := c.FitRoles(); err != nil {
		return err
	}
	if err := c.Storage.validate(); err != nil {
		return err
	}

	return c.Output.validate()
}

func (f Fit) validate() error {
	switch {
	case f.Initializations < 0:
		return fmt.Errorf("fit.initializations %d: %w", f.Initializations, ErrInvalid)
	case !(f.FTol > 0) || !(f.XTol > 0) || !(f.GTol > 0):
		return fmt.Errorf("fit tolerances must be > 0: %w", ErrInvalid)
	case f.MaxEvaluations < 0:
		return fmt.Errorf("fit.max_evaluations %d: %w", f.MaxEvaluations, ErrInvalid)
	}

	return nil
}

// EngineOptions converts the fit settings to engine options; extra options
// are appended after them.
func (f Fit) EngineOptions(extra ...fit.Option) []fit.Option {
	opts := []fit.Option{
		fit.WithSeed(f.Seed),
		fit.WithTolerances(f.FTol, f.XTol, f.GTol),
		fit.WithMaxEvaluations(f.MaxEvaluations),
	}

	return append(opts, extra...)
}

// Env builds the enzyme environment. An Enzyme of 0 yields the unset Env.
func (c *Config) Env() (ratelaw.Env, error) {
	if c.Enzyme == 0 {
		return ratelaw.Env{}, nil
	}

	return ratelaw.NewEnv(c.Enzyme)
}

// DatasetOptions returns the units and enzyme options for new datasets.
func (c *Config) DatasetOptions(env ratelaw.Env) []dataset.Option {
	return []dataset.Option{
		dataset.WithUnits(c.Units.Concentration, c.Units.Time),
		dataset.WithEnzyme(env),
	}
}

// Laws builds every selected model bound to env, in file order.
func (c *Config) Laws(env ratelaw.Env) ([]ratelaw.Law, error) {
	kinds := make([]ratelaw.Kind, len(c.Models))
	for i, m := range c.Models {
		k, err := ratelaw.ParseKind(m.Kind)
		if err != nil {
			return nil, fmt.Errorf("models[%d]: %w", i, err)
		}
		kinds[i] = k
	}
	laws, err := ratelaw.NewAll(kinds, env)
	if err != nil {
		return nil, err
	}
	for i, m := range c.Models {
		if err := m.configure(laws[i], c.Fit.Initializations); err != nil {
			return nil, fmt.Errorf("models[%d]: %w", i, err)
		}
	}

	return laws, nil
}

// configure sets the initializations and parameter overrides of law. inits
// is used when the model does not set its own initializations.
func (m Model) configure(law ratelaw.Law, inits int) error {
	kind := law.Kind()
	if m.Initializations != nil {
		inits = *m.Initializations
	}
	if err := law.SetInitializations(inits); err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}

	names := make([]string, 0, len(m.Params))
	for name := range m.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p, ok := law.Params().Get(name)
		if !ok {
			return fmt.Errorf("%s.%s: %w", kind, name, ErrUnknownParam)
		}
		if err := law.Params().Replace(m.Params[name].apply(p)); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}

	return nil
}

func (o Override) apply(p params.Param) params.Param {
	if o.Value != nil {
		p.Value = *o.Value
	}
	if o.Min != nil {
		p.Min = *o.Min
	}
	if o.Max != nil {
		p.Max = *o.Max
	}
	if o.Fixed != nil {
		p.Vary = !*o.Fixed
	}

	return p
}

// FitRoles returns the variable-substrate roles fitted for two-substrate
// experiments, without duplicates.
func (c *Config) FitRoles() ([]dataset.Role, error) {
	out := make([]dataset.Role, 0, 2)
	seen := make(map[dataset.Role]bool, 2)
	for _, s := range c.Roles {
		r, err := parseRole(s, "", "")
		if err != nil {
			return nil, fmt.Errorf("roles: %w", err)
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}

	return out, nil
}

// parseRole accepts "A"/"B" case-insensitively or one of the substrate names.
func parseRole(s, nameA, nameB string) (dataset.Role, error) {
	switch {
	case strings.EqualFold(s, dataset.RoleA.String()), nameA != "" && s == nameA:
		return dataset.RoleA, nil
	case strings.EqualFold(s, dataset.RoleB.String()), nameB != "" && s == nameB:
		return dataset.RoleB, nil
	}

	return 0, fmt.Errorf("role %q: %w", s, ErrInvalid)
}

// Enabled reports whether a backend other than "none" is configured.
func (s Storage) Enabled() bool { return s.Backend != BackendNone }

func (s Storage) validate() error {
	if _, err := store.ParseCodec(s.Codec); err != nil {
		return fmt.Errorf("storage.codec: %w", err)
	}
	switch s.Backend {
	case BackendNone, BackendMemory, BackendSQLite:
	case BackendPostgres:
		if s.DSN == "" {
			return fmt.Errorf("storage.dsn required for postgres: %w", ErrInvalid)
		}
	case BackendS3:
		if s.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket: %w", store.ErrBucket)
		}
	default:
		return fmt.Errorf("storage.backend %q: %w", s.Backend, ErrInvalid)
	}

	return nil
}

// Open connects the configured backend. It returns nil for "none". Backends
// holding a connection implement io.Closer.
func (s Storage) Open(ctx context.Context) (store.Backend, error) {
	switch s.Backend {
	case BackendNone:
		return nil, nil
	case BackendMemory:
		return &store.Memory{}, nil
	case BackendSQLite:
		dsn := s.DSN
		if dsn == "" {
			dsn = DefaultSQLiteDSN
		}

		return store.OpenSQL(ctx, store.SQLite, dsn)
	case BackendPostgres:
		return store.OpenSQL(ctx, store.Postgres, s.DSN)
	case BackendS3:
		return store.NewS3(ctx, s.S3)
	}

	return nil, fmt.Errorf("storage.backend %q: %w", s.Backend, ErrInvalid)
}

// RepositoryOptions returns codec, prefix and logger options for a Repository.
func (s Storage) RepositoryOptions(l *slog.Logger) ([]store.Option, error) {
	codec, err := store.ParseCodec(s.Codec)
	if err != nil {
		return nil, err
	}
	opts := []store.Option{store.WithCodec(codec), store.WithLogger(l)}
	if s.Prefix != "" {
		opts = append(opts, store.WithPrefix(s.Prefix))
	}

	return opts, nil
}

func (o Output) validate() error {
	if o.Dir == "" {
		return fmt.Errorf("output.dir: %w", ErrInvalid)
	}
	if o.Plots || o.Residuals {
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("output size %dx%d: %w", o.Width, o.Height, ErrInvalid)
		}
	}
	if _, err := o.PlotTransforms(); err != nil {
		return fmt.Errorf("output.transforms: %w", err)
	}

	return nil
}

// PlotTransforms parses the transform names.
func (o Output) PlotTransforms() ([]plot.Transform, error) {
	out := make([]plot.Transform, 0, len(o.Transforms))
	for _, s := range o.Transforms {
		t, err := plot.ParseTransform(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}
