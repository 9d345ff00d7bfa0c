package config

import (
	"fmt"
	"os"

	"github.com/katalvlaran/enzfit/dataset"
)

// Experiment types.
const (
	ExperimentSingle = "single"
	ExperimentDual   = "dual"
)

// Experiment describes measured data. Numeric series are delimited text in
// the format accepted by dataset.ParseValues.
//
//	name: ADH
//	type: dual
//	substrates: [ethanol, NAD]
//	sets:
//	  - variable: A
//	    const: 2.5
//	    replicates:
//	      - {conc: "0.5 1 2 4", rates: "1.1 1.9 2.8 3.5"}
type Experiment struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Replicates of a single-substrate experiment.
	Replicates []Replicate `yaml:"replicates,omitempty"`

	// Two-substrate fields.
	Substrates    []string  `yaml:"substrates,omitempty"`
	Stoichiometry []float64 `yaml:"stoichiometry,omitempty"`
	Titration     bool      `yaml:"titration,omitempty"`
	Sets          []Set     `yaml:"sets,omitempty"`
}

// Replicate is one run. Conc is the substrate (or variable substrate)
// series. Const optionally gives an explicit constant-substrate series in
// two-substrate experiments.
type Replicate struct {
	Conc  string `yaml:"conc"`
	Const string `yaml:"const,omitempty"`
	Rates string `yaml:"rates"`
}

// Set is a group of replicates sharing one constant-substrate concentration.
// Variable is "A", "B" or one of the substrate names.
type Set struct {
	Variable   string      `yaml:"variable"`
	Const      float64     `yaml:"const"`
	Injection  *Injection  `yaml:"injection,omitempty"`
	Replicates []Replicate `yaml:"replicates"`
}

// Injection mirrors dataset.Injection.
type Injection struct {
	TimeStep float64 `yaml:"time_step"`
	V0       float64 `yaml:"v0"`
	VAdd     float64 `yaml:"v_add"`
}

// LoadExperiment reads and checks the experiment file at path. A missing
// name defaults to the file name.
func LoadExperiment(path string) (*Experiment, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	e, err := ParseExperiment(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return e, nil
}

// ParseExperiment decodes b and checks its shape. Data values are checked
// when the experiment is replayed.
func ParseExperiment(b []byte) (*Experiment, error) {
	e := &Experiment{Type: ExperimentSingle}
	if err := decodeStrict(b, e); err != nil {
		return nil, err
	}
	if e.Name == "" {
		e.Name = "experiment"
	}
	if err := e.validate(); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Experiment) validate() error {
	switch e.Type {
	case ExperimentSingle:
		if len(e.Replicates) == 0 {
			return fmt.Errorf("%s: no replicates: %w", e.Name, ErrExperiment)
		}
		if len(e.Sets) > 0 {
			return fmt.Errorf("%s: sets in a single-substrate experiment: %w", e.Name, ErrExperiment)
		}
	case ExperimentDual:
		if len(e.Sets) == 0 {
			return fmt.Errorf("%s: no sets: %w", e.Name, ErrExperiment)
		}
		if len(e.Replicates) > 0 {
			return fmt.Errorf("%s: top-level replicates in a two-substrate experiment: %w", e.Name, ErrExperiment)
		}
		if n := len(e.Substrates); n != 0 && n != 2 {
			return fmt.Errorf("%s: want 2 substrate names, got %d: %w", e.Name, n, ErrExperiment)
		}
		if n := len(e.Stoichiometry); n != 0 && n != 2 {
			return fmt.Errorf("%s: want 2 stoichiometries, got %d: %w", e.Name, n, ErrExperiment)
		}
		for i, s := range e.Sets {
			if len(s.Replicates) == 0 {
				return fmt.Errorf("%s: set %d has no replicates: %w", e.Name, i, ErrExperiment)
			}
		}
	default:
		return fmt.Errorf("%s: type %q: %w", e.Name, e.Type, ErrExperiment)
	}

	return nil
}

// IsDual reports whether e describes a two-substrate experiment.
func (e *Experiment) IsDual() bool { return e.Type == ExperimentDual }

// Single replays the replicates into a new single-substrate store.
func (e *Experiment) Single(opts ...dataset.Option) (*dataset.SingleSubstrate, error) {
	if e.IsDual() {
		return nil, fmt.Errorf("%s: not a single-substrate experiment: %w", e.Name, ErrExperiment)
	}
	ds := dataset.NewSingleSubstrate(e.Name, opts...)
	for i, r := range e.Replicates {
		if err := ds.AddReplicateText(r.Conc, r.Rates); err != nil {
			return nil, fmt.Errorf("replicate %d: %w", i, err)
		}
	}

	return ds, nil
}

// Dual replays the sets into a new two-substrate store. Substrate names,
// stoichiometry and titration from e are applied after opts.
func (e *Experiment) Dual(opts ...dataset.Option) (*dataset.DualSubstrate, error) {
	if !e.IsDual() {
		return nil, fmt.Errorf("%s: not a two-substrate experiment: %w", e.Name, ErrExperiment)
	}
	opts = append([]dataset.Option(nil), opts...)
	if len(e.Substrates) == 2 {
		opts = append(opts, dataset.WithSubstrateNames(e.Substrates[0], e.Substrates[1]))
	}
	if len(e.Stoichiometry) == 2 {
		opts = append(opts, dataset.WithStoichiometry(e.Stoichiometry[0], e.Stoichiometry[1]))
	}
	if e.Titration {
		opts = append(opts, dataset.WithTitration())
	}
	ds, err := dataset.NewDualSubstrate(e.Name, opts...)
	if err != nil {
		return nil, err
	}
	nameA, nameB := ds.SubstrateNames()
	for i, s := range e.Sets {
		r, err := parseRole(s.Variable, nameA, nameB)
		if err != nil {
			return nil, fmt.Errorf("set %d: %w", i, err)
		}
		if err := replaySet(ds, r, s); err != nil {
			return nil, fmt.Errorf("set %d: %w", i, err)
		}
	}

	return ds, nil
}

func replaySet(ds *dataset.DualSubstrate, r dataset.Role, s Set) error {
	if ds.Role() != r {
		ds.ChangeVariable()
	}
	if err := ds.SetCursor(ds.SetCount(r)); err != nil {
		return err
	}
	spec := dataset.SetSpec{Const: s.Const}
	if s.Injection != nil {
		spec.Injection = &dataset.Injection{
			TimeStep: s.Injection.TimeStep,
			V0:       s.Injection.V0,
			VAdd:     s.Injection.VAdd,
		}
	}
	for j, rep := range s.Replicates {
		var err error
		switch {
		case rep.Const == "" && j == 0:
			err = ds.AddSetText(spec, rep.Conc, rep.Rates)
		case rep.Const == "":
			err = ds.AddReplicateText(rep.Conc, rep.Rates)
		default:
			err = replayPoints(ds, spec, rep, j == 0)
		}
		if err != nil {
			return fmt.Errorf("replicate %d: %w", j, err)
		}
	}

	return nil
}

func replayPoints(ds *dataset.DualSubstrate, spec dataset.SetSpec, rep Replicate, first bool) error {
	v, err := dataset.ParseValues(rep.Conc)
	if err != nil {
		return err
	}
	c, err := dataset.ParseValues(rep.Const)
	if err != nil {
		return err
	}
	rates, err := dataset.ParseValues(rep.Rates)
	if err != nil {
		return err
	}
	if first {
		return ds.AddSetPoints(v, c, rates, spec.Injection)
	}

	return ds.AddReplicatePoints(v, c, rates)
}
