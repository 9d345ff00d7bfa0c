package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/params"
	"github.com/katalvlaran/enzfit/ratelaw"
)

// ModelConfig is the persisted configuration of one rate law.
type ModelConfig struct {
	Kind            string         `json:"kind"`
	Initializations int            `json:"initializations"`
	Params          []params.Param `json:"params"`
}

// ModelOf captures the current configuration of law.
func ModelOf(law ratelaw.Law) ModelConfig {
	return ModelConfig{
		Kind:            law.Kind().String(),
		Initializations: law.Initializations(),
		Params:          law.Params().Params(),
	}
}

// Law rebuilds the configured rate law bound to env.
func (m ModelConfig) Law(env ratelaw.Env) (ratelaw.Law, error) {
	kind, err := ratelaw.ParseKind(m.Kind)
	if err != nil {
		return nil, err
	}
	law, err := ratelaw.New(kind, env)
	if err != nil {
		return nil, err
	}
	for _, p := range m.Params {
		if err := law.Params().Replace(p); err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
	}
	if err := law.SetInitializations(m.Initializations); err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	return law, nil
}

// Project is the unit of persistence: one dataset plus the rate laws
// configured against it. Exactly one of Single and Dual is normally set.
type Project struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
	// Enzyme is the total enzyme concentration; 0 means unset.
	Enzyme float64                 `json:"enzyme,omitempty"`
	Single *dataset.SingleSnapshot `json:"single,omitempty"`
	Dual   *dataset.DualSnapshot   `json:"dual,omitempty"`
	Models []ModelConfig           `json:"models"`
}

// NewProject returns an empty project with a fresh random ID.
func NewProject(name string) *Project {
	return &Project{ID: uuid.New(), Name: name, Created: time.Now().UTC()}
}

// SetEnv records the enzyme concentration held by env.
func (p *Project) SetEnv(env ratelaw.Env) {
	p.Enzyme = 0
	if e, err := env.Enzyme(); err == nil {
		p.Enzyme = e
	}
}

// Env rebuilds the enzyme environment. An unset enzyme yields the zero Env.
func (p *Project) Env() (ratelaw.Env, error) {
	if p.Enzyme == 0 {
		return ratelaw.Env{}, nil
	}

	return ratelaw.NewEnv(p.Enzyme)
}

// SetSingle stores a snapshot of ds, replacing any dataset.
func (p *Project) SetSingle(ds *dataset.SingleSubstrate) {
	s := ds.Snapshot()
	p.Single, p.Dual = &s, nil
}

// SetDual stores a snapshot of ds, replacing any dataset. The dataset's
// enzyme concentration becomes the project's.
func (p *Project) SetDual(ds *dataset.DualSubstrate) {
	s := ds.Snapshot()
	p.Single, p.Dual = nil, &s
	if s.Enzyme != 0 {
		p.Enzyme = s.Enzyme
	}
}

// SingleDataset restores the single-substrate dataset.
func (p *Project) SingleDataset() (*dataset.SingleSubstrate, error) {
	if p.Single == nil {
		return nil, fmt.Errorf("%s: no single-substrate data: %w", p.Name, ErrProject)
	}

	return dataset.RestoreSingle(*p.Single)
}

// DualDataset restores the dual-substrate dataset.
func (p *Project) DualDataset() (*dataset.DualSubstrate, error) {
	if p.Dual == nil {
		return nil, fmt.Errorf("%s: no dual-substrate data: %w", p.Name, ErrProject)
	}

	return dataset.RestoreDual(*p.Dual)
}

// AddLaws appends the configuration of each law.
func (p *Project) AddLaws(laws ...ratelaw.Law) {
	for _, l := range laws {
		p.Models = append(p.Models, ModelOf(l))
	}
}

// Laws rebuilds every configured law against the project environment.
func (p *Project) Laws() ([]ratelaw.Law, error) {
	env, err := p.Env()
	if err != nil {
		return nil, err
	}
	out := make([]ratelaw.Law, 0, len(p.Models))
	for i, m := range p.Models {
		law, err := m.Law(env)
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", i, err)
		}
		out = append(out, law)
	}

	return out, nil
}
