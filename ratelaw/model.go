package ratelaw

import (
	"fmt"

	"github.com/katalvlaran/enzfit/params"
)

// Model is the concrete Law for every Kind. It owns a mutable parameter
// configuration and a multi-start count; evaluation never mutates it.
type Model struct {
	kind  Kind
	env   Env
	set   *params.Set
	inits int
}

// compile-time check
var _ Law = (*Model)(nil)

// New returns a Model of the given kind with default parameters
// (value 1, bounds [0, 100], Hill n in [0, 10]) and zero initializations.
// env may be the zero Env for laws that do not scale with enzyme.
func New(kind Kind, env Env) (*Model, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%d: %w", int(kind), ErrUnknownKind)
	}
	set, err := params.NewSet(catalog[kind].params...)
	if err != nil {
		return nil, err
	}

	return &Model{kind: kind, env: env, set: set}, nil
}

// NewAll builds one Model per kind, all sharing env, in the order of kinds.
// The first unknown kind fails the whole call.
//
// Complexity: O(len(kinds)·p) for p parameters per law.
func NewAll(kinds []Kind, env Env) ([]Law, error) {
	out := make([]Law, 0, len(kinds))
	for _, k := range kinds {
		m, err := New(k, env)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}

// Kind implements Law.
func (m *Model) Kind() Kind { return m.kind }

// Name implements Law.
func (m *Model) Name() string { return catalog[m.kind].title }

// Substrates implements Law.
func (m *Model) Substrates() int { return catalog[m.kind].substrates }

// UsesEnzyme implements Law.
func (m *Model) UsesEnzyme() bool { return catalog[m.kind].enzyme }

// Params implements Law.
func (m *Model) Params() *params.Set { return m.set }

// Env returns the run-time environment bound to m.
func (m *Model) Env() Env { return m.env }

// Initializations implements Law.
func (m *Model) Initializations() int { return m.inits }

// SetInitializations implements Law.
func (m *Model) SetInitializations(n int) error {
	if n < 0 {
		return fmt.Errorf("%s: %d: %w", m.kind, n, ErrInitializations)
	}
	m.inits = n

	return nil
}

// Clone implements Law.
func (m *Model) Clone() Law {
	return &Model{kind: m.kind, env: m.env, set: m.set.Clone(), inits: m.inits}
}

// Residual implements Law. The i-th element is rate(x_i) − observed_i.
func (m *Model) Residual(values []float64, in Inputs, observed []float64) ([]float64, error) {
	if len(in.Var) != len(observed) {
		return nil, fmt.Errorf("%s: %d inputs vs %d observations: %w",
			m.kind, len(in.Var), len(observed), ErrShape)
	}
	pred, err := m.eval(values, in)
	if err != nil {
		return nil, err
	}
	for i := range pred {
		pred[i] -= observed[i]
	}

	return pred, nil
}

// Predictor implements Law. Enzyme-scaled laws require a configured Env.
func (m *Model) Predictor(values []float64) (Predictor, error) {
	if len(values) != m.set.Len() {
		return Predictor{}, fmt.Errorf("%s: got %d values, want %d: %w",
			m.kind, len(values), m.set.Len(), params.ErrArity)
	}
	p := Predictor{kind: m.kind, values: append([]float64(nil), values...)}
	if catalog[m.kind].enzyme {
		e, err := m.env.Enzyme()
		if err != nil {
			return Predictor{}, fmt.Errorf("%s: %w", m.kind, err)
		}
		p.enzyme = e
	}

	return p, nil
}

// Unit implements Law.
func (m *Model) Unit(name string, src UnitSource) (string, error) {
	p, ok := m.set.Get(name)
	if !ok {
		return "", fmt.Errorf("%s: %q: %w", m.kind, name, params.ErrUnknown)
	}

	return unitOf(p.Category, src), nil
}

func unitOf(c params.Category, src UnitSource) string {
	switch c {
	case params.Concentration:
		return src.ConcentrationUnit()
	case params.Rate:
		return src.RateUnit()
	default:
		return ""
	}
}

// eval computes predicted rates for in, validating shapes first.
func (m *Model) eval(values []float64, in Inputs) ([]float64, error) {
	ent := catalog[m.kind]
	if len(values) != len(ent.params) {
		return nil, fmt.Errorf("%s: got %d values, want %d: %w",
			m.kind, len(values), len(ent.params), params.ErrArity)
	}
	n := len(in.Var)
	if ent.substrates == 2 && len(in.Const) != n {
		return nil, fmt.Errorf("%s: %d constant values for %d points: %w",
			m.kind, len(in.Const), n, ErrMissingConst)
	}
	if in.Const != nil && len(in.Const) != n {
		return nil, fmt.Errorf("%s: const length %d, want %d: %w", m.kind, len(in.Const), n, ErrShape)
	}
	if in.Enzyme != nil && len(in.Enzyme) != n {
		return nil, fmt.Errorf("%s: enzyme length %d, want %d: %w", m.kind, len(in.Enzyme), n, ErrShape)
	}

	var e float64
	if ent.enzyme && in.Enzyme == nil {
		var err error
		if e, err = m.env.Enzyme(); err != nil {
			return nil, fmt.Errorf("%s: %w", m.kind, err)
		}
	}

	out := make([]float64, n)
	for i, s := range in.Var {
		var b float64
		if in.Const != nil {
			b = in.Const[i]
		}
		ei := e
		if in.Enzyme != nil {
			ei = in.Enzyme[i]
		}
		r := ent.rate(values, s, b, ei)
		if !finite(r) {
			return nil, fmt.Errorf("%s at point %d (s=%g, values=%v): %w", m.kind, i, s, values, ErrNonFinite)
		}
		out[i] = r
	}

	return out, nil
}
