package dataset

import (
	"fmt"

	"github.com/katalvlaran/enzfit/ratelaw"
)

// Replicate is one experimental run: paired concentrations and rates.
type Replicate struct {
	Name  string    `json:"name,omitempty"`
	Conc  []float64 `json:"conc"`
	Rates []float64 `json:"rates"`
}

// NewReplicate validates and copies conc and rates.
func NewReplicate(conc, rates []float64) (Replicate, error) {
	if err := checkPair(conc, rates); err != nil {
		return Replicate{}, err
	}

	return Replicate{Conc: clone(conc), Rates: clone(rates)}, nil
}

// Len returns the number of points.
func (r Replicate) Len() int { return len(r.Conc) }

func (r Replicate) clone() Replicate {
	return Replicate{Name: r.Name, Conc: clone(r.Conc), Rates: clone(r.Rates)}
}

// SingleSubstrate holds the replicates of a one-substrate experiment.
type SingleSubstrate struct {
	name  string
	cunit string
	tunit string
	reps  []Replicate
}

// NewSingleSubstrate returns an empty dataset.
func NewSingleSubstrate(name string, opts ...Option) *SingleSubstrate {
	o := buildOptions(opts)

	return &SingleSubstrate{name: name, cunit: o.ConcUnit, tunit: o.TimeUnit}
}

// Name returns the experiment name.
func (d *SingleSubstrate) Name() string { return d.name }

// ConcentrationUnit implements ratelaw.UnitSource.
func (d *SingleSubstrate) ConcentrationUnit() string { return d.cunit }

// RateUnit implements ratelaw.UnitSource.
func (d *SingleSubstrate) RateUnit() string { return rateUnit(d.cunit, d.tunit) }

// TimeUnit returns the time unit.
func (d *SingleSubstrate) TimeUnit() string { return d.tunit }

// AddReplicate appends a replicate built from copies of conc and rates.
func (d *SingleSubstrate) AddReplicate(conc, rates []float64) error {
	r, err := NewReplicate(conc, rates)
	if err != nil {
		return fmt.Errorf("%s: add replicate: %w", d.name, err)
	}
	d.reps = append(d.reps, r)

	return nil
}

// AddReplicateText parses both arrays with ParseValues and appends them.
func (d *SingleSubstrate) AddReplicateText(conc, rates string) error {
	c, err := ParseValues(conc)
	if err != nil {
		return fmt.Errorf("%s: concentrations: %w", d.name, err)
	}
	r, err := ParseValues(rates)
	if err != nil {
		return fmt.Errorf("%s: rates: %w", d.name, err)
	}

	return d.AddReplicate(c, r)
}

// DeleteReplicate removes replicate i.
func (d *SingleSubstrate) DeleteReplicate(i int) error {
	if i < 0 || i >= len(d.reps) {
		return fmt.Errorf("%s: replicate %d of %d: %w", d.name, i, len(d.reps), ErrIndex)
	}
	d.reps = append(d.reps[:i:i], d.reps[i+1:]...)

	return nil
}

// DeletePoint removes point p of replicate i. A replicate left without
// points is removed.
func (d *SingleSubstrate) DeletePoint(i, p int) error {
	if i < 0 || i >= len(d.reps) {
		return fmt.Errorf("%s: replicate %d of %d: %w", d.name, i, len(d.reps), ErrIndex)
	}
	r := d.reps[i]
	if p < 0 || p >= r.Len() {
		return fmt.Errorf("%s: point %d of %d: %w", d.name, p, r.Len(), ErrIndex)
	}
	if r.Len() == 1 {
		return d.DeleteReplicate(i)
	}
	d.reps[i] = Replicate{Name: r.Name, Conc: removeAt(r.Conc, p), Rates: removeAt(r.Rates, p)}

	return nil
}

// Len returns the number of replicates.
func (d *SingleSubstrate) Len() int { return len(d.reps) }

// Points returns the total number of points.
func (d *SingleSubstrate) Points() int {
	n := 0
	for _, r := range d.reps {
		n += r.Len()
	}

	return n
}

// Replicates returns deep copies of the stored replicates.
func (d *SingleSubstrate) Replicates() []Replicate {
	out := make([]Replicate, len(d.reps))
	for i, r := range d.reps {
		out[i] = r.clone()
	}

	return out
}

// Flatten concatenates every replicate in order.
func (d *SingleSubstrate) Flatten() (conc, rates []float64) {
	n := d.Points()
	conc = make([]float64, 0, n)
	rates = make([]float64, 0, n)
	for _, r := range d.reps {
		conc = append(conc, r.Conc...)
		rates = append(rates, r.Rates...)
	}

	return conc, rates
}

// Inputs returns the flattened data in the form rate laws consume.
func (d *SingleSubstrate) Inputs() (ratelaw.Inputs, []float64) {
	conc, rates := d.Flatten()

	return ratelaw.Inputs{Var: conc}, rates
}
