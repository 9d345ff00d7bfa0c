package params

import "fmt"

// Set is an ordered collection of parameters addressable by name.
// The zero value is an empty, usable set.
type Set struct {
	items []Param
	index map[string]int
}

// NewSet builds a set from ps in the given order.
func NewSet(ps ...Param) (*Set, error) {
	s := &Set{}
	for _, p := range ps {
		if err := s.Add(p); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Add appends p. Names must be unique and bounds valid.
func (s *Set) Add(p Param) error {
	if err := p.validate(); err != nil {
		return err
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[p.Name]; ok {
		return fmt.Errorf("%s: %w", p.Name, ErrDuplicate)
	}
	s.index[p.Name] = len(s.items)
	s.items = append(s.items, p)

	return nil
}

// Len returns the number of parameters.
func (s *Set) Len() int { return len(s.items) }

// Get returns the parameter called name.
func (s *Set) Get(name string) (Param, bool) {
	i, ok := s.index[name]
	if !ok {
		return Param{}, false
	}

	return s.items[i], true
}

// At returns the i-th parameter in set order.
func (s *Set) At(i int) Param { return s.items[i] }

// Names returns parameter names in set order.
func (s *Set) Names() []string {
	out := make([]string, len(s.items))
	for i, p := range s.items {
		out[i] = p.Name
	}

	return out
}

// Values returns parameter values in set order.
func (s *Set) Values() []float64 {
	out := make([]float64, len(s.items))
	for i, p := range s.items {
		out[i] = p.Value
	}

	return out
}

// Params returns a copy of all parameters in set order.
func (s *Set) Params() []Param {
	return append([]Param(nil), s.items...)
}

// Free returns the positions of varying parameters.
func (s *Set) Free() []int {
	var out []int
	for i, p := range s.items {
		if p.Vary {
			out = append(out, i)
		}
	}

	return out
}

// SetValue changes the value of name, keeping its bounds.
func (s *Set) SetValue(name string, v float64) error {
	return s.mutate(name, func(p *Param) { p.Value = v })
}

// SetBounds changes the bounds of name.
func (s *Set) SetBounds(name string, lo, hi float64) error {
	return s.mutate(name, func(p *Param) { p.Min, p.Max = lo, hi })
}

// SetVary toggles whether name participates in fitting.
func (s *Set) SetVary(name string, vary bool) error {
	return s.mutate(name, func(p *Param) { p.Vary = vary })
}

// Fix pins name at v and excludes it from fitting.
func (s *Set) Fix(name string, v float64) error {
	return s.mutate(name, func(p *Param) {
		p.Value = v
		p.Vary = false
	})
}

// Update sets value and both bounds of name at once.
func (s *Set) Update(name string, value, lo, hi float64) error {
	return s.mutate(name, func(p *Param) {
		p.Value, p.Min, p.Max = value, lo, hi
	})
}

// Replace overwrites the configuration of p.Name. The stored category is
// kept, so a persisted parameter cannot change its unit class.
func (s *Set) Replace(p Param) error {
	return s.mutate(p.Name, func(q *Param) {
		cat := q.Category
		*q = p
		q.Category = cat
	})
}

// mutate applies fn to a copy of the named parameter and commits it only if
// the result still satisfies the bound invariants.
func (s *Set) mutate(name string, fn func(*Param)) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknown)
	}
	p := s.items[i]
	fn(&p)
	if err := p.validate(); err != nil {
		return err
	}
	s.items[i] = p

	return nil
}

// Validate re-checks every parameter.
func (s *Set) Validate() error {
	for _, p := range s.items {
		if err := p.validate(); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns a deep copy; mutations on either side are not shared.
func (s *Set) Clone() *Set {
	c := &Set{
		items: append([]Param(nil), s.items...),
		index: make(map[string]int, len(s.items)),
	}
	for k, v := range s.index {
		c.index[k] = v
	}

	return c
}

// Resolve returns a clone with values written in set order. Bounds and vary
// flags are kept; values are not range-checked since they come from a
// minimizer that already respects the bounds.
func (s *Set) Resolve(values []float64) (*Set, error) {
	if len(values) != len(s.items) {
		return nil, fmt.Errorf("got %d values for %d parameters: %w", len(values), len(s.items), ErrArity)
	}
	c := s.Clone()
	for i := range c.items {
		c.items[i].Value = values[i]
	}

	return c, nil
}
