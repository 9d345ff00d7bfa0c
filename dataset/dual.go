// Two-substrate store: roles, Sets, the write cursor and the append paths.
//
// Append contract:
//   - derive validates and computes a replicate without touching d;
//   - commitSet or the AddReplicate* tail then mutates in one step.
//
// Cursor policy: the cursor indexes the Sets of the current role; the value
// len(Sets) is the new-set position. ChangeVariable resets it to 0.
//
// Complexity: derive is O(n) in the replicate; cursor moves are O(1).

package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/enzfit/ratelaw"
)

// Role selects which substrate is the independent variable.
type Role int

const (
	// RoleA: substrate A varies, B is held constant.
	RoleA Role = iota
	// RoleB: substrate B varies, A is held constant.
	RoleB
)

// String returns "A" or "B".
func (r Role) String() string {
	if r == RoleB {
		return "B"
	}

	return "A"
}

// Other returns the opposite role.
func (r Role) Other() Role { return 1 - r }

// DualReplicate is one run within a Set. Enzyme is nil outside titration mode.
type DualReplicate struct {
	Var    []float64 `json:"var"`
	Const  []float64 `json:"const"`
	Rates  []float64 `json:"rates"`
	Enzyme []float64 `json:"enzyme,omitempty"`
}

// Len returns the number of points.
func (r DualReplicate) Len() int { return len(r.Var) }

func (r DualReplicate) clone() DualReplicate {
	return DualReplicate{Var: clone(r.Var), Const: clone(r.Const), Rates: clone(r.Rates), Enzyme: clone(r.Enzyme)}
}

// Set groups replicates that share one constant-substrate concentration.
type Set struct {
	Spec       SetSpec         `json:"spec"`
	Replicates []DualReplicate `json:"replicates"`
}

// Points returns the number of points across replicates.
func (s Set) Points() int {
	n := 0
	for _, r := range s.Replicates {
		n += r.Len()
	}

	return n
}

func (s Set) clone() Set {
	out := Set{Spec: s.Spec.clone(), Replicates: make([]DualReplicate, len(s.Replicates))}
	for i, r := range s.Replicates {
		out.Replicates[i] = r.clone()
	}

	return out
}

// SetPoints is the flattened view of one Set.
type SetPoints struct {
	Var    []float64
	Const  []float64
	Rates  []float64
	Enzyme []float64
}

// Inputs returns the view in the form rate laws consume.
func (p SetPoints) Inputs() (ratelaw.Inputs, []float64) {
	return ratelaw.Inputs{Var: p.Var, Const: p.Const, Enzyme: p.Enzyme}, p.Rates
}

// Len returns the number of points.
func (p SetPoints) Len() int { return len(p.Var) }

// DualSubstrate holds a two-substrate experiment. Data for each role lives
// in its own field; the role flag only selects which one appends and cursor
// moves address.
type DualSubstrate struct {
	name         string
	nameA, nameB string
	cunit, tunit string
	stoichA      float64
	stoichB      float64
	titration    bool
	env          ratelaw.Env

	forA []Set
	forB []Set

	role   Role
	cursor int
}

// NewDualSubstrate returns an empty dataset with role A variable and the
// cursor at the new-set position.
func NewDualSubstrate(name string, opts ...Option) (*DualSubstrate, error) {
	o := buildOptions(opts)
	if !(o.StoichA > 0) || !(o.StoichB > 0) {
		return nil, fmt.Errorf("%s: a=%g b=%g: %w", name, o.StoichA, o.StoichB, ErrStoichiometry)
	}

	return &DualSubstrate{
		name:      name,
		nameA:     o.NameA,
		nameB:     o.NameB,
		cunit:     o.ConcUnit,
		tunit:     o.TimeUnit,
		stoichA:   o.StoichA,
		stoichB:   o.StoichB,
		titration: o.Titration,
		env:       o.Enzyme,
	}, nil
}

// Name returns the experiment name.
func (d *DualSubstrate) Name() string { return d.name }

// SubstrateNames returns the labels of substrates A and B.
func (d *DualSubstrate) SubstrateNames() (a, b string) { return d.nameA, d.nameB }

// VariableName returns the label of the substrate varied in role r.
func (d *DualSubstrate) VariableName(r Role) string {
	if r == RoleB {
		return d.nameB
	}

	return d.nameA
}

// ConcentrationUnit implements ratelaw.UnitSource.
func (d *DualSubstrate) ConcentrationUnit() string { return d.cunit }

// RateUnit implements ratelaw.UnitSource.
func (d *DualSubstrate) RateUnit() string { return rateUnit(d.cunit, d.tunit) }

// TimeUnit returns the time unit.
func (d *DualSubstrate) TimeUnit() string { return d.tunit }

// Titration reports whether the dataset records injections.
func (d *DualSubstrate) Titration() bool { return d.titration }

// Enzyme returns the environment used for the dilution trail.
func (d *DualSubstrate) Enzyme() ratelaw.Env { return d.env }

// Role returns the current variable role.
func (d *DualSubstrate) Role() Role { return d.role }

// Cursor returns the current write position.
func (d *DualSubstrate) Cursor() int { return d.cursor }

func (d *DualSubstrate) sets(r Role) *[]Set {
	if r == RoleB {
		return &d.forB
	}

	return &d.forA
}

// ChangeVariable toggles the variable role and resets the cursor to 0.
// Stored data is not touched.
func (d *DualSubstrate) ChangeVariable() {
	d.role = d.role.Other()
	d.cursor = 0
}

// NextSet advances the cursor, wrapping from the new-set position to 0.
func (d *DualSubstrate) NextSet() {
	if d.cursor == len(*d.sets(d.role)) {
		d.cursor = 0
		return
	}
	d.cursor++
}

// SetCursor moves the cursor to i, which may equal SetCount (new set).
func (d *DualSubstrate) SetCursor(i int) error {
	if i < 0 || i > len(*d.sets(d.role)) {
		return fmt.Errorf("%s: cursor %d with %d sets: %w", d.name, i, len(*d.sets(d.role)), ErrCursor)
	}
	d.cursor = i

	return nil
}

// IsNewSet reports whether the next append creates a Set.
func (d *DualSubstrate) IsNewSet() bool { return d.cursor == len(*d.sets(d.role)) }

// SetCount returns the number of Sets stored for role r.
func (d *DualSubstrate) SetCount(r Role) int { return len(*d.sets(r)) }

// Sets returns deep copies of the Sets stored for role r.
func (d *DualSubstrate) Sets(r Role) []Set {
	src := *d.sets(r)
	out := make([]Set, len(src))
	for i, s := range src {
		out[i] = s.clone()
	}

	return out
}

// current returns the Set under the cursor, or false at the new-set position.
func (d *DualSubstrate) current() (*Set, bool) {
	sets := *d.sets(d.role)
	if d.cursor >= len(sets) {
		return nil, false
	}

	return &sets[d.cursor], true
}

// LastConst returns the constant-substrate series of the last replicate in
// the current Set.
func (d *DualSubstrate) LastConst() ([]float64, bool) {
	s, ok := d.current()
	if !ok || len(s.Replicates) == 0 {
		return nil, false
	}

	return clone(s.Replicates[len(s.Replicates)-1].Const), true
}

// CurrentVar returns the variable-substrate series of the last replicate in
// the current Set.
func (d *DualSubstrate) CurrentVar() ([]float64, bool) {
	s, ok := d.current()
	if !ok || len(s.Replicates) == 0 {
		return nil, false
	}

	return clone(s.Replicates[len(s.Replicates)-1].Var), true
}

// ReplicateCount returns the number of replicates in the current Set,
// 0 at the new-set position.
func (d *DualSubstrate) ReplicateCount() int {
	s, ok := d.current()
	if !ok {
		return 0
	}

	return len(s.Replicates)
}

// Stoichiometry returns the ratio of the substrate held constant when r is
// the variable role. It scales depletion of that substrate.
func (d *DualSubstrate) Stoichiometry(r Role) float64 {
	if r == RoleA {
		return d.stoichB
	}

	return d.stoichA
}

// Stoichiometries returns the ratios of A and B.
func (d *DualSubstrate) Stoichiometries() (a, b float64) { return d.stoichA, d.stoichB }

// AddSet creates a Set at the end of the current role from var and rates.
// The constant series repeats spec.Const, or depletes from it when the
// injection has a time step. The cursor is left on the new Set.
func (d *DualSubstrate) AddSet(spec SetSpec, v, rates []float64) error {
	rep, err := d.derive(spec, v, nil, rates)
	if err != nil {
		return fmt.Errorf("%s: add set: %w", d.name, err)
	}
	d.commitSet(spec, rep)

	return nil
}

// AddSetPoints creates a Set with an explicit constant series. spec.Const is
// taken from the first element; outside titration every other element must
// equal it or ErrConst is returned.
func (d *DualSubstrate) AddSetPoints(v, c, rates []float64, inj *Injection) error {
	if len(c) == 0 {
		return fmt.Errorf("%s: add set: %w", d.name, ErrEmpty)
	}
	spec := SetSpec{Const: c[0], Injection: inj}
	rep, err := d.derive(spec, v, c, rates)
	if err != nil {
		return fmt.Errorf("%s: add set: %w", d.name, err)
	}
	d.commitSet(spec, rep)

	return nil
}

// AddSetText parses var and rates and calls AddSet.
func (d *DualSubstrate) AddSetText(spec SetSpec, v, rates string) error {
	vv, rr, err := parsePair(v, rates)
	if err != nil {
		return fmt.Errorf("%s: add set: %w", d.name, err)
	}

	return d.AddSet(spec, vv, rr)
}

// AddReplicate appends a replicate to the Set under the cursor, deriving the
// constant series from that Set's spec.
func (d *DualSubstrate) AddReplicate(v, rates []float64) error {
	s, ok := d.current()
	if !ok {
		return fmt.Errorf("%s: add replicate: %w", d.name, ErrNoSet)
	}
	rep, err := d.derive(s.Spec, v, nil, rates)
	if err != nil {
		return fmt.Errorf("%s: add replicate: %w", d.name, err)
	}
	s.Replicates = append(s.Replicates, rep)

	return nil
}

// AddReplicatePoints appends a replicate with an explicit constant series to
// the Set under the cursor. The series must start at the Set constant, and
// outside titration must hold it at every point (ErrConst).
func (d *DualSubstrate) AddReplicatePoints(v, c, rates []float64) error {
	s, ok := d.current()
	if !ok {
		return fmt.Errorf("%s: add replicate: %w", d.name, ErrNoSet)
	}
	rep, err := d.derive(s.Spec, v, c, rates)
	if err != nil {
		return fmt.Errorf("%s: add replicate: %w", d.name, err)
	}
	s.Replicates = append(s.Replicates, rep)

	return nil
}

// AddReplicateText parses var and rates and calls AddReplicate.
func (d *DualSubstrate) AddReplicateText(v, rates string) error {
	vv, rr, err := parsePair(v, rates)
	if err != nil {
		return fmt.Errorf("%s: add replicate: %w", d.name, err)
	}

	return d.AddReplicate(vv, rr)
}

// Append creates a Set when the cursor is at the new-set position and adds a
// replicate to the selected Set otherwise; spec is ignored in the latter case.
func (d *DualSubstrate) Append(spec SetSpec, v, rates []float64) error {
	if d.IsNewSet() {
		return d.AddSet(spec, v, rates)
	}

	return d.AddReplicate(v, rates)
}

func (d *DualSubstrate) commitSet(spec SetSpec, rep DualReplicate) {
	spec = spec.clone()
	if !d.titration {
		spec.Injection = nil
	}
	p := d.sets(d.role)
	*p = append(*p, Set{Spec: spec, Replicates: []DualReplicate{rep}})
	d.cursor = len(*p) - 1
}

// derive validates one replicate and computes its constant series and, in
// titration mode, its enzyme trail. It never mutates d.
func (d *DualSubstrate) derive(spec SetSpec, v, c, rates []float64) (DualReplicate, error) {
	if err := checkPair(v, rates); err != nil {
		return DualReplicate{}, err
	}
	if c != nil {
		if len(c) != len(v) {
			return DualReplicate{}, fmt.Errorf("%d constant values for %d points: %w", len(c), len(v), ErrLength)
		}
		if err := checkFinite("constant", c); err != nil {
			return DualReplicate{}, err
		}
	}
	if err := checkFinite("constant", []float64{spec.Const}); err != nil {
		return DualReplicate{}, err
	}
	if err := d.matchConst(spec.Const, c); err != nil {
		return DualReplicate{}, err
	}

	rep := DualReplicate{Var: clone(v), Rates: clone(rates)}
	if !d.titration {
		rep.Const = clone(c)
		if rep.Const == nil {
			rep.Const = repeat(spec.Const, len(v))
		}

		return rep, nil
	}

	if spec.Injection == nil {
		return DualReplicate{}, fmt.Errorf("titration set without injection: %w", ErrInjection)
	}
	inj := *spec.Injection
	if err := inj.validate(); err != nil {
		return DualReplicate{}, err
	}
	e, err := d.env.Enzyme()
	if err != nil {
		return DualReplicate{}, err
	}
	switch {
	case c != nil:
		rep.Const = clone(c)
	case inj.TimeStep > 0:
		rep.Const = inj.Depletion(spec.Const, rates, d.Stoichiometry(d.role))
	default:
		rep.Const = repeat(spec.Const, len(v))
	}
	rep.Enzyme = inj.Dilution(e, len(v))

	return rep, nil
}

// matchConst checks an explicit constant series against the Set value. Every
// point must match outside titration; with titration only the first point
// does, since later points record depletion.
func (d *DualSubstrate) matchConst(want float64, c []float64) error {
	n := len(c)
	if d.titration && n > 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if c[i] != want {
			return fmt.Errorf("constant point %d is %g, set has %g: %w", i, c[i], want, ErrConst)
		}
	}

	return nil
}

// DeletePoint removes point p of replicate rep in Set set of role r from every
// parallel array. Emptied replicates and Sets are removed and the cursor is
// kept within range. Companion series are not recomputed.
func (d *DualSubstrate) DeletePoint(r Role, set, rep, p int) error {
	ps := d.sets(r)
	sets := *ps
	if set < 0 || set >= len(sets) {
		return fmt.Errorf("%s: set %d of %d: %w", d.name, set, len(sets), ErrIndex)
	}
	s := &sets[set]
	if rep < 0 || rep >= len(s.Replicates) {
		return fmt.Errorf("%s: replicate %d of %d: %w", d.name, rep, len(s.Replicates), ErrIndex)
	}
	old := s.Replicates[rep]
	if p < 0 || p >= old.Len() {
		return fmt.Errorf("%s: point %d of %d: %w", d.name, p, old.Len(), ErrIndex)
	}

	if old.Len() > 1 {
		nr := DualReplicate{Var: removeAt(old.Var, p), Const: removeAt(old.Const, p), Rates: removeAt(old.Rates, p)}
		if old.Enzyme != nil {
			nr.Enzyme = removeAt(old.Enzyme, p)
		}
		s.Replicates[rep] = nr

		return nil
	}

	s.Replicates = append(s.Replicates[:rep:rep], s.Replicates[rep+1:]...)
	if len(s.Replicates) == 0 {
		*ps = append(sets[:set:set], sets[set+1:]...)
		if r == d.role && d.cursor > len(*ps) {
			d.cursor = len(*ps)
		}
	}

	return nil
}

// Points returns one flattened view per Set of role r.
func (d *DualSubstrate) Points(r Role) []SetPoints {
	sets := *d.sets(r)
	out := make([]SetPoints, len(sets))
	for i, s := range sets {
		out[i] = flattenSet(s)
	}

	return out
}

// AllPoints concatenates every Set of role r.
func (d *DualSubstrate) AllPoints(r Role) SetPoints {
	var out SetPoints
	for _, s := range *d.sets(r) {
		sp := flattenSet(s)
		out.Var = append(out.Var, sp.Var...)
		out.Const = append(out.Const, sp.Const...)
		out.Rates = append(out.Rates, sp.Rates...)
		if d.titration {
			out.Enzyme = append(out.Enzyme, sp.Enzyme...)
		}
	}

	return out
}

// ConstMeans returns the mean constant-substrate concentration of every Set
// of role r.
func (d *DualSubstrate) ConstMeans(r Role) []float64 {
	sets := *d.sets(r)
	out := make([]float64, len(sets))
	for i, s := range sets {
		c := flattenSet(s).Const
		if len(c) > 0 {
			out[i] = floats.Sum(c) / float64(len(c))
		}
	}

	return out
}

// Represent returns a SingleSubstrate whose i-th replicate is the flattened
// i-th Set of role r, for pooled views and plotting.
func (d *DualSubstrate) Represent(r Role) *SingleSubstrate {
	out := NewSingleSubstrate(d.name+" ("+d.VariableName(r)+")", WithUnits(d.cunit, d.tunit))
	for i, sp := range d.Points(r) {
		out.reps = append(out.reps, Replicate{
			Name:  fmt.Sprintf("set %d", i+1),
			Conc:  sp.Var,
			Rates: sp.Rates,
		})
	}

	return out
}

func flattenSet(s Set) SetPoints {
	n := s.Points()
	out := SetPoints{
		Var:   make([]float64, 0, n),
		Const: make([]float64, 0, n),
		Rates: make([]float64, 0, n),
	}
	for _, r := range s.Replicates {
		out.Var = append(out.Var, r.Var...)
		out.Const = append(out.Const, r.Const...)
		out.Rates = append(out.Rates, r.Rates...)
		if r.Enzyme != nil {
			out.Enzyme = append(out.Enzyme, r.Enzyme...)
		}
	}

	return out
}

func repeat(x float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = x
	}

	return out
}

func parsePair(v, rates string) ([]float64, []float64, error) {
	vv, err := ParseValues(v)
	if err != nil {
		return nil, nil, fmt.Errorf("variable: %w", err)
	}
	rr, err := ParseValues(rates)
	if err != nil {
		return nil, nil, fmt.Errorf("rates: %w", err)
	}

	return vv, rr, nil
}
