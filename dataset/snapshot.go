package dataset

import (
	"fmt"

	"github.com/katalvlaran/enzfit/ratelaw"
)

// SingleSnapshot is the serializable state of a SingleSubstrate.
type SingleSnapshot struct {
	Name       string      `json:"name"`
	ConcUnit   string      `json:"conc_unit"`
	TimeUnit   string      `json:"time_unit"`
	Replicates []Replicate `json:"replicates"`
}

// Snapshot returns a deep copy of the dataset state.
func (d *SingleSubstrate) Snapshot() SingleSnapshot {
	return SingleSnapshot{Name: d.name, ConcUnit: d.cunit, TimeUnit: d.tunit, Replicates: d.Replicates()}
}

// RestoreSingle rebuilds a SingleSubstrate, validating every replicate.
func RestoreSingle(s SingleSnapshot) (*SingleSubstrate, error) {
	d := NewSingleSubstrate(s.Name, WithUnits(s.ConcUnit, s.TimeUnit))
	for i, r := range s.Replicates {
		if err := checkPair(r.Conc, r.Rates); err != nil {
			return nil, fmt.Errorf("replicate %d: %w: %w", i, ErrSnapshot, err)
		}
		d.reps = append(d.reps, r.clone())
	}

	return d, nil
}

// DualSnapshot is the serializable state of a DualSubstrate, including the
// stored enzyme trails, role flag and cursor.
type DualSnapshot struct {
	Name      string  `json:"name"`
	NameA     string  `json:"name_a"`
	NameB     string  `json:"name_b"`
	ConcUnit  string  `json:"conc_unit"`
	TimeUnit  string  `json:"time_unit"`
	StoichA   float64 `json:"stoich_a"`
	StoichB   float64 `json:"stoich_b"`
	Titration bool    `json:"titration"`
	// Enzyme is 0 when no enzyme concentration was configured.
	Enzyme float64 `json:"enzyme,omitempty"`
	Role   Role    `json:"role"`
	Cursor int     `json:"cursor"`
	SetsA  []Set   `json:"sets_a"`
	SetsB  []Set   `json:"sets_b"`
}

// Snapshot returns a deep copy of the dataset state.
func (d *DualSubstrate) Snapshot() DualSnapshot {
	e, _ := d.env.Enzyme()

	return DualSnapshot{
		Name:      d.name,
		NameA:     d.nameA,
		NameB:     d.nameB,
		ConcUnit:  d.cunit,
		TimeUnit:  d.tunit,
		StoichA:   d.stoichA,
		StoichB:   d.stoichB,
		Titration: d.titration,
		Enzyme:    e,
		Role:      d.role,
		Cursor:    d.cursor,
		SetsA:     d.Sets(RoleA),
		SetsB:     d.Sets(RoleB),
	}
}

// RestoreDual rebuilds a DualSubstrate. Stored trails are kept as they are.
func RestoreDual(s DualSnapshot) (*DualSubstrate, error) {
	opts := []Option{
		WithUnits(s.ConcUnit, s.TimeUnit),
		WithStoichiometry(s.StoichA, s.StoichB),
		WithSubstrateNames(s.NameA, s.NameB),
	}
	if s.Titration {
		opts = append(opts, WithTitration())
	}
	if s.Enzyme != 0 {
		env, err := ratelaw.NewEnv(s.Enzyme)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
		}
		opts = append(opts, WithEnzyme(env))
	}
	d, err := NewDualSubstrate(s.Name, opts...)
	if err != nil {
		return nil, err
	}
	if s.Role != RoleA && s.Role != RoleB {
		return nil, fmt.Errorf("role %d: %w", s.Role, ErrSnapshot)
	}

	for _, rs := range []struct {
		role Role
		sets []Set
	}{{RoleA, s.SetsA}, {RoleB, s.SetsB}} {
		for i, set := range rs.sets {
			if err := validateSet(set, s.Titration); err != nil {
				return nil, fmt.Errorf("role %s set %d: %w", rs.role, i, err)
			}
			p := d.sets(rs.role)
			*p = append(*p, set.clone())
		}
	}

	d.role = s.Role
	if err := d.SetCursor(s.Cursor); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	return d, nil
}

func validateSet(s Set, titration bool) error {
	if len(s.Replicates) == 0 {
		return fmt.Errorf("set without replicates: %w", ErrSnapshot)
	}
	if titration && s.Spec.Injection == nil {
		return fmt.Errorf("titration set without injection: %w", ErrSnapshot)
	}
	for j, r := range s.Replicates {
		if err := checkPair(r.Var, r.Rates); err != nil {
			return fmt.Errorf("replicate %d: %w: %w", j, ErrSnapshot, err)
		}
		if len(r.Const) != len(r.Var) {
			return fmt.Errorf("replicate %d const: %w: %w", j, ErrSnapshot, ErrLength)
		}
		if titration && len(r.Enzyme) != len(r.Var) {
			return fmt.Errorf("replicate %d enzyme: %w: %w", j, ErrSnapshot, ErrLength)
		}
		if !titration && r.Enzyme != nil {
			return fmt.Errorf("replicate %d: enzyme trail outside titration: %w", j, ErrSnapshot)
		}
	}

	return nil
}
