package plot

import (
	"fmt"
	"strings"
)

// Transform selects the coordinate system of a fit chart.
type Transform int

const (
	// Direct plots v against s.
	Direct Transform = iota
	// LineweaverBurk plots 1/v against 1/s.
	LineweaverBurk
	// HanesWoolf plots s/v against s.
	HanesWoolf
	// EadieHofstee plots v against v/s.
	EadieHofstee
)

// Transforms returns every transform in declaration order.
func Transforms() []Transform {
	return []Transform{Direct, LineweaverBurk, HanesWoolf, EadieHofstee}
}

// String returns the file-name friendly name of t.
func (t Transform) String() string {
	switch t {
	case Direct:
		return "michaelis-menten"
	case LineweaverBurk:
		return "lineweaver-burk"
	case HanesWoolf:
		return "hanes-woolf"
	case EadieHofstee:
		return "eadie-hofstee"
	}

	return fmt.Sprintf("transform(%d)", int(t))
}

// ParseTransform is the inverse of String, case-insensitive. "direct" is
// accepted for Direct.
func ParseTransform(s string) (Transform, error) {
	if strings.EqualFold(s, "direct") {
		return Direct, nil
	}
	for _, t := range Transforms() {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrTransform)
}

// apply maps a (concentration, rate) pair into chart coordinates.
func (t Transform) apply(s, v float64) (x, y float64) {
	switch t {
	case LineweaverBurk:
		return 1 / s, 1 / v
	case HanesWoolf:
		return s, s / v
	case EadieHofstee:
		return v / s, v
	default:
		return s, v
	}
}

// axes returns the x and y axis titles for substrate sub.
func (t Transform) axes(sub string, u Units) (x, y string) {
	c, r, tu := u.ConcentrationUnit(), u.RateUnit(), u.TimeUnit()
	switch t {
	case LineweaverBurk:
		return fmt.Sprintf("1 / %s concentration [1 / %s]", sub, c),
			fmt.Sprintf("1 / Reaction rate [1 / %s]", r)
	case HanesWoolf:
		return fmt.Sprintf("%s concentration [%s]", sub, c),
			fmt.Sprintf("%s concentration / Reaction rate [%s]", sub, tu)
	case EadieHofstee:
		return fmt.Sprintf("Reaction rate / %s concentration [1 / %s]", sub, tu),
			fmt.Sprintf("Reaction rate [%s]", r)
	default:
		return fmt.Sprintf("%s concentration [%s]", sub, c),
			fmt.Sprintf("Reaction rate [%s]", r)
	}
}
