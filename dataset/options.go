package dataset

import "github.com/katalvlaran/enzfit/ratelaw"

// Options configures a dataset at construction.
type Options struct {
	ConcUnit string
	TimeUnit string

	// Enzyme is the total enzyme concentration used by the titration trail.
	Enzyme ratelaw.Env
	// Titration enables injection bookkeeping on dual-substrate sets.
	Titration bool
	// StoichA and StoichB are the stoichiometric ratios of substrates A and B.
	StoichA, StoichB float64
	// NameA and NameB label the two substrates.
	NameA, NameB string
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns mM / s units, unit stoichiometry and substrates "A", "B".
func DefaultOptions() Options {
	return Options{
		ConcUnit: "mM",
		TimeUnit: "s",
		StoichA:  1,
		StoichB:  1,
		NameA:    "A",
		NameB:    "B",
	}
}

// WithUnits sets concentration and time units.
func WithUnits(conc, time string) Option {
	return func(o *Options) {
		o.ConcUnit = conc
		o.TimeUnit = time
	}
}

// WithEnzyme sets the total enzyme concentration.
func WithEnzyme(env ratelaw.Env) Option {
	return func(o *Options) { o.Enzyme = env }
}

// WithTitration enables titration mode.
func WithTitration() Option {
	return func(o *Options) { o.Titration = true }
}

// WithStoichiometry sets the ratios of substrates A and B.
func WithStoichiometry(a, b float64) Option {
	return func(o *Options) {
		o.StoichA = a
		o.StoichB = b
	}
}

// WithSubstrateNames labels substrates A and B.
func WithSubstrateNames(a, b string) Option {
	return func(o *Options) {
		o.NameA = a
		o.NameB = b
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

func rateUnit(conc, time string) string { return "(" + conc + ")/(" + time + ")" }
