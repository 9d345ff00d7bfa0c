package ratelaw

// All returns every Kind in catalog order.
func All() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}

	return out
}

// SingleSubstrate returns the kinds offered for single-substrate datasets.
func SingleSubstrate() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		if catalog[k].substrates == 1 {
			out = append(out, k)
		}
	}

	return out
}

// DualSubstrate returns the kinds offered for two-substrate datasets:
// every single-substrate law (fitted per constant-concentration set) followed
// by the bi-substrate mechanisms.
func DualSubstrate() []Kind { return All() }

// BiSubstrate returns only the mechanisms that read the constant substrate.
func BiSubstrate() []Kind {
	out := make([]Kind, 0, 4)
	for k := Kind(0); k < kindCount; k++ {
		if catalog[k].substrates == 2 {
			out = append(out, k)
		}
	}

	return out
}
