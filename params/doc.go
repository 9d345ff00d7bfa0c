// Package params provides the ordered, named parameter sets that rate laws are
// fitted over.
//
// Each Param carries a value, lower and upper bound, a vary flag and a unit
// category. A Set keeps insertion order, which is the canonical order used by
// rate-law evaluation and by predictive functions.
//
// Invariants (enforced by Set.Validate and by every mutator):
//   - Min ≤ Max.
//   - Min ≤ Value ≤ Max whenever the parameter varies and both bounds are finite.
//
// Sets are not safe for concurrent mutation; fits work on private clones.
package params
