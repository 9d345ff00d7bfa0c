// Package dataset is the experiment data store.
//
// Two variants are provided:
//
//   - SingleSubstrate: a flat, ordered list of replicates. Fits pool every
//     replicate into one sample.
//   - DualSubstrate: for each substrate role (A variable or B variable) an
//     ordered list of Sets, each Set an ordered list of replicates that share
//     one constant-substrate concentration. A write cursor selects the Set that
//     receives the next replicate; the position one past the end is the
//     "new set" sentinel.
//
// In titration mode every Set carries an Injection describing the progressive
// dilution of the enzyme. Appends then derive two companion series per
// replicate: the active enzyme concentration
//
//	E_i = v0 / (vadd·(i+1) + v0) · E        (i = 1, 2, ... point position)
//
// so the first point reads v0/(2·vadd+v0)·E, and, when a time step is given,
// the depleting constant substrate
//
//	b_0 = Const,  b_i = b_{i−1} − rate_{i−1}·stoich·TimeStep.
//
// Every replicate of a Set shares its constant. An explicit constant series
// (AddSetPoints, AddReplicatePoints) must hold the Set value at every point,
// or, in titration mode, start at it; anything else fails with ErrConst.
//
// Every append validates its input before touching the store, so a failed
// append leaves all parallel arrays untouched. Readers return copies; callers
// never mutate stored data through them.
//
// Complexity: appends and point deletions are O(n) in the affected
// replicate; AllPoints and Represent are O(N) in the points of a role.
// Neither store is safe for concurrent mutation.
package dataset
