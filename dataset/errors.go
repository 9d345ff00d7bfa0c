package dataset

import (
	"fmt"

	"github.com/katalvlaran/enzfit"
)

// Sentinel errors returned by dataset.
var (
	// ErrParse indicates malformed numeric text.
	ErrParse = fmt.Errorf("dataset: malformed numeric text: %w", enzfit.ErrValidation)

	// ErrEmpty indicates a replicate without points.
	ErrEmpty = fmt.Errorf("dataset: empty replicate: %w", enzfit.ErrValidation)

	// ErrLength indicates parallel arrays of different lengths.
	ErrLength = fmt.Errorf("dataset: length mismatch: %w", enzfit.ErrValidation)

	// ErrNonFinite indicates Inf or NaN in supplied data.
	ErrNonFinite = fmt.Errorf("dataset: non-finite value: %w", enzfit.ErrValidation)

	// ErrIndex indicates a replicate, set or point index out of range.
	ErrIndex = fmt.Errorf("dataset: index out of range: %w", enzfit.ErrValidation)

	// ErrCursor indicates a write cursor beyond the new-set position.
	ErrCursor = fmt.Errorf("dataset: set cursor out of range: %w", enzfit.ErrValidation)

	// ErrNoSet indicates a replicate append while the cursor is at the new-set position.
	ErrNoSet = fmt.Errorf("dataset: no set selected: %w", enzfit.ErrValidation)

	// ErrConst indicates an explicit constant series that departs from the
	// constant shared by every replicate of its Set.
	ErrConst = fmt.Errorf("dataset: constant differs from set value: %w", enzfit.ErrValidation)

	// ErrInjection indicates missing or invalid titration injection settings.
	ErrInjection = fmt.Errorf("dataset: invalid injection settings: %w", enzfit.ErrValidation)

	// ErrStoichiometry indicates a non-positive stoichiometric ratio.
	ErrStoichiometry = fmt.Errorf("dataset: stoichiometry must be > 0: %w", enzfit.ErrConfiguration)

	// ErrSnapshot indicates a snapshot that violates store invariants.
	ErrSnapshot = fmt.Errorf("dataset: inconsistent snapshot: %w", enzfit.ErrValidation)
)
