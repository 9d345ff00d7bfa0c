// SPDX-License-Identifier: MIT
// Package enzfit: error taxonomy shared by every subpackage.
//
// Subpackages declare their own sentinels ("pkg: message") and wrap one of the
// categories below, so callers can match either the precise condition or its
// class via errors.Is:
//
//	errors.Is(err, dataset.ErrLength)    // precise
//	errors.Is(err, enzfit.ErrValidation) // category

package enzfit

import "errors"

var (
	// ErrValidation marks malformed caller input: mismatched replicate lengths,
	// unparsable numeric text, a write cursor beyond the valid range.
	// The store that reported it is left unmodified.
	ErrValidation = errors.New("enzfit: validation failed")

	// ErrConfiguration marks a missing or unusable run-time setting, e.g. the
	// total enzyme concentration was never supplied, or a random restart was
	// requested for a parameter with an infinite bound.
	ErrConfiguration = errors.New("enzfit: configuration error")

	// ErrNumeric marks a non-finite value (division by zero, invalid operation)
	// produced while evaluating a rate law. It is propagated, never masked.
	ErrNumeric = errors.New("enzfit: numeric error")

	// ErrConvergence marks a local minimization that stopped without meeting
	// its convergence criteria. Fits carrying it are still returned.
	ErrConvergence = errors.New("enzfit: minimizer did not converge")
)
