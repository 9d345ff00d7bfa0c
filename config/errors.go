package config

import (
	"fmt"

	"github.com/katalvlaran/enzfit"
)

// Sentinel errors returned by config.
var (
	// ErrRead indicates a configuration file that could not be read.
	ErrRead = fmt.Errorf("config: cannot read file: %w", enzfit.ErrConfiguration)

	// ErrSyntax indicates malformed YAML or an unknown field.
	ErrSyntax = fmt.Errorf("config: malformed yaml: %w", enzfit.ErrConfiguration)

	// ErrInvalid indicates a setting outside its allowed range.
	ErrInvalid = fmt.Errorf("config: invalid setting: %w", enzfit.ErrConfiguration)

	// ErrUnknownParam indicates an override naming a parameter the law lacks.
	ErrUnknownParam = fmt.Errorf("config: unknown parameter override: %w", enzfit.ErrConfiguration)

	// ErrExperiment indicates an experiment description that cannot be replayed.
	ErrExperiment = fmt.Errorf("config: invalid experiment: %w", enzfit.ErrValidation)
)
