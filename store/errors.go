package store

import (
	"fmt"

	"github.com/katalvlaran/enzfit"
)

// Sentinel errors returned by store.
var (
	// ErrNotFound indicates a key or project absent from the backend.
	ErrNotFound = fmt.Errorf("store: not found: %w", enzfit.ErrValidation)

	// ErrFormat indicates bytes that are not a well-formed envelope.
	ErrFormat = fmt.Errorf("store: malformed envelope: %w", enzfit.ErrValidation)

	// ErrChecksum indicates an envelope whose payload hash does not match.
	ErrChecksum = fmt.Errorf("store: checksum mismatch: %w", enzfit.ErrValidation)

	// ErrCodec indicates an unknown compression codec.
	ErrCodec = fmt.Errorf("store: unknown codec: %w", enzfit.ErrConfiguration)

	// ErrDialect indicates an unknown SQL dialect.
	ErrDialect = fmt.Errorf("store: unknown sql dialect: %w", enzfit.ErrConfiguration)

	// ErrBucket indicates an S3 backend configured without a bucket.
	ErrBucket = fmt.Errorf("store: s3 bucket required: %w", enzfit.ErrConfiguration)

	// ErrProject indicates a project that cannot be saved or rebuilt.
	ErrProject = fmt.Errorf("store: invalid project: %w", enzfit.ErrValidation)
)
