// Package store persists enzfit projects.
//
// A Project bundles a dataset snapshot (single- or dual-substrate), the total
// enzyme concentration and the configured rate laws. The Repository encodes a
// project as JSON, compresses it with the chosen Codec and wraps the result in
// a small binary envelope:
//
//	magic "ENZF" | version | codec | raw length (u64) | xxhash64 (u64) | payload
//
// so that a truncated or corrupted object is detected on load rather than
// silently decoded. Envelopes are written to a Backend, a flat key/value
// surface with three implementations:
//
//   - Memory: process-local map, for tests and dry runs.
//   - SQL: one table in SQLite (modernc.org/sqlite) or PostgreSQL (pgx).
//   - S3: one object per project in an S3-compatible bucket.
package store
