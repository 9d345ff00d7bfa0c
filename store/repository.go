package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

const keySuffix = ".enzf"

// Options configures a Repository.
//
// Codec  – compression of new envelopes; loading accepts every codec.
// Prefix – key prefix under which projects live.
// Logger – structured logger; nil discards.
type Options struct {
	Codec  Codec
	Prefix string
	Logger *slog.Logger
}

// Option represents a functional option for configuring a Repository.
type Option func(*Options)

// WithCodec selects the compression of saved projects.
func WithCodec(c Codec) Option {
	return func(o *Options) { o.Codec = c }
}

// WithPrefix sets the key prefix. A trailing slash is added when missing.
func WithPrefix(prefix string) Option {
	return func(o *Options) {
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		o.Prefix = prefix
	}
}

// WithLogger routes repository logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions returns zstd compression under "projects/" and a
// discarding logger.
func DefaultOptions() Options {
	return Options{
		Codec:  CodecZstd,
		Prefix: "projects/",
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Repository saves and loads Projects through a Backend.
type Repository struct {
	backend Backend
	opts    Options
}

// NewRepository binds a Repository to b.
func NewRepository(b Backend, opts ...Option) *Repository {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = DefaultOptions().Logger
	}

	return &Repository{backend: b, opts: o}
}

// Key returns the backend key of project id.
func (r *Repository) Key(id uuid.UUID) string {
	return r.opts.Prefix + id.String() + keySuffix
}

// Save writes p, replacing any previous version.
func (r *Repository) Save(ctx context.Context, p *Project) error {
	if p == nil || p.ID == uuid.Nil {
		return fmt.Errorf("missing id: %w", ErrProject)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.ID, err)
	}
	blob, err := Seal(r.opts.Codec, raw)
	if err != nil {
		return err
	}
	if err := r.backend.Put(ctx, r.Key(p.ID), blob); err != nil {
		return err
	}
	r.opts.Logger.Debug("project saved",
		slog.String("id", p.ID.String()),
		slog.String("codec", r.opts.Codec.String()),
		slog.Int("raw", len(raw)),
		slog.Int("stored", len(blob)))

	return nil
}

// Load reads project id.
func (r *Repository) Load(ctx context.Context, id uuid.UUID) (*Project, error) {
	blob, err := r.backend.Get(ctx, r.Key(id))
	if err != nil {
		return nil, err
	}
	raw, _, err := Open(blob)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	var p Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", id, ErrFormat, err)
	}
	if p.ID != id {
		return nil, fmt.Errorf("object %s holds project %s: %w", id, p.ID, ErrProject)
	}

	return &p, nil
}

// List returns the IDs of all stored projects in key order. Keys under the
// prefix that do not name a project are skipped.
func (r *Repository) List(ctx context.Context) ([]uuid.UUID, error) {
	keys, err := r.backend.List(ctx, r.opts.Prefix)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(keys))
	for _, k := range keys {
		name, ok := strings.CutSuffix(strings.TrimPrefix(k, r.opts.Prefix), keySuffix)
		if !ok {
			continue
		}
		id, err := uuid.Parse(name)
		if err != nil {
			r.opts.Logger.Warn("skipping foreign key", slog.String("key", k))
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// Delete removes project id. Removing an absent project is not an error.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.backend.Delete(ctx, r.Key(id))
}
