package cache

import (
	"context"

	"github.com/agentstation/pkgsync/internal/input"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/logging"
)

// Loader populates a Snapshot from the persisted store. Implementations
// must include every package a run will touch, including packages with no
// dependencies.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// FileLoader reads a Data dump from a JSON or YAML file, optionally compressed.
type FileLoader struct {
	Path string
}

// Load implements Loader.
func (l FileLoader) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}

	var data Data
	if err := input.DecodeFile(l.Path, &data); err != nil {
		return nil, err
	}

	snap, err := New(data)
	if err != nil {
		return nil, errors.WrapResource("load", "snapshot", l.Path, err)
	}

	st := snap.Stats()
	logging.FromContext(ctx).Debug().
		Str("path", l.Path).
		Int("packages", st.Packages).
		Int("urls", st.URLs).
		Int("links", st.Links).
		Int("dependencies", st.Dependencies).
		Msg("Loaded cache snapshot")

	return snap, nil
}
