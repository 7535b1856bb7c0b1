package sync

import (
	"context"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/pkgsync/pkg/cache"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/logging"
	"github.com/agentstation/pkgsync/pkg/reconcile"
	"github.com/agentstation/pkgsync/pkg/sources"
)

// Runner reconciles the records of one source against a cache snapshot.
// A Runner may be reused; every Run starts with an empty URL accumulator
// and touch log.
type Runner[R any] struct {
	adapter sources.Adapter[R]
	snap    *cache.Snapshot
	cfg     reconcile.Config
	opts    *Options
}

// NewRunner creates a runner. The identity configuration is validated
// upfront so a run never starts with an unmapped type.
func NewRunner[R any](adapter sources.Adapter[R], snap *cache.Snapshot, cfg reconcile.Config, opts ...Option) (*Runner[R], error) {
	if adapter == nil {
		return nil, errors.NewValidationError("adapter", nil, "adapter is required")
	}
	if snap == nil {
		snap = cache.Empty()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	return &Runner[R]{adapter: adapter, snap: snap, cfg: cfg, opts: options}, nil
}

// run holds the state of a single Run.
type run struct {
	pkgs  reconcile.PackageChangeset
	links reconcile.LinkChangeset
	deps  reconcile.DependencyChangeset
	acc   *cache.URLAccumulator
	log   *cache.TouchLog
	stats reconcile.Statistics
	now   utc.Time
	seen  map[string]struct{}
}

// Run reconciles records in order. Records are processed sequentially: a
// URL minted for one record is reused by every later record of the run.
// An unknown type identity or an inconsistent cache aborts the run.
func (r *Runner[R]) Run(ctx context.Context, records []R) (*reconcile.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var cancel context.CancelFunc
	if r.opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()

	if r.opts.Logger != nil {
		ctx = logging.WithLogger(ctx, r.opts.Logger)
	}
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithSource(ctx, r.adapter.ID().String())
	logger := logging.FromContext(ctx)

	start := time.Now()
	st := &run{acc: cache.NewURLAccumulator(), log: cache.NewTouchLog(), now: r.opts.Now(), seen: make(map[string]struct{})}

	logger.Info().Int("records", len(records)).Msg("Reconciliation started")
	if r.opts.OnStart != nil {
		r.opts.OnStart(len(records))
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			logger.Warn().Int("processed", st.stats.PackagesProcessed).Msg("Reconciliation canceled")
			return nil, errors.ErrCanceled
		}
		if err := r.record(ctx, st, rec); err != nil {
			return nil, err
		}
		if r.opts.Progress != nil {
			r.opts.Progress()
		}
	}

	changeset := reconcile.NewChangeset(
		&st.pkgs,
		&reconcile.URLChangeset{Added: st.acc.URLs()},
		&reconcile.LinkChangeset{Added: st.links.Added, Updated: st.log.Touches()},
		&st.deps,
	).Filter(r.opts.Strategy)

	end := time.Now()
	result := &reconcile.Result{
		Source:    r.adapter.ID().String(),
		Changeset: changeset,
		Metadata: reconcile.ResultMetadata{
			RunID:     runID,
			StartTime: start,
			EndTime:   end,
			Duration:  end.Sub(start),
			DryRun:    r.opts.DryRun,
			Stats:     st.stats,
		},
	}

	if result.HasChanges() {
		logger.Info().
			Int("packages_added", changeset.Summary.PackagesAdded).
			Int("packages_updated", changeset.Summary.PackagesUpdated).
			Int("urls_added", changeset.Summary.URLsAdded).
			Int("links_added", changeset.Summary.LinksAdded).
			Int("dependencies_added", changeset.Summary.DependenciesAdded).
			Int("dependencies_removed", changeset.Summary.DependenciesRemoved).
			Msg("Changes detected")
	} else {
		logger.Info().Msg("No changes detected")
	}

	return result, nil
}

// record reconciles one record: package, then URLs, then links, then
// dependency edges. Only the first record of an import id is reconciled.
func (r *Runner[R]) record(ctx context.Context, st *run, rec R) error {
	desc := r.adapter.Describe(rec)
	if desc.ImportID == "" {
		logging.FromContext(ctx).Warn().Str("name", desc.Name).Msg("Record has no import id, skipping")
		st.stats.PackagesSkipped++
		return nil
	}
	if _, dup := st.seen[desc.ImportID]; dup {
		logging.FromContext(ctx).Warn().Str("import_id", desc.ImportID).Msg("Duplicate import id in run, skipping")
		st.stats.PackagesSkipped++
		return nil
	}
	st.seen[desc.ImportID] = struct{}{}
	ctx = logging.WithPackage(ctx, desc.ImportID)
	st.stats.PackagesProcessed++

	pr, err := reconcile.Package(ctx, desc, r.snap, r.cfg.PackageManagerID, st.now)
	if err != nil {
		return errors.WrapResource("reconcile", "package", desc.ImportID, err)
	}
	switch {
	case pr.Created != nil:
		st.pkgs.Added = append(st.pkgs.Added, *pr.Created)
		st.stats.PackagesCreated++
	case pr.Update != nil:
		st.pkgs.Updated = append(st.pkgs.Updated, *pr.Update)
		st.stats.PackagesUpdated++
	}

	resolved, err := reconcile.ResolveURLs(ctx, r.adapter.URLs(rec), r.snap, st.acc, r.cfg.URLTypes, st.now)
	if err != nil {
		return errors.WrapResource("resolve", "urls", desc.ImportID, err)
	}
	ld := reconcile.Links(pr.ID, resolved, r.snap, st.log, st.now)
	st.links.Added = append(st.links.Added, ld.Added...)

	dd, err := reconcile.Dependencies(ctx, r.adapter.Normalize(rec), r.snap, r.cfg.DependencyTypes, st.now)
	if err != nil {
		return errors.WrapResource("reconcile", "dependencies", desc.ImportID, err)
	}
	if dd.Uncached {
		st.stats.PackagesUncached++
	}
	st.stats.DependenciesUnresolved += len(dd.Unresolved)
	st.deps.Added = append(st.deps.Added, dd.Added...)
	st.deps.Removed = append(st.deps.Removed, dd.Removed...)

	return nil
}
